package testutils

import (
	"errors"
	"sync"
	"time"

	"github.com/SuvarinA/MarketDataSimulator/pkg/models"
)

type MockClock struct {
	CurrentTime time.Time
	SleepCount  int
}

func (m *MockClock) Now() time.Time { return m.CurrentTime }
func (m *MockClock) Sleep(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
	m.SleepCount++
}

type MockRand struct {
	ValInt   int
	ValFloat float64
}

func (m *MockRand) Intn(n int) int   { return m.ValInt }
func (m *MockRand) Float64() float64 { return m.ValFloat }

// MockRecorder captures appended ticks in memory.
type MockRecorder struct {
	Mu         sync.Mutex
	Ticks      []models.Tick
	Closed     bool
	ShouldFail bool
}

func (m *MockRecorder) Append(t models.Tick) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if m.ShouldFail {
		return errors.New("recorder write error")
	}
	m.Ticks = append(m.Ticks, t)
	return nil
}

func (m *MockRecorder) Close() error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Closed = true
	return nil
}
