package sink

import (
	"github.com/SuvarinA/MarketDataSimulator/pkg/models"
)

// TickSource abstracts the blocking side of the handoff queue.
type TickSource interface {
	WaitPop() (models.Tick, error)
}

// Recorder abstracts the durable destination. Opening the destination
// (and writing any header) happens in the recorder's constructor; a
// constructor error means the destination is unavailable.
type Recorder interface {
	Append(t models.Tick) error
	Close() error
}

// OpenRecorder defers destination opening until the sink goroutine
// actually runs, so an unavailable destination is contained inside the
// consumer and never touches the producer.
type OpenRecorder func() (Recorder, error)
