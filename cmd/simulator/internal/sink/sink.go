package sink

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/SuvarinA/MarketDataSimulator/cmd/simulator/internal/queue"
)

// Sink drains the handoff queue and appends every delivered tick to its
// recorder, in delivery order, until the queue reports stopped-and-empty.
type Sink struct {
	logger *zap.Logger
	src    TickSource
	open   OpenRecorder
}

func NewSink(logger *zap.Logger, src TickSource, open OpenRecorder) *Sink {
	return &Sink{
		logger: logger,
		src:    src,
		open:   open,
	}
}

// Run is the consumer loop. It blocks until the queue is stopped and
// drained, returning nil on a clean drain. Failures are contained here:
// an unavailable destination or a write error ends the loop without
// ever propagating to the producer, which keeps pushing regardless.
func (s *Sink) Run() error {
	rec, err := s.open()
	if err != nil {
		s.logger.Error("Sink destination unavailable, exiting without consuming", zap.Error(err))
		return fmt.Errorf("open sink destination: %w", err)
	}
	defer func() {
		if err := rec.Close(); err != nil {
			s.logger.Error("Error closing sink destination", zap.Error(err))
		}
	}()

	s.logger.Info("Sink started")

	written := 0
	for {
		tick, err := s.src.WaitPop()
		if err != nil {
			if errors.Is(err, queue.ErrStopped) {
				s.logger.Info("Sink drained and stopped", zap.Int("ticks_written", written))
				return nil
			}
			s.logger.Error("Unexpected consumer failure", zap.Error(err))
			return fmt.Errorf("consume tick: %w", err)
		}

		if err := rec.Append(tick); err != nil {
			s.logger.Error("Failed to persist tick",
				zap.String("symbol", tick.Symbol), zap.Error(err))
			return fmt.Errorf("persist tick: %w", err)
		}
		written++
	}
}
