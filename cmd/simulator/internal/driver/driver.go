package driver

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SuvarinA/MarketDataSimulator/cmd/simulator/internal/generator"
	"github.com/SuvarinA/MarketDataSimulator/pkg/models"
)

// TickQueue is the producer-side view of the handoff queue.
type TickQueue interface {
	Push(t models.Tick)
	Stop()
}

// TickSink is the consumer the driver runs and joins.
type TickSink interface {
	Run() error
}

// Driver owns the generators and the production loop. It starts the
// sink goroutine, ticks every generator once per step in a stable
// order, renders each tick to the console as it is produced, and after
// the last step signals stop and blocks until the sink has drained.
type Driver struct {
	logger     *zap.Logger
	queue      TickQueue
	sink       TickSink
	generators []*generator.TickGenerator
	clock      generator.Clock
	steps      int
	interval   time.Duration
	console    io.Writer
}

func NewDriver(
	logger *zap.Logger,
	q TickQueue,
	s TickSink,
	generators []*generator.TickGenerator,
	clock generator.Clock,
	steps int,
	interval time.Duration,
	console io.Writer,
) *Driver {
	return &Driver{
		logger:     logger,
		queue:      q,
		sink:       s,
		generators: generators,
		clock:      clock,
		steps:      steps,
		interval:   interval,
		console:    console,
	}
}

// Run executes the full simulation. A cancelled context ends the step
// loop early, but the stop/drain handshake still runs in full: every
// pushed tick is persisted before Run returns.
func (d *Driver) Run(ctx context.Context) {
	sinkDone := make(chan struct{})
	go func() {
		defer close(sinkDone)
		if err := d.sink.Run(); err != nil {
			d.logger.Error("Sink exited early", zap.Error(err))
		}
	}()

	d.logger.Info("Simulation started",
		zap.Int("steps", d.steps),
		zap.Int("symbols", len(d.generators)),
		zap.Duration("interval", d.interval))

	d.printHeader()

	produced := 0
loop:
	for step := 0; step < d.steps; step++ {
		select {
		case <-ctx.Done():
			d.logger.Info("Simulation interrupted", zap.Int("completed_steps", step))
			break loop
		default:
		}

		for _, gen := range d.generators {
			tick := gen.Next()
			d.printRow(tick)
			d.queue.Push(tick)
			produced++
		}

		d.clock.Sleep(d.interval)
	}

	d.logger.Info("Production finished, signaling sink to stop", zap.Int("ticks_produced", produced))
	d.queue.Stop()

	<-sinkDone
	d.logger.Info("Sink drained, simulation complete")
}

func (d *Driver) printHeader() {
	fmt.Fprintln(d.console, strings.Repeat("-", 57))
	fmt.Fprintf(d.console, "%-25s%-10s%-15s%s\n", "Timestamp", "Symbol", "Price", "Volume")
	fmt.Fprintln(d.console, strings.Repeat("-", 57))
}

func (d *Driver) printRow(t models.Tick) {
	fmt.Fprintf(d.console, "%-25s%-10s%-15s%d\n",
		t.FormattedTimestamp(), t.Symbol, t.Price.StringFixed(2), t.Volume)
}
