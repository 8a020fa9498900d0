package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/SuvarinA/MarketDataSimulator/cmd/simulator/internal/driver"
	"github.com/SuvarinA/MarketDataSimulator/cmd/simulator/internal/generator"
	"github.com/SuvarinA/MarketDataSimulator/cmd/simulator/internal/queue"
	"github.com/SuvarinA/MarketDataSimulator/cmd/simulator/internal/sink"
	"github.com/SuvarinA/MarketDataSimulator/pkg/config"
	"github.com/SuvarinA/MarketDataSimulator/pkg/models"
)

func main() {
	// 1. Initialize Zap Logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	// 2. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// 3. Build Generators (stable order: config order is delivery order)
	clock := generator.RealClock{}
	generators := make([]*generator.TickGenerator, 0, len(cfg.Sim.Tickers))
	for _, symbol := range cfg.Sim.Tickers {
		price, _ := cfg.StartPrice(symbol) // validated by LoadConfig
		generators = append(generators, generator.NewTickGenerator(
			symbol,
			decimal.NewFromFloat(price),
			cfg.StartVolume(symbol),
			generator.NewRealRand(rand.Int63()),
			generator.NewRealRand(rand.Int63()),
			clock,
		))
	}

	// 4. Queue and Sink
	tickQueue := queue.New[models.Tick]()

	var open sink.OpenRecorder
	switch cfg.Sink.Backend {
	case "sqlite":
		open = func() (sink.Recorder, error) { return sink.NewSQLiteRecorder(cfg.Sink.Path) }
	default:
		open = func() (sink.Recorder, error) { return sink.NewCSVRecorder(cfg.Sink.Path) }
	}
	tickSink := sink.NewSink(logger, tickQueue, open)

	// 5. Setup Shutdown Hook
	// An early signal ends the step loop; the stop/drain/join handshake
	// still runs so nothing already queued is lost.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received")
		cancel()
	}()

	// 6. Run
	logger.Info("Writing market data",
		zap.String("backend", cfg.Sink.Backend),
		zap.String("path", cfg.Sink.Path))

	sim := driver.NewDriver(
		logger,
		tickQueue,
		tickSink,
		generators,
		clock,
		cfg.Sim.StepCount,
		time.Duration(cfg.Sim.StepIntervalMS)*time.Millisecond,
		os.Stdout,
	)
	sim.Run(ctx)

	logger.Info("All data written, exiting")
}
