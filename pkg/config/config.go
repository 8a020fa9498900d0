package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the simulator
type Config struct {
	App  AppConfig  `mapstructure:"app"`
	Sim  SimConfig  `mapstructure:"sim"`
	Sink SinkConfig `mapstructure:"sink"`
}

type AppConfig struct {
	Env string `mapstructure:"env"` // e.g., "local", "prod"
}

type SimConfig struct {
	Tickers        []string           `mapstructure:"tickers"`
	StartPrices    map[string]float64 `mapstructure:"start_prices"`
	StartVolumes   map[string]int64   `mapstructure:"start_volumes"`
	StepCount      int                `mapstructure:"step_count"`
	StepIntervalMS int                `mapstructure:"step_interval_ms"`
}

type SinkConfig struct {
	Backend string `mapstructure:"backend"` // "csv" or "sqlite"
	Path    string `mapstructure:"path"`
}

// LoadConfig reads configuration from .env file, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. Load .env file into System Environment (if it exists)
	// This ensures variables like SIM_STEP_COUNT are available as real env vars
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, relying on System Env Vars")
	}

	// 2. Set Defaults (12-Factor App: Dev/Prod Parity)
	v.SetDefault("app.env", "local")

	v.SetDefault("sim.tickers", []string{"GOOG", "AAPL", "MSFT", "AMZN", "TSLA"})
	v.SetDefault("sim.start_prices", map[string]float64{
		"GOOG": 150.00, "AAPL": 175.50, "MSFT": 420.10, "AMZN": 180.75, "TSLA": 200.00,
	})
	v.SetDefault("sim.start_volumes", map[string]int64{
		"GOOG": 1000, "AAPL": 1200, "MSFT": 800, "AMZN": 1500, "TSLA": 900,
	})
	v.SetDefault("sim.step_count", 50)
	v.SetDefault("sim.step_interval_ms", 100)

	v.SetDefault("sink.backend", "csv")
	v.SetDefault("sink.path", "market_data.csv")

	// 3. Configure Viper to read Environment Variables
	// This maps dot-notation to underscores (e.g., "sim.step_count" -> "SIM_STEP_COUNT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Explicitly Bind Env Vars to Keys
	// This is crucial for Viper to map flat Env Vars (SINK_PATH) to nested structs (Sink.Path)
	bindEnv(v, "app.env")
	bindEnv(v, "sim.tickers", "sim.step_count", "sim.step_interval_ms")
	bindEnv(v, "sink.backend", "sink.path")

	// 5. Unmarshal into Struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %v", err)
	}

	// 6. Basic Validation
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the loaded configuration is internally consistent.
func (c *Config) Validate() error {
	if len(c.Sim.Tickers) == 0 {
		return fmt.Errorf("sim tickers cannot be empty")
	}
	if c.Sim.StepCount <= 0 {
		return fmt.Errorf("sim step_count must be positive, got %d", c.Sim.StepCount)
	}
	if c.Sim.StepIntervalMS < 0 {
		return fmt.Errorf("sim step_interval_ms cannot be negative, got %d", c.Sim.StepIntervalMS)
	}
	for _, sym := range c.Sim.Tickers {
		if price, ok := c.StartPrice(sym); !ok || price <= 0 {
			return fmt.Errorf("ticker %s needs a positive start price", sym)
		}
	}
	switch c.Sink.Backend {
	case "csv", "sqlite":
	default:
		return fmt.Errorf("unknown sink backend %q (want csv or sqlite)", c.Sink.Backend)
	}
	if c.Sink.Path == "" {
		return fmt.Errorf("sink path cannot be empty")
	}
	return nil
}

// StartPrice returns the configured starting price for a symbol.
// Viper lowercases map keys, so both spellings are checked.
func (c *Config) StartPrice(symbol string) (float64, bool) {
	if p, ok := c.Sim.StartPrices[symbol]; ok {
		return p, true
	}
	p, ok := c.Sim.StartPrices[strings.ToLower(symbol)]
	return p, ok
}

// StartVolume returns the configured starting volume for a symbol,
// defaulting to 1 when not configured.
func (c *Config) StartVolume(symbol string) int64 {
	if v, ok := c.Sim.StartVolumes[symbol]; ok && v >= 1 {
		return v
	}
	if v, ok := c.Sim.StartVolumes[strings.ToLower(symbol)]; ok && v >= 1 {
		return v
	}
	return 1
}

// bindEnv is a helper to bind multiple keys at once
func bindEnv(v *viper.Viper, keys ...string) {
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			log.Printf("Could not bind env var for key %s: %v", key, err)
		}
	}
}
