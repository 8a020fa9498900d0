package config

import "testing"

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(cfg.Sim.Tickers) != 5 {
		t.Errorf("Expected 5 default tickers, got %d", len(cfg.Sim.Tickers))
	}
	if cfg.Sim.StepCount != 50 {
		t.Errorf("StepCount = %d, want 50", cfg.Sim.StepCount)
	}
	if cfg.Sim.StepIntervalMS != 100 {
		t.Errorf("StepIntervalMS = %d, want 100", cfg.Sim.StepIntervalMS)
	}
	if cfg.Sink.Backend != "csv" {
		t.Errorf("Backend = %q, want csv", cfg.Sink.Backend)
	}

	price, ok := cfg.StartPrice("GOOG")
	if !ok || price != 150.00 {
		t.Errorf("StartPrice(GOOG) = %v, %v, want 150.00, true", price, ok)
	}
	if vol := cfg.StartVolume("MSFT"); vol != 800 {
		t.Errorf("StartVolume(MSFT) = %d, want 800", vol)
	}
	if vol := cfg.StartVolume("UNKNOWN"); vol != 1 {
		t.Errorf("StartVolume(UNKNOWN) = %d, want floor of 1", vol)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SIM_STEP_COUNT", "3")
	t.Setenv("SINK_PATH", "/tmp/override.csv")
	t.Setenv("SINK_BACKEND", "sqlite")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Sim.StepCount != 3 {
		t.Errorf("StepCount = %d, want 3", cfg.Sim.StepCount)
	}
	if cfg.Sink.Path != "/tmp/override.csv" {
		t.Errorf("Path = %q, want /tmp/override.csv", cfg.Sink.Path)
	}
	if cfg.Sink.Backend != "sqlite" {
		t.Errorf("Backend = %q, want sqlite", cfg.Sink.Backend)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	base := func() *Config {
		return &Config{
			Sim: SimConfig{
				Tickers:        []string{"GOOG"},
				StartPrices:    map[string]float64{"GOOG": 150.0},
				StartVolumes:   map[string]int64{"GOOG": 1000},
				StepCount:      10,
				StepIntervalMS: 100,
			},
			Sink: SinkConfig{Backend: "csv", Path: "out.csv"},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("Valid config rejected: %v", err)
	}

	cfg := base()
	cfg.Sim.Tickers = nil
	if err := cfg.Validate(); err == nil {
		t.Error("Empty tickers accepted")
	}

	cfg = base()
	cfg.Sim.StepCount = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Zero step count accepted")
	}

	cfg = base()
	cfg.Sim.StartPrices = map[string]float64{}
	if err := cfg.Validate(); err == nil {
		t.Error("Missing start price accepted")
	}

	cfg = base()
	cfg.Sink.Backend = "parquet"
	if err := cfg.Validate(); err == nil {
		t.Error("Unknown sink backend accepted")
	}

	cfg = base()
	cfg.Sink.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Empty sink path accepted")
	}
}
