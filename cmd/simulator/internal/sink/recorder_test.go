package sink_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/SuvarinA/MarketDataSimulator/cmd/simulator/internal/sink"
)

func TestCSVRecorder_HeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticks.csv")

	rec, err := sink.NewCSVRecorder(path)
	if err != nil {
		t.Fatalf("Failed to create recorder: %v", err)
	}

	if err := rec.Append(makeTick("GOOG", 150.0, 1000)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := rec.Append(makeTick("AAPL", 175.5, 1200)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen csv: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse csv: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d rows", len(rows))
	}

	header := rows[0]
	wantHeader := []string{"Timestamp", "Symbol", "Price", "Volume"}
	for i, col := range wantHeader {
		if header[i] != col {
			t.Errorf("Header column %d = %q, want %q", i, header[i], col)
		}
	}

	if rows[1][1] != "GOOG" || rows[1][2] != "150.00" || rows[1][3] != "1000" {
		t.Errorf("Row 1 mismatch: %v", rows[1])
	}
	if rows[2][1] != "AAPL" || rows[2][2] != "175.50" || rows[2][3] != "1200" {
		t.Errorf("Row 2 mismatch: %v", rows[2])
	}
	if rows[1][0] != makeTick("GOOG", 150.0, 1000).FormattedTimestamp() {
		t.Errorf("Timestamp format mismatch: %q", rows[1][0])
	}
}

func TestCSVRecorder_OpenFailure(t *testing.T) {
	_, err := sink.NewCSVRecorder(filepath.Join(t.TempDir(), "missing", "ticks.csv"))
	if err == nil {
		t.Fatal("Expected error for unwritable destination")
	}
}

func TestCSVRecorder_FlushesPerRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticks.csv")

	rec, err := sink.NewCSVRecorder(path)
	if err != nil {
		t.Fatalf("Failed to create recorder: %v", err)
	}
	defer rec.Close()

	if err := rec.Append(makeTick("MSFT", 420.1, 800)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// Row must be on disk before Close
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read csv mid-run: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Nothing flushed to disk")
	}

	f, _ := os.Open(path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse csv mid-run: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header + 1 row on disk, got %d", len(rows))
	}
}

func TestSQLiteRecorder_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticks.db")

	rec, err := sink.NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("Failed to create recorder: %v", err)
	}
	defer rec.Close()

	if err := rec.Append(makeTick("AMZN", 180.75, 1500)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := rec.Append(makeTick("TSLA", 200.00, 900)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	ticks, err := rec.Ticks()
	if err != nil {
		t.Fatalf("Failed to load ticks: %v", err)
	}
	if len(ticks) != 2 {
		t.Fatalf("Expected 2 ticks, got %d", len(ticks))
	}
	if ticks[0].Symbol != "AMZN" || ticks[0].Price.StringFixed(2) != "180.75" || ticks[0].Volume != 1500 {
		t.Errorf("Tick 1 mismatch: %+v", ticks[0])
	}
	if ticks[1].Symbol != "TSLA" || ticks[1].Price.StringFixed(2) != "200.00" {
		t.Errorf("Tick 2 mismatch: %+v", ticks[1])
	}

	want := makeTick("AMZN", 180.75, 1500).FormattedTimestamp()
	if ticks[0].FormattedTimestamp() != want {
		t.Errorf("Timestamp round-trip mismatch: got %q, want %q", ticks[0].FormattedTimestamp(), want)
	}
}
