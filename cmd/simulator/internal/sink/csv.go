package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/SuvarinA/MarketDataSimulator/pkg/models"
)

var csvHeader = []string{"Timestamp", "Symbol", "Price", "Volume"}

// CSVRecorder appends one comma-delimited row per tick to a file,
// flushing after every row so a partial run still leaves readable data.
type CSVRecorder struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVRecorder truncates/creates the file and writes the header row.
func NewCSVRecorder(path string) (*CSVRecorder, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		file.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return nil, fmt.Errorf("flush csv header: %w", err)
	}

	return &CSVRecorder{file: file, writer: writer}, nil
}

func (r *CSVRecorder) Append(t models.Tick) error {
	row := []string{
		t.FormattedTimestamp(),
		t.Symbol,
		t.Price.StringFixed(2),
		strconv.FormatInt(t.Volume, 10),
	}
	if err := r.writer.Write(row); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	r.writer.Flush()
	return r.writer.Error()
}

func (r *CSVRecorder) Close() error {
	r.writer.Flush()
	if err := r.writer.Error(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
