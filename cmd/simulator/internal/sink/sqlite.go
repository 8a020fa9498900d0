package sink

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/shopspring/decimal"

	"github.com/SuvarinA/MarketDataSimulator/pkg/models"
)

// SQLiteRecorder is the durable-database alternative to the CSV file.
// Rows store the same rendered fields as the CSV backend, so the two
// destinations are interchangeable record-for-record.
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder opens (or creates) the database with WAL mode
// enabled and ensures the ticks table exists.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma %s: %w", pragma, err)
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS ticks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts TEXT NOT NULL,
			symbol TEXT NOT NULL,
			price TEXT NOT NULL,
			volume INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create ticks table: %w", err)
	}

	return &SQLiteRecorder{db: db}, nil
}

func (r *SQLiteRecorder) Append(t models.Tick) error {
	_, err := r.db.Exec(
		"INSERT INTO ticks (ts, symbol, price, volume) VALUES (?, ?, ?, ?)",
		t.FormattedTimestamp(), t.Symbol, t.Price.StringFixed(2), t.Volume,
	)
	if err != nil {
		return fmt.Errorf("insert tick: %w", err)
	}
	return nil
}

// Ticks reads back every persisted tick in insertion order.
func (r *SQLiteRecorder) Ticks() ([]models.Tick, error) {
	rows, err := r.db.Query("SELECT ts, symbol, price, volume FROM ticks ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("query ticks: %w", err)
	}
	defer rows.Close()

	var ticks []models.Tick
	for rows.Next() {
		var (
			ts     string
			symbol string
			price  string
			volume int64
		)
		if err := rows.Scan(&ts, &symbol, &price, &volume); err != nil {
			return nil, fmt.Errorf("scan tick: %w", err)
		}

		parsedTS, err := time.ParseInLocation("2006-01-02 15:04:05.000", ts, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse tick timestamp %q: %w", ts, err)
		}
		parsedPrice, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse tick price %q: %w", price, err)
		}

		ticks = append(ticks, models.Tick{
			Timestamp: parsedTS,
			Symbol:    symbol,
			Price:     parsedPrice,
			Volume:    volume,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return ticks, nil
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
