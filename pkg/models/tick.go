package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tick represents a single market data observation for one symbol.
// Ticks are immutable value records: produced once by a generator,
// copied into the handoff queue and consumed exactly once.
type Tick struct {
	Timestamp time.Time       `json:"timestamp"`
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Volume    int64           `json:"volume"`
	SeqID     int64           `json:"seq_id"` // monotonic counter per symbol, not persisted
}

// FormattedTimestamp renders the tick time in local time with
// millisecond precision, e.g. "2026-08-23 14:05:09.042".
func (t Tick) FormattedTimestamp() string {
	return t.Timestamp.Local().Format("2006-01-02 15:04:05.000")
}
