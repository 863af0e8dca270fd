package model

import (
	"math"
	"time"
)

// Bar represents a single OHLCV candlestick.
// Numeric fields hold NaN when the source value could not be coerced.
type Bar struct {
	Date   string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series holds the ordered bar sequence for one symbol.
// Insertion order is chronological order.
type Series struct {
	Symbol    string
	Bars      []Bar
	FetchedAt time.Time
}

// Len returns the number of bars in the series.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Missing reports whether v is the missing-value marker.
func Missing(v float64) bool { return math.IsNaN(v) }

// MissingValue returns the marker used for values that could not be coerced.
func MissingValue() float64 { return math.NaN() }
