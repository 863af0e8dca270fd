package series

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"SignalSentry/internal/model"
)

// DataLoadError indicates the input matched neither accepted shape.
// The caller surfaces it and terminates; it is never retried.
type DataLoadError struct {
	Err error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("data loading failed: %v", e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// rawBar defers field decoding so one bad field never aborts the rest
// of the bar or the rest of the series.
type rawBar struct {
	Date      json.RawMessage `json:"date"`
	Timestamp json.RawMessage `json:"timestamp"`
	Open      json.RawMessage `json:"open"`
	High      json.RawMessage `json:"high"`
	Low       json.RawMessage `json:"low"`
	Close     json.RawMessage `json:"close"`
	Volume    json.RawMessage `json:"volume"`
}

// Load normalizes raw JSON into a Series. Two shapes are accepted, tried
// in order: a record with a "candles" list, then a bare list of bars.
// If neither matches, a *DataLoadError wrapping the first error is returned.
func Load(data []byte) (*model.Series, error) {
	var envelope struct {
		Candles *[]rawBar `json:"candles"`
	}
	errA := json.Unmarshal(data, &envelope)
	if errA == nil && envelope.Candles != nil {
		return build(*envelope.Candles), nil
	}
	if errA == nil {
		errA = fmt.Errorf("missing 'candles' field")
	}

	var bare []rawBar
	if errB := json.Unmarshal(data, &bare); errB == nil {
		return build(bare), nil
	}

	return nil, &DataLoadError{Err: errA}
}

func build(raws []rawBar) *model.Series {
	bars := make([]model.Bar, len(raws))
	for i, r := range raws {
		ts := r.Date
		if ts == nil {
			ts = r.Timestamp
		}
		bars[i] = model.Bar{
			Date:   coerceString(ts),
			Open:   coerceFloat(r.Open),
			High:   coerceFloat(r.High),
			Low:    coerceFloat(r.Low),
			Close:  coerceFloat(r.Close),
			Volume: coerceFloat(r.Volume),
		}
	}
	return &model.Series{Bars: bars, FetchedAt: time.Now()}
}

// coerceFloat converts a raw JSON value to float64. Numbers and numeric
// strings pass through; anything else (null, bool, text, absent) becomes
// the missing marker.
func coerceFloat(raw json.RawMessage) float64 {
	// unmarshalling a JSON null into a float64 is a no-op that leaves 0
	// behind, so the literal has to be rejected before decoding
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return model.MissingValue()
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return model.MissingValue()
}

// coerceString converts a raw JSON timestamp to its string form.
// Both string identifiers and numeric ordinals are accepted.
func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
