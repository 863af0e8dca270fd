package collector

import "SignalSentry/internal/model"

// Fetcher defines the interface for fetching candle data.
type Fetcher interface {
	FetchSeries(symbol string, limit int) (*model.Series, error)
	Name() string
}
