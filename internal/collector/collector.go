package collector

import (
	"fmt"
	"log"
	"time"

	"SignalSentry/internal/model"
)

// Collector binds a fetcher to a symbol and bar count.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
	Bars    int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, bars int) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, Bars: bars}
}

// Collect fetches the candle series for the configured symbol.
func (c *Collector) Collect() (*model.Series, error) {
	s, err := c.Fetcher.FetchSeries(c.Symbol, c.Bars)
	if err != nil {
		return nil, fmt.Errorf("fetch series for %s: %w", c.Symbol, err)
	}
	s.Symbol = c.Symbol
	log.Printf("[INFO] collected %d bars for %s from %s", s.Len(), c.Symbol, c.Fetcher.Name())
	return s, nil
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series    *model.Series
	PanicTail bool
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ string, limit int) (*model.Series, error) {
	if m.Series != nil {
		return m.Series, nil
	}
	return GenerateMockSeries(limit, m.PanicTail), nil
}

// GenerateMockSeries builds a gently rising series of `count` bars. With
// panicTail, the last bar becomes a huge drop on huge volume so the
// downstream classifier has something to find.
func GenerateMockSeries(count int, panicTail bool) *model.Series {
	bars := make([]model.Bar, count)
	start := time.Now().AddDate(0, 0, -count)
	for i := 0; i < count; i++ {
		bars[i] = model.Bar{
			Date:   start.AddDate(0, 0, i).Format("2006-01-02"),
			Open:   100 + float64(i),
			High:   105 + float64(i),
			Low:    95 + float64(i),
			Close:  102 + float64(i),
			Volume: 1000 + float64(i)*10,
		}
	}
	if panicTail && count > 0 {
		bars[count-1].Close = 80
		bars[count-1].Volume = 50000
	}
	return &model.Series{Bars: bars, FetchedAt: time.Now()}
}
