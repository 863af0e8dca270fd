package collector

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"SignalSentry/internal/model"
	"SignalSentry/internal/series"
)

// RESTFetcher implements Fetcher against a candles REST API that serves
// the engine's native input shape (a "candles" envelope or a bare list).
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

func (f *RESTFetcher) FetchSeries(symbol string, limit int) (*model.Series, error) {
	endpoint := fmt.Sprintf("%s/api/v1/candles?symbol=%s&limit=%d",
		f.BaseURL, url.QueryEscape(symbol), limit)

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch candles: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch candles: status %d, body: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read candles body: %w", err)
	}
	s, err := series.Load(body)
	if err != nil {
		return nil, fmt.Errorf("normalize candles: %w", err)
	}
	return s, nil
}
