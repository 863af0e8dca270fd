package scheduler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"SignalSentry/internal/collector"
	"SignalSentry/internal/model"
	"SignalSentry/internal/notifier"
	"SignalSentry/internal/recorder"
	"SignalSentry/internal/state"
	"SignalSentry/internal/strategy"
)

type webhookCapture struct {
	mu       sync.Mutex
	payloads []string
}

func (w *webhookCapture) handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		var body struct {
			Embeds []struct {
				Title       string `json:"title"`
				Description string `json:"description"`
			} `json:"embeds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			w.mu.Lock()
			for _, e := range body.Embeds {
				w.payloads = append(w.payloads, e.Title+"\n"+e.Description)
			}
			w.mu.Unlock()
		}
		rw.WriteHeader(http.StatusNoContent)
	}
}

func (w *webhookCapture) all() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.payloads...)
}

func newTestScheduler(t *testing.T, fetcher collector.Fetcher, webhookURL string) (*Scheduler, *state.Manager) {
	t.Helper()
	sm, err := state.NewManager(filepath.Join(t.TempDir(), "state.json"), "TEST")
	if err != nil {
		t.Fatalf("state manager: %v", err)
	}
	col := collector.NewCollector(fetcher, "TEST", 100)
	dn := notifier.NewDiscordNotifier(webhookURL, "test-bot", "")
	s := NewScheduler(context.Background(), col, strategy.DefaultConfig(),
		sm, dn, recorder.NewNoopRecorder(), NewTradingDayGuard(false, nil))
	return s, sm
}

func thinSeries(n int) *model.Series {
	bars := make([]model.Bar, n)
	for i := range bars {
		bars[i] = model.Bar{
			Date:   time.Date(2025, 1, 2+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			Close:  100 + float64(i),
			Volume: 1000,
		}
	}
	return &model.Series{Bars: bars}
}

func TestRunNow_ThinHistoryNotifiesSkip(t *testing.T) {
	capture := &webhookCapture{}
	srv := httptest.NewServer(capture.handler())
	defer srv.Close()

	s, sm := newTestScheduler(t, &collector.MockFetcher{Series: thinSeries(5)}, srv.URL)
	s.RunNow()

	got := capture.all()
	if len(got) != 1 {
		t.Fatalf("expected 1 webhook delivery for thin data, got %d", len(got))
	}
	if !strings.Contains(got[0], "SKIP") {
		t.Errorf("skip notification missing action marker: %q", got[0])
	}
	if !strings.Contains(got[0], "insufficient data points (5 < 20)") {
		t.Errorf("skip notification missing reason: %q", got[0])
	}
	if st := sm.Get(); st.LastAction != "" {
		t.Errorf("thin-data run must not record a recommendation, got %q", st.LastAction)
	}
}

func TestRunNow_AnomalyNotifiesOnFirstRun(t *testing.T) {
	capture := &webhookCapture{}
	srv := httptest.NewServer(capture.handler())
	defer srv.Close()

	s, sm := newTestScheduler(t, &collector.MockFetcher{PanicTail: true}, srv.URL)
	s.RunNow()

	got := capture.all()
	if len(got) != 1 {
		t.Fatalf("expected 1 webhook delivery for first anomaly, got %d", len(got))
	}
	if !strings.Contains(got[0], string(model.ActionStrongBuy)) {
		t.Errorf("notification missing action: %q", got[0])
	}
	if st := sm.Get(); st.LastAction != model.ActionStrongBuy {
		t.Errorf("state LastAction = %q, want %q", st.LastAction, model.ActionStrongBuy)
	}

	// same result again: no transition, no second delivery
	s.RunNow()
	if got := capture.all(); len(got) != 1 {
		t.Fatalf("unchanged action must not re-notify, got %d deliveries", len(got))
	}
}
