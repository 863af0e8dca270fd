package scheduler

import (
	"context"
	"fmt"
	"log"

	"SignalSentry/internal/collector"
	"SignalSentry/internal/model"
	"SignalSentry/internal/notifier"
	"SignalSentry/internal/recorder"
	"SignalSentry/internal/state"
	"SignalSentry/internal/strategy"

	"github.com/robfig/cron/v3"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Strategy  strategy.Config
	State     *state.Manager
	Notifier  *notifier.DiscordNotifier
	Recorder  recorder.Recorder
	Guard     *TradingDayGuard
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, cfg strategy.Config,
	sm *state.Manager, dn *notifier.DiscordNotifier, rec recorder.Recorder, guard *TradingDayGuard) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Strategy:  cfg,
		State:     sm,
		Notifier:  dn,
		Recorder:  rec,
		Guard:     guard,
		Ctx:       ctx,
	}
}

// RegisterAll registers the daily evaluation and the weekly digest.
func (s *Scheduler) RegisterAll(dailyCron, digestCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes one evaluation immediately, bypassing the trading-day
// guard (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.runOnce()
}

func (s *Scheduler) dailyTask() {
	if ok, reason := s.Guard.TradingDay(); !ok {
		log.Printf("[INFO] skipping daily run: %s", reason)
		return
	}
	s.runOnce()
}

// runOnce is the full pipeline: collect → analyze → record → state diff → notify.
// Failures are logged and reported, never fatal: the next scheduled run retries.
func (s *Scheduler) runOnce() {
	log.Println("[INFO] running signal evaluation")

	series, err := s.Collector.Collect()
	if err != nil {
		log.Printf("[ERROR] collect: %v", err)
		s.Notifier.SendError(s.Ctx, "data collection failed", err.Error())
		return
	}

	res := strategy.Analyze(series, s.Strategy)

	if res.Action == model.ActionSkip {
		log.Printf("[WARN] %s: %s", series.Symbol, res.Reason)
		if err := s.Recorder.RecordSkip(&recorder.SkipEvent{
			Symbol: series.Symbol, BarCount: series.Len(), Reason: res.Reason,
		}); err != nil {
			log.Printf("[ERROR] record skip: %v", err)
		}
		s.State.Apply(res)
		// thin data is an operational problem the operator should see
		title, desc := notifier.FormatSkipReport(series.Symbol, res)
		if err := s.Notifier.SendWithRetry(s.Ctx, title, desc, notifier.ActionColor(res.Action), 3); err != nil {
			log.Printf("[ERROR] send skip notification: %v", err)
			return
		}
		if err := s.Recorder.RecordNotify(&recorder.NotifyEvent{
			Symbol: series.Symbol, Kind: "SKIP", Title: title,
		}); err != nil {
			log.Printf("[ERROR] record skip notification: %v", err)
		}
		return
	}

	changed := s.State.Apply(res)
	log.Printf("[INFO] %s: %s (score %d) — %s, transition=%v",
		series.Symbol, res.Action, res.Score, res.Reason, changed)

	if err := s.Recorder.RecordSignal(&recorder.SignalRecord{
		Symbol: series.Symbol, BarCount: series.Len(), Result: res, Notified: changed,
	}); err != nil {
		log.Printf("[ERROR] record signal: %v", err)
	}

	if !changed {
		return
	}

	title, desc := notifier.FormatSignalReport(series.Symbol, res)
	if err := s.Notifier.SendWithRetry(s.Ctx, title, desc, notifier.ActionColor(res.Action), 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
		return
	}
	s.State.MarkNotified()
	if err := s.Recorder.RecordNotify(&recorder.NotifyEvent{
		Symbol: series.Symbol, Kind: "SIGNAL", Title: title,
	}); err != nil {
		log.Printf("[ERROR] record notification: %v", err)
	}
}

func (s *Scheduler) digestTask() {
	st := s.State.Get()
	if len(st.RecentActions) == 0 {
		log.Println("[INFO] digest skipped: no history yet")
		return
	}
	title, desc := notifier.FormatDigest(&st)
	if err := s.Notifier.SendWithRetry(s.Ctx, title, desc, notifier.ActionColor(st.LastAction), 3); err != nil {
		log.Printf("[ERROR] send digest: %v", err)
		return
	}
	if err := s.Recorder.RecordNotify(&recorder.NotifyEvent{
		Symbol: st.Symbol, Kind: "DIGEST", Title: title,
	}); err != nil {
		log.Printf("[ERROR] record digest: %v", err)
	}
}
