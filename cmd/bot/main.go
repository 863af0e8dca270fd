package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"SignalSentry/internal/collector"
	"SignalSentry/internal/config"
	"SignalSentry/internal/notifier"
	"SignalSentry/internal/recorder"
	"SignalSentry/internal/scheduler"
	"SignalSentry/internal/state"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SignalSentry starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init collector
	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol, cfg.DataSource.Bars)

	// Init watch state
	sm, err := state.NewManager(cfg.State.File, cfg.DataSource.Symbol)
	if err != nil {
		log.Fatalf("[FATAL] init state manager: %v", err)
	}

	// Init Discord notifier
	dn := notifier.NewDiscordNotifier(cfg.Discord.WebhookURL, cfg.Discord.Username, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	guard := scheduler.NewTradingDayGuard(cfg.Schedule.SkipWeekends, cfg.Schedule.Holidays)
	sched := scheduler.NewScheduler(ctx, col, cfg.Strategy(), sm, dn, rec, guard)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.DigestCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing evaluation now")
		go sched.RunNow()
	}

	log.Println("[INFO] SignalSentry is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] SignalSentry stopped")
}
