package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"SignalSentry/internal/factor"
	"SignalSentry/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Discord struct {
		WebhookURL string `yaml:"webhook_url"`
		Username   string `yaml:"username"`
	} `yaml:"discord"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Symbol  string `yaml:"symbol"`
		Bars    int    `yaml:"bars"`
	} `yaml:"data_source"`
	Schedule struct {
		DailyCron    string `yaml:"daily_cron"`
		DigestCron   string `yaml:"digest_cron"`
		SkipWeekends bool   `yaml:"skip_weekends"`
		// extra non-trading dates, "2006-01-02" format
		Holidays []string `yaml:"holidays"`
	} `yaml:"schedule"`
	Analysis struct {
		MinBars         int     `yaml:"min_bars"`
		RSIPeriod       int     `yaml:"rsi_period"`
		VolumeMAPeriod  int     `yaml:"volume_ma_period"`
		ZScoreWindow    int     `yaml:"z_score_window"`
		ZScoreThreshold float64 `yaml:"z_score_threshold"`
		RSIOversold     float64 `yaml:"rsi_oversold"`
		RSIOverbought   float64 `yaml:"rsi_overbought"`
		VPDSpike        float64 `yaml:"vpd_spike"`
		// reserved for a weighted composite score, currently unused
		Weights strategy.Weights `yaml:"weights"`
	} `yaml:"analysis"`
	State struct {
		File string `yaml:"file"`
	} `yaml:"state"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Discord.WebhookURL = v
	}
	if v := os.Getenv("CANDLES_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("CANDLES_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		cfg.State.File = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "SPX500"
	}
	if cfg.DataSource.Bars == 0 {
		cfg.DataSource.Bars = 120
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 30 8 * * 1-5"
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = "0 0 18 * * 5"
	}
	if cfg.State.File == "" {
		cfg.State.File = "data/signal_state.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/signal_sentry.db"
	}
	applyAnalysisDefaults(cfg)

	return cfg, nil
}

func applyAnalysisDefaults(cfg *Config) {
	def := strategy.DefaultConfig()
	a := &cfg.Analysis
	if a.MinBars == 0 {
		a.MinBars = def.MinBars
	}
	if a.RSIPeriod == 0 {
		a.RSIPeriod = def.Factor.RSIPeriod
	}
	if a.VolumeMAPeriod == 0 {
		a.VolumeMAPeriod = def.Factor.VolumeMAPeriod
	}
	if a.ZScoreWindow == 0 {
		a.ZScoreWindow = def.Factor.ZScoreWindow
	}
	if a.ZScoreThreshold == 0 {
		a.ZScoreThreshold = def.ZScoreThreshold
	}
	if a.RSIOversold == 0 {
		a.RSIOversold = def.RSIOversold
	}
	if a.RSIOverbought == 0 {
		a.RSIOverbought = def.RSIOverbought
	}
	if a.VPDSpike == 0 {
		a.VPDSpike = def.VPDSpike
	}
	if a.Weights == (strategy.Weights{}) {
		a.Weights = def.Weights
	}
}

// Strategy builds the immutable strategy config from the analysis section.
func (c *Config) Strategy() strategy.Config {
	return strategy.Config{
		Factor: factor.Config{
			VolumeMAPeriod: c.Analysis.VolumeMAPeriod,
			RSIPeriod:      c.Analysis.RSIPeriod,
			ZScoreWindow:   c.Analysis.ZScoreWindow,
		},
		MinBars:         c.Analysis.MinBars,
		RSIOversold:     c.Analysis.RSIOversold,
		RSIOverbought:   c.Analysis.RSIOverbought,
		VPDSpike:        c.Analysis.VPDSpike,
		ZScoreThreshold: c.Analysis.ZScoreThreshold,
		Weights:         c.Analysis.Weights,
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Discord.WebhookURL == "" {
		return fmt.Errorf("discord.webhook_url is required")
	}
	if c.DataSource.Symbol == "" {
		return fmt.Errorf("data_source.symbol is required")
	}
	if c.Analysis.MinBars < c.Analysis.VolumeMAPeriod {
		return fmt.Errorf("analysis.min_bars must cover the slowest window (%d)", c.Analysis.VolumeMAPeriod)
	}
	return nil
}
