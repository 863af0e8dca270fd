package strategy

import "SignalSentry/internal/factor"

// Weights is the factor weighting reserved for a future composite score.
// It is carried in configuration but not applied anywhere: the classifier
// uses only the hard rule thresholds.
type Weights struct {
	VPD    float64 `yaml:"vpd"`
	RSI    float64 `yaml:"rsi"`
	ZScore float64 `yaml:"z_score"`
}

// Config holds all strategy parameters. It is immutable once constructed;
// independent configs can run concurrently without interference.
type Config struct {
	Factor          factor.Config
	MinBars         int
	RSIOversold     float64
	RSIOverbought   float64
	VPDSpike        float64
	ZScoreThreshold float64
	Weights         Weights
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Factor:          factor.DefaultConfig(),
		MinBars:         20,
		RSIOversold:     30,
		RSIOverbought:   70,
		VPDSpike:        2.0,
		ZScoreThreshold: 2.0,
		Weights:         Weights{VPD: 0.4, RSI: 0.3, ZScore: 0.3},
	}
}

func (c Config) minBars() int {
	if c.MinBars > 0 {
		return c.MinBars
	}
	return c.Factor.MinBars()
}
