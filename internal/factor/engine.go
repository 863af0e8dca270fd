package factor

import (
	"math"

	"SignalSentry/internal/model"
)

// Substitution constants for numeric degeneracies. These are not error
// conditions: they keep every derivation defined over all numeric inputs.
const (
	epsilon          = 1e-6   // flat-price guard in the VPD denominator
	zeroLossRSI      = 0.0001 // keeps RSI near 100 when there are no losses
	zeroStdZScore    = 0.0001 // flat-window guard for the z-score
	zeroVolumeMASubs = 1.0    // zero-average-volume guard for the VPD ratio
)

// Config holds the rolling-window sizes. Immutable once constructed;
// pass a copy per invocation for concurrent use.
type Config struct {
	VolumeMAPeriod int
	RSIPeriod      int
	ZScoreWindow   int
}

// DefaultConfig returns the documented window defaults.
func DefaultConfig() Config {
	return Config{
		VolumeMAPeriod: 20,
		RSIPeriod:      14,
		ZScoreWindow:   20,
	}
}

// MinBars returns the shortest series the factor set is defined on,
// i.e. the slowest rolling window.
func (c Config) MinBars() int {
	n := c.VolumeMAPeriod
	if c.ZScoreWindow > n {
		n = c.ZScoreWindow
	}
	if c.RSIPeriod+1 > n {
		n = c.RSIPeriod + 1
	}
	return n
}

// Compute derives the three factor columns for every bar index. All
// windows are trailing and causal: row i depends only on bars ≤ i.
// Bars are never mutated.
func Compute(bars []model.Bar, cfg Config) []model.FactorRow {
	n := len(bars)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	volMA := rollingMean(volumes, cfg.VolumeMAPeriod)
	pct := priceChangePct(closes)
	rsi := computeRSI(closes, cfg.RSIPeriod)
	ma := rollingMean(closes, cfg.ZScoreWindow)
	std := rollingStd(closes, cfg.ZScoreWindow)

	rows := make([]model.FactorRow, n)
	for i := range rows {
		rows[i] = model.FactorRow{
			VolumeMA:       volMA[i],
			PriceChangePct: pct[i],
			VPD:            vpdAt(volumes[i], volMA[i], pct[i]),
			RSI:            rsi[i],
			ZScore:         zScoreAt(closes[i], ma[i], std[i]),
		}
	}
	return rows
}

// vpdAt computes the volume-price divergence for one row: relative volume
// surge divided by relative price movement. A large value flags volume
// without a corresponding price move.
func vpdAt(volume, volumeMA, changePct float64) float64 {
	if model.Missing(volume) || model.Missing(volumeMA) || model.Missing(changePct) {
		return model.MissingValue()
	}
	if volumeMA == 0 {
		volumeMA = zeroVolumeMASubs
	}
	return (volume / volumeMA) / (math.Abs(changePct) + epsilon)
}

func zScoreAt(close, ma, std float64) float64 {
	if model.Missing(close) || model.Missing(ma) || model.Missing(std) {
		return model.MissingValue()
	}
	if std == 0 {
		std = zeroStdZScore
	}
	return (close - ma) / std
}

// computeRSI derives the RSI from trailing simple means of gains and
// losses. A delta exists only from index 1, so the first defined RSI is
// at index `period`; windows containing a missing delta stay missing.
func computeRSI(closes []float64, period int) []float64 {
	n := len(closes)
	deltas := make([]float64, n)
	for i := range deltas {
		deltas[i] = model.MissingValue()
		if i == 0 {
			continue
		}
		if model.Missing(closes[i-1]) || model.Missing(closes[i]) {
			continue
		}
		deltas[i] = closes[i] - closes[i-1]
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = model.MissingValue()
		if i < period {
			continue
		}
		var gain, loss float64
		ok := true
		for j := i - period + 1; j <= i; j++ {
			d := deltas[j]
			if model.Missing(d) {
				ok = false
				break
			}
			if d > 0 {
				gain += d
			} else {
				loss -= d
			}
		}
		if !ok {
			continue
		}
		gain /= float64(period)
		loss /= float64(period)
		if loss == 0 {
			loss = zeroLossRSI
		}
		rs := gain / loss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return out
}
