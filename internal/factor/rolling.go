package factor

import (
	"math"

	"SignalSentry/internal/model"
)

// rollingMean computes the trailing mean over `window` values ending at
// each index. Indexes with insufficient history, or whose window contains
// a missing value, yield NaN.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = model.MissingValue()
		if i < window-1 {
			continue
		}
		sum, ok := 0.0, true
		for j := i - window + 1; j <= i; j++ {
			if model.Missing(values[j]) {
				ok = false
				break
			}
			sum += values[j]
		}
		if ok {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// rollingStd computes the trailing sample standard deviation over `window`
// values ending at each index, with the same missing-value semantics as
// rollingMean.
func rollingStd(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = model.MissingValue()
		if i < window-1 || window < 2 {
			continue
		}
		sum, ok := 0.0, true
		for j := i - window + 1; j <= i; j++ {
			if model.Missing(values[j]) {
				ok = false
				break
			}
			sum += values[j]
		}
		if !ok {
			continue
		}
		mean := sum / float64(window)
		var sq float64
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean
			sq += d * d
		}
		out[i] = math.Sqrt(sq / float64(window-1))
	}
	return out
}

// priceChangePct computes the fractional close-to-close change.
// Undefined at index 0 and wherever either close is missing.
func priceChangePct(closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = model.MissingValue()
		if i == 0 {
			continue
		}
		prev, cur := closes[i-1], closes[i]
		if model.Missing(prev) || model.Missing(cur) || prev == 0 {
			continue
		}
		out[i] = (cur - prev) / prev
	}
	return out
}
