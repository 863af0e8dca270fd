package strategy

import (
	"fmt"

	"SignalSentry/internal/factor"
	"SignalSentry/internal/model"
)

// Analyze runs the full pipeline over a series: short-circuit on thin
// history, derive the factor columns, classify the last row. Pure and
// stateless; safe for concurrent use on independent series.
func Analyze(s *model.Series, cfg Config) *model.SignalResult {
	need := cfg.minBars()
	if s.Len() < need {
		return &model.SignalResult{
			Action: model.ActionSkip,
			Reason: fmt.Sprintf("insufficient data points (%d < %d)", s.Len(), need),
		}
	}

	rows := factor.Compute(s.Bars, cfg.Factor)
	last := rows[len(rows)-1]
	factors := substitute(last)
	action, score, reason := Classify(factors, &cfg)

	lastBar := s.Bars[s.Len()-1]
	ts := lastBar.Date
	if ts == "" {
		ts = "Latest"
	}
	closePrice := lastBar.Close
	if model.Missing(closePrice) {
		closePrice = 0
	}

	return &model.SignalResult{
		Timestamp:  ts,
		ClosePrice: closePrice,
		Factors:    &factors,
		Score:      score,
		Action:     action,
		Reason:     reason,
	}
}
