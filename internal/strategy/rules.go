package strategy

import "SignalSentry/internal/model"

// Fixed-vocabulary reasons, one per rule.
const (
	ReasonPanicSell   = "panic-sell capture: oversold momentum + volume spike"
	ReasonOversoldZ   = "price dislocation: oversold vs 20-period mean"
	ReasonOverbought  = "overbought: momentum exhaustion"
	ReasonOverheatedZ = "price dislocation: overheated vs 20-period mean"
	ReasonNoAnomaly   = "no anomaly detected"
)

// Defaults substituted for missing factor values before rule evaluation.
// This keeps the classifier total, biased toward HOLD when data is thin.
const (
	defaultVPD    = 0.0
	defaultRSI    = 50.0
	defaultZScore = 0.0
)

// rule pairs a predicate with its outcome. Rules form a priority list:
// the first match wins, later rules are never consulted.
type rule struct {
	match  func(f model.Factors, cfg *Config) bool
	action model.Action
	score  int
	reason string
}

var rules = []rule{
	{
		match: func(f model.Factors, cfg *Config) bool {
			return f.RSI < cfg.RSIOversold && f.VPD > cfg.VPDSpike
		},
		action: model.ActionStrongBuy, score: 90, reason: ReasonPanicSell,
	},
	{
		match: func(f model.Factors, cfg *Config) bool {
			return f.ZScore < -cfg.ZScoreThreshold
		},
		action: model.ActionBuy, score: 75, reason: ReasonOversoldZ,
	},
	{
		match: func(f model.Factors, cfg *Config) bool {
			return f.RSI > cfg.RSIOverbought
		},
		action: model.ActionSell, score: 20, reason: ReasonOverbought,
	},
	{
		match: func(f model.Factors, cfg *Config) bool {
			return f.ZScore > cfg.ZScoreThreshold
		},
		action: model.ActionSell, score: 30, reason: ReasonOverheatedZ,
	},
}

// Classify evaluates the ordered rule list against substituted factors.
// Falls through to HOLD when no rule matches. Never returns SKIP.
func Classify(f model.Factors, cfg *Config) (model.Action, int, string) {
	for _, r := range rules {
		if r.match(f, cfg) {
			return r.action, r.score, r.reason
		}
	}
	return model.ActionHold, 50, ReasonNoAnomaly
}

// substitute replaces missing factor values with the neutral defaults.
func substitute(row model.FactorRow) model.Factors {
	f := model.Factors{VPD: defaultVPD, RSI: defaultRSI, ZScore: defaultZScore}
	if !model.Missing(row.VPD) {
		f.VPD = row.VPD
	}
	if !model.Missing(row.RSI) {
		f.RSI = row.RSI
	}
	if !model.Missing(row.ZScore) {
		f.ZScore = row.ZScore
	}
	return f
}
