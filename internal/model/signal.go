package model

import "encoding/json"

// Action is the categorical trading recommendation.
type Action string

const (
	ActionStrongBuy Action = "STRONG_BUY"
	ActionBuy       Action = "BUY"
	ActionHold      Action = "HOLD"
	ActionSell      Action = "SELL"
	// ActionSkip is emitted only by the caller-level short-circuit when
	// history is insufficient, never by the classifier itself.
	ActionSkip Action = "SKIP"
)

// Factors are the classifier inputs after missing-value substitution
// (vpd→0, rsi→50, z_score→0).
type Factors struct {
	VPD    float64 `json:"vpd"`
	RSI    float64 `json:"rsi"`
	ZScore float64 `json:"z_score"`
}

// SignalResult is the sole engine output, created once per invocation
// from the last factor row and never mutated afterward.
type SignalResult struct {
	Timestamp  string   `json:"timestamp"`
	ClosePrice float64  `json:"close_price"`
	Factors    *Factors `json:"factors"`
	Score      int      `json:"score"`
	Action     Action   `json:"action"`
	Reason     string   `json:"reason"`
}

// MarshalJSON emits the short record (action and reason only) for the
// insufficient-history short-circuit; full results always carry every
// field, including a zero close_price.
func (r *SignalResult) MarshalJSON() ([]byte, error) {
	if r.Action == ActionSkip {
		return json.Marshal(struct {
			Action Action `json:"action"`
			Reason string `json:"reason"`
		}{r.Action, r.Reason})
	}
	type full SignalResult
	return json.Marshal((*full)(r))
}

// Anomalous reports whether the result is anything other than HOLD or SKIP.
func (r *SignalResult) Anomalous() bool {
	return r.Action != ActionHold && r.Action != ActionSkip
}
