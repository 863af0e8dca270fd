package recorder

import "SignalSentry/internal/model"

// SignalRecord holds one engine evaluation for the history tables.
type SignalRecord struct {
	Symbol   string
	BarCount int
	Result   *model.SignalResult
	Notified bool
}

// SkipEvent records an insufficient-data short-circuit.
type SkipEvent struct {
	Symbol   string
	BarCount int
	Reason   string
}

// NotifyEvent records a delivered notification.
type NotifyEvent struct {
	Symbol string
	Kind   string // "SIGNAL", "SKIP", "DIGEST", "ERROR"
	Title  string
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordSignal(rec *SignalRecord) error
	RecordSkip(evt *SkipEvent) error
	RecordNotify(evt *NotifyEvent) error
	Close() error
}
