package model

import "time"

// WatchState tracks signal history between runs so the bot can notify
// on transitions instead of repeating the same recommendation daily.
type WatchState struct {
	Symbol               string    `json:"symbol"`
	LastAction           Action    `json:"last_action"`
	LastScore            int       `json:"last_score"`
	LastTimestamp        string    `json:"last_timestamp"`
	LastClose            float64   `json:"last_close"`
	RecentScores         []int     `json:"recent_scores"`
	RecentActions        []Action  `json:"recent_actions"`
	ConsecutiveAnomalies int       `json:"consecutive_anomalies"`
	LastNotifiedAt       time.Time `json:"last_notified_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
