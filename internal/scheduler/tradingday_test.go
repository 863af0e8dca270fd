package scheduler

import (
	"testing"
	"time"
)

func guardAt(t *testing.T, day string, skipWeekends bool, holidays []string) *TradingDayGuard {
	t.Helper()
	g := NewTradingDayGuard(skipWeekends, holidays)
	g.Now = func() time.Time {
		ts, err := time.Parse("2006-01-02", day)
		if err != nil {
			t.Fatalf("bad test date %q: %v", day, err)
		}
		return ts
	}
	return g
}

func TestTradingDay(t *testing.T) {
	tests := []struct {
		name         string
		day          string
		skipWeekends bool
		holidays     []string
		want         bool
	}{
		{"monday", "2025-08-25", true, nil, true},
		{"friday", "2025-08-29", true, nil, true},
		{"saturday skipped", "2025-08-30", true, nil, false},
		{"sunday skipped", "2025-08-31", true, nil, false},
		{"saturday allowed when not skipping", "2025-08-30", false, nil, true},
		{"configured holiday", "2025-12-25", true, []string{"2025-12-25"}, false},
		{"holiday applies even without weekend skip", "2025-12-25", false, []string{"2025-12-25"}, false},
		{"day after holiday", "2025-12-26", true, []string{"2025-12-25"}, true},
	}
	for _, tt := range tests {
		g := guardAt(t, tt.day, tt.skipWeekends, tt.holidays)
		got, reason := g.TradingDay()
		if got != tt.want {
			t.Errorf("%s: TradingDay() = %v (%s), want %v", tt.name, got, reason, tt.want)
		}
		if !got && reason == "" {
			t.Errorf("%s: skip must carry a reason", tt.name)
		}
	}
}
