package scheduler

import "time"

// TradingDayGuard decides whether the daily evaluation should run.
// Weekends are skipped when configured, plus an explicit table of extra
// non-trading dates (exchange holidays announced per year).
type TradingDayGuard struct {
	SkipWeekends bool
	Holidays     map[string]bool
	Now          func() time.Time
}

// NewTradingDayGuard builds a guard from the configured holiday dates
// ("2006-01-02" format).
func NewTradingDayGuard(skipWeekends bool, holidays []string) *TradingDayGuard {
	set := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		set[h] = true
	}
	return &TradingDayGuard{
		SkipWeekends: skipWeekends,
		Holidays:     set,
		Now:          time.Now,
	}
}

// TradingDay reports whether today is a trading day, with the skip reason
// when it is not.
func (g *TradingDayGuard) TradingDay() (bool, string) {
	now := g.Now()
	if g.SkipWeekends {
		switch now.Weekday() {
		case time.Saturday, time.Sunday:
			return false, "weekend: " + now.Weekday().String()
		}
	}
	if day := now.Format("2006-01-02"); g.Holidays[day] {
		return false, "holiday: " + day
	}
	return true, ""
}
