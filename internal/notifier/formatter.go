package notifier

import (
	"fmt"
	"strings"
	"time"

	"SignalSentry/internal/model"
)

// Discord embed colors.
const (
	colorStrongBuy = 0x1ABC9C
	colorBuy       = 0x2ECC71
	colorHold      = 0x95A5A6
	colorSell      = 0xE74C3C
	colorSkip      = 0xF1C40F
	colorError     = 0xC0392B
)

// ActionColor maps an action to its embed color.
func ActionColor(a model.Action) int {
	switch a {
	case model.ActionStrongBuy:
		return colorStrongBuy
	case model.ActionBuy:
		return colorBuy
	case model.ActionSell:
		return colorSell
	case model.ActionSkip:
		return colorSkip
	default:
		return colorHold
	}
}

func actionEmoji(a model.Action) string {
	switch a {
	case model.ActionStrongBuy:
		return "🚨"
	case model.ActionBuy:
		return "📈"
	case model.ActionSell:
		return "📉"
	case model.ActionSkip:
		return "⏭️"
	default:
		return "⏸️"
	}
}

// FormatSignalReport formats an evaluation result into an embed title and body.
func FormatSignalReport(symbol string, res *model.SignalResult) (title, description string) {
	title = fmt.Sprintf("%s %s — %s", actionEmoji(res.Action), symbol, res.Action)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("**Reason:** %s\n", res.Reason))
	b.WriteString(fmt.Sprintf("**Score:** %d/100\n", res.Score))
	b.WriteString(fmt.Sprintf("**Close:** %.2f (%s)\n\n", res.ClosePrice, res.Timestamp))
	if res.Factors != nil {
		b.WriteString("**Factors**\n")
		b.WriteString(fmt.Sprintf("  VPD: %.2f\n", res.Factors.VPD))
		b.WriteString(fmt.Sprintf("  RSI(14): %.1f\n", res.Factors.RSI))
		b.WriteString(fmt.Sprintf("  Z-score(20): %+.2f\n", res.Factors.ZScore))
	}
	return title, b.String()
}

// FormatSkipReport formats an insufficient-data short-circuit.
func FormatSkipReport(symbol string, res *model.SignalResult) (title, description string) {
	title = fmt.Sprintf("%s %s — SKIP", actionEmoji(model.ActionSkip), symbol)
	return title, fmt.Sprintf("**Reason:** %s", res.Reason)
}

// FormatDigest formats the weekly summary from the watch state.
func FormatDigest(st *model.WatchState) (title, description string) {
	title = fmt.Sprintf("📊 %s weekly digest — %s", st.Symbol, time.Now().Format("2006-01-02"))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("**Last action:** %s (score %d)\n", st.LastAction, st.LastScore))
	b.WriteString(fmt.Sprintf("**Last close:** %.2f (%s)\n", st.LastClose, st.LastTimestamp))
	if st.ConsecutiveAnomalies > 0 {
		b.WriteString(fmt.Sprintf("**Anomaly streak:** %d runs\n", st.ConsecutiveAnomalies))
	}
	if len(st.RecentActions) > 0 {
		parts := make([]string, len(st.RecentActions))
		for i, a := range st.RecentActions {
			parts[i] = string(a)
		}
		b.WriteString(fmt.Sprintf("**Recent:** %s\n", strings.Join(parts, " → ")))
	}
	if len(st.RecentScores) > 0 {
		sum := 0
		for _, s := range st.RecentScores {
			sum += s
		}
		b.WriteString(fmt.Sprintf("**Avg score:** %.1f over %d runs\n",
			float64(sum)/float64(len(st.RecentScores)), len(st.RecentScores)))
	}
	return title, b.String()
}
