package notifier

import (
	"fmt"
	"html"
	"strings"

	"StockAnalyzer/internal/dashboard"
	"StockAnalyzer/internal/view"
)

var directionMark = map[view.Direction]string{
	view.DirectionUp:   "🟢",
	view.DirectionDown: "🔴",
	view.DirectionFlat: "⚪",
}

var zoneNote = map[view.RSIZone]string{
	view.ZoneOverbought: " (overbought)",
	view.ZoneOversold:   " (oversold)",
}

// FormatSnapshotReport formats a loaded dashboard as a Telegram HTML message.
func FormatSnapshotReport(dm view.DisplayModel) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> %s\n", html.EscapeString(dm.Symbol), html.EscapeString(dm.Timestamp)))
	b.WriteString(fmt.Sprintf("Price: <b>%s</b>\n", dm.Price))
	b.WriteString(fmt.Sprintf("Change: %s %s\n", directionMark[dm.Direction], dm.Change))
	b.WriteString(fmt.Sprintf("Volume: %s\n\n", dm.Volume))

	if n := dm.Chart.Len(); n > 0 {
		first, last := dm.Chart.Labels[0], dm.Chart.Labels[n-1]
		b.WriteString(fmt.Sprintf("📈 Price History (%d Days): %s → %s\n\n", n, html.EscapeString(first), html.EscapeString(last)))
	}

	b.WriteString("🔮 <b>Prediction</b>\n")
	b.WriteString(fmt.Sprintf("  Next day: %s\n", dm.Prediction.Predicted))
	b.WriteString(fmt.Sprintf("  Trend: %s %s\n", directionMark[dm.Prediction.TrendHint], dm.Prediction.Trend))
	b.WriteString(fmt.Sprintf("  Confidence: %s\n", dm.Prediction.Confidence))

	if len(dm.Indicators) > 0 {
		b.WriteString("\n📐 <b>Technical Indicators</b>\n")
		for _, row := range dm.Indicators {
			b.WriteString(fmt.Sprintf("  %s: %s%s\n", row.Label, row.Value, zoneNote[row.Zone]))
		}
	}
	return b.String()
}

// FormatStatus summarises the dashboard state.
func FormatStatus(s dashboard.State) string {
	switch s.Kind {
	case dashboard.Idle:
		return "💤 No symbol loaded. Send a ticker like <code>AAPL</code>."
	case dashboard.Loading:
		return fmt.Sprintf("⏳ Loading <b>%s</b>...", html.EscapeString(s.Symbol))
	case dashboard.Loaded:
		return fmt.Sprintf("✅ <b>%s</b> loaded: %s %s", html.EscapeString(s.Symbol), s.View.Price, s.View.Change)
	case dashboard.Failed:
		return "❌ " + html.EscapeString(s.Reason)
	default:
		return "unknown state"
	}
}

// FormatHelp lists the bot commands.
func FormatHelp() string {
	var b strings.Builder
	b.WriteString("<b>Commands</b>\n")
	b.WriteString("  <code>AAPL</code> or <code>/quote AAPL</code> - load a symbol\n")
	b.WriteString("  <code>/status</code> - current dashboard state\n")
	b.WriteString("  <code>/help</code> - this message\n")
	return b.String()
}
