package render

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"StockAnalyzer/internal/dashboard"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/view"
)

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 2, 3}); got != "▁▅█" {
		t.Errorf("Sparkline = %q", got)
	}
	if got := Sparkline([]float64{5, 5}); got != "▄▄" {
		t.Errorf("flat Sparkline = %q", got)
	}
	if Sparkline(nil) != "" {
		t.Error("empty input must render nothing")
	}
}

func loadedState() dashboard.State {
	snap := model.Snapshot{
		Symbol: "AAPL",
		Quote: model.Quote{
			Symbol: "AAPL", Price: decimal.RequireFromString("187.42"),
			Change: decimal.RequireFromString("1.25"), ChangePercent: decimal.RequireFromString("0.67"),
			Volume: 52345678,
		},
		Prediction: model.Prediction{PredictedPrice: decimal.NewFromInt(189), Trend: model.TrendNeutral, Confidence: model.ConfidenceHigh},
		Indicators: model.IndicatorSet{SMA20: model.Present(decimal.NewFromInt(180))},
	}
	for i := 0; i < 60; i++ {
		snap.Chart.Points = append(snap.Chart.Points, model.ChartPoint{Date: "d", Close: decimal.NewFromInt(int64(i))})
	}
	dm := view.Assemble(snap)
	return dashboard.State{Kind: dashboard.Loaded, Symbol: "AAPL", Snapshot: &snap, View: &dm}
}

func TestDrawLoaded(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{}, view.ThemeDark)
	out := term.Draw(loadedState())
	for _, want := range []string{
		"Loaded data for AAPL",
		"$187.42",
		"+1.25 (0.67%)",
		"Volume: 52,345,678",
		"Price History (60 Days)",
		"Confidence High",
		"SMA (20)",
		"$180.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "RSI (14)") {
		t.Error("absent RSI must not be drawn")
	}
	spark := Sparkline(loadedState().View.Chart.Values)
	if utf8.RuneCountInString(spark) != 60 {
		t.Errorf("sparkline has %d points, want 60", utf8.RuneCountInString(spark))
	}
}

func TestDrawOtherStates(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{}, view.ThemeLight)
	tests := []struct {
		state dashboard.State
		want  string
	}{
		{dashboard.State{Kind: dashboard.Idle}, "Search for a Stock"},
		{dashboard.State{Kind: dashboard.Loading, Symbol: "MSFT"}, "Loading MSFT..."},
		{dashboard.State{Kind: dashboard.Failed, Reason: "Failed to load data for MSFT"}, "Failed to load data for MSFT"},
	}
	for _, tt := range tests {
		if got := term.Draw(tt.state); !strings.Contains(got, tt.want) {
			t.Errorf("Draw(%s) = %q, want substring %q", tt.state.Kind, got, tt.want)
		}
	}
}

func TestThemeAndRender(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, view.Theme("unknown"))
	if term.Theme() != view.ThemeLight {
		t.Errorf("theme = %s, want light", term.Theme())
	}
	if NewTerminal(&buf, view.ThemeDark).Theme() != view.ThemeDark {
		t.Error("theme = light, want dark")
	}
	term.Render(dashboard.State{Kind: dashboard.Loading, Symbol: "AAPL"})
	if !strings.Contains(buf.String(), "Loading AAPL...") {
		t.Errorf("Render wrote %q", buf.String())
	}
}

func TestObserveAndNotify(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, view.ThemeLight)

	term.Observe(dashboard.State{Kind: dashboard.Failed, Reason: "Failed to load data for AAPL"})
	if buf.Len() != 0 {
		t.Errorf("Observe must skip failed states, wrote %q", buf.String())
	}
	if err := term.Notify(context.Background(), "Failed to load data for AAPL"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if got := buf.String(); strings.Count(got, "Failed to load data for AAPL") != 1 {
		t.Errorf("Notify wrote %q", got)
	}
}
