package render

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"StockAnalyzer/internal/dashboard"
	"StockAnalyzer/internal/view"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Terminal draws dashboard states with lipgloss.
type Terminal struct {
	mu  sync.Mutex // serializes writes to out
	out io.Writer
	r   *lipgloss.Renderer
	cfg view.RenderConfig
}

// NewTerminal creates a renderer writing to out. Colours are dropped
// automatically when out is not a terminal.
func NewTerminal(out io.Writer, theme view.Theme) *Terminal {
	return &Terminal{
		out: out,
		r:   lipgloss.NewRenderer(out),
		cfg: view.Resolve(theme),
	}
}

// Theme returns the active theme.
func (t *Terminal) Theme() view.Theme { return t.cfg.Theme }

// Render draws s to the output. It can be passed to Controller.Subscribe.
func (t *Terminal) Render(s dashboard.State) {
	out := t.Draw(s)
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, out)
}

// Observe renders every state except Failed, which is reported through
// Notify. Use it with Controller.Subscribe when the terminal is also the notifier.
func (t *Terminal) Observe(s dashboard.State) {
	if s.Kind == dashboard.Failed {
		return
	}
	t.Render(s)
}

// Notify prints a failure notice in the down colour.
func (t *Terminal) Notify(_ context.Context, text string) error {
	t.Render(dashboard.State{Kind: dashboard.Failed, Reason: text})
	return nil
}

// Draw returns the text for s without writing it.
func (t *Terminal) Draw(s dashboard.State) string {
	cfg := t.cfg
	muted := t.r.NewStyle().Foreground(lipgloss.Color(cfg.TickColor))
	switch s.Kind {
	case dashboard.Idle:
		title := t.r.NewStyle().Bold(true).Render("Search for a Stock")
		return title + "\n" + muted.Render("Enter a stock symbol above to view detailed analysis and predictions")
	case dashboard.Loading:
		return muted.Render(fmt.Sprintf("Loading %s...", s.Symbol))
	case dashboard.Failed:
		return t.r.NewStyle().Foreground(lipgloss.Color(cfg.DownColor)).Render(s.Reason)
	case dashboard.Loaded:
		if s.View == nil {
			return ""
		}
		return t.drawLoaded(cfg, *s.View)
	}
	return ""
}

func (t *Terminal) drawLoaded(cfg view.RenderConfig, dm view.DisplayModel) string {
	muted := t.r.NewStyle().Foreground(lipgloss.Color(cfg.TickColor))
	bold := t.r.NewStyle().Bold(true)
	panel := t.r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(cfg.GridColor)).
		Padding(0, 1)
	colored := func(d view.Direction) lipgloss.Style {
		return t.r.NewStyle().Foreground(lipgloss.Color(cfg.ColorFor(d)))
	}

	notice := colored(view.DirectionUp).Render("Loaded data for " + dm.Symbol)

	header := lipgloss.JoinVertical(lipgloss.Left,
		bold.Render(dm.Symbol)+"  "+muted.Render(dm.Timestamp),
		bold.Render(dm.Price)+"  "+colored(dm.Direction).Render(dm.Change),
		muted.Render("Volume: "+dm.Volume),
	)

	chart := lipgloss.JoinVertical(lipgloss.Left,
		bold.Render(fmt.Sprintf("Price History (%d Days)", dm.Chart.Len())),
		t.r.NewStyle().Foreground(lipgloss.Color(cfg.LineColor)).Render(Sparkline(dm.Chart.Values)),
		muted.Render(chartRange(dm.Chart)),
	)

	pred := lipgloss.JoinVertical(lipgloss.Left,
		bold.Render("AI Prediction"),
		muted.Render("Next Day Prediction"),
		bold.Render(dm.Prediction.Predicted),
		muted.Render("Trend ")+colored(dm.Prediction.TrendHint).Render(dm.Prediction.Trend),
		muted.Render("Confidence ")+dm.Prediction.Confidence,
	)

	sections := []string{notice, panel.Render(header), panel.Render(chart), panel.Render(pred)}
	if len(dm.Indicators) > 0 {
		lines := []string{bold.Render("Technical Indicators")}
		for _, row := range dm.Indicators {
			value := row.Value
			if c := cfg.ZoneColor(row.Zone); c != "" {
				value = t.r.NewStyle().Foreground(lipgloss.Color(c)).Render(value)
			}
			lines = append(lines, fmt.Sprintf("%-10s %s", muted.Render(row.Label), value))
		}
		sections = append(sections, panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func chartRange(c view.ChartData) string {
	if c.Len() == 0 {
		return ""
	}
	return c.Labels[0] + " → " + c.Labels[len(c.Labels)-1]
}

// Sparkline maps values onto eight block heights, one rune per value.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	var b strings.Builder
	top := len(sparkLevels) - 1
	for _, v := range values {
		idx := top / 2
		if hi > lo {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(top)))
		}
		b.WriteRune(sparkLevels[idx])
	}
	return b.String()
}
