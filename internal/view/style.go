package view

import "strings"

// Theme selects a colour palette.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case. Anything else is light.
func ParseTheme(s string) Theme {
	if strings.EqualFold(strings.TrimSpace(s), string(ThemeDark)) {
		return ThemeDark
	}
	return ThemeLight
}

type TooltipStyle struct {
	Background  string
	Title       string
	Body        string
	Border      string
	BorderWidth int
}

// RenderConfig is the colour set a renderer draws with.
type RenderConfig struct {
	Theme     Theme
	LineColor string
	FillColor string
	GridColor string
	TickColor string
	Tooltip   TooltipStyle
	UpColor   string
	DownColor string
	FlatColor string
}

// ColorFor returns the colour for a direction hint.
func (c RenderConfig) ColorFor(d Direction) string {
	switch d {
	case DirectionUp:
		return c.UpColor
	case DirectionDown:
		return c.DownColor
	default:
		return c.FlatColor
	}
}

// ZoneColor returns the emphasis colour for an RSI zone, or "" for none.
func (c RenderConfig) ZoneColor(z RSIZone) string {
	switch z {
	case ZoneOverbought:
		return c.DownColor
	case ZoneOversold:
		return c.UpColor
	default:
		return ""
	}
}

const (
	lineColor = "#3b82f6"
	fillColor = "rgba(59, 130, 246, 0.1)"
	upColor   = "#10b981"
	downColor = "#f43f5e"
	flatColor = "#64748b"
)

var palettes = map[Theme]RenderConfig{
	ThemeDark: {
		Theme:     ThemeDark,
		LineColor: lineColor,
		FillColor: fillColor,
		GridColor: "#1e293b",
		TickColor: "#94a3b8",
		Tooltip: TooltipStyle{
			Background:  "#1e293b",
			Title:       "#f8fafc",
			Body:        "#f8fafc",
			Border:      "#334155",
			BorderWidth: 1,
		},
		UpColor:   upColor,
		DownColor: downColor,
		FlatColor: flatColor,
	},
	ThemeLight: {
		Theme:     ThemeLight,
		LineColor: lineColor,
		FillColor: fillColor,
		GridColor: "#e2e8f0",
		TickColor: "#64748b",
		Tooltip: TooltipStyle{
			Background:  "#ffffff",
			Title:       "#0f172a",
			Body:        "#0f172a",
			Border:      "#e2e8f0",
			BorderWidth: 1,
		},
		UpColor:   upColor,
		DownColor: downColor,
		FlatColor: flatColor,
	},
}

// Resolve returns the render config for theme. Unknown themes resolve as light.
func Resolve(theme Theme) RenderConfig {
	if cfg, ok := palettes[theme]; ok {
		return cfg
	}
	return palettes[ThemeLight]
}
