package view

import "testing"

func TestResolve(t *testing.T) {
	dark := Resolve(ThemeDark)
	light := Resolve(ThemeLight)

	tests := []struct{ name, got, want string }{
		{"dark grid", dark.GridColor, "#1e293b"},
		{"dark tick", dark.TickColor, "#94a3b8"},
		{"dark tooltip bg", dark.Tooltip.Background, "#1e293b"},
		{"dark tooltip title", dark.Tooltip.Title, "#f8fafc"},
		{"dark tooltip border", dark.Tooltip.Border, "#334155"},
		{"light grid", light.GridColor, "#e2e8f0"},
		{"light tick", light.TickColor, "#64748b"},
		{"light tooltip bg", light.Tooltip.Background, "#ffffff"},
		{"light tooltip body", light.Tooltip.Body, "#0f172a"},
		{"line", light.LineColor, "#3b82f6"},
		{"fill", dark.FillColor, "rgba(59, 130, 246, 0.1)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
	if dark.Tooltip.BorderWidth != 1 || light.Tooltip.BorderWidth != 1 {
		t.Error("tooltip border width must be 1")
	}
	if Resolve(Theme("solarized")) != light {
		t.Error("unknown theme must resolve as light")
	}
}

func TestParseTheme(t *testing.T) {
	tests := map[string]Theme{
		"dark":  ThemeDark,
		"DARK":  ThemeDark,
		" Dark": ThemeDark,
		"light": ThemeLight,
		"":      ThemeLight,
		"neon":  ThemeLight,
	}
	for in, want := range tests {
		if got := ParseTheme(in); got != want {
			t.Errorf("ParseTheme(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestColorHints(t *testing.T) {
	cfg := Resolve(ThemeLight)
	if cfg.ColorFor(DirectionUp) != "#10b981" || cfg.ColorFor(DirectionDown) != "#f43f5e" || cfg.ColorFor(DirectionFlat) != "#64748b" {
		t.Error("unexpected direction colours")
	}
	if cfg.ZoneColor(ZoneOverbought) != "#f43f5e" || cfg.ZoneColor(ZoneOversold) != "#10b981" || cfg.ZoneColor(ZoneNeutral) != "" {
		t.Error("unexpected RSI zone colours")
	}
}
