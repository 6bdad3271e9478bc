package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestRenderScreenKeepsTextAndRows(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColor(1, 0, "SCORE", core.ColorGray)
	s.DrawTextColor(1, 1, "1200", core.ColorYellow)
	s.SetColor(0, 2, '█', core.ColorCyan)

	out := RenderScreen(s)
	if lines := strings.Count(out, "\n") + 1; lines != 3 {
		t.Errorf("rendered %d lines, expected 3", lines)
	}
	for _, want := range []string{"SCORE", "1200", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen output missing %q", want)
		}
	}
}

func TestColorStylesCoverPalette(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
}

func TestFrameDelta(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		prev     time.Time
		now      time.Time
		expected float64
	}{
		{"first tick", time.Time{}, base, 1.0 / 30},
		{"normal", base, base.Add(50 * time.Millisecond), 0.05},
		{"clock backwards", base, base.Add(-time.Second), 1.0 / 30},
		{"suspended", base, base.Add(10 * time.Second), maxFrameDelta},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frameDelta(tc.prev, tc.now, 30); got != tc.expected {
				t.Errorf("frameDelta() = %v, expected %v", got, tc.expected)
			}
		})
	}
}
