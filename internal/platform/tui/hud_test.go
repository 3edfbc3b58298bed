package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

func TestHUDFields(t *testing.T) {
	h := NewHUD("Defense")
	h.Apply(session.ScoreEvent{Value: 12345})
	h.Apply(session.CoinsEvent{N: 1500})
	h.Apply(session.LivesEvent{N: 3})
	h.Apply(session.WaveEvent{N: 2})

	expected := []string{"score 12,345", "lives ♥♥♥", "coins 1,500", "wave 2"}
	got := h.Fields()
	if strings.Join(got, "|") != strings.Join(expected, "|") {
		t.Errorf("Fields() = %q, expected %q", got, expected)
	}
}

func TestHUDHidesUnseen(t *testing.T) {
	h := NewHUD("Coin Flip")
	if got := h.Fields(); len(got) != 1 {
		t.Errorf("Fields() = %q, expected only the score", got)
	}

	h.Apply(session.AccuracyEvent{Correct: 3, Total: 4})
	h.Apply(session.PowerEvent{Value: 87.25})
	fields := strings.Join(h.Fields(), "|")
	if !strings.Contains(fields, "accuracy 75%") || !strings.Contains(fields, "power 87.2") {
		t.Errorf("Fields() = %q, expected accuracy and power", fields)
	}

	h.Reset()
	if len(h.Fields()) != 1 || h.Title != "Coin Flip" {
		t.Errorf("Reset() left %q / %q", h.Fields(), h.Title)
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{0, "0"},
		{1234567, "1,234,567"},
		{12.5, "12.5"},
	}
	for _, tc := range tests {
		if got := formatScore(tc.in); got != tc.expected {
			t.Errorf("formatScore(%v) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestRenderRowsSkipsHUD(t *testing.T) {
	s := core.NewScreen(4, 3)
	s.DrawText(0, 0, "HUD!")
	s.DrawText(0, 1, "ab")
	s.DrawText(0, 2, "cd")

	got := RenderRows(s, 1)
	if strings.Contains(got, "HUD") {
		t.Errorf("RenderRows(1) = %q, expected row 0 skipped", got)
	}
	if lines := strings.Split(got, "\n"); len(lines) != 2 {
		t.Errorf("RenderRows(1) has %d lines, expected 2", len(lines))
	}
}
