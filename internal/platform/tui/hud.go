package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/pocket-arcade/internal/session"
)

const hudSep = " │ "

var hudStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("230")).
	Background(lipgloss.Color("236"))

var hudTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("57")).
	Padding(0, 1)

// HUD is the status line fed by session events.
// Fields a game never emits stay hidden.
type HUD struct {
	Title   string
	Score   float64
	Seconds float64
	Lives   int
	Coins   int
	Wave    int
	Strokes int
	Kills   int
	Power   float64
	Correct int
	Total   int
	Status  session.Status
	Reason  session.Reason
	Outcome session.Reason
	seen    map[string]bool
}

// NewHUD creates an empty HUD.
func NewHUD(title string) *HUD {
	return &HUD{Title: title, seen: make(map[string]bool)}
}

// Reset clears everything but the title.
func (h *HUD) Reset() {
	*h = HUD{Title: h.Title, seen: make(map[string]bool)}
}

// Apply folds one event into the HUD.
func (h *HUD) Apply(ev session.Event) {
	h.seen[ev.Kind()] = true
	switch e := ev.(type) {
	case session.ScoreEvent:
		h.Score = e.Value
	case session.TimeEvent:
		h.Seconds = e.Seconds
	case session.StatusEvent:
		h.Status, h.Reason = e.Status, e.Reason
	case session.LivesEvent:
		h.Lives = e.N
	case session.CoinsEvent:
		h.Coins = e.N
	case session.WaveEvent:
		h.Wave = e.N
	case session.StrokesEvent:
		h.Strokes = e.N
	case session.KillsEvent:
		h.Kills = e.N
	case session.PowerEvent:
		h.Power = e.Value
	case session.AccuracyEvent:
		h.Correct, h.Total = e.Correct, e.Total
	case session.ResultEvent:
		h.Outcome = e.Outcome
	}
}

// Seen reports whether an event of the given kind has arrived.
func (h *HUD) Seen(kind string) bool {
	return h.seen[kind]
}

// Fields returns the visible readouts in display order.
func (h *HUD) Fields() []string {
	fields := []string{"score " + formatScore(h.Score)}
	if h.seen["time"] {
		fields = append(fields, fmt.Sprintf("time %.1fs", h.Seconds))
	}
	if h.seen["lives"] {
		fields = append(fields, "lives "+strings.Repeat("♥", max(0, h.Lives)))
	}
	if h.seen["coins"] {
		fields = append(fields, "coins "+humanize.Comma(int64(h.Coins)))
	}
	if h.seen["wave"] {
		fields = append(fields, fmt.Sprintf("wave %d", h.Wave))
	}
	if h.seen["kills"] {
		fields = append(fields, "kills "+humanize.Comma(int64(h.Kills)))
	}
	if h.seen["strokes"] {
		fields = append(fields, fmt.Sprintf("strokes %d", h.Strokes))
	}
	if h.seen["power"] {
		fields = append(fields, "power "+humanize.CommafWithDigits(h.Power, 1))
	}
	if h.seen["accuracy"] {
		fields = append(fields, fmt.Sprintf("accuracy %d%%", session.Accuracy(h.Correct, h.Total)))
	}
	return fields
}

// View renders the HUD clipped to width.
func (h *HUD) View(width int) string {
	line := hudTitleStyle.Render(h.Title) + " " + strings.Join(h.Fields(), hudSep)
	return hudStyle.Width(width).MaxWidth(width).Render(line)
}

// formatScore prints whole scores with separators and keeps one decimal otherwise.
func formatScore(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return humanize.Comma(int64(v))
	}
	return humanize.CommafWithDigits(v, 1)
}
