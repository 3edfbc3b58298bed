// Package tui hosts arcade sessions in a terminal with Bubble Tea, locally
// or over SSH.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a session frame. Loop identifies the frame
// loop that scheduled it so a replaced game ignores stale ticks.
type TickMsg struct {
	Loop uint64
	Time time.Time
}

var loops atomic.Uint64

// nextLoop returns a fresh frame loop id.
func nextLoop() uint64 {
	return loops.Add(1)
}

// tickCmd schedules the next frame at fps frames per second.
func tickCmd(loop uint64, fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Loop: loop, Time: t}
	})
}
