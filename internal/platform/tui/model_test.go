package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

// tapGame scores one point per Primary and finishes on Secondary.
type tapGame struct {
	taps int
}

func (g *tapGame) ID() string      { return "tap" }
func (g *tapGame) Title() string   { return "Tap" }
func (g *tapGame) World() core.Vec { return core.V(100, 100) }
func (g *tapGame) OnDispose()      {}

func (g *tapGame) OnStart(*session.Env) { g.taps = 0 }

func (g *tapGame) OnTick(env *session.Env, _ float64, in core.InputFrame) {
	if in.Has(core.ActionPrimary) {
		g.taps++
		env.SetScore(float64(g.taps))
	}
	if in.Has(core.ActionSecondary) {
		env.Finish(session.ReasonLose)
	}
}

func (g *tapGame) Render(dst *core.Screen, vp core.Viewport) {
	vp.Dot(dst, core.V(50, 50), '@', core.ColorDefault)
}

func newTestModel(sink session.ScoreSink) GameModel {
	m := NewGameModel(&tapGame{}, Options{
		Runtime: core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60},
		Sink:    sink,
	})
	m.Init()
	return m
}

func feed(m GameModel, msgs ...tea.Msg) GameModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(GameModel)
	}
	return m
}

func tick(m GameModel, at time.Time) TickMsg {
	return TickMsg{Loop: m.loop, Time: at}
}

func TestGameModelScoresAndSubmits(t *testing.T) {
	var got []session.Result
	sink := session.SinkFunc(func(_ context.Context, r session.Result) error {
		got = append(got, r)
		return nil
	})
	m := newTestModel(sink)
	now := time.Now()

	m = feed(m,
		tea.KeyMsg{Type: tea.KeySpace}, tick(m, now),
		tea.KeyMsg{Type: tea.KeySpace}, tick(m, now.Add(16*time.Millisecond)),
	)
	if m.hud.Score != 2 {
		t.Errorf("HUD score = %v, expected 2", m.hud.Score)
	}

	m = feed(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, tick(m, now.Add(32*time.Millisecond)))
	if m.Snapshot().Status != session.StatusFinished {
		t.Fatalf("Status = %v, expected finished", m.Snapshot().Status)
	}
	if len(got) != 1 || got[0].Score != 2 || got[0].GameID != "tap" {
		t.Errorf("submitted %+v, expected one result with score 2", got)
	}
}

func TestGameModelIgnoresStaleTicks(t *testing.T) {
	m := newTestModel(nil)
	now := time.Now()
	m = feed(m, tea.KeyMsg{Type: tea.KeySpace}, TickMsg{Loop: m.loop + 1000, Time: now})

	if m.Snapshot().Tick != 0 {
		t.Errorf("Tick = %d, expected a foreign tick to be ignored", m.Snapshot().Tick)
	}
}

func TestGameModelPauseAndBack(t *testing.T) {
	m := newTestModel(nil)

	m = feed(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if !m.Snapshot().Paused {
		t.Fatal("expected P to pause")
	}
	m = feed(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("expected Esc on a paused game to return to the menu")
	}
}

func TestGameModelRestart(t *testing.T) {
	m := newTestModel(nil)
	now := time.Now()

	m = feed(m, tea.KeyMsg{Type: tea.KeySpace}, tick(m, now))
	m = feed(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, tick(m, now.Add(16*time.Millisecond)))
	m = feed(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	snap := m.Snapshot()
	if snap.Status != session.StatusRunning || snap.Score != 0 {
		t.Errorf("after restart = %v score %v, expected a fresh running session", snap.Status, snap.Score)
	}
	if m.hud.Score != 0 {
		t.Errorf("HUD score = %v after restart, expected 0", m.hud.Score)
	}
}

func TestGameModelRestartWhileRunning(t *testing.T) {
	tests := []struct {
		name  string
		pause bool
	}{
		{name: "running"},
		{name: "paused", pause: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(nil)
			now := time.Now()
			m = feed(m, tea.KeyMsg{Type: tea.KeySpace}, tick(m, now))
			before := m.Snapshot()
			if tc.pause {
				m = feed(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
			}

			m = feed(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

			snap := m.Snapshot()
			if snap.Status != session.StatusRunning || snap.Paused || snap.Score != 0 {
				t.Errorf("after restart = %+v, expected a fresh running session", snap)
			}
			if snap.SessionID == before.SessionID {
				t.Error("restart kept the old session ID")
			}
		})
	}
}

func TestGameModelRestartReseeds(t *testing.T) {
	tests := []struct {
		name string
		seed int64
		same bool
	}{
		{name: "fresh seed per round"},
		{name: "fixed seed replays", seed: 7, same: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seeds []int64
			sink := session.SinkFunc(func(_ context.Context, r session.Result) error {
				seeds = append(seeds, r.Seed)
				return nil
			})
			m := NewGameModel(&tapGame{}, Options{
				Runtime: core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: tc.seed},
				Sink:    sink,
			})
			m.Init()
			now := time.Now()
			finish := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}

			m = feed(m, finish, tick(m, now))
			time.Sleep(time.Millisecond)
			m = feed(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
			m = feed(m, finish, tick(m, now.Add(16*time.Millisecond)))

			if len(seeds) != 2 {
				t.Fatalf("submitted %d results, expected 2", len(seeds))
			}
			if (seeds[0] == seeds[1]) != tc.same {
				t.Errorf("seeds = %v, expected same %v", seeds, tc.same)
			}
		})
	}
}

func TestGameModelView(t *testing.T) {
	m := newTestModel(nil)
	view := m.View()
	if view == "" {
		t.Fatal("View() is empty")
	}
	m = feed(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.IsQuitting() || m.View() != "" {
		t.Error("expected Q to quit and blank the view")
	}
}
