package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

// hudRows is the number of screen rows reserved for the HUD.
const hudRows = 1

// Options configures how a game is hosted.
type Options struct {
	Runtime core.RuntimeConfig
	// Sink receives finished sessions. Nil keeps scores in memory only.
	Sink session.ScoreSink
	// Spectator also receives every event, e.g. the web feed.
	Spectator session.Emitter
	Logger    *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// GameModel is the Bubble Tea model for one hosted game.
type GameModel struct {
	game       session.Game
	ctrl       *session.Controller
	driver     *session.Driver
	stream     *session.Stream
	hud        *HUD
	input      *Input
	screen     *core.Screen
	config     core.RuntimeConfig
	logger     *log.Logger
	loop       uint64
	quitting   bool
	backToMenu bool
}

// NewGameModel wraps game in a session and a HUD.
func NewGameModel(game session.Game, opts Options) GameModel {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	stream := session.NewStream(256)

	sessOpts := []session.Option{
		session.WithEmitter(session.Fanout{stream, opts.Spectator}),
		session.WithScoreSink(opts.Sink),
		session.WithLogger(opts.logger()),
	}
	if cfg.Seed != 0 {
		sessOpts = append(sessOpts, session.WithSeed(cfg.Seed))
	}
	ctrl := session.NewController(game, sessOpts...)

	text := false
	if tc, ok := game.(session.TextCapture); ok {
		text = tc.CapturesText()
	}

	return GameModel{
		game:   game,
		ctrl:   ctrl,
		driver: session.NewDriver(ctrl),
		stream: stream,
		hud:    NewHUD(game.Title()),
		input:  NewInput(KeyMapper{Text: text}),
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		logger: opts.logger(),
		loop:   nextLoop(),
	}
}

// Init starts the session and the frame loop.
func (m GameModel) Init() tea.Cmd {
	m.driver.Start()
	m.logger.Debug("session started", "game", m.game.ID(), "session", m.ctrl.Snapshot().SessionID)
	return tickCmd(m.loop, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.input.Mouse(msg, m.viewport())
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

func (m GameModel) viewport() core.Viewport {
	return core.NewViewport(m.game.World(), m.config.ScreenW, m.config.ScreenH, hudRows)
}

// handleKey applies host controls and queues game input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	finished := m.ctrl.Status() == session.StatusFinished
	switch m.input.Key(msg, time.Now()) {
	case ControlQuit:
		m.quitting = true
		m.ctrl.Dispose()
		m.stream.Close()
		return m, tea.Quit
	case ControlBack:
		if finished || m.ctrl.Paused() {
			m.backToMenu = true
			m.ctrl.Dispose()
			m.stream.Close()
			return m, nil
		}
		m.ctrl.Pause()
	case ControlPause:
		m.ctrl.TogglePause()
	case ControlRestart:
		m.restart()
	}
	return m, nil
}

// restart begins a new round, running or not. Without a fixed seed every
// round gets a fresh layout.
func (m GameModel) restart() {
	if m.config.Seed == 0 {
		m.ctrl.Reseed(time.Now().UnixNano())
	}
	m.stream.Drain()
	m.hud.Reset()
	m.input.Reset()
	m.driver.Start()
}

// handleTick advances the session and folds its events into the HUD.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	m.driver.Frame(now, m.input.Frame(now))
	for _, env := range m.stream.Drain() {
		m.hud.Apply(env.Event)
	}
	return m, tickCmd(m.loop, m.config.TickRate)
}

// View renders the HUD and the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen, m.viewport())
	m.overlay()
	return m.hud.View(m.screen.Width()) + "\n" + RenderRows(m.screen, hudRows)
}

// overlay draws the pause and game over banners.
func (m GameModel) overlay() {
	mid := m.screen.Height() / 2
	snap := m.ctrl.Snapshot()

	switch {
	case snap.Status == session.StatusFinished:
		title := "GAME OVER"
		if m.hud.Outcome == session.ReasonWin {
			title = "YOU WIN"
		}
		if snap.Reason != session.ReasonNone {
			title += " (" + string(snap.Reason) + ")"
		}
		m.screen.DrawTextCentered(mid-1, title, core.ColorBrightRed)
		m.screen.DrawTextCentered(mid, "score "+formatScore(snap.Score), core.ColorBrightYellow)
		m.screen.DrawTextCentered(mid+2, m.hint("R: restart  B: menu  Q: quit"), core.ColorGray)
	case snap.Paused:
		m.screen.DrawTextCentered(mid, "PAUSED", core.ColorBrightYellow)
		m.screen.DrawTextCentered(mid+2, m.hint("P: resume  R: restart  B: menu  Q: quit"), core.ColorGray)
	}
}

func (m GameModel) hint(keys string) string {
	if m.input.keys.Text {
		return "Ctrl+R: restart  Ctrl+P: pause  Esc: menu  Ctrl+C: quit"
	}
	return keys
}

// saveScreenshot writes the current frame as plain text under ~/.arcade/screenshots.
func (m GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen, m.viewport())

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
	}
}

// Snapshot returns the hosted session state.
func (m GameModel) Snapshot() session.Snapshot {
	return m.ctrl.Snapshot()
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run hosts a single game in the terminal until the user quits or leaves.
func Run(game session.Game, opts Options) (session.Snapshot, error) {
	p := tea.NewProgram(
		NewGameModel(game, opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return session.Snapshot{}, err
	}
	m, ok := final.(GameModel)
	if !ok {
		return session.Snapshot{}, nil
	}
	return m.Snapshot(), nil
}
