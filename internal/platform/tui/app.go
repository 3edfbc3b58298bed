package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

type screen int

const (
	screenMenu screen = iota
	screenScores
	screenGame
)

// App manages the full arcade flow: menu, scoreboard and games.
// The same model runs in a local terminal and per SSH connection.
type App struct {
	opts       Options
	store      *storage.Store
	configPath string
	user       string
	current    screen
	menu       MenuModel
	scores     ScoreboardModel
	game       *GameModel
	quitting   bool
}

// NewApp creates the arcade flow. store may be nil.
func NewApp(store *storage.Store, opts Options, configPath, user string) App {
	if store != nil && opts.Sink == nil {
		opts.Sink = store
	}
	return App{
		opts:       opts,
		store:      store,
		configPath: configPath,
		user:       user,
		menu:       NewMenuModel(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
	}
}

// Init initializes the app.
func (a App) Init() tea.Cmd {
	return a.menu.Init()
}

// Update routes messages to the active screen.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.opts.Runtime.ScreenW = wsm.Width
		a.opts.Runtime.ScreenH = wsm.Height
	}

	switch a.current {
	case screenGame:
		return a.updateGame(msg)
	case screenScores:
		return a.updateScores(msg)
	default:
		return a.updateMenu(msg)
	}
}

func (a App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.menu.Update(msg)
	a.menu = next.(MenuModel)

	switch {
	case a.menu.IsQuitting():
		a.quitting = true
		return a, tea.Quit

	case a.menu.WantsScoreboard():
		a.menu = a.menu.reopen("")
		a.scores = NewScoreboardModel(a.store, a.opts.Runtime.ScreenW, a.opts.Runtime.ScreenH)
		a.current = screenScores
		return a, a.scores.Init()

	case a.menu.Selected() != nil:
		id := a.menu.Selected().ID
		game, err := registry.Create(id)
		if err == nil {
			if t, ok := game.(config.Tunable); ok {
				err = t.Configure(a.configPath, a.menu.Preset())
			}
		}
		if err != nil {
			a.opts.logger().Error("cannot start game", "game", id, "user", a.user, "err", err)
			a.menu = a.menu.reopen(err.Error())
			return a, nil
		}

		a.opts.logger().Info("game selected", "game", id, "user", a.user, "difficulty", a.menu.Preset())
		gm := NewGameModel(game, a.opts)
		a.game = &gm
		a.current = screenGame
		return a, a.game.Init()
	}

	return a, cmd
}

func (a App) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.scores.Update(msg)
	a.scores = next.(ScoreboardModel)

	if a.scores.IsQuitting() {
		a.quitting = true
		return a, tea.Quit
	}
	if a.scores.IsGoingBack() {
		a.current = screenMenu
		return a, nil
	}
	return a, cmd
}

func (a App) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.game.Update(msg)
	gm := next.(GameModel)
	a.game = &gm

	if a.game.IsQuitting() {
		a.quitting = true
		return a, tea.Quit
	}
	if a.game.BackToMenu() {
		a.game = nil
		a.current = screenMenu
		a.menu = a.menu.reopen("")
		return a, nil
	}
	return a, cmd
}

// View renders the active screen.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	switch a.current {
	case screenGame:
		return a.game.View()
	case screenScores:
		return a.scores.View()
	default:
		return a.menu.View()
	}
}

// RunApp runs the arcade flow in the local terminal.
func RunApp(store *storage.Store, opts Options, configPath string) error {
	p := tea.NewProgram(
		NewApp(store, opts, configPath, "local"),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
