package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

// presets is the order the menu cycles difficulty through.
var presets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// MenuAction is a menu command derived from a key.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

// MenuModel is the game picker.
type MenuModel struct {
	games    []registry.GameInfo
	cursor   int
	preset   int
	width    int
	height   int
	message  string
	quitting bool
	selected *registry.GameInfo
	scores   bool
}

// NewMenuModel lists every registered game.
func NewMenuModel(width, height int) MenuModel {
	return MenuModel{
		games:  registry.List(),
		preset: 1,
		width:  width,
		height: height,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.message = ""
		switch MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(m.games)-1 {
				m.cursor++
			}
		case MenuActionLeft:
			m.preset = (m.preset + len(presets) - 1) % len(presets)
		case MenuActionRight:
			m.preset = (m.preset + 1) % len(presets)
		case MenuActionSelect:
			if len(m.games) > 0 {
				g := m.games[m.cursor]
				m.selected = &g
			}
		case MenuActionScoreboard:
			m.scores = true
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("P O C K E T   A R C A D E"), m.width))
	b.WriteString("\n\n")

	for i, g := range m.games {
		line := "  " + g.Title
		if g.TimeLimitMs > 0 {
			line += menuDimStyle.Render(fmt.Sprintf(" (%ds)", int(g.TimeLimitMs/1000)))
		}
		if i == m.cursor {
			line = menuPickStyle.Render("> " + g.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(m.games) > 0 {
		b.WriteString(centerText(menuDimStyle.Render(m.games[m.cursor].Description), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(fmt.Sprintf("difficulty: < %s >", m.Preset()), m.width))
	b.WriteString("\n\n")
	if m.message != "" {
		b.WriteString(centerText(menuErrStyle.Render(m.message), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(menuDimStyle.Render("Up/Down: game  Left/Right: difficulty  Enter: play  Tab: scores  Q: quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Preset returns the chosen difficulty.
func (m MenuModel) Preset() config.DifficultyPreset {
	return presets[m.preset]
}

// Selected returns the chosen game, or nil.
func (m MenuModel) Selected() *registry.GameInfo {
	return m.selected
}

// IsQuitting returns true if the user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if the user asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scores
}

// reopen clears the one-shot selections and shows msg.
func (m MenuModel) reopen(msg string) MenuModel {
	m.selected = nil
	m.scores = false
	m.quitting = false
	m.message = msg
	return m
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
