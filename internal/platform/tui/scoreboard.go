package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

const (
	boardLimit     = 50
	boardQueryWait = 2 * time.Second
)

// boardMode selects what the scoreboard lists.
type boardMode int

const (
	boardTop    boardMode = iota // leaderboard, best first
	boardRecent                  // finished sessions, newest first
)

func (b boardMode) String() string {
	if b == boardRecent {
		return "recent sessions"
	}
	return "top scores"
}

type boardKeys struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Mode key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Mode, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, k.ShortHelp()}
}

var defaultBoardKeys = boardKeys{
	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next game")),
	Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev game")),
	Mode: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "top/recent")),
	Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
)

// ScoreboardModel browses the stored leaderboards one game at a time.
type ScoreboardModel struct {
	games  []registry.GameInfo
	cursor int
	mode   boardMode
	store  *storage.Store

	top    []storage.ScoreEntry
	recent []storage.SessionEntry
	stats  storage.GameStats
	err    error

	table  table.Model
	help   help.Model
	keys   boardKeys
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the scoreboard on the first registered game.
// A nil store shows empty boards.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   defaultBoardKeys,
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

func (m ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.cursor].ID
}

// reload queries the current game and rebuilds the table for the mode.
func (m *ScoreboardModel) reload() {
	id := m.gameID()
	m.top, m.recent, m.err = nil, nil, nil
	m.stats = storage.GameStats{GameID: id}

	if m.store != nil && id != "" {
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = *stats
		}
		switch m.mode {
		case boardTop:
			m.top, m.err = m.store.TopScores(id, boardLimit)
		case boardRecent:
			ctx, cancel := context.WithTimeout(context.Background(), boardQueryWait)
			m.recent, m.err = m.store.RecentSessions(ctx, id, boardLimit)
			cancel()
		}
	}

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true)
	st.Selected = st.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(false)
	m.table.SetStyles(st)
}

func (m ScoreboardModel) columns() []table.Column {
	if m.mode == boardRecent {
		return []table.Column{
			{Title: "Score", Width: 10},
			{Title: "Ended by", Width: 9},
			{Title: "Played", Width: 8},
			{Title: "When", Width: 16},
		}
	}
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 12},
		{Title: "When", Width: 16},
	}
}

func (m ScoreboardModel) rows() []table.Row {
	if m.mode == boardRecent {
		rows := make([]table.Row, len(m.recent))
		for i, s := range m.recent {
			reason := s.Reason
			if reason == "" {
				reason = "-"
			}
			played := (time.Duration(s.ElapsedMs) * time.Millisecond).Round(time.Second)
			rows[i] = table.Row{formatScore(s.Score), reason, played.String(), humanize.Time(s.CreatedAt)}
		}
		return rows
	}
	rows := make([]table.Row, len(m.top))
	for i, s := range m.top {
		rows[i] = table.Row{fmt.Sprintf("%d", i+1), formatScore(s.Score), humanize.Time(s.CreatedAt)}
	}
	return rows
}

// Init does nothing; boards load synchronously.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation between games and modes.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.Mode):
			m.mode = 1 - m.mode
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) step(d int) {
	if len(m.games) == 0 {
		return
	}
	m.cursor = (m.cursor + d + len(m.games)) % len(m.games)
	m.reload()
}

// View renders the tabs, the board and the stats line.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title = fmt.Sprintf("%s - %s", strings.ToUpper(m.games[m.cursor].Title), m.mode)
	}
	b.WriteString(centerText(menuTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	var body string
	switch {
	case m.err != nil:
		body = boardEmptyStyle.Render("Could not load scores: " + m.err.Error())
	case len(m.table.Rows()) == 0:
		body = boardEmptyStyle.Render("No scores recorded yet.\nPlay a round to set one!")
	default:
		body = m.table.View()
	}
	b.WriteString(centerText(boardFrameStyle.Render(body), m.width))
	b.WriteString("\n")

	if line := m.statsLine(); line != "" {
		b.WriteString(centerText(menuDimStyle.Render(line), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

// tabs lists every game, or only the current one when they do not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.games) == 0 {
		return ""
	}
	parts := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.cursor {
			parts[i] = boardActiveTab.Render(g.Title)
		} else {
			parts[i] = boardTabStyle.Render(g.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(line) > m.width-2 {
		line = "< " + boardActiveTab.Render(m.games[m.cursor].Title) + " >"
	}
	return line
}

func (m ScoreboardModel) statsLine() string {
	if m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%s runs · best %s · avg %s · last played %s",
		humanize.Comma(int64(m.stats.GamesCount)),
		formatScore(m.stats.HighScore),
		humanize.CommafWithDigits(m.stats.AvgScore, 1),
		humanize.Time(m.stats.LastPlayed),
	)
}

// IsGoingBack reports whether the player asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to leave the arcade.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
