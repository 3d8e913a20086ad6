package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/math-arcade/internal/registry"
	"github.com/vovakirdan/math-arcade/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show game list sidebar
	sidebarWidth       = 22  // Width of game list sidebar
	maxScores          = 100 // Max scores to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Mine     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Mine, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Mine, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextGame: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/right", "next game")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/left", "prev game")),
		Mine:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "my scores")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle    = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// ScoreboardModel shows the leaderboard of every registered game, optionally
// narrowed to the viewing profile's own runs.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      *storage.Store
	profile    string // rows owned by this profile are starred
	onlyMine   bool
	scores     []storage.ScoreEntry
	stats      *storage.GameStats
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard for the given viewer profile.
func NewScoreboardModel(store *storage.Store, profile string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:   registry.List(),
		store:   store,
		profile: profile,
		help:    help.New(),
		keys:    DefaultScoreboardKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

// createTable sizes the score table to the window.
func (m *ScoreboardModel) createTable() table.Model {
	tableWidth := m.width - 4
	if m.wide() {
		tableWidth -= sidebarWidth + 3
	}
	date := min(max(tableWidth-36, 12), 20)

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Player", Width: 14},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: date},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load fetches scores and stats for the selected game.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.games) > 0 {
		gameID := m.games[m.gameCursor].ID
		if m.onlyMine {
			m.scores = m.mine(gameID)
		} else if scores, err := m.store.TopScores(gameID, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		player := s.Profile
		if player == m.profile {
			player += " *"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			player,
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// mine returns the viewer's best runs of gameID, best first.
func (m *ScoreboardModel) mine(gameID string) []storage.ScoreEntry {
	all, err := m.store.AllScores(gameID)
	if err != nil {
		return nil
	}
	var own []storage.ScoreEntry
	for _, s := range all {
		if s.Profile == m.profile {
			own = append(own, s)
		}
		if len(own) == maxScores {
			break
		}
	}
	return own
}

func (m *ScoreboardModel) moveGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (m.gameCursor + delta + len(m.games)) % len(m.games)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.NextGame):
			m.moveGame(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.moveGame(-1)
			return m, nil
		case key.Matches(msg, m.keys.Mine):
			m.onlyMine = !m.onlyMine
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title += " - " + m.games[m.gameCursor].Title
	}
	if m.onlyMine {
		title += " (" + m.profile + ")"
	}
	b.WriteString(centerStyled(boardTitleStyle, title, m.width))
	b.WriteString("\n")
	b.WriteString(centerStyled(menuDimStyle, m.statsLine(), m.width))
	b.WriteString("\n\n")

	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			boardBoxStyle.Render(m.sidebar()), "  ", boardBoxStyle.Render(m.tableContent())))
	} else {
		b.WriteString(centerText(m.tabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardBoxStyle.Render(m.tableContent())))
	}

	b.WriteString("\n")
	b.WriteString(menuDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil {
		return "no games played"
	}
	return fmt.Sprintf("best %d  |  %d games  |  avg %.1f  |  last played %s",
		m.stats.HighScore, m.stats.GamesCount, m.stats.AvgScore, m.stats.LastPlayed.Format("Jan 02"))
}

func (m ScoreboardModel) sidebar() string {
	var sb strings.Builder
	sb.WriteString("Games\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	for i, g := range m.games {
		sb.WriteString("\n")
		name := truncate(g.Title, sidebarWidth-6)
		if i == m.gameCursor {
			sb.WriteString(boardActiveStyle.Render("> " + name))
		} else {
			sb.WriteString("  " + name)
		}
	}
	return sb.String()
}

// tabs shows neighbouring games around the selected one.
func (m ScoreboardModel) tabs() string {
	if len(m.games) == 0 {
		return ""
	}
	prev := m.games[(m.gameCursor-1+len(m.games))%len(m.games)].Title
	next := m.games[(m.gameCursor+1)%len(m.games)].Title
	return menuDimStyle.Render("< "+truncate(prev, 12)+" ") +
		boardTabStyle.Render(m.games[m.gameCursor].Title) +
		menuDimStyle.Render(" "+truncate(next, 12)+" >")
}

func (m ScoreboardModel) tableContent() string {
	if len(m.scores) == 0 {
		if m.onlyMine {
			return boardEmptyStyle.Render("You have no scores here yet.\nPress m to see everyone's.")
		}
		return boardEmptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// scoreboardAlone quits the standalone scoreboard on back.
type scoreboardAlone struct{ ScoreboardModel }

func (m scoreboardAlone) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.ScoreboardModel.Update(msg)
	sb, _ := next.(ScoreboardModel)
	m.ScoreboardModel = sb
	if sb.IsGoingBack() {
		return m, tea.Quit
	}
	return m, cmd
}

// RunScoreboard runs the scoreboard screen on its own until the user leaves.
func RunScoreboard(store *storage.Store, profile string, width, height int) error {
	p := tea.NewProgram(
		scoreboardAlone{NewScoreboardModel(store, profile, width, height)},
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
