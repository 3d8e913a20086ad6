package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/math-arcade/internal/economy"
)

// ProfileKeyMap defines the key bindings for the profile screen.
type ProfileKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Claim key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProfileKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Claim, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ProfileKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Claim}, {k.Back, k.Quit}}
}

// DefaultProfileKeyMap returns default key bindings.
func DefaultProfileKeyMap() ProfileKeyMap {
	return ProfileKeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "prev mission")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "next mission")),
		Claim: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "claim mission")),
		Back:  key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ProfileModel shows level progress, missions, badges and avatar stats.
type ProfileModel struct {
	profile   *economy.Profile
	logger    *log.Logger
	missions  []economy.Mission
	badges    []economy.Badge
	avatar    economy.AvatarStats
	summary   economy.Summary
	notice    string
	bar       progress.Model
	table     table.Model
	help      help.Model
	keys      ProfileKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewProfileModel creates the profile screen.
func NewProfileModel(profile *economy.Profile, logger *log.Logger, width, height int) ProfileModel {
	if logger == nil {
		logger = log.Default()
	}
	m := ProfileModel{
		profile: profile,
		logger:  logger,
		bar:     progress.New(progress.WithDefaultGradient()),
		help:    help.New(),
		keys:    DefaultProfileKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Mission", Width: 32},
			{Title: "Type", Width: 12},
			{Title: "Reward", Width: 16},
			{Title: "Status", Width: 9},
		}),
		table.WithFocused(true),
		table.WithHeight(6),
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
	m.table.SetStyles(s)
	m.resize()
	m.refresh()
	return m
}

func (m *ProfileModel) resize() {
	w := m.width - 20
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	m.bar.Width = w
	m.help.Width = m.width
}

// refresh copies the profile state for rendering.
func (m *ProfileModel) refresh() {
	m.summary = m.profile.Summary()
	m.profile.Progress(func(p *economy.Progress) {
		m.missions = append([]economy.Mission(nil), p.Missions...)
		m.badges = append([]economy.Badge(nil), p.Badges...)
		m.avatar = p.Avatar
	})

	rows := make([]table.Row, len(m.missions))
	for i, ms := range m.missions {
		status := "open"
		if ms.IsClaimed {
			status = "claimed"
		}
		rows[i] = table.Row{
			ms.Title,
			string(ms.Type),
			fmt.Sprintf("%d XP, %d c", ms.RewardXP, ms.RewardCoins),
			status,
		}
	}
	m.table.SetRows(rows)
}

// Init initializes the profile model.
func (m ProfileModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the profile screen.
func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Claim):
			m.claim(m.table.Cursor())
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// claim completes the mission at row i and saves the profile.
func (m *ProfileModel) claim(i int) {
	if i < 0 || i >= len(m.missions) {
		return
	}
	id := m.missions[i].ID
	var ok bool
	m.profile.Progress(func(p *economy.Progress) {
		ok = p.CompleteMission(id)
	})
	if !ok {
		m.notice = "Mission already claimed."
		return
	}
	m.notice = "Claimed: " + m.missions[i].Title
	if err := m.profile.Save(); err != nil {
		m.logger.Warn("could not save profile", "profile", m.profile.Name, "err", err)
	}
	m.refresh()
}

var (
	badgeLockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	badgeTierColors  = map[economy.BadgeTier]lipgloss.Color{
		economy.TierCommon:    "250",
		economy.TierRare:      "39",
		economy.TierEpic:      "135",
		economy.TierLegendary: "214",
		economy.TierMythic:    "197",
	}
	profileBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// View renders the profile screen.
func (m ProfileModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled(menuTitleStyle, "PROFILE - "+m.profile.Name, m.width))
	b.WriteString("\n\n")

	pct := 0.0
	if m.summary.MaxXP > 0 {
		pct = float64(m.summary.XP) / float64(m.summary.MaxXP)
	}
	level := fmt.Sprintf("Level %-3d %s  %d/%d XP", m.summary.Level, m.bar.ViewAs(pct), m.summary.XP, m.summary.MaxXP)
	b.WriteString(centerText(level, m.width))
	b.WriteString("\n")
	b.WriteString(centerStyled(menuCoinStyle, economy.FormatNumber(float64(m.summary.Coins))+" coins", m.width))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, profileBoxStyle.Render(m.table.View())))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(m.notice, m.width))
		b.WriteString("\n")
	}

	var badges []string
	for _, bd := range m.badges {
		label := fmt.Sprintf("[%s] %s", bd.Tier, bd.Name)
		if bd.IsUnlocked {
			badges = append(badges, lipgloss.NewStyle().Foreground(badgeTierColors[bd.Tier]).Render(label))
		} else {
			badges = append(badges, badgeLockedStyle.Render(label+" (locked)"))
		}
	}
	b.WriteString("\n")
	b.WriteString(centerText("Badges", m.width))
	b.WriteString("\n")
	for _, line := range badges {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	a := m.avatar
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Logic %d  Creativity %d  Focus %d  Memory %d",
		a.Logic, a.Creativity, a.Focus, a.Memory), m.width))
	b.WriteString("\n\n")
	b.WriteString(menuDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ProfileModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ProfileModel) IsQuitting() bool {
	return m.quitting
}
