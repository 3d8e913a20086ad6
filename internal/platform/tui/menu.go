package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/math-arcade/internal/economy"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
	// TwoSeat games can be played against the CPU or a second local player.
	TwoSeat bool
}

// MenuItems lists every registered game.
func MenuItems() []MenuItem {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if game, err := registry.Create(g.ID, registry.Options{}); err == nil {
			_, item.TwoSeat = game.(registry.MultiplayerGame)
		}
		items = append(items, item)
	}
	return items
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	profile        *economy.Profile
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
	openProfile    bool      // True if user pressed P for the profile screen
}

// NewMenuModel creates a new menu model.
func NewMenuModel(profile *economy.Profile, width, height int) MenuModel {
	return MenuModel{
		items:     MenuItems(),
		width:     width,
		height:    height,
		profile:   profile,
		keyMapper: NewKeyMapper(),
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
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionScoreboard:
		m.openScoreboard = true

	case MenuActionProfile:
		if m.profile != nil {
			m.openProfile = true
		}
	}

	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCoinStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	b.WriteString("\n")
	b.WriteString(centerStyled(menuTitleStyle, "M A T H   A R C A D E", m.width))
	b.WriteString("\n\n")

	if m.profile != nil {
		s := m.profile.Summary()
		status := fmt.Sprintf("%s  |  Level %d  (%d/%d XP)  |  %s coins",
			m.profile.Name, s.Level, s.XP, s.MaxXP, economy.FormatNumber(float64(s.Coins)))
		b.WriteString(centerStyled(menuCoinStyle, status, m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	// Game list
	for i, item := range m.items {
		label := item.Title
		if item.TwoSeat {
			label += " (2P / CPU)"
		}
		if i == m.cursor {
			b.WriteString(centerStyled(menuCursorStyle, "> "+label, m.width))
		} else {
			b.WriteString(centerText("  "+label, m.width))
		}
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  P: Profile  |  Q: Quit"
	b.WriteString(centerStyled(menuDimStyle, controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// WantsProfile returns true if user requested the profile screen.
func (m MenuModel) WantsProfile() bool {
	return m.openProfile
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// centerStyled centers text, then styles it.
func centerStyled(style lipgloss.Style, text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return style.Render(text)
	}
	return strings.Repeat(" ", (width-w)/2) + style.Render(text)
}
