package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/multiplayer"
)

// SetupSelection holds the user's choices before a game starts.
type SetupSelection struct {
	Difficulty config.DifficultyPreset
	Mode       multiplayer.MatchMode
}

var setupPresets = []struct {
	preset config.DifficultyPreset
	label  string
}{
	{config.DifficultyEasy, "Easy    - more lives, gentler numbers"},
	{config.DifficultyNormal, "Normal  - the standard tuning"},
	{config.DifficultyHard, "Hard    - fewer lives, bigger numbers"},
	{config.DifficultyFixed, "Fixed   - no difficulty progression"},
}

var setupModes = []multiplayer.MatchMode{
	multiplayer.MatchModeVsCPU,
	multiplayer.MatchModeLocal,
}

// SetupModel lets users choose difficulty and, for two-seat games, the opponent.
type SetupModel struct {
	item         MenuItem
	cursor       int
	modeCursor   int
	inModeSelect bool
	width        int
	height       int
	keyMapper    *KeyMapper
	selection    SetupSelection
	choosing     bool
	quitting     bool
	back         bool
}

// NewSetupModel creates a setup screen for item, preselecting preset.
func NewSetupModel(item MenuItem, preset config.DifficultyPreset, width, height int) SetupModel {
	cursor := 1 // normal
	for i, p := range setupPresets {
		if p.preset == preset {
			cursor = i
		}
	}
	return SetupModel{
		item:      item,
		cursor:    cursor,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m SetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m SetupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inModeSelect {
		return m.handleModeSelectKey(action)
	}
	return m.handleDifficultyKey(action)
}

func (m SetupModel) handleDifficultyKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(setupPresets)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.selection.Difficulty = setupPresets[m.cursor].preset
		if m.item.TwoSeat {
			m.inModeSelect = true
			m.modeCursor = 0
			return m, nil
		}
		m.selection.Mode = multiplayer.MatchModeSolo
		m.choosing = false
	case MenuActionBack:
		m.back = true
	}

	return m, nil
}

func (m SetupModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.modeCursor > 0 {
			m.modeCursor--
		}
	case MenuActionDown:
		if m.modeCursor < len(setupModes)-1 {
			m.modeCursor++
		}
	case MenuActionSelect:
		m.selection.Mode = setupModes[m.modeCursor]
		m.choosing = false
	case MenuActionBack:
		m.inModeSelect = false
	}

	return m, nil
}

// View renders the setup screen.
func (m SetupModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inModeSelect {
		return m.viewModeSelect()
	}
	return m.viewDifficulty()
}

func (m SetupModel) viewDifficulty() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled(menuTitleStyle, strings.ToUpper(m.item.Title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, p := range setupPresets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-40s", cursor, p.label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerStyled(menuDimStyle, "Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m SetupModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled(menuTitleStyle, "CHOOSE YOUR OPPONENT", m.width))
	b.WriteString("\n\n")

	for i, mode := range setupModes {
		cursor := "  "
		if i == m.modeCursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-12s", cursor, mode), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Player 1 answers with 1-4, Player 2 with 7 8 9 0", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerStyled(menuDimStyle, "Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m SetupModel) Selected() *SetupSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsChoosing returns true if still in selection mode.
func (m SetupModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m SetupModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m SetupModel) WantsBack() bool {
	return m.back
}

// setupDone quits the standalone selector once a choice is made.
type setupDone struct{ SetupModel }

func (m setupDone) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.SetupModel.Update(msg)
	s, _ := next.(SetupModel)
	m.SetupModel = s
	if !s.IsChoosing() || s.WantsBack() {
		return m, tea.Quit
	}
	return m, cmd
}

// RunSetupSelector runs the setup screen on its own and returns the selection,
// or nil if the user backed out.
func RunSetupSelector(item MenuItem, preset config.DifficultyPreset, width, height int) (*SetupSelection, error) {
	p := tea.NewProgram(
		setupDone{NewSetupModel(item, preset, width, height)},
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(setupDone)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
