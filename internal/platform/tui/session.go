package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/multiplayer"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

type screen int

const (
	screenMenu screen = iota
	screenSetup
	screenGame
	screenScoreboard
	screenProfile
)

// SessionModel manages the full arcade session flow: menu -> setup -> game -> menu,
// plus the scoreboard and profile screens. It is the top-level model for
// `arcade menu` and for every SSH session.
type SessionModel struct {
	deps       Deps
	config     core.RuntimeConfig
	sessionID  multiplayer.SessionID
	current    screen
	menu       MenuModel
	setup      SetupModel
	gameModel  Model
	scoreboard ScoreboardModel
	profile    ProfileModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps Deps, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		deps:      deps,
		config:    cfg,
		sessionID: multiplayer.NewSessionID(username),
		menu:      NewMenuModel(deps.Profile, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	m.deps.logger().Debug("session opened", "session", m.sessionID)
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenSetup:
		return m.updateSetup(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	case screenProfile:
		return m.updateProfile(msg)
	default:
		return m.updateMenu(msg)
	}
}

// toMenu rebuilds the menu so selection flags and profile figures are fresh.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = NewMenuModel(m.deps.Profile, m.config.ScreenW, m.config.ScreenH)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.current = screenScoreboard
		m.scoreboard = NewScoreboardModel(m.deps.Store, m.deps.profileName(), m.config.ScreenW, m.config.ScreenH)
		return m, m.scoreboard.Init()

	case m.menu.WantsProfile():
		m.current = screenProfile
		m.profile = NewProfileModel(m.deps.Profile, m.deps.Logger, m.config.ScreenW, m.config.ScreenH)
		return m, m.profile.Init()

	case m.menu.Selected() != nil:
		m.current = screenSetup
		m.setup = NewSetupModel(*m.menu.Selected(), m.deps.Difficulty, m.config.ScreenW, m.config.ScreenH)
		return m, m.setup.Init()
	}

	return m, cmd
}

// updateSetup handles the difficulty and opponent choice.
func (m SessionModel) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	newSetup, cmd := m.setup.Update(msg)
	if setupModel, ok := newSetup.(SetupModel); ok {
		m.setup = setupModel
	}

	if m.setup.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.setup.WantsBack() {
		return m.toMenu()
	}

	if sel := m.setup.Selected(); sel != nil {
		return m.startGame(m.setup.item.GameID, *sel)
	}
	return m, cmd
}

// startGame creates the chosen game and switches to it.
func (m SessionModel) startGame(gameID string, sel SetupSelection) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID, m.deps.Options(sel.Mode, sel.Difficulty))
	if err != nil {
		// Shouldn't happen since menu only shows registered games
		m.deps.logger().Error("cannot create game", "game", gameID, "err", err)
		return m.toMenu()
	}

	m.current = screenGame
	m.gameModel = NewModel(game, m.deps, m.config, sel.Mode)
	return m, m.gameModel.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = gameModel
	}

	// Check if user quit game (back to menu). The next menu gets a new
	// model, so ticks still in flight for this game are dropped.
	if m.gameModel.BackToMenu() {
		return m.toMenu()
	}

	// Check if user quit entirely
	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}
	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateProfile(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.profile.Update(msg)
	if pm, ok := newModel.(ProfileModel); ok {
		m.profile = pm
	}
	if m.profile.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.profile.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenSetup:
		return m.setup.View()
	case screenGame:
		return m.gameModel.View()
	case screenScoreboard:
		return m.scoreboard.View()
	case screenProfile:
		return m.profile.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(deps Deps, cfg core.RuntimeConfig, username string) error {
	p := tea.NewProgram(
		NewSessionModel(deps, cfg, username),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
