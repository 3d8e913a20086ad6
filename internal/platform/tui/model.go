package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/economy"
	"github.com/vovakirdan/math-arcade/internal/multiplayer"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

// Model is the Bubble Tea model for running one arcade game.
// It is used directly by `arcade play` and embedded in SessionModel for
// the menu and SSH flows.
type Model struct {
	game       registry.Game
	multi      registry.MultiplayerGame // set when the game takes two seats
	deps       Deps
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.MultiInputFrame
	gameState  core.GameState
	gen        int64
	standalone bool // back from game over quits instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, deps Deps, cfg core.RuntimeConfig, mode multiplayer.MatchMode) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	frame := core.NewMultiInputFrame()
	frame.SetPlayer(multiplayer.Player1, core.NewInputFrame())
	frame.SetPlayer(multiplayer.Player2, core.NewInputFrame())

	m := Model{
		game:       game,
		deps:       deps,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keyMapper:  &KeyMapper{Mode: mode},
		inputFrame: frame,
		gen:        nextGeneration(),
	}
	if mg, ok := game.(registry.MultiplayerGame); ok && mode.HasOpponent() {
		m.multi = mg
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.deps.logger().Debug("game started", "game", m.game.ID(), "profile", m.deps.profileName())
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if sample, ok := m.keyMapper.MapMouse(msg, time.Now()); ok {
			p1 := m.inputFrame.Player1()
			p1.AddPointer(sample)
			m.inputFrame.SetPlayer(multiplayer.Player1, p1)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick(msg.At)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, _ := m.keyMapper.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.persist()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		// Back leaves a finished or paused game; otherwise it pauses.
		if m.gameState.GameOver || m.gameState.Paused {
			m.persist()
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
			m.backToMenu = true
			return m, nil
		}
		p1 := m.inputFrame.Player1()
		p1.Set(core.ActionPause)
		m.inputFrame.SetPlayer(multiplayer.Player1, p1)
		return m, nil
	}

	m.keyMapper.MapKeyToMultiFrame(msg, &m.inputFrame)
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	// Update screen size
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Reinitialize game with new dimensions if needed
	// Note: This resets the game - could be improved to preserve state
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(at time.Time) (tea.Model, tea.Cmd) {
	p1 := m.inputFrame.Player1()

	// Check for restart
	if p1.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.gen)
	}

	m.inputFrame.Stamp(at)

	var result core.StepResult
	if m.multi != nil {
		result = m.multi.StepMulti(m.inputFrame)
	} else {
		result = m.game.Step(m.inputFrame.Player1())
	}
	m.gameState = result.State
	m.deps.Sound.PlayEvents(result.Events)

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.finish()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate, m.gen)
}

// finish records a completed session.
func (m *Model) finish() {
	logger := m.deps.logger()
	logger.Info("game over",
		"game", m.game.ID(),
		"profile", m.deps.profileName(),
		"score", m.gameState.Score,
		"won", m.gameState.Won,
	)
	if m.deps.Store != nil && m.gameState.Score > 0 {
		if _, err := m.deps.Store.SaveProfileScore(m.deps.profileName(), m.game.ID(), m.gameState.Score); err != nil {
			logger.Warn("could not save score", "game", m.game.ID(), "err", err)
		}
	}
	m.persist()
}

// persist writes the profile back. Coins and XP are credited while playing,
// so this also runs when a game is abandoned.
func (m *Model) persist() {
	if m.deps.Profile == nil {
		return
	}
	if err := m.deps.Profile.Save(); err != nil {
		m.deps.logger().Warn("could not save profile", "profile", m.deps.profileName(), "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.screen.Clear()
	m.game.Render(m.screen)
	m.drawStatus()

	// Convert screen to string
	return RenderScreen(m.screen)
}

// drawStatus puts the profile's coins and level in the bottom-right corner
// and the newest progression notice, if any, in the bottom-left.
func (m Model) drawStatus() {
	if m.deps.Profile == nil {
		return
	}
	y := m.screen.Height() - 1
	s := m.deps.Profile.Summary()
	text := fmt.Sprintf(" %d coins  Lv %d ", s.Coins, s.Level)
	x := m.screen.Width() - len(text)
	if x < 0 {
		return
	}
	m.screen.DrawTextColored(x, y, text, core.ColorYellow)

	var notes []economy.Notification
	m.deps.Profile.Progress(func(p *economy.Progress) {
		notes = p.Notifications()
	})
	if len(notes) > 0 {
		m.screen.DrawTextColored(1, y, notes[len(notes)-1].Message, core.ColorBrightGreen)
	}
}

// State returns the last stepped game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, deps Deps, cfg core.RuntimeConfig, mode multiplayer.MatchMode) error {
	model := NewModel(game, deps, cfg, mode)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drags and clicks become pointer samples
	)

	_, err := p.Run()
	return err
}
