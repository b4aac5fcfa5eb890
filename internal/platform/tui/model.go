package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

// RunReporter is implemented by games that summarize their own runs for the
// scoreboard. Other games are recorded from their GameState.
type RunReporter interface {
	Run() storage.RunRecord
}

// RunStore records finished runs.
type RunStore interface {
	SaveRun(r storage.RunRecord) (string, error)
}

// Model is the Bubble Tea model for running one game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     RunStore
	logger    *log.Logger
	config    core.RuntimeConfig
	keys      *KeyMapper
	input     *HeldInput
	gameState core.GameState
	player    string

	quitting   bool
	exitOnBack bool // return to the caller instead of passing Back to a finished game
	standalone bool // owns its tea.Program
	backToMenu bool
	runSaved   bool
}

// NewModel creates a new Bubble Tea model for the given game. store may be
// nil to skip the scoreboard.
func NewModel(game registry.Game, store RunStore, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}
	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		logger: logger,
		config: cfg,
		keys:   NewKeyMapper(),
		input:  NewHeldInput(DefaultHold),
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	action, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		m.saveRun()
		return m, tea.Quit
	}
	// A second Back on a finished run leaves the game.
	if m.exitOnBack && action == core.ActionBack && m.gameState.GameOver {
		m.backToMenu = true
		m.saveRun()
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}
	m.input.Press(action)
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}
	frame := m.input.Frame(m.config.TickDuration())
	result := m.game.Step(frame)
	m.gameState = result.State

	switch {
	case m.gameState.GameOver && !m.runSaved:
		m.saveRun()
	case !m.gameState.GameOver:
		m.runSaved = false
	}
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the current run once. Runs without a score are skipped.
func (m *Model) saveRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true
	if m.store == nil {
		return
	}

	var rec storage.RunRecord
	if r, ok := m.game.(RunReporter); ok {
		rec = r.Run()
	} else {
		st := m.game.State()
		rec = storage.RunRecord{GameID: m.game.ID(), Score: st.Score, Level: st.Level}
	}
	if rec.Score <= 0 {
		return
	}
	id, err := m.store.SaveRun(rec)
	if err != nil {
		m.logger.Warn("could not save run", "game", rec.GameID, "error", err)
		return
	}
	m.logger.Info("run saved", "run", id, "game", rec.GameID, "player", m.player, "score", rec.Score, "outcome", rec.Outcome)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot: no home directory", "error", err)
		return
	}
	dir := filepath.Join(home, ".shooter", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot: cannot create directory", "dir", dir, "error", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if the user left a finished game.
func (m Model) BackToMenu() bool { return m.backToMenu }

// State returns the last game state seen by the model.
func (m Model) State() core.GameState { return m.gameState }

// Run plays game until the player quits.
func Run(game registry.Game, store RunStore, cfg core.RuntimeConfig, logger *log.Logger) error {
	_, err := tea.NewProgram(NewModel(game, store, cfg, logger), tea.WithAltScreen()).Run()
	return err
}

// RunFromMenu plays game until the player quits or leaves a finished run
// with Back. It reports whether the player asked to quit.
func RunFromMenu(game registry.Game, store RunStore, cfg core.RuntimeConfig, logger *log.Logger) (quit bool, err error) {
	model := NewModel(game, store, cfg, logger)
	model.exitOnBack = true
	model.standalone = true
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return !ok || m.IsQuitting(), nil
}
