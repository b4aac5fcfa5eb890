package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

// MenuKeyMap defines the key bindings of the mode picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Play   key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Play}, {k.Scores, k.Quit}}
}

// DefaultMenuKeyMap returns the default picker bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("up/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("down/j", "down")),
		Play:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Scores: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "b", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// MenuModel picks a game mode.
type MenuModel struct {
	modes     []registry.GameInfo
	cursor    int
	config    core.RuntimeConfig
	keys      MenuKeyMap
	help      help.Model
	highScore int

	chosen         string
	openScoreboard bool
	quitting       bool
}

// NewMenuModel lists every registered mode.
func NewMenuModel(cfg core.RuntimeConfig, highScore int) MenuModel {
	return MenuModel{
		modes:     registry.List(),
		config:    cfg,
		keys:      DefaultMenuKeyMap(),
		help:      help.New(),
		highScore: highScore,
	}
}

func (m MenuModel) Init() tea.Cmd { return nil }

// Update moves the cursor or ends the picker.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Scores):
			m.openScoreboard = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.cursor = min(m.cursor+1, len(m.modes)-1)
		case key.Matches(msg, m.keys.Play):
			if len(m.modes) > 0 {
				m.chosen = m.modes[m.cursor].ID
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

var (
	menuTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	menuActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View draws the title, the modes and the key help.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.config.ScreenW

	lines := []string{
		"",
		menuTitle.Render(centerText("S H O O T E R", w)),
		"",
	}
	if m.highScore > 0 {
		lines = append(lines, centerText(fmt.Sprintf("High score: %d", m.highScore), w), "")
	}
	for i, mode := range m.modes {
		if i == m.cursor {
			lines = append(lines, menuActive.Render(centerText("> "+mode.Title+" <", w)))
		} else {
			lines = append(lines, centerText(mode.Title, w))
		}
		if mode.Description != "" {
			lines = append(lines, menuDim.Render(centerText(mode.Description, w)))
		}
		lines = append(lines, "")
	}
	lines = append(lines, menuDim.Render(centerText(m.help.View(m.keys), w)))
	return strings.Join(lines, "\n") + "\n"
}

// Chosen returns the picked game id, or "" when none was picked.
func (m MenuModel) Chosen() string { return m.chosen }

func (m MenuModel) IsQuitting() bool      { return m.quitting }
func (m MenuModel) WantsScoreboard() bool { return m.openScoreboard }

// Config returns the runtime config, resized to the last window size.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

// centerText pads text on the left to center it within width cells.
func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// MenuResult is what the picker decided.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the picker until a mode, the scoreboard or quit is chosen.
func RunMenu(cfg core.RuntimeConfig, highScore int) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(cfg, highScore), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	res := MenuResult{Config: m.Config(), GameID: m.Chosen(), WantsScoreboard: m.WantsScoreboard()}
	res.Quit = res.GameID == "" && !res.WantsScoreboard
	return res, nil
}
