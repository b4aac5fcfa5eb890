package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

const maxRuns = 100

// RunSource supplies the scoreboard.
type RunSource interface {
	TopRuns(gameID string, limit int) ([]storage.RunRecord, error)
	Stats(gameID string) (*storage.GameStats, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up, Down   key.Binding
	NextMode   key.Binding
	PrevMode   key.Binding
	Back, Quit key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
		PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best runs of each game.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	source     RunSource
	logger     *log.Logger
	runs       []storage.RunRecord
	stats      *storage.GameStats
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard. source may be nil.
func NewScoreboardModel(source RunSource, width, height int, logger *log.Logger) ScoreboardModel {
	if logger == nil {
		logger = log.Default()
	}
	m := ScoreboardModel{
		games:  registry.List(),
		source: source,
		logger: logger,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	if len(m.games) > 0 {
		m.load(m.games[0].ID)
	}
	return m
}

var runColumns = []table.Column{
	{Title: "Rank", Width: 5},
	{Title: "Score", Width: 8},
	{Title: "Level", Width: 6},
	{Title: "Outcome", Width: 10},
	{Title: "Foes", Width: 5},
	{Title: "Items", Width: 6},
	{Title: "Date", Width: 13},
}

func runTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = menuActive.Background(lipgloss.Color("57"))
	return s
}

// createTable sizes the table to the window, leaving room for the header
// lines and the help.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(runColumns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)
	t.SetStyles(runTableStyles())
	return t
}

func (m *ScoreboardModel) load(gameID string) {
	m.runs, m.stats = nil, nil
	if m.source != nil {
		runs, err := m.source.TopRuns(gameID, maxRuns)
		if err != nil {
			m.logger.Warn("could not load runs", "game", gameID, "error", err)
		}
		m.runs = runs
		if stats, err := m.source.Stats(gameID); err == nil {
			m.stats = stats
		}
	}
	m.updateRows()
}

func (m *ScoreboardModel) updateRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Level),
			strings.ReplaceAll(r.Outcome, "_", " "),
			strconv.Itoa(r.EnemiesDefeated),
			strconv.Itoa(r.ItemsCollected),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycle(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (m.gameCursor + delta + len(m.games)) % len(m.games)
	m.load(m.games[m.gameCursor].ID)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.cycle(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var scoreBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	title := "BEST RUNS"
	if len(m.games) > 0 {
		title = fmt.Sprintf("< BEST RUNS - %s >", m.games[m.gameCursor].Title)
	}

	body := m.table.View()
	if len(m.runs) == 0 {
		body = menuDim.Italic(true).Padding(1, 4).Render("No runs recorded yet.")
	}
	return strings.Join([]string{
		"",
		menuTitle.Render(centerText(title, m.width)),
		menuDim.Render(centerText(m.statsLine(), m.width)),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, scoreBox.Render(body)),
		menuDim.Render(m.help.View(m.keys)),
	}, "\n")
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.RunsCount == 0 {
		return "no runs yet"
	}
	return fmt.Sprintf("%d runs  |  best %d  |  avg %.0f  |  %d victories",
		m.stats.RunsCount, m.stats.BestScore, m.stats.AvgScore, m.stats.Victories)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(source RunSource, width, height int, logger *log.Logger) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(source, width, height, logger), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
