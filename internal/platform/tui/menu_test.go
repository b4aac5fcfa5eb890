package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

func init() {
	registry.Register("tui-test-a", func() registry.Game { return &stubGame{} })
	registry.Register("tui-test-b", func() registry.Game { return &stubGame{} })
}

func menuStep(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestMenuPicksMode(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), 0)
	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	want := registry.List()[1].ID
	if m.Chosen() != want {
		t.Errorf("Chosen() = %q, want %q", m.Chosen(), want)
	}
	if m.IsQuitting() || m.WantsScoreboard() {
		t.Error("unexpected quit or scoreboard")
	}
}

func TestMenuCursorStaysInRange(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), 0)
	for range len(registry.List()) + 3 {
		m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	list := registry.List()
	if m.Chosen() != list[len(list)-1].ID {
		t.Errorf("Chosen() = %q, want the last mode", m.Chosen())
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := menuStep(t, NewMenuModel(core.DefaultConfig(), 0), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab did not open the scoreboard")
	}
	m = menuStep(t, NewMenuModel(core.DefaultConfig(), 0), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsQuitting() || m.View() != "" {
		t.Error("esc did not quit")
	}
}

func TestMenuViewShowsHighScoreAndResize(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), 1234)
	m = menuStep(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.Config().ScreenW != 100 || m.Config().ScreenH != 30 {
		t.Errorf("Config() = %+v", m.Config())
	}
	if !strings.Contains(m.View(), "High score: 1234") {
		t.Error("high score missing from the menu")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("centerText overflow = %q", got)
	}
}
