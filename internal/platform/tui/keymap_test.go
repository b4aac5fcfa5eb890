package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"w", runeKey('w'), core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"h", runeKey('h'), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire, false},
		{"f", runeKey('f'), core.ActionFire, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey() = (%v, %v), want (%v, %v)", action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestHeldInputKeepsMovementForHoldWindow(t *testing.T) {
	h := NewHeldInput(50 * time.Millisecond)
	h.Press(core.ActionRight)

	tick := 20 * time.Millisecond
	for i := 0; i < 3; i++ {
		if !h.Frame(tick).Has(core.ActionRight) {
			t.Fatalf("frame %d: right released early", i)
		}
	}
	if h.Frame(tick).Has(core.ActionRight) {
		t.Error("right still held after the hold window")
	}
}

func TestHeldInputRepeatRefreshesHold(t *testing.T) {
	h := NewHeldInput(30 * time.Millisecond)
	h.Press(core.ActionFire)
	h.Frame(20 * time.Millisecond)
	h.Press(core.ActionFire)
	h.Frame(20 * time.Millisecond)
	if !h.Frame(5 * time.Millisecond).Has(core.ActionFire) {
		t.Error("repeat did not refresh the hold")
	}
}

func TestHeldInputOppositeCancels(t *testing.T) {
	h := NewHeldInput(0)
	h.Press(core.ActionLeft)
	h.Press(core.ActionUp)
	h.Press(core.ActionRight)

	f := h.Frame(time.Millisecond)
	if f.Has(core.ActionLeft) {
		t.Error("left survived a right press")
	}
	if !f.Has(core.ActionRight) || !f.Has(core.ActionUp) {
		t.Error("expected right and up held")
	}
	if got := f.Direction(); got != core.V(1, -1) {
		t.Errorf("Direction() = %v, want (1,-1)", got)
	}
}

func TestHeldInputPulsesLastOneFrame(t *testing.T) {
	h := NewHeldInput(0)
	h.Press(core.ActionPause)
	h.Press(core.ActionNone)

	if !h.Frame(time.Millisecond).Has(core.ActionPause) {
		t.Fatal("pause pulse missing")
	}
	if h.Frame(time.Millisecond).Has(core.ActionPause) {
		t.Error("pause repeated on the next frame")
	}
}

func TestHeldInputRelease(t *testing.T) {
	h := NewHeldInput(0)
	h.Press(core.ActionDown)
	h.Press(core.ActionConfirm)
	h.Release()
	f := h.Frame(time.Millisecond)
	if f.Has(core.ActionDown) || f.Has(core.ActionConfirm) {
		t.Error("Release left input active")
	}
}
