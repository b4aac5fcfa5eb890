package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// gameKeys binds key names, as reported by tea.KeyMsg.String, to actions.
var gameKeys = bindKeys(map[core.Action][]string{
	core.ActionUp:      {"w", "up", "k"},
	core.ActionDown:    {"s", "down", "j"},
	core.ActionLeft:    {"a", "left", "h"},
	core.ActionRight:   {"d", "right", "l"},
	core.ActionFire:    {" ", "f"},
	core.ActionConfirm: {"enter"},
	core.ActionBack:    {"b", "esc"},
	core.ActionPause:   {"p"},
	core.ActionRestart: {"r"},
	core.ActionQuit:    {"q", "ctrl+c"},
})

func bindKeys(byAction map[core.Action][]string) map[string]core.Action {
	out := make(map[string]core.Action)
	for a, names := range byAction {
		for _, n := range names {
			out[n] = a
		}
	}
	return out
}

// KeyMapper translates Bubble Tea key messages into game actions.
type KeyMapper struct {
	bindings map[string]core.Action
}

func NewKeyMapper() *KeyMapper {
	return &KeyMapper{bindings: gameKeys}
}

// MapKey returns the action bound to msg and whether it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, bool) {
	a, ok := km.bindings[msg.String()]
	if !ok {
		return core.ActionNone, false
	}
	return a, a == core.ActionQuit
}

// DefaultHold is how long a movement or fire key stays down after its last
// key event. Terminals only report presses, so a held key is seen as a
// stream of repeats.
const DefaultHold = 180 * time.Millisecond

// opposite pairs cancel each other when pressed.
var opposite = map[core.Action]core.Action{
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}

func continuous(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionFire:
		return true
	}
	return false
}

// HeldInput turns key presses into per-tick input frames. Movement and
// fire stay active for the hold window; other actions last one frame.
type HeldInput struct {
	hold   time.Duration
	held   map[core.Action]time.Duration
	pulses core.InputFrame
}

// NewHeldInput creates an input tracker. hold <= 0 uses DefaultHold.
func NewHeldInput(hold time.Duration) *HeldInput {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &HeldInput{
		hold:   hold,
		held:   make(map[core.Action]time.Duration),
		pulses: core.NewInputFrame(),
	}
}

// Press records one key event.
func (h *HeldInput) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if !continuous(a) {
		h.pulses.Set(a)
		return
	}
	if o, ok := opposite[a]; ok {
		delete(h.held, o)
	}
	h.held[a] = h.hold
}

// Frame returns the input for a tick of dt and ages the held keys.
func (h *HeldInput) Frame(dt time.Duration) core.InputFrame {
	frame := h.pulses.Clone()
	h.pulses.Clear()
	for a, left := range h.held {
		frame.Set(a)
		if left -= dt; left <= 0 {
			delete(h.held, a)
		} else {
			h.held[a] = left
		}
	}
	return frame
}

// Release drops every held key.
func (h *HeldInput) Release() {
	clear(h.held)
	h.pulses.Clear()
}
