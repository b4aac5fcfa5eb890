package core

// Action is a semantic input. The platform maps physical keys onto actions;
// the simulation only ever sees actions.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionFire
	ActionPause
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit

	actionCount
)

var actionNames = [...]string{
	ActionNone:    "none",
	ActionUp:      "up",
	ActionDown:    "down",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionFire:    "fire",
	ActionPause:   "pause",
	ActionConfirm: "confirm",
	ActionBack:    "back",
	ActionRestart: "restart",
	ActionQuit:    "quit",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// InputFrame is the set of actions active during one tick. The zero value
// is an empty frame and frames are compared and copied by value.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame { return InputFrame{} }

// FrameOf returns a frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks a as active. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

func (f InputFrame) Has(a Action) bool { return f.bits&(1<<a) != 0 }
func (f *InputFrame) Clear()           { f.bits = 0 }
func (f InputFrame) Clone() InputFrame { return f }
func (f InputFrame) Empty() bool       { return f.bits == 0 }

// Merge returns the union of f and other.
func (f InputFrame) Merge(other InputFrame) InputFrame {
	return InputFrame{bits: f.bits | other.bits}
}

// Direction converts the held movement actions into an unnormalized
// direction with components in {-1, 0, 1}.
func (f InputFrame) Direction() Vec {
	var d Vec
	if f.Has(ActionLeft) {
		d.X--
	}
	if f.Has(ActionRight) {
		d.X++
	}
	if f.Has(ActionUp) {
		d.Y--
	}
	if f.Has(ActionDown) {
		d.Y++
	}
	return d
}
