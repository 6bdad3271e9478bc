package core

// Action is a semantic player intent, decoupled from physical keys.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveLeft         // Left, A, H
	ActionMoveRight        // Right, D, L
	ActionRotate           // Up, W, X, K
	ActionSoftDrop         // Down, S, J - held
	ActionHardDrop         // Space
	ActionPause            // P, Escape
	ActionRestart          // R after game over
	ActionQuit             // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionRotate:
		return "Rotate"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionHardDrop:
		return "HardDrop"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions collected for one tick, plus the time
// elapsed since the previous tick.
type InputFrame struct {
	Actions map[Action]bool

	// Elapsed is the frame delta in seconds.
	Elapsed float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Elapsed = 0
}

// Clone returns a deep copy of the frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Elapsed = f.Elapsed
	return clone
}

// Bits packs the frame's actions into a bitmask, one bit per Action.
func (f InputFrame) Bits() uint16 {
	var bits uint16
	for a, on := range f.Actions {
		if on && a > ActionNone && a < 16 {
			bits |= 1 << uint(a)
		}
	}
	return bits
}

// FrameFromBits rebuilds an input frame from a Bits mask.
func FrameFromBits(bits uint16, elapsed float64) InputFrame {
	f := NewInputFrame()
	for a := ActionNone + 1; a < 16; a++ {
		if bits&(1<<uint(a)) != 0 {
			f.Set(a)
		}
	}
	f.Elapsed = elapsed
	return f
}
