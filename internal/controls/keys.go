// Package controls maps raw input (keys, mouse motion, touches) onto the
// session's Input without depending on any windowing backend.
package controls

import (
	"time"

	"github.com/Garsondee/Night-Chase/internal/game"
)

// Action is a movement binding.
type Action int

const (
	ActionForward Action = iota
	ActionBackward
	ActionLeft
	ActionRight
	actionCount
)

func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionBackward:
		return "backward"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	default:
		return "unknown"
	}
}

// ActionForKey maps a key name to its action. Both WASD and the arrow keys
// are bound; names are case-insensitive single letters or "up", "down",
// "left", "right".
func ActionForKey(name string) (Action, bool) {
	switch name {
	case "w", "W", "up", "Up", "ArrowUp":
		return ActionForward, true
	case "s", "S", "down", "Down", "ArrowDown":
		return ActionBackward, true
	case "a", "A", "left", "Left", "ArrowLeft":
		return ActionLeft, true
	case "d", "D", "right", "Right", "ArrowRight":
		return ActionRight, true
	}
	return 0, false
}

// KeyState tracks which movement actions are held. Press and Release mirror
// key-down and key-up edges.
type KeyState struct {
	held [actionCount]bool
}

// Press marks a action as held.
func (ks *KeyState) Press(a Action) {
	if a >= 0 && a < actionCount {
		ks.held[a] = true
	}
}

// Release clears a held action.
func (ks *KeyState) Release(a Action) {
	if a >= 0 && a < actionCount {
		ks.held[a] = false
	}
}

// Reset releases everything, e.g. when the window loses focus.
func (ks *KeyState) Reset() {
	ks.held = [actionCount]bool{}
}

// Intent converts the held set to movement flags.
func (ks *KeyState) Intent() game.MoveIntent {
	return game.MoveIntent{
		Forward:  ks.held[ActionForward],
		Backward: ks.held[ActionBackward],
		Left:     ks.held[ActionLeft],
		Right:    ks.held[ActionRight],
	}
}

// HoldTracker synthesises key-up edges for backends that only report key
// presses (terminals): an action counts as held until Hold has passed since
// its most recent press or auto-repeat.
type HoldTracker struct {
	Hold time.Duration
	last [actionCount]time.Time
}

// DefaultHold bridges typical terminal auto-repeat gaps.
const DefaultHold = 150 * time.Millisecond

// NewHoldTracker returns a tracker with the given hold window.
func NewHoldTracker(hold time.Duration) *HoldTracker {
	return &HoldTracker{Hold: hold}
}

// Press records a key event for a at now.
func (ht *HoldTracker) Press(a Action, now time.Time) {
	if a >= 0 && a < actionCount {
		ht.last[a] = now
	}
}

// Intent reports the actions still inside their hold window at now.
func (ht *HoldTracker) Intent(now time.Time) game.MoveIntent {
	held := func(a Action) bool {
		t := ht.last[a]
		return !t.IsZero() && now.Sub(t) < ht.Hold
	}
	return game.MoveIntent{
		Forward:  held(ActionForward),
		Backward: held(ActionBackward),
		Left:     held(ActionLeft),
		Right:    held(ActionRight),
	}
}

// MouseLook converts pointer motion in pixels into yaw/pitch deltas. Moving
// right turns right and moving down looks down.
func MouseLook(dx, dy, sensitivity float64) (dYaw, dPitch float64) {
	return -dx * sensitivity, -dy * sensitivity
}
