package controls

import "github.com/Garsondee/Night-Chase/internal/game"

// Target is the control a touch was routed to.
type Target int

const (
	TargetNone Target = iota
	TargetJoystick
	TargetLook
	TargetFire
)

func (t Target) String() string {
	switch t {
	case TargetJoystick:
		return "joystick"
	case TargetLook:
		return "look"
	case TargetFire:
		return "fire"
	default:
		return "none"
	}
}

// TouchRouter assigns every new touch to exactly one control: the fire
// button wins inside its circle, the left half drives the joystick, and the
// right half outside the fire square drives the look pad. Each control
// tracks one touch; extra touches are ignored until it is released.
type TouchRouter struct {
	Joystick *Joystick
	Look     *LookPad

	width, height float64
	threshold     float64
	owners        map[int]Target
	shots         int
	firePressed   int
}

// NewTouchRouter builds a router for a viewport.
func NewTouchRouter(width, height, lookSensitivity, joystickThreshold float64) *TouchRouter {
	return &TouchRouter{
		Joystick:  NewJoystick(width, height),
		Look:      &LookPad{Sensitivity: lookSensitivity},
		width:     width,
		height:    height,
		threshold: joystickThreshold,
		owners:    make(map[int]Target),
	}
}

// Resize updates the viewport.
func (tr *TouchRouter) Resize(width, height float64) {
	tr.width, tr.height = width, height
	tr.Joystick.Resize(width, height)
}

// Begin routes a new touch and returns where it went.
func (tr *TouchRouter) Begin(id int, x, y float64) Target {
	if _, seen := tr.owners[id]; seen {
		return tr.owners[id]
	}
	target := TargetNone
	switch {
	case InFireButton(x, y, tr.width, tr.height):
		target = TargetFire
		tr.shots++
		tr.firePressed++
	case x <= tr.width/2:
		if tr.Joystick.Begin(id, x, y) {
			target = TargetJoystick
		}
	case !InFireExclusion(x, y, tr.width, tr.height):
		if tr.Look.Begin(id, x, y) {
			target = TargetLook
		}
	}
	tr.owners[id] = target
	return target
}

// Move forwards motion to the control that owns the touch.
func (tr *TouchRouter) Move(id int, x, y float64) {
	switch tr.owners[id] {
	case TargetJoystick:
		tr.Joystick.Move(id, x, y)
	case TargetLook:
		tr.Look.Move(id, x, y)
	}
}

// End releases a touch.
func (tr *TouchRouter) End(id int) {
	switch tr.owners[id] {
	case TargetJoystick:
		tr.Joystick.End(id)
	case TargetLook:
		tr.Look.End(id)
	case TargetFire:
		tr.firePressed--
	}
	delete(tr.owners, id)
}

// FirePressed reports whether a touch is holding the fire button.
func (tr *TouchRouter) FirePressed() bool { return tr.firePressed > 0 }

// Owner returns where a live touch was routed.
func (tr *TouchRouter) Owner(id int) Target { return tr.owners[id] }

// Reset drops every tracked touch, e.g. when the phase leaves Playing.
func (tr *TouchRouter) Reset() {
	for id := range tr.owners {
		tr.End(id)
	}
	tr.shots = 0
	tr.Look.Take()
}

// Input drains the frame's touch contribution into a session Input.
func (tr *TouchRouter) Input() game.Input {
	x, y := tr.Joystick.Vector()
	yaw, pitch := tr.Look.Take()
	in := game.Input{
		Move:      game.IntentFromAxes(x, y, tr.threshold),
		LookYaw:   yaw,
		LookPitch: pitch,
		Fire:      tr.shots,
	}
	tr.shots = 0
	return in
}

// Merge combines two per-frame inputs: movement flags are OR-ed, look deltas
// and trigger pulls are summed.
func Merge(a, b game.Input) game.Input {
	return game.Input{
		Move: game.MoveIntent{
			Forward:  a.Move.Forward || b.Move.Forward,
			Backward: a.Move.Backward || b.Move.Backward,
			Left:     a.Move.Left || b.Move.Left,
			Right:    a.Move.Right || b.Move.Right,
		},
		LookYaw:   a.LookYaw + b.LookYaw,
		LookPitch: a.LookPitch + b.LookPitch,
		Fire:      a.Fire + b.Fire,
	}
}
