package controls

import "math"

// DeadZone is the fraction of the joystick radius that reads as centred.
const DeadZone = 0.15

// JoystickSizes returns the knob travel radius and knob size for a viewport.
func JoystickSizes(width, height float64) (maxDistance, knobSize float64) {
	minDim := math.Min(width, height)
	maxDistance = math.Max(25, math.Min(50, minDim*0.06))
	knobSize = math.Max(18, math.Min(30, maxDistance*0.6))
	if width < 375 {
		maxDistance = math.Min(maxDistance, 35)
		knobSize = math.Min(knobSize, 22)
	}
	return maxDistance, knobSize
}

// Joystick is a floating virtual stick: it appears where the touch starts
// and reports a vector with y up positive.
type Joystick struct {
	maxDistance float64
	knobSize    float64

	active  bool
	touchID int
	cx, cy  float64
	x, y    float64 // output, y up positive
	kx, ky  float64 // knob offset in screen pixels
}

// NewJoystick sizes a joystick for the viewport.
func NewJoystick(width, height float64) *Joystick {
	j := &Joystick{}
	j.Resize(width, height)
	return j
}

// Resize recomputes the size for a new viewport.
func (j *Joystick) Resize(width, height float64) {
	j.maxDistance, j.knobSize = JoystickSizes(width, height)
}

// MaxDistance returns the knob travel radius in pixels.
func (j *Joystick) MaxDistance() float64 { return j.maxDistance }

// KnobSize returns the knob diameter in pixels.
func (j *Joystick) KnobSize() float64 { return j.knobSize }

// Active reports whether a touch owns the stick.
func (j *Joystick) Active() bool { return j.active }

// TouchID returns the owning touch.
func (j *Joystick) TouchID() int { return j.touchID }

// Begin claims the stick for a touch at (x, y). It fails if another touch
// already owns it.
func (j *Joystick) Begin(id int, x, y float64) bool {
	if j.active {
		return false
	}
	j.active = true
	j.touchID = id
	j.cx, j.cy = x, y
	j.x, j.y, j.kx, j.ky = 0, 0, 0, 0
	return true
}

// Move updates the vector for the owning touch. Other touches are ignored.
func (j *Joystick) Move(id int, x, y float64) {
	if !j.active || id != j.touchID {
		return
	}
	dx := x - j.cx
	dy := y - j.cy
	dist := math.Hypot(dx, dy)

	nx := dx / j.maxDistance
	ny := dy / j.maxDistance
	if dist > j.maxDistance {
		nx = dx / dist
		ny = dy / dist
	}
	nd := math.Min(dist/j.maxDistance, 1)
	if nd < DeadZone {
		nx, ny = 0, 0
	} else {
		scale := (nd - DeadZone) / (1 - DeadZone)
		nx *= scale
		ny *= scale
	}
	j.kx = nx * j.maxDistance
	j.ky = ny * j.maxDistance
	j.x = nx
	j.y = -ny
}

// End releases the stick if id owns it and zeroes the output.
func (j *Joystick) End(id int) {
	if !j.active || id != j.touchID {
		return
	}
	j.active = false
	j.x, j.y, j.kx, j.ky = 0, 0, 0, 0
}

// Vector returns the current output in [-1, 1], y up positive.
func (j *Joystick) Vector() (x, y float64) { return j.x, j.y }

// Center returns where the active touch started.
func (j *Joystick) Center() (x, y float64) { return j.cx, j.cy }

// Knob returns the knob offset from the centre in screen pixels.
func (j *Joystick) Knob() (x, y float64) { return j.kx, j.ky }
