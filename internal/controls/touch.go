package controls

import "math"

// Fire button and look-exclusion geometry, in screen pixels from the
// bottom-right corner.
const (
	FireMargin   = 40
	FireDiameter = 90
	FireExclude  = 100
)

// FireButton returns the button centre and radius for a viewport.
func FireButton(width, height float64) (cx, cy, r float64) {
	r = FireDiameter / 2
	return width - FireMargin - r, height - FireMargin - r, r
}

// InFireButton reports whether (x, y) is on the round fire button.
func InFireButton(x, y, width, height float64) bool {
	cx, cy, r := FireButton(width, height)
	return math.Hypot(x-cx, y-cy) <= r
}

// InFireExclusion reports whether (x, y) falls in the square around the fire
// button where look drags must not start.
func InFireExclusion(x, y, width, height float64) bool {
	left := width - FireMargin - FireExclude
	top := height - FireMargin - FireExclude
	right := width - FireMargin
	bottom := height - FireMargin
	return x >= left && x <= right && y >= top && y <= bottom
}

// LookPad turns a drag on the right half of the screen into camera rotation.
type LookPad struct {
	Sensitivity float64

	active  bool
	touchID int
	lx, ly  float64
	dYaw    float64
	dPitch  float64
}

// Active reports whether a touch owns the pad.
func (lp *LookPad) Active() bool { return lp.active }

// Begin claims the pad for a touch. It fails if another touch owns it.
func (lp *LookPad) Begin(id int, x, y float64) bool {
	if lp.active {
		return false
	}
	lp.active = true
	lp.touchID = id
	lp.lx, lp.ly = x, y
	return true
}

// Move accumulates rotation from the owning touch.
func (lp *LookPad) Move(id int, x, y float64) {
	if !lp.active || id != lp.touchID {
		return
	}
	dy, dp := MouseLook(x-lp.lx, y-lp.ly, lp.Sensitivity)
	lp.dYaw += dy
	lp.dPitch += dp
	lp.lx, lp.ly = x, y
}

// End releases the pad if id owns it.
func (lp *LookPad) End(id int) {
	if lp.active && id == lp.touchID {
		lp.active = false
	}
}

// Take returns the rotation accumulated since the last call.
func (lp *LookPad) Take() (dYaw, dPitch float64) {
	dYaw, dPitch = lp.dYaw, lp.dPitch
	lp.dYaw, lp.dPitch = 0, 0
	return dYaw, dPitch
}
