package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MoveIntent holds the four directional flags. Keyboard edges and the
// virtual joystick both collapse into this shape.
type MoveIntent struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

// Any reports whether at least one flag is set.
func (mi MoveIntent) Any() bool {
	return mi.Forward || mi.Backward || mi.Left || mi.Right
}

// IntentFromAxes converts a joystick vector (y up positive) to flags.
func IntentFromAxes(x, y, threshold float64) MoveIntent {
	return MoveIntent{
		Forward:  y > threshold,
		Backward: y < -threshold,
		Left:     x < -threshold,
		Right:    x > threshold,
	}
}

// probeDirs are the eight horizontal collision probes around the player.
var probeDirs = [8]mgl64.Vec3{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 0, 1},
	{0, 0, -1},
	{math.Sqrt2 / 2, 0, math.Sqrt2 / 2},
	{-math.Sqrt2 / 2, 0, math.Sqrt2 / 2},
	{math.Sqrt2 / 2, 0, -math.Sqrt2 / 2},
	{-math.Sqrt2 / 2, 0, -math.Sqrt2 / 2},
}

// collidable accepts only objects tagged as movement blockers.
func collidable(o *SceneObject) bool {
	return o.Caps.Has(CapCollidable)
}

// MoveResult summarises one controller step.
type MoveResult struct {
	Moving    bool       // any intent flag resolved to a non-zero velocity
	Attempted mgl64.Vec3 // horizontal displacement requested
	Applied   mgl64.Vec3 // horizontal displacement actually taken
	Blocked   bool       // the full displacement collided
}

// MovementController turns intent into camera motion with collision avoidance
// and a head-bob.
type MovementController struct {
	tuning   MovementTuning
	bobPhase float64
	moving   bool
}

// NewMovementController creates a controller.
func NewMovementController(t MovementTuning) *MovementController {
	return &MovementController{tuning: t}
}

// BobPhase returns the head-bob accumulator.
func (mc *MovementController) BobPhase() float64 {
	return mc.bobPhase
}

// Moving reports whether the last step had a non-zero velocity.
func (mc *MovementController) Moving() bool {
	return mc.moving
}

// Collides reports whether pos lies inside a collidable box or any probe
// from pos hits a collidable object closer than the player radius.
func (mc *MovementController) Collides(scene *Scene, pos mgl64.Vec3) bool {
	if scene == nil {
		return false
	}
	for _, o := range scene.Objects() {
		if b, ok := o.Shape.(*Box); ok && o.solid() && collidable(o) && b.Contains(pos) {
			return true
		}
	}
	for _, dir := range probeDirs {
		hit, ok := scene.Nearest(pos, dir, mc.tuning.PlayerRadius, collidable)
		if ok && hit.Distance < mc.tuning.PlayerRadius {
			return true
		}
	}
	return false
}

// Update advances the controller by dt seconds and mutates cam.Position.
func (mc *MovementController) Update(cam *Camera, intent MoveIntent, dt float64, scene *Scene) MoveResult {
	var res MoveResult

	forward := cam.HorizontalForward()
	right := cam.Right()

	var velocity mgl64.Vec3
	if intent.Forward {
		velocity = velocity.Add(forward)
	}
	if intent.Backward {
		velocity = velocity.Sub(forward)
	}
	if intent.Right {
		velocity = velocity.Add(right)
	}
	if intent.Left {
		velocity = velocity.Sub(right)
	}

	res.Moving = velocity.Len() > 1e-9
	mc.moving = res.Moving

	if res.Moving {
		step := velocity.Normalize().Mul(mc.tuning.Speed * dt)
		res.Attempted = step
		res.Applied, res.Blocked = mc.resolveSwept(cam, step, scene)
	}

	mc.bob(cam, dt)
	return res
}

// resolveSwept splits a step longer than the player radius into sub-steps so
// a hitched frame cannot carry the probes past a thin wall. It stops at the
// first sub-step that is blocked on every axis.
func (mc *MovementController) resolveSwept(cam *Camera, step mgl64.Vec3, scene *Scene) (applied mgl64.Vec3, blocked bool) {
	n := 1
	if r := mc.tuning.PlayerRadius; r > 0 {
		n = int(math.Ceil(step.Len() / r))
	}
	if n <= 1 {
		applied = mc.resolve(cam, step, scene)
		return applied, applied != step
	}
	sub := step.Mul(1 / float64(n))
	for i := 0; i < n; i++ {
		got := mc.resolve(cam, sub, scene)
		applied = applied.Add(got)
		if got != sub {
			blocked = true
		}
		if got.Len() == 0 {
			break
		}
	}
	return applied, blocked
}

// resolve tries the full step, then each horizontal axis on its own.
func (mc *MovementController) resolve(cam *Camera, step mgl64.Vec3, scene *Scene) mgl64.Vec3 {
	if !mc.Collides(scene, cam.Position.Add(step)) {
		cam.Position = cam.Position.Add(step)
		return step
	}
	xStep := mgl64.Vec3{step[0], 0, 0}
	if !mc.Collides(scene, cam.Position.Add(xStep)) {
		cam.Position = cam.Position.Add(xStep)
		return xStep
	}
	zStep := mgl64.Vec3{0, 0, step[2]}
	if !mc.Collides(scene, cam.Position.Add(zStep)) {
		cam.Position = cam.Position.Add(zStep)
		return zStep
	}
	return mgl64.Vec3{}
}

// bob drives the eye-height animation.
func (mc *MovementController) bob(cam *Camera, dt float64) {
	t := mc.tuning
	if mc.moving {
		mc.bobPhase += dt * t.BobFrequency
		cam.Position[1] = t.BaseHeight + math.Sin(mc.bobPhase)*t.BobAmplitude
		return
	}
	mc.bobPhase = 0
	diff := t.BaseHeight - cam.Position[1]
	if math.Abs(diff) <= 0.001 {
		cam.Position[1] = t.BaseHeight
		return
	}
	k := math.Min(1, dt*t.IdleReturnRate)
	cam.Position[1] += diff * k
}
