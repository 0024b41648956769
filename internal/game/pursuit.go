package game

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PursuitReport is what the entity tells the session after each step.
type PursuitReport struct {
	Distance float64
	Caught   bool // true only on the frame the catch radius is first crossed
}

// Pursuer is the single chasing entity. It steers straight at the player
// every frame: no pathfinding, no obstacle avoidance.
type Pursuer struct {
	tuning    PursuitTuning
	position  mgl64.Vec3
	billboard *Billboard
	object    *SceneObject
	distance  float64
	caught    bool
}

// NewPursuer creates the entity at pos and registers its billboard in scene.
func NewPursuer(t PursuitTuning, pos mgl64.Vec3, scene *Scene) *Pursuer {
	bb := &Billboard{
		Pos:    pos,
		Normal: mgl64.Vec3{0, 0, 1},
		Width:  t.Width,
		Height: t.Height,
	}
	p := &Pursuer{
		tuning:    t,
		position:  pos,
		billboard: bb,
		distance:  math.Inf(1),
	}
	if scene != nil {
		p.object = scene.Add(&SceneObject{
			Name:    "entity",
			Kind:    KindMesh,
			Shape:   bb,
			Caps:    CapCollidable | CapShootable | CapEntity,
			Visible: true,
			Color:   color.RGBA{R: 18, G: 12, B: 14, A: 255},
		})
	}
	return p
}

// Position returns the entity position.
func (p *Pursuer) Position() mgl64.Vec3 {
	return p.position
}

// Distance returns the distance measured on the last update.
func (p *Pursuer) Distance() float64 {
	return p.distance
}

// Caught reports whether the catch event has fired.
func (p *Pursuer) Caught() bool {
	return p.caught
}

// Billboard returns the entity's shape for renderers.
func (p *Pursuer) Billboard() *Billboard {
	return p.billboard
}

// ObjectID returns the scene ID, or 0 when the pursuer lives outside a scene.
func (p *Pursuer) ObjectID() int {
	if p.object == nil {
		return 0
	}
	return p.object.ID
}

// Update moves the entity toward target by speed*dt, turns it to face the
// target and reports the new distance.
func (p *Pursuer) Update(target mgl64.Vec3, dt float64) PursuitReport {
	toTarget := target.Sub(p.position)
	dist := toTarget.Len()
	if dist > 1e-9 {
		step := p.tuning.Speed * dt
		if step > dist {
			step = dist
		}
		p.position = p.position.Add(toTarget.Mul(step / dist))
	}
	p.face(target)

	p.distance = p.position.Sub(target).Len()
	report := PursuitReport{Distance: p.distance}
	if !p.caught && p.distance < p.tuning.CatchRadius {
		p.caught = true
		report.Caught = true
	}
	return report
}

// face points the billboard at target, keeping it upright.
func (p *Pursuer) face(target mgl64.Vec3) {
	p.billboard.Pos = p.position
	n := target.Sub(p.position)
	n[1] = 0
	if n.Len() > 1e-9 {
		p.billboard.Normal = n.Normalize()
	}
}

// Heading returns the yaw the entity faces, in the camera's convention.
func (p *Pursuer) Heading() float64 {
	n := p.billboard.Normal
	return math.Atan2(-n[0], -n[2])
}

// Despawn removes the entity from scene.
func (p *Pursuer) Despawn(scene *Scene) {
	if scene != nil && p.object != nil {
		scene.Remove(p.object.ID)
		p.object = nil
	}
}
