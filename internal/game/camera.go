package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WorldUp is the +Y axis.
var WorldUp = mgl64.Vec3{0, 1, 0}

// Camera is the first-person viewpoint. Yaw 0 looks down -Z; positive yaw
// turns left; positive pitch looks up.
type Camera struct {
	Position mgl64.Vec3
	Yaw      float64
	Pitch    float64
}

// Forward is the unit look direction.
func (c *Camera) Forward() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	return mgl64.Vec3{-math.Sin(c.Yaw) * cp, math.Sin(c.Pitch), -math.Cos(c.Yaw) * cp}
}

// HorizontalForward is Forward with the vertical component removed and renormalised.
func (c *Camera) HorizontalForward() mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(c.Yaw), 0, -math.Cos(c.Yaw)}
}

// Right is HorizontalForward x WorldUp.
func (c *Camera) Right() mgl64.Vec3 {
	return c.HorizontalForward().Cross(WorldUp).Normalize()
}

// Up is the camera-local up axis.
func (c *Camera) Up() mgl64.Vec3 {
	return c.Right().Cross(c.Forward()).Normalize()
}

// Look applies yaw/pitch deltas in radians. Pitch is clamped to straight up/down.
func (c *Camera) Look(dYaw, dPitch float64) {
	c.Yaw = math.Mod(c.Yaw+dYaw, 2*math.Pi)
	c.Pitch = mgl64.Clamp(c.Pitch+dPitch, -math.Pi/2, math.Pi/2)
}

// LookAt turns the camera toward target.
func (c *Camera) LookAt(target mgl64.Vec3) {
	d := target.Sub(c.Position)
	h := math.Hypot(d[0], d[2])
	if h < 1e-12 && math.Abs(d[1]) < 1e-12 {
		return
	}
	c.Yaw = math.Atan2(-d[0], -d[2])
	c.Pitch = math.Atan2(d[1], h)
}

// ToView transforms a world point into camera space: +X right, +Y up, +Z forward.
func (c *Camera) ToView(p mgl64.Vec3) mgl64.Vec3 {
	rel := p.Sub(c.Position)
	return mgl64.Vec3{rel.Dot(c.Right()), rel.Dot(c.Up()), rel.Dot(c.Forward())}
}
