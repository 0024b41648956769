package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// HitKind classifies the nearest valid surface under the crosshair.
type HitKind int

const (
	HitEnvironment HitKind = iota
	HitEntity
)

func (k HitKind) String() string {
	switch k {
	case HitEntity:
		return "entity"
	case HitEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

// HitEvent is the result of one trigger pull that struck something.
type HitEvent struct {
	Kind     HitKind
	Point    mgl64.Vec3
	Normal   mgl64.Vec3 // meaningful for environment hits
	Origin   mgl64.Vec3 // camera position at fire time
	ObjectID int
	Distance float64
}

// shootable filters out the weapon's own model and anything that cannot
// take a hit. Lights, cameras and invisible nodes never reach the filter.
func shootable(o *SceneObject) bool {
	if o.Caps.Has(CapWeapon) {
		return false
	}
	return o.Caps.Has(CapEntity) || o.Caps.Has(CapShootable)
}

// WeaponPose is the camera-local transform of the visible gun model.
type WeaponPose struct {
	Offset mgl64.Vec3 // +X right, +Y up, +Z forward
	Pitch  float64
	Roll   float64
}

// Weapon performs hit detection and drives the cosmetic recoil and sway.
// Firing is never gated: no ammo, no cooldown, animation state is ignored.
type Weapon struct {
	tuning WeaponTuning
	rng    *rand.Rand

	recoiling bool
	recoilT   float64 // seconds into the current recoil
	roll      float64
	swayT     float64

	shots int
	hits  int
}

// NewWeapon creates a weapon. rng drives the cosmetic roll jitter only.
func NewWeapon(t WeaponTuning, rng *rand.Rand) *Weapon {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- cosmetic only
	}
	return &Weapon{tuning: t, rng: rng}
}

// Shots returns the number of trigger pulls.
func (w *Weapon) Shots() int { return w.shots }

// Hits returns the number of pulls that produced a HitEvent.
func (w *Weapon) Hits() int { return w.hits }

// Recoiling reports whether the cosmetic recoil is playing.
func (w *Weapon) Recoiling() bool { return w.recoiling }

// Fire casts a ray along the camera's forward axis and classifies the nearest
// valid intersection. It always restarts the recoil animation.
func (w *Weapon) Fire(cam *Camera, scene *Scene) (HitEvent, bool) {
	w.shots++
	w.recoiling = true
	w.recoilT = 0
	w.roll = (w.rng.Float64() - 0.5) * w.tuning.RecoilRoll

	if scene == nil {
		return HitEvent{}, false
	}
	hit, ok := scene.Nearest(cam.Position, cam.Forward(), w.tuning.Range, shootable)
	if !ok {
		return HitEvent{}, false
	}
	w.hits++
	ev := HitEvent{
		Kind:     HitEnvironment,
		Point:    hit.Point,
		Normal:   hit.Normal,
		Origin:   cam.Position,
		ObjectID: hit.Object.ID,
		Distance: hit.Distance,
	}
	if hit.Object.Caps.Has(CapEntity) {
		ev.Kind = HitEntity
	}
	return ev, true
}

// Update advances the recoil and sway timers by dt seconds.
func (w *Weapon) Update(dt float64) {
	w.swayT += dt
	if !w.recoiling {
		return
	}
	w.recoilT += dt
	if w.recoilT >= w.tuning.RecoilDuration.Seconds() {
		w.recoiling = false
		w.recoilT = 0
	}
}

// recoilCurve is the eased sine profile, 0 at both ends of the animation.
func recoilCurve(progress float64) float64 {
	p := mgl64.Clamp(progress, 0, 1)
	eased := 1 - math.Pow(1-p, 3)
	return math.Sin(eased * math.Pi)
}

// Pose returns the gun's current camera-local transform.
func (w *Weapon) Pose() WeaponPose {
	t := w.tuning
	sway := math.Sin(w.swayT*t.SwayRate) * t.SwayAmplitude
	pose := WeaponPose{
		Offset: mgl64.Vec3{0.3, -(0.2 + sway), 0.5},
		Pitch:  0.1,
	}
	if !w.recoiling {
		return pose
	}
	k := recoilCurve(w.recoilT / t.RecoilDuration.Seconds())
	pose.Offset[2] -= k * t.RecoilBack
	pose.Offset[1] += k * t.RecoilUp
	pose.Pitch -= k * t.RecoilPitch
	pose.Roll = w.roll
	return pose
}
