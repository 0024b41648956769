package game

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// EffectKind distinguishes decal types.
type EffectKind int

const (
	EffectBlood EffectKind = iota
	EffectBulletHole
)

func (k EffectKind) String() string {
	switch k {
	case EffectBlood:
		return "blood"
	case EffectBulletHole:
		return "hole"
	default:
		return "unknown"
	}
}

// Effect is a transient decal. Each one owns a single expiry task.
type Effect struct {
	ID       uuid.UUID
	Kind     EffectKind
	Position mgl64.Vec3
	Normal   mgl64.Vec3 // holes only
	Origin   mgl64.Vec3 // holes only: camera position the hole faces
	Size     float64
	Created  time.Duration
	Opacity  float64

	steps int
	task  *Task
}

// EffectsManager owns the active decal set.
type EffectsManager struct {
	tuning EffectsTuning
	sched  *Scheduler
	active []*Effect

	// OnExpire is called after an effect leaves the active set.
	OnExpire func(e Effect)

	spawned int
	removed int
}

// NewEffectsManager creates a manager whose timers run on sched.
func NewEffectsManager(t EffectsTuning, sched *Scheduler) *EffectsManager {
	return &EffectsManager{tuning: t, sched: sched}
}

// Spawn creates the decal matching a hit: blood for the entity, a bullet hole
// nudged off the surface for everything else.
func (em *EffectsManager) Spawn(hit HitEvent) Effect {
	e := &Effect{
		ID:      uuid.New(),
		Created: em.sched.Now(),
		Opacity: 1,
	}
	switch hit.Kind {
	case HitEntity:
		e.Kind = EffectBlood
		e.Position = hit.Point
		e.Size = em.tuning.BloodSize
		e.task = em.sched.Every(em.tuning.BloodTick, func() bool {
			e.steps++
			e.Opacity = 1 - float64(e.steps)/float64(em.tuning.BloodSteps)
			if e.steps >= em.tuning.BloodSteps {
				e.Opacity = 0
				em.remove(e.ID)
				return false
			}
			return true
		})
	default:
		e.Kind = EffectBulletHole
		e.Position = hit.Point.Add(hit.Normal.Mul(em.tuning.SurfaceOffset))
		e.Normal = hit.Normal
		e.Origin = hit.Origin
		e.Size = em.tuning.HoleSize
		e.task = em.sched.After(em.tuning.HoleLifetime, func() {
			em.remove(e.ID)
		})
	}
	em.active = append(em.active, e)
	em.spawned++
	return *e
}

// remove filters the effect out by id. Unknown ids are ignored, so a second
// removal is a no-op.
func (em *EffectsManager) remove(id uuid.UUID) {
	var gone *Effect
	kept := em.active[:0]
	for _, e := range em.active {
		if e.ID == id {
			gone = e
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(em.active); i++ {
		em.active[i] = nil
	}
	em.active = kept
	if gone == nil {
		return
	}
	gone.task.Cancel()
	em.removed++
	if em.OnExpire != nil {
		em.OnExpire(*gone)
	}
}

// Active returns copies of the live effects, oldest first.
func (em *EffectsManager) Active() []Effect {
	out := make([]Effect, len(em.active))
	for i, e := range em.active {
		out[i] = *e
	}
	return out
}

// Len returns the number of live effects.
func (em *EffectsManager) Len() int {
	return len(em.active)
}

// Counts returns lifetime spawn and removal totals.
func (em *EffectsManager) Counts() (spawned, removed int) {
	return em.spawned, em.removed
}

// Clear cancels every expiry timer and empties the set without firing OnExpire.
func (em *EffectsManager) Clear() {
	for _, e := range em.active {
		e.task.Cancel()
	}
	em.active = em.active[:0]
}
