package game

import "time"

// EventKind identifies what a session Event reports.
type EventKind int

const (
	EventPhaseChanged EventKind = iota
	EventLoadingProgress
	EventLoaded
	EventEntitySpawned
	EventShot
	EventHit
	EventEffectSpawned
	EventEffectExpired
	EventCaught
	EventRevealed
	EventContinueEnabled
)

func (k EventKind) String() string {
	switch k {
	case EventPhaseChanged:
		return "phase"
	case EventLoadingProgress:
		return "loading"
	case EventLoaded:
		return "loaded"
	case EventEntitySpawned:
		return "entity_spawned"
	case EventShot:
		return "shot"
	case EventHit:
		return "hit"
	case EventEffectSpawned:
		return "effect_spawned"
	case EventEffectExpired:
		return "effect_expired"
	case EventCaught:
		return "caught"
	case EventRevealed:
		return "revealed"
	case EventContinueEnabled:
		return "continue_enabled"
	default:
		return "unknown"
	}
}

// Event is a notification for frontends. Only the fields relevant to Kind
// are set; Phase is always the phase after the event.
type Event struct {
	Kind     EventKind
	At       time.Duration
	Phase    Phase
	Hit      HitEvent
	Effect   Effect
	Distance float64
	Progress float64
}
