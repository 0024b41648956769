package game

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// maxFrameDelta caps a single update so a stalled tab cannot teleport the
// player through a wall.
const maxFrameDelta = 0.25

var (
	// ErrPhase is returned when an operation is not valid in the current phase.
	ErrPhase = errors.New("operation not valid in current phase")
	// ErrLoading is returned by Accept while the warning dialog is still loading.
	ErrLoading = errors.New("assets still loading")
	// ErrContinueLocked is returned by Continue before the reveal delay has passed.
	ErrContinueLocked = errors.New("continue not yet available")
)

// Phase is the top-level session state. Transitions only move forward.
type Phase int

const (
	PhaseWarning Phase = iota
	PhasePlaying
	PhaseCaught
	PhaseSignup
)

func (p Phase) String() string {
	switch p {
	case PhaseWarning:
		return "warning"
	case PhasePlaying:
		return "playing"
	case PhaseCaught:
		return "caught"
	case PhaseSignup:
		return "signup"
	default:
		return "unknown"
	}
}

// Spawn describes where a session starts.
type Spawn struct {
	Player    mgl64.Vec3
	PlayerYaw float64
	Entity    mgl64.Vec3
}

// DefaultSpawn puts the player at the origin at eye level, looking down -Z,
// with the entity behind-right.
func DefaultSpawn() Spawn {
	return Spawn{
		Player: mgl64.Vec3{0, 1.6, 0},
		Entity: mgl64.Vec3{10, 1.5, 10},
	}
}

// Input is everything the player did since the previous frame.
type Input struct {
	Move      MoveIntent
	LookYaw   float64 // radians, positive turns left
	LookPitch float64 // radians, positive looks up
	Fire      int     // trigger pulls this frame
}

// Session owns all mutable game state and is the only writer of it.
// All methods must be called from the frame loop goroutine.
type Session struct {
	tuning Tuning
	sched  *Scheduler
	rng    *rand.Rand
	log    *SimLog

	scene    *Scene
	spawn    Spawn
	camera   Camera
	movement *MovementController
	pursuer  *Pursuer
	weapon   *Weapon
	effects  *EffectsManager
	audio    *AudioDirector

	phase         Phase
	frame         int
	lastMove      MoveResult
	distance      float64
	loadProgress  float64
	loadText      string
	loaded        bool
	revealed      bool
	continueReady bool
	caughtAt      time.Duration
	closed        bool

	loadTasks []*Task
	events    []Event
}

// SessionOption customises a Session at construction.
type SessionOption func(*Session)

// WithRand sets the RNG used by the loading bar and recoil jitter.
func WithRand(rng *rand.Rand) SessionOption {
	return func(s *Session) { s.rng = rng }
}

// WithSessionLog replaces the session's structured log.
func WithSessionLog(sl *SimLog) SessionOption {
	return func(s *Session) { s.log = sl }
}

// NewSession builds a session in the Warning phase, starts the simulated
// asset load and makes a best-effort attempt to start the ambient loop.
func NewSession(t Tuning, scene *Scene, spawn Spawn, mixer Mixer, opts ...SessionOption) *Session {
	if scene == nil {
		scene = NewScene()
	}
	s := &Session{
		tuning:   t,
		sched:    NewScheduler(),
		scene:    scene,
		spawn:    spawn,
		distance: math.Inf(1),
		loadText: "Loading assets...",
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- game only
	}
	if s.log == nil {
		s.log = NewSimLog(false)
	}
	s.camera = Camera{Position: spawn.Player, Yaw: spawn.PlayerYaw}
	s.camera.Position[1] = t.Movement.BaseHeight
	s.movement = NewMovementController(t.Movement)
	s.weapon = NewWeapon(t.Weapon, s.rng)
	s.effects = NewEffectsManager(t.Effects, s.sched)
	s.effects.OnExpire = s.onEffectExpired
	s.audio = NewAudioDirector(t.Audio, mixer, s.sched, s.log)

	s.startLoading()
	s.audio.Start()
	return s
}

// startLoading simulates the asset loading bar shown by the warning dialog.
func (s *Session) startLoading() {
	st := s.tuning.Session
	var tick *Task
	tick = s.sched.Every(st.LoadTick, func() bool {
		s.loadProgress += s.rng.Float64() * st.LoadMaxStep
		if s.loadProgress >= 100 {
			s.loadProgress = 100
			s.loadText = "Loading complete!"
			s.emit(Event{Kind: EventLoadingProgress, Progress: 100})
			s.loadTasks = append(s.loadTasks, s.sched.After(st.LoadSettle, s.markLoaded))
			return false
		}
		s.emit(Event{Kind: EventLoadingProgress, Progress: s.loadProgress})
		return true
	})
	fallback := s.sched.After(st.LoadFallback, func() {
		tick.Cancel()
		s.loadProgress = 100
		s.loadText = "Ready to play!"
		s.markLoaded()
	})
	s.loadTasks = append(s.loadTasks, tick, fallback)
}

func (s *Session) markLoaded() {
	if s.loaded {
		return
	}
	s.loaded = true
	for _, t := range s.loadTasks {
		t.Cancel()
	}
	s.loadTasks = nil
	s.record("--", "phase", "loaded", s.loadText, s.loadProgress)
	s.emit(Event{Kind: EventLoaded, Progress: 100})
}

// Accept dismisses the warning dialog and starts play.
func (s *Session) Accept() error {
	if s.closed || s.phase != PhaseWarning {
		return fmt.Errorf("accept in %s: %w", s.phase, ErrPhase)
	}
	if !s.loaded {
		return ErrLoading
	}
	s.setPhase(PhasePlaying)
	s.audio.OnInteraction()
	s.audio.OnPlaying()
	s.sched.After(s.tuning.Pursuit.SpawnDelay, s.spawnEntity)
	return nil
}

func (s *Session) spawnEntity() {
	if s.phase != PhasePlaying || s.pursuer != nil {
		return
	}
	s.pursuer = NewPursuer(s.tuning.Pursuit, s.spawn.Entity, s.scene)
	s.record("entity", "pursuit", "spawned", fmtVec(s.spawn.Entity), 0)
	s.emit(Event{Kind: EventEntitySpawned})
}

// Interaction forwards a click, key or touch to the audio director so a
// blocked autoplay can be retried.
func (s *Session) Interaction() {
	if s.closed {
		return
	}
	s.audio.OnInteraction()
}

// Update advances the session by dt seconds. Within a frame the player moves
// before the entity reads the player position.
func (s *Session) Update(dt float64, in Input) {
	if s.closed {
		return
	}
	if dt < 0 {
		dt = 0
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	s.frame++

	if s.phase == PhasePlaying {
		s.camera.Look(in.LookYaw, in.LookPitch)
		before := s.camera.Position
		s.lastMove = s.movement.Update(&s.camera, in.Move, dt, s.scene)
		if s.lastMove.Blocked {
			s.record("player", "move", "blocked", fmtVec(s.lastMove.Applied), 0)
		}
		s.recordVerbose("player", "move", "position", fmtVec(s.camera.Position), s.camera.Position.Sub(before).Len())

		if s.pursuer != nil {
			rep := s.pursuer.Update(s.camera.Position, dt)
			s.distance = rep.Distance
			s.audio.UpdateDistance(rep.Distance)
			s.recordVerbose("entity", "pursuit", "distance", fmt.Sprintf("%.3f", rep.Distance), rep.Distance)
			if rep.Caught {
				s.enterCaught(rep.Distance)
			}
		}

		for i := 0; i < in.Fire && s.phase == PhasePlaying; i++ {
			s.Fire()
		}
	}

	s.weapon.Update(dt)
	s.sched.Advance(time.Duration(dt * float64(time.Second)))
}

// Fire pulls the trigger once. It is never rate limited; it only requires
// the Playing phase.
func (s *Session) Fire() (HitEvent, bool) {
	if s.closed || s.phase != PhasePlaying {
		return HitEvent{}, false
	}
	s.audio.PlayShot(s.tuning.Weapon.ShotVolume)
	hit, ok := s.weapon.Fire(&s.camera, s.scene)
	s.emit(Event{Kind: EventShot})
	if !ok {
		s.record("weapon", "weapon", "miss", "no target", 0)
		return HitEvent{}, false
	}
	s.record("weapon", "weapon", "hit", hit.Kind.String(), hit.Distance)
	s.emit(Event{Kind: EventHit, Hit: hit})

	e := s.effects.Spawn(hit)
	s.record("--", "effect", "spawned", e.Kind.String(), float64(s.effects.Len()))
	s.emit(Event{Kind: EventEffectSpawned, Effect: e})
	return hit, true
}

func (s *Session) onEffectExpired(e Effect) {
	s.record("--", "effect", "expired", e.Kind.String(), (s.sched.Now() - e.Created).Seconds())
	s.emit(Event{Kind: EventEffectExpired, Effect: e})
}

// enterCaught is reachable only from the pursuit catch report.
func (s *Session) enterCaught(distance float64) {
	s.caughtAt = s.sched.Now()
	s.record("entity", "pursuit", "caught", fmt.Sprintf("distance=%.2f", distance), distance)
	s.setPhase(PhaseCaught)
	s.emit(Event{Kind: EventCaught, Distance: distance})
	s.audio.OnGameOver()

	st := s.tuning.Session
	s.sched.After(st.RevealDelay, func() {
		s.revealed = true
		s.record("--", "phase", "revealed", "", 0)
		s.emit(Event{Kind: EventRevealed})
	})
	s.sched.After(st.ContinueDelay, func() {
		s.continueReady = true
		s.record("--", "phase", "continue_enabled", "", 0)
		s.emit(Event{Kind: EventContinueEnabled})
	})
}

// Continue moves from the death screen to the signup surface once the
// continue affordance is showing.
func (s *Session) Continue() error {
	if s.closed || s.phase != PhaseCaught {
		return fmt.Errorf("continue in %s: %w", s.phase, ErrPhase)
	}
	if !s.continueReady {
		return ErrContinueLocked
	}
	s.setPhase(PhaseSignup)
	return nil
}

func (s *Session) setPhase(p Phase) {
	prev := s.phase
	s.phase = p
	log.Printf("session: phase %s -> %s at %s", prev, p, s.sched.Now())
	s.record("--", "phase", "transition", prev.String()+" -> "+p.String(), float64(p))
	s.emit(Event{Kind: EventPhaseChanged, Phase: p})
}

// Close tears the session down: every timer is cancelled, audio is silenced
// and effects are cleared. Further calls are no-ops.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.sched.CancelAll()
	s.audio.Teardown()
	s.effects.Clear()
	if s.pursuer != nil {
		s.pursuer.Despawn(s.scene)
	}
	s.record("--", "phase", "closed", s.phase.String(), 0)
}

// --- accessors ---

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Camera returns a copy of the camera.
func (s *Session) Camera() Camera { return s.camera }

// Scene returns the scene. Renderers read it; only the session mutates it.
func (s *Session) Scene() *Scene { return s.scene }

// Log returns the structured session log.
func (s *Session) Log() *SimLog { return s.log }

// Clock returns the session clock.
func (s *Session) Clock() time.Duration { return s.sched.Now() }

// Scheduler exposes the session's timers for inspection.
func (s *Session) Scheduler() *Scheduler { return s.sched }

// Closed reports whether Close has run.
func (s *Session) Closed() bool { return s.closed }

// DrainEvents returns and clears the events emitted since the last call.
func (s *Session) DrainEvents() []Event {
	out := s.events
	s.events = nil
	return out
}

func (s *Session) emit(e Event) {
	e.At = s.sched.Now()
	e.Phase = s.phase
	s.events = append(s.events, e)
}

func (s *Session) record(actor, category, key, value string, num float64) {
	s.log.Add(s.sched.Now(), actor, category, key, value, num)
}

func (s *Session) recordVerbose(actor, category, key, value string, num float64) {
	s.log.AddVerbose(s.sched.Now(), actor, category, key, value, num)
}

func fmtVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}
