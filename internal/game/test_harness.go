package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// FrameDT is the fixed frame step used by headless runs.
const FrameDT = 1.0 / 60.0

// TestSim is a headless session harness used by tests and the report tool.
// It mirrors what a frontend's Update does but has no Ebiten dependency and
// supports deterministic seeding.
type TestSim struct {
	Session *Session
	Scene   *Scene
	Mixer   *RecordingMixer
	SimLog  *SimLog
	Tuning  Tuning
	Spawn   Spawn

	rng     *rand.Rand
	verbose bool
	events  []Event
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // seed, verbose, tuning
	simOptScene                      // obstacles and spawn points
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose enables per-frame verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithTuning lets a test adjust gameplay constants.
func WithTuning(fn func(*Tuning)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		fn(&ts.Tuning)
	}}
}

// WithRejectedAutoplay makes the mixer refuse Play until the first interaction.
func WithRejectedAutoplay() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Mixer.Reject = true
	}}
}

// WithScene replaces the empty default scene.
func WithScene(sc *Scene) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Scene = sc
	}}
}

// WithSpawn replaces the default spawn points, e.g. with a loaded level's.
func WithSpawn(sp Spawn) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Spawn = sp
	}}
}

// WithBox adds a collidable, shootable box between two corners.
func WithBox(min, max mgl64.Vec3) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		ts.Scene.Add(&SceneObject{
			Name:    fmt.Sprintf("box%d", len(ts.Scene.Objects())),
			Kind:    KindMesh,
			Shape:   NewBox(min, max),
			Caps:    CapCollidable | CapShootable,
			Visible: true,
		})
	}}
}

// WithPlayerAt places the player on the ground plane facing yaw.
func WithPlayerAt(x, z, yaw float64) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		ts.Spawn.Player = mgl64.Vec3{x, ts.Tuning.Movement.BaseHeight, z}
		ts.Spawn.PlayerYaw = yaw
	}}
}

// WithEntityAt sets where the entity appears once spawned.
func WithEntityAt(x, y, z float64) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		ts.Spawn.Entity = mgl64.Vec3{x, y, z}
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (seed, verbose, tuning, scene)
//  2. Scene contents and spawn points
//  3. Session
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Tuning: DefaultTuning(),
		Spawn:  DefaultSpawn(),
		Mixer:  NewRecordingMixer(),
		Scene:  NewScene(),
		rng:    rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptScene {
			o.fn(ts)
		}
	}
	ts.SimLog = NewSimLog(ts.verbose)
	ts.Session = NewSession(ts.Tuning, ts.Scene, ts.Spawn, ts.Mixer,
		WithRand(ts.rng), WithSessionLog(ts.SimLog))
	return ts
}

// Step advances one fixed frame with the given input.
func (ts *TestSim) Step(in Input) {
	ts.Session.Update(FrameDT, in)
	ts.drain()
}

// RunFrames advances n frames holding the same input.
func (ts *TestSim) RunFrames(n int, in Input) {
	for i := 0; i < n; i++ {
		ts.Step(in)
	}
}

// RunFor advances whole frames until at least d of session time has passed.
func (ts *TestSim) RunFor(d time.Duration, in Input) {
	end := ts.Session.Clock() + d
	for ts.Session.Clock() < end {
		ts.Step(in)
	}
}

// RunUntil advances up to maxFrames, stopping early if predicate returns
// true. Returns the frame count at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, in Input, maxFrames int) int {
	for i := 1; i <= maxFrames; i++ {
		ts.Step(in)
		if predicate(ts) {
			return i
		}
	}
	return -1
}

// Start runs the warning phase until loading completes and accepts it.
func (ts *TestSim) Start() error {
	ts.RunUntil(func(ts *TestSim) bool { return ts.Session.Snapshot().Loaded }, Input{}, 600)
	return ts.Accept()
}

// Accept calls Session.Accept and collects the events it emitted.
func (ts *TestSim) Accept() error {
	err := ts.Session.Accept()
	ts.drain()
	return err
}

// Continue calls Session.Continue and collects the events it emitted.
func (ts *TestSim) Continue() error {
	err := ts.Session.Continue()
	ts.drain()
	return err
}

func (ts *TestSim) drain() {
	ts.events = append(ts.events, ts.Session.DrainEvents()...)
}

// StartAndSpawn accepts the warning and runs until the entity is in the scene.
func (ts *TestSim) StartAndSpawn() error {
	if err := ts.Start(); err != nil {
		return err
	}
	ts.RunUntil(func(ts *TestSim) bool { return ts.Session.Snapshot().EntitySpawned }, Input{}, 600)
	return nil
}

// Events returns every event seen so far.
func (ts *TestSim) Events() []Event {
	return ts.events
}

// CountEvents returns how many events of kind were seen.
func (ts *TestSim) CountEvents(kind EventKind) int {
	n := 0
	for _, e := range ts.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Snapshot returns the session snapshot.
func (ts *TestSim) Snapshot() Snapshot {
	return ts.Session.Snapshot()
}
