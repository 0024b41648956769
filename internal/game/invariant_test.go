package game

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Invariant helpers ---

// randomInput mashes keys the way an impatient player might.
func randomInput(rng *rand.Rand) Input {
	in := Input{
		Move: MoveIntent{
			Forward:  rng.Intn(2) == 0,
			Backward: rng.Intn(5) == 0,
			Left:     rng.Intn(3) == 0,
			Right:    rng.Intn(3) == 0,
		},
		LookYaw:   (rng.Float64() - 0.5) * 0.2,
		LookPitch: (rng.Float64() - 0.5) * 0.05,
	}
	if rng.Intn(20) == 0 {
		in.Fire = 1 + rng.Intn(2)
	}
	return in
}

// runRandom drives a started session with random input for n frames,
// calling check after every frame.
func runRandom(t *testing.T, ts *TestSim, seed int64, n int, check func(frame int)) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- test input
	for i := 0; i < n; i++ {
		ts.Step(randomInput(rng))
		if check != nil {
			check(i)
		}
	}
}

// checkPhasesForward verifies the phase only ever advances.
func checkPhasesForward(t *testing.T, ts *TestSim) {
	t.Helper()
	last := -1.0
	for _, e := range ts.SimLog.Filter("phase", "transition") {
		if e.NumVal <= last {
			t.Errorf("phase went backwards at %v: %s", e.At, e.Value)
		}
		last = e.NumVal
	}
}

// checkVolumesBounded verifies every volume the director set stays within
// the configured range for its layer.
func checkVolumesBounded(t *testing.T, ts *TestSim) {
	t.Helper()
	a := ts.Tuning.Audio
	lo := math.Min(a.MinVolume, a.AmbientStartVolume)
	hi := math.Max(a.MaxVolume, a.AmbientStartVolume)
	for _, c := range ts.Mixer.Calls {
		if c.Op != "volume" {
			continue
		}
		switch c.Track {
		case TrackAmbient:
			if c.Volume < lo-1e-9 || c.Volume > hi+1e-9 {
				t.Errorf("ambient volume %.3f outside [%.3f, %.3f]", c.Volume, lo, hi)
			}
		case TrackBreathing:
			if c.Volume < 0 || c.Volume > a.BreathVolume+1e-9 {
				t.Errorf("breathing volume %.3f outside [0, %.3f]", c.Volume, a.BreathVolume)
			}
		case TrackDeath:
			if c.Volume != a.DeathVolume {
				t.Errorf("death volume %.3f, want %.3f", c.Volume, a.DeathVolume)
			}
		}
	}
}

// checkCaughtOnce verifies the catch fired at most once.
func checkCaughtOnce(t *testing.T, ts *TestSim) {
	t.Helper()
	if n := ts.SimLog.CountCategory("pursuit", "caught"); n > 1 {
		t.Errorf("caught logged %d times", n)
	}
	if n := ts.CountEvents(EventCaught); n > 1 {
		t.Errorf("caught emitted %d times", n)
	}
}

// --- Invariant tests ---

func TestInvariant_RandomPlayStaysConsistent(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		ts := NewTestSim(WithSeed(seed))
		if err := ts.Start(); err != nil {
			t.Fatal(err)
		}
		runRandom(t, ts, seed, 1800, func(int) {
			snap := ts.Snapshot()
			if snap.Hits > snap.Shots {
				t.Fatalf("seed %d: hits %d exceed shots %d", seed, snap.Hits, snap.Shots)
			}
			if math.Abs(snap.Camera.Pitch) > math.Pi/2+1e-9 {
				t.Fatalf("seed %d: pitch %.3f past vertical", seed, snap.Camera.Pitch)
			}
		})
		checkPhasesForward(t, ts)
		checkVolumesBounded(t, ts)
		checkCaughtOnce(t, ts)
	}
}

func TestInvariant_PlayerNeverEntersWalls(t *testing.T) {
	walls := [][2]mgl64.Vec3{
		{{-6, 0, -3}, {6, 3, -2}},
		{{-6, 0, 2}, {6, 3, 3}},
		{{-7, 0, -3}, {-6, 3, 3}},
		{{6, 0, -3}, {7, 3, 3}},
	}
	opts := []SimOption{
		WithSeed(3),
		WithTuning(func(tu *Tuning) { tu.Pursuit.SpawnDelay = 1e12 }),
	}
	for _, w := range walls {
		opts = append(opts, WithBox(w[0], w[1]))
	}
	ts := NewTestSim(opts...)
	if err := ts.Start(); err != nil {
		t.Fatal(err)
	}
	runRandom(t, ts, 3, 3000, func(frame int) {
		p := ts.Session.Camera().Position
		for _, o := range ts.Scene.Objects() {
			b, ok := o.Shape.(*Box)
			if ok && o.Caps.Has(CapCollidable) && b.Contains(p) {
				t.Fatalf("frame %d: player at %v inside %s", frame, p, o.Name)
			}
		}
	})
	if ts.SimLog.CountCategory("move", "blocked") == 0 {
		t.Error("random walk in a closed room never hit a wall")
	}
}

func TestInvariant_EffectsNeverOutliveLifetime(t *testing.T) {
	ts := NewTestSim(WithSeed(5), WithBox(mgl64.Vec3{-5, 0, -8}, mgl64.Vec3{5, 4, -7}))
	if err := ts.StartAndSpawn(); err != nil {
		t.Fatal(err)
	}
	fx := ts.Tuning.Effects
	longest := fx.BloodTick * time.Duration(fx.BloodSteps)
	if fx.HoleLifetime > longest {
		longest = fx.HoleLifetime
	}
	frame := time.Second / 60
	runRandom(t, ts, 5, 1200, func(i int) {
		now := ts.Session.Clock()
		for _, e := range ts.Snapshot().Effects {
			if age := now - e.Created; age > longest+frame {
				t.Fatalf("frame %d: %s effect %s alive after %v", i, e.Kind, e.ID, age)
			}
		}
	})
	spawned := ts.SimLog.CountCategory("effect", "spawned")
	expired := ts.SimLog.CountCategory("effect", "expired")
	if live := len(ts.Snapshot().Effects); spawned-expired != live {
		t.Errorf("spawned %d - expired %d != live %d", spawned, expired, live)
	}
}
