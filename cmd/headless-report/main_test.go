package main

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Garsondee/Night-Chase/internal/game"
	"github.com/Garsondee/Night-Chase/internal/level"
)

func TestTurnTakesShortestWay(t *testing.T) {
	cases := []struct {
		cur, want, expect float64
	}{
		{0, math.Pi / 2, math.Pi / 2},
		{0, -math.Pi / 2, -math.Pi / 2},
		{0.1, 2*math.Pi - 0.1, -0.2},
		{-3, 3, 6 - 2*math.Pi},
	}
	for _, c := range cases {
		if got := turn(c.cur, c.want); math.Abs(got-c.expect) > 1e-9 {
			t.Errorf("turn(%.2f, %.2f) = %.4f, want %.4f", c.cur, c.want, got, c.expect)
		}
	}
}

func TestYawTowardMatchesCameraForward(t *testing.T) {
	p := mgl64.Vec3{1, 1.6, 1}
	for _, q := range []mgl64.Vec3{{1, 0, -5}, {-4, 0, 1}, {3, 0, 6}, {6, 2, -2}} {
		cam := game.Camera{Position: p, Yaw: yawToward(p, q)}
		want := q.Sub(p)
		want[1] = 0
		if got := cam.HorizontalForward(); got.Sub(want.Normalize()).Len() > 1e-9 {
			t.Errorf("facing %v from %v: forward %v, want %v", q, p, got, want.Normalize())
		}
	}
}

func TestStrategiesIdleBeforeSpawn(t *testing.T) {
	snap := game.Snapshot{Phase: game.PhasePlaying}
	for name, s := range strategies {
		in := s(snap, 0)
		if in.Fire != 0 || in.LookYaw != 0 {
			t.Errorf("%s fires or turns with no entity: %+v", name, in)
		}
	}
}

func TestStandIsCaught(t *testing.T) {
	rs := runChase(1, 7, level.Default(), stand, 60*time.Second, 0)
	if !rs.caught {
		t.Fatalf("standing player survived 60s (closest=%.2f)", rs.closestDist)
	}
	if rs.catchTime <= rs.spawnTime {
		t.Errorf("caught at %v before spawning at %v", rs.catchTime, rs.spawnTime)
	}
	if rs.catchDist >= game.DefaultTuning().Pursuit.CatchRadius {
		t.Errorf("catch distance %.2f outside catch radius", rs.catchDist)
	}
	if rs.shots == 0 {
		t.Error("stand strategy should shoot while tracking")
	}
	if rs.hits+rs.misses > rs.shots {
		t.Errorf("hits %d + misses %d exceed shots %d", rs.hits, rs.misses, rs.shots)
	}
}

func TestRunsAreReproducible(t *testing.T) {
	a := runChase(1, 11, level.Default(), strafe, 20*time.Second, 0)
	b := runChase(1, 11, level.Default(), strafe, 20*time.Second, 0)
	if a != b {
		t.Errorf("same seed gave different runs:\n%+v\n%+v", a, b)
	}
}

func TestDumpIncludesTheCatch(t *testing.T) {
	rs := runChase(1, 7, level.Default(), stand, 60*time.Second, 2*time.Second)
	if !rs.caught {
		t.Fatal("standing player survived 60s")
	}
	lines := strings.Split(strings.TrimSpace(rs.tail), "\n")
	if len(lines) < 2 {
		t.Fatalf("dump too short:\n%s", rs.tail)
	}
	found := false
	for _, l := range lines {
		found = found || (strings.Contains(l, "pursuit") && strings.Contains(l, "caught"))
	}
	if !found {
		t.Errorf("dump is missing the catch:\n%s", rs.tail)
	}

	quiet := runChase(1, 7, level.Default(), stand, 60*time.Second, 0)
	if quiet.tail != "" {
		t.Errorf("no dump requested but got:\n%s", quiet.tail)
	}
}

func TestRangeString(t *testing.T) {
	if got := rangeString(nil); got != "n/a" {
		t.Errorf("empty range = %q", got)
	}
	if got := rangeString([]float64{3, 1, 2}); got != "min=1.00s avg=2.00s max=3.00s" {
		t.Errorf("rangeString = %q", got)
	}
}
