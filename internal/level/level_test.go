package level

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Garsondee/Night-Chase/internal/game"
)

func TestDefault_BuildsPlayableScene(t *testing.T) {
	l := Default()
	sc, spawn := l.Build()
	if len(sc.Objects()) != len(l.Boxes)+len(l.Lights) {
		t.Fatalf("objects = %d", len(sc.Objects()))
	}
	if spawn.Entity != (mgl64.Vec3{10, 1.5, 10}) {
		t.Fatalf("entity spawn = %v", spawn.Entity)
	}

	// A shot straight down from the spawn lands on the floor.
	cam := game.Camera{Position: mgl64.Vec3{0, 1.6, 0}, Pitch: -math.Pi / 2}
	hit, ok := sc.Nearest(cam.Position, cam.Forward(), 100, nil)
	if !ok || hit.Object.Name != "floor" {
		t.Fatalf("expected floor hit, got %+v", hit)
	}
}

func TestBuild_CapabilityDefaultsAndOverrides(t *testing.T) {
	l := Default()
	sc, _ := l.Build()
	byName := map[string]*game.SceneObject{}
	for _, o := range sc.Objects() {
		byName[o.Name] = o
	}
	floor := byName["floor"]
	if floor.Caps.Has(game.CapCollidable) || !floor.Caps.Has(game.CapShootable) {
		t.Errorf("floor caps = %v", floor.Caps)
	}
	wall := byName["wall-north"]
	if !wall.Caps.Has(game.CapCollidable | game.CapShootable) {
		t.Errorf("wall caps = %v", wall.Caps)
	}
	if lamp := byName["panel-a"]; lamp.Kind != game.KindLight {
		t.Errorf("light kind = %v", lamp.Kind)
	}
}

func TestDefault_SessionCanWalkIntoWall(t *testing.T) {
	sc, spawn := Default().Build()
	s := game.NewSession(game.DefaultTuning(), sc, spawn, nil)
	defer s.Close()
	for i := 0; i < 60*4 && s.Accept() != nil; i++ {
		s.Update(game.FrameDT, game.Input{})
	}
	if s.Phase() != game.PhasePlaying {
		t.Fatal("session did not start")
	}
	// Face the north wall and walk for long enough to reach it.
	for i := 0; i < 60*5; i++ {
		s.Update(game.FrameDT, game.Input{Move: game.MoveIntent{Forward: true}})
	}
	if z := s.Camera().Position[2]; z < -20+0.3-1e-9 || z > -19 {
		t.Fatalf("player should stop at the north wall, z=%.3f", z)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"empty box", "boxes:\n  - name: flat\n    min: [0, 0, 0]\n    max: [1, 0, 1]\n"},
		{"bad colour", "boxes:\n  - name: c\n    min: [5, 0, 5]\n    max: [6, 1, 6]\n    color: \"#zzz\"\n"},
		{"duplicate name", "boxes:\n  - {name: a, min: [5, 0, 5], max: [6, 1, 6]}\n  - {name: a, min: [7, 0, 7], max: [8, 1, 8]}\n"},
		{"spawn in wall", "boxes:\n  - {name: w, min: [-1, 0, -1], max: [1, 3, 1]}\n"},
		{"not yaml", "boxes: [\n"},
		{"misspelled box key", "boxes:\n  - {name: a, min: [5, 0, 5], max: [6, 1, 6], colidable: false}\n"},
		{"unknown section", "spawns:\n  - [0, 0, 0]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestParse_YawInDegrees(t *testing.T) {
	l, err := Parse([]byte("player:\n  position: [1, 0, 2]\n  yaw: 90\n"))
	if err != nil {
		t.Fatal(err)
	}
	_, spawn := l.Build()
	if math.Abs(spawn.PlayerYaw-math.Pi/2) > 1e-12 {
		t.Fatalf("yaw = %.4f", spawn.PlayerYaw)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff8000", color.RGBA{255, 128, 0, 255}},
		{"#f80", color.RGBA{255, 136, 0, 255}},
		{"102030", color.RGBA{16, 32, 48, 255}},
		{"", color.RGBA{128, 128, 128, 255}},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseColor(%q) = %v, %v", tc.in, got, err)
		}
	}
	if _, err := ParseColor("#12345"); err == nil {
		t.Error("expected error for 5 hex digits")
	}
}
