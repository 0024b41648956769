package controls

import (
	"math"
	"testing"
	"time"

	"github.com/Garsondee/Night-Chase/internal/game"
)

func TestActionForKey(t *testing.T) {
	cases := map[string]Action{
		"w": ActionForward, "W": ActionForward, "up": ActionForward,
		"s": ActionBackward, "Down": ActionBackward,
		"a": ActionLeft, "ArrowLeft": ActionLeft,
		"d": ActionRight, "right": ActionRight,
	}
	for key, want := range cases {
		got, ok := ActionForKey(key)
		if !ok || got != want {
			t.Errorf("ActionForKey(%q) = %s, %v", key, got, ok)
		}
	}
	if _, ok := ActionForKey("q"); ok {
		t.Error("q should not be bound")
	}
}

func TestKeyState_PressRelease(t *testing.T) {
	var ks KeyState
	ks.Press(ActionForward)
	ks.Press(ActionLeft)
	if got := ks.Intent(); got != (game.MoveIntent{Forward: true, Left: true}) {
		t.Fatalf("intent = %+v", got)
	}
	ks.Release(ActionForward)
	if got := ks.Intent(); got != (game.MoveIntent{Left: true}) {
		t.Fatalf("intent after release = %+v", got)
	}
	ks.Reset()
	if ks.Intent().Any() {
		t.Fatal("reset should release everything")
	}
}

func TestHoldTracker_ExpiresAfterHold(t *testing.T) {
	ht := NewHoldTracker(DefaultHold)
	t0 := time.Unix(1000, 0)
	ht.Press(ActionRight, t0)
	if !ht.Intent(t0.Add(100 * time.Millisecond)).Right {
		t.Fatal("key should still be held inside the window")
	}
	if ht.Intent(t0.Add(DefaultHold)).Right {
		t.Fatal("key should be released once the window passes")
	}
	ht.Press(ActionRight, t0.Add(140*time.Millisecond))
	if !ht.Intent(t0.Add(200 * time.Millisecond)).Right {
		t.Fatal("auto-repeat should extend the hold")
	}
	if ht.Intent(t0).Forward {
		t.Fatal("never-pressed action reported as held")
	}
}

func TestMouseLook_Directions(t *testing.T) {
	yaw, pitch := MouseLook(10, -5, 0.002)
	if yaw >= 0 || pitch <= 0 {
		t.Fatalf("right/up motion gave yaw=%.4f pitch=%.4f", yaw, pitch)
	}
	if math.Abs(yaw+0.02) > 1e-12 || math.Abs(pitch-0.01) > 1e-12 {
		t.Fatalf("yaw=%.4f pitch=%.4f", yaw, pitch)
	}
}

func TestJoystickSizes(t *testing.T) {
	cases := []struct {
		w, h      float64
		max, knob float64
	}{
		{800, 600, 36, 21.6},
		{1920, 1080, 50, 30},
		{320, 640, 25, 18},
	}
	for _, tc := range cases {
		m, k := JoystickSizes(tc.w, tc.h)
		if math.Abs(m-tc.max) > 1e-9 || math.Abs(k-tc.knob) > 1e-9 {
			t.Errorf("JoystickSizes(%v,%v) = %.2f,%.2f want %.2f,%.2f", tc.w, tc.h, m, k, tc.max, tc.knob)
		}
	}
}

func TestJoystick_DeadZoneClampAndInvertedY(t *testing.T) {
	j := NewJoystick(800, 600)
	if !j.Begin(1, 100, 300) {
		t.Fatal("begin failed")
	}
	if j.Begin(2, 120, 300) {
		t.Fatal("second touch must not steal the stick")
	}

	j.Move(1, 100+36*0.1, 300)
	if x, y := j.Vector(); x != 0 || y != 0 {
		t.Fatalf("inside dead zone: %.3f,%.3f", x, y)
	}

	j.Move(1, 100, 300-72)
	if x, y := j.Vector(); math.Abs(x) > 1e-12 || math.Abs(y-1) > 1e-12 {
		t.Fatalf("pulled up past the rim: %.3f,%.3f", x, y)
	}
	if kx, ky := j.Knob(); math.Abs(kx) > 1e-12 || math.Abs(ky+36) > 1e-9 {
		t.Fatalf("knob should sit on the rim: %.2f,%.2f", kx, ky)
	}

	j.Move(1, 118, 300)
	want := 0.5 * (0.5 - DeadZone) / (1 - DeadZone)
	if x, _ := j.Vector(); math.Abs(x-want) > 1e-12 {
		t.Fatalf("half deflection: x=%.5f want %.5f", x, want)
	}

	j.Move(2, 0, 0)
	if x, _ := j.Vector(); math.Abs(x-want) > 1e-12 {
		t.Fatal("foreign touch moved the stick")
	}

	j.End(1)
	if x, y := j.Vector(); x != 0 || y != 0 || j.Active() {
		t.Fatal("release should centre the stick")
	}
}

func TestFireGeometry(t *testing.T) {
	cx, cy, r := FireButton(800, 600)
	if cx != 715 || cy != 515 || r != 45 {
		t.Fatalf("fire button = %.0f,%.0f r=%.0f", cx, cy, r)
	}
	if !InFireButton(715, 515, 800, 600) || InFireButton(665, 465, 800, 600) {
		t.Fatal("circle test wrong")
	}
	if !InFireExclusion(665, 465, 800, 600) || InFireExclusion(650, 465, 800, 600) {
		t.Fatal("exclusion rect wrong")
	}
}

func TestTouchRouter_Arbitration(t *testing.T) {
	tr := NewTouchRouter(800, 600, 0.007, 0.1)
	cases := []struct {
		id   int
		x, y float64
		want Target
	}{
		{1, 715, 515, TargetFire},
		{2, 100, 300, TargetJoystick},
		{3, 150, 300, TargetNone}, // joystick already owned
		{4, 600, 200, TargetLook},
		{5, 665, 465, TargetNone}, // in the exclusion square, off the button
		{6, 700, 100, TargetNone}, // look already owned
	}
	for _, tc := range cases {
		if got := tr.Begin(tc.id, tc.x, tc.y); got != tc.want {
			t.Errorf("touch %d at (%.0f,%.0f) -> %s, want %s", tc.id, tc.x, tc.y, got, tc.want)
		}
	}
	if !tr.FirePressed() {
		t.Error("fire should read as pressed")
	}

	tr.Move(2, 100, 200)
	tr.Move(4, 610, 190)
	in := tr.Input()
	if in.Fire != 1 || !in.Move.Forward || in.Move.Backward {
		t.Fatalf("input = %+v", in)
	}
	if math.Abs(in.LookYaw+0.07) > 1e-12 || math.Abs(in.LookPitch-0.07) > 1e-12 {
		t.Fatalf("look = %.4f,%.4f", in.LookYaw, in.LookPitch)
	}
	if again := tr.Input(); again.Fire != 0 || again.LookYaw != 0 {
		t.Fatal("shots and look deltas must drain once")
	}

	tr.End(1)
	tr.End(2)
	if tr.FirePressed() || tr.Joystick.Active() {
		t.Fatal("release did not free the controls")
	}
	tr.Move(3, 150, 100)
	if tr.Joystick.Active() {
		t.Fatal("a touch routed nowhere must not pick up the joystick later")
	}
	if got := tr.Begin(7, 120, 300); got != TargetJoystick {
		t.Fatalf("new touch after release -> %s", got)
	}

	tr.Reset()
	if tr.Look.Active() || tr.Joystick.Active() || tr.Owner(7) != TargetNone {
		t.Fatal("reset should drop every touch")
	}
}

func TestMerge(t *testing.T) {
	a := game.Input{Move: game.MoveIntent{Forward: true}, LookYaw: 0.1, Fire: 1}
	b := game.Input{Move: game.MoveIntent{Left: true}, LookYaw: 0.2, LookPitch: -0.1, Fire: 2}
	got := Merge(a, b)
	if !got.Move.Forward || !got.Move.Left || got.Fire != 3 || math.Abs(got.LookYaw-0.3) > 1e-12 || got.LookPitch != -0.1 {
		t.Fatalf("merge = %+v", got)
	}
}
