package main

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Garsondee/Night-Chase/internal/config"
	"github.com/Garsondee/Night-Chase/internal/game"
	"github.com/Garsondee/Night-Chase/internal/level"
	"github.com/Garsondee/Night-Chase/internal/signup"
)

// gridScreen is a minimal tcell.Screen that keeps the drawn runes.
type gridScreen struct {
	tcell.Screen
	width, height int
	cells         map[[2]int]rune
}

func newGridScreen(w, h int) *gridScreen {
	return &gridScreen{width: w, height: h, cells: map[[2]int]rune{}}
}

func (g *gridScreen) Size() (int, int)    { return g.width, g.height }
func (g *gridScreen) Clear()              { g.cells = map[[2]int]rune{} }
func (g *gridScreen) Show()               {}
func (g *gridScreen) Sync()               {}
func (g *gridScreen) ShowCursor(x, y int) {}
func (g *gridScreen) HideCursor()         {}
func (g *gridScreen) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	g.cells[[2]int{x, y}] = r
}

func (g *gridScreen) row(y int) string {
	var sb strings.Builder
	for x := 0; x < g.width; x++ {
		r, ok := g.cells[[2]int{x, y}]
		if !ok {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (g *gridScreen) contains(s string) bool {
	for y := 0; y < g.height; y++ {
		if strings.Contains(g.row(y), s) {
			return true
		}
	}
	return false
}

type nopSubmitter struct{}

func (nopSubmitter) Submit(ctx context.Context, name string) (signup.Entry, error) {
	return signup.Entry{}, nil
}

func newTestTermGame(t *testing.T) (*termGame, *gridScreen) {
	t.Helper()
	cfg := config.Default()
	scene, spawn := level.Default().Build()
	session := game.NewSession(cfg.Game, scene, spawn, game.NewRecordingMixer())
	t.Cleanup(session.Close)

	screen := newGridScreen(80, 24)
	tg := newTermGame(screen, session, cfg, nopSubmitter{})
	clock := time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)
	tg.now = func() time.Time { return clock }
	return tg, screen
}

func planar(v mgl64.Vec3) float64 {
	return math.Hypot(v[0], v[2])
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func stepUntilLoaded(t *testing.T, tg *termGame) {
	t.Helper()
	for i := 0; i < 200 && !tg.session.Snapshot().Loaded; i++ {
		tg.step(0.1)
	}
	if !tg.session.Snapshot().Loaded {
		t.Fatal("loading never finished")
	}
}

func TestEnterAcceptsOnlyOnceLoaded(t *testing.T) {
	tg, screen := newTestTermGame(t)

	tg.handleEvent(key(tcell.KeyEnter, 0))
	if got := tg.session.Phase(); got != game.PhaseWarning {
		t.Fatalf("phase before load = %s, want warning", got)
	}
	tg.draw()
	if !screen.contains("[ loading ]") {
		t.Error("warning dialog should show the loading button")
	}

	stepUntilLoaded(t, tg)
	tg.draw()
	if !screen.contains("Enter: OK") {
		t.Error("warning dialog should offer OK once loaded")
	}
	tg.handleEvent(key(tcell.KeyEnter, 0))
	if got := tg.session.Phase(); got != game.PhasePlaying {
		t.Fatalf("phase after accept = %s, want playing", got)
	}
}

func TestHeldKeyMovesPlayer(t *testing.T) {
	tg, _ := newTestTermGame(t)
	stepUntilLoaded(t, tg)
	tg.handleEvent(key(tcell.KeyEnter, 0))

	start := tg.session.Camera().Position
	tg.handleEvent(key(tcell.KeyRune, 'w'))
	for i := 0; i < 5; i++ {
		tg.step(1.0 / 60)
	}
	moved := planar(tg.session.Camera().Position.Sub(start))
	if moved < 0.05 {
		t.Errorf("player moved %.3f, want forward motion while w is held", moved)
	}

	// The hold window lapses without a repeat.
	tg.now = func() time.Time { return time.Date(2025, time.March, 7, 12, 0, 1, 0, time.UTC) }
	tg.step(1.0 / 60)
	before := tg.session.Camera().Position
	tg.step(1.0 / 60)
	if d := planar(tg.session.Camera().Position.Sub(before)); d > 1e-9 {
		t.Errorf("player still moving %.4f after the hold window", d)
	}
}

func TestTurnAndFireKeys(t *testing.T) {
	tg, screen := newTestTermGame(t)
	stepUntilLoaded(t, tg)
	tg.handleEvent(key(tcell.KeyEnter, 0))

	yaw := tg.session.Camera().Yaw
	tg.handleEvent(key(tcell.KeyRune, 'q'))
	tg.handleEvent(key(tcell.KeyRune, ' '))
	tg.step(1.0 / 60)
	if got := tg.session.Camera().Yaw - yaw; got < turnStep*0.99 {
		t.Errorf("yaw changed by %.3f, want %.3f", got, turnStep)
	}
	if snap := tg.session.Snapshot(); snap.Shots != 1 {
		t.Errorf("shots = %d, want 1", snap.Shots)
	}

	tg.draw()
	if !screen.contains("shots=1") {
		t.Errorf("status line missing shot count: %q", screen.row(0))
	}
}

func TestEscapeQuits(t *testing.T) {
	tg, _ := newTestTermGame(t)
	if tg.handleEvent(key(tcell.KeyEscape, 0)) {
		t.Error("escape should quit")
	}
	if !tg.handleEvent(key(tcell.KeyRune, 'x')) {
		t.Error("other keys should not quit")
	}
}

func TestFacingArrowFollowsYaw(t *testing.T) {
	tg, screen := newTestTermGame(t)
	stepUntilLoaded(t, tg)
	tg.handleEvent(key(tcell.KeyEnter, 0))
	tg.draw()
	if got := screen.cells[[2]int{40, 12}]; got != '↑' {
		t.Errorf("player glyph at yaw 0 = %q, want ↑", got)
	}
}

func TestFacingTurnsLeft(t *testing.T) {
	tg, screen := newTestTermGame(t)
	stepUntilLoaded(t, tg)
	tg.handleEvent(key(tcell.KeyEnter, 0))
	tg.yaw = math.Pi / 2
	tg.step(1.0 / 60)
	tg.draw()
	if got := screen.cells[[2]int{40, 12}]; got != '←' {
		t.Errorf("player glyph at yaw pi/2 = %q, want ←", got)
	}
}
