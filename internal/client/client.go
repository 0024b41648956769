// Package client is the ebiten front end: it feeds window, mouse and touch
// input into a game.Session and draws its snapshots.
package client

import (
	"context"
	"errors"
	"image/color"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Night-Chase/internal/config"
	"github.com/Garsondee/Night-Chase/internal/controls"
	"github.com/Garsondee/Night-Chase/internal/device"
	"github.com/Garsondee/Night-Chase/internal/game"
	"github.com/Garsondee/Night-Chase/internal/level"
	"github.com/Garsondee/Night-Chase/internal/signup"
)

// Options wires a Game to its collaborators.
type Options struct {
	Config   config.Config
	Level    *level.Level
	Mixer    game.Mixer // nil plays nothing
	Signup   signup.Submitter
	Detector *device.Detector // nil probes the host
	Seed     int64
}

// Game implements ebiten.Game.
type Game struct {
	cfg     config.Config
	session *game.Session
	snap    game.Snapshot
	vp      Viewport
	width   int
	height  int

	detector *device.Detector
	router   *controls.TouchRouter
	keys     controls.KeyState
	keyBuf   []ebiten.Key
	touchBuf []ebiten.TouchID
	captured bool
	cursorX  int
	cursorY  int
	cursorOK bool
	flash    int // frames of muzzle flash left

	form     *signup.Form
	ctx      context.Context
	cancel   context.CancelFunc
	feed     *EventFeed
	showFeed bool

	white *ebiten.Image
	face  text.Face
	verts []ebiten.Vertex
	idx   []uint16
}

// New builds the level, starts a session and returns the game ready to run.
func New(opts Options) (*Game, error) {
	if opts.Level == nil {
		return nil, errors.New("client: no level")
	}
	if opts.Detector == nil {
		opts.Detector = device.NewDetector()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := opts.Config
	scene, spawn := opts.Level.Build()
	session := game.NewSession(cfg.Game, scene, spawn, opts.Mixer,
		game.WithRand(rand.New(rand.NewSource(seed))))

	white := ebiten.NewImage(4, 4)
	white.Fill(color.White)

	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		cfg:      cfg,
		session:  session,
		detector: opts.Detector,
		router: controls.NewTouchRouter(float64(cfg.Window.Width), float64(cfg.Window.Height),
			cfg.Game.Session.TouchSensitivity, cfg.Game.Movement.JoystickThreshold),
		form:   signup.NewForm(opts.Signup, cfg.Signup.LinksDelay),
		ctx:    ctx,
		cancel: cancel,
		feed:   NewEventFeed(),
		white:  white,
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
	g.resize(cfg.Window.Width, cfg.Window.Height)
	g.snap = session.Snapshot()
	return g, nil
}

// Session exposes the running session.
func (g *Game) Session() *game.Session { return g.session }

// Close ends the session and abandons any signup request.
func (g *Game) Close() {
	g.cancel()
	g.form.Close()
	g.session.Close()
}

func (g *Game) resize(w, h int) {
	g.width, g.height = w, h
	g.vp = Viewport{Width: w, Height: h, FOV: g.cfg.Window.FOVDegrees * math.Pi / 180}
	g.router.Resize(float64(w), float64(h))
	g.detector.SetWidth(w)
}

// Update advances the session by one tick.
func (g *Game) Update() error {
	in := g.handleInput()
	in = controls.Merge(in, g.handleTouches())

	g.session.Update(1/float64(ebiten.TPS()), in)
	for _, e := range g.session.DrainEvents() {
		g.feed.Add(e)
		g.onEvent(e)
	}
	if g.session.Phase() == game.PhaseSignup {
		g.form.Poll(time.Now())
	}
	if g.flash > 0 {
		g.flash--
	}
	g.snap = g.session.Snapshot()
	return nil
}

func (g *Game) onEvent(e game.Event) {
	switch e.Kind {
	case game.EventShot:
		g.flash = 3
	case game.EventPhaseChanged:
		if e.Phase != game.PhasePlaying {
			g.releaseCursor()
			g.router.Reset()
			g.keys.Reset()
		}
	}
}

func (g *Game) accept() {
	if err := g.session.Accept(); err != nil && !errors.Is(err, game.ErrLoading) {
		log.Printf("client: accept: %v", err)
	}
}

func (g *Game) proceed() {
	if err := g.session.Continue(); err != nil && !errors.Is(err, game.ErrContinueLocked) {
		log.Printf("client: continue: %v", err)
	}
}

func (g *Game) captureCursor() {
	if g.detector.Mobile() {
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	g.captured = true
	g.cursorOK = false
}

func (g *Game) releaseCursor() {
	if g.captured {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	g.captured = false
}

// Layout follows the window so the touch zones track the real viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		g.resize(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}
