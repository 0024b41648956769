package client

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Night-Chase/internal/controls"
	"github.com/Garsondee/Night-Chase/internal/game"
)

// handleInput reads keyboard and mouse for this tick.
func (g *Game) handleInput() game.Input {
	var in game.Input
	phase := g.session.Phase()

	pressed := inpututil.AppendJustPressedKeys(g.keyBuf[:0])
	g.keyBuf = pressed
	if len(pressed) > 0 {
		g.session.Interaction()
	}
	for _, k := range pressed {
		if k == ebiten.KeyF3 {
			g.showFeed = !g.showFeed
		}
	}
	if phase == game.PhaseSignup {
		g.handleFormKeys()
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && g.form.ShowLinks() {
			g.copyLinkAt(ebiten.CursorPosition())
		}
		return in
	}

	for _, k := range pressed {
		if a, ok := controls.ActionForKey(k.String()); ok {
			g.keys.Press(a)
		}
		switch k {
		case ebiten.KeyEnter:
			switch phase {
			case game.PhaseWarning:
				g.accept()
			case game.PhaseCaught:
				g.proceed()
			}
		case ebiten.KeyEscape:
			g.releaseCursor()
		}
	}
	for _, k := range inpututil.AppendJustReleasedKeys(g.keyBuf[:0]) {
		if a, ok := controls.ActionForKey(k.String()); ok {
			g.keys.Release(a)
		}
	}
	if !ebiten.IsFocused() {
		g.keys.Reset()
		g.releaseCursor()
	}
	// The browser drops pointer lock on its own when Escape is pressed.
	if g.captured && ebiten.CursorMode() != ebiten.CursorModeCaptured {
		g.captured = false
	}
	in.Move = g.keys.Intent()

	if g.detector.Mobile() {
		return in
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.session.Interaction()
		x, y := ebiten.CursorPosition()
		switch phase {
		case game.PhaseWarning:
			if g.snap.Loaded && inRect(warningButton(g.width, g.height), x, y) {
				g.accept()
			}
		case game.PhasePlaying:
			if g.captured {
				in.Fire++
			} else {
				g.captureCursor()
			}
		case game.PhaseCaught:
			g.proceed()
		}
	}
	if g.captured {
		x, y := ebiten.CursorPosition()
		if g.cursorOK {
			in.LookYaw, in.LookPitch = controls.MouseLook(float64(x-g.cursorX), float64(y-g.cursorY),
				g.cfg.Game.Session.MouseSensitivity)
		}
		g.cursorX, g.cursorY, g.cursorOK = x, y, true
	}
	return in
}

// handleTouches routes new, moved and lifted touches.
func (g *Game) handleTouches() game.Input {
	phase := g.session.Phase()
	for _, id := range inpututil.AppendJustPressedTouchIDs(g.touchBuf[:0]) {
		g.detector.ObserveTouch()
		g.session.Interaction()
		x, y := ebiten.TouchPosition(id)
		switch phase {
		case game.PhaseWarning:
			if g.snap.Loaded && inRect(warningButton(g.width, g.height), x, y) {
				g.accept()
			}
		case game.PhasePlaying:
			g.router.Begin(int(id), float64(x), float64(y))
		case game.PhaseCaught:
			g.proceed()
		case game.PhaseSignup:
			if g.form.ShowLinks() {
				g.copyLinkAt(x, y)
			}
		}
	}
	g.touchBuf = ebiten.AppendTouchIDs(g.touchBuf[:0])
	for _, id := range g.touchBuf {
		x, y := ebiten.TouchPosition(id)
		g.router.Move(int(id), float64(x), float64(y))
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(g.touchBuf[:0]) {
		g.router.End(int(id))
	}
	if phase != game.PhasePlaying {
		return game.Input{}
	}
	return g.router.Input()
}

// handleFormKeys drives the signup prompt.
func (g *Game) handleFormKeys() {
	g.form.Type(ebiten.AppendInputChars(nil)...)

	mod := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if mod && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.form.Paste(readClipboard())
	}
	if d := inpututil.KeyPressDuration(ebiten.KeyBackspace); d == 1 || (d > 30 && d%3 == 0) {
		g.form.Backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		g.form.Submit(g.ctx)
	}
}

func inRect(r rect, x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}
