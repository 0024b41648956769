package client

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Night-Chase/internal/controls"
	"github.com/Garsondee/Night-Chase/internal/game"
)

var (
	colVoid     = color.RGBA{R: 6, G: 5, B: 4, A: 255}
	colGunmetal = color.RGBA{R: 38, G: 38, B: 42, A: 255}
	colGrip     = color.RGBA{R: 24, G: 22, B: 20, A: 255}
	colFlash    = color.RGBA{R: 255, G: 210, B: 120, A: 230}
	colHUD      = color.RGBA{R: 235, G: 235, B: 220, A: 200}
)

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	switch g.snap.Phase {
	case game.PhaseWarning:
		g.drawWorld(screen)
		g.drawWarning(screen)
	case game.PhasePlaying:
		g.drawWorld(screen)
		g.drawWeapon(screen)
		g.drawCrosshair(screen)
		if g.detector.Mobile() {
			g.drawTouchControls(screen)
		} else if !g.captured {
			g.drawText(screen, "click to look around", float64(g.width)/2, float64(g.height)-40, 2, colHUD, text.AlignCenter)
		}
	case game.PhaseCaught:
		g.drawDeath(screen)
	case game.PhaseSignup:
		g.drawSignup(screen)
	}
	if g.showFeed {
		g.feed.Draw(screen, g.snap)
	}
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	screen.Fill(colVoid)
	g.fillPolygons(screen, buildFrame(g.snap, g.session.Scene().Objects(), g.vp))
}

// fillPolygons fans every convex polygon into triangles and draws them in
// order, so earlier (farther) polygons are overdrawn by nearer ones.
func (g *Game) fillPolygons(screen *ebiten.Image, polys []polygon) {
	g.verts, g.idx = g.verts[:0], g.idx[:0]
	flush := func() {
		if len(g.idx) == 0 {
			return
		}
		op := &ebiten.DrawTrianglesOptions{}
		op.Blend = ebiten.BlendSourceOver
		screen.DrawTriangles(g.verts, g.idx, g.white, op)
		g.verts, g.idx = g.verts[:0], g.idx[:0]
	}
	for _, p := range polys {
		if len(g.verts)+len(p.Points) >= 65000 {
			flush()
		}
		r := float32(p.Color.R) / 255
		gr := float32(p.Color.G) / 255
		b := float32(p.Color.B) / 255
		a := float32(p.Color.A) / 255
		base := uint16(len(g.verts))
		for _, pt := range p.Points {
			g.verts = append(g.verts, ebiten.Vertex{
				DstX: pt[0], DstY: pt[1], SrcX: 1, SrcY: 1,
				ColorR: r, ColorG: gr, ColorB: b, ColorA: a,
			})
		}
		for i := 1; i+1 < len(p.Points); i++ {
			g.idx = append(g.idx, base, base+uint16(i), base+uint16(i+1))
		}
	}
	flush()
}

func (g *Game) drawWeapon(screen *ebiten.Image) {
	grip, muzzle, width := weaponLine(g.snap.Weapon, g.vp)
	w := float32(width)
	// Stock: the back 40% of the barrel, drawn thicker.
	sx := grip[0] + (muzzle[0]-grip[0])*0.4
	sy := grip[1] + (muzzle[1]-grip[1])*0.4
	vector.StrokeLine(screen, float32(grip[0]), float32(grip[1]), float32(muzzle[0]), float32(muzzle[1]), w, colGunmetal, true)
	vector.StrokeLine(screen, float32(grip[0]), float32(grip[1]), float32(sx), float32(sy), w*1.8, colGrip, true)
	vector.StrokeLine(screen, float32(grip[0]), float32(grip[1]), float32(grip[0]+width*0.2), float32(grip[1]+width*2.2), w*1.2, colGrip, true)
	if g.flash > 0 {
		vector.FillCircle(screen, float32(muzzle[0]), float32(muzzle[1]), w*1.5, colFlash, true)
	}
}

func (g *Game) drawCrosshair(screen *ebiten.Image) {
	cx, cy := float32(g.width)/2, float32(g.height)/2
	vector.StrokeLine(screen, cx-8, cy, cx-3, cy, 2, colHUD, false)
	vector.StrokeLine(screen, cx+3, cy, cx+8, cy, 2, colHUD, false)
	vector.StrokeLine(screen, cx, cy-8, cx, cy-3, 2, colHUD, false)
	vector.StrokeLine(screen, cx, cy+3, cx, cy+8, 2, colHUD, false)
}

func (g *Game) drawTouchControls(screen *ebiten.Image) {
	js := g.router.Joystick
	if js.Active() {
		cx, cy := js.Center()
		kx, ky := js.Knob()
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(js.MaxDistance()), 3,
			color.RGBA{R: 255, G: 255, B: 255, A: 90}, true)
		vector.FillCircle(screen, float32(kx), float32(ky), float32(js.KnobSize()/2),
			color.RGBA{R: 255, G: 255, B: 255, A: 150}, true)
	}
	fx, fy, fr := controls.FireButton(float64(g.width), float64(g.height))
	fill := color.RGBA{R: 200, G: 40, B: 40, A: 120}
	if g.router.FirePressed() {
		fill.A = 220
	}
	vector.FillCircle(screen, float32(fx), float32(fy), float32(fr), fill, true)
	vector.StrokeCircle(screen, float32(fx), float32(fy), float32(fr), 2, color.RGBA{R: 255, G: 255, B: 255, A: 160}, true)
	g.drawText(screen, "FIRE", fx, fy-6, 1, color.White, text.AlignCenter)
}

// drawText draws basicfont text scaled by size, anchored at (x, y) top.
func (g *Game) drawText(dst *ebiten.Image, s string, x, y, size float64, c color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = align
	text.Draw(dst, s, g.face, op)
}

// pulse is a 0..1 wave used for blinking prompts.
func pulse(seconds, period float64) float64 {
	return 0.5 + 0.5*math.Sin(seconds*2*math.Pi/period)
}
