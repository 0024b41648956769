package client

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Night-Chase/internal/signup"
)

type rect struct {
	x, y, w, h int
}

const (
	dialogWidth  = 450
	dialogHeight = 250
)

var (
	colDialog   = color.RGBA{R: 192, G: 192, B: 192, A: 255}
	colTitleBar = color.RGBA{R: 0, G: 0, B: 170, A: 255}
	colShadow   = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	colBar      = color.RGBA{R: 49, G: 106, B: 197, A: 255}
	colTerminal = color.RGBA{R: 60, G: 255, B: 90, A: 255}
	colDim      = color.RGBA{R: 40, G: 140, B: 60, A: 255}
	colError    = color.RGBA{R: 255, G: 80, B: 70, A: 255}
	colPending  = color.RGBA{R: 240, G: 210, B: 90, A: 255}
)

func warningDialog(w, h int) rect {
	dw := min(dialogWidth, w-20)
	return rect{x: (w - dw) / 2, y: (h - dialogHeight) / 2, w: dw, h: dialogHeight}
}

func warningButton(w, h int) rect {
	d := warningDialog(w, h)
	return rect{x: d.x + d.w/2 - 40, y: d.y + d.h - 44, w: 80, h: 26}
}

func fillRect(dst *ebiten.Image, r rect, c color.Color) {
	vector.FillRect(dst, float32(r.x), float32(r.y), float32(r.w), float32(r.h), c, false)
}

// drawWarning is the start dialog with its loading bar. OK only works once
// loading has finished.
func (g *Game) drawWarning(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, float32(g.width), float32(g.height), color.RGBA{A: 216}, false)

	d := warningDialog(g.width, g.height)
	fillRect(screen, rect{d.x + 2, d.y + 2, d.w, d.h}, colShadow)
	fillRect(screen, d, colDialog)
	fillRect(screen, rect{d.x + 2, d.y + 2, d.w - 4, 20}, colTitleBar)
	g.drawText(screen, g.cfg.Window.Title, float64(d.x+8), float64(d.y+5), 1, color.White, text.AlignStart)

	cx := float64(d.x + d.w/2)
	g.drawText(screen, "This is just a waitlist site", cx, float64(d.y+40), 1, color.Black, text.AlignCenter)
	g.drawText(screen, "and not the actual gameplay.", cx, float64(d.y+56), 1, color.Black, text.AlignCenter)

	barX := d.x + 24
	barW := d.w - 48
	g.drawText(screen, g.snap.LoadingText, float64(barX), float64(d.y+100), 1, color.Black, text.AlignStart)
	bar := rect{barX, d.y + 118, barW, 20}
	fillRect(screen, bar, color.White)
	vector.StrokeRect(screen, float32(bar.x), float32(bar.y), float32(bar.w), float32(bar.h), 2, colShadow, false)
	filled := int(float64(barW-4) * math.Min(g.snap.LoadingProgress, 100) / 100)
	fillRect(screen, rect{bar.x + 2, bar.y + 2, filled, bar.h - 4}, colBar)
	g.drawText(screen, fmt.Sprintf("%d%%", int(math.Round(g.snap.LoadingProgress))),
		float64(bar.x+bar.w), float64(bar.y+24), 1, colShadow, text.AlignEnd)

	b := warningButton(g.width, g.height)
	fillRect(screen, b, colDialog)
	vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 2, colShadow, false)
	label := color.Color(color.Black)
	if !g.snap.Loaded {
		label = colShadow
	}
	g.drawText(screen, "OK", float64(b.x+b.w/2), float64(b.y+7), 1, label, text.AlignCenter)
}

// drawDeath is the caught screen: black, then the entity's face, then the
// join prompt.
func (g *Game) drawDeath(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if !g.snap.Revealed {
		return
	}
	cx, cy := float32(g.width)/2, float32(g.height)/2
	r := float32(min(g.width, g.height)) * 0.3
	vector.FillCircle(screen, cx, cy, r, color.RGBA{R: 22, G: 16, B: 18, A: 255}, true)
	vector.FillCircle(screen, cx, cy+r*0.1, r*0.92, color.RGBA{R: 34, G: 24, B: 26, A: 255}, true)
	for _, side := range []float32{-1, 1} {
		ex := cx + side*r*0.35
		vector.FillCircle(screen, ex, cy-r*0.15, r*0.14, color.RGBA{R: 90, G: 0, B: 0, A: 255}, true)
		vector.FillCircle(screen, ex, cy-r*0.15, r*0.07, color.RGBA{R: 255, G: 40, B: 20, A: 255}, true)
	}
	vector.FillRect(screen, cx-r*0.4, cy+r*0.35, r*0.8, r*0.12, color.RGBA{R: 8, G: 4, B: 4, A: 255}, false)

	if g.snap.ContinueReady {
		a := uint8(120 + 135*pulse(g.snap.Clock.Seconds(), 1.5))
		msg := "click anywhere to join"
		if g.detector.Mobile() {
			msg = "tap anywhere to join"
		}
		g.drawText(screen, msg, float64(cx), float64(g.height)-60, 2, color.RGBA{R: 255, G: 255, B: 255, A: a}, text.AlignCenter)
	}
}

type link struct {
	label, url string
	area       rect
}

func (g *Game) signupScale() float64 {
	if g.width >= 760 {
		return 2
	}
	return 1
}

func (g *Game) signupLinks() []link {
	s := g.signupScale()
	x := int(40 * s / 2)
	lh := int(13 * s)
	y := int(300 * s / 2)
	items := []struct{ label, url string }{
		{"Twitter: ", g.cfg.Signup.Twitter},
		{"Discord: ", g.cfg.Signup.Discord},
	}
	out := make([]link, len(items))
	for i, it := range items {
		w := int(float64(7*len(it.label+it.url)) * s)
		out[i] = link{label: it.label, url: it.url, area: rect{x, y + (i+1)*lh*2, w, lh}}
	}
	return out
}

// drawSignup is the terminal-style waitlist prompt.
func (g *Game) drawSignup(screen *ebiten.Image) {
	screen.Fill(color.Black)
	s := g.signupScale()
	x := 40 * s / 2
	lh := 13 * s
	g.drawText(screen, "NIGHT CHASE", x, 50*s/2, s*2, colTerminal, text.AlignStart)

	y := 140 * s / 2
	g.drawText(screen, "Enter your Discord Username to join the waitlist", x, y, s, colTerminal, text.AlignStart)
	y += lh * 1.5

	line := "> " + g.form.Username()
	if g.form.Username() == "" && !g.form.Disabled() {
		g.drawText(screen, "> ", x, y, s, colTerminal, text.AlignStart)
		g.drawText(screen, "  your_discord_username", x, y, s, colDim, text.AlignStart)
	} else {
		g.drawText(screen, line, x, y, s, colTerminal, text.AlignStart)
	}
	if !g.form.Disabled() && pulse(g.snap.Clock.Seconds(), 1) > 0.5 {
		cw := 7 * s * float64(len([]rune(line)))
		vector.FillRect(screen, float32(x+cw), float32(y), float32(7*s), float32(lh), colTerminal, false)
	}
	y += lh * 1.5

	if status, kind := g.form.Status(); status != "" {
		c := colPending
		switch kind {
		case signup.StatusOK:
			c = colTerminal
		case signup.StatusFailed:
			c = colError
		}
		g.drawText(screen, status, x, y, s, c, text.AlignStart)
	}

	if !g.form.ShowLinks() {
		return
	}
	links := g.signupLinks()
	g.drawText(screen, "Welcome to the waitlist! Join our community:", x, float64(links[0].area.y)-lh*2, s, colTerminal, text.AlignStart)
	for _, l := range links {
		g.drawText(screen, l.label+l.url, float64(l.area.x), float64(l.area.y), s, colTerminal, text.AlignStart)
	}
	last := links[len(links)-1].area
	g.drawText(screen, "You'll receive updates via Discord. Keep an eye on your DMs!",
		x, float64(last.y)+lh*2, s*0.75, colDim, text.AlignStart)
	g.drawText(screen, "click a link to copy it", x, float64(last.y)+lh*3.5, s*0.75, colDim, text.AlignStart)
}

// copyLinkAt copies the community link under (x, y) to the clipboard.
func (g *Game) copyLinkAt(x, y int) {
	for _, l := range g.signupLinks() {
		if inRect(l.area, x, y) {
			writeClipboard(l.url)
			return
		}
	}
}
