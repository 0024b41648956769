package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Night-Chase/internal/config"
	"github.com/Garsondee/Night-Chase/internal/controls"
	"github.com/Garsondee/Night-Chase/internal/game"
	"github.com/Garsondee/Night-Chase/internal/signup"
)

const (
	cellWidth  = 0.5 // world units per column
	cellHeight = 1.0 // world units per row; terminal cells are about 2:1
	turnStep   = 0.08
)

var facing = []rune{'↑', '↖', '←', '↙', '↓', '↘', '→', '↗'}

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleEntity = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleBlood  = tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
	styleHole   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleTerm   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleError  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	stylePend   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// termGame drives a session from terminal key events and draws it top-down.
type termGame struct {
	screen  tcell.Screen
	session *game.Session
	cfg     config.Config
	hold    *controls.HoldTracker
	form    *signup.Form
	ctx     context.Context
	now     func() time.Time

	yaw  float64
	fire int
}

func newTermGame(screen tcell.Screen, session *game.Session, cfg config.Config, sub signup.Submitter) *termGame {
	return &termGame{
		screen:  screen,
		session: session,
		cfg:     cfg,
		hold:    controls.NewHoldTracker(controls.DefaultHold),
		form:    signup.NewForm(sub, cfg.Signup.LinksDelay),
		ctx:     context.Background(),
		now:     time.Now,
	}
}

// handleEvent applies one terminal event. It returns false to quit.
func (tg *termGame) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		tg.session.Interaction()
		if tg.session.Phase() == game.PhaseSignup {
			tg.formKey(ev)
			return true
		}
		tg.playKey(ev)
	case *tcell.EventResize:
		tg.screen.Sync()
	}
	return true
}

func (tg *termGame) playKey(ev *tcell.EventKey) {
	now := tg.now()
	switch ev.Key() {
	case tcell.KeyEnter:
		tg.advance()
		return
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight:
		if a, ok := controls.ActionForKey(tcell.KeyNames[ev.Key()]); ok {
			tg.hold.Press(a, now)
		}
		return
	case tcell.KeyRune:
	default:
		return
	}
	r := ev.Rune()
	switch r {
	case 'q', 'Q':
		tg.yaw += turnStep
	case 'e', 'E':
		tg.yaw -= turnStep
	case ' ':
		tg.fire++
	default:
		if a, ok := controls.ActionForKey(string(r)); ok {
			tg.hold.Press(a, now)
		}
	}
}

func (tg *termGame) advance() {
	var err error
	switch tg.session.Phase() {
	case game.PhaseWarning:
		err = tg.session.Accept()
	case game.PhaseCaught:
		err = tg.session.Continue()
	}
	if err != nil && !errors.Is(err, game.ErrLoading) && !errors.Is(err, game.ErrContinueLocked) {
		log.Printf("terminal: %v", err)
	}
}

func (tg *termGame) formKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		tg.form.Submit(tg.ctx)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		tg.form.Backspace()
	case tcell.KeyCtrlV:
		s, err := clipboard.ReadAll()
		if err != nil {
			log.Printf("terminal: clipboard: %v", err)
			return
		}
		tg.form.Paste(s)
	case tcell.KeyRune:
		tg.form.Type(ev.Rune())
	}
}

// step advances the session by dt seconds with the input gathered since
// the previous step.
func (tg *termGame) step(dt float64) {
	in := game.Input{
		Move:    tg.hold.Intent(tg.now()),
		LookYaw: tg.yaw,
		Fire:    tg.fire,
	}
	tg.yaw, tg.fire = 0, 0
	tg.session.Update(dt, in)
	tg.session.DrainEvents()
	if tg.session.Phase() == game.PhaseSignup {
		tg.form.Poll(tg.now())
	}
}

func (tg *termGame) text(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		tg.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

func (tg *termGame) centred(y int, s string, st tcell.Style) {
	w, _ := tg.screen.Size()
	tg.text((w-len([]rune(s)))/2, y, s, st)
}

func (tg *termGame) draw() {
	tg.screen.Clear()
	snap := tg.session.Snapshot()
	switch snap.Phase {
	case game.PhaseWarning:
		tg.drawMap(snap)
		tg.drawWarning(snap)
	case game.PhasePlaying:
		tg.drawMap(snap)
		tg.drawStatus(snap)
	case game.PhaseCaught:
		tg.drawDeath(snap)
	case game.PhaseSignup:
		tg.drawSignup()
	}
	tg.screen.Show()
}

// cell maps a world position to a screen cell around the player.
func (tg *termGame) cell(snap game.Snapshot, x, z float64) (col, row int) {
	w, h := tg.screen.Size()
	p := snap.Camera.Position
	return w/2 + int(math.Round((x-p[0])/cellWidth)), h/2 + int(math.Round((z-p[2])/cellHeight))
}

func (tg *termGame) drawMap(snap game.Snapshot) {
	w, h := tg.screen.Size()
	p := snap.Camera.Position
	objects := tg.session.Scene().Objects()
	for row := 1; row < h; row++ {
		for col := 0; col < w; col++ {
			x := p[0] + float64(col-w/2)*cellWidth
			z := p[2] + float64(row-h/2)*cellHeight
			for _, o := range objects {
				b, ok := o.Shape.(*game.Box)
				if !ok || o.Kind != game.KindMesh || !o.Caps.Has(game.CapCollidable) {
					continue
				}
				if x >= b.Min[0] && x <= b.Max[0] && z >= b.Min[2] && z <= b.Max[2] {
					c := tcell.NewRGBColor(int32(o.Color.R), int32(o.Color.G), int32(o.Color.B))
					tg.screen.SetContent(col, row, '█', nil, tcell.StyleDefault.Foreground(c))
					break
				}
			}
		}
	}
	for _, e := range snap.Effects {
		col, row := tg.cell(snap, e.Position[0], e.Position[2])
		if e.Kind == game.EffectBlood {
			tg.screen.SetContent(col, row, '*', nil, styleBlood)
		} else {
			tg.screen.SetContent(col, row, '·', nil, styleHole)
		}
	}
	if snap.EntitySpawned {
		col, row := tg.cell(snap, snap.EntityPos[0], snap.EntityPos[2])
		tg.screen.SetContent(col, row, 'Ö', nil, styleEntity)
	}
	idx := int(math.Round(snap.Camera.Yaw/(math.Pi/4))) % len(facing)
	if idx < 0 {
		idx += len(facing)
	}
	tg.screen.SetContent(w/2, h/2, facing[idx], nil, stylePlayer)
}

func (tg *termGame) drawStatus(snap game.Snapshot) {
	dist := "--"
	if snap.EntitySpawned {
		dist = fmt.Sprintf("%.1f", snap.EntityDistance)
	}
	tg.text(0, 0, fmt.Sprintf(" %s  t=%.1fs  entity=%s  shots=%d hits=%d  [WASD] move [Q/E] turn [Space] fire [Esc] quit",
		snap.Phase, snap.Clock.Seconds(), dist, snap.Shots, snap.Hits), styleHUD)
}

func (tg *termGame) drawWarning(snap game.Snapshot) {
	w, h := tg.screen.Size()
	y := h/2 - 3
	for row := y - 1; row <= y+6; row++ {
		for col := w/2 - 30; col < w/2+30; col++ {
			tg.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(tcell.ColorSilver))
		}
	}
	box := tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(tcell.ColorBlack)
	tg.centred(y, tg.cfg.Window.Title, box.Bold(true))
	tg.centred(y+1, "This is just a waitlist site and not the actual gameplay.", box)
	tg.centred(y+3, fmt.Sprintf("%-16s %3.0f%%", snap.LoadingText, snap.LoadingProgress), box)
	const barWidth = 40
	filled := int(barWidth * math.Min(snap.LoadingProgress, 100) / 100)
	bar := make([]rune, barWidth)
	for i := range bar {
		bar[i] = '░'
		if i < filled {
			bar[i] = '█'
		}
	}
	tg.centred(y+4, string(bar), box.Foreground(tcell.ColorNavy))
	if snap.Loaded {
		tg.centred(y+6, "[ Enter: OK ]", box.Bold(true))
	} else {
		tg.centred(y+6, "[ loading ]", box.Foreground(tcell.ColorGray))
	}
}

var faceArt = []string{
	"   .-''''''-.   ",
	"  /          \\  ",
	" |   @    @   | ",
	" |            | ",
	" |   ______   | ",
	"  \\          /  ",
	"   '-......-'   ",
}

func (tg *termGame) drawDeath(snap game.Snapshot) {
	_, h := tg.screen.Size()
	if !snap.Revealed {
		return
	}
	top := h/2 - len(faceArt)/2 - 1
	for i, line := range faceArt {
		tg.centred(top+i, line, styleEntity)
	}
	if snap.ContinueReady {
		tg.centred(top+len(faceArt)+2, "press Enter to join", styleHUD)
	}
}

func (tg *termGame) drawSignup() {
	y := 2
	tg.text(2, y, "N I G H T   C H A S E", styleTerm.Bold(true))
	y += 2
	tg.text(2, y, "Enter your Discord Username to join the waitlist", styleTerm)
	y++
	name := tg.form.Username()
	switch {
	case name == "" && !tg.form.Disabled():
		tg.text(2, y, "> ", styleTerm)
		tg.text(4, y, "your_discord_username", styleDim)
	default:
		tg.text(2, y, "> "+name, styleTerm)
	}
	if !tg.form.Disabled() {
		tg.screen.ShowCursor(4+len([]rune(name)), y)
	} else {
		tg.screen.HideCursor()
	}
	y += 2
	if status, kind := tg.form.Status(); status != "" {
		st := stylePend
		switch kind {
		case signup.StatusOK:
			st = styleTerm
		case signup.StatusFailed:
			st = styleError
		}
		tg.text(2, y, status, st)
	}
	if tg.form.ShowLinks() {
		y += 2
		tg.text(2, y, "Welcome to the waitlist! Join our community:", styleTerm)
		tg.text(2, y+1, "Twitter: "+tg.cfg.Signup.Twitter, styleTerm)
		tg.text(2, y+2, "Discord: "+tg.cfg.Signup.Discord, styleTerm)
		tg.text(2, y+4, "You'll receive updates via Discord. Keep an eye on your DMs!", styleDim)
	}
}
