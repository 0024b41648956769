package client

import (
	"testing"

	"github.com/Garsondee/Night-Chase/internal/config"
)

func TestWarningButtonSitsInsideDialog(t *testing.T) {
	for _, sz := range [][2]int{{1280, 720}, {360, 640}} {
		d := warningDialog(sz[0], sz[1])
		b := warningButton(sz[0], sz[1])
		if b.x < d.x || b.y < d.y || b.x+b.w > d.x+d.w || b.y+b.h > d.y+d.h {
			t.Errorf("%v: button %+v outside dialog %+v", sz, b, d)
		}
		if d.x < 0 || d.x+d.w > sz[0] {
			t.Errorf("%v: dialog %+v off screen", sz, d)
		}
		if !inRect(b, b.x+b.w/2, b.y+b.h/2) {
			t.Errorf("%v: button centre not inside button", sz)
		}
	}
}

func TestSignupLinksDoNotOverlap(t *testing.T) {
	for _, w := range []int{1280, 400} {
		g := &Game{width: w, cfg: config.Default()}
		links := g.signupLinks()
		if len(links) != 2 {
			t.Fatalf("got %d links", len(links))
		}
		a, b := links[0].area, links[1].area
		if a.y+a.h > b.y {
			t.Errorf("width %d: links overlap: %+v %+v", w, a, b)
		}
		if links[0].url != g.cfg.Signup.Twitter || links[1].url != g.cfg.Signup.Discord {
			t.Errorf("links not taken from config: %+v", links)
		}
	}
}
