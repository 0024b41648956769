package client

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Night-Chase/internal/game"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 40
	feedLineHeight = 14
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	At      time.Duration
	Kind    game.EventKind
	Message string
}

// EventFeed is a ring buffer of session events shown on the debug overlay.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{entries: make([]FeedEntry, feedMaxEntries)}
}

// Add appends a session event, overwriting the oldest once full.
func (f *EventFeed) Add(e game.Event) {
	f.entries[f.head] = FeedEntry{At: e.At, Kind: e.Kind, Message: describe(e)}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries oldest first.
func (f *EventFeed) Recent() []FeedEntry {
	out := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		out[i] = f.entries[(f.head-f.count+i+feedMaxEntries)%feedMaxEntries]
	}
	return out
}

func describe(e game.Event) string {
	switch e.Kind {
	case game.EventPhaseChanged:
		return "phase " + e.Phase.String()
	case game.EventLoadingProgress:
		return fmt.Sprintf("loading %.0f%%", e.Progress)
	case game.EventShot, game.EventHit:
		if e.Kind == game.EventShot {
			return "shot"
		}
		return fmt.Sprintf("hit %s at %.1fm", e.Hit.Kind, e.Hit.Distance)
	case game.EventEffectSpawned, game.EventEffectExpired:
		return fmt.Sprintf("%s %s", e.Kind, e.Effect.Kind)
	case game.EventCaught:
		return fmt.Sprintf("caught at %.2fm", e.Distance)
	default:
		return e.Kind.String()
	}
}

func feedColor(k game.EventKind) color.RGBA {
	switch k {
	case game.EventCaught, game.EventHit:
		return color.RGBA{R: 210, G: 60, B: 50, A: 255}
	case game.EventPhaseChanged:
		return color.RGBA{R: 230, G: 200, B: 80, A: 255}
	case game.EventShot:
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	default:
		return color.RGBA{R: 90, G: 140, B: 200, A: 255}
	}
}

// Draw renders the feed as a panel on the right edge.
func (f *EventFeed) Draw(screen *ebiten.Image, snap game.Snapshot) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	x := float32(w - feedPanelWidth)
	vector.FillRect(screen, x, 0, feedPanelWidth, float32(h), color.RGBA{R: 8, G: 8, B: 10, A: 200}, false)
	vector.StrokeLine(screen, x, 0, x, float32(h), 1, color.RGBA{R: 60, G: 60, B: 70, A: 255}, false)

	header := fmt.Sprintf("EVENTS %6.2fs  %s", snap.Clock.Seconds(), snap.Phase)
	ebitenutil.DebugPrintAt(screen, header, int(x)+8, 2)
	status := fmt.Sprintf("dist %5.1f  shots %d  hits %d  fx %d",
		snap.EntityDistance, snap.Shots, snap.Hits, len(snap.Effects))
	if !snap.EntitySpawned {
		status = fmt.Sprintf("dist  --   shots %d  hits %d  fx %d", snap.Shots, snap.Hits, len(snap.Effects))
	}
	ebitenutil.DebugPrintAt(screen, status, int(x)+8, 16)
	ebitenutil.DebugPrintAt(screen, "audio "+snap.Audio.String(), int(x)+8, 30)
	vector.StrokeLine(screen, x, 46, float32(w), 46, 1, color.RGBA{R: 60, G: 60, B: 70, A: 200}, false)

	entries := f.Recent()
	maxVisible := (h - 52) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	y := 50
	for _, e := range entries {
		vector.FillRect(screen, x+5, float32(y+4), 3, 6, feedColor(e.Kind), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%6.2f %s", e.At.Seconds(), e.Message), int(x)+12, y)
		y += feedLineHeight
	}
}
