package sound

import (
	"math/rand"

	"github.com/gopxl/beep"

	"github.com/Garsondee/Night-Chase/internal/game"
)

// SampleRate is the rate every sound is rendered at.
const SampleRate = beep.SampleRate(44100)

// Bank holds every sound rendered once into memory.
type Bank struct {
	format beep.Format
	tracks map[game.Track]*beep.Buffer
	shot   *beep.Buffer
	pcm    map[game.Track][]byte
	shotPC []byte
}

// NewBank renders all layers at rate. The seed fixes the noise so every
// run sounds the same.
func NewBank(rate beep.SampleRate, seed int64) *Bank {
	rng := rand.New(rand.NewSource(seed))
	b := &Bank{
		format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2},
		tracks: make(map[game.Track]*beep.Buffer),
		pcm:    make(map[game.Track][]byte),
	}
	render := func(s beep.Streamer) *beep.Buffer {
		buf := beep.NewBuffer(b.format)
		buf.Append(s)
		return buf
	}
	b.tracks[game.TrackAmbient] = render(Ambient(rate, rng))
	b.tracks[game.TrackBreathing] = render(Breathing(rate, rng))
	b.tracks[game.TrackDeath] = render(Death(rate, rng))
	b.shot = render(Shot(rate, rng))
	return b
}

// Format returns the sample format of the bank.
func (b *Bank) Format() beep.Format { return b.format }

// Loops reports whether t repeats until paused.
func Loops(t game.Track) bool {
	return t == game.TrackAmbient || t == game.TrackBreathing
}

// Streamer returns a fresh seekable reader over t.
func (b *Bank) Streamer(t game.Track) beep.StreamSeeker {
	buf := b.tracks[t]
	return buf.Streamer(0, buf.Len())
}

// ShotStreamer returns a fresh reader over the gunshot.
func (b *Bank) ShotStreamer() beep.StreamSeeker {
	return b.shot.Streamer(0, b.shot.Len())
}

// Len returns the length of t in samples.
func (b *Bank) Len(t game.Track) int {
	return b.tracks[t].Len()
}

// PCM returns t as 16-bit little-endian stereo, encoded on first use.
func (b *Bank) PCM(t game.Track) []byte {
	if p, ok := b.pcm[t]; ok {
		return p
	}
	p := Bake(b.Streamer(t), b.format)
	b.pcm[t] = p
	return p
}

// ShotPCM returns the gunshot as 16-bit little-endian stereo.
func (b *Bank) ShotPCM() []byte {
	if b.shotPC == nil {
		b.shotPC = Bake(b.ShotStreamer(), b.format)
	}
	return b.shotPC
}

// Bake drains s into signed PCM in format f.
func Bake(s beep.Streamer, f beep.Format) []byte {
	frame := f.Width()
	var out []byte
	buf := make([][2]float64, 512)
	tmp := make([]byte, frame)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			f.EncodeSigned(tmp, clampSample(buf[i]))
			out = append(out, tmp...)
		}
		if !ok || n < len(buf) {
			return out
		}
	}
}

func clampSample(s [2]float64) [2]float64 {
	for c := range s {
		s[c] = max(-1, min(1, s[c]))
	}
	return s
}
