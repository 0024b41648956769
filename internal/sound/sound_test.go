package sound

import (
	"bytes"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/Garsondee/Night-Chase/internal/game"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func peak(samples [][2]float64) float64 {
	p := 0.0
	for _, s := range samples {
		p = math.Max(p, math.Max(math.Abs(s[0]), math.Abs(s[1])))
	}
	return p
}

func TestOscillator_LengthAndRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	rng := rand.New(rand.NewSource(1))
	for _, w := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		got := drain(NewOscillator(440, 100*time.Millisecond, w, rate, rng))
		if len(got) != rate.N(100*time.Millisecond) {
			t.Errorf("wave %d: %d samples, want %d", w, len(got), rate.N(100*time.Millisecond))
		}
		if p := peak(got); p > 1 || p == 0 {
			t.Errorf("wave %d: peak %.3f", w, p)
		}
	}
}

func TestEnvelope_StartsAndEndsQuiet(t *testing.T) {
	rate := beep.SampleRate(8000)
	d := 200 * time.Millisecond
	got := drain(NewEnvelope(NewOscillator(0, d, WaveSquare, rate, nil), d, 50*time.Millisecond, 50*time.Millisecond, rate))
	if got[0][0] != 0 {
		t.Errorf("first sample %.3f, want 0", got[0][0])
	}
	if last := got[len(got)-1][0]; math.Abs(last) > 0.05 {
		t.Errorf("last sample %.3f, want near 0", last)
	}
	if mid := got[len(got)/2][0]; math.Abs(mid) != 1 {
		t.Errorf("sustain sample %.3f, want full scale", mid)
	}
}

func TestBank_RendersEveryLayer(t *testing.T) {
	b := NewBank(beep.SampleRate(8000), 7)
	for _, tr := range []game.Track{game.TrackAmbient, game.TrackBreathing, game.TrackDeath} {
		if b.Len(tr) == 0 {
			t.Fatalf("%s is empty", tr)
		}
		pcm := b.PCM(tr)
		if len(pcm) != b.Len(tr)*b.Format().Width() {
			t.Errorf("%s: %d bytes for %d samples", tr, len(pcm), b.Len(tr))
		}
		if p := peak(drain(b.Streamer(tr))); p == 0 {
			t.Errorf("%s is silent", tr)
		}
	}
	if len(b.ShotPCM()) == 0 {
		t.Fatal("shot is empty")
	}
	if !Loops(game.TrackAmbient) || !Loops(game.TrackBreathing) || Loops(game.TrackDeath) {
		t.Error("only ambient and breathing loop")
	}
}

func TestBank_SeedIsReproducible(t *testing.T) {
	a := NewBank(beep.SampleRate(8000), 3)
	b := NewBank(beep.SampleRate(8000), 3)
	if !bytes.Equal(a.ShotPCM(), b.ShotPCM()) {
		t.Fatal("same seed rendered different shots")
	}
	if !bytes.Equal(a.PCM(game.TrackAmbient), a.PCM(game.TrackAmbient)) {
		t.Fatal("cached PCM changed")
	}
}

func TestBake_ClampsOverdrive(t *testing.T) {
	f := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	loud := newVolume(NewOscillator(0, 10*time.Millisecond, WaveSquare, 8000, nil), 4)
	pcm := Bake(loud, f)
	if len(pcm) != 80*4 {
		t.Fatalf("len = %d", len(pcm))
	}
	first := int16(uint16(pcm[0]) | uint16(pcm[1])<<8)
	if first < 32000 {
		t.Fatalf("overdriven sample encoded as %d", first)
	}
}
