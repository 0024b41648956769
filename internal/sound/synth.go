// Package sound synthesizes the game's audio layers with beep and hands
// them to a playback sink as either beep streamers or baked PCM.
package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length wave. Glide moves the frequency
// linearly toward endFreq over the duration.
type oscillator struct {
	freq, endFreq float64
	phase         float64
	position      int
	duration      int
	wave          WaveType
	rate          beep.SampleRate
	rng           *rand.Rand
}

// NewOscillator creates a constant-pitch oscillator. Noise draws from rng so
// that baked sounds are reproducible.
func NewOscillator(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return NewGlide(freq, freq, d, wave, rate, rng)
}

// NewGlide creates an oscillator whose pitch slides from freq to endFreq.
func NewGlide(freq, endFreq float64, d time.Duration, wave WaveType, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(d),
		wave:     wave,
		rate:     rate,
		rng:      rng,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		f := o.freq
		if o.endFreq != o.freq && o.duration > 0 {
			f += (o.endFreq - o.freq) * float64(o.position) / float64(o.duration)
		}
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with a linear attack and release over d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.release > 0 && e.position >= start {
			vol = math.Min(vol, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// lowpass is a one-pole smoother; it takes the edge off white noise.
type lowpass struct {
	streamer beep.Streamer
	alpha    float64
	prev     [2]float64
}

func newLowpass(s beep.Streamer, cutoff float64, rate beep.SampleRate) beep.Streamer {
	dt := 1 / float64(rate)
	rc := 1 / (2 * math.Pi * cutoff)
	return &lowpass{streamer: s, alpha: dt / (rc + dt)}
}

func (l *lowpass) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = l.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		for c := 0; c < 2; c++ {
			l.prev[c] += l.alpha * (samples[i][c] - l.prev[c])
			samples[i][c] = l.prev[c]
		}
	}
	return n, ok
}

func (l *lowpass) Err() error { return l.streamer.Err() }

// newVolume scales s by a linear gain. Zero and below is silent since
// log2(0) is -Inf.
func newVolume(s beep.Streamer, gain float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	SetGain(v, gain)
	return v
}

// SetGain sets a Volume effect to a linear gain.
func SetGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Volume, v.Silent = 0, true
		return
	}
	v.Volume, v.Silent = math.Log2(gain), false
}

// Ambient is the fluorescent hum: mains buzz, its octave and a bed of
// filtered hiss. Whole cycles only, so it loops without a click.
func Ambient(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	const d = 6 * time.Second
	return beep.Mix(
		newVolume(NewOscillator(60, d, WaveSaw, rate, rng), 0.22),
		newVolume(NewOscillator(120, d, WaveSine, rate, rng), 0.18),
		newVolume(NewOscillator(240, d, WaveSine, rate, rng), 0.05),
		newVolume(newLowpass(NewOscillator(0, d, WaveNoise, rate, rng), 900, rate), 0.12),
	)
}

// Breathing is one inhale and exhale followed by a pause.
func Breathing(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	breath := func(d time.Duration, cutoff, gain float64) beep.Streamer {
		noise := newLowpass(NewOscillator(0, d, WaveNoise, rate, rng), cutoff, rate)
		return newVolume(NewEnvelope(noise, d, d*2/5, d/2, rate), gain)
	}
	return beep.Seq(
		breath(1400*time.Millisecond, 1400, 0.7),
		beep.Silence(rate.N(250*time.Millisecond)),
		breath(1800*time.Millisecond, 800, 0.8),
		beep.Silence(rate.N(550*time.Millisecond)),
	)
}

// Death is a falling detuned roar with a noise burst on top.
func Death(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	const d = 3 * time.Second
	return beep.Mix(
		newVolume(NewEnvelope(NewGlide(220, 38, d, WaveSaw, rate, rng), d, 10*time.Millisecond, 1500*time.Millisecond, rate), 0.45),
		newVolume(NewEnvelope(NewGlide(233, 41, d, WaveSquare, rate, rng), d, 10*time.Millisecond, 1500*time.Millisecond, rate), 0.2),
		newVolume(NewEnvelope(newLowpass(NewOscillator(0, d, WaveNoise, rate, rng), 2500, rate), d, 5*time.Millisecond, 2500*time.Millisecond, rate), 0.5),
	)
}

// Shot is a noise crack over a low thump.
func Shot(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	const d = 400 * time.Millisecond
	return beep.Mix(
		newVolume(NewEnvelope(NewOscillator(0, d, WaveNoise, rate, rng), d, time.Millisecond, 380*time.Millisecond, rate), 0.8),
		newVolume(NewEnvelope(NewGlide(110, 45, d, WaveSine, rate, rng), d, 2*time.Millisecond, 300*time.Millisecond, rate), 0.9),
	)
}
