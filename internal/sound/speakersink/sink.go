// Package speakersink plays the director's layers through the beep speaker.
// It backs the terminal build, where there is no ebiten audio context.
package speakersink

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Night-Chase/internal/game"
	"github.com/Garsondee/Night-Chase/internal/sound"
)

// voice is one director track: a rewindable source behind a gain and a
// pause switch. Loops repeat forever and one-shots are followed by endless
// silence, so the mixer keeps every voice for the whole run.
type voice struct {
	src   beep.StreamSeeker
	loops bool
	gain  *effects.Volume
	ctrl  *beep.Ctrl
	level float64
}

// body wraps the source for playback from its current position.
func (v *voice) body() beep.Streamer {
	if v.loops {
		return beep.Loop(-1, v.src)
	}
	return beep.Seq(v.src, beep.Silence(-1))
}

// Sink implements game.Mixer over a beep.Mixer.
type Sink struct {
	lock   sync.Locker
	mixer  *beep.Mixer
	bank   *sound.Bank
	voices map[game.Track]*voice
	ready  bool
}

type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// New builds a sink over bank. Nothing is audible until Init succeeds.
func New(bank *sound.Bank) *Sink {
	return newSink(bank, speakerLock{})
}

func newSink(bank *sound.Bank, lock sync.Locker) *Sink {
	s := &Sink{
		lock:   lock,
		mixer:  &beep.Mixer{},
		bank:   bank,
		voices: make(map[game.Track]*voice),
	}
	for _, t := range []game.Track{game.TrackAmbient, game.TrackBreathing, game.TrackDeath} {
		v := &voice{src: bank.Streamer(t), loops: sound.Loops(t), level: 1}
		v.gain = &effects.Volume{Streamer: v.body(), Base: 2}
		sound.SetGain(v.gain, 1)
		v.ctrl = &beep.Ctrl{Streamer: v.gain, Paused: true}
		s.voices[t] = v
		s.mixer.Add(v.ctrl)
	}
	return s
}

// Init opens the speaker. On failure the sink stays silent and Play keeps
// returning game.ErrNotReady.
func (s *Sink) Init() error {
	rate := s.bank.Format().SampleRate
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		log.Printf("speakersink: no audio device: %v", err)
		return err
	}
	speaker.Play(s.mixer)
	s.ready = true
	return nil
}

// Play implements game.Mixer.
func (s *Sink) Play(t game.Track) error {
	if !s.ready {
		return game.ErrNotReady
	}
	s.lock.Lock()
	s.voices[t].ctrl.Paused = false
	s.lock.Unlock()
	return nil
}

// Pause implements game.Mixer.
func (s *Sink) Pause(t game.Track) {
	s.lock.Lock()
	s.voices[t].ctrl.Paused = true
	s.lock.Unlock()
}

// Rewind implements game.Mixer. The body is rebuilt because a finished
// sequence does not return to its first streamer.
func (s *Sink) Rewind(t game.Track) {
	s.lock.Lock()
	defer s.lock.Unlock()
	v := s.voices[t]
	if err := v.src.Seek(0); err != nil {
		log.Printf("speakersink: rewind %s: %v", t, err)
		return
	}
	v.gain.Streamer = v.body()
}

// SetVolume implements game.Mixer.
func (s *Sink) SetVolume(t game.Track, v float64) {
	v = max(0, min(1, v))
	s.lock.Lock()
	s.voices[t].level = v
	sound.SetGain(s.voices[t].gain, v)
	s.lock.Unlock()
}

// Volume implements game.Mixer.
func (s *Sink) Volume(t game.Track) float64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.voices[t].level
}

// PlayShot implements game.Mixer. Each shot is its own mixer input, which
// the mixer drops once it has played out.
func (s *Sink) PlayShot(v float64) error {
	if !s.ready {
		return game.ErrNotReady
	}
	gain := &effects.Volume{Streamer: s.bank.ShotStreamer(), Base: 2}
	sound.SetGain(gain, max(0, min(1, v)))
	s.lock.Lock()
	s.mixer.Add(gain)
	s.lock.Unlock()
	return nil
}

// Voices returns how many inputs the mixer holds, tracks included.
func (s *Sink) Voices() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.mixer.Len()
}

// Close silences everything.
func (s *Sink) Close() {
	s.lock.Lock()
	for _, v := range s.voices {
		v.ctrl.Paused = true
	}
	s.lock.Unlock()
}
