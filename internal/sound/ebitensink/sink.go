// Package ebitensink plays the director's layers through ebiten's audio
// context, which also covers the browser build.
package ebitensink

import (
	"bytes"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/Garsondee/Night-Chase/internal/game"
	"github.com/Garsondee/Night-Chase/internal/sound"
)

// Sink implements game.Mixer. It must be used from the game goroutine.
type Sink struct {
	ctx     *audio.Context
	bank    *sound.Bank
	players map[game.Track]*audio.Player
	volume  map[game.Track]float64
	shots   []*audio.Player
}

// New creates the process-wide audio context and one player per track.
// ebiten allows a single context, so call it once.
func New(bank *sound.Bank) (*Sink, error) {
	ctx := audio.NewContext(int(bank.Format().SampleRate))
	s := &Sink{
		ctx:     ctx,
		bank:    bank,
		players: make(map[game.Track]*audio.Player),
		volume:  make(map[game.Track]float64),
	}
	for _, t := range []game.Track{game.TrackAmbient, game.TrackBreathing, game.TrackDeath} {
		pcm := bank.PCM(t)
		var p *audio.Player
		var err error
		if sound.Loops(t) {
			p, err = ctx.NewPlayer(audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm))))
		} else {
			p = ctx.NewPlayerFromBytes(pcm)
		}
		if err != nil {
			s.Close()
			return nil, err
		}
		s.players[t] = p
		s.volume[t] = 1
	}
	return s, nil
}

// Play implements game.Mixer. Until the context is ready (a browser before
// its first gesture) it reports game.ErrNotReady.
func (s *Sink) Play(t game.Track) error {
	if !s.ctx.IsReady() {
		return game.ErrNotReady
	}
	s.players[t].Play()
	return nil
}

// Pause implements game.Mixer.
func (s *Sink) Pause(t game.Track) {
	s.players[t].Pause()
}

// Rewind implements game.Mixer.
func (s *Sink) Rewind(t game.Track) {
	if err := s.players[t].Rewind(); err != nil {
		log.Printf("ebitensink: rewind %s: %v", t, err)
	}
}

// SetVolume implements game.Mixer.
func (s *Sink) SetVolume(t game.Track, v float64) {
	v = max(0, min(1, v))
	s.volume[t] = v
	s.players[t].SetVolume(v)
}

// Volume implements game.Mixer.
func (s *Sink) Volume(t game.Track) float64 {
	return s.volume[t]
}

// PlayShot implements game.Mixer. Every call gets its own player so rapid
// fire overlaps; finished players are closed on the next call.
func (s *Sink) PlayShot(v float64) error {
	if !s.ctx.IsReady() {
		return game.ErrNotReady
	}
	live := s.shots[:0]
	for _, p := range s.shots {
		if p.IsPlaying() {
			live = append(live, p)
			continue
		}
		if err := p.Close(); err != nil {
			log.Printf("ebitensink: close shot: %v", err)
		}
	}
	s.shots = live

	p := s.ctx.NewPlayerFromBytes(s.bank.ShotPCM())
	p.SetVolume(max(0, min(1, v)))
	p.Play()
	s.shots = append(s.shots, p)
	return nil
}

// Close releases every player.
func (s *Sink) Close() {
	for t, p := range s.players {
		p.Pause()
		if err := p.Close(); err != nil {
			log.Printf("ebitensink: close %s: %v", t, err)
		}
	}
	for _, p := range s.shots {
		_ = p.Close()
	}
	s.shots = nil
	s.players = map[game.Track]*audio.Player{}
}
