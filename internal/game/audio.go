package game

import (
	"errors"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrNotReady is returned by a Mixer that cannot start playback yet, e.g.
// a browser that has not seen a user gesture.
var ErrNotReady = errors.New("audio output not ready")

// Track identifies one of the director's layers.
type Track int

const (
	TrackAmbient Track = iota
	TrackBreathing
	TrackDeath
	trackCount
)

func (t Track) String() string {
	switch t {
	case TrackAmbient:
		return "ambient"
	case TrackBreathing:
		return "breathing"
	case TrackDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Mixer is the playback backend. Implementations must never block the frame loop.
type Mixer interface {
	Play(Track) error
	Pause(Track)
	Rewind(Track)
	SetVolume(Track, float64)
	Volume(Track) float64
	// PlayShot starts an independent gunshot voice; overlapping calls must not
	// cut each other off.
	PlayShot(volume float64) error
}

// AudioState is the director's top-level state.
type AudioState int

const (
	AudioIdle AudioState = iota
	AudioAmbientPlaying
	AudioBreathingFadingIn
	AudioBreathing
	AudioDeathSequence
	AudioStopped
)

func (s AudioState) String() string {
	switch s {
	case AudioIdle:
		return "idle"
	case AudioAmbientPlaying:
		return "ambient"
	case AudioBreathingFadingIn:
		return "breath_fade_in"
	case AudioBreathing:
		return "breathing"
	case AudioDeathSequence:
		return "death"
	case AudioStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// AmbientTargetVolume maps pursuit distance to the ambient layer's target
// volume: max at or inside near, min at or beyond far, linear in between.
func AmbientTargetVolume(t AudioTuning, distance float64) float64 {
	switch {
	case distance <= t.NearDistance:
		return t.MaxVolume
	case distance >= t.FarDistance:
		return t.MinVolume
	}
	n := (distance - t.NearDistance) / (t.FarDistance - t.NearDistance)
	return t.MaxVolume - n*(t.MaxVolume-t.MinVolume)
}

// AudioDirector sequences the ambient, breathing and death layers.
type AudioDirector struct {
	tuning AudioTuning
	mixer  Mixer
	sched  *Scheduler
	log    *SimLog

	state          AudioState
	ambientPlaying bool
	gameOver       bool
	tasks          []*Task
}

// NewAudioDirector wires a director to a mixer. A nil mixer is replaced by a
// silent one.
func NewAudioDirector(t AudioTuning, m Mixer, sched *Scheduler, sl *SimLog) *AudioDirector {
	if m == nil {
		m = NewRecordingMixer()
	}
	return &AudioDirector{tuning: t, mixer: m, sched: sched, log: sl}
}

// State returns the director state.
func (ad *AudioDirector) State() AudioState {
	return ad.state
}

// AmbientPlaying reports whether the ambient loop is running.
func (ad *AudioDirector) AmbientPlaying() bool {
	return ad.ambientPlaying
}

func (ad *AudioDirector) setState(s AudioState) {
	if ad.state == s {
		return
	}
	ad.record("state", s.String(), 0)
	ad.state = s
}

func (ad *AudioDirector) record(key, value string, num float64) {
	if ad.log != nil {
		ad.log.Add(ad.sched.Now(), "--", "audio", key, value, num)
	}
}

func (ad *AudioDirector) schedule(d time.Duration, fn func()) {
	ad.tasks = append(ad.tasks, ad.sched.After(d, fn))
}

// Start tries to begin the ambient loop immediately. A rejection is logged
// and the loop is retried on the next user interaction.
func (ad *AudioDirector) Start() {
	ad.mixer.SetVolume(TrackAmbient, ad.tuning.AmbientStartVolume)
	ad.mixer.SetVolume(TrackBreathing, 0)
	ad.mixer.SetVolume(TrackDeath, ad.tuning.DeathVolume)
	ad.tryAmbient()
}

// OnInteraction retries ambient playback after a click, key or touch.
func (ad *AudioDirector) OnInteraction() {
	if ad.ambientPlaying || ad.gameOver {
		return
	}
	ad.tryAmbient()
}

func (ad *AudioDirector) tryAmbient() {
	if err := ad.mixer.Play(TrackAmbient); err != nil {
		log.Printf("audio: ambient autoplay deferred: %v", err)
		ad.record("autoplay_blocked", err.Error(), 0)
		return
	}
	ad.ambientPlaying = true
	if ad.state == AudioIdle {
		ad.setState(AudioAmbientPlaying)
	}
}

// OnPlaying schedules the breathing fade-in relative to the start of play.
func (ad *AudioDirector) OnPlaying() {
	ad.schedule(ad.tuning.BreathDelay, ad.startBreathFade)
}

func (ad *AudioDirector) startBreathFade() {
	if ad.gameOver {
		return
	}
	ad.mixer.SetVolume(TrackBreathing, 0)
	if err := ad.mixer.Play(TrackBreathing); err != nil {
		log.Printf("audio: breathing failed to start: %v", err)
		ad.record("play_failed", TrackBreathing.String(), 0)
		return
	}
	ad.setState(AudioBreathingFadingIn)

	steps := ad.tuning.BreathFadeSteps
	if steps <= 0 {
		steps = 1
	}
	stepTime := ad.tuning.BreathFade / time.Duration(steps)
	volStep := ad.tuning.BreathVolume / float64(steps)
	n := 0
	ad.tasks = append(ad.tasks, ad.sched.Every(stepTime, func() bool {
		if ad.gameOver {
			return false
		}
		n++
		ad.mixer.SetVolume(TrackBreathing, mgl64.Clamp(volStep*float64(n), 0, ad.tuning.BreathVolume))
		if n >= steps {
			ad.setState(AudioBreathing)
			return false
		}
		return true
	}))
}

// UpdateDistance eases the ambient volume toward the distance target.
// It is a no-op unless the ambient loop is running and the game is live.
func (ad *AudioDirector) UpdateDistance(distance float64) {
	if !ad.ambientPlaying || ad.gameOver {
		return
	}
	target := AmbientTargetVolume(ad.tuning, distance)
	cur := ad.mixer.Volume(TrackAmbient)
	ad.mixer.SetVolume(TrackAmbient, cur+(target-cur)*ad.tuning.Smoothing)
}

// OnGameOver runs the death timeline: immediate stinger, breathing back at
// DeathBreathAt, stinger cut at DeathStopAt, silence at AllStopAt.
func (ad *AudioDirector) OnGameOver() {
	if ad.gameOver {
		return
	}
	ad.gameOver = true
	ad.cancelTasks()

	ad.stop(TrackAmbient)
	ad.stop(TrackBreathing)
	ad.ambientPlaying = false

	ad.mixer.Rewind(TrackDeath)
	ad.mixer.SetVolume(TrackDeath, ad.tuning.DeathVolume)
	if err := ad.mixer.Play(TrackDeath); err != nil {
		log.Printf("audio: death sound failed: %v", err)
		ad.record("play_failed", TrackDeath.String(), 0)
	}
	ad.setState(AudioDeathSequence)

	ad.schedule(ad.tuning.DeathBreathAt, func() {
		ad.mixer.Rewind(TrackBreathing)
		ad.mixer.SetVolume(TrackBreathing, ad.tuning.BreathVolume)
		if err := ad.mixer.Play(TrackBreathing); err != nil {
			log.Printf("audio: breathing failed to restart: %v", err)
		}
	})
	ad.schedule(ad.tuning.DeathStopAt, func() {
		ad.stop(TrackDeath)
	})
	ad.schedule(ad.tuning.AllStopAt, func() {
		for t := Track(0); t < trackCount; t++ {
			ad.stop(t)
		}
		ad.setState(AudioStopped)
	})
}

// PlayShot starts an overlapping gunshot voice.
func (ad *AudioDirector) PlayShot(volume float64) {
	if err := ad.mixer.PlayShot(volume); err != nil {
		log.Printf("audio: shot failed: %v", err)
	}
}

func (ad *AudioDirector) stop(t Track) {
	ad.mixer.Pause(t)
	ad.mixer.Rewind(t)
}

func (ad *AudioDirector) cancelTasks() {
	for _, t := range ad.tasks {
		t.Cancel()
	}
	ad.tasks = ad.tasks[:0]
}

// Teardown cancels every pending timer and silences every layer.
func (ad *AudioDirector) Teardown() {
	ad.cancelTasks()
	for t := Track(0); t < trackCount; t++ {
		ad.mixer.Pause(t)
	}
	ad.ambientPlaying = false
	ad.setState(AudioStopped)
}
