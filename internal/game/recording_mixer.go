package game

import "fmt"

// MixerCall is one recorded Mixer invocation.
type MixerCall struct {
	Op     string // play, pause, rewind, volume, shot
	Track  Track
	Volume float64
}

func (c MixerCall) String() string {
	switch c.Op {
	case "volume", "shot":
		return fmt.Sprintf("%s %s %.3f", c.Op, c.Track, c.Volume)
	default:
		return fmt.Sprintf("%s %s", c.Op, c.Track)
	}
}

// RecordingMixer is a silent Mixer that remembers every call. It backs
// headless runs and tests. Set Reject to make Play fail with ErrNotReady
// until it is cleared, mimicking a blocked autoplay.
type RecordingMixer struct {
	Calls   []MixerCall
	Reject  bool
	playing [trackCount]bool
	volume  [trackCount]float64
	shots   int
}

// NewRecordingMixer returns an empty recorder.
func NewRecordingMixer() *RecordingMixer {
	return &RecordingMixer{}
}

// Play implements Mixer.
func (rm *RecordingMixer) Play(t Track) error {
	if rm.Reject {
		return ErrNotReady
	}
	rm.Calls = append(rm.Calls, MixerCall{Op: "play", Track: t})
	rm.playing[t] = true
	return nil
}

// Pause implements Mixer.
func (rm *RecordingMixer) Pause(t Track) {
	rm.Calls = append(rm.Calls, MixerCall{Op: "pause", Track: t})
	rm.playing[t] = false
}

// Rewind implements Mixer.
func (rm *RecordingMixer) Rewind(t Track) {
	rm.Calls = append(rm.Calls, MixerCall{Op: "rewind", Track: t})
}

// SetVolume implements Mixer.
func (rm *RecordingMixer) SetVolume(t Track, v float64) {
	rm.Calls = append(rm.Calls, MixerCall{Op: "volume", Track: t, Volume: v})
	rm.volume[t] = v
}

// Volume implements Mixer.
func (rm *RecordingMixer) Volume(t Track) float64 {
	return rm.volume[t]
}

// PlayShot implements Mixer.
func (rm *RecordingMixer) PlayShot(v float64) error {
	rm.Calls = append(rm.Calls, MixerCall{Op: "shot", Volume: v})
	rm.shots++
	return nil
}

// Playing reports whether t is currently playing.
func (rm *RecordingMixer) Playing(t Track) bool {
	return rm.playing[t]
}

// Shots returns how many shot voices were started.
func (rm *RecordingMixer) Shots() int {
	return rm.shots
}

// Count returns how many calls match op and track.
func (rm *RecordingMixer) Count(op string, t Track) int {
	n := 0
	for _, c := range rm.Calls {
		if c.Op == op && c.Track == t {
			n++
		}
	}
	return n
}
