package game

import "time"

// MovementTuning controls the first-person controller.
type MovementTuning struct {
	Speed             float64 `yaml:"speed"`              // units per second
	PlayerRadius      float64 `yaml:"player_radius"`      // collision probe length
	BaseHeight        float64 `yaml:"base_height"`        // eye level
	BobAmplitude      float64 `yaml:"bob_amplitude"`      // vertical bob, units
	BobFrequency      float64 `yaml:"bob_frequency"`      // phase advance per second
	IdleReturnRate    float64 `yaml:"idle_return_rate"`   // per-second decay back to eye level
	JoystickThreshold float64 `yaml:"joystick_threshold"` // axis magnitude that counts as a key press
}

// PursuitTuning controls the chasing entity.
type PursuitTuning struct {
	Speed       float64       `yaml:"speed"`
	CatchRadius float64       `yaml:"catch_radius"`
	SpawnDelay  time.Duration `yaml:"spawn_delay"`
	Width       float64       `yaml:"width"`
	Height      float64       `yaml:"height"`
}

// WeaponTuning controls hit detection and the cosmetic gun animation.
type WeaponTuning struct {
	Range          float64       `yaml:"range"`
	ShotVolume     float64       `yaml:"shot_volume"`
	RecoilDuration time.Duration `yaml:"recoil_duration"`
	RecoilBack     float64       `yaml:"recoil_back"`
	RecoilUp       float64       `yaml:"recoil_up"`
	RecoilPitch    float64       `yaml:"recoil_pitch"`
	RecoilRoll     float64       `yaml:"recoil_roll"` // full width of the random roll jitter
	SwayAmplitude  float64       `yaml:"sway_amplitude"`
	SwayRate       float64       `yaml:"sway_rate"`
}

// EffectsTuning controls decal lifetimes.
type EffectsTuning struct {
	BloodSteps    int           `yaml:"blood_steps"`
	BloodTick     time.Duration `yaml:"blood_tick"`
	BloodSize     float64       `yaml:"blood_size"`
	HoleLifetime  time.Duration `yaml:"hole_lifetime"`
	HoleSize      float64       `yaml:"hole_size"`
	SurfaceOffset float64       `yaml:"surface_offset"`
}

// AudioTuning controls the audio director's mix and timeline.
type AudioTuning struct {
	AmbientStartVolume float64       `yaml:"ambient_start_volume"`
	NearDistance       float64       `yaml:"near_distance"`
	FarDistance        float64       `yaml:"far_distance"`
	MinVolume          float64       `yaml:"min_volume"`
	MaxVolume          float64       `yaml:"max_volume"`
	Smoothing          float64       `yaml:"smoothing"`
	BreathDelay        time.Duration `yaml:"breath_delay"`
	BreathFade         time.Duration `yaml:"breath_fade"`
	BreathFadeSteps    int           `yaml:"breath_fade_steps"`
	BreathVolume       float64       `yaml:"breath_volume"`
	DeathVolume        float64       `yaml:"death_volume"`
	DeathBreathAt      time.Duration `yaml:"death_breath_at"`
	DeathStopAt        time.Duration `yaml:"death_stop_at"`
	AllStopAt          time.Duration `yaml:"all_stop_at"`
}

// SessionTuning controls phase timings.
type SessionTuning struct {
	LoadTick         time.Duration `yaml:"load_tick"`
	LoadMaxStep      float64       `yaml:"load_max_step"` // percent
	LoadSettle       time.Duration `yaml:"load_settle"`
	LoadFallback     time.Duration `yaml:"load_fallback"`
	RevealDelay      time.Duration `yaml:"reveal_delay"`
	ContinueDelay    time.Duration `yaml:"continue_delay"`
	MouseSensitivity float64       `yaml:"mouse_sensitivity"` // radians per pixel
	TouchSensitivity float64       `yaml:"touch_sensitivity"` // radians per pixel
}

// Tuning bundles every gameplay constant.
type Tuning struct {
	Movement MovementTuning `yaml:"movement"`
	Pursuit  PursuitTuning  `yaml:"pursuit"`
	Weapon   WeaponTuning   `yaml:"weapon"`
	Effects  EffectsTuning  `yaml:"effects"`
	Audio    AudioTuning    `yaml:"audio"`
	Session  SessionTuning  `yaml:"session"`
}

// DefaultTuning returns the values the demo ships with.
func DefaultTuning() Tuning {
	return Tuning{
		Movement: MovementTuning{
			Speed:             5,
			PlayerRadius:      0.3,
			BaseHeight:        1.6,
			BobAmplitude:      0.08,
			BobFrequency:      8,
			IdleReturnRate:    5,
			JoystickThreshold: 0.1,
		},
		Pursuit: PursuitTuning{
			Speed:       2.5,
			CatchRadius: 1.2,
			SpawnDelay:  2 * time.Second,
			Width:       3,
			Height:      2,
		},
		Weapon: WeaponTuning{
			Range:          100,
			ShotVolume:     0.7,
			RecoilDuration: 80 * time.Millisecond,
			RecoilBack:     0.1,
			RecoilUp:       0.05,
			RecoilPitch:    -0.2,
			RecoilRoll:     0.05,
			SwayAmplitude:  0.01,
			SwayRate:       2,
		},
		Effects: EffectsTuning{
			BloodSteps:    60,
			BloodTick:     50 * time.Millisecond,
			BloodSize:     0.3,
			HoleLifetime:  10 * time.Second,
			HoleSize:      0.15,
			SurfaceOffset: 0.01,
		},
		Audio: AudioTuning{
			AmbientStartVolume: 0.001,
			NearDistance:       2,
			FarDistance:        8,
			MinVolume:          0.001,
			MaxVolume:          0.8,
			Smoothing:          0.1,
			BreathDelay:        3 * time.Second,
			BreathFade:         2 * time.Second,
			BreathFadeSteps:    60,
			BreathVolume:       0.9,
			DeathVolume:        1.0,
			DeathBreathAt:      2 * time.Second,
			DeathStopAt:        3 * time.Second,
			AllStopAt:          6 * time.Second,
		},
		Session: SessionTuning{
			LoadTick:         200 * time.Millisecond,
			LoadMaxStep:      15,
			LoadSettle:       500 * time.Millisecond,
			LoadFallback:     3 * time.Second,
			RevealDelay:      3 * time.Second,
			ContinueDelay:    6 * time.Second,
			MouseSensitivity: 0.002,
			TouchSensitivity: 0.007,
		},
	}
}
