// Package config loads the demo's tunables from YAML. Every key has a
// default in the embedded default.yaml; a user file only needs the keys it
// changes.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Night-Chase/internal/game"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

//go:embed default.yaml
var defaultYAML []byte

// Window sizes the desktop window and the projection.
type Window struct {
	Title      string  `yaml:"title"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FOVDegrees float64 `yaml:"fov_degrees"`
}

// Signup points the waitlist form at its backend.
type Signup struct {
	Endpoint   string        `yaml:"endpoint"`
	Timeout    time.Duration `yaml:"timeout"`
	LinksDelay time.Duration `yaml:"links_delay"`
	Twitter    string        `yaml:"twitter"`
	Discord    string        `yaml:"discord"`
}

// Config is the full set of tunables.
type Config struct {
	Window Window      `yaml:"window"`
	Game   game.Tuning `yaml:",inline"`
	Signup Signup      `yaml:"signup"`
}

// Default returns the embedded defaults. It panics only if the embedded file
// is broken, which the tests guard against.
func Default() Config {
	var c Config
	if err := decode(defaultYAML, &c); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return c
}

// Load overlays the YAML file at path on the defaults and validates the
// result. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &c); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse overlays data on c and validates the result.
func Parse(data []byte, c *Config) error {
	if err := decode(data, c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return c.Validate()
}

func decode(data []byte, c *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	g := c.Game

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.FOVDegrees > 10 && c.Window.FOVDegrees < 170, "fov_degrees %.1f out of range", c.Window.FOVDegrees)

	check(g.Movement.Speed > 0, "movement.speed must be positive")
	check(g.Movement.PlayerRadius > 0, "movement.player_radius must be positive")
	check(g.Movement.BobAmplitude >= 0, "movement.bob_amplitude must not be negative")
	check(g.Movement.JoystickThreshold >= 0 && g.Movement.JoystickThreshold < 1, "movement.joystick_threshold must be in [0,1)")

	check(g.Pursuit.Speed > 0, "pursuit.speed must be positive")
	check(g.Pursuit.CatchRadius > 0, "pursuit.catch_radius must be positive")
	check(g.Pursuit.SpawnDelay >= 0, "pursuit.spawn_delay must not be negative")
	check(g.Pursuit.Width > 0 && g.Pursuit.Height > 0, "pursuit billboard size must be positive")

	check(g.Weapon.Range > 0, "weapon.range must be positive")
	check(g.Weapon.RecoilDuration > 0, "weapon.recoil_duration must be positive")
	check(g.Weapon.ShotVolume >= 0 && g.Weapon.ShotVolume <= 1, "weapon.shot_volume must be in [0,1]")

	check(g.Effects.BloodSteps > 0 && g.Effects.BloodTick > 0, "effects blood fade needs positive steps and tick")
	check(g.Effects.HoleLifetime > 0, "effects.hole_lifetime must be positive")

	a := g.Audio
	check(a.NearDistance < a.FarDistance, "audio.near_distance %.2f must be below far_distance %.2f", a.NearDistance, a.FarDistance)
	check(a.MinVolume >= 0 && a.MinVolume <= a.MaxVolume && a.MaxVolume <= 1, "audio volumes must satisfy 0 <= min <= max <= 1")
	check(a.Smoothing > 0 && a.Smoothing <= 1, "audio.smoothing must be in (0,1]")
	check(a.BreathFadeSteps > 0, "audio.breath_fade_steps must be positive")
	check(a.DeathBreathAt <= a.DeathStopAt && a.DeathStopAt <= a.AllStopAt, "audio death timeline must be ordered")

	s := g.Session
	check(s.LoadTick > 0, "session.load_tick must be positive")
	check(s.LoadFallback > 0, "session.load_fallback must be positive")
	check(s.RevealDelay <= s.ContinueDelay, "session.reveal_delay must not exceed continue_delay")

	check(c.Signup.Endpoint != "", "signup.endpoint is required")
	check(c.Signup.Timeout > 0, "signup.timeout must be positive")

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
