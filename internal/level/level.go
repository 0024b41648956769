// Package level turns a YAML level description into a game.Scene.
package level

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Night-Chase/internal/game"
)

// ErrInvalid wraps every level validation failure.
var ErrInvalid = errors.New("invalid level")

//go:embed backrooms.yaml
var defaultLevel []byte

// Spawn is a position plus a heading in degrees.
type Spawn struct {
	Position [3]float64 `yaml:"position"`
	Yaw      float64    `yaml:"yaw"`
}

// Light is a point light. Lights never take part in raycasts.
type Light struct {
	Name     string     `yaml:"name"`
	Position [3]float64 `yaml:"position"`
}

// Box is one axis-aligned solid. Collidable and Shootable default to true.
type Box struct {
	Name       string     `yaml:"name"`
	Min        [3]float64 `yaml:"min"`
	Max        [3]float64 `yaml:"max"`
	Color      string     `yaml:"color"`
	Collidable *bool      `yaml:"collidable"`
	Shootable  *bool      `yaml:"shootable"`
	Hidden     bool       `yaml:"hidden"`
}

// Level is the decoded file.
type Level struct {
	Name   string  `yaml:"name"`
	Player Spawn   `yaml:"player"`
	Entity Spawn   `yaml:"entity"`
	Lights []Light `yaml:"lights"`
	Boxes  []Box   `yaml:"boxes"`
}

// Default returns the built-in level.
func Default() *Level {
	l, err := Parse(defaultLevel)
	if err != nil {
		panic(fmt.Sprintf("level: embedded default: %v", err))
	}
	return l
}

// Load reads a level file. An empty path returns the built-in level.
func Load(path string) (*Level, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse decodes and validates a level.
func Parse(data []byte) (*Level, error) {
	var l Level
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks box extents, colours and that the player does not start
// inside a collidable box.
func (l *Level) Validate() error {
	names := make(map[string]bool, len(l.Boxes))
	for i, b := range l.Boxes {
		label := b.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		for a := 0; a < 3; a++ {
			if b.Max[a] <= b.Min[a] {
				return fmt.Errorf("%w: box %s is empty on axis %d", ErrInvalid, label, a)
			}
		}
		if _, err := ParseColor(b.Color); err != nil {
			return fmt.Errorf("%w: box %s: %v", ErrInvalid, label, err)
		}
		if b.Name != "" && names[b.Name] {
			return fmt.Errorf("%w: duplicate box name %q", ErrInvalid, b.Name)
		}
		names[b.Name] = true
	}
	sc, _ := l.Build()
	probe := game.NewMovementController(game.DefaultTuning().Movement)
	eye := mgl64.Vec3(l.Player.Position)
	eye[1] = game.DefaultTuning().Movement.BaseHeight
	inside := false
	for _, o := range sc.Objects() {
		if b, ok := o.Shape.(*game.Box); ok && o.Caps.Has(game.CapCollidable) && b.Contains(eye) {
			inside = true
		}
	}
	if inside || probe.Collides(sc, eye) {
		return fmt.Errorf("%w: player spawn %v is inside a wall", ErrInvalid, l.Player.Position)
	}
	return nil
}

// Build creates the scene and spawn points. The returned scene is owned by
// the caller and handed to game.NewSession.
func (l *Level) Build() (*game.Scene, game.Spawn) {
	sc := game.NewScene()
	for _, b := range l.Boxes {
		caps := game.Capability(0)
		if b.Collidable == nil || *b.Collidable {
			caps |= game.CapCollidable
		}
		if b.Shootable == nil || *b.Shootable {
			caps |= game.CapShootable
		}
		c, _ := ParseColor(b.Color)
		sc.Add(&game.SceneObject{
			Name:    b.Name,
			Kind:    game.KindMesh,
			Shape:   game.NewBox(mgl64.Vec3(b.Min), mgl64.Vec3(b.Max)),
			Caps:    caps,
			Visible: !b.Hidden,
			Color:   c,
		})
	}
	lampSize := mgl64.Vec3{0.3, 0.02, 0.3}
	for _, lt := range l.Lights {
		p := mgl64.Vec3(lt.Position)
		sc.Add(&game.SceneObject{
			Name:    lt.Name,
			Kind:    game.KindLight,
			Shape:   game.NewBox(p.Sub(lampSize), p.Add(lampSize)),
			Visible: true,
			Color:   color.RGBA{R: 255, G: 244, B: 200, A: 255},
		})
	}
	spawn := game.Spawn{
		Player:    mgl64.Vec3(l.Player.Position),
		PlayerYaw: l.Player.Yaw * math.Pi / 180,
		Entity:    mgl64.Vec3(l.Entity.Position),
	}
	return sc, spawn
}

// ParseColor accepts "#rgb" or "#rrggbb". An empty string is mid grey.
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("colour %q: want #rgb or #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
