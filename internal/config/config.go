// Package config provides YAML-based configuration loading for the
// flappy simulation. Every tunable constant of the game lives here.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when a configuration cannot produce a playable game.
var ErrInvalid = errors.New("config: invalid configuration")

// FlappyConfig contains all configuration for the Flappy Bird game.
type FlappyConfig struct {
	World   FlappyWorld   `yaml:"world"`
	Physics FlappyPhysics `yaml:"physics"`
	Bird    FlappyBird    `yaml:"bird"`
	Pipes   FlappyPipes   `yaml:"pipes"`
	Scroll  FlappyScroll  `yaml:"scroll"`
}

// FlappyWorld defines the logical playfield in pixels.
type FlappyWorld struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	GroundHeight int     `yaml:"ground_height"`
	MaxFrameDT   float64 `yaml:"max_frame_dt"` // seconds; longer frames are clamped
}

// FlappyPhysics defines bird physics. Units are px/s and px/s².
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	FlapStrength float64 `yaml:"flap_strength"`
}

// FlappyBird defines the bird sprite and its cosmetic animation.
type FlappyBird struct {
	X              float64 `yaml:"x"` // center
	Y              float64 `yaml:"y"` // center at start
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	RotationFactor float64 `yaml:"rotation_factor"` // degrees per px/s of velocity
	MinRotation    float64 `yaml:"min_rotation"`
	MaxRotation    float64 `yaml:"max_rotation"`
	FrameInterval  float64 `yaml:"frame_interval"` // seconds
	Frames         int     `yaml:"frames"`
}

// FlappyPipes defines pipe spawning and movement.
type FlappyPipes struct {
	Width          int     `yaml:"width"`
	Gap            int     `yaml:"gap"`
	Margin         int     `yaml:"margin"`       // minimum top height and clearance above the ground
	SpawnOffset    int     `yaml:"spawn_offset"` // distance right of the screen edge
	SpawnInterval  float64 `yaml:"spawn_interval"`
	Speed          float64 `yaml:"speed"`
	AlphaThreshold uint8   `yaml:"alpha_threshold"`
}

// FlappyScroll defines the parallax speeds of the backdrop.
type FlappyScroll struct {
	Background float64 `yaml:"background"`
	Ground     float64 `yaml:"ground"`
}

// MaxTopHeight returns the upper bound of the random top pipe height.
func (c FlappyConfig) MaxTopHeight() int {
	return c.World.Height - c.Pipes.Gap - c.World.GroundHeight - c.Pipes.Margin
}

// GroundY returns the y coordinate of the ground surface.
func (c FlappyConfig) GroundY() int {
	return c.World.Height - c.World.GroundHeight
}

// Validate checks that the configuration describes a playable game.
// Most importantly the pipe gap must always fit above the ground.
func (c FlappyConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size %dx%d", ErrInvalid, c.World.Width, c.World.Height)
	case c.World.GroundHeight < 0 || c.World.GroundHeight >= c.World.Height:
		return fmt.Errorf("%w: ground height %d", ErrInvalid, c.World.GroundHeight)
	case c.World.MaxFrameDT <= 0:
		return fmt.Errorf("%w: max_frame_dt must be positive", ErrInvalid)
	case c.Bird.Width <= 0 || c.Bird.Height <= 0:
		return fmt.Errorf("%w: bird size %dx%d", ErrInvalid, c.Bird.Width, c.Bird.Height)
	case c.Bird.Frames <= 0 || c.Bird.FrameInterval <= 0:
		return fmt.Errorf("%w: bird animation", ErrInvalid)
	case c.Bird.MinRotation > c.Bird.MaxRotation:
		return fmt.Errorf("%w: rotation range [%g, %g]", ErrInvalid, c.Bird.MinRotation, c.Bird.MaxRotation)
	case c.Pipes.Width <= 0 || c.Pipes.Gap <= 0:
		return fmt.Errorf("%w: pipe width %d gap %d", ErrInvalid, c.Pipes.Width, c.Pipes.Gap)
	case c.Pipes.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawn_interval must be positive", ErrInvalid)
	case c.Pipes.Margin < 0:
		return fmt.Errorf("%w: pipe margin %d", ErrInvalid, c.Pipes.Margin)
	case c.MaxTopHeight() < c.Pipes.Margin:
		return fmt.Errorf("%w: gap %d does not fit above ground (top range [%d, %d])",
			ErrInvalid, c.Pipes.Gap, c.Pipes.Margin, c.MaxTopHeight())
	}
	return nil
}
