package flappy

import (
	"math"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Bird is the player. Position is the sprite centre in world pixels.
type Bird struct {
	X, Y     float64
	W, H     int
	Velocity float64 // px/s, positive is down
	Rotation float64 // degrees, positive is nose up
	Frame    int     // animation frame

	frameTime float64
	cfg       config.FlappyBird
	physics   config.FlappyPhysics
}

// NewBird creates a bird at its start position.
func NewBird(cfg config.FlappyConfig) *Bird {
	b := &Bird{
		W:       cfg.Bird.Width,
		H:       cfg.Bird.Height,
		cfg:     cfg.Bird,
		physics: cfg.Physics,
	}
	b.Reset()
	return b
}

// Reset moves the bird back to the start position at rest.
func (b *Bird) Reset() {
	b.X = b.cfg.X
	b.Y = b.cfg.Y
	b.Velocity = 0
	b.Rotation = 0
}

// Flap replaces the current velocity with the flap impulse.
func (b *Bird) Flap() {
	b.Velocity = b.physics.FlapStrength
}

// Update integrates one frame: velocity first, then position.
func (b *Bird) Update(dt float64) {
	b.Velocity += b.physics.Gravity * dt
	b.Y += b.Velocity * dt
	b.Rotation = core.ClampF(-b.Velocity*b.cfg.RotationFactor, b.cfg.MinRotation, b.cfg.MaxRotation)
}

// Animate advances the wing animation. It runs in every game phase.
func (b *Bird) Animate(dt float64) {
	b.frameTime += dt
	for b.frameTime >= b.cfg.FrameInterval {
		b.frameTime -= b.cfg.FrameInterval
		b.Frame = (b.Frame + 1) % b.cfg.Frames
	}
}

// Rect returns the unrotated bounding box.
func (b *Bird) Rect() core.Rect {
	return core.RectCentered(int(math.Round(b.X)), int(math.Round(b.Y)), b.W, b.H)
}
