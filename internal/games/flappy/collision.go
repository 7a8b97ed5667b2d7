package flappy

import (
	"image"
	"math"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Collider decides whether the bird survives the current frame.
type Collider interface {
	// Alive returns false when the bird touches a pipe, the ground or the
	// top of the world.
	Alive(b *Bird, pipes []*Pipe) bool
}

// inBounds checks the world limits shared by every policy.
func inBounds(b *Bird, groundY int) bool {
	r := b.Rect()
	return r.Bottom() < groundY && r.Y > 0
}

// RectCollider tests axis-aligned bounding boxes.
type RectCollider struct {
	GroundY int
}

// Alive implements Collider.
func (c RectCollider) Alive(b *Bird, pipes []*Pipe) bool {
	r := b.Rect()
	for _, p := range pipes {
		if r.Intersects(p.TopRect()) || r.Intersects(p.BottomRect()) {
			return false
		}
	}
	return inBounds(b, c.GroundY)
}

type maskKey struct {
	frame int
	angle int
}

// MaskCollider tests the rotated bird sprite against the pipe sprites pixel
// by pixel. Rotated masks are cached per frame and whole degree.
type MaskCollider struct {
	GroundY   int
	frames    []image.Image
	threshold uint8
	cache     map[maskKey]*Mask
}

// NewMaskCollider creates a collider for the given bird animation frames.
func NewMaskCollider(groundY int, frames []image.Image, threshold uint8) *MaskCollider {
	return &MaskCollider{
		GroundY:   groundY,
		frames:    frames,
		threshold: threshold,
		cache:     make(map[maskKey]*Mask),
	}
}

// BirdMask returns the mask of the bird as currently drawn.
func (c *MaskCollider) BirdMask(b *Bird) *Mask {
	key := maskKey{frame: b.Frame % len(c.frames), angle: int(math.Round(b.Rotation))}
	if m, ok := c.cache[key]; ok {
		return m
	}
	m := NewMask(Rotate(c.frames[key.frame], float64(key.angle)), c.threshold)
	c.cache[key] = m
	return m
}

// Alive implements Collider.
func (c *MaskCollider) Alive(b *Bird, pipes []*Pipe) bool {
	if !inBounds(b, c.GroundY) {
		return false
	}

	m := c.BirdMask(b)
	// The rotated box is re-centred on the bird centre.
	box := core.RectCentered(int(math.Round(b.X)), int(math.Round(b.Y)), m.W, m.H)

	for _, p := range pipes {
		if hit(m, box, p.TopMask, p.TopRect()) || hit(m, box, p.BottomMask, p.BottomRect()) {
			return false
		}
	}
	return true
}

func hit(bird *Mask, box core.Rect, pipe *Mask, r core.Rect) bool {
	if !box.Intersects(r) {
		return false
	}
	if pipe == nil {
		return true
	}
	return bird.Overlap(pipe, r.X-box.X, r.Y-box.Y)
}
