package flappy

import (
	"image"
	"math"
	"math/rand"

	"github.com/vovakirdan/flappy-arcade/internal/assets"
	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Pipe is a top/bottom obstacle pair sharing one x position.
type Pipe struct {
	X            float64 // left edge
	W            int
	TopHeight    int // top pipe spans [0, TopHeight)
	BottomY      int // bottom pipe starts here
	BottomHeight int
	Scored       bool

	// Opacity masks of the scaled sprites, nil unless pixel collision is on.
	TopMask    *Mask
	BottomMask *Mask
}

func (p *Pipe) left() int {
	return int(math.Floor(p.X))
}

// TopRect returns the collision rectangle of the top pipe.
func (p *Pipe) TopRect() core.Rect {
	return core.NewRect(p.left(), 0, p.W, p.TopHeight)
}

// BottomRect returns the collision rectangle of the bottom pipe.
func (p *Pipe) BottomRect() core.Rect {
	return core.NewRect(p.left(), p.BottomY, p.W, p.BottomHeight)
}

// CenterX returns the horizontal centre of the pair.
func (p *Pipe) CenterX() float64 {
	return p.X + float64(p.W)/2
}

// Right returns the x of the right edge.
func (p *Pipe) Right() float64 {
	return p.X + float64(p.W)
}

// PipeFactory creates pipe pairs with a random gap position.
type PipeFactory struct {
	cfg    config.FlappyConfig
	rng    *rand.Rand
	sprite *image.RGBA // nil disables masks
}

// NewPipeFactory creates a factory. A non-nil sprite makes every pipe carry
// collision masks derived from it.
func NewPipeFactory(cfg config.FlappyConfig, rng *rand.Rand, sprite *image.RGBA) *PipeFactory {
	return &PipeFactory{cfg: cfg, rng: rng, sprite: sprite}
}

// New returns a pipe pair centred just off the right edge of the world.
func (f *PipeFactory) New() *Pipe {
	world, pipes := f.cfg.World, f.cfg.Pipes

	minTop, maxTop := pipes.Margin, f.cfg.MaxTopHeight()
	top := minTop + f.rng.Intn(maxTop-minTop+1)
	bottomY := top + pipes.Gap
	centerX := world.Width + pipes.SpawnOffset

	p := &Pipe{
		X:            float64(centerX) - float64(pipes.Width)/2,
		W:            pipes.Width,
		TopHeight:    top,
		BottomY:      bottomY,
		BottomHeight: world.Height - top - pipes.Gap - world.GroundHeight,
	}

	if f.sprite != nil {
		p.TopMask = NewMask(assets.FlipV(assets.Scale(f.sprite, p.W, p.TopHeight)), pipes.AlphaThreshold)
		p.BottomMask = NewMask(assets.Scale(f.sprite, p.W, p.BottomHeight), pipes.AlphaThreshold)
	}
	return p
}

// ObstacleList owns the live pipes in spawn order.
type ObstacleList struct {
	pipes []*Pipe
}

// Add appends a freshly spawned pipe.
func (l *ObstacleList) Add(p *Pipe) {
	l.pipes = append(l.pipes, p)
}

// Advance moves every pipe left by dx pixels.
func (l *ObstacleList) Advance(dx float64) {
	for _, p := range l.pipes {
		p.X -= dx
	}
}

// Score marks every unscored pipe whose centre is strictly left of birdX
// and returns how many were newly marked.
func (l *ObstacleList) Score(birdX float64) int {
	n := 0
	for _, p := range l.pipes {
		if !p.Scored && p.CenterX() < birdX {
			p.Scored = true
			n++
		}
	}
	return n
}

// Prune drops pipes whose right edge is at or left of x = 0.
func (l *ObstacleList) Prune() {
	kept := l.pipes[:0]
	for _, p := range l.pipes {
		if p.Right() > 0 {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(l.pipes); i++ {
		l.pipes[i] = nil
	}
	l.pipes = kept
}

// Clear removes all pipes.
func (l *ObstacleList) Clear() {
	clear(l.pipes)
	l.pipes = l.pipes[:0]
}

// Pipes returns the live pipes. The slice must not be modified.
func (l *ObstacleList) Pipes() []*Pipe {
	return l.pipes
}

// Len returns the number of live pipes.
func (l *ObstacleList) Len() int {
	return len(l.pipes)
}
