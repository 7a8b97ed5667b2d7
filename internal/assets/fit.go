package assets

import (
	"fmt"

	"github.com/vovakirdan/flappy-arcade/internal/config"
)

// Fits reports whether the pack can draw a world configured as cfg. The
// window blits sprites 1:1, so the sizes the simulation collides with must
// be the sizes the sprites have.
func (p *Pack) Fits(cfg config.FlappyConfig) error {
	bg := p.Background.Bounds()
	bird := p.Bird[0].Bounds()

	switch {
	case cfg.World.Height != bg.Dy():
		return fmt.Errorf("%w: world height %d, background is %d tall", config.ErrInvalid, cfg.World.Height, bg.Dy())
	case cfg.World.GroundHeight != p.Ground.Bounds().Dy():
		return fmt.Errorf("%w: ground height %d, ground sprite is %d tall", config.ErrInvalid, cfg.World.GroundHeight, p.Ground.Bounds().Dy())
	case cfg.Bird.Width != bird.Dx() || cfg.Bird.Height != bird.Dy():
		return fmt.Errorf("%w: bird %dx%d, sprite is %dx%d", config.ErrInvalid, cfg.Bird.Width, cfg.Bird.Height, bird.Dx(), bird.Dy())
	case cfg.Bird.Frames != len(p.Bird):
		return fmt.Errorf("%w: %d bird frames, pack has %d", config.ErrInvalid, cfg.Bird.Frames, len(p.Bird))
	case cfg.Pipes.Width != p.Pipe.Bounds().Dx():
		return fmt.Errorf("%w: pipe width %d, sprite is %d wide", config.ErrInvalid, cfg.Pipes.Width, p.Pipe.Bounds().Dx())
	}
	return nil
}
