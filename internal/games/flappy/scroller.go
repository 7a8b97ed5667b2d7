package flappy

import "math"

// Scroller is an endlessly tiling strip moving left at a constant speed.
type Scroller struct {
	Offset float64 // in (-TileW, 0]
	Speed  float64 // px/s
	TileW  int
}

// Update moves the strip and wraps it after a full tile.
func (s *Scroller) Update(dt float64) {
	if s.TileW <= 0 {
		return
	}
	s.Offset -= s.Speed * dt
	s.Offset = math.Mod(s.Offset, float64(s.TileW))
	if s.Offset > 0 {
		s.Offset -= float64(s.TileW)
	}
}

// Tiles returns the x positions of the tiles needed to cover width.
func (s *Scroller) Tiles(width int) []int {
	if s.TileW <= 0 {
		return nil
	}
	n := (width+s.TileW-1)/s.TileW + 2
	xs := make([]int, n)
	base := int(math.Floor(s.Offset))
	for i := range xs {
		xs[i] = base + i*s.TileW
	}
	return xs
}
