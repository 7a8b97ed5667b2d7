package flappy

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Mask is a per-pixel opacity bitmap used for pixel-accurate collision.
type Mask struct {
	W, H int
	bits []bool
}

// NewMask marks every pixel of img whose alpha is at least threshold.
func NewMask(img image.Image, threshold uint8) *Mask {
	b := img.Bounds()
	m := &Mask{W: b.Dx(), H: b.Dy(), bits: make([]bool, b.Dx()*b.Dy())}
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			m.bits[y*m.W+x] = uint8(a>>8) >= threshold
		}
	}
	return m
}

// At reports whether (x, y) is opaque. Outside the mask is transparent.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.bits[y*m.W+x]
}

// Count returns the number of opaque pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Overlap reports whether m and other share an opaque pixel when other's
// top-left corner sits at (dx, dy) in m's coordinates.
func (m *Mask) Overlap(other *Mask, dx, dy int) bool {
	x0, y0 := max(0, dx), max(0, dy)
	x1, y1 := min(m.W, dx+other.W), min(m.H, dy+other.H)
	for y := y0; y < y1; y++ {
		row := m.bits[y*m.W : (y+1)*m.W]
		orow := other.bits[(y-dy)*other.W : (y-dy+1)*other.W]
		for x := x0; x < x1; x++ {
			if row[x] && orow[x-dx] {
				return true
			}
		}
	}
	return false
}

// Rotate returns img rotated counter-clockwise by deg degrees, on a canvas
// grown to the rotated bounding box. The centre stays in the centre.
func Rotate(img image.Image, deg float64) *image.RGBA {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)

	nw := int(math.Ceil(math.Abs(w*cos) + math.Abs(h*sin) - 1e-9))
	nh := int(math.Ceil(math.Abs(w*sin) + math.Abs(h*cos) - 1e-9))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))

	cx, cy := float64(b.Min.X)+w/2, float64(b.Min.Y)+h/2
	ncx, ncy := float64(nw)/2, float64(nh)/2

	// Source to destination; y grows downward so a positive angle turns
	// the sprite's right side upward.
	s2d := f64.Aff3{
		cos, sin, ncx - cx*cos - cy*sin,
		-sin, cos, ncy + cx*sin - cy*cos,
	}
	draw.NearestNeighbor.Transform(dst, s2d, img, b, draw.Src, nil)
	return dst
}
