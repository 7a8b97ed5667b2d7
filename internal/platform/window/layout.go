package window

import (
	"math"
	"strconv"
)

// tileXs returns the left edges of the tiles covering [0, width) for a strip
// scrolled to offset.
func tileXs(offset float64, tileW, width int) []float64 {
	if tileW <= 0 {
		return nil
	}
	n := int(math.Ceil(float64(width)/float64(tileW))) + 2
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = offset + float64(i*tileW)
	}
	return xs
}

// digitXs lays the decimal digits of score out side by side, centred in
// width. It returns the digits and the left edge of each.
func digitXs(score int, widths [10]int, width int) ([]int, []int) {
	s := strconv.Itoa(max(score, 0))
	digits := make([]int, len(s))
	total := 0
	for i, r := range s {
		digits[i] = int(r - '0')
		total += widths[digits[i]]
	}

	xs := make([]int, len(s))
	x := (width - total) / 2
	for i, d := range digits {
		xs[i] = x
		x += widths[d]
	}
	return digits, xs
}

// centred returns the top-left corner that centres a w×h box on (cx, cy).
func centred(cx, cy, w, h int) (float64, float64) {
	return float64(cx - w/2), float64(cy - h/2)
}
