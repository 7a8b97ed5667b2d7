package window

import "testing"

func TestTileXsCoverWidth(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		tileW  int
	}{
		{"aligned", 0, 336},
		{"scrolled", -200.5, 336},
		{"full background", -519, 520},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs := tileXs(tt.offset, tt.tileW, 520)
			if xs[0] > 0 {
				t.Errorf("first tile starts at %v, leaving a gap", xs[0])
			}
			if last := xs[len(xs)-1] + float64(tt.tileW); last < 520 {
				t.Errorf("tiles end at %v, short of the width", last)
			}
		})
	}
	if tileXs(0, 0, 520) != nil {
		t.Error("zero tile width should yield no tiles")
	}
}

func TestDigitXsCentred(t *testing.T) {
	var widths [10]int
	for i := range widths {
		widths[i] = 24
	}
	widths[1] = 16

	digits, xs := digitXs(10, widths, 520)
	if len(digits) != 2 || digits[0] != 1 || digits[1] != 0 {
		t.Fatalf("digits = %v", digits)
	}
	// total width 40, centred in 520
	if xs[0] != 240 || xs[1] != 256 {
		t.Errorf("xs = %v, want [240 256]", xs)
	}

	digits, _ = digitXs(-3, widths, 520)
	if len(digits) != 1 || digits[0] != 0 {
		t.Errorf("negative score should draw 0, got %v", digits)
	}
}

func TestCentred(t *testing.T) {
	x, y := centred(260, 220, 192, 42)
	if x != 164 || y != 199 {
		t.Errorf("centred = %v,%v", x, y)
	}
}
