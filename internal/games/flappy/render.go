package flappy

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Visual characters for terminal rendering
const (
	BirdChar    = '█'
	PipeChar    = '█'
	PipeLipChar = '▓'
	GrassChar   = '▀'
	CityChar    = '▒'
)

var skyline = []int{40, 64, 52, 80, 36, 70, 58, 44, 76, 50}

// viewport maps the square world onto a terminal grid. Cells are about twice
// as tall as wide, so the world gets two columns per row where room allows.
type viewport struct {
	x0, w, h       int
	worldW, worldH int
}

func newViewport(dst *core.Screen, worldW, worldH int) viewport {
	w := min(dst.Width(), dst.Height()*2)
	return viewport{
		x0:     (dst.Width() - w) / 2,
		w:      w,
		h:      dst.Height(),
		worldW: worldW,
		worldH: worldH,
	}
}

func (v viewport) col(wx float64) int {
	return v.x0 + int(math.Floor(wx*float64(v.w)/float64(v.worldW)))
}

func (v viewport) row(wy float64) int {
	return int(math.Floor(wy * float64(v.h) / float64(v.worldH)))
}

// worldX returns the world x at the centre of a column.
func (v viewport) worldX(col int) float64 {
	return (float64(col-v.x0) + 0.5) * float64(v.worldW) / float64(v.w)
}

// rect maps a world rectangle to cells, never shrinking a visible one to
// nothing.
func (v viewport) rect(r core.Rect) core.Rect {
	if r.Empty() {
		return core.Rect{}
	}
	x0, y0 := v.col(float64(r.X)), v.row(float64(r.Y))
	x1, y1 := v.col(float64(r.Right())), v.row(float64(r.Bottom()))
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

func (v viewport) clip(r core.Rect) core.Rect {
	return r.Intersection(core.NewRect(v.x0, 0, v.w, v.h))
}

// Render draws the current frame into the terminal screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	v := newViewport(dst, g.cfg.World.Width, g.cfg.World.Height)
	groundRow := v.row(float64(g.cfg.GroundY()))

	g.drawSkyline(dst, v, groundRow)

	for _, p := range g.pipes.Pipes() {
		g.drawPipe(dst, v, p)
	}

	g.drawGround(dst, v, groundRow)
	g.drawBird(dst, v)

	switch g.phase {
	case core.PhaseStart:
		drawMessage(dst, v, v.row(float64(g.cfg.World.Height)/2)-2, core.ColorBrightYellow,
			"GET READY", "SPACE to flap")
	case core.PhasePlaying:
		dst.DrawTextColored(v.x0+2, v.row(20), fmt.Sprintf("Best: %d", g.highScore), core.ColorBrightWhite)
		score := strconv.Itoa(g.score)
		dst.DrawTextColored(v.x0+(v.w-len(score))/2, v.row(80), score, core.ColorBrightWhite)
	case core.PhaseGameOver:
		lines := []string{"GAME OVER", fmt.Sprintf("Score: %d   Best: %d", g.score, g.highScore)}
		if g.newRecord {
			lines = append(lines, "NEW BEST!")
		}
		lines = append(lines, "SPACE to play again")
		drawMessage(dst, v, v.row(float64(g.cfg.World.Height)/2-40)-2, core.ColorOrange, lines...)
	}
}

func (g *Game) drawSkyline(dst *core.Screen, v viewport, groundRow int) {
	const building = 26
	for col := v.x0; col < v.x0+v.w; col++ {
		wx := v.worldX(col) - g.background.Offset
		idx := int(math.Floor(wx/building)) % len(skyline)
		if idx < 0 {
			idx += len(skyline)
		}
		top := v.row(float64(400 - skyline[idx]))
		for y := top; y < groundRow; y++ {
			dst.SetColored(col, y, CityChar, core.ColorGray)
		}
	}
}

func (g *Game) drawPipe(dst *core.Screen, v viewport, p *Pipe) {
	top := v.clip(v.rect(p.TopRect()))
	if !top.Empty() {
		dst.DrawRect(top, PipeChar, core.ColorGreen)
		dst.DrawHLine(top.X, top.Bottom()-1, top.W, PipeLipChar, core.ColorBrightGreen)
	}
	bottom := v.clip(v.rect(p.BottomRect()))
	if !bottom.Empty() {
		dst.DrawRect(bottom, PipeChar, core.ColorGreen)
		dst.DrawHLine(bottom.X, bottom.Y, bottom.W, PipeLipChar, core.ColorBrightGreen)
	}
}

func (g *Game) drawGround(dst *core.Screen, v viewport, groundRow int) {
	const stripe = 12
	dst.DrawHLine(v.x0, groundRow, v.w, GrassChar, core.ColorBrightGreen)
	for col := v.x0; col < v.x0+v.w; col++ {
		wx := v.worldX(col) - g.ground.Offset
		r := '░'
		if int(math.Floor(wx/stripe))%2 == 0 {
			r = '▒'
		}
		for y := groundRow + 1; y < v.h; y++ {
			dst.SetColored(col, y, r, core.ColorSand)
		}
	}
}

func (g *Game) drawBird(dst *core.Screen, v viewport) {
	r := v.clip(v.rect(g.bird.Rect()))
	if r.Empty() {
		return
	}
	dst.DrawRect(r, BirdChar, core.ColorBrightYellow)

	nose := '>'
	if g.variant.Precise {
		switch {
		case g.bird.Rotation > 10:
			nose = '/'
		case g.bird.Rotation < -10:
			nose = '\\'
		}
		wing := []rune{'v', '-', '^'}[g.bird.Frame%3]
		dst.SetColored(r.X, r.CenterY(), wing, core.ColorWhite)
	}
	dst.SetColored(r.Right()-1, r.CenterY(), nose, core.ColorOrange)
}

// drawMessage draws a boxed, centred block of text with its top at row y.
func drawMessage(dst *core.Screen, v viewport, y int, c core.Color, lines ...string) {
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	// Kept whole on screen even when the terminal is smaller than the box.
	boxX := core.Clamp(v.x0+(v.w-boxW)/2, 0, max(dst.Width()-boxW, 0))
	y = core.Clamp(y, 0, max(dst.Height()-boxH, 0))

	box := core.NewRect(boxX, y, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	for i, l := range lines {
		lc := core.ColorWhite
		if i == 0 {
			lc = c
		}
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, y+1+i, l, lc)
	}
}
