package assets

import (
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	skyTop     = color.RGBA{78, 192, 202, 255}
	skyBottom  = color.RGBA{155, 224, 230, 255}
	cloud      = color.RGBA{234, 252, 219, 255}
	city       = color.RGBA{115, 191, 150, 255}
	sand       = color.RGBA{222, 216, 149, 255}
	sandDark   = color.RGBA{208, 196, 120, 255}
	grass      = color.RGBA{115, 191, 46, 255}
	grassDark  = color.RGBA{84, 128, 35, 255}
	pipeLight  = color.RGBA{115, 191, 46, 255}
	pipeDark   = color.RGBA{84, 128, 35, 255}
	outline    = color.RGBA{84, 56, 71, 255}
	birdYellow = color.RGBA{250, 200, 40, 255}
	birdWing   = color.RGBA{250, 240, 190, 255}
	beak       = color.RGBA{240, 110, 40, 255}
	white      = color.RGBA{255, 255, 255, 255}
	black      = color.RGBA{0, 0, 0, 255}
	orange     = color.RGBA{252, 160, 72, 255}
)

// Procedural builds a complete pack without touching the filesystem.
func Procedural() (*Pack, error) {
	sounds, err := SynthesizeSounds()
	if err != nil {
		return nil, err
	}
	p := Sprites()
	p.Sounds = sounds
	return p, nil
}

// Sprites builds the procedural images only. Simulations that never play
// sound use it to get sprite shapes for pixel collision.
func Sprites() *Pack {
	p := &Pack{
		Background: drawBackground(),
		Ground:     drawGround(),
		Pipe:       drawPipe(),
		GameOver:   outlined("GAME OVER", orange, 3),
		Message:    drawMessage(),
	}
	for i := range p.Bird {
		p.Bird[i] = drawBird(i)
	}
	for i := range p.Digits {
		p.Digits[i] = drawDigit(i)
	}
	return p
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// ellipse fills the ellipse inscribed in r.
func ellipse(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	cx := float64(r.Min.X+r.Max.X-1) / 2
	cy := float64(r.Min.Y+r.Max.Y-1) / 2
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if dx*dx+dy*dy <= 1 {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func drawBackground() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, WorldSize, WorldSize))
	for y := 0; y < WorldSize; y++ {
		t := float64(y) / WorldSize
		c := color.RGBA{lerp(skyTop.R, skyBottom.R, t), lerp(skyTop.G, skyBottom.G, t), lerp(skyTop.B, skyBottom.B, t), 255}
		fill(img, image.Rect(0, y, WorldSize, y+1), c)
	}

	// Cloud band and skyline, repeating so the tile wraps seamlessly.
	for x := -20; x < WorldSize+20; x += 40 {
		ellipse(img, image.Rect(x, 300, x+60, 350), cloud)
	}
	fill(img, image.Rect(0, 330, WorldSize, WorldSize), cloud)
	heights := []int{40, 64, 52, 80, 36, 70, 58, 44, 76, 50}
	for i := 0; i < WorldSize/26; i++ {
		h := heights[i%len(heights)]
		fill(img, image.Rect(i*26, 400-h, i*26+24, WorldSize), city)
	}
	return img
}

func drawGround() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, GroundW, GroundH))
	fill(img, img.Bounds(), sand)
	fill(img, image.Rect(0, 0, GroundW, 2), outline)
	fill(img, image.Rect(0, 2, GroundW, 14), grass)
	for x := 0; x < GroundW; x += 12 {
		for i := 0; i < 6; i++ {
			fill(img, image.Rect(x+i, 8-i/2, x+i+1, 14), grassDark)
		}
	}
	fill(img, image.Rect(0, 14, GroundW, 18), sandDark)
	return img
}

func drawPipe() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, PipeW, PipeH))
	const lip = 24
	// Body is narrower than the lip; the lip sits at the open end (row 0).
	fill(img, image.Rect(2, lip, PipeW-2, PipeH), outline)
	fill(img, image.Rect(4, lip, PipeW-4, PipeH), pipeLight)
	fill(img, image.Rect(PipeW-14, lip, PipeW-4, PipeH), pipeDark)
	fill(img, image.Rect(8, lip, 12, PipeH), birdWing)

	fill(img, image.Rect(0, 0, PipeW, lip), outline)
	fill(img, image.Rect(2, 2, PipeW-2, lip-2), pipeLight)
	fill(img, image.Rect(PipeW-12, 2, PipeW-2, lip-2), pipeDark)
	return img
}

// drawBird draws animation frame i: 0 wing down, 1 level, 2 wing up.
func drawBird(frame int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, BirdW, BirdH))
	ellipse(img, image.Rect(1, 3, 37, 29), outline)
	ellipse(img, image.Rect(3, 5, 35, 27), birdYellow)

	ellipse(img, image.Rect(22, 4, 34, 16), white)
	fill(img, image.Rect(28, 8, 31, 12), black)

	fill(img, image.Rect(26, 17, 40, 21), beak)
	fill(img, image.Rect(26, 21, 38, 25), beak)

	wingY := []int{17, 12, 7}[frame%BirdFrames]
	ellipse(img, image.Rect(2, wingY, 18, wingY+10), outline)
	ellipse(img, image.Rect(4, wingY+2, 16, wingY+8), birdWing)
	return img
}

// glyphs renders text with the 7x13 bitmap face on a transparent image.
func glyphs(text string, c color.Color) *image.RGBA {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil()
	img := image.NewRGBA(image.Rect(0, 0, w, face.Height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)
	return img
}

// outlined renders text scaled by factor with a one-pixel dark outline.
func outlined(text string, c color.Color, factor int) *image.RGBA {
	fg := glyphs(text, c)
	shadow := glyphs(text, outline)
	b := fg.Bounds()
	w, h := b.Dx()*factor, b.Dy()*factor
	dst := image.NewRGBA(image.Rect(0, 0, w+2, h+2))
	big := Scale(shadow, w, h)
	for _, off := range []image.Point{image.Pt(0, 1), image.Pt(2, 1), image.Pt(1, 0), image.Pt(1, 2)} {
		draw.Draw(dst, big.Bounds().Add(off), big, image.Point{}, draw.Over)
	}
	draw.Draw(dst, big.Bounds().Add(image.Pt(1, 1)), Scale(fg, w, h), image.Point{}, draw.Over)
	return dst
}

func drawDigit(d int) *image.RGBA {
	g := outlined(strconv.Itoa(d), white, 3)
	return Scale(g, DigitW, DigitH)
}

func drawMessage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, WorldSize, WorldSize))
	place := func(banner *image.RGBA, y int) {
		x := (WorldSize - banner.Bounds().Dx()) / 2
		draw.Draw(img, banner.Bounds().Add(image.Pt(x, y)), banner, image.Point{}, draw.Over)
	}
	place(outlined("GET READY", orange, 4), 120)
	place(outlined("PRESS SPACE", white, 2), 300)
	return img
}
