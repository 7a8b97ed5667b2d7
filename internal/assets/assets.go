// Package assets provides the images and sounds the front ends draw and play.
//
// A Pack is either generated procedurally (no files needed) or loaded from an
// asset directory laid out as
//
//	Objects/{bg,base,pipe,downflap,midflap,upflap}.png
//	UI/{gameover,message}.png
//	UI/Numbers/{0..9}.png
//	sounds/{wing,hit,die,point,swoosh}.wav
//
// Images are scaled on load to the sizes the game expects.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// ErrMissing is returned when an asset file cannot be found or decoded.
var ErrMissing = errors.New("assets: missing asset")

// Sprite sizes in world pixels.
const (
	WorldSize = 520

	BirdW = 40
	BirdH = 30

	PipeW = 52
	PipeH = 320

	GroundW = 336
	GroundH = 112

	DigitW = 24
	DigitH = 36

	BirdFrames = 3
)

// Pack holds every image and sound of the game.
type Pack struct {
	Background *image.RGBA
	Ground     *image.RGBA
	Pipe       *image.RGBA
	Bird       [BirdFrames]*image.RGBA
	Digits     [10]*image.RGBA
	GameOver   *image.RGBA
	Message    *image.RGBA

	// Sounds holds one encoded WAV file per cue.
	Sounds map[core.Cue][]byte
}

// Load reads a pack from dir. An empty dir yields the procedural pack.
func Load(dir string) (*Pack, error) {
	if dir == "" {
		return Procedural()
	}

	p := &Pack{Sounds: make(map[core.Cue][]byte, len(core.AllCues()))}
	var err error

	load := func(dst **image.RGBA, w, h int, parts ...string) {
		if err != nil {
			return
		}
		var img image.Image
		img, err = loadPNG(filepath.Join(append([]string{dir}, parts...)...))
		if err != nil {
			return
		}
		if w == 0 {
			*dst = toRGBA(img)
		} else {
			*dst = Scale(img, w, h)
		}
	}

	load(&p.Background, WorldSize, WorldSize, "Objects", "bg.png")
	load(&p.Ground, 0, 0, "Objects", "base.png")
	load(&p.Pipe, 0, 0, "Objects", "pipe.png")
	for i, name := range []string{"downflap.png", "midflap.png", "upflap.png"} {
		load(&p.Bird[i], BirdW, BirdH, "Objects", name)
	}
	for i := range p.Digits {
		load(&p.Digits[i], 0, 0, "UI", "Numbers", strconv.Itoa(i)+".png")
	}
	load(&p.GameOver, 0, 0, "UI", "gameover.png")
	load(&p.Message, WorldSize, WorldSize, "UI", "message.png")
	if err != nil {
		return nil, err
	}

	for _, cue := range core.AllCues() {
		path := filepath.Join(dir, "sounds", cue.String()+".wav")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMissing, path, err)
		}
		p.Sounds[cue] = data
	}
	return p, nil
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissing, path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrMissing, path, err)
	}
	return img, nil
}
