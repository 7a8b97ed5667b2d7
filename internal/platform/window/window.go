// Package window is the graphical front end: an Ebitengine window the size
// of the configured world, drawing the sprite pack 1:1.
package window

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/vovakirdan/flappy-arcade/internal/assets"
	"github.com/vovakirdan/flappy-arcade/internal/audio"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
	"github.com/vovakirdan/flappy-arcade/internal/platform/results"
)

const (
	scoreY   = 80
	bannerDY = -40 // game-over banner sits above the centre
	bestX    = 20
	bestY    = 20
	fontSize = 14
)

// Options configure the window.
type Options struct {
	Sink   results.Sink
	Audio  audio.Player // nil is silent
	Logger *log.Logger
	TPS    int
	Title  string
}

type sprites struct {
	background *ebiten.Image
	ground     *ebiten.Image
	pipe       *ebiten.Image
	pipeTop    *ebiten.Image
	bird       [assets.BirdFrames]*ebiten.Image
	digits     [10]*ebiten.Image
	digitW     [10]int
	gameOver   *ebiten.Image
	message    *ebiten.Image
}

func newSprites(p *assets.Pack) sprites {
	s := sprites{
		background: ebiten.NewImageFromImage(p.Background),
		ground:     ebiten.NewImageFromImage(p.Ground),
		pipe:       ebiten.NewImageFromImage(p.Pipe),
		pipeTop:    ebiten.NewImageFromImage(assets.FlipV(p.Pipe)),
		gameOver:   ebiten.NewImageFromImage(p.GameOver),
		message:    ebiten.NewImageFromImage(p.Message),
	}
	for i, f := range p.Bird {
		s.bird[i] = ebiten.NewImageFromImage(f)
	}
	for i, d := range p.Digits {
		s.digits[i] = ebiten.NewImageFromImage(d)
		s.digitW[i] = d.Bounds().Dx()
	}
	return s
}

// Game adapts a flappy.Game to ebiten.Game.
type Game struct {
	game    *flappy.Game
	opts    Options
	sprites sprites
	face    *text.GoTextFace
	input   core.InputFrame
	w, h    int // logical screen, the configured world
}

// New prepares the window front end. The game keeps its own state; the
// window only feeds input and draws snapshots.
func New(game *flappy.Game, opts Options) (*Game, error) {
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.TPS <= 0 {
		opts.TPS = ebiten.DefaultTPS
	}
	if opts.Title == "" {
		opts.Title = "Flappy Bird"
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.PressStart2P_ttf))
	if err != nil {
		return nil, fmt.Errorf("window: font: %w", err)
	}

	cfg := game.Config()
	if err := game.Assets().Fits(cfg); err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}

	game.SetHighScore(opts.Sink.Best())
	return &Game{
		game:    game,
		opts:    opts,
		sprites: newSprites(game.Assets()),
		face:    &text.GoTextFace{Source: src, Size: fontSize},
		input:   core.NewInputFrame(),
		w:       cfg.World.Width,
		h:       cfg.World.Height,
	}, nil
}

func flapPressed() bool {
	for _, k := range []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter, ebiten.KeyArrowUp, ebiten.KeyW} {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// Update advances the simulation by one tick of 1/TPS seconds.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.input.Clear()
	if flapPressed() {
		g.input.Set(core.ActionFlap)
	}
	g.input.DT = 1 / float64(ebiten.TPS())

	res := g.game.Step(g.input)
	for _, cue := range res.Cues {
		g.opts.Audio.Play(cue)
	}
	if res.Finished {
		best := g.opts.Sink.Record(g.game.ID(), res.State.Score)
		if g.opts.Sink.Keeper != nil {
			g.game.SetHighScore(best)
		}
	}
	return nil
}

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.game.Snapshot()
	sp := g.sprites

	for _, x := range tileXs(snap.BackgroundOffset, sp.background.Bounds().Dx(), g.w) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x, 0)
		screen.DrawImage(sp.background, op)
	}

	for _, p := range snap.Pipes {
		g.drawPipe(screen, p)
	}

	for _, x := range tileXs(snap.GroundOffset, sp.ground.Bounds().Dx(), g.w) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x, float64(snap.GroundY))
		screen.DrawImage(sp.ground, op)
	}

	g.drawBird(screen, snap)

	switch snap.State.Phase {
	case core.PhaseStart:
		b := sp.message.Bounds()
		x, y := centred(g.w/2, g.h/2, b.Dx(), b.Dy())
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x, y)
		screen.DrawImage(sp.message, op)

	case core.PhasePlaying:
		g.drawScore(screen, snap.State.Score)
		g.drawBest(screen, snap.State.HighScore)

	case core.PhaseGameOver:
		b := sp.gameOver.Bounds()
		x, y := centred(g.w/2, g.h/2+bannerDY, b.Dx(), b.Dy())
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x, y)
		screen.DrawImage(sp.gameOver, op)
	}
}

// drawPipe draws both halves, stretching the sprite when a half is taller
// than it.
func (g *Game) drawPipe(screen *ebiten.Image, p flappy.PipeView) {
	b := g.sprites.pipe.Bounds()
	sx := float64(p.W) / float64(b.Dx())
	h := float64(b.Dy())

	top := &ebiten.DrawImageOptions{}
	sy := math.Max(1, float64(p.TopHeight)/h)
	top.GeoM.Scale(sx, sy)
	top.GeoM.Translate(p.X, float64(p.TopHeight)-h*sy)
	screen.DrawImage(g.sprites.pipeTop, top)

	bottom := &ebiten.DrawImageOptions{}
	bottom.GeoM.Scale(sx, math.Max(1, float64(p.BottomHeight)/h))
	bottom.GeoM.Translate(p.X, float64(p.BottomY))
	screen.DrawImage(g.sprites.pipe, bottom)
}

// drawBird draws the current frame rotated about its centre. Rotation is
// counter-clockwise in world terms, which is negative for GeoM.
func (g *Game) drawBird(screen *ebiten.Image, snap flappy.Snapshot) {
	img := g.sprites.bird[max(snap.BirdFrame, 0)%len(g.sprites.bird)]
	b := img.Bounds()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Rotate(-snap.BirdRotation * math.Pi / 180)
	op.GeoM.Translate(snap.BirdX, snap.BirdY)
	if snap.BirdRotation != 0 {
		op.Filter = ebiten.FilterLinear
	}
	screen.DrawImage(img, op)
}

func (g *Game) drawScore(screen *ebiten.Image, score int) {
	digits, xs := digitXs(score, g.sprites.digitW, g.w)
	for i, d := range digits {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(xs[i]), scoreY)
		screen.DrawImage(g.sprites.digits[d], op)
	}
}

func (g *Game) drawBest(screen *ebiten.Image, best int) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(bestX, bestY)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, fmt.Sprintf("Best: %d", best), g.face, op)
}

// Layout fixes the logical screen to the world size; Ebitengine scales it to
// the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.w, g.h
}

// Run opens the window and blocks until it is closed.
func Run(game *flappy.Game, opts Options) error {
	g, err := New(game, opts)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(g.w, g.h)
	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetTPS(g.opts.TPS)
	if icon := game.Assets().Bird[1]; icon != nil {
		ebiten.SetWindowIcon([]image.Image{icon})
	}

	g.opts.Logger.Info("window opened", "variant", game.ID(), "tps", g.opts.TPS)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
