// Package flappy implements a Flappy Bird-style game.
// The player flaps a bird through gaps between scrolling pipes; touching a
// pipe, the ground or the top of the world ends the run.
package flappy

import (
	"image"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/assets"
	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

// Variant selects the collision policy and sprite behaviour.
type Variant struct {
	ID          string
	Title       string
	Description string

	// Precise enables pixel-mask collision, bird rotation and wing animation.
	Precise bool
}

// Variants lists every registered flavour of the game.
var Variants = []Variant{
	{
		ID:          "classic",
		Title:       "Flappy Bird",
		Description: "Box collision, static sprite",
	},
	{
		ID:          "precise",
		Title:       "Flappy Bird (precise)",
		Description: "Pixel-mask collision, rotating and flapping sprite",
		Precise:     true,
	},
}

// DefaultVariant is used when none is named.
const DefaultVariant = "classic"

// Game implements the Flappy Bird simulation.
type Game struct {
	variant Variant
	cfg     config.FlappyConfig
	pack    *assets.Pack
	runtime core.RuntimeConfig

	bird       *Bird
	factory    *PipeFactory
	pipes      ObstacleList
	collider   Collider
	background Scroller
	ground     Scroller

	phase        core.Phase
	score        int
	highScore    int
	newRecord    bool
	swooshPlayed bool
	spawnTimer   float64 // seconds since the last spawn tick
}

// New creates a game for the variant. Missing dependencies fall back to
// defaults: the default configuration and the procedural sprites.
func New(v Variant, deps registry.Deps) *Game {
	if deps.Config == (config.FlappyConfig{}) {
		deps.Config = config.DefaultFlappyConfig()
	}
	if deps.Assets == nil {
		deps.Assets = assets.Sprites()
	}

	g := &Game{
		variant: v,
		cfg:     deps.Config,
		pack:    deps.Assets,
	}
	g.background = Scroller{Speed: g.cfg.Scroll.Background, TileW: g.pack.Background.Bounds().Dx()}
	g.ground = Scroller{Speed: g.cfg.Scroll.Ground, TileW: g.pack.Ground.Bounds().Dx()}

	if v.Precise {
		frames := make([]image.Image, len(g.pack.Bird))
		for i, f := range g.pack.Bird {
			frames[i] = f
		}
		g.collider = NewMaskCollider(g.cfg.GroundY(), frames, g.cfg.Pipes.AlphaThreshold)
	} else {
		g.collider = RectCollider{GroundY: g.cfg.GroundY()}
	}

	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Config returns the constants the game runs with.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// Assets returns the sprite pack.
func (g *Game) Assets() *assets.Pack {
	return g.pack
}

// SetHighScore seeds the best score known to the game.
func (g *Game) SetHighScore(score int) {
	g.highScore = max(score, 0)
}

// Reset returns to the start screen with a fresh random source.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc

	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var sprite *image.RGBA
	if g.variant.Precise {
		sprite = g.pack.Pipe
	}
	g.factory = NewPipeFactory(g.cfg, rand.New(rand.NewSource(seed)), sprite)

	if g.bird == nil {
		g.bird = NewBird(g.cfg)
	}
	g.restart()
	g.phase = core.PhaseStart
	g.spawnTimer = 0
}

// restart clears the run: bird at rest at the start, no pipes, score zero.
func (g *Game) restart() {
	g.bird.Reset()
	g.pipes.Clear()
	g.score = 0
	g.newRecord = false
	g.swooshPlayed = false
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	dt := max(in.DT, 0)
	var res core.StepResult

	// Cosmetic motion runs in every phase.
	g.bird.Animate(dt)
	g.background.Update(dt)
	g.ground.Update(dt)

	// The spawn clock keeps ticking outside play; only playing frames
	// turn a tick into a pipe. A frame spanning several ticks spawns once,
	// since every pipe of a step would start at the same x.
	g.spawnTimer += dt
	if g.spawnTimer >= g.cfg.Pipes.SpawnInterval {
		g.spawnTimer = math.Mod(g.spawnTimer, g.cfg.Pipes.SpawnInterval)
		if g.phase == core.PhasePlaying {
			g.pipes.Add(g.factory.New())
		}
	}

	if in.Has(core.ActionFlap) {
		switch g.phase {
		case core.PhaseStart:
			g.phase = core.PhasePlaying
			g.bird.Flap()
		case core.PhasePlaying:
			g.bird.Flap()
			res.Cues = append(res.Cues, core.CueFlap)
		case core.PhaseGameOver:
			g.restart()
			g.phase = core.PhasePlaying
		}
	}

	if g.phase == core.PhasePlaying {
		g.bird.Update(dt)

		g.pipes.Advance(g.cfg.Pipes.Speed * dt)
		for range g.pipes.Score(g.bird.X) {
			g.score++
			res.Cues = append(res.Cues, core.CuePoint)
		}
		g.pipes.Prune()

		if !g.collider.Alive(g.bird, g.pipes.Pipes()) {
			g.phase = core.PhaseGameOver
			res.Cues = append(res.Cues, core.CueHit, core.CueDie)
			res.Finished = true
			if g.score > g.highScore {
				g.highScore = g.score
				g.newRecord = true
			}
		}
	}

	if g.phase == core.PhaseGameOver && !g.swooshPlayed {
		g.swooshPlayed = true
		res.Cues = append(res.Cues, core.CueSwoosh)
	}

	res.State = g.State()
	return res
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:     g.phase,
		Score:     g.score,
		HighScore: g.highScore,
		GameOver:  g.phase == core.PhaseGameOver,
		NewRecord: g.newRecord,
	}
}

// PipeView is the drawable part of a pipe pair.
type PipeView struct {
	X            float64
	W            int
	TopHeight    int
	BottomY      int
	BottomHeight int
}

// Snapshot is everything a front end needs to draw one frame.
type Snapshot struct {
	State core.GameState

	BirdX, BirdY float64 // centre
	BirdFrame    int
	BirdRotation float64 // degrees counter-clockwise; zero unless precise

	Pipes []PipeView

	BackgroundOffset float64
	GroundOffset     float64
	GroundY          int
}

// Snapshot captures the current frame.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		State:            g.State(),
		BirdX:            g.bird.X,
		BirdY:            g.bird.Y,
		BackgroundOffset: g.background.Offset,
		GroundOffset:     g.ground.Offset,
		GroundY:          g.cfg.GroundY(),
		Pipes:            make([]PipeView, 0, g.pipes.Len()),
	}
	if g.variant.Precise {
		s.BirdFrame = g.bird.Frame
		s.BirdRotation = g.bird.Rotation
	}
	for _, p := range g.pipes.Pipes() {
		s.Pipes = append(s.Pipes, PipeView{
			X:            p.X,
			W:            p.W,
			TopHeight:    p.TopHeight,
			BottomY:      p.BottomY,
			BottomHeight: p.BottomHeight,
		})
	}
	return s
}

// Register every variant with the registry.
func init() {
	for _, v := range Variants {
		registry.Register(registry.GameInfo{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
		}, func(deps registry.Deps) registry.Game {
			return New(v, deps)
		})
	}
}
