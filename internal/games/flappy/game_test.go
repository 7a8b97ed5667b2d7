package flappy

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

const frameDT = 1.0 / 60

func newTestGame(t *testing.T, precise bool, seed int64) *Game {
	t.Helper()
	v := Variants[0]
	if precise {
		v = Variants[1]
	}
	g := New(v, registry.Deps{Config: config.DefaultFlappyConfig()})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func frame(flap bool) core.InputFrame {
	in := core.NewInputFrame()
	in.DT = frameDT
	if flap {
		in.Set(core.ActionFlap)
	}
	return in
}

// hover keeps the bird oscillating around its height by flapping every 40
// frames, starting with a flap.
func hover(g *Game, frames int) []core.Cue {
	var cues []core.Cue
	for i := 0; i < frames; i++ {
		res := g.Step(frame(i%40 == 0))
		cues = append(cues, res.Cues...)
	}
	return cues
}

// fallToDeath starts a run and lets the bird drop onto the ground.
func fallToDeath(t *testing.T, g *Game) []core.Cue {
	t.Helper()
	var cues []core.Cue
	res := g.Step(frame(true))
	cues = append(cues, res.Cues...)
	for i := 0; i < 600 && g.phase != core.PhaseGameOver; i++ {
		res = g.Step(frame(false))
		cues = append(cues, res.Cues...)
	}
	if g.phase != core.PhaseGameOver {
		t.Fatal("bird never hit the ground")
	}
	return cues
}

func countCue(cues []core.Cue, c core.Cue) int {
	n := 0
	for _, x := range cues {
		if x == c {
			n++
		}
	}
	return n
}

func TestStartState(t *testing.T) {
	g := newTestGame(t, false, 1)

	st := g.State()
	if st.Phase != core.PhaseStart || st.Score != 0 || st.GameOver {
		t.Errorf("initial state = %+v", st)
	}
	if g.bird.X != 100 || g.bird.Y != 260 || g.bird.Velocity != 0 {
		t.Errorf("bird starts at (%g, %g) v=%g", g.bird.X, g.bird.Y, g.bird.Velocity)
	}
	if r := g.bird.Rect(); r != core.NewRect(80, 245, 40, 30) {
		t.Errorf("bird rect = %+v", r)
	}

	// Nothing moves and no pipes spawn before the first flap.
	for i := 0; i < 300; i++ {
		g.Step(frame(false))
	}
	if g.bird.Y != 260 || g.pipes.Len() != 0 {
		t.Errorf("start screen should be idle: y=%g pipes=%d", g.bird.Y, g.pipes.Len())
	}
}

func TestFirstFlapStartsWithoutCue(t *testing.T) {
	g := newTestGame(t, false, 1)

	res := g.Step(frame(true))
	if res.State.Phase != core.PhasePlaying {
		t.Fatalf("phase = %s, expected playing", res.State.Phase)
	}
	if len(res.Cues) != 0 {
		t.Errorf("starting flap emitted cues %v", res.Cues)
	}
	// Impulse then one integration step.
	want := -400 + 1200*frameDT
	if math.Abs(g.bird.Velocity-want) > 1e-9 {
		t.Errorf("velocity = %g, expected %g", g.bird.Velocity, want)
	}

	res = g.Step(frame(true))
	if !slices.Equal(res.Cues, []core.Cue{core.CueFlap}) {
		t.Errorf("flap while playing cues = %v, expected [flap]", res.Cues)
	}
}

func TestImpulseSetsExactStrength(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	for _, v := range []float64{-900, -400, 0, 250, 1500} {
		b := NewBird(cfg)
		b.Velocity = v
		b.Flap()
		if b.Velocity != cfg.Physics.FlapStrength {
			t.Errorf("Flap from %g: velocity = %g, expected %g", v, b.Velocity, cfg.Physics.FlapStrength)
		}
	}
}

func TestVelocityMonotonicBetweenImpulses(t *testing.T) {
	b := NewBird(config.DefaultFlappyConfig())
	b.Flap()

	prevV, prevY := b.Velocity, b.Y
	for i := 0; i < 60; i++ {
		b.Update(frameDT)
		if b.Velocity <= prevV {
			t.Fatalf("frame %d: velocity %g did not increase from %g", i, b.Velocity, prevV)
		}
		// Semi-implicit Euler: position uses the updated velocity.
		if want := prevY + b.Velocity*frameDT; math.Abs(b.Y-want) > 1e-9 {
			t.Fatalf("frame %d: y = %g, expected %g", i, b.Y, want)
		}
		prevV, prevY = b.Velocity, b.Y
	}
}

func TestRotationClamped(t *testing.T) {
	b := NewBird(config.DefaultFlappyConfig())

	tests := []struct {
		velocity float64
		want     float64
	}{
		{-400, 20},
		{-1000, 25},
		{0, 0},
		{600, -30},
		{5000, -90},
	}
	for _, tt := range tests {
		b.Velocity = tt.velocity - 1200*frameDT
		b.Update(frameDT)
		if math.Abs(b.Rotation-tt.want) > 1e-9 {
			t.Errorf("velocity %g: rotation = %g, expected %g", tt.velocity, b.Rotation, tt.want)
		}
	}
}

func TestAnimationCycles(t *testing.T) {
	b := NewBird(config.DefaultFlappyConfig())
	var frames []int
	for i := 0; i < 5; i++ {
		b.Animate(0.2)
		frames = append(frames, b.Frame)
	}
	if !slices.Equal(frames, []int{1, 2, 0, 1, 2}) {
		t.Errorf("frames = %v", frames)
	}

	b.Animate(0.1)
	if b.Frame != 2 {
		t.Errorf("half interval should not advance, frame = %d", b.Frame)
	}
}

func TestSpawnOnlyWhilePlaying(t *testing.T) {
	g := newTestGame(t, false, 7)

	// Idle on the start screen for several spawn intervals.
	for i := 0; i < 200; i++ {
		g.Step(frame(false))
	}
	if g.pipes.Len() != 0 {
		t.Fatalf("pipes spawned on start screen: %d", g.pipes.Len())
	}

	// The spawn clock kept running; the first pipe comes when it next ticks.
	remaining := g.cfg.Pipes.SpawnInterval - g.spawnTimer
	before := int(remaining/frameDT) - 2

	hover(g, before)
	if g.pipes.Len() != 0 {
		t.Errorf("pipe spawned too early: %d", g.pipes.Len())
	}
	hover(g, 4)
	if g.pipes.Len() != 1 {
		t.Errorf("expected one pipe after a spawn interval, got %d", g.pipes.Len())
	}
}

func TestLongFrameSpawnsOnePipe(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	// A still bird and still pipes, so only the spawn clock matters.
	cfg.Physics.Gravity = 0
	cfg.Physics.FlapStrength = 0
	cfg.Pipes.Speed = 0
	g := New(Variants[0], registry.Deps{Config: cfg})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 5})

	start := core.NewInputFrame()
	start.Set(core.ActionFlap)
	g.Step(start)

	long := core.NewInputFrame()
	long.DT = 3.2 * cfg.Pipes.SpawnInterval
	res := g.Step(long)

	if res.State.Phase != core.PhasePlaying {
		t.Fatalf("phase = %v, expected playing", res.State.Phase)
	}
	if g.pipes.Len() != 1 {
		t.Errorf("pipes after a %gs frame = %d, expected 1", long.DT, g.pipes.Len())
	}
	if want := 0.2 * cfg.Pipes.SpawnInterval; math.Abs(g.spawnTimer-want) > 1e-9 {
		t.Errorf("spawn clock = %g, expected %g", g.spawnTimer, want)
	}
}

func TestPipeFactoryGeometry(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	f := NewPipeFactory(cfg, newRand(3), nil)

	for i := 0; i < 500; i++ {
		p := f.New()
		if p.TopHeight < 50 || p.TopHeight > 208 {
			t.Fatalf("top height %d outside [50, 208]", p.TopHeight)
		}
		if p.BottomY != p.TopHeight+150 {
			t.Fatalf("gap = %d, expected 150", p.BottomY-p.TopHeight)
		}
		if p.BottomY+p.BottomHeight != cfg.GroundY() {
			t.Fatalf("bottom pipe ends at %d, expected ground %d", p.BottomY+p.BottomHeight, cfg.GroundY())
		}
		if p.CenterX() != 570 {
			t.Fatalf("centre x = %g, expected 570", p.CenterX())
		}
		if p.TopMask != nil || p.BottomMask != nil {
			t.Fatal("masks built without a sprite")
		}
	}
}

func TestScoredLatch(t *testing.T) {
	var l ObstacleList
	l.Add(&Pipe{X: 60, W: 52}) // centre 86
	l.Add(&Pipe{X: 90, W: 52}) // centre 116

	if n := l.Score(100); n != 1 {
		t.Fatalf("Score(100) = %d, expected 1", n)
	}
	for i := 0; i < 5; i++ {
		if n := l.Score(100); n != 0 {
			t.Fatalf("pipe scored twice: %d", n)
		}
	}

	// Centre exactly at the bird is not yet past.
	l.Advance(16)
	if n := l.Score(100); n != 0 {
		t.Errorf("centre equal to bird x scored")
	}
	l.Advance(0.5)
	if n := l.Score(100); n != 1 {
		t.Errorf("second pipe should score once past, got %d", n)
	}
}

func TestPruneExactlyOnExit(t *testing.T) {
	var l ObstacleList
	l.Add(&Pipe{X: -51, W: 52}) // right edge 1
	l.Add(&Pipe{X: 200, W: 52})

	l.Prune()
	if l.Len() != 2 {
		t.Fatalf("pipe with right edge 1 removed early")
	}

	l.Advance(1) // right edge 0
	l.Prune()
	if l.Len() != 1 || l.Pipes()[0].X != 199 {
		t.Errorf("pipe with right edge 0 should be removed, have %d", l.Len())
	}

	l.Clear()
	if l.Len() != 0 {
		t.Error("Clear left pipes behind")
	}
}

func TestGroundCollisionWithoutPipes(t *testing.T) {
	for _, precise := range []bool{false, true} {
		g := newTestGame(t, precise, 1)
		cues := fallToDeath(t, g)

		if g.pipes.Len() != 0 {
			t.Fatalf("precise=%v: expected no pipes yet, got %d", precise, g.pipes.Len())
		}
		if g.bird.Rect().Bottom() < g.cfg.GroundY() {
			t.Errorf("precise=%v: died above ground at bottom %d", precise, g.bird.Rect().Bottom())
		}
		want := []core.Cue{core.CueHit, core.CueDie, core.CueSwoosh}
		if !slices.Equal(cues, want) {
			t.Errorf("precise=%v: cues = %v, expected %v", precise, cues, want)
		}
	}
}

func TestCeilingCollision(t *testing.T) {
	g := newTestGame(t, false, 1)
	for i := 0; i < 300 && g.phase != core.PhaseGameOver; i++ {
		g.Step(frame(i%8 == 0))
	}
	if g.phase != core.PhaseGameOver {
		t.Fatal("flapping constantly should hit the top")
	}
	if g.bird.Rect().Y > 0 {
		t.Errorf("died with top at %d", g.bird.Rect().Y)
	}
}

func TestSwooshOncePerGameOver(t *testing.T) {
	g := newTestGame(t, false, 1)
	fallToDeath(t, g)

	var cues []core.Cue
	for i := 0; i < 120; i++ {
		cues = append(cues, g.Step(frame(false)).Cues...)
	}
	if len(cues) != 0 {
		t.Errorf("game over screen kept emitting %v", cues)
	}

	// A second death plays the swoosh again.
	cues = fallToDeath(t, g)
	if countCue(cues, core.CueSwoosh) != 1 {
		t.Errorf("second game over cues = %v", cues)
	}
}

func TestRestartResets(t *testing.T) {
	g := newTestGame(t, false, 5)
	hover(g, 120)
	if g.pipes.Len() == 0 {
		t.Fatal("expected pipes while playing")
	}
	g.score = 3
	for i := 0; i < 600 && g.phase != core.PhaseGameOver; i++ {
		g.Step(frame(false))
	}
	if g.phase != core.PhaseGameOver {
		t.Fatal("expected game over")
	}

	res := g.Step(frame(true))
	if res.State.Phase != core.PhasePlaying || res.State.Score != 0 {
		t.Errorf("after restart state = %+v", res.State)
	}
	if len(res.Cues) != 0 {
		t.Errorf("restart emitted %v", res.Cues)
	}
	if g.pipes.Len() != 0 {
		t.Errorf("restart kept %d pipes", g.pipes.Len())
	}
	if g.swooshPlayed {
		t.Error("restart should clear the swoosh latch")
	}
	// Velocity zero at restart, then one frame of gravity.
	if want := 1200 * frameDT; math.Abs(g.bird.Velocity-want) > 1e-9 {
		t.Errorf("velocity after restart = %g, expected %g", g.bird.Velocity, want)
	}
	if want := 260 + 1200*frameDT*frameDT; math.Abs(g.bird.Y-want) > 1e-9 {
		t.Errorf("y after restart = %g, expected %g", g.bird.Y, want)
	}
}

func TestHighScoreTracking(t *testing.T) {
	g := newTestGame(t, false, 1)
	g.SetHighScore(5)

	g.Step(frame(true))
	g.score = 7
	for i := 0; i < 600 && g.phase != core.PhaseGameOver; i++ {
		res := g.Step(frame(false))
		if res.Finished {
			if !res.State.NewRecord || res.State.HighScore != 7 {
				t.Errorf("finished state = %+v, expected new record 7", res.State)
			}
		}
	}

	g.Step(frame(true))
	g.score = 2
	fallLoop(g)
	if st := g.State(); st.NewRecord || st.HighScore != 7 {
		t.Errorf("worse run changed record: %+v", st)
	}
}

func fallLoop(g *Game) {
	for i := 0; i < 600 && g.phase != core.PhaseGameOver; i++ {
		g.Step(frame(false))
	}
}

// autopilot aims for the centre of the next gap.
func autopilot(g *Game) bool {
	target := g.cfg.Bird.Y
	birdLeft := float64(g.bird.Rect().X)
	for _, p := range g.pipes.Pipes() {
		if p.Right() > birdLeft {
			target = float64(p.TopHeight) + float64(g.cfg.Pipes.Gap)/2
			break
		}
	}
	return g.bird.Y > target+20 && g.bird.Velocity >= 0
}

func TestLongRunScoresAndStaysBounded(t *testing.T) {
	for _, precise := range []bool{false, true} {
		g := newTestGame(t, precise, 99)
		g.Step(frame(true))

		var cues []core.Cue
		for i := 0; i < 60*20; i++ {
			res := g.Step(frame(autopilot(g)))
			cues = append(cues, res.Cues...)
			if g.pipes.Len() > 3 {
				t.Fatalf("precise=%v: obstacle list grew to %d", precise, g.pipes.Len())
			}
			if res.State.GameOver {
				t.Fatalf("precise=%v: autopilot crashed at frame %d with score %d", precise, i, res.State.Score)
			}
		}

		score := g.State().Score
		if score < 10 {
			t.Errorf("precise=%v: score %d after 20s, expected at least 10", precise, score)
		}
		if n := countCue(cues, core.CuePoint); n != score {
			t.Errorf("precise=%v: %d point cues for score %d", precise, n, score)
		}
	}
}

func TestSeededRunsMatch(t *testing.T) {
	run := func() []PipeView {
		g := newTestGame(t, false, 12345)
		hover(g, 200)
		return g.Snapshot().Pipes
	}
	a, b := run(), run()
	if !slices.Equal(a, b) {
		t.Errorf("same seed produced different pipes:\n%v\n%v", a, b)
	}
}

func TestScrollRunsInEveryPhase(t *testing.T) {
	g := newTestGame(t, false, 1)
	g.Step(frame(false))
	if g.background.Offset >= 0 || g.ground.Offset >= 0 {
		t.Errorf("scroll idle on start screen: bg=%g ground=%g", g.background.Offset, g.ground.Offset)
	}
	if math.Abs(g.ground.Offset+300*frameDT) > 1e-9 {
		t.Errorf("ground offset = %g, expected %g", g.ground.Offset, -300*frameDT)
	}
}

func TestScrollerWraps(t *testing.T) {
	s := Scroller{Speed: 300, TileW: 336}
	for i := 0; i < 1000; i++ {
		s.Update(frameDT)
		if s.Offset > 0 || s.Offset <= -336 {
			t.Fatalf("offset %g out of (-336, 0]", s.Offset)
		}
	}

	xs := s.Tiles(520)
	if len(xs) != 4 {
		t.Errorf("Tiles(520) = %v, expected 4 tiles", xs)
	}
	if xs[0] > 0 || xs[len(xs)-1]+336 < 520 {
		t.Errorf("tiles %v do not cover the screen", xs)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, false, 1)
	g.SetHighScore(12)
	s := core.NewScreen(60, 24)

	g.Render(s)
	if !strings.Contains(s.String(), "GET READY") {
		t.Error("start screen missing banner")
	}

	hover(g, 120)
	g.Render(s)
	out := s.String()
	if !strings.Contains(out, "Best: 12") {
		t.Error("playing screen missing best score")
	}
	if !strings.ContainsRune(out, BirdChar) {
		t.Error("bird not drawn")
	}

	fallLoop(g)
	g.Render(s)
	if !strings.Contains(s.String(), "GAME OVER") {
		t.Error("game over banner missing")
	}

	// Degenerate sizes must not panic.
	g.Render(core.NewScreen(0, 0))
	g.Render(core.NewScreen(3, 2))
}

func TestRenderKeepsBannerOnNarrowScreen(t *testing.T) {
	g := newTestGame(t, false, 1)
	s := core.NewScreen(14, 4)

	g.Render(s)
	if got := s.Get(0, 0); got != '┌' {
		t.Errorf("banner corner = %q, expected the box pinned to the top-left", got)
	}
	if !strings.Contains(s.Row(1), "GET") {
		t.Errorf("banner title clipped away: %q", s.Row(1))
	}
}

func TestRegisteredVariants(t *testing.T) {
	for _, v := range Variants {
		game, err := registry.Create(v.ID, registry.Deps{})
		if err != nil {
			t.Fatalf("Create(%s): %v", v.ID, err)
		}
		if game.ID() != v.ID {
			t.Errorf("ID() = %s, expected %s", game.ID(), v.ID)
		}
	}
	if _, ok := interface{}(&Game{}).(registry.Game); !ok {
		t.Error("Game does not implement registry.Game")
	}
}
