package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

func start(g *Game, seed int64) (*session.Controller, *session.Driver) {
	c := session.NewController(g, session.WithSeed(seed))
	d := session.NewDriver(c)
	d.Start()
	return c, d
}

// flapEvery presses Primary on every nth tick.
func flapEvery(n int) session.InputSource {
	return func(tick int, _ session.Snapshot) core.InputFrame {
		in := core.NewInputFrame()
		if tick%n == 0 {
			in.Set(core.ActionPrimary)
		}
		return in
	}
}

func TestGameDeterminism(t *testing.T) {
	g1, g2 := New(), New()
	_, d1 := start(g1, 12345)
	_, d2 := start(g2, 12345)

	s1 := d1.Run(16, 20000, flapEvery(22))
	s2 := d2.Run(16, 20000, flapEvery(22))

	if s1.Score != s2.Score || s1.Tick != s2.Tick || s1.Reason != s2.Reason {
		t.Errorf("Run() = %+v vs %+v, expected identical runs", s1, s2)
	}
	if len(g1.st.pipes) != len(g2.st.pipes) {
		t.Fatalf("pipes = %d vs %d", len(g1.st.pipes), len(g2.st.pipes))
	}
	for i := range g1.st.pipes {
		if g1.st.pipes[i] != g2.st.pipes[i] {
			t.Errorf("pipe %d = %+v vs %+v", i, g1.st.pipes[i], g2.st.pipes[i])
		}
	}
}

func TestFirstPipeSpawnsImmediately(t *testing.T) {
	g := New()
	start(g, 1)

	if len(g.st.pipes) != 1 {
		t.Fatalf("pipes after start = %d, expected 1", len(g.st.pipes))
	}
	p := g.st.pipes[0]
	if p.X != g.cfg.World.W+g.cfg.Pipes.Width {
		t.Errorf("first pipe X = %v, expected %v", p.X, g.cfg.World.W+g.cfg.Pipes.Width)
	}
	if p.Gap != 170 {
		t.Errorf("first pipe Gap = %v, expected 170", p.Gap)
	}
	lo := p.Gap/2 + g.cfg.Pipes.EdgePadding
	hi := g.cfg.World.H - p.Gap/2 - g.cfg.Pipes.EdgePadding
	if p.GapY < lo || p.GapY > hi {
		t.Errorf("first pipe GapY = %v, expected within [%v, %v]", p.GapY, lo, hi)
	}
}

func TestFlapAndGravity(t *testing.T) {
	g := New()
	_, d := start(g, 1)
	y0 := g.st.bird.Pos.Y

	d.Step(16, core.NewInputFrame())
	if g.st.bird.Vel.Y <= 0 || g.st.bird.Pos.Y <= y0 {
		t.Errorf("bird after gravity = %+v, expected to fall", g.st.bird)
	}

	flap := core.NewInputFrame()
	flap.Set(core.ActionPrimary)
	d.Step(16, flap)
	expected := g.cfg.Physics.Flap + g.cfg.Physics.Gravity*0.016
	if math.Abs(g.st.bird.Vel.Y-expected) > 1e-9 {
		t.Errorf("Vel.Y after flap = %v, expected %v", g.st.bird.Vel.Y, expected)
	}
}

func TestFallingOutEndsSession(t *testing.T) {
	g := New()
	c, d := start(g, 1)
	snap := d.Run(16, 5000, nil)

	if snap.Status != session.StatusFinished || snap.Reason != session.ReasonBounds {
		t.Errorf("Run() = %v/%v, expected finished by bounds", snap.Status, snap.Reason)
	}
	if c.Snapshot().Score != 0 {
		t.Errorf("Score = %v, expected 0", c.Snapshot().Score)
	}

	// Finished sessions ignore further ticks.
	y := g.st.bird.Pos.Y
	d.Step(16, core.NewInputFrame())
	if g.st.bird.Pos.Y != y {
		t.Errorf("bird moved after finish: %v -> %v", y, g.st.bird.Pos.Y)
	}
}

func TestPipeCollision(t *testing.T) {
	g := New()
	c, d := start(g, 1)

	bird := g.st.bird.Pos
	g.st.pipes = append(g.st.pipes, Pipe{X: bird.X, GapY: 100, Gap: 80})
	d.Step(16, core.NewInputFrame())

	if snap := c.Snapshot(); snap.Status != session.StatusFinished || snap.Reason != session.ReasonCrash {
		t.Errorf("Snapshot() = %v/%v, expected crash", snap.Status, snap.Reason)
	}
}

func TestPassingPipeScores(t *testing.T) {
	g := New()
	c, d := start(g, 1)

	bird := g.st.bird.Pos
	w := g.cfg.Pipes.Width
	g.st.pipes = append(g.st.pipes, Pipe{X: bird.X - w/2 + 2, GapY: bird.Y, Gap: 170})
	d.Step(16, core.NewInputFrame())

	snap := c.Snapshot()
	if snap.Status != session.StatusRunning {
		t.Fatalf("Status = %v, expected running", snap.Status)
	}
	if snap.Score != 1 {
		t.Errorf("Score = %v, expected 1", snap.Score)
	}

	d.Step(16, core.NewInputFrame())
	if got := c.Snapshot().Score; got != 1 {
		t.Errorf("Score after second tick = %v, expected pipe counted once", got)
	}
}

func TestCurrentGap(t *testing.T) {
	tests := []struct {
		name      string
		preset    config.DifficultyPreset
		elapsedMs float64
		expected  float64
	}{
		{name: "start", preset: config.DifficultyNormal, elapsedMs: 0, expected: 170},
		{name: "half window", preset: config.DifficultyNormal, elapsedMs: 30000, expected: 155},
		{name: "saturated", preset: config.DifficultyNormal, elapsedMs: 600000, expected: 140},
		{name: "fixed never narrows", preset: config.DifficultyFixed, elapsedMs: 600000, expected: 170},
		{name: "easy is slower", preset: config.DifficultyEasy, elapsedMs: 45000, expected: 155},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			g.apply(config.DefaultFlappyConfig(), tc.preset)
			if got := g.CurrentGap(tc.elapsedMs); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("CurrentGap(%v) = %v, expected %v", tc.elapsedMs, got, tc.expected)
			}
		})
	}
}

func TestRestartResets(t *testing.T) {
	g := New()
	c, d := start(g, 7)
	d.Run(16, 3000, flapEvery(20))

	c.Restart()
	if len(g.st.pipes) != 1 || g.st.passed != 0 || g.st.dead {
		t.Errorf("state after Restart = %+v", g.st)
	}
	if g.st.bird.Pos.Y != g.cfg.World.H/2 {
		t.Errorf("bird Y after Restart = %v, expected %v", g.st.bird.Pos.Y, g.cfg.World.H/2)
	}
}

func TestRender(t *testing.T) {
	g := New()
	start(g, 1)
	g.st.pipes = append(g.st.pipes, Pipe{X: 480, GapY: 260, Gap: 170})

	screen := core.NewScreen(80, 24)
	vp := core.NewViewport(g.World(), 80, 24, 1)
	g.Render(screen, vp)

	x, y := vp.ToCell(g.st.bird.Pos)
	if screen.Get(x, y) != BirdChar {
		t.Errorf("Get(%d, %d) = %q, expected bird", x, y, screen.Get(x, y))
	}
	px, _ := vp.ToCell(core.V(480, 0))
	if screen.Get(px, 2) != PipeChar {
		t.Errorf("Get(%d, 2) = %q, expected pipe", px, screen.Get(px, 2))
	}
}

func TestFinishFreezesBird(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(g *Game)
		expected session.Reason
	}{
		{name: "falls out", setup: func(*Game) {}, expected: session.ReasonBounds},
		{
			name: "hits pipe",
			setup: func(g *Game) {
				g.st.pipes = append(g.st.pipes, Pipe{X: g.st.bird.Pos.X, GapY: 100, Gap: 80})
			},
			expected: session.ReasonCrash,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			_, d := start(g, 1)
			tc.setup(g)

			snap := d.Run(16, 5000, nil)
			if snap.Reason != tc.expected {
				t.Fatalf("Run() reason = %v, expected %v", snap.Reason, tc.expected)
			}
			if g.st.bird.Vel != (core.Vec{}) {
				t.Errorf("bird Vel after finish = %+v, expected zero", g.st.bird.Vel)
			}
		})
	}
}
