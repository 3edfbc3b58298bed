package golf

import (
	"math"
	"testing"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

func start(g *Game, seed int64) (*session.Controller, *session.Driver, *session.Recorder) {
	rec := &session.Recorder{}
	c := session.NewController(g, session.WithSeed(seed), session.WithEmitter(rec))
	d := session.NewDriver(c)
	d.Start()
	return c, d, rec
}

func TestLayoutBounds(t *testing.T) {
	cfg := config.DefaultGolfConfig()
	for seed := int64(1); seed <= 200; seed++ {
		s := layout(core.NewRNG(seed), cfg)

		if x := s.ball.Pos.X; x < float64(cfg.Ball.MinX) || x > float64(cfg.Ball.MaxX) {
			t.Fatalf("seed %d: ball X = %v out of range", seed, x)
		}
		if y := s.ball.Pos.Y; y < 120 || y > cfg.World.H-120 {
			t.Fatalf("seed %d: ball Y = %v out of range", seed, y)
		}
		if x := s.cup.C.X; x < cfg.World.W*cfg.Cup.MinXFrac || x > cfg.World.W-float64(cfg.Cup.RightMargin) {
			t.Fatalf("seed %d: cup X = %v out of range", seed, x)
		}
		if len(s.blocks) > cfg.Blocks.Max {
			t.Fatalf("seed %d: %d blocks, expected at most %d", seed, len(s.blocks), cfg.Blocks.Max)
		}
		for _, b := range s.blocks {
			if d := b.C.Dist(s.cup.C); d < cfg.Blocks.CupClearance {
				t.Fatalf("seed %d: block %v is %v from the cup", seed, b.C, d)
			}
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	cfg := config.DefaultGolfConfig()
	a := layout(core.NewRNG(42), cfg)
	b := layout(core.NewRNG(42), cfg)

	if a.ball != b.ball || a.cup != b.cup || len(a.blocks) != len(b.blocks) {
		t.Errorf("layout(42) differs: %+v vs %+v", a, b)
	}
}

func drag(from, to core.Vec) (core.InputFrame, core.InputFrame) {
	press := core.NewInputFrame()
	press.Pointer = from
	press.Pressed = true
	press.PointerDown = true

	release := core.NewInputFrame()
	release.Pointer = to
	release.Released = true
	return press, release
}

func TestHoleInOne(t *testing.T) {
	g := New()
	c, d, rec := start(g, 8)

	g.st.blocks = nil
	g.st.ball.Pos = g.st.cup.C.Sub(core.V(100, 0))

	press, release := drag(g.st.ball.Pos, g.st.ball.Pos.Sub(core.V(40, 0)))
	d.Step(16, press)
	d.Step(16, release)

	if !g.st.shot {
		t.Fatal("shot should have been taken")
	}
	if g.st.ball.Vel.X <= 0 {
		t.Errorf("Vel = %v, expected the ball to travel right", g.st.ball.Vel)
	}
	if rec.Count("strokes") != 1 {
		t.Errorf("strokes events = %d, expected 1", rec.Count("strokes"))
	}

	snap := d.Run(16, 5000, nil)
	if snap.Reason != session.ReasonWin {
		t.Fatalf("Run() reason = %v, expected win", snap.Reason)
	}
	if c.Snapshot().Score != 1 {
		t.Errorf("Score = %v, expected 1", c.Snapshot().Score)
	}
	res, ok := rec.Last("result").(session.ResultEvent)
	if !ok || res.Outcome != session.ReasonWin {
		t.Errorf("Last(result) = %v, expected win", rec.Last("result"))
	}
}

func TestWeakShotLoses(t *testing.T) {
	g := New()
	c, d, rec := start(g, 3)

	g.st.blocks = nil
	g.st.ball.Pos = core.V(100, g.cfg.World.H/2)

	in := core.NewInputFrame()
	in.Set(core.ActionUp)
	in.Set(core.ActionPrimary)
	d.Step(16, in)

	if !g.st.shot {
		t.Fatal("keyboard shot should have been taken")
	}

	snap := d.Run(16, 10000, nil)
	if snap.Reason != session.ReasonLose {
		t.Fatalf("Run() reason = %v, expected lose", snap.Reason)
	}
	if snap.ElapsedMs < g.cfg.Physics.GraceMs {
		t.Errorf("finished at %vms, expected after the %vms grace", snap.ElapsedMs, g.cfg.Physics.GraceMs)
	}
	if c.Snapshot().Score != 0 {
		t.Errorf("Score = %v, expected 0", c.Snapshot().Score)
	}
	if res, ok := rec.Last("result").(session.ResultEvent); !ok || res.Outcome != session.ReasonLose {
		t.Errorf("Last(result) = %v, expected lose", rec.Last("result"))
	}
}

func TestShortPullIgnored(t *testing.T) {
	g := New()
	_, d, _ := start(g, 3)

	press, release := drag(g.st.ball.Pos, g.st.ball.Pos.Sub(core.V(5, 5)))
	d.Step(16, press)
	d.Step(16, release)

	if g.st.shot {
		t.Error("a pull under the minimum should not shoot")
	}
	if g.st.aim != (core.Vec{}) {
		t.Errorf("aim = %v after ignored pull, expected zero", g.st.aim)
	}
}

func TestGrabRadius(t *testing.T) {
	g := New()
	_, d, _ := start(g, 3)

	far := g.st.ball.Pos.Add(core.V(g.cfg.Ball.Radius*3, 0))
	press, release := drag(far, far.Sub(core.V(80, 0)))
	d.Step(16, press)
	d.Step(16, release)

	if g.st.shot {
		t.Error("a drag starting outside the grab radius should not shoot")
	}
}

func TestPullClampedPerAxis(t *testing.T) {
	g := New()
	_, d, _ := start(g, 3)

	press, _ := drag(g.st.ball.Pos, g.st.ball.Pos)
	d.Step(16, press)

	move := core.NewInputFrame()
	move.Pointer = g.st.ball.Pos.Sub(core.V(500, 10))
	move.PointerDown = true
	d.Step(16, move)

	if got := g.Pull(); got.X != -g.cfg.Shot.MaxPull || got.Y != -10 {
		t.Errorf("Pull() = %v, expected (-%v, -10)", got, g.cfg.Shot.MaxPull)
	}
}

func TestBounceBox(t *testing.T) {
	box := core.Box{C: core.V(100, 100), W: 70, H: 20}

	tests := []struct {
		name  string
		ball  core.Body
		check func(core.Body) bool
	}{
		{
			name:  "left face reflects X",
			ball:  core.Body{Pos: core.V(60, 100), Vel: core.V(200, 0)},
			check: func(b core.Body) bool { return math.Abs(b.Vel.X+80) < 1e-9 && b.Pos.X == 51 },
		},
		{
			name:  "top face reflects Y",
			ball:  core.Body{Pos: core.V(100, 80), Vel: core.V(0, 100)},
			check: func(b core.Body) bool { return math.Abs(b.Vel.Y+40) < 1e-9 && b.Pos.Y == 76 },
		},
		{
			name:  "clear of the box",
			ball:  core.Body{Pos: core.V(0, 0), Vel: core.V(10, 10)},
			check: func(b core.Body) bool { return b.Vel == core.V(10, 10) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := bounceBox(tc.ball, 14, box, 0.4); !tc.check(got) {
				t.Errorf("bounceBox() = %+v", got)
			}
		})
	}
}

func TestWalls(t *testing.T) {
	b := walls(core.Body{Pos: core.V(-5, 300), Vel: core.V(-100, 0)}, 14, 960, 520, 0.4)
	if b.Pos.X != 14 || math.Abs(b.Vel.X-40) > 1e-9 {
		t.Errorf("walls() = %+v, expected X 14 and Vel.X 40", b)
	}
}

func TestFinishFreezesBall(t *testing.T) {
	g := New()
	_, d, _ := start(g, 8)

	g.st.blocks = nil
	g.st.ball.Pos = g.st.cup.C.Sub(core.V(100, 0))
	press, release := drag(g.st.ball.Pos, g.st.ball.Pos.Sub(core.V(40, 0)))
	d.Step(16, press)
	d.Step(16, release)

	if snap := d.Run(16, 5000, nil); snap.Reason != session.ReasonWin {
		t.Fatalf("Run() reason = %v, expected win", snap.Reason)
	}
	if g.st.ball.Vel != (core.Vec{}) {
		t.Errorf("ball.Vel = %v after finish, expected zero", g.st.ball.Vel)
	}
	if got := g.Extra()["won"]; got != 1 {
		t.Errorf("Extra()[won] = %v, expected 1", got)
	}
}
