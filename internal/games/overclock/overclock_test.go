package overclock

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

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func TestDrainEndsSession(t *testing.T) {
	g := New()
	_, d, rec := start(g, 1)
	snap := d.Run(100, 600000, nil)

	if snap.Status != session.StatusFinished || snap.Reason != session.ReasonPower {
		t.Fatalf("Run() = %v/%v, expected finished by power", snap.Status, snap.Reason)
	}
	if snap.Score != 100 {
		t.Errorf("Score = %v, expected the starting peak 100", snap.Score)
	}
	extra := g.Extra()
	if extra["finalPower"] != 0 || extra["lost"] != 1 || extra["overclocks"] != 0 {
		t.Errorf("Extra() = %v, expected finalPower 0, lost 1, overclocks 0", extra)
	}
	if ev, ok := rec.Last("power").(session.PowerEvent); !ok || ev.Value != 0 {
		t.Errorf("last power event = %v, expected 0", rec.Last("power"))
	}
	if rec.Count("time") == 0 {
		t.Error("expected time events while surviving")
	}
}

func TestClickRaisesPeak(t *testing.T) {
	g := New()
	c, d, _ := start(g, 1)

	for i := 0; i < 20; i++ {
		d.Step(1, press(core.ActionPrimary))
	}
	if g.st.clicks != 20 {
		t.Errorf("clicks = %d, expected 20", g.st.clicks)
	}
	// 20 clicks minus a few milliseconds of net drain.
	if got := c.Snapshot().Score; got != 119 {
		t.Errorf("Score = %v, expected 119", got)
	}
}

func TestUpgradeCosts(t *testing.T) {
	g := New()
	start(g, 1)

	tests := []struct {
		name     string
		slot     int
		bought   int
		expected float64
	}{
		{name: "first click", slot: UpgradeClick, bought: 0, expected: 60},
		{name: "second click", slot: UpgradeClick, bought: 1, expected: 102},
		{name: "first generator", slot: UpgradeGenerator, bought: 0, expected: 85},
		{name: "second generator", slot: UpgradeGenerator, bought: 1, expected: 148},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g.st.bought = [2]int{}
			g.st.bought[tc.slot] = tc.bought
			if got := g.Cost(tc.slot); got != tc.expected {
				t.Errorf("Cost(%d) = %v, expected %v", tc.slot, got, tc.expected)
			}
		})
	}
}

func TestBuyClickUpgrade(t *testing.T) {
	g := New()
	_, d, _ := start(g, 1)
	d.Step(1, press(core.ActionUpgrade1))

	if g.st.bought[UpgradeClick] != 1 {
		t.Fatalf("bought = %d, expected 1", g.st.bought[UpgradeClick])
	}
	// 3 * 0.88^1 floors to 2.
	if g.st.clickPower != 3 {
		t.Errorf("clickPower = %v, expected 3", g.st.clickPower)
	}
	if g.st.power > 40.01 || g.st.power < 39.9 {
		t.Errorf("power = %v, expected about 40 after paying 60", g.st.power)
	}

	d.Step(1, press(core.ActionUpgrade1))
	if g.st.bought[UpgradeClick] != 1 {
		t.Errorf("bought = %d, expected an unaffordable upgrade to be refused", g.st.bought[UpgradeClick])
	}
}

func TestBuyGeneratorUpgrade(t *testing.T) {
	g := New()
	_, d, _ := start(g, 1)
	d.Step(1, press(core.ActionUpgrade2))

	want := 1.2 + 0.6*math.Pow(0.88, 1.2*0.2)
	if math.Abs(g.st.baseRate-want) > 1e-9 {
		t.Errorf("baseRate = %v, expected %v", g.st.baseRate, want)
	}
}

func TestSpendingKeepsScore(t *testing.T) {
	g := New()
	c, d, _ := start(g, 1)
	d.Step(1, press(core.ActionUpgrade1))

	if got := c.Snapshot().Score; got != 100 {
		t.Errorf("Score = %v, expected spending not to lower the peak", got)
	}
}

func TestFixedPresetFreezesDrain(t *testing.T) {
	g := New()
	if err := g.Configure("", config.DifficultyFixed); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if got := g.Drain(600000); math.Abs(got-2.4) > 1e-9 {
		t.Errorf("Drain(10m) = %v, expected 2.4", got)
	}
	g2 := New()
	if got := g2.Drain(60000); math.Abs(got-3.2) > 1e-9 {
		t.Errorf("Drain(1m) = %v, expected 3.2", got)
	}
}

func TestRestartResetsReactor(t *testing.T) {
	g := New()
	c, d, _ := start(g, 1)
	d.Step(1, press(core.ActionUpgrade1))
	c.Restart()

	if g.st.power != 100 || g.st.bought != [2]int{} || g.st.clickPower != 1 {
		t.Errorf("state after Restart() = %+v, expected a fresh reactor", g.st)
	}
}
