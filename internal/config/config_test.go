package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/pocket-arcade/internal/difficulty"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	tests := []struct {
		id   string
		load func() (any, any, error)
	}{
		{"aim", func() (any, any, error) {
			c, err := LoadEmbedded("aim", DefaultAimConfig)
			return c, DefaultAimConfig(), err
		}},
		{"flappy", func() (any, any, error) {
			c, err := LoadEmbedded("flappy", DefaultFlappyConfig)
			return c, DefaultFlappyConfig(), err
		}},
		{"golf", func() (any, any, error) {
			c, err := LoadEmbedded("golf", DefaultGolfConfig)
			return c, DefaultGolfConfig(), err
		}},
		{"defense", func() (any, any, error) {
			c, err := LoadEmbedded("defense", DefaultDefenseConfig)
			return c, DefaultDefenseConfig(), err
		}},
		{"zombie", func() (any, any, error) {
			c, err := LoadEmbedded("zombie", DefaultZombieConfig)
			return c, DefaultZombieConfig(), err
		}},
		{"drift", func() (any, any, error) {
			c, err := LoadEmbedded("drift", DefaultDriftConfig)
			return c, DefaultDriftConfig(), err
		}},
		{"overclock", func() (any, any, error) {
			c, err := LoadEmbedded("overclock", DefaultOverclockConfig)
			return c, DefaultOverclockConfig(), err
		}},
		{"spotting", func() (any, any, error) {
			c, err := LoadEmbedded("spotting", DefaultSpottingConfig)
			return c, DefaultSpottingConfig(), err
		}},
		{"typing", func() (any, any, error) {
			c, err := LoadEmbedded("typing", DefaultTypingConfig)
			return c, DefaultTypingConfig(), err
		}},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			got, expected, err := tc.load()
			if err != nil {
				t.Fatalf("LoadEmbedded() error = %v", err)
			}
			if !reflect.DeepEqual(got, expected) {
				t.Errorf("embedded %s.yaml = %+v, expected %+v", tc.id, got, expected)
			}
		})
	}
}

func TestLoadEmbeddedUnknownGame(t *testing.T) {
	_, err := LoadEmbedded("coinflip", DefaultAimConfig)
	if !errors.Is(err, ErrNoDefaults) {
		t.Errorf("LoadEmbedded() error = %v, expected ErrNoDefaults", err)
	}
}

func TestLoadCustomPathOverridesPartially(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "flappy.yaml")
	if err := os.WriteFile(p, []byte("physics:\n  gravity: 900\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("flappy", p, DefaultFlappyConfig)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Physics.Gravity != 900 {
		t.Errorf("Gravity = %v, expected 900", cfg.Physics.Gravity)
	}
	if cfg.Physics.Flap != -300 || cfg.Pipes.Width != 72 {
		t.Errorf("unset fields lost their defaults: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load("flappy", filepath.Join(dir, "missing.yaml"), DefaultFlappyConfig); err == nil {
		t.Error("Load() with missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load("flappy", bad, DefaultFlappyConfig); err == nil {
		t.Error("Load() with invalid YAML should fail")
	}
}

func TestLoadPrefersUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "zombie.yaml"), []byte("player:\n  lives: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("zombie", "", DefaultZombieConfig)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Player.Lives != 5 {
		t.Errorf("Lives = %d, expected 5 from user config", cfg.Player.Lives)
	}

	typing, err := Load("typing", "", DefaultTypingConfig)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(typing.Phrases) != 10 {
		t.Errorf("embedded typing phrases = %d, expected 10", len(typing.Phrases))
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}
	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.expected {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestApplyCurveScalesWindows(t *testing.T) {
	ramp := difficulty.Ramp{From: 900, To: 350, WindowMs: 60000}

	tests := []struct {
		name     string
		preset   DifficultyPreset
		at       float64
		expected float64
	}{
		{name: "normal unchanged", preset: DifficultyNormal, at: 30000, expected: 625},
		{name: "easy is slower", preset: DifficultyEasy, at: 60000, expected: 900 - 550*(40000.0/60000)},
		{name: "hard saturates sooner", preset: DifficultyHard, at: 42000, expected: 350},
		{name: "fixed freezes at start", preset: DifficultyFixed, at: 120000, expected: 900},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyCurve(ramp, tc.preset).At(tc.at)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("At(%v) = %v, expected %v", tc.at, got, tc.expected)
			}
		})
	}
}

func TestApplyStep(t *testing.T) {
	s := difficulty.Step{Base: 8, Increment: 3}
	if got := ApplyStep(s, DifficultyFixed).At(5); got != 8 {
		t.Errorf("fixed step At(5) = %v, expected 8", got)
	}
	if got := ApplyStep(s, DifficultyNormal).At(5); got != 23 {
		t.Errorf("normal step At(5) = %v, expected 23", got)
	}
	if ApplyStep(s, DifficultyHard).At(5) <= 23 {
		t.Error("hard step should grow faster than normal")
	}
}

func TestCurveConfigBuild(t *testing.T) {
	ceiling := 3.0
	tests := []struct {
		name     string
		cfg      CurveConfig
		at       float64
		expected float64
		wantErr  bool
	}{
		{name: "ramp", cfg: CurveConfig{Type: "ramp", From: 60, To: 210, WindowMs: 60000}, at: 60000, expected: 210},
		{name: "power", cfg: CurveConfig{Type: "power", Base: 2.4, Growth: 0.8, Exponent: 1.35}, at: 60000, expected: 3.2},
		{name: "hyperbolic", cfg: CurveConfig{Type: "hyperbolic", Base: 650, Rate: 0.06}, at: 0, expected: 650},
		{name: "linear", cfg: CurveConfig{Type: "linear", Base: 160, PerMinute: 18}, at: 120000, expected: 196},
		{name: "const", cfg: CurveConfig{Type: "const", Value: 7}, at: 1e6, expected: 7},
		{name: "clamped", cfg: CurveConfig{Type: "power", Base: 2.4, Growth: 0.8, Exponent: 1.35, Max: &ceiling}, at: 600000, expected: 3},
		{name: "script", cfg: CurveConfig{Type: "script", Script: "function curve(ms, min) return 10 + min end"}, at: 120000, expected: 12},
		{name: "unknown type", cfg: CurveConfig{Type: "zigzag"}, wantErr: true},
		{name: "broken script", cfg: CurveConfig{Type: "script", Script: "x = 1"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := tc.cfg.Build()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Build() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			defer difficulty.Close(c)
			if got := c.At(tc.at); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("At(%v) = %v, expected %v", tc.at, got, tc.expected)
			}
		})
	}
}

func TestFixedPresetReleasesScript(t *testing.T) {
	s, err := difficulty.NewScript("function curve(ms, min) return 5 + min end")
	if err != nil {
		t.Fatalf("NewScript() failed: %v", err)
	}

	c := ApplyCurve(s, DifficultyFixed)
	if got := c.At(600000); got != 5 {
		t.Errorf("At(600000) = %v, expected 5", got)
	}
	if got := s.At(600000); got != 5 {
		t.Errorf("closed script At(600000) = %v, expected the last value 5", got)
	}
}

func TestBuildOrFallsBack(t *testing.T) {
	c := CurveConfig{Type: "zigzag"}.BuildOr(difficulty.Const(42))
	if got := c.At(0); got != 42 {
		t.Errorf("BuildOr() fallback At(0) = %v, expected 42", got)
	}
}
