package config

import (
	"fmt"

	"github.com/vovakirdan/pocket-arcade/internal/difficulty"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal, hard or fixed)", s)
	}
}

// TimeScale returns how much a preset stretches curve windows.
// Easy ramps take longer to bite, hard ones arrive sooner.
func TimeScale(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.5
	case DifficultyHard:
		return 0.7
	default:
		return 1.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyCurve adapts a time curve to a preset. Fixed freezes it at its
// starting value and releases c.
func ApplyCurve(c difficulty.Curve, preset DifficultyPreset) difficulty.Curve {
	if IsFixedPreset(preset) {
		v := c.At(0)
		difficulty.Close(c)
		return difficulty.Const(v)
	}
	if f := TimeScale(preset); f != 1 {
		return difficulty.Scaled{Curve: c, Factor: f}
	}
	return c
}

// ApplyStep adapts a wave tier to a preset by scaling its increment.
func ApplyStep(s difficulty.Step, preset DifficultyPreset) difficulty.Step {
	if IsFixedPreset(preset) {
		s.Increment = 0
		return s
	}
	s.Increment /= TimeScale(preset)
	return s
}

// CurveConfig describes a difficulty curve in YAML.
type CurveConfig struct {
	Type      string   `yaml:"type"` // ramp, power, hyperbolic, linear, const or script
	From      float64  `yaml:"from,omitempty"`
	To        float64  `yaml:"to,omitempty"`
	WindowMs  float64  `yaml:"window_ms,omitempty"`
	Base      float64  `yaml:"base,omitempty"`
	Growth    float64  `yaml:"growth,omitempty"`
	Exponent  float64  `yaml:"exponent,omitempty"`
	Rate      float64  `yaml:"rate,omitempty"`
	PerMinute float64  `yaml:"per_minute,omitempty"`
	Value     float64  `yaml:"value,omitempty"`
	Script    string   `yaml:"script,omitempty"`
	Min       *float64 `yaml:"min,omitempty"`
	Max       *float64 `yaml:"max,omitempty"`
}

// Build turns the description into a curve. Script curves hold a Lua state
// the caller releases with difficulty.Close.
func (c CurveConfig) Build() (difficulty.Curve, error) {
	var curve difficulty.Curve
	switch c.Type {
	case "ramp":
		curve = difficulty.Ramp{From: c.From, To: c.To, WindowMs: c.WindowMs}
	case "power":
		curve = difficulty.PowerLaw{Base: c.Base, Growth: c.Growth, Exponent: c.Exponent}
	case "hyperbolic":
		curve = difficulty.Hyperbolic{Base: c.Base, Rate: c.Rate}
	case "linear":
		curve = difficulty.Linear{Base: c.Base, PerMinute: c.PerMinute}
	case "const", "":
		curve = difficulty.Const(c.Value)
	case "script":
		s, err := difficulty.NewScript(c.Script)
		if err != nil {
			return nil, fmt.Errorf("config: cannot build script curve: %w", err)
		}
		curve = s
	default:
		return nil, fmt.Errorf("config: unknown curve type %q", c.Type)
	}

	if c.Min != nil || c.Max != nil {
		lo, hi := -1e308, 1e308
		if c.Min != nil {
			lo = *c.Min
		}
		if c.Max != nil {
			hi = *c.Max
		}
		curve = difficulty.Clamped{Curve: curve, Min: lo, Max: hi}
	}
	return curve, nil
}

// BuildOr is Build with a fallback for invalid descriptions.
func (c CurveConfig) BuildOr(fallback difficulty.Curve) difficulty.Curve {
	curve, err := c.Build()
	if err != nil {
		return fallback
	}
	return curve
}

// StepConfig describes a wave tier in YAML.
type StepConfig struct {
	Base      float64 `yaml:"base"`
	Increment float64 `yaml:"increment"`
}

// Step returns the tier as a difficulty.Step.
func (s StepConfig) Step() difficulty.Step {
	return difficulty.Step{Base: s.Base, Increment: s.Increment}
}
