// Package difficulty provides the pure functions that map elapsed session
// time or a wave index onto spawn intervals, speeds and hit points.
package difficulty

import "math"

// Curve maps elapsed session time in milliseconds to a tuning value.
// Implementations must hold no mutable state between calls.
type Curve interface {
	At(elapsedMs float64) float64
}

// Close releases whatever c holds, such as a Lua state. Curves without
// resources are left alone.
func Close(c Curve) {
	switch c := c.(type) {
	case interface{ Close() }:
		c.Close()
	case Scaled:
		Close(c.Curve)
	case Clamped:
		Close(c.Curve)
	}
}

// Lerp interpolates from base toward max by t.
func Lerp(base, max, t float64) float64 {
	return base + (max-base)*t
}

// Ramp moves linearly from From to To over WindowMs, then holds To.
type Ramp struct {
	From     float64 `yaml:"from"`
	To       float64 `yaml:"to"`
	WindowMs float64 `yaml:"window_ms"`
}

// At returns lerp(From, To, min(elapsed/window, 1)).
func (r Ramp) At(elapsedMs float64) float64 {
	if r.WindowMs <= 0 {
		return r.To
	}
	return Lerp(r.From, r.To, Progress(elapsedMs, r.WindowMs))
}

// Progress returns elapsed/window clamped to [0, 1].
func Progress(elapsedMs, windowMs float64) float64 {
	if windowMs <= 0 {
		return 1
	}
	return math.Max(0, math.Min(elapsedMs/windowMs, 1))
}

// PowerLaw grows super-linearly with elapsed minutes.
type PowerLaw struct {
	Base     float64 `yaml:"base"`
	Growth   float64 `yaml:"growth"`
	Exponent float64 `yaml:"exponent"`
}

// At returns Base + Growth*minutes^Exponent.
func (p PowerLaw) At(elapsedMs float64) float64 {
	minutes := math.Max(0, elapsedMs) / 60000
	return p.Base + p.Growth*math.Pow(minutes, p.Exponent)
}

// Hyperbolic shrinks Base as 1/(1 + Rate*minutes). Used for spawn intervals
// that tighten without ever reaching zero.
type Hyperbolic struct {
	Base float64 `yaml:"base"`
	Rate float64 `yaml:"rate"`
}

// At returns Base / (1 + Rate*minutes).
func (h Hyperbolic) At(elapsedMs float64) float64 {
	minutes := math.Max(0, elapsedMs) / 60000
	return h.Base / (1 + h.Rate*minutes)
}

// Linear grows by PerMinute for every elapsed minute without a ceiling.
type Linear struct {
	Base      float64 `yaml:"base"`
	PerMinute float64 `yaml:"per_minute"`
}

// At returns Base + PerMinute*minutes.
func (l Linear) At(elapsedMs float64) float64 {
	return l.Base + l.PerMinute*math.Max(0, elapsedMs)/60000
}

// Step is a discrete tier indexed by wave number.
type Step struct {
	Base      float64 `yaml:"base"`
	Increment float64 `yaml:"increment"`
}

// At returns Base + index*Increment.
func (s Step) At(index int) float64 {
	return s.Base + float64(index)*s.Increment
}

// Int returns At rounded down to an integer.
func (s Step) Int(index int) int {
	return int(math.Floor(s.At(index)))
}

// Const is a curve that never changes.
type Const float64

// At returns the constant.
func (c Const) At(float64) float64 {
	return float64(c)
}

// Scaled stretches the time axis of another curve by Factor. A factor above 1
// slows the ramp down, below 1 speeds it up.
type Scaled struct {
	Curve  Curve
	Factor float64
}

// At evaluates the wrapped curve at elapsed/Factor.
func (s Scaled) At(elapsedMs float64) float64 {
	if s.Factor <= 0 {
		return s.Curve.At(elapsedMs)
	}
	return s.Curve.At(elapsedMs / s.Factor)
}

// Clamped bounds another curve to [Min, Max].
type Clamped struct {
	Curve    Curve
	Min, Max float64
}

// At evaluates the wrapped curve and clamps the result.
func (c Clamped) At(elapsedMs float64) float64 {
	return math.Max(c.Min, math.Min(c.Max, c.Curve.At(elapsedMs)))
}
