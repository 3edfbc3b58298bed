package core

import "math/rand"

// RNG is the random source injected into games. Spawn positions, difficulty
// jitter and hit rolls all draw from it so a seed reproduces a session.
type RNG interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). n <= 0 returns 0.
	Intn(n int) int
	// Between returns an integer in [min, max], both inclusive.
	Between(min, max int) int
	// Range returns a float in [min, max).
	Range(min, max float64) float64
	// Chance returns true with probability pct/100.
	Chance(pct int) bool
}

type seededRNG struct {
	r *rand.Rand
}

// NewRNG returns a deterministic RNG for the given seed.
func NewRNG(seed int64) RNG {
	return &seededRNG{r: rand.New(rand.NewSource(seed))}
}

func (s *seededRNG) Float64() float64 {
	return s.r.Float64()
}

func (s *seededRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}

func (s *seededRNG) Between(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + s.r.Intn(max-min+1)
}

func (s *seededRNG) Range(min, max float64) float64 {
	return min + s.r.Float64()*(max-min)
}

func (s *seededRNG) Chance(pct int) bool {
	return s.r.Intn(100) < pct
}
