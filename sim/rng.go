package sim

import "math"

// A Source is a deterministic pseudo-random number source. It implements
// the mulberry32 generator so that a given seed always produces the same
// draw sequence, which keeps generated scenarios reproducible across runs
// and across processes.
//
// The state is carried explicitly in the value. Multiple simulations can
// therefore draw from independent sources concurrently.
type Source struct {
	state uint32
}

// NewSource creates a Source seeded with the given value.
func NewSource(seed uint32) *Source {
	return &Source{state: seed}
}

// NextUniform advances the source and returns a draw in [0, 1).
func (s *Source) NextUniform() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// NextGaussian advances the source by two uniform draws and returns a
// normally distributed value using the Box-Muller transform. A uniform
// draw of exactly 0 would feed a logarithm, so it is clamped to a small
// positive value first.
func (s *Source) NextGaussian(mean, stdDev float64) float64 {
	u1 := s.NextUniform()
	u2 := s.NextUniform()

	if u1 < 1e-12 {
		u1 = 1e-12
	}

	z0 := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)

	return z0*stdDev + mean
}
