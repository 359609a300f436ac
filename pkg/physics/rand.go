package physics

import (
	"math/rand/v2"
	"time"
)

// Rand is the source of randomness used by the models.
// Float64 returns values in [0.0, 1.0).
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded PCG source. Equal seeds yield equal sequences.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSeededRand returns a source seeded from the wall clock.
func NewTimeSeededRand() Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// ConstRand always yields the same value. Used for reproducible runs.
type ConstRand float64

func (c ConstRand) Float64() float64 {
	return float64(c)
}

// Uniform draws from [lo, hi).
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

func Clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
