package physics

import "math/rand"

func newRand(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }

func unitFloat(seed int64) float64 { return newRand(seed).Float64() }
