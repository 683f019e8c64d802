package service

import "math/rand/v2"

// FaultPolicy decides whether a create request fails with a transient
// error before doing any work.
type FaultPolicy func() bool

func NoFaults() bool { return false }

// RandomFaults fires with probability rate. A rate of 0 never fires.
func RandomFaults(rate float64) FaultPolicy {
	if rate <= 0 {
		return NoFaults
	}
	return func() bool {
		return rand.Float64() < rate
	}
}
