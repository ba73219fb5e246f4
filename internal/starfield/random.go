package starfield

import (
	"math/rand/v2"
	"time"
)

// newClockRand seeds a PCG generator from the wall clock.
func newClockRand() *rand.Rand {
	now := time.Now()
	return rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Unix())))
}

// signedUnit returns a value in [-1, 1).
func signedUnit(r *rand.Rand) float32 {
	return 2 * (r.Float32() - 0.5)
}

// unitOpen returns a value in (0, 1].
func unitOpen(r *rand.Rand) float32 {
	return 1 - r.Float32()
}

// randColour returns a random packed RGBA colour with alpha forced opaque.
func randColour(r *rand.Rand) uint32 {
	return r.Uint32() | 0xFF
}

// colourSigned maps the full uint32 range of a colour onto [-1, 1].
func colourSigned(c uint32) float32 {
	return float32(2*(float64(c)/0xFFFFFFFF) - 1)
}
