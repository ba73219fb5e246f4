package starfield

import "math"

// Respawn rewrites the position and depth of star i in place according to
// the configured policy. The colour is kept.
func (f *Field) Respawn(i int) {
	switch f.cfg.Respawn {
	case RespawnStreak:
		f.respawnStreak(i)
	case RespawnOrbit:
		f.respawnOrbit(i)
	default:
		f.respawnUniform(i)
	}
	f.z[i] = unitOpen(f.rng) * f.cfg.Spread
}

func (f *Field) respawnUniform(i int) {
	f.x[i] = signedUnit(f.rng) * f.cfg.Spread
	f.y[i] = signedUnit(f.rng) * f.cfg.Spread
}

// respawnStreak uses the star's colour as a second random source: n in
// [-1, 1] puts the star on the hyperbola x = 1/n, y = n. The stars that
// land far off-axis escape again next frame, which is what draws the streak.
func (f *Field) respawnStreak(i int) {
	if f.rng.Float32() >= f.cfg.StreakChance {
		f.respawnUniform(i)
		return
	}
	n := colourSigned(f.colour[i])
	f.x[i] = 1 / n
	f.y[i] = n
}

// respawnOrbit advances the field phase by the current frame time and
// places the star on the unit circle at that phase, offset vertically by
// its colour.
func (f *Field) respawnOrbit(i int) {
	f.phase += float64(f.delta) / float64(f.cfg.PhaseSpeed)

	n := colourSigned(f.colour[i])
	f.x[i] = float32(math.Cos(f.phase))
	if f.cfg.FlatX || f.cfg.FlatY {
		f.y[i] = n
		return
	}
	f.y[i] = n + float32(math.Sin(f.phase))
}
