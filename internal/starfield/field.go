package starfield

import (
	"math/rand/v2"

	"starfield-renderer/internal/surface"
)

// Star is a copy of one star's state.
type Star struct {
	X, Y, Z float32
	Colour  uint32 // 0xRRGGBBAA, alpha always 0xFF
}

// Stats counts what happened to the stars during one frame.
type Stats struct {
	Plotted   int
	Respawned int
}

// Field is a fixed population of stars moving toward the viewer.
// It is not safe for concurrent use.
type Field struct {
	cfg Config
	rng *rand.Rand

	// One slice per attribute, all cfg.StarCount long.
	x, y, z []float32
	colour  []uint32

	// Orbit respawn state.
	phase float64
	delta float32
}

// New validates cfg, allocates the star slices and places every star.
// A nil rng is replaced by a generator seeded from the wall clock.
func New(cfg Config, rng *rand.Rand) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = newClockRand()
	}

	n := cfg.StarCount
	f := &Field{
		cfg:    cfg,
		rng:    rng,
		x:      make([]float32, n),
		y:      make([]float32, n),
		z:      make([]float32, n),
		colour: make([]uint32, n),
		phase:  1,
	}

	// Colours first: the streak and orbit policies read them.
	for i := range f.colour {
		f.colour[i] = randColour(rng)
	}
	for i := range f.z {
		f.Respawn(i)
	}

	Logger().Debug("star field initialized",
		"stars", n,
		"spread", cfg.Spread,
		"speed", cfg.Speed,
		"respawn", cfg.Respawn.String())

	return f, nil
}

// Config returns the configuration the field was built with.
func (f *Field) Config() Config {
	return f.cfg
}

// Len returns the number of stars.
func (f *Field) Len() int {
	return len(f.z)
}

// Star returns a copy of star i.
func (f *Field) Star(i int) Star {
	return Star{X: f.x[i], Y: f.y[i], Z: f.z[i], Colour: f.colour[i]}
}

// UpdateAndRender advances the simulation by dt seconds and draws the
// surviving stars into s, which is cleared first. Stars that reach the
// viewer plane or leave the screen are respawned and not drawn this frame.
func (f *Field) UpdateAndRender(s *surface.Surface, dt float32) Stats {
	s.Clear()

	f.delta = dt
	f.advance(float32(dt * f.cfg.Speed))

	var st Stats
	for i := range f.z {
		sx, sy, ok := f.project(i, s.Width, s.Height)
		if !ok {
			f.Respawn(i)
			st.Respawned++
			continue
		}
		s.Set(sx, sy, f.colour[i])
		st.Plotted++
	}
	return st
}

// advance moves every star m depth units toward the viewer, BatchWidth
// lanes at a time.
func (f *Field) advance(m float32) {
	z := f.z
	for i := 0; i < len(z); i += BatchWidth {
		lane := z[i : i+BatchWidth : i+BatchWidth]
		lane[0] -= m
		lane[1] -= m
		lane[2] -= m
		lane[3] -= m
	}
}

// project maps star i onto a w x h screen. ok is false when the star is at
// or behind the viewer plane or lands outside [0,w) x [0,h).
func (f *Field) project(i, w, h int) (sx, sy int, ok bool) {
	z := f.z[i]
	if z <= 0 {
		return 0, 0, false
	}

	px, py := f.x[i], f.y[i]
	if !f.cfg.FlatX {
		px /= z
	}
	if !f.cfg.FlatY {
		py /= z
	}

	fw, fh := float32(w), float32(h)
	hw, hh := fw*0.5, fh*0.5
	fx := px*hw + hw
	fy := py*hh + hh

	// Coordinates truncate toward zero, so anything in (-1, 0) lands on 0.
	// Comparing in float space also rejects NaN and keeps huge values away
	// from the int conversion.
	if !(fx > -1 && fx < fw && fy > -1 && fy < fh) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}
