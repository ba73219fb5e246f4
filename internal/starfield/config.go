package starfield

import (
	"errors"
	"fmt"
	"strings"
)

// BatchWidth is the number of stars whose depth is advanced together.
// StarCount must be a multiple of it.
const BatchWidth = 4

var (
	ErrStarCount    = errors.New("starfield: star count must be a positive multiple of 4")
	ErrSpread       = errors.New("starfield: spread must be positive")
	ErrSpeed        = errors.New("starfield: speed must be positive")
	ErrStreakChance = errors.New("starfield: streak chance must be within [0, 1]")
	ErrPhaseSpeed   = errors.New("starfield: phase speed must be positive for orbit respawn")
	ErrRespawnMode  = errors.New("starfield: unknown respawn mode")
)

// RespawnMode selects where a star reappears after leaving the view.
type RespawnMode int

const (
	// RespawnUniform places x, y in [-spread, spread] and z in (0, spread].
	RespawnUniform RespawnMode = iota
	// RespawnStreak sends a fraction of stars onto a reciprocal streak
	// derived from their colour bits.
	RespawnStreak
	// RespawnOrbit walks respawned stars around a circle driven by a phase
	// that advances with elapsed time.
	RespawnOrbit
)

var respawnNames = [...]string{
	RespawnUniform: "uniform",
	RespawnStreak:  "streak",
	RespawnOrbit:   "orbit",
}

func (m RespawnMode) String() string {
	if m < 0 || int(m) >= len(respawnNames) {
		return fmt.Sprintf("RespawnMode(%d)", int(m))
	}
	return respawnNames[m]
}

// ParseRespawnMode maps a config name to a RespawnMode. Empty means uniform.
func ParseRespawnMode(s string) (RespawnMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RespawnUniform, nil
	}
	for m, name := range respawnNames {
		if name == s {
			return RespawnMode(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrRespawnMode, s)
}

// Config is the fixed startup configuration of a Field.
type Config struct {
	StarCount int
	Spread    float32
	Speed     float32 // depth units per second

	Respawn      RespawnMode
	StreakChance float32 // RespawnStreak only
	PhaseSpeed   float32 // RespawnOrbit only; seconds per radian

	// FlatX and FlatY project an axis without dividing by depth.
	FlatX bool
	FlatY bool
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.StarCount <= 0 || c.StarCount%BatchWidth != 0 {
		return fmt.Errorf("%w: got %d", ErrStarCount, c.StarCount)
	}
	if !(c.Spread > 0) {
		return fmt.Errorf("%w: got %g", ErrSpread, c.Spread)
	}
	if !(c.Speed > 0) {
		return fmt.Errorf("%w: got %g", ErrSpeed, c.Speed)
	}
	switch c.Respawn {
	case RespawnUniform:
	case RespawnStreak:
		if !(c.StreakChance >= 0 && c.StreakChance <= 1) {
			return fmt.Errorf("%w: got %g", ErrStreakChance, c.StreakChance)
		}
	case RespawnOrbit:
		if !(c.PhaseSpeed > 0) {
			return fmt.Errorf("%w: got %g", ErrPhaseSpeed, c.PhaseSpeed)
		}
	default:
		return fmt.Errorf("%w: %d", ErrRespawnMode, int(c.Respawn))
	}
	return nil
}
