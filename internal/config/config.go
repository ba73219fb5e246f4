package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"starfield-renderer/internal/starfield"
)

// Config holds the star field parameters and the settings of the drivers
// around it.
type Config struct {
	// Star field
	StarCount    int     `json:"star_count"`
	Spread       float32 `json:"spread"`
	Speed        float32 `json:"speed"`
	Respawn      string  `json:"respawn"`
	StreakChance float32 `json:"streak_chance"`
	PhaseSpeed   float32 `json:"phase_speed"`
	FlatX        bool    `json:"flat_x"`
	FlatY        bool    `json:"flat_y"`
	Seed         uint64  `json:"seed"` // 0 seeds from the clock

	// Surface and pacing
	Width  int `json:"width"`
	Height int `json:"height"`
	FPS    int `json:"fps"`

	// Offline output
	Frames    int    `json:"frames"`
	Format    string `json:"format"`
	Scale     int    `json:"scale"`
	Animate   bool   `json:"animate"`
	OutputDir string `json:"output_dir"`
	Workers   int    `json:"workers"`
}

// Formats lists the frame encodings the offline renderer supports.
var Formats = []string{"webp", "tga", "png"}

var ErrInvalid = errors.New("config: invalid value")

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI overrides and fills every unset field with a default.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.StarCount > 0 {
		c.StarCount = flags.StarCount
	}
	if flags.Spread > 0 {
		c.Spread = flags.Spread
	}
	if flags.Speed > 0 {
		c.Speed = flags.Speed
	}
	if flags.Respawn != "" {
		c.Respawn = flags.Respawn
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Defaults
	if c.StarCount <= 0 {
		c.StarCount = 16384
	}
	if c.Spread <= 0 {
		c.Spread = 16
	}
	if c.Speed <= 0 {
		c.Speed = 5
	}
	if c.Respawn == "" {
		c.Respawn = starfield.RespawnUniform.String()
	}
	if c.StreakChance <= 0 {
		c.StreakChance = 0.2
	}
	if c.PhaseSpeed <= 0 {
		c.PhaseSpeed = 64
	}
	if c.Width <= 0 {
		c.Width = 1024
	}
	if c.Height <= 0 {
		c.Height = 640
	}
	if c.FPS <= 0 {
		c.FPS = 60
	}
	if c.Frames <= 0 {
		c.Frames = 120
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if !filepath.IsAbs(c.OutputDir) {
		if cwd, err := os.Getwd(); err == nil {
			c.OutputDir = filepath.Join(cwd, c.OutputDir)
		}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate checks the resolved config, including the star field parameters.
func (c *Config) Validate() error {
	if _, err := c.StarField(); err != nil {
		return err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: surface %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("%w: format %q (want one of %s)", ErrInvalid, c.Format, strings.Join(Formats, ", "))
	}
	return nil
}

// StarField converts the config into a validated starfield.Config.
func (c *Config) StarField() (starfield.Config, error) {
	mode, err := starfield.ParseRespawnMode(c.Respawn)
	if err != nil {
		return starfield.Config{}, err
	}
	sf := starfield.Config{
		StarCount:    c.StarCount,
		Spread:       c.Spread,
		Speed:        c.Speed,
		Respawn:      mode,
		StreakChance: c.StreakChance,
		PhaseSpeed:   c.PhaseSpeed,
		FlatX:        c.FlatX,
		FlatY:        c.FlatY,
	}
	if err := sf.Validate(); err != nil {
		return starfield.Config{}, err
	}
	return sf, nil
}

// Rand returns a generator for the configured seed, or nil to let the
// star field seed itself from the clock.
func (c *Config) Rand() *rand.Rand {
	if c.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(c.Seed, c.Seed^0x9E3779B97F4A7C15))
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	StarCount int
	Spread    float32
	Speed     float32
	Respawn   string
	Seed      uint64
	FPS       int
	Frames    int
	Format    string
	OutputDir string
	Workers   int
}
