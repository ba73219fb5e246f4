package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"starfield-renderer/internal/config"
	"starfield-renderer/internal/frames"
	"starfield-renderer/internal/starfield"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	stars := flag.Int("stars", 0, "Number of stars, a multiple of 4 (default: 16384)")
	speed := flag.Float64("speed", 0, "Depth units per second (default: 5)")
	spread := flag.Float64("spread", 0, "Spawn extent and far plane depth (default: 16)")
	respawn := flag.String("respawn", "", "Respawn policy: uniform, streak or orbit")
	seed := flag.Uint64("seed", 0, "Random seed (default: wall clock)")
	n := flag.Int("frames", 0, "Number of frames to render (default: 120)")
	fps := flag.Int("fps", 0, "Simulated frames per second (default: 60)")
	format := flag.String("format", "", "Frame format: webp, tga or png (default: webp)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	workers := flag.Int("workers", 0, "Number of encoder goroutines (default: NumCPU)")
	verbose := flag.Bool("v", false, "Log progress to stderr")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		StarCount: *stars,
		Spread:    float32(*spread),
		Speed:     float32(*speed),
		Respawn:   *respawn,
		Seed:      *seed,
		FPS:       *fps,
		Frames:    *n,
		Format:    *format,
		OutputDir: *outputDir,
		Workers:   *workers,
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	starfield.SetLogger(logger)

	sfCfg, _ := cfg.StarField()
	field, err := starfield.New(sfCfg, cfg.Rand())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Star field → %s\n", cfg.Format)
	fmt.Printf("Stars: %d, Spread: %g, Speed: %g, Respawn: %s\n", cfg.StarCount, cfg.Spread, cfg.Speed, sfCfg.Respawn)
	fmt.Printf("Frames: %d at %d fps, %dx%d (x%d), Workers: %d\n", cfg.Frames, cfg.FPS, cfg.Width, cfg.Height, cfg.Scale, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results, err := frames.Run(frames.Config{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Frames:    cfg.Frames,
		FPS:       cfg.FPS,
		Format:    cfg.Format,
		Scale:     cfg.Scale,
		Animate:   cfg.Animate,
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		Logger:    logger,
	}, field)
	if err != nil && results == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var failures []frames.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			failures = append(failures, r)
		}
	}

	fmt.Printf("Written: %d/%d\n", success, len(results))

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(20, len(failures))
		for _, r := range failures[:limit] {
			fmt.Printf("  frame %d: %s\n", r.Frame, r.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := frames.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
