package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"starfield-renderer/internal/config"
	"starfield-renderer/internal/starfield"
	"starfield-renderer/internal/term"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	stars := flag.Int("stars", 0, "Number of stars, a multiple of 4 (default: 16384)")
	speed := flag.Float64("speed", 0, "Depth units per second (default: 5)")
	spread := flag.Float64("spread", 0, "Spawn extent and far plane depth (default: 16)")
	respawn := flag.String("respawn", "", "Respawn policy: uniform, streak or orbit")
	seed := flag.Uint64("seed", 0, "Random seed (default: wall clock)")
	fps := flag.Int("fps", 0, "Frames per second (default: 60)")
	logFile := flag.String("log", "", "Write debug log to this file")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.Resolve(config.Flags{
		StarCount: *stars,
		Spread:    float32(*spread),
		Speed:     float32(*speed),
		Respawn:   *respawn,
		Seed:      *seed,
		FPS:       *fps,
	})

	sfCfg, err := cfg.StarField()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to tcell while the viewer runs, so logs go to a file.
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		starfield.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	field, err := starfield.New(sfCfg, cfg.Rand())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(field, cfg.FPS); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(field *starfield.Field, fps int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	screen.HideCursor()
	screen.Clear()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return term.Run(ctx, screen, field, term.Options{FPS: fps})
}
