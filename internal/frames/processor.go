package frames

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"starfield-renderer/internal/starfield"
	"starfield-renderer/internal/surface"
)

// AnimationName is the file written next to the frames when Config.Animate is set.
const AnimationName = "starfield.webp"

// Config holds the settings of one offline render.
type Config struct {
	Width     int
	Height    int
	Frames    int
	FPS       int
	Format    string
	Scale     int
	Animate   bool
	OutputDir string
	Workers   int
	Logger    *slog.Logger
}

// Result holds the outcome of one frame.
type Result struct {
	Frame     int
	Time      float64 // seconds since the first frame
	Plotted   int
	Respawned int
	Image     string // file name relative to OutputDir
	Success   bool
	Error     string
}

type job struct {
	idx int
	img *image.RGBA
}

// Run simulates cfg.Frames frames at a fixed 1/FPS step and encodes them
// with a worker pool. Simulation stays on the calling goroutine; only the
// snapshots are shared with the workers.
func Run(cfg Config, field *starfield.Field) ([]Result, error) {
	if cfg.Frames <= 0 || cfg.FPS <= 0 {
		return nil, fmt.Errorf("frames: need positive frame count and fps, got %d and %d", cfg.Frames, cfg.FPS)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	log := cfg.Logger
	if log == nil {
		log = starfield.Logger()
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("frames: %w", err)
	}

	total := cfg.Frames
	results := make([]Result, total)
	var encoded atomic.Int64

	var anim []image.Image
	if cfg.Animate {
		anim = make([]image.Image, total)
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := encoded.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info("encoding", "done", p, "total", total, "frames_per_sec", rate)
				}
			}
		}
	}()

	// Worker pool
	jobs := make(chan job, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				img := Upscale(j.img, cfg.Scale)
				fillBackground(img)
				if anim != nil {
					anim[j.idx] = img
				}
				saveFrame(cfg, img, &results[j.idx])
				encoded.Add(1)
			}
		}()
	}

	surf := surface.New(cfg.Width, cfg.Height)
	dt := 1 / float32(cfg.FPS)
	for i := 0; i < total; i++ {
		st := field.UpdateAndRender(surf, dt)
		results[i] = Result{
			Frame:     i,
			Time:      float64(i) / float64(cfg.FPS),
			Plotted:   st.Plotted,
			Respawned: st.Respawned,
		}
		jobs <- job{idx: i, img: surf.Snapshot()}
	}
	close(jobs)

	wg.Wait()
	close(done)

	log.Info("frames rendered", "frames", total, "elapsed", time.Since(start).Round(time.Millisecond))

	if cfg.Animate {
		path := filepath.Join(cfg.OutputDir, AnimationName)
		if err := writeAnimation(path, anim, cfg.FPS); err != nil {
			return results, fmt.Errorf("frames: %w", err)
		}
	}
	return results, nil
}

func saveFrame(cfg Config, img image.Image, r *Result) {
	name := FrameName(r.Frame, cfg.Format)
	if err := writeFile(filepath.Join(cfg.OutputDir, name), img, cfg.Format); err != nil {
		r.Error = err.Error()
		return
	}
	r.Image = name
	r.Success = true
}

// FrameName returns the file name of frame i.
func FrameName(i int, format string) string {
	return fmt.Sprintf("frame_%05d.%s", i, format)
}
