package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"starfield-renderer/internal/starfield"
)

// Options configures Run.
type Options struct {
	FPS int // frame ticks per second, default 60

	// OnFrame, when set, is called after every presented frame.
	OnFrame func(starfield.Stats)
}

// Run paces frames on a ticker, feeds the measured wall-clock delta to the
// field and presents the result. It returns nil when the user presses Esc,
// q or Ctrl-C, when the screen is finalized, or when ctx is done.
func Run(ctx context.Context, screen tcell.Screen, field *starfield.Field, opts Options) error {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}

	p := NewPresenter(screen)
	surf := SurfaceFor(screen)

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	log := starfield.Logger()
	log.Info("viewer started", "cols", surf.Width, "rows", surf.Height/2, "fps", fps)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuitKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				surf = SurfaceFor(screen)
				screen.Sync()
				log.Debug("viewer resized", "cols", surf.Width, "rows", surf.Height/2)
			}

		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now

			st := field.UpdateAndRender(surf, dt)
			p.Draw(surf)
			p.Show()
			if opts.OnFrame != nil {
				opts.OnFrame(st)
			}
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
