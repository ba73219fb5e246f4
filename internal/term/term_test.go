package term

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"starfield-renderer/internal/starfield"
	"starfield-renderer/internal/surface"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return screen
}

func newField(t *testing.T) *starfield.Field {
	t.Helper()
	f, err := starfield.New(starfield.Config{StarCount: 64, Spread: 4, Speed: 2}, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestSurfaceForDoublesRows(t *testing.T) {
	screen := newScreen(t, 30, 12)
	s := SurfaceFor(screen)
	if s.Width != 30 || s.Height != 24 {
		t.Fatalf("surface %dx%d, want 30x24", s.Width, s.Height)
	}
}

func TestPresenterDrawsHalfBlocks(t *testing.T) {
	screen := newScreen(t, 4, 2)
	s := surface.New(4, 4)
	s.Set(1, 0, 0xFF0000FF) // upper half of cell (1,0)
	s.Set(2, 3, 0x00FF00FF) // lower half of cell (2,1)

	p := NewPresenter(screen)
	p.Draw(s)
	p.Show()

	cells, w, _ := screen.GetContents()
	cell := func(x, y int) tcell.SimCell { return cells[y*w+x] }

	if r := cell(1, 0).Runes; len(r) != 1 || r[0] != halfBlock {
		t.Fatalf("cell (1,0) runes = %q", r)
	}

	fg, bg, _ := cell(1, 0).Style.Decompose()
	if fg != tcell.NewRGBColor(0xFF, 0, 0) || bg != tcell.ColorBlack {
		t.Errorf("cell (1,0) fg=%v bg=%v, want red on black", fg, bg)
	}

	fg, bg, _ = cell(2, 1).Style.Decompose()
	if fg != tcell.ColorBlack || bg != tcell.NewRGBColor(0, 0xFF, 0) {
		t.Errorf("cell (2,1) fg=%v bg=%v, want black on green", fg, bg)
	}

	fg, bg, _ = cell(0, 0).Style.Decompose()
	if fg != tcell.ColorBlack || bg != tcell.ColorBlack {
		t.Errorf("empty cell fg=%v bg=%v, want black", fg, bg)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := newScreen(t, 40, 12)

	var frames atomic.Int32
	opts := Options{
		FPS: 200,
		OnFrame: func(st starfield.Stats) {
			if st.Plotted+st.Respawned != 64 {
				t.Errorf("frame accounted for %d stars, want 64", st.Plotted+st.Respawned)
			}
			if frames.Add(1) == 3 {
				screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
			}
		},
	}

	done := make(chan error, 1)
	go func() { done <- Run(context.Background(), screen, newField(t), opts) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
	if n := frames.Load(); n < 3 {
		t.Fatalf("rendered %d frames, want at least 3", n)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	screen := newScreen(t, 10, 5)
	ctx, cancel := context.WithCancel(context.Background())

	var frames atomic.Int32
	opts := Options{FPS: 200, OnFrame: func(starfield.Stats) {
		if frames.Add(1) == 2 {
			cancel()
		}
	}}

	done := make(chan error, 1)
	go func() { done <- Run(ctx, screen, newField(t), opts) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestIsQuitKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want bool
	}{
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), false},
	}
	for _, tt := range tests {
		if got := isQuitKey(tt.ev); got != tt.want {
			t.Errorf("isQuitKey(%s) = %v, want %v", tt.ev.Name(), got, tt.want)
		}
	}
}
