package frames

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"starfield-renderer/internal/starfield"
	"starfield-renderer/internal/surface"
)

var testField = starfield.Config{StarCount: 256, Spread: 1, Speed: 1}

func newField(t *testing.T) *starfield.Field {
	t.Helper()
	f, err := starfield.New(testField, rand.New(rand.NewPCG(3, 5)))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func decoder(format string) func(io.Reader) (image.Image, error) {
	switch format {
	case "webp":
		return nativewebp.Decode
	case "tga":
		return tga.Decode
	}
	return png.Decode
}

func TestRunWritesDecodableFrames(t *testing.T) {
	for _, format := range []string{"webp", "tga", "png"} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			cfg := Config{
				Width:     48,
				Height:    32,
				Frames:    4,
				FPS:       30,
				Format:    format,
				Scale:     1,
				OutputDir: dir,
				Workers:   2,
			}

			results, err := Run(cfg, newField(t))
			if err != nil {
				t.Fatal(err)
			}
			if len(results) != cfg.Frames {
				t.Fatalf("got %d results, want %d", len(results), cfg.Frames)
			}

			// Replay the same seed to know what every frame should contain.
			ref := newField(t)
			surf := surface.New(cfg.Width, cfg.Height)
			for i, r := range results {
				st := ref.UpdateAndRender(surf, 1/float32(cfg.FPS))
				if !r.Success {
					t.Fatalf("frame %d failed: %s", i, r.Error)
				}
				if r.Plotted != st.Plotted || r.Respawned != st.Respawned {
					t.Fatalf("frame %d stats %d/%d, replay %d/%d", i, r.Plotted, r.Respawned, st.Plotted, st.Respawned)
				}
				if r.Image != FrameName(i, format) {
					t.Fatalf("frame %d image %q", i, r.Image)
				}

				data, err := os.ReadFile(filepath.Join(dir, r.Image))
				if err != nil {
					t.Fatal(err)
				}
				img, err := decoder(format)(bytes.NewReader(data))
				if err != nil {
					t.Fatalf("frame %d decode: %v", i, err)
				}
				assertFrame(t, img, surf)
			}
		})
	}
}

func assertFrame(t *testing.T, img image.Image, surf *surface.Surface) {
	t.Helper()
	if b := img.Bounds(); b.Dx() != surf.Width || b.Dy() != surf.Height {
		t.Fatalf("decoded bounds %v, want %dx%d", b, surf.Width, surf.Height)
	}
	b := img.Bounds()
	for y := 0; y < surf.Height; y++ {
		for x := 0; x < surf.Width; x++ {
			got := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			want := surf.At(x, y)
			wr, wg, wb := uint8(want>>24), uint8(want>>16), uint8(want>>8)
			if got.R != wr || got.G != wg || got.B != wb || got.A != 0xFF {
				t.Fatalf("pixel (%d,%d) = %v, want rgb(%d,%d,%d) opaque", x, y, got, wr, wg, wb)
			}
		}
	}
}

func TestRunWritesAnimation(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Width: 16, Height: 16, Frames: 3, FPS: 10, Format: "png", Scale: 2, Animate: true, OutputDir: dir, Workers: 1}

	if _, err := Run(cfg, newField(t)); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, AnimationName))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Contains(data, []byte("ANIM")) {
		t.Fatal("animation is not an animated WebP container")
	}

	frame, err := os.Open(filepath.Join(dir, FrameName(0, "png")))
	if err != nil {
		t.Fatal(err)
	}
	defer frame.Close()
	img, err := png.Decode(frame)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("scaled frame bounds %v, want 32x32", b)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	if _, err := Run(Config{Frames: 0, FPS: 60, OutputDir: t.TempDir()}, newField(t)); err == nil {
		t.Fatal("zero frames: want error")
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(io.Discard, image.NewRGBA(image.Rect(0, 0, 1, 1)), "gif")
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat", err)
	}
}

func TestUpscaleNearestNeighbour(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	red := color.RGBA{R: 0xFF, A: 0xFF}
	src.SetRGBA(1, 0, red)

	dst := Upscale(src, 2)
	if b := dst.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("bounds %v, want 4x4", b)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := color.RGBA{}
			if x >= 2 && y < 2 {
				want = red
			}
			if got := dst.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	if Upscale(src, 1) != src {
		t.Fatal("factor 1 should return the input")
	}
}

func TestWriteManifestSkipsFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	results := []Result{
		{Frame: 0, Time: 0, Plotted: 10, Respawned: 2, Image: "frame_00000.webp", Success: true},
		{Frame: 1, Time: 0.5, Error: "disk full"},
		{Frame: 2, Time: 1, Plotted: 9, Respawned: 3, Image: "frame_00002.webp", Success: true},
	}
	if err := WriteManifest(path, results); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Frame != 0 || entries[1].Frame != 2 || entries[1].Respawned != 3 {
		t.Fatalf("entries = %+v", entries)
	}
}
