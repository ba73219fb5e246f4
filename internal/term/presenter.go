// Package term drives a star field on a terminal through tcell.
//
// Each terminal cell shows two vertically stacked pixels with the upper
// half block rune: the foreground is the upper pixel, the background the
// lower one. A cols x rows screen therefore maps onto a cols x rows*2
// surface.
package term

import (
	"github.com/gdamore/tcell/v2"

	"starfield-renderer/internal/surface"
)

const halfBlock = '▀'

// SurfaceFor returns a surface matching the screen's current size.
func SurfaceFor(screen tcell.Screen) *surface.Surface {
	cols, rows := screen.Size()
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return surface.New(cols, rows*2)
}

// Presenter copies surfaces onto a tcell screen.
type Presenter struct {
	screen tcell.Screen
}

func NewPresenter(screen tcell.Screen) *Presenter {
	return &Presenter{screen: screen}
}

// Draw writes s into the screen's back buffer. Call Show to display it.
func (p *Presenter) Draw(s *surface.Surface) {
	cols, rows := p.screen.Size()
	for row := 0; row < rows; row++ {
		top, bottom := row*2, row*2+1
		for col := 0; col < cols; col++ {
			style := tcell.StyleDefault.
				Foreground(pixelColor(s.At(col, top))).
				Background(pixelColor(s.At(col, bottom)))
			p.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
}

// Show flushes the back buffer to the terminal.
func (p *Presenter) Show() {
	p.screen.Show()
}

func pixelColor(c uint32) tcell.Color {
	if c == 0 {
		return tcell.ColorBlack
	}
	return tcell.NewRGBColor(int32(c>>24), int32(c>>16&0xFF), int32(c>>8&0xFF))
}
