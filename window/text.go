package window

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is the label size in screen pixels.
const DefaultFontSize = 14

// labelFont draws region labels with Go Regular through text/v2.
type labelFont struct {
	face *text.GoTextFace
	lh   float64 // line height
}

// loadLabelFont parses TrueType data at the given size.
func loadLabelFont(ttf []byte, size float64) (*labelFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("window: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &labelFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

func defaultLabelFont(size float64) (*labelFont, error) {
	return loadLabelFont(goregular.TTF, size)
}

// measure returns the rendered size of s.
func (f *labelFont) measure(s string) (w, h float64) {
	return text.Measure(s, f.face, f.lh)
}

// drawLabel draws s at (x, y). A nil font falls back to the debug printer.
func drawLabel(dst *ebiten.Image, f *labelFont, s string, x, y float64, c Color) {
	if f == nil {
		ebitenutil.DebugPrintAt(dst, s, int(x), int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	op.LineSpacing = f.lh
	text.Draw(dst, s, f.face, op)
}
