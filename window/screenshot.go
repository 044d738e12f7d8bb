package window

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// flushScreenshots captures the rendered frame once for every queued label
// and writes each as a PNG. Called at the end of Draw.
func (g *game) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshots) == 0 {
		return
	}
	log := g.engine.Logger()
	defer func() { g.screenshots = g.screenshots[:0] }()

	dir := g.cfg.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error("screenshot dir", zap.String("dir", dir), zap.Error(err))
		return
	}

	bounds := screen.Bounds()
	pixels := make([]byte, 4*bounds.Dx()*bounds.Dy())
	screen.ReadPixels(pixels)
	img := frameImage(pixels, bounds.Dx(), bounds.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range g.screenshots {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, fileLabel(label)))
		if err := writePNG(path, img); err != nil {
			log.Error("screenshot", zap.Error(err))
			continue
		}
		log.Info("screenshot saved", zap.String("path", path))
	}
}

// frameImage wraps the premultiplied pixels read back from the screen and
// converts them to straight alpha, which PNG expects.
func frameImage(pixels []byte, w, h int) *image.NRGBA {
	src := &image.RGBA{Pix: pixels, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
	dst := image.NewNRGBA(src.Rect)
	draw.Draw(dst, dst.Rect, src, image.Point{}, draw.Src)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// fileLabel makes label safe for a file name: letters, digits, '-' and '.'
// are kept and everything else becomes '_'.
func fileLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "frame"
	}
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, label)
}
