// Package window hosts a marquee engine in an [Ebitengine] window. The mouse
// wheel and page keys scroll the document, Tab or a click on a tab switches the
// code sample, M remounts the page and P saves a screenshot.
//
// [Ebitengine]: https://ebitengine.org
package window

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/marquee"
	"go.uber.org/zap"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// toRGBA premultiplies and converts to 8-bit channels.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	return uint32(c.R) * 0x101, uint32(c.G) * 0x101, uint32(c.B) * 0x101, uint32(c.A) * 0x101
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int

	// ClearColor fills the screen before the page is drawn.
	ClearColor Color
	// ScrollStep is the distance one wheel notch scrolls, in document pixels.
	ScrollStep float64
	// FontSize is the label size. Defaults to DefaultFontSize.
	FontSize float64
	// ShowFPS prints the actual FPS and TPS in the top-left corner.
	ShowFPS bool
	// ScreenshotDir receives the PNGs captured with the P key. Defaults to
	// "screenshots".
	ScreenshotDir string
	// OnFrame, if set, runs after every engine frame.
	OnFrame func()
}

// Default window parameters.
const (
	DefaultWidth      = 1280
	DefaultHeight     = 800
	DefaultScrollStep = 60

	DefaultScreenshotDir = "screenshots"
)

var (
	// DefaultClearColor is the page background.
	DefaultClearColor = Color{R: 0.04, G: 0.04, B: 0.06, A: 1}

	// rolePalette tints each role's box.
	rolePalette = map[marquee.Role]Color{
		marquee.RoleHeroHeading:      {R: 0.95, G: 0.95, B: 0.98, A: 1},
		marquee.RoleHeroSub:          {R: 0.55, G: 0.58, B: 0.66, A: 1},
		marquee.RoleHeroIllustration: {R: 0.10, G: 0.11, B: 0.14, A: 1},
		marquee.RoleHUDBadge:         {R: 0.16, G: 0.85, B: 0.55, A: 1},
		marquee.RoleProgressBar:      {R: 1.00, G: 0.42, B: 0.10, A: 1},
		marquee.RoleParallax:         {R: 0.12, G: 0.12, B: 0.16, A: 1},
		marquee.RoleRevealChild:      {R: 0.14, G: 0.15, B: 0.19, A: 1},
		marquee.RoleCounter:          {R: 1.00, G: 0.42, B: 0.10, A: 1},
		marquee.RoleBenchmark:        {R: 0.16, G: 0.85, B: 0.55, A: 1},
		marquee.RoleCodeTab:          {R: 0.30, G: 0.32, B: 0.40, A: 1},
		marquee.RoleCodeOutput:       {R: 0.06, G: 0.07, B: 0.09, A: 1},
	}
)

// labelColor is the text color drawn over every region.
var labelColor = Color{R: 0.92, G: 0.93, B: 0.96, A: 1}

// textMinAlpha hides labels of regions that are mostly faded out.
const textMinAlpha = 0.25

// gridSpacing is the parallax grid's cell size in screen pixels.
const gridSpacing = 64.0

// whitePixel is a 1x1 white image scaled to draw solid boxes.
var whitePixel *ebiten.Image

// Run mounts tree on engine, opens a window and drives the engine from the
// game loop until the window closes or ctx is cancelled. The live lifecycle is
// torn down on exit.
func Run(ctx context.Context, engine *marquee.Engine, tree *marquee.Region, cfg RunConfig) error {
	if tree.IsDisposed() {
		return fmt.Errorf("window: %w", marquee.ErrNilTree)
	}
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.ScrollStep <= 0 {
		cfg.ScrollStep = DefaultScrollStep
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = DefaultFontSize
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = DefaultScreenshotDir
	}
	if cfg.ClearColor == (Color{}) {
		cfg.ClearColor = DefaultClearColor
	}
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(Color{R: 1, G: 1, B: 1, A: 1}.toRGBA())
	}

	engine.Scroll(marquee.Viewport{Height: float64(cfg.Height), DocumentHeight: tree.Box.Height})
	if _, err := engine.Mount(tree); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	defer func() {
		if lc := engine.Current(); lc != nil {
			lc.Teardown()
		}
	}()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &game{ctx: ctx, engine: engine, tree: tree, cfg: cfg, height: cfg.Height}
	font, err := defaultLabelFont(cfg.FontSize)
	if err != nil {
		engine.Logger().Warn("label font unavailable, using debug text", zap.Error(err))
	}
	g.font = font
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// game adapts the engine to ebiten.Game.
type game struct {
	ctx    context.Context
	engine *marquee.Engine
	tree   *marquee.Region
	cfg    RunConfig
	width  int
	height int
	font   *labelFont

	screenshots []string
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	e := g.engine
	vp := e.Viewport()
	if _, dy := ebiten.Wheel(); dy != 0 {
		e.ScrollTo(vp.ScrollY - dy*g.cfg.ScrollStep)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if key, ok := tabAt(g.tree, vp, float64(g.width), float64(x), float64(y)); ok {
			if err := e.SelectTab(key); err != nil {
				e.Logger().Warn("tab switch failed", zap.Error(err))
			}
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		if err := e.NextTab(); err != nil {
			e.Logger().Warn("tab switch failed", zap.Error(err))
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		if _, err := e.Mount(g.tree); err != nil {
			return err
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		e.ScrollTo(vp.ScrollY + vp.Height*0.9)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		e.ScrollTo(vp.ScrollY - vp.Height*0.9)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		e.ScrollTo(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		e.ScrollTo(vp.MaxScroll())
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.screenshots = append(g.screenshots, fmt.Sprintf("scroll-%d", int(vp.ScrollY)))
	}
	e.Tick(float32(1.0 / float64(ebiten.TPS())))
	if g.cfg.OnFrame != nil {
		g.cfg.OnFrame()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor.toRGBA())
	vp := g.engine.Viewport()
	for _, cmd := range drawList(g.tree, vp, float64(g.width)) {
		fillRect(screen, cmd.rect, cmd.color)
		if cmd.text != "" {
			c := labelColor
			c.A *= cmd.alpha
			drawLabel(screen, g.font, cmd.text, cmd.rect.X+8, cmd.rect.Y+6, c)
		}
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	g.flushScreenshots(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		vp := g.engine.Viewport()
		vp.Height = float64(outsideHeight)
		vp.DocumentHeight = g.tree.Box.Height
		vp.ScrollY = min(vp.ScrollY, vp.MaxScroll())
		g.engine.Scroll(vp)
	}
	return outsideWidth, outsideHeight
}

// drawCommand is one solid box with optional label, in screen space.
type drawCommand struct {
	rect  marquee.Rect
	color Color
	text  string
	alpha float64 // world alpha, applied to the label
}

// drawList flattens the visible part of the tree into draw commands, back to
// front. Fixed layers (parallax grid, progress bar) are laid out against the
// screen instead of the document.
func drawList(root *marquee.Region, vp marquee.Viewport, screenW float64) []drawCommand {
	var cmds []drawCommand
	sx := pageScale(screenW)
	screen := marquee.Rect{Width: marquee.PageWidth, Height: vp.Height}
	var bar *drawCommand
	root.Walk(func(r *marquee.Region) bool {
		a := r.WorldAlpha()
		if a <= 0 {
			return false
		}
		c, tinted := rolePalette[r.Role]
		c.A *= a
		switch r.Role {
		case marquee.RoleParallax:
			off := mod(r.OffsetY, gridSpacing)
			for y := off; y < vp.Height; y += gridSpacing {
				cmds = append(cmds, drawCommand{rect: marquee.Rect{Y: y, Width: screenW, Height: 1}, color: c})
			}
			return true
		case marquee.RoleProgressBar:
			bar = &drawCommand{rect: marquee.Rect{Width: screenW * r.Width, Height: r.Box.Height}, color: c}
			return true
		}
		sr := r.ScreenRect(vp)
		if !sr.Intersects(screen) {
			return true
		}
		sr.X *= sx
		sr.Width *= sx
		cmd := drawCommand{rect: sr, alpha: a}
		if tinted {
			cmd.color = c
		}
		if a > textMinAlpha {
			cmd.text = r.Text
		}
		if tinted || cmd.text != "" {
			cmds = append(cmds, cmd)
		}
		return true
	})
	if bar != nil {
		cmds = append(cmds, *bar)
	}
	return cmds
}

// pageScale maps page units to window pixels horizontally.
func pageScale(screenW float64) float64 {
	if screenW > 0 {
		return screenW / marquee.PageWidth
	}
	return 1
}

// tabAt returns the key of the visible code tab under the window point (x, y).
func tabAt(root *marquee.Region, vp marquee.Viewport, screenW, x, y float64) (string, bool) {
	sx := pageScale(screenW)
	var key string
	var found bool
	root.Walk(func(r *marquee.Region) bool {
		if found || r.WorldAlpha() <= 0 {
			return false
		}
		if r.Role != marquee.RoleCodeTab {
			return true
		}
		sr := r.ScreenRect(vp)
		sr.X *= sx
		sr.Width *= sx
		if sr.Contains(x, y) {
			key, found = strings.CutPrefix(r.Name, "tab:")
		}
		return true
	})
	return key, found
}

func mod(v, m float64) float64 {
	r := v - m*float64(int(v/m))
	if r < 0 {
		r += m
	}
	return r
}

// fillRect draws a solid box by scaling the white pixel.
func fillRect(dst *ebiten.Image, r marquee.Rect, c Color) {
	if c.A <= 0 || r.Width <= 0 || r.Height <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	dst.DrawImage(whitePixel, &op)
}
