package marquee

import "fmt"

// Rect is an axis-aligned rectangle in document space. The origin is the
// top-left of the page, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Viewport is the visible window onto the document, as reported by the host on
// every scroll or resize event.
type Viewport struct {
	ScrollY        float64 // document offset of the viewport's top edge
	Height         float64 // viewport height
	DocumentHeight float64 // total scrollable height
}

// MaxScroll returns the largest reachable ScrollY.
func (v Viewport) MaxScroll() float64 {
	if v.DocumentHeight <= v.Height {
		return 0
	}
	return v.DocumentHeight - v.Height
}

// Bounds returns the viewport as a document-space rectangle with zero width.
func (v Viewport) Bounds() Rect {
	return Rect{Y: v.ScrollY, Height: v.Height}
}

// Role tags a region with the part it plays on the page.
type Role uint8

const (
	RoleNone             Role = iota // structural container
	RoleHeroHeading                  // main hero headline
	RoleHeroSub                      // hero badge, copy and call-to-action rows
	RoleHeroIllustration             // the IDE mock under the hero copy
	RoleHUDBadge                     // floating badges around the illustration
	RoleProgressBar                  // fixed scroll-progress indicator
	RoleParallax                     // fixed background layer
	RoleRevealSection                // section whose children reveal on entry
	RoleRevealChild                  // child revealed by its section
	RoleCounter                      // numeric metric display
	RoleBenchmark                    // static benchmark value
	RoleCodeTab                      // code sample tab button
	RoleCodeOutput                   // typewriter output
)

var roleNames = [...]string{
	RoleNone:             "none",
	RoleHeroHeading:      "hero-heading",
	RoleHeroSub:          "hero-sub",
	RoleHeroIllustration: "hero-illustration",
	RoleHUDBadge:         "hud-badge",
	RoleProgressBar:      "progress-bar",
	RoleParallax:         "parallax",
	RoleRevealSection:    "reveal-section",
	RoleRevealChild:      "reveal-child",
	RoleCounter:          "counter",
	RoleBenchmark:        "benchmark",
	RoleCodeTab:          "code-tab",
	RoleCodeOutput:       "code-output",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// Property identifies one settable value on a Target's visual surface.
type Property uint8

const (
	PropAlpha   Property = iota // opacity in [0, 1]
	PropOffsetX                 // horizontal offset from the laid-out position
	PropOffsetY                 // vertical offset from the laid-out position
	PropScale                   // uniform scale around the region's center
	PropWidth                   // width as a fraction of the laid-out width
	PropValue                   // free scalar, used by counters
)

var propertyNames = [...]string{
	PropAlpha:   "alpha",
	PropOffsetX: "offset-x",
	PropOffsetY: "offset-y",
	PropScale:   "scale",
	PropWidth:   "width",
	PropValue:   "value",
}

func (p Property) String() string {
	if int(p) < len(propertyNames) {
		return propertyNames[p]
	}
	return fmt.Sprintf("property(%d)", uint8(p))
}

// ParseProperty returns the Property with the given name.
func ParseProperty(name string) (Property, error) {
	for i, n := range propertyNames {
		if n == name {
			return Property(i), nil
		}
	}
	return 0, fmt.Errorf("unknown property %q", name)
}

// Target is a settable property surface. Any rendering backend that can store
// and apply these properties can host the engine; *Region is the bundled
// implementation.
type Target interface {
	Property(p Property) float64
	SetProperty(p Property, v float64)
	IsDisposed() bool
}

// Bounded is anything with a document-space bounding box that the scroll
// observer can measure.
type Bounded interface {
	Bounds() Rect
	IsDisposed() bool
}

// alive reports whether t can still be written. Missing and disposed targets
// are treated the same: callers skip them silently.
func alive(t Target) bool {
	return t != nil && !t.IsDisposed()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
