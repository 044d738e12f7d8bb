package marquee

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// --- Constructor defaults ---

func TestNewRegionDefaults(t *testing.T) {
	box := Rect{X: 1, Y: 2, Width: 3, Height: 4}
	r := NewRegion("hero", RoleHeroHeading, box)
	if r.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if r.Name != "hero" || r.Role != RoleHeroHeading || r.Box != box {
		t.Errorf("identity = %q %v %v", r.Name, r.Role, r.Box)
	}
	if r.Alpha != 1 || r.Scale != 1 || r.Width != 1 {
		t.Errorf("visual defaults = alpha %v scale %v width %v, want 1 1 1", r.Alpha, r.Scale, r.Width)
	}
	if r.OffsetX != 0 || r.OffsetY != 0 || r.Value != 0 {
		t.Error("offsets and value should start at 0")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewRegion("a", RoleNone, Rect{})
	b := NewRegion("b", RoleNone, Rect{})
	if a.ID == b.ID {
		t.Errorf("IDs should be unique: %d, %d", a.ID, b.ID)
	}
}

// --- Properties ---

func TestRegionPropertyRoundTrip(t *testing.T) {
	r := NewRegion("r", RoleNone, Rect{})
	props := []Property{PropAlpha, PropOffsetX, PropOffsetY, PropScale, PropWidth, PropValue}
	for i, p := range props {
		v := float64(i) + 0.5
		r.SetProperty(p, v)
		if got := r.Property(p); got != v {
			t.Errorf("%v = %v, want %v", p, got, v)
		}
	}
}

func TestDisposedRegionDropsWrites(t *testing.T) {
	r := NewRegion("r", RoleNone, Rect{})
	r.Dispose()
	r.SetProperty(PropAlpha, 0.2)
	r.SetText("late")
	if r.Alpha != 1 || r.Text != "" {
		t.Errorf("disposed region was written: alpha %v text %q", r.Alpha, r.Text)
	}
}

func TestNilRegionIsDisposed(t *testing.T) {
	var r *Region
	if !r.IsDisposed() {
		t.Error("nil region should report disposed")
	}
	if r.Entered() {
		t.Error("nil region should not report entered")
	}
}

// --- Tree ---

func TestAddChildBasic(t *testing.T) {
	parent := NewRegion("parent", RoleNone, Rect{})
	child := NewRegion("child", RoleNone, Rect{})
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if len(parent.Children()) != 1 || parent.Children()[0] != child {
		t.Error("parent should hold child")
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewRegion("p1", RoleNone, Rect{})
	p2 := NewRegion("p2", RoleNone, Rect{})
	child := NewRegion("child", RoleNone, Rect{})

	p1.AddChild(child)
	p2.AddChild(child)
	if len(p1.Children()) != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if child.Parent != p2 {
		t.Error("child.Parent should be p2")
	}
}

func TestAddChildCyclePanic(t *testing.T) {
	a := NewRegion("a", RoleNone, Rect{})
	b := NewRegion("b", RoleNone, Rect{})
	a.AddChild(b)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on cycle")
		}
	}()
	b.AddChild(a)
}

func TestAddChildNilPanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on nil child")
		}
	}()
	NewRegion("a", RoleNone, Rect{}).AddChild(nil)
}

func TestRemoveChildWrongParentPanic(t *testing.T) {
	a := NewRegion("a", RoleNone, Rect{})
	b := NewRegion("b", RoleNone, Rect{})
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic removing a non-child")
		}
	}()
	a.RemoveChild(b)
}

func TestRemoveFromParentNoOp(t *testing.T) {
	r := NewRegion("r", RoleNone, Rect{})
	r.RemoveFromParent()
	if r.Parent != nil {
		t.Error("Parent should stay nil")
	}
}

func TestDescendantsDocumentOrder(t *testing.T) {
	root := NewRegion("root", RoleRevealSection, Rect{})
	a := NewRegion("a", RoleRevealChild, Rect{})
	b := NewRegion("b", RoleNone, Rect{})
	c := NewRegion("c", RoleRevealChild, Rect{})
	d := NewRegion("d", RoleRevealChild, Rect{})
	root.AddChild(a)
	root.AddChild(b)
	b.AddChild(c)
	root.AddChild(d)

	var names []string
	for _, r := range root.Descendants(RoleRevealChild) {
		names = append(names, r.Name)
	}
	if diff := cmp.Diff([]string{"a", "c", "d"}, names); diff != "" {
		t.Errorf("Descendants mismatch (-want +got):\n%s", diff)
	}
	if got := root.Descendants(RoleRevealSection); len(got) != 0 {
		t.Error("Descendants should not include the root")
	}
}

func TestFind(t *testing.T) {
	tree := BuildLandingPage(DefaultConfig())
	if r := tree.Find("code-output"); r == nil || r.Role != RoleCodeOutput {
		t.Errorf("Find(code-output) = %v", r)
	}
	if r := tree.Find("missing"); r != nil {
		t.Errorf("Find(missing) = %v, want nil", r)
	}
}

func TestDispose(t *testing.T) {
	parent := NewRegion("parent", RoleNone, Rect{})
	child := NewRegion("child", RoleNone, Rect{})
	grandchild := NewRegion("grandchild", RoleNone, Rect{})
	parent.AddChild(child)
	child.AddChild(grandchild)

	child.Dispose()

	if len(parent.Children()) != 0 {
		t.Error("disposed child should be removed from parent")
	}
	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("child and grandchild should be disposed")
	}
	if child.ID != 0 {
		t.Error("disposed ID should be 0")
	}
}

func TestDisposeIdempotent(t *testing.T) {
	r := NewRegion("r", RoleNone, Rect{})
	r.Dispose()
	r.Dispose()
}

// --- Viewport helpers ---

func TestInViewport(t *testing.T) {
	r := NewRegion("r", RoleNone, Rect{Y: 1000, Height: 100})
	tests := []struct {
		scroll float64
		want   bool
	}{
		{0, false},
		{200, true},
		{500, true},
		{1100, true},
		{1101, false},
	}
	for _, tt := range tests {
		vp := Viewport{ScrollY: tt.scroll, Height: 800, DocumentHeight: 5000}
		if got := r.InViewport(vp); got != tt.want {
			t.Errorf("scroll %v: InViewport = %v, want %v", tt.scroll, got, tt.want)
		}
	}
}

func TestWorldAlpha(t *testing.T) {
	parent := NewRegion("p", RoleNone, Rect{})
	child := NewRegion("c", RoleNone, Rect{})
	parent.AddChild(child)
	parent.Alpha = 0.5
	child.Alpha = 0.5
	if got := child.WorldAlpha(); got != 0.25 {
		t.Errorf("WorldAlpha = %v, want 0.25", got)
	}
}

func TestScreenRect(t *testing.T) {
	parent := NewRegion("p", RoleNone, Rect{})
	child := NewRegion("c", RoleNone, Rect{X: 10, Y: 500, Width: 100, Height: 40})
	parent.AddChild(child)
	parent.OffsetY = 20
	child.OffsetY = 5
	child.Scale = 0.5

	got := child.ScreenRect(Viewport{ScrollY: 400, Height: 800})
	want := Rect{X: 35, Y: 135, Width: 50, Height: 20}
	if got != want {
		t.Errorf("ScreenRect = %+v, want %+v", got, want)
	}
}
