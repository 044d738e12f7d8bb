package marquee

import (
	"testing"

	"go.uber.org/goleak"
)

// The engine never starts goroutines; keep it that way.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{110, 70, true},
		{60, 45, true},
		{9, 20, false},
		{60, 71, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		b    Rect
		want bool
	}{
		{Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{Rect{X: 10, Y: 0, Width: 5, Height: 5}, true},
		{Rect{X: 11, Y: 0, Width: 5, Height: 5}, false},
	}
	for _, tt := range tests {
		if got := a.Intersects(tt.b); got != tt.want {
			t.Errorf("Intersects(%+v) = %v, want %v", tt.b, got, tt.want)
		}
	}
}

func TestViewportMaxScroll(t *testing.T) {
	tests := []struct {
		vp   Viewport
		want float64
	}{
		{Viewport{Height: 800, DocumentHeight: 5000}, 4200},
		{Viewport{Height: 800, DocumentHeight: 800}, 0},
		{Viewport{Height: 800, DocumentHeight: 300}, 0},
		{Viewport{}, 0},
	}
	for _, tt := range tests {
		if got := tt.vp.MaxScroll(); got != tt.want {
			t.Errorf("%+v.MaxScroll() = %v, want %v", tt.vp, got, tt.want)
		}
	}
}

func TestParseProperty(t *testing.T) {
	for _, p := range []Property{PropAlpha, PropOffsetX, PropOffsetY, PropScale, PropWidth, PropValue} {
		got, err := ParseProperty(p.String())
		if err != nil || got != p {
			t.Errorf("ParseProperty(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParseProperty("rotation"); err == nil {
		t.Error("expected error for unknown property")
	}
}

func TestRoleString(t *testing.T) {
	if RoleCounter.String() != "counter" {
		t.Errorf("RoleCounter = %q", RoleCounter.String())
	}
	if Role(200).String() != "role(200)" {
		t.Errorf("Role(200) = %q", Role(200).String())
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct{ in, want float64 }{{-1, 0}, {0, 0}, {0.3, 0.3}, {1, 1}, {2, 1}}
	for _, tt := range tests {
		if got := clamp01(tt.in); got != tt.want {
			t.Errorf("clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
