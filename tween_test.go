package marquee

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenReachesTarget(t *testing.T) {
	r := NewRegion("r", RoleNone, Rect{})
	tw := NewTween(r, PropOffsetY, 40, 0, 1.0, ease.OutCubic)

	// Exact halves avoid float32 accumulation drift.
	tw.Update(0.5)
	if tw.State() != TweenRunning {
		t.Fatalf("state = %v, want running", tw.State())
	}
	if r.OffsetY <= 0 || r.OffsetY >= 40 {
		t.Errorf("midway OffsetY = %v, want strictly between 0 and 40", r.OffsetY)
	}
	tw.Update(0.5)

	if !tw.Done() || tw.State() != TweenComplete {
		t.Fatalf("state = %v, want complete", tw.State())
	}
	if r.OffsetY != 0 {
		t.Errorf("OffsetY = %v, want exactly 0", r.OffsetY)
	}
}

func TestTweenDelay(t *testing.T) {
	r := NewRegion("r", RoleNone, Rect{})
	r.Alpha = 0.7
	tw := NewTween(r, PropAlpha, 0, 1, 1.0, ease.Linear)
	tw.Delay = 0.5

	tw.Update(0.25)
	if tw.State() != TweenScheduled {
		t.Fatalf("state = %v, want scheduled", tw.State())
	}
	if r.Alpha != 0.7 {
		t.Errorf("tween wrote during its delay: alpha %v", r.Alpha)
	}

	// 0.25 finishes the delay, the remaining 0.25 runs the tween.
	tw.Update(0.5)
	if tw.State() != TweenRunning {
		t.Fatalf("state = %v, want running", tw.State())
	}
	if math.Abs(r.Alpha-0.25) > 1e-4 {
		t.Errorf("alpha = %v, want ~0.25", r.Alpha)
	}
}

func TestTweenDisposedTargetCancelsSilently(t *testing.T) {
	r := NewRegion("r", RoleNone, Rect{})
	tw := NewTween(r, PropAlpha, 0, 1, 1.0, ease.Linear)
	completed := false
	tw.OnComplete = func() { completed = true }

	r.Dispose()
	tw.Update(2)

	if tw.State() != TweenCancelled {
		t.Errorf("state = %v, want cancelled", tw.State())
	}
	if completed {
		t.Error("OnComplete ran for a disposed target")
	}
}

func TestTweenNilTarget(t *testing.T) {
	tw := NewTween(nil, PropAlpha, 0, 1, 1.0, nil)
	tw.Update(0.5)
	tw.Seek(0.5)
	if tw.State() != TweenCancelled {
		t.Errorf("state = %v, want cancelled", tw.State())
	}
}

func TestTweenOnCompleteOnce(t *testing.T) {
	r := NewRegion("r", RoleNone, Rect{})
	tw := NewTween(r, PropValue, 0, 10, 0.5, ease.Linear)
	n := 0
	tw.OnComplete = func() { n++ }

	tw.Update(0.5)
	tw.Update(0.5)
	if n != 1 {
		t.Errorf("OnComplete ran %d times, want 1", n)
	}
}

func TestTweenCancelFromOnUpdate(t *testing.T) {
	r := NewRegion("r", RoleNone, Rect{})
	tw := NewTween(r, PropValue, 0, 10, 1.0, ease.Linear)
	tw.OnUpdate = func(float64) { tw.Cancel() }

	tw.Update(0.5)
	last := r.Value
	tw.Update(0.5)

	if tw.State() != TweenCancelled {
		t.Errorf("state = %v, want cancelled", tw.State())
	}
	if r.Value != last {
		t.Errorf("cancelled tween kept writing: %v then %v", last, r.Value)
	}
}

func TestTweenSeek(t *testing.T) {
	r := NewRegion("r", RoleNone, Rect{})
	tw := NewTween(r, PropOffsetY, 0, -100, 1, ease.Linear)

	tests := []struct {
		f, want float64
	}{
		{0, 0},
		{1, -100},
		{0.5, -50},
		{-3, 0},
		{7, -100},
		{0.25, -25},
	}
	for _, tt := range tests {
		tw.Seek(tt.f)
		if math.Abs(r.OffsetY-tt.want) > 1e-4 {
			t.Errorf("Seek(%v): OffsetY = %v, want %v", tt.f, r.OffsetY, tt.want)
		}
	}
	if tw.Done() {
		t.Error("seeking must never complete a tween")
	}

	tw.Cancel()
	tw.Seek(1)
	if math.Abs(r.OffsetY+25) > 1e-4 {
		t.Errorf("Seek after Cancel wrote %v", r.OffsetY)
	}
}

func TestTweenZeroDuration(t *testing.T) {
	r := NewRegion("r", RoleNone, Rect{})
	tw := NewTween(r, PropAlpha, 0, 0.5, 0, ease.Linear)
	tw.Update(0)
	if !tw.Done() || r.Alpha != 0.5 {
		t.Errorf("zero-length tween: done %v alpha %v", tw.Done(), r.Alpha)
	}
}

func TestTweenStateString(t *testing.T) {
	tests := map[TweenState]string{
		TweenScheduled: "scheduled",
		TweenRunning:   "running",
		TweenComplete:  "complete",
		TweenCancelled: "cancelled",
		TweenState(9):  "unknown",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}

func TestTweenInterpolatesInFloat64(t *testing.T) {
	r := NewRegion("r", RoleCounter, Rect{})
	tw := NewTween(r, PropValue, 0, 123456789, 1, ease.Linear)

	tw.Update(0.25)
	if want := Interpolate(0, 123456789, 0.25, ease.Linear); r.Value != want || want != 30864197.25 {
		t.Errorf("value = %v, want %v", r.Value, want)
	}

	tw.Seek(0.75)
	if want := Interpolate(0, 123456789, 0.75, ease.Linear); r.Value != want {
		t.Errorf("seek value = %v, want %v", r.Value, want)
	}
}
