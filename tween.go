package marquee

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenState is a tween's position in its lifecycle.
type TweenState uint8

const (
	TweenScheduled TweenState = iota // waiting out its delay
	TweenRunning                     // writing values each frame
	TweenComplete                    // reached its end value
	TweenCancelled                   // stopped early, last value left in place
)

func (s TweenState) String() string {
	switch s {
	case TweenScheduled:
		return "scheduled"
	case TweenRunning:
		return "running"
	case TweenComplete:
		return "complete"
	case TweenCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Tween animates one property of a Target from a start value to an end value.
// Drive it with Update(dt) for time-based playback or Seek(f) to pin its
// progress to an external value such as scroll position. If the target is
// missing or disposed the tween cancels itself and never writes.
type Tween struct {
	target   Target
	prop     Property
	from, to float64
	duration float32

	// Delay is the time the tween waits after being scheduled before its first
	// write. Set before the first Update.
	Delay float32

	// OnUpdate, if set, receives every value written to the target.
	OnUpdate func(v float64)
	// OnComplete, if set, runs once when the tween reaches its end value.
	OnComplete func()

	// clock runs 0 → 1 over duration; values are interpolated in float64 from
	// its progress.
	clock  *gween.Tween
	fn     EaseFunc
	waited float32
	value  float64
	state  TweenState
	reg    bool
}

// NewTween creates a tween of target.prop from → to over duration seconds. A
// nil fn is linear.
func NewTween(target Target, prop Property, from, to float64, duration float32, fn EaseFunc) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	if duration < 0 {
		duration = 0
	}
	return &Tween{
		target:   target,
		prop:     prop,
		from:     from,
		to:       to,
		duration: duration,
		clock:    gween.New(0, 1, duration, ease.Linear),
		fn:       fn,
		value:    from,
	}
}

// Update advances the tween by dt seconds, consuming any remaining delay
// first, and writes the interpolated value to the target.
func (t *Tween) Update(dt float32) {
	if t.state >= TweenComplete {
		return
	}
	if !alive(t.target) {
		t.state = TweenCancelled
		return
	}

	if t.state == TweenScheduled {
		remaining := t.Delay - t.waited
		if dt < remaining {
			t.waited += dt
			return
		}
		t.waited = t.Delay
		dt -= remaining
		t.state = TweenRunning
	}

	f, finished := t.clock.Update(dt)
	if finished {
		t.apply(t.to)
		t.state = TweenComplete
		if t.OnComplete != nil {
			t.OnComplete()
		}
		return
	}
	t.apply(Interpolate(t.from, t.to, float64(f), t.fn))
}

// Seek pins the tween at progress fraction f (clamped to [0, 1]) without any
// time base. Seeking never completes the tween, so it can be moved back and
// forth indefinitely; it is how scroll-scrubbed properties are driven.
func (t *Tween) Seek(f float64) {
	if t.state >= TweenComplete {
		return
	}
	if !alive(t.target) {
		t.state = TweenCancelled
		return
	}
	t.state = TweenRunning
	f = clamp01(f)
	t.clock.Set(float32(f) * t.duration)
	t.apply(Interpolate(t.from, t.to, f, t.fn))
}

// Cancel stops the tween immediately. The last written value stays in place.
// Safe to call from the tween's own callbacks and on finished tweens.
func (t *Tween) Cancel() {
	if t.state >= TweenComplete {
		return
	}
	t.state = TweenCancelled
}

// State returns the tween's lifecycle state.
func (t *Tween) State() TweenState { return t.state }

// Done reports whether the tween has completed or been cancelled.
func (t *Tween) Done() bool { return t.state >= TweenComplete }

// Value returns the last value written (or the start value before the first write).
func (t *Tween) Value() float64 { return t.value }

// Duration returns the tween's running time, excluding Delay.
func (t *Tween) Duration() float32 { return t.duration }

// Target returns the animated target.
func (t *Tween) Target() Target { return t.target }

// Property returns the animated property.
func (t *Tween) Property() Property { return t.prop }

func (t *Tween) apply(v float64) {
	t.value = v
	t.target.SetProperty(t.prop, v)
	if t.OnUpdate != nil {
		t.OnUpdate(v)
	}
}

// runner implementation, so the scheduler can drive standalone tweens.

func (t *Tween) advance(dt float32) { t.Update(dt) }
func (t *Tween) finished() bool     { return t.Done() }
func (t *Tween) stop()              { t.Cancel() }
func (t *Tween) registered() *bool  { return &t.reg }
