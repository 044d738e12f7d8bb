package marquee

// Edge names a trigger line as a pair of fractions: a point on the target
// (0 = its top, 1 = its bottom) and a point on the viewport (0 = top, 1 =
// bottom). The line is crossed when the target point scrolls up past the
// viewport point. Edge{Target: 0, Viewport: 0.9} reads "top 90%".
type Edge struct {
	Target   float64
	Viewport float64
}

var (
	EdgeTopTop       = Edge{Target: 0, Viewport: 0}
	EdgeBottomBottom = Edge{Target: 1, Viewport: 1}
)

// scrollFor returns the ScrollY at which e is exactly crossed for a target
// with box b.
func (e Edge) scrollFor(b Rect, vp Viewport) float64 {
	return b.Y + e.Target*b.Height - e.Viewport*vp.Height
}

// BindingMode selects how a binding reacts to scroll.
type BindingMode uint8

const (
	ModeEnterOnce BindingMode = iota // fire once on the first crossing
	ModeScrub                        // map scroll position to progress continuously
)

// BindingState is the enter-once state machine. Scrub bindings stay Armed.
type BindingState uint8

const (
	BindingArmed BindingState = iota
	BindingFired
)

// Binding is one registration on the scroll observer.
type Binding struct {
	Target Bounded // nil for document-wide scrubs
	Mode   BindingMode
	Start  Edge
	End    Edge

	state      BindingState
	onEnter    func()
	onProgress func(p float64)
	progress   float64
	reported   bool
	removed    bool
	observer   *Observer
}

// State returns the binding's enter-once state.
func (b *Binding) State() BindingState { return b.state }

// Progress returns the last progress delivered to a scrub binding.
func (b *Binding) Progress() float64 { return b.progress }

// Dispose removes the binding from its observer and forgets its fired state.
// Safe to call more than once and from inside the binding's own callback.
func (b *Binding) Dispose() {
	if b == nil || b.removed {
		return
	}
	b.removed = true
	b.state = BindingArmed
	if m, ok := b.Target.(interface{ markEntered(bool) }); ok && b.Mode == ModeEnterOnce {
		m.markEntered(false)
	}
	b.observer.remove(b)
}

func (b *Binding) update(vp Viewport) {
	if b.Target != nil && b.Target.IsDisposed() {
		return
	}
	switch b.Mode {
	case ModeEnterOnce:
		if b.state == BindingFired {
			return
		}
		if vp.ScrollY < b.Start.scrollFor(b.Target.Bounds(), vp) {
			return
		}
		b.state = BindingFired
		if m, ok := b.Target.(interface{ markEntered(bool) }); ok {
			m.markEntered(true)
		}
		if b.onEnter != nil {
			b.onEnter()
		}
	case ModeScrub:
		var p float64
		if b.Target == nil {
			p = scrubProgress(vp.ScrollY, 0, vp.MaxScroll())
		} else {
			box := b.Target.Bounds()
			p = scrubProgress(vp.ScrollY, b.Start.scrollFor(box, vp), b.End.scrollFor(box, vp))
		}
		if b.reported && p == b.progress {
			return
		}
		b.progress = p
		b.reported = true
		if b.onProgress != nil {
			b.onProgress(p)
		}
	}
}

// scrubProgress maps scroll into [0, 1] over [start, end]. A degenerate range
// behaves as a step at start.
func scrubProgress(scroll, start, end float64) float64 {
	if end <= start {
		if scroll >= start {
			return 1
		}
		return 0
	}
	return clamp01((scroll - start) / (end - start))
}

// Observer tracks the viewport and drives scroll bindings. Scroll and resize
// events only record the new viewport; bindings are recomputed at most once per
// frame when the scheduler flushes the observer.
type Observer struct {
	vp       Viewport
	bindings []*Binding
	dirty    bool
	flushes  int
}

func newObserver() *Observer {
	return &Observer{}
}

// SetViewport records a scroll or resize. Any number of calls within one frame
// cost one recomputation.
func (o *Observer) SetViewport(vp Viewport) {
	o.vp = vp
	o.dirty = true
}

// ScrollTo records a scroll to y, clamped to the scrollable range.
func (o *Observer) ScrollTo(y float64) {
	vp := o.vp
	vp.ScrollY = min(max(y, 0), vp.MaxScroll())
	o.SetViewport(vp)
}

// Viewport returns the last recorded viewport.
func (o *Observer) Viewport() Viewport {
	return o.vp
}

// BindEnterOnce registers onEnter to run the first time target's top edge
// crosses threshold (a fraction of viewport height, from the top). Crossings
// after the first are ignored. A nil or disposed target never fires.
func (o *Observer) BindEnterOnce(target Bounded, threshold float64, onEnter func()) *Binding {
	b := &Binding{
		Target:   target,
		Mode:     ModeEnterOnce,
		Start:    Edge{Target: 0, Viewport: threshold},
		onEnter:  onEnter,
		observer: o,
	}
	if target == nil {
		b.removed = true
		return b
	}
	return o.add(b)
}

// BindScrub registers onProgress to receive scroll progress in [0, 1] between
// the start and end edges of target. With a nil target the range is the whole
// document, from the top to the maximum scroll.
func (o *Observer) BindScrub(target Bounded, start, end Edge, onProgress func(p float64)) *Binding {
	b := &Binding{
		Target:     target,
		Mode:       ModeScrub,
		Start:      start,
		End:        end,
		onProgress: onProgress,
		observer:   o,
	}
	return o.add(b)
}

// Listeners returns the number of registered bindings.
func (o *Observer) Listeners() int {
	return len(o.bindings)
}

// Flushes returns how many times bindings have been recomputed.
func (o *Observer) Flushes() int {
	return o.flushes
}

func (o *Observer) add(b *Binding) *Binding {
	o.bindings = append(o.bindings, b)
	// New bindings evaluate against the current viewport on the next frame,
	// so a target that is already past its trigger fires immediately.
	o.dirty = true
	return b
}

func (o *Observer) remove(b *Binding) {
	for i, c := range o.bindings {
		if c == b {
			copy(o.bindings[i:], o.bindings[i+1:])
			o.bindings[len(o.bindings)-1] = nil
			o.bindings = o.bindings[:len(o.bindings)-1]
			return
		}
	}
}

// flush recomputes every binding against the current viewport if anything
// changed since the last frame.
func (o *Observer) flush() {
	if !o.dirty || o.vp.Height <= 0 {
		return
	}
	o.dirty = false
	o.flushes++

	// Iterate over a snapshot: callbacks may dispose bindings or add new ones.
	snapshot := append([]*Binding(nil), o.bindings...)
	for _, b := range snapshot {
		if b.removed {
			continue
		}
		b.update(o.vp)
	}
}
