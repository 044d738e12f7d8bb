package marquee

type positionKind uint8

const (
	posAfterPrevious positionKind = iota
	posAbsolute
	posWithPrevious
)

// Position places a timeline entry.
type Position struct {
	kind   positionKind
	offset float32
}

// At places an entry at an absolute time from the timeline's start.
func At(seconds float32) Position {
	return Position{kind: posAbsolute, offset: seconds}
}

// AfterPrevious places an entry relative to the end of the previous entry. A
// negative offset overlaps it: AfterPrevious(-0.6) starts 0.6s before the
// previous entry finishes. The zero Position is AfterPrevious(0).
func AfterPrevious(offset float32) Position {
	return Position{kind: posAfterPrevious, offset: offset}
}

// WithPrevious places an entry relative to the start of the previous entry.
func WithPrevious(offset float32) Position {
	return Position{kind: posWithPrevious, offset: offset}
}

// TweenSpec describes a tween a timeline creates when it plays.
type TweenSpec struct {
	Target   Target
	Property Property
	From, To float64
	Duration float32
	Ease     EaseFunc
}

// From builds a spec that animates target.prop from v to its current value,
// the usual shape of an entrance.
func From(target Target, prop Property, v float64, duration float32, fn EaseFunc) TweenSpec {
	to := v
	if alive(target) {
		to = target.Property(prop)
	}
	return TweenSpec{Target: target, Property: prop, From: v, To: to, Duration: duration, Ease: fn}
}

// Group is a set of specs that start together, typically several properties
// of one target or the same property of several targets.
type Group []TweenSpec

func (g Group) duration() float32 {
	var d float32
	for _, s := range g {
		d = max(d, s.Duration)
	}
	return d
}

type timelineEntry struct {
	spec  TweenSpec
	start float32
	tween *Tween
}

type savedValue struct {
	target Target
	prop   Property
	value  float64
}

// Timeline sequences tweens with relative offsets and plays, cancels, or
// reverts them as one unit. Its duration is the latest entry end.
//
// Playing renders every entry's start value at once, so staggered or delayed
// entries wait in their initial state. Revert restores every animated property
// to the value it had before the timeline first touched it.
type Timeline struct {
	entries   []*timelineEntry
	prevStart float32
	prevEnd   float32

	saved    []savedValue
	primed   bool
	playing  bool
	complete bool
	reg      bool
}

// NewTimeline creates an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

func (tl *Timeline) resolve(pos Position) float32 {
	var start float32
	switch pos.kind {
	case posAbsolute:
		start = pos.offset
	case posWithPrevious:
		start = tl.prevStart + pos.offset
	default:
		start = tl.prevEnd + pos.offset
	}
	return max(start, 0)
}

// Add appends a group of specs that start together at pos.
func (tl *Timeline) Add(pos Position, g Group) *Timeline {
	start := tl.resolve(pos)
	for _, s := range g {
		tl.entries = append(tl.entries, &timelineEntry{spec: s, start: start})
	}
	tl.prevStart = start
	tl.prevEnd = start + g.duration()
	return tl
}

// AddStagger appends groups whose starts are spaced interval apart: group i
// starts at pos + i·interval. The whole stagger counts as one entry for the
// next relative position.
func (tl *Timeline) AddStagger(pos Position, interval float32, groups ...Group) *Timeline {
	start := tl.resolve(pos)
	end := start
	for i, g := range groups {
		gs := start + float32(i)*interval
		for _, s := range g {
			tl.entries = append(tl.entries, &timelineEntry{spec: s, start: gs})
		}
		end = max(end, gs+g.duration())
	}
	tl.prevStart = start
	tl.prevEnd = end
	return tl
}

// AddTimeline nests sub at pos. Its entries are copied, shifted by the resolved
// start; sub itself is left untouched.
func (tl *Timeline) AddTimeline(pos Position, sub *Timeline) *Timeline {
	if sub == nil {
		return tl
	}
	start := tl.resolve(pos)
	for _, e := range sub.entries {
		tl.entries = append(tl.entries, &timelineEntry{spec: e.spec, start: start + e.start})
	}
	tl.prevStart = start
	tl.prevEnd = start + sub.Duration()
	return tl
}

// Len returns the number of tweens in the timeline.
func (tl *Timeline) Len() int {
	return len(tl.entries)
}

// Duration returns the latest entry end: max(start + duration).
func (tl *Timeline) Duration() float32 {
	var d float32
	for _, e := range tl.entries {
		d = max(d, e.start+e.spec.Duration)
	}
	return d
}

// Offsets returns each tween's resolved start time, in insertion order.
func (tl *Timeline) Offsets() []float32 {
	out := make([]float32, len(tl.entries))
	for i, e := range tl.entries {
		out[i] = e.start
	}
	return out
}

// Prime records the current value of every animated property and renders each
// entry's start value. Play primes automatically; call Prime directly to hide
// entrance targets before the timeline is triggered.
func (tl *Timeline) Prime() {
	if tl.primed {
		return
	}
	tl.primed = true
	tl.saved = tl.saved[:0]
	for _, e := range tl.entries {
		if !alive(e.spec.Target) || tl.hasSaved(e.spec.Target, e.spec.Property) {
			continue
		}
		tl.saved = append(tl.saved, savedValue{
			target: e.spec.Target,
			prop:   e.spec.Property,
			value:  e.spec.Target.Property(e.spec.Property),
		})
	}
	// Reverse order so the earliest entry on a property wins.
	for i := len(tl.entries) - 1; i >= 0; i-- {
		s := tl.entries[i].spec
		if alive(s.Target) {
			s.Target.SetProperty(s.Property, s.From)
		}
	}
}

func (tl *Timeline) hasSaved(t Target, p Property) bool {
	for _, sv := range tl.saved {
		if sv.target == t && sv.prop == p {
			return true
		}
	}
	return false
}

// Play starts every entry at its resolved offset. Register the timeline with
// Scheduler.Play to have it advanced each frame; an empty timeline completes
// immediately.
func (tl *Timeline) Play() {
	tl.Prime()
	tl.playing = true
	tl.complete = len(tl.entries) == 0
	for _, e := range tl.entries {
		s := e.spec
		e.tween = NewTween(s.Target, s.Property, s.From, s.To, s.Duration, s.Ease)
		e.tween.Delay = e.start
	}
}

// Playing reports whether the timeline has been played and has not finished,
// been cancelled, or been reverted.
func (tl *Timeline) Playing() bool {
	return tl.playing && !tl.complete
}

// Complete reports whether every entry has finished.
func (tl *Timeline) Complete() bool {
	return tl.complete
}

// Cancel stops every running entry, leaving current values in place.
func (tl *Timeline) Cancel() {
	for _, e := range tl.entries {
		if e.tween != nil {
			e.tween.Cancel()
		}
	}
	tl.playing = false
}

// Revert cancels the timeline and restores every animated property to its
// pre-timeline value. The timeline can be played again afterwards.
func (tl *Timeline) Revert() {
	tl.Cancel()
	if tl.primed {
		for i := len(tl.saved) - 1; i >= 0; i-- {
			sv := tl.saved[i]
			if alive(sv.target) {
				sv.target.SetProperty(sv.prop, sv.value)
			}
		}
	}
	tl.saved = tl.saved[:0]
	tl.primed = false
	tl.complete = false
	for _, e := range tl.entries {
		e.tween = nil
	}
}

func (tl *Timeline) advance(dt float32) {
	if !tl.playing || tl.complete {
		return
	}
	done := true
	for _, e := range tl.entries {
		tw := e.tween
		if tw == nil {
			continue
		}
		tw.Update(dt)
		if !tw.Done() {
			done = false
		}
	}
	// A callback may have cancelled or reverted the timeline mid-pass.
	if tl.playing {
		tl.complete = done
	}
}

func (tl *Timeline) finished() bool    { return !tl.playing || tl.complete }
func (tl *Timeline) stop()             { tl.Cancel() }
func (tl *Timeline) registered() *bool { return &tl.reg }
