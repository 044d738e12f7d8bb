package marquee

// RevealOptions configures how a section's children enter.
type RevealOptions struct {
	Threshold float64  // viewport fraction the section's top must cross
	Duration  float32  // per-child tween duration
	Rise      float64  // starting vertical offset, animated back to 0
	Ease      EaseFunc // per-child curve
}

// RevealGroup fades and raises a section's reveal children, staggered in
// document order, the first time the section enters the viewport. It never
// fires again for the life of the attachment.
type RevealGroup struct {
	Section  *Region
	Children []*Region
	Stagger  float32

	sched    *Scheduler
	binding  *Binding
	timeline *Timeline
	fired    bool
	onFire   func(*RevealGroup)
}

// AttachReveal scans section for reveal children, hides them in their start
// state, and binds the reveal to the section's first entry. A missing section
// or one without children yields an inert group.
func AttachReveal(sched *Scheduler, section *Region, stagger float32, opts RevealOptions) *RevealGroup {
	g := &RevealGroup{Section: section, Stagger: stagger, sched: sched}
	if section.IsDisposed() {
		return g
	}
	g.Children = section.Descendants(RoleRevealChild)
	if len(g.Children) == 0 {
		return g
	}

	groups := make([]Group, len(g.Children))
	for i, c := range g.Children {
		groups[i] = Group{
			{Target: c, Property: PropAlpha, From: 0, To: 1, Duration: opts.Duration, Ease: opts.Ease},
			{Target: c, Property: PropOffsetY, From: opts.Rise, To: 0, Duration: opts.Duration, Ease: opts.Ease},
		}
	}
	g.timeline = NewTimeline().AddStagger(At(0), stagger, groups...)
	g.timeline.Prime()
	g.binding = sched.Observer().BindEnterOnce(section, opts.Threshold, g.fire)
	return g
}

// OnFire sets a callback run when the group fires.
func (g *RevealGroup) OnFire(fn func(*RevealGroup)) {
	g.onFire = fn
}

// Offsets returns each child's start offset: index × stagger.
func (g *RevealGroup) Offsets() []float32 {
	out := make([]float32, len(g.Children))
	if g.timeline == nil {
		return out
	}
	all := g.timeline.Offsets()
	// Two tweens per child, both at the child's offset.
	for i := range out {
		out[i] = all[i*2]
	}
	return out
}

// Fired reports whether the reveal has been triggered.
func (g *RevealGroup) Fired() bool {
	return g.fired
}

func (g *RevealGroup) fire() {
	if g.fired || g.timeline == nil {
		return
	}
	g.fired = true
	g.sched.Play(g.timeline)
	if g.onFire != nil {
		g.onFire(g)
	}
}

// Dispose removes the scroll binding and restores the children to their
// pre-attach state.
func (g *RevealGroup) Dispose() {
	g.binding.Dispose()
	if g.timeline != nil {
		g.timeline.Revert()
	}
	g.fired = false
}
