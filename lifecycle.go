package marquee

import (
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Tab emphasis written to code-tab regions.
const (
	tabActiveAlpha   = 1.0
	tabInactiveAlpha = 0.35
)

// Lifecycle is everything one Mount wired onto a region tree. Every
// registration hands the lifecycle a disposer; Teardown runs them in reverse
// order, after which no tween, scroll listener or timer from this mount
// remains.
type Lifecycle struct {
	engine *Engine
	tree   *Region
	seq    int

	hero       *Timeline
	reveals    []*RevealGroup
	counters   []*Counter
	typewriter *Typewriter
	tabs       []*Region

	disposers []func()
	torn      bool
}

// Mount wires the page behaviors onto tree: the hero entrance timeline, the
// progress and parallax scrubs, one reveal group per reveal section, one
// counter per counter display, the benchmark values, and the typewriter on
// the active tab.
//
// Mounting while another lifecycle is live tears that one down first and logs
// a warning; the engine never runs two lifecycles at once.
func (e *Engine) Mount(tree *Region) (*Lifecycle, error) {
	if tree.IsDisposed() {
		return nil, ErrNilTree
	}
	if prev := e.current; prev != nil {
		e.log.Warn("mount while mounted, tearing down previous lifecycle",
			zap.Int("previous", prev.seq))
		prev.Teardown()
	}

	vp := e.Viewport()
	if vp.DocumentHeight == 0 {
		vp.DocumentHeight = tree.Box.Height
		e.Scroll(vp)
	}

	e.mounts++
	l := &Lifecycle{engine: e, tree: tree, seq: e.mounts}
	e.current = l

	l.mountHero()
	l.mountScrubs()
	l.mountReveals()
	l.mountCounters()
	l.mountBenchmarks()
	l.mountTypewriter()

	if e.debug {
		ts := debugCheckTree(e.log, tree)
		st := e.Stats()
		e.log.Debug("mounted",
			zap.Int("mount", l.seq),
			zap.Int("regions", ts.regions),
			zap.Int("hero_tweens", l.hero.Len()),
			zap.Int("reveal_groups", len(l.reveals)),
			zap.Int("counters", len(l.counters)),
			zap.Int("tweens", st.Tweens),
			zap.Int("listeners", st.Listeners),
			zap.Int("timers", st.Timers))
	}
	e.emit(Event{Type: EventMount, Mount: l.seq})
	return l, nil
}

// own records a disposer to run at teardown.
func (l *Lifecycle) own(fn func()) {
	l.disposers = append(l.disposers, fn)
}

func (l *Lifecycle) mountHero() {
	h := l.engine.cfg.Hero
	tl := NewTimeline()
	tl.Add(At(0), stepGroup(l.tree.Descendants(RoleHeroHeading), h.Heading))
	tl.Add(AfterPrevious(-h.Sub.Overlap), stepGroup(l.tree.Descendants(RoleHeroSub), h.Sub))
	tl.Add(AfterPrevious(-h.Illustration.Overlap), stepGroup(l.tree.Descendants(RoleHeroIllustration), h.Illustration))

	badges := l.tree.Descendants(RoleHUDBadge)
	groups := make([]Group, len(badges))
	for i, b := range badges {
		groups[i] = stepGroup([]*Region{b}, h.Badges)
	}
	tl.AddStagger(AfterPrevious(-h.Badges.Overlap), h.BadgeStagger, groups...)

	l.hero = tl
	l.engine.sched.Play(tl)
	l.own(tl.Revert)
}

// stepGroup builds an entrance for each target: fade in, plus rise and scale
// when the step asks for them.
func stepGroup(targets []*Region, s StepConfig) Group {
	fn := mustEase(s.Ease)
	var g Group
	for _, t := range targets {
		g = append(g, From(t, PropAlpha, 0, s.Duration, fn))
		if s.Rise != 0 {
			g = append(g, From(t, PropOffsetY, s.Rise, s.Duration, fn))
		}
		if s.FromScale != nil {
			g = append(g, From(t, PropScale, *s.FromScale, s.Duration, fn))
		}
	}
	return g
}

func (l *Lifecycle) mountScrubs() {
	for _, bar := range l.tree.Descendants(RoleProgressBar) {
		l.scrub(nil, bar, PropWidth, 0, 1, Edge{}, Edge{})
	}
	dist := l.engine.cfg.Parallax.Distance
	for _, layer := range l.tree.Descendants(RoleParallax) {
		l.scrub(l.tree, layer, PropOffsetY, 0, -dist, EdgeTopTop, EdgeBottomBottom)
	}
}

// scrub pins region.prop to scroll progress over trigger's range (the whole
// document when trigger is nil).
func (l *Lifecycle) scrub(trigger Bounded, region *Region, prop Property, from, to float64, start, end Edge) {
	prev := region.Property(prop)
	tw := NewTween(region, prop, from, to, 1, ease.Linear)
	tw.Seek(0)
	b := l.engine.sched.Observer().BindScrub(trigger, start, end, tw.Seek)
	l.own(func() {
		b.Dispose()
		tw.Cancel()
		region.SetProperty(prop, prev)
	})
}

func (l *Lifecycle) mountReveals() {
	rc := l.engine.cfg.Reveal
	opts := RevealOptions{
		Threshold: rc.Threshold,
		Duration:  rc.Duration,
		Rise:      rc.Rise,
		Ease:      mustEase(rc.Ease),
	}
	for _, section := range l.tree.Descendants(RoleRevealSection) {
		g := AttachReveal(l.engine.sched, section, rc.Stagger, opts)
		g.OnFire(func(g *RevealGroup) {
			l.engine.emit(Event{Type: EventRevealStart, Mount: l.seq, Region: g.Section.Name, Value: float64(len(g.Children))})
		})
		l.reveals = append(l.reveals, g)
		l.own(g.Dispose)
	}
}

func (l *Lifecycle) mountCounters() {
	cc := l.engine.cfg.Counter
	opts := CounterOptions{
		Threshold: cc.Threshold,
		Duration:  cc.Duration,
		Ease:      mustEase(cc.Ease),
	}
	feed := l.engine.cfg.Metrics
	for i, r := range l.tree.Descendants(RoleCounter) {
		prev := r.Text
		raw := prev
		if i < len(feed) {
			raw = feed[i].Value
		}
		c := AttachCounter(l.engine.sched, r, raw, opts)
		c.OnStart(func(c *Counter) {
			l.engine.emit(Event{Type: EventCounterStart, Mount: l.seq, Region: c.Target.Name, Value: c.Metric.Magnitude})
		})
		c.OnComplete(func(c *Counter) {
			l.engine.emit(Event{Type: EventCounterDone, Mount: l.seq, Region: c.Target.Name, Value: c.Metric.Magnitude})
		})
		l.counters = append(l.counters, c)
		l.own(func() {
			c.Dispose()
			r.SetText(prev)
		})
	}
}

func (l *Lifecycle) mountBenchmarks() {
	feed := l.engine.cfg.Benchmarks
	for i, r := range l.tree.Descendants(RoleBenchmark) {
		if i >= len(feed) {
			break
		}
		prev := r.Text
		r.SetText(feed[i].Value)
		l.own(func() { r.SetText(prev) })
	}
}

func (l *Lifecycle) mountTypewriter() {
	e := l.engine
	l.tabs = l.tree.Descendants(RoleCodeTab)
	prevAlpha := make([]float64, len(l.tabs))
	for i, t := range l.tabs {
		prevAlpha[i] = t.Alpha
	}
	l.own(func() {
		for i, t := range l.tabs {
			t.SetProperty(PropAlpha, prevAlpha[i])
		}
	})

	outputs := l.tree.Descendants(RoleCodeOutput)
	if len(outputs) == 0 {
		return
	}
	out := outputs[0]
	prev := out.Text
	tw := NewTypewriter(e.sched, out, e.cfg.Typewriter.Samples, e.cfg.Typewriter.Interval)
	tw.OnLoop(func(key string) {
		e.emit(Event{Type: EventTypewriterLoop, Mount: l.seq, Region: out.Name, Key: key})
	})
	l.typewriter = tw
	l.own(func() {
		tw.Stop()
		out.SetText(prev)
	})

	key := e.activeTab
	if err := tw.Start(key); err != nil {
		e.log.Warn("active tab has no sample, using initial", zap.String("key", key), zap.Error(err))
		key = e.cfg.InitialSample()
		if err := tw.Start(key); err != nil {
			e.log.Error("typewriter not started", zap.Error(err))
			return
		}
		e.activeTab = key
	}
	l.highlightTab(key)
}

func (l *Lifecycle) highlightTab(key string) {
	for _, t := range l.tabs {
		a := tabInactiveAlpha
		if t.Text == key {
			a = tabActiveAlpha
		}
		t.SetProperty(PropAlpha, a)
	}
}

func (l *Lifecycle) switchTab(key string) error {
	if l.typewriter == nil {
		_, err := lookupSample(l.engine.cfg.Typewriter.Samples, key)
		return err
	}
	if err := l.typewriter.Start(key); err != nil {
		return err
	}
	l.highlightTab(key)
	l.engine.emit(Event{Type: EventTabSwitch, Mount: l.seq, Key: key})
	return nil
}

// Teardown cancels every tween, removes every scroll listener, stops every
// timer and restores the properties this mount changed. Calling it again is a
// no-op, and it is safe to call from inside any engine callback.
func (l *Lifecycle) Teardown() {
	if l.torn {
		return
	}
	l.torn = true
	for i := len(l.disposers) - 1; i >= 0; i-- {
		l.disposers[i]()
	}
	l.disposers = nil

	e := l.engine
	if e.current == l {
		e.current = nil
	}
	if e.debug {
		if st := e.Stats(); st.Tweens+st.Listeners+st.Timers > 0 {
			e.log.Error("registrations survived teardown",
				zap.Int("mount", l.seq),
				zap.Int("tweens", st.Tweens),
				zap.Int("listeners", st.Listeners),
				zap.Int("timers", st.Timers))
		}
	}
	e.log.Debug("torn down", zap.Int("mount", l.seq))
	e.emit(Event{Type: EventTeardown, Mount: l.seq})
}

// TornDown reports whether Teardown has run.
func (l *Lifecycle) TornDown() bool { return l.torn }

// Seq returns the lifecycle's mount sequence number, starting at 1.
func (l *Lifecycle) Seq() int { return l.seq }

// Tree returns the mounted region tree.
func (l *Lifecycle) Tree() *Region { return l.tree }

// Hero returns the entrance timeline.
func (l *Lifecycle) Hero() *Timeline { return l.hero }

// Reveals returns the reveal groups, one per reveal section.
func (l *Lifecycle) Reveals() []*RevealGroup { return l.reveals }

// Counters returns the counters, one per counter display.
func (l *Lifecycle) Counters() []*Counter { return l.counters }

// Typewriter returns the typewriter, or nil when the tree has no code output.
func (l *Lifecycle) Typewriter() *Typewriter { return l.typewriter }
