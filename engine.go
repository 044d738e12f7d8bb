package marquee

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// ErrNilTree is returned by Mount when no region tree is supplied.
var ErrNilTree = errors.New("marquee: nil region tree")

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithEventSink forwards engine events to sink.
func WithEventSink(sink EventSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithDebug enables debug mode: per-mount registration counts are logged and
// teardown verifies that nothing survived it.
func WithDebug(enabled bool) Option {
	return func(e *Engine) { e.debug = enabled }
}

// Stats counts live registrations.
type Stats struct {
	Tweens    int  `json:"tweens"`
	Listeners int  `json:"listeners"`
	Timers    int  `json:"timers"`
	Mounted   bool `json:"mounted"`
}

// Engine owns the scheduler and scroll observer and mounts lifecycles on
// region trees. Create it once, before the first Mount; this replaces any
// process-wide plugin registration. An Engine is not safe for concurrent use:
// call every method from the host's frame loop.
type Engine struct {
	cfg   Config
	sched *Scheduler
	log   *zap.Logger
	sink  EventSink
	debug bool

	current   *Lifecycle
	mounts    int
	activeTab string
}

// NewEngine validates cfg and creates an engine.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:       cfg,
		sched:     NewScheduler(),
		log:       zap.NewNop(),
		activeTab: cfg.InitialSample(),
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Scheduler returns the engine's scheduler.
func (e *Engine) Scheduler() *Scheduler {
	return e.sched
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *zap.Logger {
	return e.log
}

// Current returns the live lifecycle, or nil.
func (e *Engine) Current() *Lifecycle {
	return e.current
}

// Advance runs one frame of duration d.
func (e *Engine) Advance(d time.Duration) {
	e.sched.Advance(d)
}

// Tick runs one frame of dt seconds.
func (e *Engine) Tick(dt float32) {
	e.sched.Tick(dt)
}

// Scroll records a scroll or resize event. Bindings update on the next frame.
func (e *Engine) Scroll(vp Viewport) {
	e.sched.Observer().SetViewport(vp)
}

// ScrollTo records a scroll to y, clamped to the document.
func (e *Engine) ScrollTo(y float64) {
	e.sched.Observer().ScrollTo(y)
}

// Viewport returns the last recorded viewport.
func (e *Engine) Viewport() Viewport {
	return e.sched.Observer().Viewport()
}

// ActiveTab returns the selected code sample key.
func (e *Engine) ActiveTab() string {
	return e.activeTab
}

// SelectTab switches the typewriter to the sample named key. The output clears
// at once and the new sample types from its first character on the next tick.
// The selection is remembered across remounts.
func (e *Engine) SelectTab(key string) error {
	if e.current != nil {
		if err := e.current.switchTab(key); err != nil {
			return err
		}
	} else if _, err := lookupSample(e.cfg.Typewriter.Samples, key); err != nil {
		return err
	}
	e.activeTab = key
	return nil
}

// NextTab selects the sample after the active one, wrapping around.
func (e *Engine) NextTab() error {
	samples := e.cfg.Typewriter.Samples
	for i, s := range samples {
		if s.Key == e.activeTab {
			return e.SelectTab(samples[(i+1)%len(samples)].Key)
		}
	}
	return e.SelectTab(e.cfg.InitialSample())
}

// Stats reports live registrations across the engine.
func (e *Engine) Stats() Stats {
	return Stats{
		Tweens:    e.sched.LiveTweens(),
		Listeners: e.sched.Observer().Listeners(),
		Timers:    e.sched.LiveTimers(),
		Mounted:   e.current != nil,
	}
}

func (e *Engine) emit(ev Event) {
	if e.sink != nil {
		e.sink.EmitEvent(ev)
	}
}
