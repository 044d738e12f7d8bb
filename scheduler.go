package marquee

import "time"

// runner is anything the scheduler advances once per frame: standalone tweens
// and playing timelines.
type runner interface {
	advance(dt float32)
	finished() bool
	stop()
	// registered reports the runner's slot in the scheduler. A runner holds
	// at most one slot until compaction drops it.
	registered() *bool
}

// maxTimerCatchUp bounds how many times one timer may fire in a single frame
// after a long stall. The rest of the backlog is dropped.
const maxTimerCatchUp = 4

// Scheduler is the single-threaded driver. Each call to Advance is one frame:
// it moves the virtual clock, fires due interval timers, flushes the scroll
// observer with the viewport read this frame, then advances every live tween
// and timeline. Nothing blocks and no goroutines are started; the host calls
// Advance from its own frame loop.
//
// Registrations made while a frame is being processed take effect on the next
// frame. Cancelling from inside any callback is safe.
type Scheduler struct {
	clock     time.Duration
	frame     uint64
	runners   []runner
	timers    []*Timer
	observer  *Observer
	scheduled int
}

// NewScheduler creates a scheduler with an empty scroll observer.
func NewScheduler() *Scheduler {
	return &Scheduler{observer: newObserver()}
}

// Observer returns the scheduler's scroll observer.
func (s *Scheduler) Observer() *Observer {
	return s.observer
}

// Now returns the virtual clock: the sum of every Advance so far.
func (s *Scheduler) Now() time.Duration {
	return s.clock
}

// Frame returns the number of frames processed.
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// Schedule registers a standalone tween. Scheduling a tween whose target is
// missing is allowed; the tween cancels itself on its first frame. Scheduling
// a tween that is already registered does nothing.
func (s *Scheduler) Schedule(tw *Tween) *Tween {
	if tw == nil || tw.reg {
		return tw
	}
	s.scheduled++
	s.register(tw)
	return tw
}

// Play starts tl and registers it. An empty timeline is a no-op. Playing a
// timeline that is still registered restarts it in its existing slot, so it
// is never advanced twice in one frame.
func (s *Scheduler) Play(tl *Timeline) *Timeline {
	if tl == nil || tl.Len() == 0 {
		return tl
	}
	tl.Play()
	s.scheduled += tl.Len()
	s.register(tl)
	return tl
}

func (s *Scheduler) register(r runner) {
	reg := r.registered()
	if *reg {
		return
	}
	*reg = true
	s.runners = append(s.runners, r)
}

// Every registers fn to run each interval of virtual time until the returned
// timer is stopped.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Timer {
	if interval <= 0 {
		interval = time.Millisecond
	}
	t := &Timer{interval: interval, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Tick advances one frame of dt seconds. Hosts that measure frames in seconds
// (ebiten TPS, bubbletea ticks) use this; tests prefer Advance.
func (s *Scheduler) Tick(dt float32) {
	s.Advance(time.Duration(float64(dt) * float64(time.Second)))
}

// Advance processes one frame of duration d.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.frame++
	s.clock += d

	// Only work registered before this frame runs in it.
	nRunners := len(s.runners)

	s.fireTimers(d)
	s.observer.flush()

	dt := float32(d.Seconds())
	for i := 0; i < nRunners; i++ {
		r := s.runners[i]
		if !r.finished() {
			r.advance(dt)
		}
	}
	s.compact()
}

func (s *Scheduler) fireTimers(d time.Duration) {
	n := len(s.timers)
	for i := 0; i < n; i++ {
		t := s.timers[i]
		if t.stopped {
			continue
		}
		t.acc += d
		fired := 0
		for t.acc >= t.interval && !t.stopped {
			t.acc -= t.interval
			t.fn()
			fired++
			if fired == maxTimerCatchUp {
				t.acc %= t.interval
				break
			}
		}
	}
}

// compact drops finished runners and stopped timers.
func (s *Scheduler) compact() {
	runners := s.runners[:0]
	for _, r := range s.runners {
		if r.finished() {
			*r.registered() = false
			continue
		}
		runners = append(runners, r)
	}
	clear(s.runners[len(runners):])
	s.runners = runners

	timers := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			timers = append(timers, t)
		}
	}
	clear(s.timers[len(timers):])
	s.timers = timers
}

// Scheduled returns the total number of tweens ever scheduled, counting each
// timeline entry. It only grows.
func (s *Scheduler) Scheduled() int {
	return s.scheduled
}

// LiveTweens returns the number of registered tweens and timelines that have
// not finished.
func (s *Scheduler) LiveTweens() int {
	n := 0
	for _, r := range s.runners {
		if !r.finished() {
			n++
		}
	}
	return n
}

// LiveTimers returns the number of timers not yet stopped.
func (s *Scheduler) LiveTimers() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Timer is a recurring callback on the scheduler's virtual clock.
type Timer struct {
	interval time.Duration
	acc      time.Duration
	fn       func()
	stopped  bool
}

// Stop disarms the timer. Safe to call repeatedly and from inside its own
// callback.
func (t *Timer) Stop() {
	if t != nil {
		t.stopped = true
	}
}

// Stopped reports whether Stop has been called.
func (t *Timer) Stopped() bool {
	return t == nil || t.stopped
}
