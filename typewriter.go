package marquee

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownSample is returned when a tab key has no matching sample.
	ErrUnknownSample = errors.New("unknown sample")
	// ErrNoSamples is returned when a typewriter has nothing to type.
	ErrNoSamples = errors.New("no samples")
)

// Sample is one switchable text the typewriter can type.
type Sample struct {
	Key  string `yaml:"key"`
	Text string `yaml:"text"`
}

// TypewriterState is the typewriter loop's state.
type TypewriterState uint8

const (
	TypewriterIdle TypewriterState = iota
	TypewriterTyping
	TypewriterResetting
)

func (s TypewriterState) String() string {
	switch s {
	case TypewriterIdle:
		return "idle"
	case TypewriterTyping:
		return "typing"
	case TypewriterResetting:
		return "resetting"
	}
	return "unknown"
}

type typewriterSession struct {
	key    string
	text   []rune
	cursor int
	timer  *Timer
}

// Typewriter reveals a sample one character per tick and starts over forever.
// Switching samples replaces the session: the old timer is stopped before the
// new one is armed, so at most one timer is ever live.
type Typewriter struct {
	output   *Region
	samples  []Sample
	interval time.Duration
	sched    *Scheduler

	session *typewriterSession
	state   TypewriterState
	loops   int
	onLoop  func(key string)
}

// NewTypewriter creates an idle typewriter writing into output.
func NewTypewriter(sched *Scheduler, output *Region, samples []Sample, interval time.Duration) *Typewriter {
	return &Typewriter{
		output:   output,
		samples:  samples,
		interval: interval,
		sched:    sched,
	}
}

// OnLoop sets a callback run every time a sample finishes and restarts.
func (tw *Typewriter) OnLoop(fn func(key string)) {
	tw.onLoop = fn
}

func lookupSample(samples []Sample, key string) (Sample, error) {
	if len(samples) == 0 {
		return Sample{}, fmt.Errorf("typewriter: %w", ErrNoSamples)
	}
	for _, s := range samples {
		if s.Key == key {
			return s, nil
		}
	}
	return Sample{}, fmt.Errorf("typewriter: %w: %q", ErrUnknownSample, key)
}

// Start begins typing the sample named key from its first character,
// replacing any running session. The output is cleared at once. A missing
// output region makes Start a no-op.
func (tw *Typewriter) Start(key string) error {
	sample, err := lookupSample(tw.samples, key)
	if err != nil {
		return err
	}
	tw.Stop()
	if tw.output.IsDisposed() {
		return nil
	}
	tw.session = &typewriterSession{key: sample.Key, text: []rune(sample.Text)}
	tw.state = TypewriterTyping
	tw.output.SetText("")
	tw.session.timer = tw.sched.Every(tw.interval, tw.tick)
	return nil
}

// Stop stops the timer and returns to Idle. The displayed text is left as is.
func (tw *Typewriter) Stop() {
	if tw.session != nil {
		tw.session.timer.Stop()
		tw.session = nil
	}
	tw.state = TypewriterIdle
}

// tick extends the cursor by one and displays the prefix. Past the end, the
// loop resets to an empty prefix and keeps going.
func (tw *Typewriter) tick() {
	s := tw.session
	if s == nil {
		return
	}
	if tw.output.IsDisposed() {
		tw.Stop()
		return
	}
	s.cursor++
	if s.cursor > len(s.text) {
		tw.state = TypewriterResetting
		s.cursor = 0
		tw.loops++
		if tw.onLoop != nil {
			tw.onLoop(s.key)
			if tw.session != s {
				return
			}
		}
		tw.state = TypewriterTyping
	}
	tw.output.SetText(string(s.text[:s.cursor]))
}

// State returns the loop state.
func (tw *Typewriter) State() TypewriterState {
	return tw.state
}

// ActiveKey returns the key of the running sample, or "" when idle.
func (tw *Typewriter) ActiveKey() string {
	if tw.session == nil {
		return ""
	}
	return tw.session.key
}

// Cursor returns the number of characters currently displayed.
func (tw *Typewriter) Cursor() int {
	if tw.session == nil {
		return 0
	}
	return tw.session.cursor
}

// Loops returns how many times a sample has wrapped around.
func (tw *Typewriter) Loops() int {
	return tw.loops
}
