package marquee

import (
	"math"
	"regexp"
	"strconv"
)

// metricPattern splits a raw metric into a decimal prefix and a literal
// suffix: "920MB/s" → "920", "MB/s".
var metricPattern = regexp.MustCompile(`^\s*([+-]?(?:\d+(?:\.\d*)?|\.\d+))(.*)$`)

// MetricValue is a raw metric string split into its animated and literal parts.
type MetricValue struct {
	Raw       string
	Magnitude float64
	Suffix    string
	Numeric   bool
}

// ParseMetricValue splits raw into magnitude and suffix. A raw string without a
// numeric prefix is not an error: Numeric is false and the string is meant to
// be displayed verbatim.
func ParseMetricValue(raw string) MetricValue {
	mv := MetricValue{Raw: raw}
	m := metricPattern.FindStringSubmatch(raw)
	if m == nil {
		return mv
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return mv
	}
	mv.Magnitude = v
	mv.Suffix = m[2]
	mv.Numeric = true
	return mv
}

// FormatCounter renders v rounded to an integer followed by suffix.
func FormatCounter(v float64, suffix string) string {
	r := math.Round(v)
	if r == 0 {
		r = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(r, 'f', 0, 64) + suffix
}

// CounterOptions configures a counter's entrance.
type CounterOptions struct {
	Threshold float64
	Duration  float32
	Ease      EaseFunc
}

// Counter counts a display up from zero to its metric the first time it
// enters the viewport. Non-numeric metrics are shown verbatim and never
// animate.
type Counter struct {
	Target *Region
	Metric MetricValue

	sched      *Scheduler
	binding    *Binding
	tween      *Tween
	onStart    func(*Counter)
	onComplete func(*Counter)
}

// AttachCounter parses raw once, shows it verbatim, and for numeric values
// binds the count-up to the target's first entry.
func AttachCounter(sched *Scheduler, target *Region, raw string, opts CounterOptions) *Counter {
	c := &Counter{Target: target, Metric: ParseMetricValue(raw), sched: sched}
	if target.IsDisposed() {
		return c
	}
	target.SetText(raw)
	if !c.Metric.Numeric {
		return c
	}
	c.binding = sched.Observer().BindEnterOnce(target, opts.Threshold, func() {
		c.start(opts)
	})
	return c
}

// OnStart sets a callback run when the count-up begins.
func (c *Counter) OnStart(fn func(*Counter)) { c.onStart = fn }

// OnComplete sets a callback run when the count-up reaches its magnitude.
func (c *Counter) OnComplete(fn func(*Counter)) { c.onComplete = fn }

func (c *Counter) start(opts CounterOptions) {
	if c.tween != nil {
		return
	}
	tw := NewTween(c.Target, PropValue, 0, c.Metric.Magnitude, opts.Duration, opts.Ease)
	tw.OnUpdate = func(v float64) {
		c.Target.SetText(FormatCounter(v, c.Metric.Suffix))
	}
	tw.OnComplete = func() {
		if c.onComplete != nil {
			c.onComplete(c)
		}
	}
	c.tween = c.sched.Schedule(tw)
	if c.onStart != nil {
		c.onStart(c)
	}
}

// Started reports whether the count-up has been scheduled.
func (c *Counter) Started() bool {
	return c.tween != nil
}

// Dispose removes the binding, cancels a running count-up, and restores the
// raw text.
func (c *Counter) Dispose() {
	c.binding.Dispose()
	if c.tween != nil {
		c.tween.Cancel()
		c.tween = nil
	}
	if !c.Target.IsDisposed() {
		c.Target.Value = 0
		c.Target.SetText(c.Metric.Raw)
	}
}
