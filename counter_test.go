package marquee

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/tanema/gween/ease"
)

func TestParseMetricValue(t *testing.T) {
	tests := []struct {
		raw  string
		want MetricValue
	}{
		{"920MB/s", MetricValue{Raw: "920MB/s", Magnitude: 920, Suffix: "MB/s", Numeric: true}},
		{"12ms", MetricValue{Raw: "12ms", Magnitude: 12, Suffix: "ms", Numeric: true}},
		{"0.4ms", MetricValue{Raw: "0.4ms", Magnitude: 0.4, Suffix: "ms", Numeric: true}},
		{".5x", MetricValue{Raw: ".5x", Magnitude: 0.5, Suffix: "x", Numeric: true}},
		{"-3 dB", MetricValue{Raw: "-3 dB", Magnitude: -3, Suffix: " dB", Numeric: true}},
		{"144", MetricValue{Raw: "144", Magnitude: 144, Numeric: true}},
		{"Ghost Protocol", MetricValue{Raw: "Ghost Protocol"}},
		{"", MetricValue{}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ParseMetricValue(tt.raw)); diff != "" {
			t.Errorf("ParseMetricValue(%q) mismatch (-want +got):\n%s", tt.raw, diff)
		}
	}
}

func TestFormatCounter(t *testing.T) {
	tests := []struct {
		v      float64
		suffix string
		want   string
	}{
		{0, "ms", "0ms"},
		{11.6, "ms", "12ms"},
		{0.4, "ms", "0ms"},
		{-0.4, "ms", "0ms"},
		{1234.5, "", "1235"},
		{920, "MB/s", "920MB/s"},
	}
	for _, tt := range tests {
		if got := FormatCounter(tt.v, tt.suffix); got != tt.want {
			t.Errorf("FormatCounter(%v, %q) = %q, want %q", tt.v, tt.suffix, got, tt.want)
		}
	}
}

var testCounter = CounterOptions{Threshold: 0.9, Duration: 2, Ease: ease.Linear}

func counterRegion() *Region {
	return NewRegion("counter", RoleCounter, Rect{Y: 2000, Height: 56})
}

func TestCounterCountsUpOnEntry(t *testing.T) {
	tests := []struct {
		raw, final string
	}{
		{"920mb", "920mb"},
		{"12ms", "12ms"},
		{"0.4ms", "0ms"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			s := NewScheduler()
			r := counterRegion()
			c := AttachCounter(s, r, tt.raw, testCounter)
			var started, done int
			c.OnStart(func(*Counter) { started++ })
			c.OnComplete(func(*Counter) { done++ })

			if r.Text != tt.raw {
				t.Errorf("text before entry = %q, want %q", r.Text, tt.raw)
			}

			// Trigger line: 2000 - 0.9*1000 = 1100.
			s.Observer().SetViewport(testViewport(1100))
			s.Advance(16 * time.Millisecond)
			if !c.Started() || started != 1 {
				t.Fatalf("started %v callbacks %d", c.Started(), started)
			}

			s.Advance(time.Second)
			if r.Text == tt.raw && tt.raw != "0.4ms" {
				t.Errorf("text mid-count = %q, still raw", r.Text)
			}

			s.Advance(2 * time.Second)
			if r.Text != tt.final || done != 1 {
				t.Errorf("final text %q done %d, want %q and 1", r.Text, done, tt.final)
			}
			if r.Value != c.Metric.Magnitude {
				t.Errorf("value = %v, want %v", r.Value, c.Metric.Magnitude)
			}
		})
	}
}

func TestCounterHalfway(t *testing.T) {
	s := NewScheduler()
	r := counterRegion()
	AttachCounter(s, r, "920mb", testCounter)
	s.Observer().SetViewport(testViewport(1500))
	s.Advance(16 * time.Millisecond)
	s.Advance(time.Second)
	if r.Text != "460mb" {
		t.Errorf("text = %q, want 460mb", r.Text)
	}
}

func TestCounterNonNumericIsVerbatim(t *testing.T) {
	s := NewScheduler()
	r := counterRegion()
	c := AttachCounter(s, r, "Ghost Protocol", testCounter)
	if s.Observer().Listeners() != 0 {
		t.Errorf("Listeners = %d, want 0", s.Observer().Listeners())
	}
	s.Observer().SetViewport(testViewport(5000))
	s.Advance(time.Second)
	if r.Text != "Ghost Protocol" || c.Started() {
		t.Errorf("text %q started %v", r.Text, c.Started())
	}
}

func TestCounterDoesNotRestart(t *testing.T) {
	s := NewScheduler()
	o := s.Observer()
	r := counterRegion()
	AttachCounter(s, r, "38mb", testCounter)
	o.SetViewport(testViewport(1500))
	s.Advance(16 * time.Millisecond)
	s.Advance(3 * time.Second)
	scheduled := s.Scheduled()

	o.SetViewport(testViewport(0))
	s.Advance(16 * time.Millisecond)
	o.SetViewport(testViewport(1500))
	s.Advance(16 * time.Millisecond)
	if s.Scheduled() != scheduled || r.Text != "38mb" {
		t.Errorf("scheduled %d text %q", s.Scheduled(), r.Text)
	}
}

func TestCounterDisposeMidCount(t *testing.T) {
	s := NewScheduler()
	r := counterRegion()
	c := AttachCounter(s, r, "920mb", testCounter)
	s.Observer().SetViewport(testViewport(1500))
	s.Advance(16 * time.Millisecond)
	s.Advance(500 * time.Millisecond)

	c.Dispose()
	s.Advance(time.Second)
	if r.Text != "920mb" || r.Value != 0 {
		t.Errorf("text %q value %v after dispose", r.Text, r.Value)
	}
	if s.LiveTweens() != 0 || s.Observer().Listeners() != 0 {
		t.Errorf("tweens %d listeners %d", s.LiveTweens(), s.Observer().Listeners())
	}
}
