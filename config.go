package marquee

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// StepConfig is one hero entrance step.
type StepConfig struct {
	Duration  float32  `yaml:"duration"`
	Ease      string   `yaml:"ease"`
	Overlap   float32  `yaml:"overlap"`              // seconds before the previous step ends
	Rise      float64  `yaml:"rise"`                 // starting vertical offset
	FromScale *float64 `yaml:"from_scale,omitempty"` // starting scale; nil leaves scale alone
}

// HeroConfig is the page-load entrance timeline.
type HeroConfig struct {
	Heading      StepConfig `yaml:"heading"`
	Sub          StepConfig `yaml:"sub"`
	Illustration StepConfig `yaml:"illustration"`
	Badges       StepConfig `yaml:"badges"`
	BadgeStagger float32    `yaml:"badge_stagger"`
}

type RevealConfig struct {
	Stagger   float32 `yaml:"stagger"`
	Threshold float64 `yaml:"threshold"`
	Duration  float32 `yaml:"duration"`
	Rise      float64 `yaml:"rise"`
	Ease      string  `yaml:"ease"`
}

type CounterConfig struct {
	Threshold float64 `yaml:"threshold"`
	Duration  float32 `yaml:"duration"`
	Ease      string  `yaml:"ease"`
}

type ParallaxConfig struct {
	Distance float64 `yaml:"distance"` // total upward travel across the page
}

type TypewriterConfig struct {
	Interval time.Duration `yaml:"interval"`
	Initial  string        `yaml:"initial"`
	Samples  []Sample      `yaml:"samples"`
}

// Metric is one entry of the metric feed: a raw value such as "920MB/s" with
// its label and description.
type Metric struct {
	Value       string `yaml:"value"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

// Config holds every tunable of the engine and the content feeds consumed at
// mount time.
type Config struct {
	Hero       HeroConfig       `yaml:"hero"`
	Reveal     RevealConfig     `yaml:"reveal"`
	Counter    CounterConfig    `yaml:"counter"`
	Parallax   ParallaxConfig   `yaml:"parallax"`
	Typewriter TypewriterConfig `yaml:"typewriter"`
	Metrics    []Metric         `yaml:"metrics"`
	Benchmarks []Metric         `yaml:"benchmarks"`
}

const (
	DefaultRevealStagger      = 0.1
	DefaultRevealThreshold    = 0.85
	DefaultCounterThreshold   = 0.9
	DefaultCounterDuration    = 2.0
	DefaultTypewriterInterval = 45 * time.Millisecond
	DefaultParallaxDistance   = 100
)

func ptr[T any](v T) *T { return &v }

// DefaultConfig returns the landing page's stock choreography and content.
func DefaultConfig() Config {
	return Config{
		Hero: HeroConfig{
			Heading:      StepConfig{Duration: 1.2, Ease: "expo.out", Rise: 60},
			Sub:          StepConfig{Duration: 0.8, Ease: "power3.out", Overlap: 0.8, Rise: 20},
			Illustration: StepConfig{Duration: 1.2, Ease: "expo.out", Overlap: 0.6, Rise: 30, FromScale: ptr(0.98)},
			Badges:       StepConfig{Duration: 0.6, Ease: "back.out", Overlap: 0.4, FromScale: ptr(0.0)},
			BadgeStagger: 0.05,
		},
		Reveal: RevealConfig{
			Stagger:   DefaultRevealStagger,
			Threshold: DefaultRevealThreshold,
			Duration:  1,
			Rise:      40,
			Ease:      "power3.out",
		},
		Counter: CounterConfig{
			Threshold: DefaultCounterThreshold,
			Duration:  DefaultCounterDuration,
			Ease:      "power2.out",
		},
		Parallax: ParallaxConfig{Distance: DefaultParallaxDistance},
		Typewriter: TypewriterConfig{
			Interval: DefaultTypewriterInterval,
			Initial:  "main.rs",
			Samples: []Sample{
				{Key: "main.rs", Text: "fn main() {\n  let engine = Speedy::new();\n  engine.ignite_gpu_threads();\n  engine.listen_for_neural_inputs();\n}"},
				{Key: "cargo.toml", Text: "[package]\nname = \"speedy-core\"\nversion = \"0.8.2\"\nedition = \"2024\"\n\n[dependencies]\nspeedy_runtime = \"0.5\""},
			},
		},
		Metrics: []Metric{
			{Value: "12ms", Label: "Execution Boot", Description: "Binary vs Electron's 1.4s"},
			{Value: "38mb", Label: "Memory Idle", Description: "Low-level allocation efficiency"},
			{Value: "0.2ms", Label: "GPU Context", Description: "UI thread latency threshold"},
			{Value: "920mb", Label: "File Search", Description: "Instant local indexing speed"},
		},
		Benchmarks: []Metric{
			{Value: "920MB/s", Label: "Search Speed", Description: "Full-project regex indexing"},
			{Value: "8ms", Label: "Binary Load", Description: "Cold start execution time"},
			{Value: "0.4ms", Label: "AI Latency", Description: "Local NPU inference response"},
		},
	}
}

// LoadConfig reads a YAML file over the defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges, ease names and sample keys.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	steps := []struct {
		name string
		s    StepConfig
	}{
		{"hero.heading", c.Hero.Heading},
		{"hero.sub", c.Hero.Sub},
		{"hero.illustration", c.Hero.Illustration},
		{"hero.badges", c.Hero.Badges},
	}
	for _, st := range steps {
		check(st.s.Duration > 0, "%s.duration must be positive", st.name)
		_, err := LookupEase(st.s.Ease)
		check(err == nil, "%s.ease: %v", st.name, err)
	}
	check(c.Hero.BadgeStagger >= 0, "hero.badge_stagger must not be negative")

	check(c.Reveal.Stagger >= 0, "reveal.stagger must not be negative")
	check(c.Reveal.Threshold >= 0 && c.Reveal.Threshold <= 1, "reveal.threshold must be within [0, 1]")
	check(c.Reveal.Duration > 0, "reveal.duration must be positive")
	_, err := LookupEase(c.Reveal.Ease)
	check(err == nil, "reveal.ease: %v", err)

	check(c.Counter.Threshold >= 0 && c.Counter.Threshold <= 1, "counter.threshold must be within [0, 1]")
	check(c.Counter.Duration > 0, "counter.duration must be positive")
	_, err = LookupEase(c.Counter.Ease)
	check(err == nil, "counter.ease: %v", err)

	check(c.Typewriter.Interval > 0, "typewriter.interval must be positive")
	check(len(c.Typewriter.Samples) > 0, "typewriter.samples: %v", ErrNoSamples)
	seen := make(map[string]bool, len(c.Typewriter.Samples))
	for _, s := range c.Typewriter.Samples {
		check(s.Key != "", "typewriter.samples: empty key")
		check(!seen[s.Key], "typewriter.samples: duplicate key %q", s.Key)
		seen[s.Key] = true
	}
	if c.Typewriter.Initial != "" && len(c.Typewriter.Samples) > 0 {
		check(seen[c.Typewriter.Initial], "typewriter.initial: %v: %q", ErrUnknownSample, c.Typewriter.Initial)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// InitialSample returns the configured initial key, or the first sample's key
// when none is set.
func (c Config) InitialSample() string {
	if c.Typewriter.Initial != "" || len(c.Typewriter.Samples) == 0 {
		return c.Typewriter.Initial
	}
	return c.Typewriter.Samples[0].Key
}
