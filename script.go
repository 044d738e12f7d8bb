package marquee

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrEmptyScript is returned when a replay script has no steps.
var ErrEmptyScript = errors.New("no steps")

// Default replay parameters, used when a script leaves them unset.
const (
	DefaultScriptFrame  = time.Second / 60
	DefaultScriptHeight = 900
)

// ScriptStep is one action in a replay script.
type ScriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	Key    string  `yaml:"key,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// Script is a recorded browsing session: a viewport, a frame length and the
// steps to replay against an engine.
type Script struct {
	Frame  time.Duration `yaml:"frame"`
	Height float64       `yaml:"height"`
	Steps  []ScriptStep  `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"scroll":   true, // absolute scroll to y
	"scrollBy": true, // relative scroll by y
	"resize":   true, // viewport height
	"tab":      true, // select a code sample
	"wait":     true, // idle for frames
	"snapshot": true, // capture region state
	"mount":    true,
	"teardown": true,
}

// ScriptRunner feeds a script's steps to an engine one frame at a time.
type ScriptRunner struct {
	script    Script
	cursor    int
	waitCount int
	done      bool

	// OnSnapshot, if set, receives every snapshot step's region state.
	OnSnapshot func(label string, states []RegionState)
}

// LoadScript reads a YAML replay script.
func LoadScript(path string) (*ScriptRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript parses a YAML replay script and returns a runner ready to be
// driven with Step or Run.
func ParseScript(data []byte) (*ScriptRunner, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}
	for i, st := range s.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	if s.Frame <= 0 {
		s.Frame = DefaultScriptFrame
	}
	if s.Height <= 0 {
		s.Height = DefaultScriptHeight
	}
	return &ScriptRunner{script: s}, nil
}

// Script returns the parsed script with defaults applied.
func (r *ScriptRunner) Script() Script {
	return r.script
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step executes at most one step for the coming frame. Call it before
// Engine.Advance.
func (r *ScriptRunner) Step(e *Engine, tree *Region) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.script.Steps) {
		r.done = true
		return nil
	}

	st := r.script.Steps[r.cursor]
	r.cursor++

	var err error
	switch st.Action {
	case "scroll":
		e.ScrollTo(st.Y)
	case "scrollBy":
		e.ScrollTo(e.Viewport().ScrollY + st.Y)
	case "resize":
		vp := e.Viewport()
		vp.Height = st.Height
		vp.ScrollY = min(vp.ScrollY, vp.MaxScroll())
		e.Scroll(vp)
	case "tab":
		err = e.SelectTab(st.Key)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "snapshot":
		if r.OnSnapshot != nil {
			r.OnSnapshot(st.Label, Snapshot(tree))
		}
	case "mount":
		_, err = e.Mount(tree)
	case "teardown":
		if l := e.Current(); l != nil {
			l.Teardown()
		}
	}

	if r.cursor >= len(r.script.Steps) && r.waitCount == 0 {
		r.done = true
	}
	if err != nil {
		return fmt.Errorf("step %d (%s): %w", r.cursor-1, st.Action, err)
	}
	return nil
}

// Run sets the script's viewport on e and replays every step, advancing one
// frame after each. onFrame, if set, runs after every frame.
func (r *ScriptRunner) Run(e *Engine, tree *Region, onFrame func(frame uint64)) error {
	docHeight := 0.0
	if !tree.IsDisposed() {
		docHeight = tree.Box.Height
	}
	e.Scroll(Viewport{Height: r.script.Height, DocumentHeight: docHeight})
	for !r.done {
		if err := r.Step(e, tree); err != nil {
			return err
		}
		e.Advance(r.script.Frame)
		if onFrame != nil {
			onFrame(e.Scheduler().Frame())
		}
	}
	return nil
}
