package marquee

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseScript(t *testing.T) {
	runner, err := ParseScript([]byte(`
frame: 20ms
height: 720
steps:
  - {action: snapshot, label: initial}
  - {action: scroll, y: 1200}
  - {action: wait, frames: 3}
  - {action: tab, key: cargo.toml}
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := runner.Script()
	if s.Frame != 20*time.Millisecond || s.Height != 720 {
		t.Errorf("frame %v height %v", s.Frame, s.Height)
	}
	if len(s.Steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(s.Steps))
	}
	if s.Steps[0].Action != "snapshot" || s.Steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if s.Steps[1].Action != "scroll" || s.Steps[1].Y != 1200 {
		t.Error("step 1 mismatch")
	}
	if s.Steps[2].Frames != 3 || s.Steps[3].Key != "cargo.toml" {
		t.Error("step 2 or 3 mismatch")
	}
}

func TestParseScript_Defaults(t *testing.T) {
	runner, err := ParseScript([]byte("steps:\n  - {action: wait, frames: 1}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if s := runner.Script(); s.Frame != DefaultScriptFrame || s.Height != DefaultScriptHeight {
		t.Errorf("frame %v height %v, want defaults", s.Frame, s.Height)
	}
}

func TestParseScript_Invalid(t *testing.T) {
	if _, err := ParseScript([]byte("steps: [")); err == nil {
		t.Error("expected error for invalid YAML")
	}
	if _, err := ParseScript([]byte("steps: []")); !errors.Is(err, ErrEmptyScript) {
		t.Errorf("err = %v, want ErrEmptyScript", err)
	}
	_, err := ParseScript([]byte("steps:\n  - {action: snapshot}\n  - {action: click}\n"))
	if err == nil || !strings.Contains(err.Error(), `step 1: unknown action "click"`) {
		t.Errorf("err = %v", err)
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := os.WriteFile(path, []byte("steps:\n  - {action: mount}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScript(path); err != nil {
		t.Errorf("LoadScript: %v", err)
	}
	if _, err := LoadScript(path + ".missing"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunnerRun_WaitCountsFrames(t *testing.T) {
	e, tree := newTestEngine(t)
	runner, err := ParseScript([]byte(`
steps:
  - {action: snapshot, label: top}
  - {action: scroll, y: 2000}
  - {action: wait, frames: 3}
  - {action: snapshot, label: after}
`))
	if err != nil {
		t.Fatal(err)
	}
	var labels []string
	runner.OnSnapshot = func(label string, states []RegionState) {
		labels = append(labels, label)
		if len(states) == 0 {
			t.Error("empty snapshot")
		}
	}
	frames := 0
	if err := runner.Run(e, tree, func(uint64) { frames++ }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if frames != 6 {
		t.Errorf("frames = %d, want 6", frames)
	}
	if !runner.Done() || len(labels) != 2 || labels[1] != "after" {
		t.Errorf("done %v labels %v", runner.Done(), labels)
	}
	if vp := e.Viewport(); vp.ScrollY != 2000 || vp.Height != DefaultScriptHeight {
		t.Errorf("viewport %+v", vp)
	}
}

func TestRunnerRun_MountAndTeardown(t *testing.T) {
	e, tree := newTestEngine(t)
	runner, err := ParseScript([]byte(`
steps:
  - {action: mount}
  - {action: snapshot, label: mounted}
  - {action: teardown}
  - {action: snapshot, label: restored}
`))
	if err != nil {
		t.Fatal(err)
	}
	headings := map[string]float64{}
	runner.OnSnapshot = func(label string, states []RegionState) {
		st, ok := FindState(states, "hero-heading")
		if !ok {
			t.Fatal("hero-heading missing from snapshot")
		}
		headings[label] = st.Alpha
	}
	if err := runner.Run(e, tree, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if headings["mounted"] >= 1 {
		t.Errorf("heading alpha while entering = %v", headings["mounted"])
	}
	if headings["restored"] != 1 {
		t.Errorf("heading alpha after teardown = %v, want 1", headings["restored"])
	}
	if e.Current() != nil {
		t.Error("lifecycle still mounted")
	}
}

func TestRunnerStep_ResizeAndScrollBy(t *testing.T) {
	e, tree := newTestEngine(t)
	runner, err := ParseScript([]byte(`
steps:
  - {action: scrollBy, y: 300}
  - {action: scrollBy, y: 200}
  - {action: resize, height: 500}
`))
	if err != nil {
		t.Fatal(err)
	}
	for !runner.Done() {
		if err := runner.Step(e, tree); err != nil {
			t.Fatal(err)
		}
		e.Advance(frame)
	}
	if vp := e.Viewport(); vp.ScrollY != 500 || vp.Height != 500 {
		t.Errorf("viewport %+v", vp)
	}
}

func TestRunnerStep_WrapsErrors(t *testing.T) {
	e, tree := newTestEngine(t)
	runner, err := ParseScript([]byte("steps:\n  - {action: tab, key: missing.rs}\n"))
	if err != nil {
		t.Fatal(err)
	}
	err = runner.Run(e, tree, nil)
	if !errors.Is(err, ErrUnknownSample) {
		t.Fatalf("err = %v, want ErrUnknownSample", err)
	}
	if !strings.Contains(err.Error(), "step 0 (tab)") {
		t.Errorf("err = %v, want step context", err)
	}
}

func TestRunnerStep_DoneIsSticky(t *testing.T) {
	e, tree := newTestEngine(t)
	runner, err := ParseScript([]byte("steps:\n  - {action: scroll, y: 100}\n"))
	if err != nil {
		t.Fatal(err)
	}
	_ = runner.Step(e, tree)
	if !runner.Done() {
		t.Fatal("runner should be done after its only step")
	}
	e.Advance(frame)
	_ = runner.Step(e, tree)
	if e.Viewport().ScrollY != 100 {
		t.Errorf("ScrollY = %v, want 100", e.Viewport().ScrollY)
	}
}
