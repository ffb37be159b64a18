package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/fieldsim/internal/field"
	"github.com/san-kum/fieldsim/internal/sim"
)

const scenarioYAML = `
name: resize-storm
description: rotate the screen, background the tab, switch modes
steps:
  - name: hd
    preset: hero
    frames: 20
    viewport: 1920x1080
    seed: 3
    events:
      - at: 5
        resize: 3000x3000
      - at: 10
        hide: true
      - at: 12
        show: true
      - at: 15
        mode: none
  - name: reduced
    preset: footer
    frames: 10
    viewport: 800x600
    reduced_motion: true
    seed: 4
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Name != "resize-storm" || len(s.Steps) != 2 {
		t.Fatalf("got %q with %d steps", s.Name, len(s.Steps))
	}
	if len(s.Steps[0].Events) != 4 {
		t.Errorf("expected 4 events, got %d", len(s.Steps[0].Events))
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
	if _, err := LoadScenario(writeScenario(t, "steps: [")); err == nil {
		t.Error("expected parse error")
	}
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStepBuild(t *testing.T) {
	step := ScenarioStep{
		Preset:   "glow",
		Frames:   10,
		Viewport: "640x480",
		Seed:     9,
		Events: []Event{
			{At: 2, Resize: "480x640"},
			{At: 3, Hide: true},
			{At: 4, Show: true, Mode: "particles"},
		},
	}
	cfg, rc, err := step.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if cfg.Seed != 9 {
		t.Errorf("seed = %d, want 9", cfg.Seed)
	}
	if rc.Viewport != (field.Viewport{Width: 640, Height: 480}) {
		t.Errorf("viewport = %v", rc.Viewport)
	}
	if rc.Resizes[2] != (field.Viewport{Width: 480, Height: 640}) {
		t.Errorf("resize = %v", rc.Resizes[2])
	}
	if !rc.Hidden[3] || rc.Hidden[4] {
		t.Errorf("hidden = %v", rc.Hidden)
	}
	if rc.Modes[4] != field.ModeParticles {
		t.Errorf("modes = %v", rc.Modes)
	}
}

func TestStepBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		step ScenarioStep
	}{
		{"unknown preset", ScenarioStep{Preset: "nope", Frames: 1}},
		{"bad viewport", ScenarioStep{Frames: 1, Viewport: "wide"}},
		{"bad mode", ScenarioStep{Frames: 1, Mode: "sparkle"}},
		{"event out of range", ScenarioStep{Frames: 5, Events: []Event{{At: 5, Hide: true}}}},
		{"hide and show", ScenarioStep{Frames: 5, Events: []Event{{At: 1, Hide: true, Show: true}}}},
		{"bad resize", ScenarioStep{Frames: 5, Events: []Event{{At: 1, Resize: "0x0"}}}},
		{"bad event mode", ScenarioStep{Frames: 5, Events: []Event{{At: 1, Mode: "sparkle"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := tt.step.Build(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	results, err := RunScenario(context.Background(), s, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	hd := results[0].Result
	// 20 ticks, 2 hidden, 5 in mode none.
	if hd.Frames != 13 {
		t.Errorf("expected 13 drawn frames, got %d", hd.Frames)
	}
	if hd.Seeds != 2 {
		t.Errorf("expected one reseed, got %d seedings", hd.Seeds)
	}
	if hd.Particles != 100 {
		t.Errorf("expected 100 particles after resize, got %d", hd.Particles)
	}

	reduced := results[1].Result
	if reduced.Frames != 1 || reduced.Ticks != 10 {
		t.Errorf("reduced step drew %d frames over %d ticks", reduced.Frames, reduced.Ticks)
	}
}

func TestRunSweep(t *testing.T) {
	base := field.DefaultConfig()
	base.Seed = 11
	sweep := &ParameterSweep{
		Base:      base,
		Run:       sim.RunConfig{Frames: 3, Viewport: field.Viewport{Width: 1920, Height: 1080}},
		ParamName: "link_distance",
		ParamMin:  0,
		ParamMax:  400,
		NumSteps:  3,
	}

	results, err := RunSweep(context.Background(), sweep, nil)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	wantValues := []float64{0, 200, 400}
	for i, r := range results {
		if r.ParamValue != wantValues[i] {
			t.Errorf("step %d value = %v, want %v", i, r.ParamValue, wantValues[i])
		}
	}
	if results[0].MeanLinks != 0 {
		t.Errorf("link_distance 0 should draw no links, got %v", results[0].MeanLinks)
	}
	if results[2].PeakLinks < results[1].PeakLinks {
		t.Errorf("longer links should not reduce peak: %v < %v", results[2].PeakLinks, results[1].PeakLinks)
	}
}

func TestRunSweepErrors(t *testing.T) {
	base := field.DefaultConfig()
	run := sim.RunConfig{Frames: 1, Viewport: field.Viewport{Width: 10, Height: 10}}

	if _, err := RunSweep(context.Background(), &ParameterSweep{Base: base, Run: run, ParamName: "gravity", NumSteps: 2}, nil); err == nil {
		t.Error("expected error for unknown parameter")
	}
	if _, err := RunSweep(context.Background(), &ParameterSweep{Base: base, Run: run, ParamName: "density", NumSteps: 0}, nil); err == nil {
		t.Error("expected error for zero steps")
	}
	if _, err := RunSweep(context.Background(), &ParameterSweep{Base: base, Run: run, ParamName: "density", ParamMin: -1, ParamMax: -1, NumSteps: 1}, nil); err == nil {
		t.Error("expected error for invalid density")
	}
}
