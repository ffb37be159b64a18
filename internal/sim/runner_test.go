package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/fieldsim/internal/field"
)

func testConfig() field.Config {
	cfg := field.DefaultConfig()
	cfg.Seed = 7
	return cfg
}

var hd = field.Viewport{Width: 1920, Height: 1080}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name string
		rc   RunConfig
	}{
		{"zero frames", RunConfig{Frames: 0, Viewport: hd}},
		{"negative frames", RunConfig{Frames: -1, Viewport: hd}},
		{"empty viewport", RunConfig{Frames: 10}},
		{"unknown mode", RunConfig{Frames: 10, Viewport: hd, Mode: "sparkle"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(testConfig()).Run(context.Background(), tt.rc, nil)
			if !errors.Is(err, ErrInvalidRun) {
				t.Errorf("expected ErrInvalidRun, got %v", err)
			}
		})
	}
}

func TestRunInvalidFieldConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Density = 0
	_, err := New(cfg).Run(context.Background(), RunConfig{Frames: 1, Viewport: hd}, nil)
	if !errors.Is(err, field.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRunDrawsEveryTick(t *testing.T) {
	counter := &field.Counter{}
	result, err := New(testConfig()).Run(context.Background(), RunConfig{Frames: 10, Viewport: hd}, counter)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Ticks != 10 || result.Frames != 10 || len(result.Stats) != 10 {
		t.Fatalf("got ticks=%d frames=%d stats=%d, want 10 each", result.Ticks, result.Frames, len(result.Stats))
	}
	if result.Seeds != 1 {
		t.Errorf("expected one seeding, got %d", result.Seeds)
	}
	if result.Particles != 30 {
		t.Errorf("expected 30 particles at 1920x1080, got %d", result.Particles)
	}
	if counter.Circles != 300 {
		t.Errorf("expected 300 circles, got %d", counter.Circles)
	}
	if result.Metrics["population"] != 30 {
		t.Errorf("population metric = %v", result.Metrics["population"])
	}
	if len(result.Links()) != 10 || len(result.FrameTimes()) != 10 {
		t.Error("series length does not match frame count")
	}
}

func TestRunScriptedResize(t *testing.T) {
	big := field.Viewport{Width: 3000, Height: 3000}
	rc := RunConfig{Frames: 10, Viewport: hd, Resizes: map[int]field.Viewport{5: big}}

	result, err := New(testConfig()).Run(context.Background(), rc, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Seeds != 2 {
		t.Errorf("expected one reseed, got %d seedings", result.Seeds)
	}
	if result.Frames != 10 {
		t.Errorf("resize should not drop or add frames, got %d", result.Frames)
	}
	if result.Viewport != big {
		t.Errorf("viewport = %v, want %v", result.Viewport, big)
	}
	if result.Stats[4].Particles != 30 || result.Stats[5].Particles != 100 {
		t.Errorf("particles before/after resize = %d/%d, want 30/100",
			result.Stats[4].Particles, result.Stats[5].Particles)
	}
}

func TestRunHiddenPausesFrames(t *testing.T) {
	rc := RunConfig{Frames: 10, Viewport: hd, Hidden: map[int]bool{3: true, 6: false}}
	result, err := New(testConfig()).Run(context.Background(), rc, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Frames != 7 {
		t.Errorf("expected 7 frames with 3 hidden ticks, got %d", result.Frames)
	}
}

func TestRunReducedMotion(t *testing.T) {
	counter := &field.Counter{}
	rc := RunConfig{Frames: 10, Viewport: hd, Reduced: true}
	result, err := New(testConfig()).Run(context.Background(), rc, counter)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Frames != 1 {
		t.Errorf("expected a single static frame, got %d", result.Frames)
	}
	if counter.Clears != 1 {
		t.Errorf("expected one clear, got %d", counter.Clears)
	}
}

func TestRunModeNone(t *testing.T) {
	counter := &field.Counter{}
	rc := RunConfig{Frames: 5, Viewport: hd, Mode: field.ModeNone}
	result, err := New(testConfig()).Run(context.Background(), rc, counter)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Frames != 0 || counter.Draws() != 0 {
		t.Errorf("mode none drew %d frames, %d calls", result.Frames, counter.Draws())
	}
	if result.Particles != 30 {
		t.Errorf("mode none should keep the population, got %d", result.Particles)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(testConfig()).Run(ctx, RunConfig{Frames: 100, Viewport: hd}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.Ticks != 0 {
		t.Errorf("expected an empty partial result, got %+v", result)
	}
}

func TestRunObservers(t *testing.T) {
	var seen int
	r := New(testConfig())
	r.AddObserver(field.ObserverFunc(func(field.FrameStats) { seen++ }))

	if _, err := r.Run(context.Background(), RunConfig{Frames: 4, Viewport: hd}, nil); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if seen != 4 {
		t.Errorf("observer saw %d frames, want 4", seen)
	}
}

func TestSweep(t *testing.T) {
	viewports := []field.Viewport{
		{Width: 800, Height: 600},
		{Width: 3000, Height: 3000},
		{Width: 6000, Height: 4500},
	}
	want := []int{30, 100, 300}

	results, err := New(testConfig()).Sweep(context.Background(), RunConfig{Frames: 3}, viewports)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != len(viewports) {
		t.Fatalf("expected %d results, got %d", len(viewports), len(results))
	}
	for i, r := range results {
		if r.Viewport != viewports[i] {
			t.Errorf("result %d viewport = %v, want %v", i, r.Viewport, viewports[i])
		}
		if r.Particles != want[i] {
			t.Errorf("result %d particles = %d, want %d", i, r.Particles, want[i])
		}
		if r.Frames != 3 {
			t.Errorf("result %d frames = %d, want 3", i, r.Frames)
		}
	}
}

func TestSweepPropagatesErrors(t *testing.T) {
	_, err := New(testConfig()).Sweep(context.Background(), RunConfig{Frames: 3},
		[]field.Viewport{{Width: 10, Height: 10}, {}})
	if !errors.Is(err, ErrInvalidRun) {
		t.Errorf("expected ErrInvalidRun, got %v", err)
	}
}

func TestRunScriptedModeSwitch(t *testing.T) {
	counter := &field.Counter{}
	rc := RunConfig{
		Frames:   6,
		Viewport: hd,
		Modes:    map[int]field.Mode{2: field.ModeNone, 4: field.ModeGlow},
	}
	result, err := New(testConfig()).Run(context.Background(), rc, counter)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Frames != 4 {
		t.Errorf("expected 4 drawn frames, got %d", result.Frames)
	}
	if counter.Circles != 60 || counter.Glows != 60 {
		t.Errorf("circles=%d glows=%d, want 60 each", counter.Circles, counter.Glows)
	}
	if result.Stats[len(result.Stats)-1].Mode != field.ModeGlow {
		t.Errorf("last frame mode = %s", result.Stats[len(result.Stats)-1].Mode)
	}
}

func TestRunRejectsUnknownScriptedMode(t *testing.T) {
	rc := RunConfig{Frames: 3, Viewport: hd, Modes: map[int]field.Mode{1: "sparkle"}}
	if _, err := New(testConfig()).Run(context.Background(), rc, nil); !errors.Is(err, ErrInvalidRun) {
		t.Errorf("expected ErrInvalidRun, got %v", err)
	}
}
