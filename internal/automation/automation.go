package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/san-kum/fieldsim/internal/config"
	"github.com/san-kum/fieldsim/internal/field"
	"github.com/san-kum/fieldsim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of headless runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run: a preset on a viewport with host events.
type ScenarioStep struct {
	Name     string  `yaml:"name"`
	Preset   string  `yaml:"preset"`
	Frames   int     `yaml:"frames"`
	Viewport string  `yaml:"viewport"`
	Mode     string  `yaml:"mode"`
	Reduced  bool    `yaml:"reduced_motion"`
	Seed     int64   `yaml:"seed"`
	Events   []Event `yaml:"events"`
}

// Event is a host signal fired just before frame At.
type Event struct {
	At     int    `yaml:"at"`
	Resize string `yaml:"resize"`
	Hide   bool   `yaml:"hide"`
	Show   bool   `yaml:"show"`
	Mode   string `yaml:"mode"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Build resolves the step into a field config and a run config.
func (s ScenarioStep) Build() (field.Config, sim.RunConfig, error) {
	name := s.Preset
	if name == "" {
		name = "hero"
	}
	p := config.GetPreset(name)
	if p == nil {
		return field.Config{}, sim.RunConfig{}, fmt.Errorf("unknown preset: %s", name)
	}
	cfg := *p
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}

	rc := sim.RunConfig{Frames: s.Frames, Reduced: s.Reduced}
	vp := s.Viewport
	if vp == "" {
		vp = fmt.Sprintf("%dx%d", config.DefaultWidth, config.DefaultHeight)
	}
	var err error
	if rc.Viewport, err = field.ParseViewport(vp); err != nil {
		return field.Config{}, sim.RunConfig{}, err
	}
	if s.Mode != "" {
		if rc.Mode, err = field.ParseMode(s.Mode); err != nil {
			return field.Config{}, sim.RunConfig{}, err
		}
	}

	for _, ev := range s.Events {
		if ev.At < 0 || ev.At >= s.Frames {
			return field.Config{}, sim.RunConfig{}, fmt.Errorf("event at frame %d outside run of %d frames", ev.At, s.Frames)
		}
		if ev.Hide && ev.Show {
			return field.Config{}, sim.RunConfig{}, fmt.Errorf("event at frame %d both hides and shows", ev.At)
		}
		if ev.Resize != "" {
			to, err := field.ParseViewport(ev.Resize)
			if err != nil {
				return field.Config{}, sim.RunConfig{}, err
			}
			if rc.Resizes == nil {
				rc.Resizes = make(map[int]field.Viewport)
			}
			rc.Resizes[ev.At] = to
		}
		if ev.Hide || ev.Show {
			if rc.Hidden == nil {
				rc.Hidden = make(map[int]bool)
			}
			rc.Hidden[ev.At] = ev.Hide
		}
		if ev.Mode != "" {
			m, err := field.ParseMode(ev.Mode)
			if err != nil {
				return field.Config{}, sim.RunConfig{}, err
			}
			if rc.Modes == nil {
				rc.Modes = make(map[int]field.Mode)
			}
			rc.Modes[ev.At] = m
		}
	}

	return cfg, rc, nil
}

// StepResult pairs a step with its run result.
type StepResult struct {
	Step   ScenarioStep
	Result *sim.Result
}

// RunScenario executes all steps in order. A nil logger discards progress.
func RunScenario(ctx context.Context, scenario *Scenario, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info("running step", "n", i+1, "of", len(scenario.Steps), "name", step.Name, "preset", step.Preset)

		cfg, rc, err := step.Build()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := sim.New(cfg).Run(ctx, rc, nil)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		logger.Debug("step done", "n", i+1, "result", result)

		results = append(results, StepResult{Step: step, Result: result})
	}

	return results, nil
}

// setters are the field parameters a ParameterSweep can vary.
var setters = map[string]func(*field.Config, float64){
	"density":       func(c *field.Config, v float64) { c.Density = v },
	"link_distance": func(c *field.Config, v float64) { c.LinkDistance = v },
	"link_alpha":    func(c *field.Config, v float64) { c.LinkAlpha = v },
	"speed":         func(c *field.Config, v float64) { c.Speed = field.Range{Min: -v, Max: v} },
	"trail":         func(c *field.Config, v float64) { c.Trail = v },
	"min_count":     func(c *field.Config, v float64) { c.MinCount = int(v) },
}

// SweepParams lists the parameters a ParameterSweep accepts.
func SweepParams() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParameterSweep runs the field across a range of one parameter's values.
type ParameterSweep struct {
	Base      field.Config
	Run       sim.RunConfig
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	Particles  int
	MeanLinks  float64
	PeakLinks  float64
	FrameMS    float64
}

// RunSweep executes a parameter sweep. Values that make the config invalid
// abort the sweep.
func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *slog.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	set, ok := setters[sweep.ParamName]
	if !ok {
		return nil, fmt.Errorf("unknown sweep parameter: %s (available: %v)", sweep.ParamName, SweepParams())
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg := sweep.Base
		set(&cfg, paramVal)

		result, err := sim.New(cfg).Run(ctx, sweep.Run, nil)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Particles:  result.Particles,
			MeanLinks:  result.Metrics["mean_links"],
			PeakLinks:  result.Metrics["peak_links"],
			FrameMS:    result.Metrics["frame_ms"],
		})

		logger.Info("sweep step", "n", i+1, "of", sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
