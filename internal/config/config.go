package config

import (
	"fmt"
	"os"

	"github.com/san-kum/fieldsim/internal/field"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS    = 60
	DefaultTheme  = "midnight"
	DefaultScale  = 6.0
	DefaultFrames = 600
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

type Config struct {
	Preset  string        `yaml:"preset"`
	Field   field.Config  `yaml:"field"`
	Display DisplayConfig `yaml:"display"`
	Bench   BenchConfig   `yaml:"bench"`
}

type DisplayConfig struct {
	FPS           int     `yaml:"fps"`
	Theme         string  `yaml:"theme"`
	Mode          string  `yaml:"mode"`
	ReducedMotion bool    `yaml:"reduced_motion"`
	Scale         float64 `yaml:"scale"`
}

type BenchConfig struct {
	Frames int `yaml:"frames"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset: "hero",
		Field:  field.DefaultConfig(),
		Display: DisplayConfig{
			FPS:   DefaultFPS,
			Theme: DefaultTheme,
			Mode:  string(field.ModeParticles),
			Scale: DefaultScale,
		},
		Bench: BenchConfig{
			Frames: DefaultFrames,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

// Load reads a YAML file over the defaults. A preset named in the file is
// applied first, then the file's own field section on top of it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if head.Preset != "" {
		p := GetPreset(head.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", head.Preset)
		}
		cfg.Preset = head.Preset
		cfg.Field = *p
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Field.Validate(); err != nil {
		return err
	}
	if c.Display.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.Display.FPS)
	}
	if c.Display.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %f", c.Display.Scale)
	}
	if _, err := field.ParseMode(c.Display.Mode); err != nil {
		return err
	}
	if c.Bench.Frames <= 0 {
		return fmt.Errorf("bench frames must be positive, got %d", c.Bench.Frames)
	}
	if c.Bench.Width <= 0 || c.Bench.Height <= 0 {
		return fmt.Errorf("bench viewport must be positive, got %dx%d", c.Bench.Width, c.Bench.Height)
	}
	return nil
}

// Mode returns the parsed display mode, falling back to the field's own.
func (c *Config) Mode() field.Mode {
	m, err := field.ParseMode(c.Display.Mode)
	if err != nil {
		return c.Field.Mode()
	}
	return m
}

func (c *Config) BenchViewport() field.Viewport {
	return field.Viewport{Width: c.Bench.Width, Height: c.Bench.Height}
}
