package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/fieldsim/internal/field"
)

// FrameInterval is the synthetic clock step: one display refresh at 60 Hz.
const FrameInterval = time.Second / 60

var ErrInvalidRun = errors.New("invalid run config")

type RunConfig struct {
	Frames   int
	Viewport field.Viewport
	Mode     field.Mode
	Reduced  bool
	// Resizes maps a tick index to the viewport applied just before it.
	Resizes map[int]field.Viewport
	// Hidden maps a tick index to a visibility change applied just before it.
	Hidden map[int]bool
	// Modes maps a tick index to a mode switch applied just before it.
	Modes map[int]field.Mode
}

func (rc RunConfig) Validate() error {
	if rc.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidRun, rc.Frames)
	}
	if !rc.Viewport.Valid() {
		return fmt.Errorf("%w: viewport %s", ErrInvalidRun, rc.Viewport)
	}
	if rc.Mode != "" {
		if _, err := field.ParseMode(string(rc.Mode)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRun, err)
		}
	}
	for at, m := range rc.Modes {
		if _, err := field.ParseMode(string(m)); err != nil {
			return fmt.Errorf("%w: frame %d: %v", ErrInvalidRun, at, err)
		}
	}
	return nil
}

type Result struct {
	Viewport  field.Viewport
	Ticks     int
	Frames    uint64
	Seeds     int
	Particles int
	Stats     []field.FrameStats
	Metrics   map[string]float64
}

// Links returns the per-frame link counts.
func (r *Result) Links() []float64 {
	out := make([]float64, len(r.Stats))
	for i, s := range r.Stats {
		out[i] = float64(s.Links)
	}
	return out
}

// FrameTimes returns the per-frame draw time in milliseconds.
func (r *Result) FrameTimes() []float64 {
	out := make([]float64, len(r.Stats))
	for i, s := range r.Stats {
		out[i] = float64(s.Elapsed) / float64(time.Millisecond)
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (r *Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("viewport", r.Viewport.String()),
		slog.Int("ticks", r.Ticks),
		slog.Uint64("frames", r.Frames),
		slog.Int("seeds", r.Seeds),
		slog.Int("particles", r.Particles),
		slog.Float64("mean_links", r.Metrics["mean_links"]),
		slog.Float64("frame_ms", r.Metrics["frame_ms"]),
	)
}
