package sim

import (
	"context"
	"time"

	"github.com/san-kum/fieldsim/internal/field"
	"github.com/san-kum/fieldsim/internal/frame"
	"github.com/san-kum/fieldsim/internal/metrics"
)

const surfaceID = "bench"

// Runner drives a field headlessly, on a synthetic clock with Run or in real
// time with Live. Runs keep no state on the Runner, so one Runner may serve
// concurrent runs.
type Runner struct {
	cfg        field.Config
	newMetrics func() []metrics.Metric
	observers  []field.Observer
}

func New(cfg field.Config) *Runner {
	return &Runner{cfg: cfg, newMetrics: metrics.Standard}
}

// WithMetrics replaces the metric set built for each run.
func (r *Runner) WithMetrics(fn func() []metrics.Metric) *Runner {
	r.newMetrics = fn
	return r
}

// AddObserver registers o on every field this runner creates. Observers
// shared with Sweep are called from several goroutines.
func (r *Runner) AddObserver(o field.Observer) { r.observers = append(r.observers, o) }

// session is one field mounted on a fresh loop with its result collectors.
type session struct {
	loop   *frame.Loop
	prefs  *field.Prefs
	f      *field.Field
	set    metrics.Set
	result *Result
}

// mount builds a loop for vp, mounts surface on it and starts a field. Per
// frame stats are kept only when keepStats is set.
func (r *Runner) mount(vp field.Viewport, mode field.Mode, reduced bool, surface field.Surface, keepStats bool) (*session, error) {
	if surface == nil {
		surface = &field.Counter{}
	}
	if mode == "" {
		mode = r.cfg.Mode()
	}

	loop := frame.NewLoop(vp)
	loop.Mount(surfaceID, surface)

	prefs := &field.Prefs{Current: mode, Reduced: reduced}
	f, err := field.Initialize(loop, surfaceID, r.cfg, prefs)
	if err != nil {
		return nil, err
	}

	s := &session{
		loop:   loop,
		prefs:  prefs,
		f:      f,
		set:    metrics.Set(r.newMetrics()),
		result: &Result{Metrics: make(map[string]float64)},
	}
	if keepStats {
		f.AddObserver(field.ObserverFunc(func(st field.FrameStats) {
			s.result.Stats = append(s.result.Stats, st)
		}))
	}
	f.AddObserver(s.set)
	for _, o := range r.observers {
		f.AddObserver(o)
	}
	return s, nil
}

// apply delivers a host event the way a real host would.
func (s *session) apply(ev Event) {
	if ev.Resize != nil {
		s.loop.Resize(*ev.Resize)
	}
	if ev.Visible != nil {
		s.loop.SetVisible(*ev.Visible)
	}
	if ev.Mode != "" {
		s.prefs.Current = ev.Mode
	}
}

func (s *session) finish() *Result {
	res := s.result
	res.Ticks = int(s.loop.Ticks())
	res.Frames = s.f.Frames()
	res.Seeds = s.f.Seeds()
	res.Viewport = s.f.Viewport()
	res.Particles = len(s.f.Particles())
	for name, v := range s.set.Values() {
		res.Metrics[name] = v
	}
	s.f.Stop()
	return res
}

// Run mounts surface on a fresh loop and ticks it rc.Frames times. A nil
// surface counts draw calls only. On cancellation the partial result is
// returned with ctx.Err().
func (r *Runner) Run(ctx context.Context, rc RunConfig, surface field.Surface) (*Result, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	s, err := r.mount(rc.Viewport, rc.Mode, rc.Reduced, surface, true)
	if err != nil {
		return nil, err
	}

	now := time.Unix(0, 0)
	for i := 0; i < rc.Frames; i++ {
		select {
		case <-ctx.Done():
			return s.finish(), ctx.Err()
		default:
		}

		var ev Event
		if vp, ok := rc.Resizes[i]; ok {
			ev.Resize = &vp
		}
		if hidden, ok := rc.Hidden[i]; ok {
			visible := !hidden
			ev.Visible = &visible
		}
		ev.Mode = rc.Modes[i]
		s.apply(ev)

		now = now.Add(FrameInterval)
		s.loop.Tick(now)
	}
	return s.finish(), nil
}
