package field

import (
	"math/rand"
	"time"
)

// Field is a mounted particle field. A nil *Field is valid and inert: it is
// what [Initialize] returns when the target surface does not exist.
type Field struct {
	cfg     Config
	host    Host
	prefs   Preferences
	surface Surface
	rng     *rand.Rand

	viewport  Viewport
	particles []Particle
	links     []Link
	grid      *Grid
	observers []Observer

	// frameID is the single outstanding registration, zero when none. gen
	// tags the callback issued with it so a stale callback is ignored.
	frameID FrameID
	gen     uint64
	stopped bool
	visible bool
	reduced bool

	frames uint64
	seeds  int
	unsubs []func()
}

// Initialize validates cfg, mounts a field on the host surface named
// surfaceID and starts it. A missing surface is not an error: the result is a
// nil *Field and a nil error. prefs may be nil, in which case the mode comes
// from cfg and reduced motion is off.
//
// When cfg.RespectReducedMotion is set and prefs reports reduced motion, a
// single static frame is drawn and no loop is scheduled.
func Initialize(host Host, surfaceID string, cfg Config, prefs Preferences) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	surface := host.Surface(surfaceID)
	if surface == nil {
		return nil, nil
	}
	if prefs == nil {
		prefs = &Prefs{Current: cfg.Mode()}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	f := &Field{
		cfg:     cfg,
		host:    host,
		prefs:   prefs,
		surface: surface,
		rng:     rand.New(rand.NewSource(seed)),
		visible: host.Visible(),
		reduced: cfg.RespectReducedMotion && prefs.ReducedMotion(),
	}
	if cfg.LinkDistance > 0 {
		f.grid = &Grid{}
	}
	f.reseed(host.Viewport())

	f.unsubs = append(f.unsubs,
		host.OnResize(f.Reseed),
		host.OnVisibility(f.SetVisible),
	)

	switch {
	case f.reduced && f.visible:
		f.renderStatic()
	case !f.reduced:
		f.schedule()
	}
	return f, nil
}

// AddObserver registers o for every subsequent drawn frame.
func (f *Field) AddObserver(o Observer) {
	if f == nil {
		return
	}
	f.observers = append(f.observers, o)
}

// Stop cancels the pending frame and detaches from the host. It is
// idempotent and does not interrupt a frame already executing.
func (f *Field) Stop() {
	if f == nil || f.stopped {
		return
	}
	f.stopped = true
	f.cancel()
	for _, unsub := range f.unsubs {
		if unsub != nil {
			unsub()
		}
	}
	f.unsubs = nil
}

// Reseed cancels the pending frame, adopts vp and reseeds the whole
// population once. Non-positive viewports are ignored.
func (f *Field) Reseed(vp Viewport) {
	if f == nil || f.stopped || !vp.Valid() {
		return
	}
	f.cancel()
	f.reseed(vp)
	if f.reduced {
		if f.visible {
			f.renderStatic()
		}
		return
	}
	f.schedule()
}

// SetVisible pauses the loop while hidden. Repeated calls with the same value
// are no-ops, so hide/show cycles never stack registrations.
func (f *Field) SetVisible(visible bool) {
	if f == nil || f.stopped || f.visible == visible {
		return
	}
	f.visible = visible
	if !visible {
		f.cancel()
		return
	}
	f.schedule()
}

// RefreshMotion re-reads the reduced-motion preference and switches between
// the animated loop and a static frame.
func (f *Field) RefreshMotion() {
	if f == nil || f.stopped {
		return
	}
	reduced := f.cfg.RespectReducedMotion && f.prefs.ReducedMotion()
	if reduced == f.reduced {
		return
	}
	f.reduced = reduced
	if reduced {
		f.cancel()
		if f.visible {
			f.renderStatic()
		}
		return
	}
	f.schedule()
}

func (f *Field) reseed(vp Viewport) {
	f.viewport = vp
	f.particles = Seed(f.rng, Population(vp, f.cfg), vp, f.cfg)
	if f.grid != nil && len(f.particles) >= GridThreshold {
		f.grid.Reset(vp, f.cfg.Margin, f.cfg.LinkDistance)
	}
	f.seeds++
}

func (f *Field) active() bool {
	return !f.stopped && f.visible && !f.reduced
}

// schedule registers the next frame unless one is already outstanding.
func (f *Field) schedule() {
	if f.frameID != 0 || !f.active() {
		return
	}
	f.gen++
	gen := f.gen
	f.frameID = f.host.RequestFrame(func(now time.Time) { f.onFrame(gen, now) })
}

func (f *Field) cancel() {
	if f.frameID == 0 {
		return
	}
	f.host.CancelFrame(f.frameID)
	f.frameID = 0
}

func (f *Field) onFrame(gen uint64, _ time.Time) {
	if gen != f.gen || f.frameID == 0 {
		return
	}
	f.frameID = 0
	if !f.active() {
		return
	}
	f.step()
	f.schedule()
}

// step advances and draws one frame. Mode none keeps the loop and the
// positions but draws nothing.
func (f *Field) step() {
	mode := f.prefs.Mode()
	if mode == ModeNone {
		return
	}
	for i := range f.particles {
		Advance(&f.particles[i], f.viewport, f.cfg.Margin, f.cfg.Boundary)
	}
	f.render(mode)
}

func (f *Field) renderStatic() {
	if mode := f.prefs.Mode(); mode != ModeNone {
		f.render(mode)
	}
}

// Particles returns a copy of the live population.
func (f *Field) Particles() []Particle {
	if f == nil {
		return nil
	}
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

func (f *Field) Viewport() Viewport {
	if f == nil {
		return Viewport{}
	}
	return f.viewport
}

// Frames counts drawn frames, static ones included.
func (f *Field) Frames() uint64 {
	if f == nil {
		return 0
	}
	return f.frames
}

// Seeds counts population seedings, the initial one included.
func (f *Field) Seeds() int {
	if f == nil {
		return 0
	}
	return f.seeds
}

// Scheduled reports whether a frame registration is outstanding.
func (f *Field) Scheduled() bool {
	return f != nil && f.frameID != 0
}

// Links returns the links drawn in the most recent frame.
func (f *Field) Links() []Link {
	if f == nil {
		return nil
	}
	out := make([]Link, len(f.links))
	copy(out, f.links)
	return out
}

func (f *Field) Stopped() bool { return f == nil || f.stopped }
