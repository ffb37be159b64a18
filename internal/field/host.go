package field

import "time"

// FrameID identifies a frame registration on a [Scheduler]. Zero is never
// issued.
type FrameID uint64

// Scheduler issues cancellable one-shot frame callbacks.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}

// Host is the environment a field is mounted into.
type Host interface {
	Scheduler
	// Surface returns the named surface, or nil when it does not exist.
	Surface(id string) Surface
	Viewport() Viewport
	// Visible reports whether the surface is currently shown.
	Visible() bool
	OnResize(fn func(Viewport)) (unsubscribe func())
	OnVisibility(fn func(visible bool)) (unsubscribe func())
}

// Preferences are the user-facing flags a field consults.
type Preferences interface {
	// Mode is read every frame.
	Mode() Mode
	ReducedMotion() bool
}

// Surface is a 2D drawing target in viewport pixel coordinates.
type Surface interface {
	Clear()
	// Fade dims everything already drawn by alpha, leaving trails.
	Fade(alpha float64)
	Circle(x, y, r float64, c Color)
	// Glow draws a radial gradient disc fading out at radius r.
	Glow(x, y, r float64, c Color)
	Line(x0, y0, x1, y1 float64, c Color)
}

// Prefs is a plain preference set. Hosts that flip preferences at runtime
// pass a *Prefs and mutate it between frames.
type Prefs struct {
	Current Mode
	Reduced bool
}

func (p *Prefs) Mode() Mode {
	if p.Current == "" {
		return ModeParticles
	}
	return p.Current
}

func (p *Prefs) ReducedMotion() bool { return p.Reduced }

// CycleMode advances to the next mode and returns it.
func (p *Prefs) CycleMode() Mode {
	p.Current = p.Mode().Next()
	return p.Current
}

// FrameStats describes one drawn frame.
type FrameStats struct {
	Frame     uint64
	Particles int
	Links     int
	Mode      Mode
	Elapsed   time.Duration
}

// Observer receives stats after every drawn frame.
type Observer interface {
	OnFrame(s FrameStats)
}

// ObserverFunc adapts a function to [Observer].
type ObserverFunc func(FrameStats)

func (f ObserverFunc) OnFrame(s FrameStats) { f(s) }
