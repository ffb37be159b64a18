package metrics

import (
	"math"
	"time"

	"github.com/san-kum/fieldsim/internal/field"
)

// Metric folds per-frame stats into a single value.
type Metric interface {
	Name() string
	Observe(s field.FrameStats)
	Value() float64
	Reset()
}

// Standard returns the metric set reported by bench runs.
func Standard() []Metric {
	return []Metric{NewMeanLinks(), NewPeakLinks(), NewFrameTime(), NewPopulation()}
}

// Set fans frame stats out to several metrics. It satisfies field.Observer.
type Set []Metric

func (s Set) OnFrame(fs field.FrameStats) {
	for _, m := range s {
		m.Observe(fs)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

type MeanLinks struct {
	total   float64
	samples int
}

func NewMeanLinks() *MeanLinks { return &MeanLinks{} }

func (m *MeanLinks) Name() string { return "mean_links" }

func (m *MeanLinks) Observe(s field.FrameStats) {
	m.total += float64(s.Links)
	m.samples++
}

func (m *MeanLinks) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanLinks) Reset() {
	m.total = 0
	m.samples = 0
}

type PeakLinks struct {
	peak int
}

func NewPeakLinks() *PeakLinks { return &PeakLinks{} }

func (m *PeakLinks) Name() string { return "peak_links" }

func (m *PeakLinks) Observe(s field.FrameStats) {
	if s.Links > m.peak {
		m.peak = s.Links
	}
}

func (m *PeakLinks) Value() float64 { return float64(m.peak) }

func (m *PeakLinks) Reset() { m.peak = 0 }

// FrameTime is the mean draw time in milliseconds.
type FrameTime struct {
	total   time.Duration
	samples int
}

func NewFrameTime() *FrameTime { return &FrameTime{} }

func (m *FrameTime) Name() string { return "frame_ms" }

func (m *FrameTime) Observe(s field.FrameStats) {
	m.total += s.Elapsed
	m.samples++
}

func (m *FrameTime) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.total) / float64(m.samples) / float64(time.Millisecond)
}

func (m *FrameTime) Reset() {
	m.total = 0
	m.samples = 0
}

// Population tracks the particle count of the latest frame. It changes only
// when a resize reseeds the field.
type Population struct {
	last float64
}

func NewPopulation() *Population { return &Population{last: math.NaN()} }

func (m *Population) Name() string { return "population" }

func (m *Population) Observe(s field.FrameStats) { m.last = float64(s.Particles) }

func (m *Population) Value() float64 {
	if math.IsNaN(m.last) {
		return 0
	}
	return m.last
}

func (m *Population) Reset() { m.last = math.NaN() }
