package field_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldsim/internal/field"
	"github.com/san-kum/fieldsim/internal/frame"
)

type prefs struct {
	mode    field.Mode
	reduced bool
}

func (p *prefs) Mode() field.Mode    { return p.mode }
func (p *prefs) ReducedMotion() bool { return p.reduced }

var _ = Describe("Field lifecycle", func() {
	var (
		loop    *frame.Loop
		surface *field.Counter
		cfg     field.Config
		pr      *prefs
		now     time.Time
	)

	tick := func(n int) {
		for i := 0; i < n; i++ {
			now = now.Add(16 * time.Millisecond)
			loop.Tick(now)
		}
	}

	BeforeEach(func() {
		loop = frame.NewLoop(field.Viewport{Width: 800, Height: 600})
		surface = &field.Counter{}
		loop.Mount("hero", surface)
		cfg = field.DefaultConfig()
		cfg.Seed = 42
		pr = &prefs{mode: field.ModeParticles}
		now = time.Unix(0, 0)
	})

	Describe("Initialize", func() {
		It("returns a nil handle without error when the surface is missing", func() {
			f, err := field.Initialize(loop, "missing", cfg, pr)
			Expect(err).NotTo(HaveOccurred())
			Expect(f).To(BeNil())
			Expect(loop.Pending()).To(Equal(0))

			Expect(func() {
				f.Stop()
				f.Reseed(field.Viewport{Width: 10, Height: 10})
				f.SetVisible(false)
				f.RefreshMotion()
			}).NotTo(Panic())
			Expect(f.Particles()).To(BeEmpty())
		})

		It("fails fast on an invalid config", func() {
			cfg.Density = -1
			f, err := field.Initialize(loop, "hero", cfg, pr)
			Expect(err).To(MatchError(field.ErrInvalidConfig))
			Expect(f).To(BeNil())
		})

		It("seeds the population from the host viewport and schedules one frame", func() {
			f, err := field.Initialize(loop, "hero", cfg, pr)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Particles()).To(HaveLen(field.Population(loop.Viewport(), cfg)))
			Expect(f.Seeds()).To(Equal(1))
			Expect(loop.Pending()).To(Equal(1))
			Expect(f.Scheduled()).To(BeTrue())
		})

		It("renders every tick while running", func() {
			f, _ := field.Initialize(loop, "hero", cfg, pr)
			tick(5)
			Expect(f.Frames()).To(Equal(uint64(5)))
			Expect(surface.Clears).To(Equal(5))
			Expect(surface.Circles).To(Equal(5 * len(f.Particles())))
			Expect(loop.Pending()).To(Equal(1))
		})

		It("survives a tiny link distance on a large viewport", func() {
			loop.Resize(field.Viewport{Width: 1920, Height: 1080})
			cfg.LinkDistance = 1e-6
			Expect(cfg.Validate()).To(Succeed())

			var f *field.Field
			Expect(func() {
				f, _ = field.Initialize(loop, "hero", cfg, pr)
				tick(2)
			}).NotTo(Panic())
			Expect(f.Frames()).To(Equal(uint64(2)))
		})

		It("moves particles between frames", func() {
			f, _ := field.Initialize(loop, "hero", cfg, pr)
			before := f.Particles()
			tick(3)
			Expect(f.Particles()).NotTo(Equal(before))
		})
	})

	Describe("reduced motion", func() {
		It("draws exactly one static frame and schedules nothing", func() {
			pr.reduced = true
			f, err := field.Initialize(loop, "hero", cfg, pr)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Frames()).To(Equal(uint64(1)))
			Expect(loop.Pending()).To(Equal(0))

			tick(30)
			Expect(f.Frames()).To(Equal(uint64(1)))
			Expect(surface.Clears).To(Equal(1))
		})

		It("is ignored when the config does not respect it", func() {
			pr.reduced = true
			cfg.RespectReducedMotion = false
			f, _ := field.Initialize(loop, "hero", cfg, pr)
			tick(3)
			Expect(f.Frames()).To(Equal(uint64(3)))
		})

		It("switches between static and animated on refresh", func() {
			f, _ := field.Initialize(loop, "hero", cfg, pr)
			tick(2)

			pr.reduced = true
			f.RefreshMotion()
			Expect(loop.Pending()).To(Equal(0))
			Expect(f.Frames()).To(Equal(uint64(3)))
			tick(5)
			Expect(f.Frames()).To(Equal(uint64(3)))

			pr.reduced = false
			f.RefreshMotion()
			Expect(loop.Pending()).To(Equal(1))
			tick(1)
			Expect(f.Frames()).To(Equal(uint64(4)))
		})
	})

	Describe("resize", func() {
		It("reseeds exactly once and replaces the pending frame", func() {
			f, _ := field.Initialize(loop, "hero", cfg, pr)
			tick(2)
			Expect(loop.Pending()).To(Equal(1))

			vp := field.Viewport{Width: 3840, Height: 2160}
			loop.Resize(vp)

			Expect(f.Seeds()).To(Equal(2))
			Expect(f.Viewport()).To(Equal(vp))
			Expect(f.Particles()).To(HaveLen(field.Population(vp, cfg)))
			Expect(loop.Pending()).To(Equal(1))
		})

		It("never draws against the old dimensions after a resize", func() {
			cfg.Speed = field.Range{Min: 0, Max: 0}
			f, _ := field.Initialize(loop, "hero", cfg, pr)
			small := field.Viewport{Width: 50, Height: 40}
			loop.Resize(small)
			tick(1)

			for _, p := range f.Particles() {
				Expect(p.X).To(BeNumerically("<=", float64(small.Width)))
				Expect(p.Y).To(BeNumerically("<=", float64(small.Height)))
			}
		})

		It("ignores empty viewports", func() {
			f, _ := field.Initialize(loop, "hero", cfg, pr)
			loop.Resize(field.Viewport{})
			Expect(f.Seeds()).To(Equal(1))
			Expect(loop.Pending()).To(Equal(1))
		})

		It("redraws a static frame under reduced motion", func() {
			pr.reduced = true
			f, _ := field.Initialize(loop, "hero", cfg, pr)
			loop.Resize(field.Viewport{Width: 1024, Height: 768})
			Expect(f.Frames()).To(Equal(uint64(2)))
			Expect(loop.Pending()).To(Equal(0))
		})
	})

	Describe("visibility", func() {
		It("pauses while hidden and resumes with a single registration", func() {
			f, _ := field.Initialize(loop, "hero", cfg, pr)
			tick(1)

			loop.SetVisible(false)
			Expect(loop.Pending()).To(Equal(0))
			tick(10)
			Expect(f.Frames()).To(Equal(uint64(1)))

			loop.SetVisible(true)
			Expect(loop.Pending()).To(Equal(1))
			tick(1)
			Expect(f.Frames()).To(Equal(uint64(2)))
		})

		It("never stacks registrations across repeated hide/show cycles", func() {
			f, _ := field.Initialize(loop, "hero", cfg, pr)
			for i := 0; i < 25; i++ {
				f.SetVisible(false)
				Expect(loop.Pending()).To(Equal(0))
				f.SetVisible(true)
				f.SetVisible(true)
				Expect(loop.Pending()).To(Equal(1))
			}
			tick(1)
			Expect(f.Frames()).To(Equal(uint64(1)))
			Expect(loop.Pending()).To(Equal(1))
		})

		It("stays paused when mounted on a hidden host", func() {
			loop.SetVisible(false)
			f, err := field.Initialize(loop, "hero", cfg, pr)
			Expect(err).NotTo(HaveOccurred())
			Expect(loop.Pending()).To(Equal(0))
			tick(5)
			Expect(f.Frames()).To(BeZero())

			loop.SetVisible(true)
			Expect(loop.Pending()).To(Equal(1))
			tick(1)
			Expect(f.Frames()).To(Equal(uint64(1)))
		})

		It("does not reseed on visibility changes", func() {
			f, _ := field.Initialize(loop, "hero", cfg, pr)
			f.SetVisible(false)
			f.SetVisible(true)
			Expect(f.Seeds()).To(Equal(1))
		})
	})

	Describe("mode flag", func() {
		It("skips drawing in mode none without losing state", func() {
			f, _ := field.Initialize(loop, "hero", cfg, pr)
			tick(1)
			before := f.Particles()
			draws := surface.Draws()

			pr.mode = field.ModeNone
			tick(10)
			Expect(surface.Draws()).To(Equal(draws))
			Expect(f.Particles()).To(Equal(before))
			Expect(loop.Pending()).To(Equal(1))

			pr.mode = field.ModeGlow
			tick(1)
			Expect(surface.Glows).To(Equal(len(before)))
		})
	})

	Describe("Stop", func() {
		It("cancels the pending frame and unsubscribes from the host", func() {
			f, _ := field.Initialize(loop, "hero", cfg, pr)
			f.Stop()
			Expect(loop.Pending()).To(Equal(0))
			Expect(f.Stopped()).To(BeTrue())

			loop.Resize(field.Viewport{Width: 100, Height: 100})
			loop.SetVisible(false)
			loop.SetVisible(true)
			tick(3)
			Expect(f.Seeds()).To(Equal(1))
			Expect(f.Frames()).To(Equal(uint64(0)))
			Expect(loop.Pending()).To(Equal(0))

			Expect(f.Stop).NotTo(Panic())
		})

		It("takes effect after a frame that stops its own field", func() {
			f, _ := field.Initialize(loop, "hero", cfg, pr)
			f.AddObserver(field.ObserverFunc(func(field.FrameStats) { f.Stop() }))
			tick(3)
			Expect(f.Frames()).To(Equal(uint64(1)))
			Expect(loop.Pending()).To(Equal(0))
		})
	})

	Describe("multiple instances", func() {
		It("keep independent populations and registrations", func() {
			other := &field.Counter{}
			loop.Mount("footer", other)
			sparse := cfg
			sparse.MinCount = 5
			sparse.LinkDistance = 0

			a, _ := field.Initialize(loop, "hero", cfg, pr)
			b, _ := field.Initialize(loop, "footer", sparse, pr)
			Expect(loop.Pending()).To(Equal(2))

			b.Stop()
			tick(4)
			Expect(a.Frames()).To(Equal(uint64(4)))
			Expect(b.Frames()).To(Equal(uint64(0)))
			Expect(other.Draws()).To(Equal(0))
			Expect(b.Particles()).To(HaveLen(5))
		})
	})

	Describe("observers", func() {
		It("receive stats for every drawn frame", func() {
			f, _ := field.Initialize(loop, "hero", cfg, pr)
			var got []field.FrameStats
			f.AddObserver(field.ObserverFunc(func(s field.FrameStats) { got = append(got, s) }))
			tick(3)

			Expect(got).To(HaveLen(3))
			Expect(got[2].Frame).To(Equal(uint64(3)))
			Expect(got[0].Particles).To(Equal(len(f.Particles())))
			Expect(got[0].Mode).To(Equal(field.ModeParticles))
			Expect(got[2].Links).To(Equal(len(f.Links())))
		})
	})
})
