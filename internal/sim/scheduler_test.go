package sim

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/geom"
	"github.com/san-kum/simlab/internal/physics"
	"github.com/san-kum/simlab/internal/viz"
)

var _ = Describe("Scheduler", func() {
	var s *Scheduler[counterState, counterParams]

	BeforeEach(func() {
		s = newCounter(Config{Dt: 0.01, MaxFrameDelta: 100 * time.Millisecond})
	})

	It("never runs more steps than the capped wall delta allows", func() {
		for _, wall := range []time.Duration{time.Millisecond, time.Second, time.Hour} {
			Expect(s.Advance(wall)).To(BeNumerically("<=", 10))
		}
	})

	It("keeps simulated time equal to steps times dt", func() {
		s.Advance(73 * time.Millisecond)
		s.StepOnce()
		Expect(s.Time()).To(BeNumerically("~", float64(s.Steps())*0.01, 1e-12))
	})

	Context("when paused", func() {
		BeforeEach(func() { s.Pause() })

		It("does not step on Advance", func() {
			Expect(s.Advance(time.Second)).To(Equal(0))
			Expect(s.State().N).To(Equal(0))
		})

		It("single-steps on request", func() {
			s.StepOnce()
			s.StepOnce()
			Expect(s.Steps()).To(Equal(2))
			Expect(s.Paused()).To(BeTrue())
		})
	})

	It("applies queued events in order before stepping", func() {
		s.Push(dynamo.Event{Kind: dynamo.Tap})
		s.StepOnce()
		s.Push(dynamo.Event{Kind: dynamo.Drag})
		s.Push(dynamo.Event{Kind: dynamo.Release})
		s.StepOnce()
		Expect(s.State().Applied).To(Equal([]int{0, 1, 1}))
	})
})

var _ = Describe("Track scheduler", func() {
	It("places the bead where the pointer taps", func() {
		p := physics.DefaultTrackParams()
		s := New[physics.TrackState, physics.TrackParams]("track", physics.NewTrack(), viz.PaintTrack, p, DefaultConfig(), nil)
		surface := geom.Size{W: 200, H: 120}
		at := physics.TrackViewport(surface).ToScreen(geom.Vec2{X: 0.4, Y: 0.5})

		s.Pause()
		s.Push(dynamo.Event{Kind: dynamo.Tap, At: at, From: at, Surface: surface})
		s.Advance(time.Second)

		Expect(s.State().Position).To(BeNumerically("~", 0.4, 1e-9))
		Expect(s.Diagnostics().Must("dissipated")).To(BeZero())
	})
})
