package driver_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavefield/internal/clock"
	"github.com/san-kum/wavefield/internal/driver"
	"github.com/san-kum/wavefield/internal/grid"
	"github.com/san-kum/wavefield/internal/wave"
)

var _ = Describe("Driver", func() {
	var d *driver.Driver

	BeforeEach(func() {
		plane, err := grid.NewPlane(16, grid.DefaultSize)
		Expect(err).NotTo(HaveOccurred())
		d, err = driver.New(driver.Options{Plane: plane})
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		d.Close()
	})

	Context("at three o'clock", func() {
		It("sets speeds from the hour hand", func() {
			f := d.Tick(0, 0, clock.Sample{Hours: 3})
			Expect(f.Layers[0].Speed).To(BeNumerically("~", 0.3, 1e-9))
			Expect(f.Layers[1].Speed).To(BeNumerically("~", 1.51, 1e-9))
			Expect(f.Display).To(Equal("3:00:00"))
		})
	})

	Context("across midnight", func() {
		It("keeps the hand angles continuous", func() {
			before := d.Tick(1, 0.001, clock.Sample{Hours: 11, Minutes: 59, Seconds: 59, Millis: 999, PM: true})
			after := d.Tick(1.001, 0.001, clock.Sample{})

			diff := func(a, b float64) float64 {
				return math.Abs(clock.Wrap(a-b+math.Pi) - math.Pi)
			}
			Expect(diff(before.Angles.Second, after.Angles.Second)).To(BeNumerically("<=", 2*math.Pi/60000+1e-9))
			Expect(diff(before.Angles.Hour, after.Angles.Hour)).To(BeNumerically("<=", 2*math.Pi/(12*3600000)+1e-12))
			Expect(after.Angles.Second).To(BeNumerically("~", clock.Midnight, 1e-12))
		})
	})

	It("never lets elapsed run backwards", func() {
		d.Tick(10, 0, clock.Sample{})
		Expect(d.Tick(4, 0, clock.Sample{}).Elapsed).To(Equal(10.0))
	})

	It("keeps every height within the amplitude envelope", func() {
		max := wave.DefaultTuning().MaxAmplitude()
		for s := 0; s < 60; s += 7 {
			f := d.Tick(float64(s)*3.7, 0.016, clock.Sample{Hours: s % 12, Minutes: s, Seconds: s})
			for _, h := range f.Heights {
				Expect(h).To(BeNumerically(">=", 0))
				Expect(h).To(BeNumerically("<=", max+1e-9))
			}
		}
	})

	It("does not cache parameters between calls", func() {
		a := d.Tick(1, 0, clock.Sample{Minutes: 10})
		b := d.Tick(1, 0, clock.Sample{Minutes: 25})
		Expect(a.Layers).NotTo(Equal(b.Layers))
	})
})
