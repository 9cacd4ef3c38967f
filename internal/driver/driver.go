package driver

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/wavefield/internal/clock"
	"github.com/san-kum/wavefield/internal/compute"
	"github.com/san-kum/wavefield/internal/grid"
	"github.com/san-kum/wavefield/internal/wave"
)

type Options struct {
	Plane *grid.Plane
	// Tuning is used as given, zero ranges included; nil means
	// wave.DefaultTuning.
	Tuning     *wave.Tuning
	Format     clock.Format
	Backend    compute.Backend
	Appearance Appearance
}

// Driver owns the mapper, the current layer values and the height buffer.
// It is not safe for concurrent use; one goroutine runs the loop.
type Driver struct {
	mapper     *wave.Mapper
	plane      *grid.Plane
	backend    compute.Backend
	appearance Appearance
	pool       *HeightPool
	heights    []float64
	observers  []Observer

	elapsed float64
	frames  uint64
	last    Frame
}

// New builds a driver. A nil Backend means the CPU backend and a zero
// Appearance means DefaultAppearance.
func New(opts Options) (*Driver, error) {
	if opts.Plane == nil {
		return nil, ErrNoPlane
	}
	tuning := wave.DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	if opts.Backend == nil {
		opts.Backend = compute.NewCPUBackend(0)
	}
	if opts.Appearance == (Appearance{}) {
		opts.Appearance = DefaultAppearance()
	}

	pool := NewHeightPool(opts.Plane.Len())
	return &Driver{
		mapper:     wave.NewMapper(tuning, opts.Format),
		plane:      opts.Plane,
		backend:    opts.Backend,
		appearance: opts.Appearance.Clamped(),
		pool:       pool,
		heights:    pool.Get(),
		observers:  make([]Observer, 0),
	}, nil
}

func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

func (d *Driver) Plane() *grid.Plane         { return d.plane }
func (d *Driver) Backend() compute.Backend   { return d.backend }
func (d *Driver) Mapper() *wave.Mapper       { return d.mapper }
func (d *Driver) Pool() *HeightPool          { return d.pool }
func (d *Driver) Appearance() Appearance     { return d.appearance }
func (d *Driver) Frames() uint64             { return d.frames }
func (d *Driver) Elapsed() float64           { return d.elapsed }
func (d *Driver) SetAppearance(a Appearance) { d.appearance = a.Clamped() }

// SetBackend swaps the vertex backend. The old one is cleaned up.
func (d *Driver) SetBackend(b compute.Backend) {
	if b == nil || b == d.backend {
		return
	}
	d.backend.Cleanup()
	d.backend = b
}

// Last returns the most recent frame, or the zero Frame before the first
// Tick.
func (d *Driver) Last() Frame { return d.last }

// Tick advances one frame.
func (d *Driver) Tick(elapsed, interval float64, wall clock.Sample) Frame {
	if math.IsNaN(elapsed) || elapsed < d.elapsed {
		elapsed = d.elapsed
	}
	if math.IsNaN(interval) || interval < 0 {
		interval = 0
	}
	d.elapsed = elapsed

	p := d.mapper.Update(wall)
	snap := wave.Snapshot{Layers: p.Layers, Elapsed: elapsed}
	d.backend.Displace(d.plane.Vertices, snap, d.heights)

	f := Frame{
		Index:      d.frames,
		Layers:     p.Layers,
		Angles:     p.Angles,
		Display:    p.Display,
		Wall:       wall,
		Elapsed:    elapsed,
		Interval:   interval,
		Heights:    d.heights,
		Appearance: d.appearance,
	}
	d.frames++
	d.last = f

	for _, obs := range d.observers {
		obs.OnFrame(&f)
	}
	return f
}

// Capture copies the most recent frame into a pooled buffer so it survives
// later ticks. Hand it back with Release.
func (d *Driver) Capture() Frame {
	f := d.last
	if f.Heights != nil {
		f.Heights = d.pool.GetAndCopy(f.Heights)
	}
	return f
}

func (d *Driver) Release(f Frame) {
	d.pool.Put(f.Heights)
}

// Close releases the backend.
func (d *Driver) Close() {
	d.backend.Cleanup()
}

// Run ticks at fps against src until ctx is done or fn returns false.
// Elapsed time is measured from the first frame; fn may be nil.
func (d *Driver) Run(ctx context.Context, src clock.Source, fps int, fn func(Frame) bool) error {
	if fps <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidFPS, fps)
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	start := time.Now()
	prev := start
	base := d.elapsed

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			f := d.Tick(base+now.Sub(start).Seconds(), now.Sub(prev).Seconds(), clock.FromTime(src.Now()))
			prev = now
			if fn != nil && !fn(f) {
				return nil
			}
		}
	}
}

// Steps describes an offline run: Count frames Dt seconds apart, with the
// wall clock starting at Start and running ClockSpeed times faster than the
// animation (zero means 1).
type Steps struct {
	Start      time.Time
	Dt         float64
	Count      int
	ClockSpeed float64
}

// RunSteps ticks without a real clock, for sweeps, exports and benchmarks.
func (d *Driver) RunSteps(ctx context.Context, s Steps, fn func(Frame) bool) error {
	if s.Count <= 0 || s.Dt <= 0 {
		return fmt.Errorf("%w: count=%d dt=%f", ErrInvalidSteps, s.Count, s.Dt)
	}
	speed := s.ClockSpeed
	if speed == 0 {
		speed = 1
	}

	base := d.elapsed
	for i := 0; i < s.Count; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t := float64(i) * s.Dt
		wall := s.Start.Add(time.Duration(t * speed * float64(time.Second)))
		f := d.Tick(base+t, s.Dt, clock.FromTime(wall))
		if fn != nil && !fn(f) {
			return nil
		}
	}
	return nil
}
