package metrics

import "github.com/san-kum/wavefield/internal/driver"

// FrameRate is the frames per second over a sliding window of intervals.
type FrameRate struct {
	name      string
	intervals []float64
	next      int
	filled    int
	sum       float64
}

func NewFrameRate(window int) *FrameRate {
	if window < 1 {
		window = 1
	}
	return &FrameRate{
		name:      "fps",
		intervals: make([]float64, window),
	}
}

func (r *FrameRate) Name() string { return r.name }

func (r *FrameRate) Observe(f *driver.Frame) {
	if f.Interval <= 0 {
		return
	}
	r.sum -= r.intervals[r.next]
	r.intervals[r.next] = f.Interval
	r.sum += f.Interval
	r.next = (r.next + 1) % len(r.intervals)
	if r.filled < len(r.intervals) {
		r.filled++
	}
}

func (r *FrameRate) Value() float64 {
	if r.filled == 0 || r.sum <= 0 {
		return 0
	}
	return float64(r.filled) / r.sum
}

func (r *FrameRate) Reset() {
	for i := range r.intervals {
		r.intervals[i] = 0
	}
	r.next, r.filled, r.sum = 0, 0, 0
}
