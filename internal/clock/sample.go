package clock

import "time"

// Sample is one wall-clock reading on a 12-hour dial.
type Sample struct {
	Hours   int // 0..11
	Minutes int // 0..59
	Seconds int // 0..59
	Millis  int // 0..999
	PM      bool
}

// FromTime samples t in its own location.
func FromTime(t time.Time) Sample {
	h := t.Hour()
	return Sample{
		Hours:   h % 12,
		Minutes: t.Minute(),
		Seconds: t.Second(),
		Millis:  t.Nanosecond() / int(time.Millisecond),
		PM:      h >= 12,
	}
}

// FracSeconds is seconds plus the millisecond fraction.
func (s Sample) FracSeconds() float64 {
	return float64(s.Seconds) + float64(s.Millis)/1000
}

// FracMinutes is minutes plus the fractional seconds.
func (s Sample) FracMinutes() float64 {
	return float64(s.Minutes) + s.FracSeconds()/60
}

// FracHours is the dial hour (mod 12) plus the fractional minutes.
func (s Sample) FracHours() float64 {
	return float64(s.Hours%12) + s.FracMinutes()/60
}

// Hour24 returns the 0..23 hour of the reading.
func (s Sample) Hour24() int {
	h := s.Hours % 12
	if s.PM {
		h += 12
	}
	return h
}

func (s Sample) String() string {
	return Format{}.Display(s)
}
