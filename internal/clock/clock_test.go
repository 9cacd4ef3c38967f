package clock

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestFromTime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want Sample
	}{
		{"midnight", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Sample{}},
		{"noon", time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), Sample{PM: true}},
		{"late", time.Date(2026, 1, 1, 23, 59, 59, 999_500_000, time.UTC), Sample{11, 59, 59, 999, true}},
		{"morning", time.Date(2026, 1, 1, 3, 4, 5, 6_000_000, time.UTC), Sample{3, 4, 5, 6, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromTime(tt.in); got != tt.want {
				t.Errorf("FromTime() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFractionalValues(t *testing.T) {
	s := Sample{Hours: 3, Minutes: 30, Seconds: 15, Millis: 500}

	if got := s.FracSeconds(); got != 15.5 {
		t.Errorf("FracSeconds() = %v, want 15.5", got)
	}
	if got, want := s.FracMinutes(), 30+15.5/60; math.Abs(got-want) > 1e-12 {
		t.Errorf("FracMinutes() = %v, want %v", got, want)
	}
	if got, want := s.FracHours(), 3+(30+15.5/60)/60; math.Abs(got-want) > 1e-12 {
		t.Errorf("FracHours() = %v, want %v", got, want)
	}
}

func TestAnglesAtMidnight(t *testing.T) {
	a := AnglesOf(Sample{})
	if a.Hour != Midnight || a.Minute != Midnight || a.Second != Midnight {
		t.Errorf("AnglesOf(00:00:00) = %+v, want all %v", a, Midnight)
	}
}

func TestAnglesPeriodic(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(float64) float64
		period float64
	}{
		{"second", SecondAngle, 60},
		{"minute", MinuteAngle, 60},
		{"hour", HourAngle, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, x := range []float64{0, 0.001, 7.25, 33.3, 59.999} {
				a, b := Wrap(tt.fn(x)), Wrap(tt.fn(x+tt.period))
				d := math.Abs(a - b)
				if d > 1e-9 && TwoPi-d > 1e-9 {
					t.Errorf("%s(%v) = %v, %s(%v) = %v", tt.name, x, a, tt.name, x+tt.period, b)
				}
			}
		})
	}
}

func TestHourAngleAtThree(t *testing.T) {
	a := AnglesOf(Sample{Hours: 3})
	if got, want := a.Hour, Midnight-math.Pi/2; math.Abs(got-want) > 1e-15 {
		t.Errorf("hour angle at 3:00 = %v, want %v", got, want)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{TwoPi, 0},
	}
	for _, tt := range tests {
		if got := Wrap(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []float64{-1e6, -3.3, 0.1, 1e9} {
		if got := Wrap(in); got < 0 || got >= TwoPi {
			t.Errorf("Wrap(%v) = %v, outside [0, 2pi)", in, got)
		}
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		in     Sample
		want   string
	}{
		{"midnight hour reads twelve", Format{}, Sample{Hours: 0, Minutes: 5, Seconds: 9}, "12:05:09"},
		{"single digit hour", Format{}, Sample{Hours: 3}, "3:00:00"},
		{"eleven", Format{}, Sample{Hours: 11, Minutes: 59, Seconds: 59, Millis: 999}, "11:59:59"},
		{"am suffix", Format{Meridiem: true}, Sample{Hours: 0, Minutes: 5, Seconds: 9}, "12:05:09 AM"},
		{"pm suffix", Format{Meridiem: true}, Sample{Hours: 7, Minutes: 30, PM: true}, "7:30:00 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.Display(tt.in); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHour24(t *testing.T) {
	if got := (Sample{Hours: 11, PM: true}).Hour24(); got != 23 {
		t.Errorf("Hour24() = %d, want 23", got)
	}
	if got := (Sample{Hours: 0}).Hour24(); got != 0 {
		t.Errorf("Hour24() = %d, want 0", got)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"03:00", 3 * time.Hour},
		{"03:00:00", 3 * time.Hour},
		{"23:59:59.999", 23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond},
		{" 00:05:09 ", 5*time.Minute + 9*time.Second},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "noon", "25:00", "3pm"} {
		if _, err := ParseTimeOfDay(bad); !errors.Is(err, ErrBadTimeOfDay) {
			t.Errorf("ParseTimeOfDay(%q) error = %v, want ErrBadTimeOfDay", bad, err)
		}
	}
}

func TestScaledSource(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fake := base
	origin := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)

	s := newScaled(origin, 60, func() time.Time { return fake })
	if got := s.Now(); !got.Equal(origin) {
		t.Fatalf("Now() at start = %v, want %v", got, origin)
	}

	fake = base.Add(time.Second)
	if got, want := s.Now(), origin.Add(time.Minute); !got.Equal(want) {
		t.Errorf("Now() after 1s at 60x = %v, want %v", got, want)
	}
}

func TestNewSource(t *testing.T) {
	src, err := NewSource("", 1)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	if _, ok := src.(System); !ok {
		t.Errorf("NewSource(\"\", 1) = %T, want System", src)
	}

	src, err = NewSource("03:00:00", 0)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	fixed, ok := src.(Fixed)
	if !ok {
		t.Fatalf("NewSource(at, 0) = %T, want Fixed", src)
	}
	if s := FromTime(fixed.Now()); s.Hours != 3 || s.Minutes != 0 || s.Seconds != 0 {
		t.Errorf("fixed source sample = %+v, want 3:00:00", s)
	}

	if _, err := NewSource("bogus", 1); err == nil {
		t.Error("expected error for bad time of day")
	}
}
