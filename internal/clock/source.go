package clock

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrBadTimeOfDay is returned by ParseTimeOfDay for unparseable input.
var ErrBadTimeOfDay = errors.New("clock: invalid time of day")

// Source supplies wall-clock readings to a frame driver.
type Source interface {
	Now() time.Time
}

// System reads the host clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Scaled runs a virtual clock from Origin at Speed times real time.
type Scaled struct {
	Origin time.Time
	Speed  float64

	start time.Time
	now   func() time.Time
}

// NewScaled starts a virtual clock at origin. A speed of 1 tracks real time
// shifted to origin; 60 plays one minute per second.
func NewScaled(origin time.Time, speed float64) *Scaled {
	return newScaled(origin, speed, time.Now)
}

func newScaled(origin time.Time, speed float64, now func() time.Time) *Scaled {
	return &Scaled{Origin: origin, Speed: speed, start: now(), now: now}
}

func (s *Scaled) Now() time.Time {
	elapsed := s.now().Sub(s.start)
	return s.Origin.Add(time.Duration(float64(elapsed) * s.Speed))
}

var timeOfDayLayouts = []string{"15:04:05.000", "15:04:05", "15:04"}

// ParseTimeOfDay parses "15:04", "15:04:05" or "15:04:05.000" into an offset
// from midnight.
func ParseTimeOfDay(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second +
			time.Duration(t.Nanosecond()), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadTimeOfDay, s)
}

// OnDay returns the instant offset after local midnight of day.
func OnDay(day time.Time, offset time.Duration) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, day.Location()).Add(offset)
}

// NewSource builds a source from an optional time-of-day and speed. An empty
// at with speed 1 is the system clock; an at with speed 0 is frozen.
func NewSource(at string, speed float64) (Source, error) {
	if at == "" && speed == 1 {
		return System{}, nil
	}
	origin := time.Now()
	if at != "" {
		offset, err := ParseTimeOfDay(at)
		if err != nil {
			return nil, err
		}
		origin = OnDay(origin, offset)
	}
	if speed == 0 {
		return Fixed{T: origin}, nil
	}
	return NewScaled(origin, speed), nil
}
