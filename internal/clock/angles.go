package clock

import "math"

const (
	// Midnight is the phase of every hand at 12:00:00.
	Midnight = math.Pi / 2

	TwoPi = 2 * math.Pi
)

// Angles holds the hand angles for one reading, in radians. The values are
// not reduced; call Wrapped before feeding them to anything that assumes a
// bounded range.
type Angles struct {
	Hour   float64
	Minute float64
	Second float64
}

// SecondAngle is periodic in fracSeconds with period 60.
func SecondAngle(fracSeconds float64) float64 {
	return Midnight - TwoPi*fracSeconds/60
}

// MinuteAngle is periodic in fracMinutes with period 60.
func MinuteAngle(fracMinutes float64) float64 {
	return Midnight - TwoPi*fracMinutes/60
}

// HourAngle is periodic in fracHours with period 12.
func HourAngle(fracHours float64) float64 {
	return Midnight - TwoPi*fracHours/12
}

// AnglesOf computes the three hand angles for s.
func AnglesOf(s Sample) Angles {
	return Angles{
		Hour:   HourAngle(s.FracHours()),
		Minute: MinuteAngle(s.FracMinutes()),
		Second: SecondAngle(s.FracSeconds()),
	}
}

// Wrapped reduces every angle into [0, 2π).
func (a Angles) Wrapped() Angles {
	return Angles{Hour: Wrap(a.Hour), Minute: Wrap(a.Minute), Second: Wrap(a.Second)}
}

// Wrap reduces a into [0, 2π).
func Wrap(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi {
		a = 0
	}
	return a
}
