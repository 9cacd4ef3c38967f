package wave

import "math"

// Policy is the per-index behaviour of a layer.
type Policy struct {
	Name string
	// Shape maps a hand angle to [0, 1].
	Shape func(theta float64) float64
	// Rotation is applied to the (optionally swapped) vertex position.
	Rotation float64
	// Swap exchanges x and y before rotation.
	Swap bool
	// TimeSign and TimeScale set the direction and rate of travel.
	TimeSign  float64
	TimeScale float64
}

// Policies is indexed by layer. Layer 1 leads, layer 2 mirrors it a quarter
// period behind and moves the other way.
var Policies = [2]Policy{
	{
		Name:      "lead",
		Shape:     func(theta float64) float64 { return math.Abs(math.Sin(theta)) },
		TimeSign:  1,
		TimeScale: 1,
	},
	{
		Name:      "mirror",
		Shape:     func(theta float64) float64 { return math.Abs(math.Cos(theta)) },
		Rotation:  math.Pi / 4,
		Swap:      true,
		TimeSign:  -1,
		TimeScale: 0.6,
	},
}
