// Package noise provides the 2D value-noise primitive that drives the
// wave field.
//
// Values are anchored at integer lattice points by a fixed sine hash and
// blended with a cubic smoothstep, so the field is continuous everywhere
// and identical inputs always produce identical outputs:
//
//	h := noise.Value(noise.Vec2{X: 1.5, Y: -2.25})
//
// There is no internal state; every function is safe for concurrent use.
package noise
