// Package wave maps clock readings to wave-layer parameters and evaluates
// the two-layer noise displacement of the field.
//
// The pipeline per frame is:
//
//	m := wave.NewMapper(wave.DefaultTuning(), clock.Format{})
//	p := m.Update(clock.FromTime(time.Now()))
//	z := wave.Displace(noise.Vec2{X: x, Y: z}, elapsed, p.Layers)
//
// # Layers
//
// There are always exactly two layers. Layer 1 follows |sin| of the hand
// angles and travels forward in time; layer 2 follows |cos| (a quarter
// period behind), samples a swapped and rotated copy of the plane and
// travels backwards at 0.6 of its speed. The per-index behaviour lives in
// [Policies] so the formulas are written once.
//
// # Thread Safety
//
// [Displace] is pure and may be called from any number of goroutines.
// [Mapper] is not safe for concurrent use; call Update once per frame
// before the vertex pass and hand the returned [Layers] value to readers.
package wave
