// Package driver owns the per-frame pipeline of the wave field.
//
// Each call to [Driver.Tick] samples nothing itself: the caller hands in the
// elapsed animation time, the frame interval and a wall-clock reading. Tick
// then
//
//  1. clamps elapsed so it never runs backwards
//  2. runs the parameter mapper exactly once
//  3. passes an immutable [wave.Snapshot] to the compute backend, which
//     writes one height per grid vertex
//  4. notifies observers
//
// Shells (bubbletea, raylib, headless) own the loop and call Tick; tests can
// call it with synthetic clock values.
//
//	d, _ := driver.New(driver.Options{Plane: plane})
//	f := d.Tick(1.5, 1.0/60, clock.Sample{Hours: 3})
//	fmt.Println(f.Display, f.Heights[0])
package driver
