// Package analysis runs the wave field offline.
//
//   - [Sweep]: walks the wall clock through the parameter mapper and reports
//     per-parameter statistics, including the largest step-to-step jump
//   - [Spectrum]: steps a driver and transforms one vertex's height over time
//
// A 12 hour sweep at one minute steps covers every hour hand position:
//
//	res, err := analysis.Sweep(analysis.SweepOptions{})
//	fmt.Print(res.Report())
package analysis
