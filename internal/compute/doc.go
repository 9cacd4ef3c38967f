// Package compute evaluates the wave field over every grid vertex.
//
// Two backends are provided:
//
//   - CPU: splits the vertex slice into chunks across runtime.NumCPU()
//     goroutines; small grids run serially
//   - OpenGL: a GLSL compute shader, built with the opengl tag and usable
//     only once a GL context is current (the gui command)
//
// Every backend reads one immutable [wave.Snapshot] per pass and writes one
// height per vertex; no vertex evaluation touches shared state.
//
//	b := compute.NewCPUBackend(0)
//	b.Displace(plane.Vertices, wave.Snapshot{Layers: l, Elapsed: t}, heights)
//
// Build with GPU support:
//
//	go build -tags opengl ./cmd/wavefield
package compute
