package compute

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/san-kum/wavefield/internal/grid"
	"github.com/san-kum/wavefield/internal/wave"
)

// serialThreshold is the vertex count below which fan-out costs more than
// it saves.
const serialThreshold = 1024

type CPUBackend struct {
	workers int
}

// NewCPUBackend uses the given number of workers; zero or less means one per
// CPU.
func NewCPUBackend(workers int) *CPUBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUBackend{workers: workers}
}

func (c *CPUBackend) Name() string {
	if c.workers == 1 {
		return "cpu (serial)"
	}
	return fmt.Sprintf("cpu (%d workers)", c.workers)
}

func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}
func (c *CPUBackend) Workers() int    { return c.workers }

func (c *CPUBackend) Displace(vertices []grid.Vertex, snap wave.Snapshot, out []float64) {
	n := len(vertices)
	if n < serialThreshold || c.workers == 1 {
		displaceRange(vertices, snap, out, 0, n)
		return
	}

	var wg sync.WaitGroup
	chunkSize := (n + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		start := w * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			displaceRange(vertices, snap, out, start, end)
		}(start, end)
	}

	wg.Wait()
}

func displaceRange(vertices []grid.Vertex, snap wave.Snapshot, out []float64, start, end int) {
	for i := start; i < end; i++ {
		v := vertices[i]
		out[i] = snap.Height(v.X, v.Z)
	}
}
