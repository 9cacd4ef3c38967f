package driver

import "sync"

// HeightPool recycles height buffers of one grid size.
type HeightPool struct {
	pool sync.Pool
	size int
}

func NewHeightPool(size int) *HeightPool {
	return &HeightPool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]float64, size)
			},
		},
	}
}

func (p *HeightPool) Size() int { return p.size }

func (p *HeightPool) Get() []float64 {
	return p.pool.Get().([]float64)
}

// Put returns h to the pool. Buffers of the wrong size are dropped.
func (p *HeightPool) Put(h []float64) {
	if len(h) == p.size {
		for i := range h {
			h[i] = 0
		}
		p.pool.Put(h)
	}
}

func (p *HeightPool) GetAndCopy(src []float64) []float64 {
	dst := p.Get()
	copy(dst, src)
	return dst
}
