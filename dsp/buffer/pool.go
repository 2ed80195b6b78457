package buffer

import "sync"

// Pool provides sync.Pool-based Buffer reuse to reduce GC pressure
// in block rendering loops.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Buffer{channels: 1}
			},
		},
	}
}

// Get returns a zeroed Buffer with the requested frames and channels.
// Callers must return it via Put when done.
func (p *Pool) Get(frames, channels int) *Buffer {
	if frames < 0 {
		frames = 0
	}

	if channels < 1 {
		channels = 1
	}

	b := p.pool.Get().(*Buffer)

	n := frames * channels
	if cap(b.samples) >= n {
		b.samples = b.samples[:n]
	} else {
		b.samples = make([]float64, n)
	}

	b.channels = channels
	b.Zero()

	return b
}

// Put returns a Buffer to the pool for reuse.
// The caller must not use the buffer after calling Put.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}

	p.pool.Put(b)
}
