package engine

import "sync"

// Default sizes for buffer allocation
const (
	// defaultLineCapacity covers typical transliteration lines without growth
	defaultLineCapacity = 256

	// maxRetainLineCapacity - buffers larger than this are released to
	// prevent memory bloat in the pool from occasional huge lines
	maxRetainLineCapacity = 8192
)

// lineBufferPool manages a pool of LineBuffer objects to reduce
// allocations. Each translated line needs three parallel tracks that
// would otherwise be allocated and discarded per line; pooling them
// pays off for multi-line documents and high-throughput callers.
var lineBufferPool = sync.Pool{
	New: func() interface{} {
		return &LineBuffer{
			chars:  make([]rune, 0, defaultLineCapacity),
			locked: make([]bool, 0, defaultLineCapacity),
			orig:   make([]rune, 0, defaultLineCapacity),
		}
	},
}

// acquireLineBuffer gets an empty LineBuffer from the pool with
// capacity for at least sizeHint positions.
func acquireLineBuffer(sizeHint int) *LineBuffer {
	b := lineBufferPool.Get().(*LineBuffer)
	b.reset()
	if cap(b.chars) < sizeHint {
		b.chars = make([]rune, 0, sizeHint)
		b.locked = make([]bool, 0, sizeHint)
		b.orig = make([]rune, 0, sizeHint)
	}
	return b
}

// releaseLineBuffer returns a LineBuffer to the pool unless it grew
// beyond the retention threshold.
func releaseLineBuffer(b *LineBuffer) {
	if b == nil || cap(b.chars) > maxRetainLineCapacity {
		return
	}
	lineBufferPool.Put(b)
}
