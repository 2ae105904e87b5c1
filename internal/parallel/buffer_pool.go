package parallel

import "sync"

// BufferPool reuses band pixel buffers via sync.Pool.
//
// A view keeps its resolution and worker count across most renders, so the
// same handful of buffer sizes come back every frame. Buffers are pooled by
// exact length; a buffer whose length has no pool is left to the GC.
//
// Thread safety: BufferPool is safe for concurrent use.
type BufferPool struct {
	// pools maps a buffer length to its *sync.Pool.
	pools sync.Map
}

// NewBufferPool creates an empty buffer pool.
func NewBufferPool() *BufferPool {
	return &BufferPool{}
}

// Get returns a buffer of exactly size bytes. Its contents are undefined;
// the renderer overwrites every byte. Returns nil for size <= 0.
func (p *BufferPool) Get(size int) []byte {
	if size <= 0 {
		return nil
	}
	buf := p.pool(size).Get().(*[]byte)
	return *buf
}

// Put returns a buffer for reuse. Nil and empty buffers are ignored.
func (p *BufferPool) Put(buf []byte) {
	if len(buf) == 0 {
		return
	}
	if pool, ok := p.pools.Load(len(buf)); ok {
		pool.(*sync.Pool).Put(&buf)
	}
}

// pool gets or creates the sync.Pool for one buffer length.
func (p *BufferPool) pool(size int) *sync.Pool {
	if pool, ok := p.pools.Load(size); ok {
		return pool.(*sync.Pool)
	}

	created := &sync.Pool{
		New: func() any {
			buf := make([]byte, size)
			return &buf
		},
	}

	// Another goroutine may have stored one first; use theirs.
	actual, _ := p.pools.LoadOrStore(size, created)
	return actual.(*sync.Pool)
}

// defaultPool backs GetBuffer and PutBuffer.
var defaultPool = NewBufferPool()

// GetBuffer retrieves a buffer from the package-level pool.
func GetBuffer(size int) []byte {
	return defaultPool.Get(size)
}

// PutBuffer returns a buffer to the package-level pool.
func PutBuffer(buf []byte) {
	defaultPool.Put(buf)
}
