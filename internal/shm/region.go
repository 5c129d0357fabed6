// Package shm exposes named, read-only shared memory segments published by
// another process.
package shm

import (
	"io"
	"sync"

	"codeberg.org/mutker/actelemetry/internal/errors"
)

// Region is a read-only view of a shared memory segment
type Region interface {
	io.ReaderAt
	Name() string
	Size() int
	Close() error
}

type region struct {
	name    string
	data    []byte
	release func() error
	mu      sync.RWMutex
	closed  bool
}

// NewMemory wraps data as a Region. Writes to data are visible to readers,
// which makes it a stand-in for a live segment.
func NewMemory(name string, data []byte) Region {
	return &region{name: name, data: data}
}

func (r *region) Name() string {
	return r.name
}

func (r *region) Size() int {
	return len(r.data)
}

// ReadAt copies from the segment. The copy is not atomic with respect to the
// publishing process.
func (r *region) ReadAt(p []byte, off int64) (int, error) {
	errFactory := errors.New()

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return 0, errFactory.WithData(ErrRegionClosed, r.name)
	}
	if off < 0 {
		return 0, errFactory.WithData(ErrInvalidOffset, off)
	}
	if off >= int64(len(r.data)) {
		return 0, io.EOF
	}

	n := copy(p, r.data[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

func (r *region) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	r.data = nil

	if r.release == nil {
		return nil
	}
	if err := r.release(); err != nil {
		return errors.New().Wrap(ErrUnmapFailed, err)
	}

	return nil
}
