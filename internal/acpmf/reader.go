package acpmf

import (
	stderrors "errors"

	"codeberg.org/mutker/actelemetry/internal/errors"
	"codeberg.org/mutker/actelemetry/internal/shm"
)

// Reader samples the physics and graphics pages
type Reader struct {
	physics  shm.Region
	graphics shm.Region
	pbuf     []byte
	gbuf     []byte
}

// NewReader wraps already opened regions
func NewReader(physics, graphics shm.Region) *Reader {
	return &Reader{
		physics:  physics,
		graphics: graphics,
		pbuf:     make([]byte, PhysicsBlockSize),
		gbuf:     make([]byte, GraphicsBlockSize),
	}
}

// Open maps both pages by name
func Open(physicsName, graphicsName string) (*Reader, error) {
	errFactory := errors.New()

	physics, err := shm.Open(physicsName, PhysicsSize)
	if err != nil {
		return nil, errFactory.Wrap(ErrOpenRegion, err)
	}

	graphics, err := shm.Open(graphicsName, GraphicsSize)
	if err != nil {
		physics.Close()
		return nil, errFactory.Wrap(ErrOpenRegion, err)
	}

	return NewReader(physics, graphics), nil
}

// Read returns the current sample
func (r *Reader) Read() (Sample, error) {
	errFactory := errors.New()

	if _, err := r.physics.ReadAt(r.pbuf, 0); err != nil {
		return Sample{}, errFactory.Wrap(ErrReadPhysics, err)
	}
	physics, err := DecodePhysics(r.pbuf)
	if err != nil {
		return Sample{}, err
	}

	if _, err := r.graphics.ReadAt(r.gbuf, 0); err != nil {
		return Sample{}, errFactory.Wrap(ErrReadGraphics, err)
	}
	graphics, err := DecodeGraphics(r.gbuf)
	if err != nil {
		return Sample{}, err
	}

	return Sample{Physics: physics, Graphics: graphics}, nil
}

// Close releases both regions
func (r *Reader) Close() error {
	err := stderrors.Join(r.physics.Close(), r.graphics.Close())
	if err != nil {
		return errors.New().Wrap(ErrCloseRegion, err)
	}

	return nil
}
