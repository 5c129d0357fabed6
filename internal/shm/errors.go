package shm

import "codeberg.org/mutker/actelemetry/internal/errors"

const (
	ErrNotFound      = errors.ErrResourceNotFound
	ErrOpenFailed    = errors.ErrorCode("shm_open_failed")
	ErrMapFailed     = errors.ErrorCode("shm_map_failed")
	ErrRegionSize    = errors.ErrorCode("shm_region_too_small")
	ErrRegionClosed  = errors.ErrorCode("shm_region_closed")
	ErrInvalidOffset = errors.ErrorCode("shm_invalid_offset")
	ErrUnmapFailed   = errors.ErrorCode("shm_unmap_failed")
)
