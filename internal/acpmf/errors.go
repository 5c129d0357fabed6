package acpmf

import "codeberg.org/mutker/actelemetry/internal/errors"

const (
	ErrShortBlock   = errors.ErrorCode("acpmf_short_block")
	ErrReadPhysics  = errors.ErrorCode("acpmf_read_physics_failed")
	ErrReadGraphics = errors.ErrorCode("acpmf_read_graphics_failed")
	ErrOpenRegion   = errors.ErrorCode("acpmf_open_region_failed")
	ErrCloseRegion  = errors.ErrorCode("acpmf_close_region_failed")
)
