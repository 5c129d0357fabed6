// Package acpmf decodes the Assetto Corsa shared memory pages.
package acpmf

// Segment names and mapping sizes
const (
	PhysicsName  = `Local\acpmf_physics`
	GraphicsName = `Local\acpmf_graphics`

	PhysicsSize  = 2048
	GraphicsSize = 256
)

// Physics page, little endian. Only the leading block is read per tick.
const (
	physicsPacketID = 0
	physicsGas      = 4
	physicsBrake    = 8
	physicsFuel     = 12
	physicsGear     = 16
	physicsRPM      = 20
	physicsSteer    = 24
	physicsSpeed    = 28

	PhysicsBlockSize = 32
)

// Graphics page, little endian. Times are wchar[15].
const (
	graphicsPacketID      = 0
	graphicsStatus        = 4
	graphicsSession       = 8
	graphicsCurrentTime   = 12
	graphicsLastTime      = 42
	graphicsBestTime      = 72
	graphicsCompletedLaps = 132
	graphicsPosition      = 136

	timeStringBytes = 30

	GraphicsBlockSize = GraphicsSize
)

// Status is the simulator state published in the graphics page
type Status int32

const (
	StatusOff Status = iota
	StatusReplay
	StatusLive
	StatusPause
)

func (s Status) String() string {
	switch s {
	case StatusOff:
		return "off"
	case StatusReplay:
		return "replay"
	case StatusLive:
		return "live"
	case StatusPause:
		return "pause"
	default:
		return "unknown"
	}
}

// SessionType is the kind of session running in the simulator
type SessionType int32

const (
	SessionUnknown SessionType = iota - 1
	SessionPractice
	SessionQualify
	SessionRace
	SessionHotlap
	SessionTimeAttack
	SessionDrift
	SessionDrag
)

func (s SessionType) String() string {
	switch s {
	case SessionPractice:
		return "practice"
	case SessionQualify:
		return "qualify"
	case SessionRace:
		return "race"
	case SessionHotlap:
		return "hotlap"
	case SessionTimeAttack:
		return "time_attack"
	case SessionDrift:
		return "drift"
	case SessionDrag:
		return "drag"
	default:
		return "unknown"
	}
}
