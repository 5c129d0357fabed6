package acpmf

import (
	"bytes"
	"encoding/binary"
	"math"

	"codeberg.org/mutker/actelemetry/internal/errors"
	"golang.org/x/text/encoding/unicode"
)

// Physics holds the fields read from the physics page
type Physics struct {
	PacketID   int32
	Gas        float32
	Brake      float32
	Fuel       float32
	Gear       int32
	RPM        int32
	SteerAngle float32
	SpeedKmh   float32
}

// Graphics holds the fields read from the graphics page
type Graphics struct {
	PacketID      int32
	Status        Status
	Session       SessionType
	CurrentTime   string
	LastTime      string
	BestTime      string
	CompletedLaps int32
	Position      int32
}

// Sample is one tick worth of telemetry
type Sample struct {
	Physics
	Graphics
}

// GearDisplay maps the raw gear (0 = reverse, 1 = neutral) to the driver's
// gear number, reporting reverse as neutral.
func (s Sample) GearDisplay() int {
	return max(int(s.Gear)-1, 0)
}

// CurrentLap is the lap being driven, counting from 1
func (s Sample) CurrentLap() int {
	return int(s.CompletedLaps) + 1
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// DecodePhysics decodes the leading PhysicsBlockSize bytes of the physics page
func DecodePhysics(b []byte) (Physics, error) {
	if len(b) < PhysicsBlockSize {
		return Physics{}, errors.New().WithData(ErrShortBlock, struct {
			Page string
			Have int
			Want int
		}{"physics", len(b), PhysicsBlockSize})
	}

	return Physics{
		PacketID:   int32At(b, physicsPacketID),
		Gas:        float32At(b, physicsGas),
		Brake:      float32At(b, physicsBrake),
		Fuel:       float32At(b, physicsFuel),
		Gear:       int32At(b, physicsGear),
		RPM:        int32At(b, physicsRPM),
		SteerAngle: float32At(b, physicsSteer),
		SpeedKmh:   float32At(b, physicsSpeed),
	}, nil
}

// DecodeGraphics decodes the graphics page
func DecodeGraphics(b []byte) (Graphics, error) {
	if len(b) < graphicsPosition+4 {
		return Graphics{}, errors.New().WithData(ErrShortBlock, struct {
			Page string
			Have int
			Want int
		}{"graphics", len(b), graphicsPosition + 4})
	}

	return Graphics{
		PacketID:      int32At(b, graphicsPacketID),
		Status:        Status(int32At(b, graphicsStatus)),
		Session:       SessionType(int32At(b, graphicsSession)),
		CurrentTime:   DecodeString(b[graphicsCurrentTime : graphicsCurrentTime+timeStringBytes]),
		LastTime:      DecodeString(b[graphicsLastTime : graphicsLastTime+timeStringBytes]),
		BestTime:      DecodeString(b[graphicsBestTime : graphicsBestTime+timeStringBytes]),
		CompletedLaps: int32At(b, graphicsCompletedLaps),
		Position:      int32At(b, graphicsPosition),
	}, nil
}

// DecodeString decodes a NUL terminated UTF-16LE buffer. Undecodable input
// yields an empty string.
func DecodeString(b []byte) string {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			b = b[:i]
			break
		}
	}

	out, err := utf16le.NewDecoder().Bytes(b)
	if err != nil || bytes.ContainsRune(out, '\uFFFD') {
		return ""
	}

	return string(out)
}

func int32At(b []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(b[off : off+4]))
}

func float32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off : off+4]))
}
