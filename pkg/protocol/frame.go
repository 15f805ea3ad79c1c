package protocol

import "errors"

// Frame constants.
const (
	// FrameHeaderSize is the size of the frame header in bytes.
	FrameHeaderSize = 4

	// MaxPayloadSize is the maximum payload size (2^16 - 1 bytes).
	MaxPayloadSize = 65535
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameHandshake FrameType = 0x00 // Client → server connection setup
	FrameNav       FrameType = 0x01 // Server → client navigation request
	FrameLocation  FrameType = 0x02 // Client → server location snapshot
	FrameControl   FrameType = 0x03 // Ping/pong/close
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameHandshake:
		return "Handshake"
	case FrameNav:
		return "Nav"
	case FrameLocation:
		return "Location"
	case FrameControl:
		return "Control"
	default:
		return "Unknown"
	}
}

// Frame errors.
var (
	ErrFrameTooShort    = errors.New("protocol: frame shorter than header")
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrFrameTruncated   = errors.New("protocol: frame payload truncated")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is a decoded protocol frame.
//
// Wire format, 4-byte header followed by the payload:
//
//	byte 0    frame type
//	byte 1    flags (reserved, currently zero)
//	bytes 2-3 payload length, big-endian
type Frame struct {
	Type    FrameType
	Flags   uint8
	Payload []byte
}

// EncodeFrame wraps a payload in a frame header.
func EncodeFrame(ft FrameType, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	buf := make([]byte, FrameHeaderSize+len(payload))
	buf[0] = byte(ft)
	buf[1] = 0
	buf[2] = byte(len(payload) >> 8)
	buf[3] = byte(len(payload))
	copy(buf[FrameHeaderSize:], payload)
	return buf, nil
}

// DecodeFrame parses a frame from a complete message. The returned
// payload aliases msg.
func DecodeFrame(msg []byte) (*Frame, error) {
	if len(msg) < FrameHeaderSize {
		return nil, ErrFrameTooShort
	}
	ft := FrameType(msg[0])
	if ft > FrameControl {
		return nil, ErrInvalidFrameType
	}
	length := int(msg[2])<<8 | int(msg[3])
	if len(msg)-FrameHeaderSize < length {
		return nil, ErrFrameTruncated
	}
	return &Frame{
		Type:    ft,
		Flags:   msg[1],
		Payload: msg[FrameHeaderSize : FrameHeaderSize+length],
	}, nil
}
