package protocol

import (
	"errors"

	"github.com/navio-dev/navio/pkg/nav"
)

// ProtocolVersion is the current wire protocol version.
const ProtocolVersion = 1

// ErrVersionMismatch is returned when the client speaks a different
// protocol version.
var ErrVersionMismatch = errors.New("protocol: version mismatch")

// Handshake is the first frame a client sends after connecting. It
// carries the protocol version and the tab's starting location, so the
// host has an address-bar snapshot before any navigation happens.
type Handshake struct {
	Version  uint16
	Fallback bool // Client registered the fallback event (older engine)
	Location nav.Location
}

// EncodeHandshake encodes a handshake payload.
func EncodeHandshake(h *Handshake) []byte {
	e := NewEncoder()
	e.WriteUint16(h.Version)
	e.WriteBool(h.Fallback)
	for _, field := range locationFields(&h.Location) {
		e.WriteString(*field)
	}
	return e.Bytes()
}

// DecodeHandshake decodes a handshake payload and checks the version.
func DecodeHandshake(payload []byte) (*Handshake, error) {
	d := NewDecoder(payload)

	version, err := d.ReadUint16()
	if err != nil {
		return nil, err
	}
	if version != ProtocolVersion {
		return nil, ErrVersionMismatch
	}

	h := &Handshake{Version: version}
	if h.Fallback, err = d.ReadBool(); err != nil {
		return nil, err
	}
	for _, field := range locationFields(&h.Location) {
		if *field, err = d.ReadString(); err != nil {
			return nil, err
		}
	}
	return h, nil
}
