package protocol

import "errors"

// NavOp identifies the navigation operation requested of the client.
type NavOp uint8

const (
	NavPush    NavOp = 0x01 // history.pushState with the given URL
	NavReplace NavOp = 0x02 // history.replaceState with the given URL
	NavGo      NavOp = 0x03 // history.go with the given step count
)

// String returns the string representation of the nav op.
func (op NavOp) String() string {
	switch op {
	case NavPush:
		return "Push"
	case NavReplace:
		return "Replace"
	case NavGo:
		return "Go"
	default:
		return "Unknown"
	}
}

// ErrInvalidNavOp is returned when decoding an unknown nav operation.
var ErrInvalidNavOp = errors.New("protocol: invalid nav op")

// NavRequest asks the client to perform a history operation.
//
// Push and Replace carry a non-zero Seq; the client answers with a
// Location frame echoing it. Go is fire-and-forget (Seq zero): the
// landing location arrives as an unsolicited popstate report instead.
type NavRequest struct {
	Op    NavOp
	Seq   uint64 // Reply correlation; zero for Go
	URL   string // Push/Replace only
	Steps int64  // Go only; negative = back
}

// EncodeNav encodes a nav request payload.
func EncodeNav(req *NavRequest) []byte {
	e := NewEncoder()
	e.WriteByte(byte(req.Op))
	e.WriteUvarint(req.Seq)
	switch req.Op {
	case NavGo:
		e.WriteSvarint(req.Steps)
	default:
		e.WriteString(req.URL)
	}
	return e.Bytes()
}

// DecodeNav decodes a nav request payload.
func DecodeNav(payload []byte) (*NavRequest, error) {
	d := NewDecoder(payload)

	op, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	req := &NavRequest{Op: NavOp(op)}

	if req.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}

	switch req.Op {
	case NavPush, NavReplace:
		if req.URL, err = d.ReadString(); err != nil {
			return nil, err
		}
	case NavGo:
		if req.Steps, err = d.ReadSvarint(); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidNavOp
	}
	return req, nil
}
