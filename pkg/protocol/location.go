package protocol

import "github.com/navio-dev/navio/pkg/nav"

// LocationReport is a location snapshot sent by the client: either the
// answer to a push/replace request (Seq echoes the request) or an
// unsolicited popstate/hashchange report (Seq zero).
type LocationReport struct {
	Seq      uint64
	Location nav.Location
}

// EncodeLocation encodes a location report payload.
func EncodeLocation(r *LocationReport) []byte {
	e := NewEncoder()
	e.WriteUvarint(r.Seq)
	for _, field := range locationFields(&r.Location) {
		e.WriteString(*field)
	}
	return e.Bytes()
}

// DecodeLocation decodes a location report payload.
func DecodeLocation(payload []byte) (*LocationReport, error) {
	d := NewDecoder(payload)

	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	r := &LocationReport{Seq: seq}

	for _, field := range locationFields(&r.Location) {
		if *field, err = d.ReadString(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// locationFields returns pointers to the snapshot fields in wire order.
// Keeping encode and decode on one list keeps them in sync.
func locationFields(loc *nav.Location) []*string {
	return []*string{
		&loc.Href,
		&loc.Host,
		&loc.Hostname,
		&loc.Protocol,
		&loc.Origin,
		&loc.Port,
		&loc.Pathname,
		&loc.Search,
		&loc.Hash,
		&loc.Username,
		&loc.Password,
	}
}
