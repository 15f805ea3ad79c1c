// Package protocol implements the binary wire format spoken between a
// navio browser host and its thin JavaScript client.
//
// Every message is a frame: a 4-byte header (type, flags, big-endian
// payload length) followed by the payload. Payloads are encoded with
// varints and length-prefixed strings.
//
// Frame types:
//
//	Handshake  client → server  protocol version + starting location
//	Nav        server → client  push/replace/traverse request
//	Location   client → server  address-bar snapshot (reply or popstate)
//	Control    both directions  ping/pong/close
//
// Nav requests that expect an answer (push, replace) carry a sequence
// number; the client echoes it in the Location reply. Unsolicited
// popstate/hashchange reports use sequence zero.
package protocol
