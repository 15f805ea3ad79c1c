package protocol

import (
	"errors"
	"testing"

	"github.com/navio-dev/navio/pkg/nav"
)

func TestFrameRoundTrip(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	msg, err := EncodeFrame(FrameNav, payload)
	if err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}

	frame, err := DecodeFrame(msg)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if frame.Type != FrameNav {
		t.Errorf("Type = %v, want Nav", frame.Type)
	}
	if string(frame.Payload) != string(payload) {
		t.Errorf("Payload = %x, want %x", frame.Payload, payload)
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	tests := []struct {
		name string
		msg  []byte
		want error
	}{
		{"too short", []byte{0x01, 0x00}, ErrFrameTooShort},
		{"bad type", []byte{0x7F, 0x00, 0x00, 0x00}, ErrInvalidFrameType},
		{"truncated", []byte{0x01, 0x00, 0x00, 0x05, 0xAA}, ErrFrameTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeFrame(tt.msg); !errors.Is(err, tt.want) {
				t.Errorf("DecodeFrame error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNavRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		req  NavRequest
	}{
		{"push", NavRequest{Op: NavPush, Seq: 7, URL: "/projects?tab=open"}},
		{"replace", NavRequest{Op: NavReplace, Seq: 8, URL: "/"}},
		{"push empty url", NavRequest{Op: NavPush, Seq: 9, URL: ""}},
		{"go back", NavRequest{Op: NavGo, Steps: -2}},
		{"go forward", NavRequest{Op: NavGo, Steps: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeNav(EncodeNav(&tt.req))
			if err != nil {
				t.Fatalf("DecodeNav: %v", err)
			}
			if *got != tt.req {
				t.Errorf("got %+v, want %+v", *got, tt.req)
			}
		})
	}
}

func TestDecodeNavRejectsUnknownOp(t *testing.T) {
	e := NewEncoder()
	e.WriteByte(0x7F)
	e.WriteUvarint(0)
	if _, err := DecodeNav(e.Bytes()); !errors.Is(err, ErrInvalidNavOp) {
		t.Errorf("error = %v, want ErrInvalidNavOp", err)
	}
}

func TestLocationReportRoundTrip(t *testing.T) {
	report := LocationReport{
		Seq: 42,
		Location: nav.Location{
			Href:     "https://example.com:8443/docs?q=go#top",
			Host:     "example.com:8443",
			Hostname: "example.com",
			Protocol: "https:",
			Origin:   "https://example.com:8443",
			Port:     "8443",
			Pathname: "/docs",
			Search:   "?q=go",
			Hash:     "#top",
		},
	}

	got, err := DecodeLocation(EncodeLocation(&report))
	if err != nil {
		t.Fatalf("DecodeLocation: %v", err)
	}
	if *got != report {
		t.Errorf("got %+v, want %+v", *got, report)
	}
}

func TestHandshakeVersionMismatch(t *testing.T) {
	payload := EncodeHandshake(&Handshake{Version: 99})
	if _, err := DecodeHandshake(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Errorf("error = %v, want ErrVersionMismatch", err)
	}
}

func TestHandshakeRoundTrip(t *testing.T) {
	hs := Handshake{
		Version:  ProtocolVersion,
		Fallback: true,
		Location: nav.Location{Href: "https://example.com/", Pathname: "/"},
	}
	got, err := DecodeHandshake(EncodeHandshake(&hs))
	if err != nil {
		t.Fatalf("DecodeHandshake: %v", err)
	}
	if *got != hs {
		t.Errorf("got %+v, want %+v", *got, hs)
	}
}

func TestControlRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ctl  Control
	}{
		{"ping", Control{Type: ControlPing, Timestamp: 1702000000000}},
		{"close", Control{Type: ControlClose, Reason: CloseServerShutdown, Message: "bye"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeControl(EncodeControl(&tt.ctl))
			if err != nil {
				t.Fatalf("DecodeControl: %v", err)
			}
			if *got != tt.ctl {
				t.Errorf("got %+v, want %+v", *got, tt.ctl)
			}
		})
	}
}

func TestDecoderStringLimit(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxStringLen + 1)
	d := NewDecoder(e.Bytes())
	if _, err := d.ReadString(); !errors.Is(err, ErrStringTooLong) {
		t.Errorf("error = %v, want ErrStringTooLong", err)
	}
}

func TestSvarintNegativeValues(t *testing.T) {
	for _, v := range []int64{0, -1, 1, -64, 63, -1 << 40} {
		e := NewEncoder()
		e.WriteSvarint(v)
		got, err := NewDecoder(e.Bytes()).ReadSvarint()
		if err != nil {
			t.Fatalf("ReadSvarint(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("svarint round trip = %d, want %d", got, v)
		}
	}
}
