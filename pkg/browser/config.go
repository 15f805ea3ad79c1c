package browser

import (
	"errors"
	"net/http"
	"time"
)

// Config holds configuration for a browser Host.
type Config struct {
	// Timeouts

	// ReadTimeout is the maximum time to wait for a message from the
	// client tab. Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// ReplyTimeout is how long a push/replace waits for the client's
	// location reply before falling back to the last known snapshot.
	// Default: 5 seconds.
	ReplyTimeout time.Duration

	// HeartbeatInterval is the time between heartbeat pings.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// Limits

	// MaxMessageSize is the maximum size of an incoming WebSocket
	// message. Default: 64KB.
	MaxMessageSize int64

	// SendQueue is the size of the outgoing frame buffer. Default: 64.
	SendQueue int

	// JournalSize is the number of recent snapshots kept in the
	// navigation journal. Default: 100.
	JournalSize int

	// CheckOrigin validates the Origin header on upgrade. Nil accepts
	// same-origin requests only (the gorilla default).
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReplyTimeout:      5 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    64 * 1024,
		SendQueue:         64,
		JournalSize:       100,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.ReadTimeout <= 0 {
		return errors.New("browser: ReadTimeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return errors.New("browser: WriteTimeout must be positive")
	}
	if c.ReplyTimeout <= 0 {
		return errors.New("browser: ReplyTimeout must be positive")
	}
	if c.HeartbeatInterval <= 0 {
		return errors.New("browser: HeartbeatInterval must be positive")
	}
	if c.MaxMessageSize <= 0 {
		return errors.New("browser: MaxMessageSize must be positive")
	}
	if c.SendQueue <= 0 {
		return errors.New("browser: SendQueue must be positive")
	}
	if c.JournalSize <= 0 {
		return errors.New("browser: JournalSize must be positive")
	}
	return nil
}
