// Package history provides host-side implementations of the nav.History
// capability. Memory is an in-process history stack used both as the test
// double for the bridge and as a real host for headless runs.
package history

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/navio-dev/navio/pkg/nav"
)

// Memory is an in-memory back/forward history stack that behaves like a
// browser's: pushing truncates any forward entries, traversal clamps to
// the available range, and traversal announces the landing location
// through the notification channel the way a real host announces a
// popstate.
//
// URL strings handed to PushURL/ReplaceURL are resolved against the
// current entry, which is the platform's job (a browser does the same
// before updating the address bar).
type Memory struct {
	mu      sync.Mutex
	entries []*url.URL
	pos     int
	notifs  chan struct{}
}

// NewMemory creates a memory history whose single starting entry is the
// absolute URL start, e.g. "https://example.com/".
func NewMemory(start string) (*Memory, error) {
	u, err := url.Parse(start)
	if err != nil {
		return nil, fmt.Errorf("history: invalid start URL: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("history: start URL %q is not absolute", start)
	}
	return &Memory{
		entries: []*url.URL{u},
		pos:     0,
		notifs:  make(chan struct{}, 1),
	}, nil
}

// MustMemory is NewMemory that panics on error. Intended for tests and
// fixed startup URLs.
func MustMemory(start string) *Memory {
	m, err := NewMemory(start)
	if err != nil {
		panic(err)
	}
	return m
}

// Location returns the snapshot of the current entry.
func (m *Memory) Location() nav.Location {
	m.mu.Lock()
	defer m.mu.Unlock()
	return snapshot(m.entries[m.pos])
}

// PushURL resolves ref against the current entry, pushes it as a new
// history entry (dropping any forward entries), and returns the
// resulting snapshot.
func (m *Memory) PushURL(ref string) nav.Location {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.resolve(ref)
	m.entries = append(m.entries[:m.pos+1], u)
	m.pos = len(m.entries) - 1
	return snapshot(u)
}

// ReplaceURL resolves ref against the current entry and replaces the
// current entry in place, leaving the stack size unchanged.
func (m *Memory) ReplaceURL(ref string) nav.Location {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.resolve(ref)
	m.entries[m.pos] = u
	return snapshot(u)
}

// Go traverses the stack by n entries, clamping to the available range.
// A move that lands on a different entry ticks the notification channel;
// a fully out-of-range move is a no-op, like a browser ignoring
// history.go past its stack.
func (m *Memory) Go(n int) {
	m.mu.Lock()
	target := m.pos + n
	if target < 0 {
		target = 0
	}
	if target > len(m.entries)-1 {
		target = len(m.entries) - 1
	}
	moved := target != m.pos
	m.pos = target
	m.mu.Unlock()

	if moved {
		m.tick()
	}
}

// Notifications returns the native event stream: one tick per traversal
// or Fire call. The channel is buffered; ticks arriving while nobody
// listens coalesce rather than block the host.
func (m *Memory) Notifications() <-chan struct{} {
	return m.notifs
}

// Fire ticks the notification channel without moving the stack,
// simulating an address-bar change the stack model does not track
// (a user editing the fragment by hand).
func (m *Memory) Fire() {
	m.tick()
}

// Len returns the number of entries in the stack.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Pos returns the current position in the stack, 0-based.
func (m *Memory) Pos() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos
}

func (m *Memory) tick() {
	select {
	case m.notifs <- struct{}{}:
	default:
	}
}

// resolve interprets ref relative to the current entry. An unparsable
// ref leaves the URL at the current entry, mirroring a browser that
// refuses a malformed pushState target; callers never see an error
// because the capability has no error path.
func (m *Memory) resolve(ref string) *url.URL {
	u, err := m.entries[m.pos].Parse(ref)
	if err != nil {
		return m.entries[m.pos]
	}
	return u
}

// snapshot materializes a Location from a resolved URL.
func snapshot(u *url.URL) nav.Location {
	loc := nav.Location{
		Href:     u.String(),
		Host:     u.Host,
		Hostname: u.Hostname(),
		Port:     u.Port(),
		Pathname: u.Path,
	}
	if u.Scheme != "" {
		loc.Protocol = u.Scheme + ":"
		loc.Origin = u.Scheme + "://" + u.Host
	}
	if loc.Pathname == "" {
		loc.Pathname = "/"
	}
	if u.RawQuery != "" {
		loc.Search = "?" + u.RawQuery
	}
	if u.Fragment != "" {
		loc.Hash = "#" + u.Fragment
	}
	if u.User != nil {
		loc.Username = u.User.Username()
		loc.Password, _ = u.User.Password()
	}
	return loc
}
