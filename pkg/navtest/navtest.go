// Package navtest provides test doubles for code built on the navigation
// bridge: a call-recording History wrapper and a subscriber that collects
// delivered locations.
package navtest

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/navio-dev/navio/pkg/nav"
)

// Recorder wraps a History and records every capability call, so tests
// can assert exact call sequences against a fake platform.
//
// Example:
//
//	rec := navtest.NewRecorder(history.MustMemory("https://example.com/"))
//	bridge := nav.NewBridge(rec)
//	bridge.Reconcile([]nav.Command{nav.NewURL("/a")}, nil)
//	// rec.Calls() == []string{`push "/a"`}
type Recorder struct {
	nav.History

	mu    sync.Mutex
	calls []string
}

// NewRecorder wraps h in a Recorder.
func NewRecorder(h nav.History) *Recorder {
	return &Recorder{History: h}
}

func (r *Recorder) record(call string) {
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
}

// Calls returns a copy of the recorded call sequence.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// PushURL records the call and delegates.
func (r *Recorder) PushURL(url string) nav.Location {
	r.record(fmt.Sprintf("push %q", url))
	return r.History.PushURL(url)
}

// ReplaceURL records the call and delegates.
func (r *Recorder) ReplaceURL(url string) nav.Location {
	r.record(fmt.Sprintf("replace %q", url))
	return r.History.ReplaceURL(url)
}

// Go records the call and delegates.
func (r *Recorder) Go(n int) {
	r.record(fmt.Sprintf("go %d", n))
	r.History.Go(n)
}

// Collector is a subscriber that records every delivered Location.
type Collector struct {
	mu   sync.Mutex
	locs []nav.Location
	ch   chan nav.Location
}

// NewCollector creates a collector.
func NewCollector() *Collector {
	return &Collector{ch: make(chan nav.Location, 16)}
}

// Subscribe is the nav.Subscriber to register with a bridge.
func (c *Collector) Subscribe(loc nav.Location) {
	c.mu.Lock()
	c.locs = append(c.locs, loc)
	c.mu.Unlock()
	c.ch <- loc
}

// Count returns the number of locations delivered so far.
func (c *Collector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.locs)
}

// Wait blocks until the next Location is delivered or two seconds pass.
func (c *Collector) Wait(t *testing.T) nav.Location {
	t.Helper()
	select {
	case loc := <-c.ch:
		return loc
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return nav.Location{}
	}
}
