package browser

import (
	"sync"
	"time"

	"github.com/navio-dev/navio/pkg/nav"
)

// JournalEntry records one observed address-bar snapshot.
type JournalEntry struct {
	Location nav.Location
	External bool // true when the tab moved on its own (popstate)
	SeenAt   time.Time
}

// Journal is a thread-safe ring buffer of recent navigation snapshots.
// The ring overwrites its oldest entries when full, keeping a sliding
// window of where the tab has been for diagnostics and the demo CLI.
type Journal struct {
	mu       sync.RWMutex
	entries  []JournalEntry
	head     int // next write position (circular)
	count    int
	capacity int
}

// NewJournal creates a journal with the given capacity.
func NewJournal(capacity int) *Journal {
	if capacity <= 0 {
		capacity = 100
	}
	return &Journal{
		entries:  make([]JournalEntry, capacity),
		capacity: capacity,
	}
}

// Add records a snapshot.
func (j *Journal) Add(loc nav.Location, external bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries[j.head] = JournalEntry{
		Location: loc,
		External: external,
		SeenAt:   time.Now(),
	}
	j.head = (j.head + 1) % j.capacity
	if j.count < j.capacity {
		j.count++
	}
}

// Len returns the number of recorded entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.count
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(n int) []JournalEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if n > j.count {
		n = j.count
	}
	out := make([]JournalEntry, 0, n)
	for i := 1; i <= n; i++ {
		pos := (j.head - i + j.capacity) % j.capacity
		out = append(out, j.entries[pos])
	}
	return out
}
