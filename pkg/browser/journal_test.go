package browser

import (
	"fmt"
	"testing"

	"github.com/navio-dev/navio/pkg/nav"
)

func TestJournalRecentNewestFirst(t *testing.T) {
	j := NewJournal(10)
	for i := 0; i < 3; i++ {
		j.Add(nav.Location{Pathname: fmt.Sprintf("/p%d", i)}, false)
	}

	recent := j.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("Recent(2) returned %d entries", len(recent))
	}
	if recent[0].Location.Pathname != "/p2" || recent[1].Location.Pathname != "/p1" {
		t.Errorf("Recent order = [%s %s], want [/p2 /p1]",
			recent[0].Location.Pathname, recent[1].Location.Pathname)
	}
}

func TestJournalWrapsAround(t *testing.T) {
	j := NewJournal(3)
	for i := 0; i < 5; i++ {
		j.Add(nav.Location{Pathname: fmt.Sprintf("/p%d", i)}, false)
	}

	if got := j.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}

	recent := j.Recent(10)
	if len(recent) != 3 {
		t.Fatalf("Recent(10) returned %d entries, want 3", len(recent))
	}
	want := []string{"/p4", "/p3", "/p2"}
	for i, e := range recent {
		if e.Location.Pathname != want[i] {
			t.Errorf("recent[%d] = %s, want %s", i, e.Location.Pathname, want[i])
		}
	}
}
