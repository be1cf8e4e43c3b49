package dispatch

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/keywarden/internal/input/key"
)

// Claim records one handler's claim on a contested key.
type Claim struct {
	// ID is the claiming handler's identifier.
	ID string

	// Priority is the claiming handler's priority tier.
	Priority int
}

// Conflict records a key claimed by two or more handlers. Records are
// produced and never mutated. Equal priorities are themselves
// conflict-worthy: dispatch order is still deterministic (registration
// order breaks the tie) but the overlap is reported.
type Conflict struct {
	// Key is the contested chord.
	Key key.Chord

	// Claims lists every claimant in dispatch order. Always >= 2 entries.
	Claims []Claim

	// Time is when the conflict was recorded.
	Time time.Time
}

// String returns a log-friendly description of the conflict.
func (c Conflict) String() string {
	parts := make([]string, len(c.Claims))
	for i, cl := range c.Claims {
		parts[i] = fmt.Sprintf("%q (priority %d)", cl.ID, cl.Priority)
	}
	return fmt.Sprintf("key %s claimed by %s", c.Key, strings.Join(parts, ", "))
}

// HasEqualPriorities reports whether any two claims share a priority tier.
func (c Conflict) HasEqualPriorities() bool {
	seen := make(map[int]bool, len(c.Claims))
	for _, cl := range c.Claims {
		if seen[cl.Priority] {
			return true
		}
		seen[cl.Priority] = true
	}
	return false
}

// Detect is the pure conflict check over one binding entry. It returns
// a Conflict and true iff the entry holds two or more handlers.
// Detection never rejects a registration; its only effect is
// observability.
func Detect(chord key.Chord, handlers []Handler) (Conflict, bool) {
	if len(handlers) < 2 {
		return Conflict{}, false
	}

	claims := make([]Claim, len(handlers))
	for i, h := range handlers {
		claims[i] = Claim{ID: h.ID(), Priority: h.Priority()}
	}
	return Conflict{Key: chord, Claims: claims, Time: time.Now()}, true
}
