package dispatch

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/keywarden/internal/input/key"
)

// Metrics collects dispatch statistics per key chord.
type Metrics struct {
	mu sync.RWMutex

	keyMetrics map[key.Chord]*KeyMetrics

	totalDispatches uint64
	totalConsumed   uint64
	totalUnhandled  uint64
	totalDenied     uint64
}

// KeyMetrics holds dispatch counters for one chord.
type KeyMetrics struct {
	Key          key.Chord
	Dispatches   uint64
	Consumed     uint64
	Unhandled    uint64
	DeniedSkips  uint64
	LastHandler  string
	LastDispatch time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		keyMetrics: make(map[key.Chord]*KeyMetrics),
	}
}

// Record records one dispatch outcome.
func (m *Metrics) Record(o Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDenied += uint64(len(o.Denied))
	if o.Consumed {
		m.totalConsumed++
	} else {
		m.totalUnhandled++
	}

	km := m.keyMetrics[o.Key]
	if km == nil {
		km = &KeyMetrics{Key: o.Key}
		m.keyMetrics[o.Key] = km
	}

	km.Dispatches++
	km.DeniedSkips += uint64(len(o.Denied))
	km.LastDispatch = time.Now()
	if o.Consumed {
		km.Consumed++
		km.LastHandler = o.HandlerID
	} else {
		km.Unhandled++
	}
}

// KeyStats returns a copy of the counters for one chord, or nil.
func (m *Metrics) KeyStats(chord key.Chord) *KeyMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	km := m.keyMetrics[chord]
	if km == nil {
		return nil
	}
	out := *km
	return &out
}

// TopKeys returns the n most dispatched chords.
func (m *Metrics) TopKeys(n int) []*KeyMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]*KeyMetrics, 0, len(m.keyMetrics))
	for _, km := range m.keyMetrics {
		out := *km
		keys = append(keys, &out)
	}

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Dispatches > keys[j].Dispatches
	})

	if n > len(keys) {
		n = len(keys)
	}
	return keys[:n]
}

// Snapshot is a point-in-time view of global dispatch counters.
type Snapshot struct {
	TotalDispatches uint64
	TotalConsumed   uint64
	TotalUnhandled  uint64
	TotalDenied     uint64
	KeyCount        int
	Timestamp       time.Time
}

// Snapshot returns current global counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		TotalDispatches: m.totalDispatches,
		TotalConsumed:   m.totalConsumed,
		TotalUnhandled:  m.totalUnhandled,
		TotalDenied:     m.totalDenied,
		KeyCount:        len(m.keyMetrics),
		Timestamp:       time.Now(),
	}
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.keyMetrics = make(map[key.Chord]*KeyMetrics)
	m.totalDispatches = 0
	m.totalConsumed = 0
	m.totalUnhandled = 0
	m.totalDenied = 0
}
