package core

import (
	"sync"
	"time"
)

// IDGenerator hands out note and comment ids.
type IDGenerator interface {
	// Next returns an id never returned before by this generator.
	Next() int64
	// Observe tells the generator about an id that already exists so that
	// Next never collides with it.
	Observe(id int64)
}

// MonotonicIDs derives ids from wall-clock milliseconds but never repeats or
// goes backwards: each id is max(now, last+1).
type MonotonicIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewMonotonicIDs creates a generator driven by time.Now.
func NewMonotonicIDs() *MonotonicIDs {
	return &MonotonicIDs{now: time.Now}
}

// Next implements IDGenerator.
func (g *MonotonicIDs) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe implements IDGenerator.
func (g *MonotonicIDs) Observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id > g.last {
		g.last = id
	}
}

func observeNote(g IDGenerator, n Note) {
	g.Observe(n.ID)
	for _, c := range n.Comments {
		g.Observe(c.ID)
	}
}
