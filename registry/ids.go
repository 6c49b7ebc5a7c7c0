package registry

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator hands out station identifiers.
type IDGenerator interface {
	NextID() string
}

// TimestampIDs issues millisecond Unix timestamps as identifiers. Values are
// strictly increasing even when several are drawn within one millisecond.
type TimestampIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewTimestampIDs() *TimestampIDs {
	return &TimestampIDs{now: time.Now}
}

// NewTimestampIDsWithClock is used by tests to pin the clock.
func NewTimestampIDsWithClock(now func() time.Time) *TimestampIDs {
	return &TimestampIDs{now: now}
}

func (g *TimestampIDs) NextID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}
