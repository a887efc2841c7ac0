package quota

import (
	"sync"

	"github.com/dmitrijs2005/filekeeper/internal/common"
)

// Tracker is a running usage counter seeded from a snapshot. Files of one
// batch share a tracker so each is checked against the earlier successes.
type Tracker struct {
	mu    sync.Mutex
	usage Usage
}

func NewTracker(u Usage) *Tracker {
	return &Tracker{usage: u}
}

// Admit returns common.ErrQuotaExceeded when the store is already full or
// size bytes would take it past the ceiling.
func (t *Tracker) Admit(size int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.usage.IsFull() || t.usage.UsedBytes+size > t.usage.MaxBytes {
		return common.ErrQuotaExceeded
	}
	return nil
}

// Commit records size bytes as written.
func (t *Tracker) Commit(size int64) {
	t.mu.Lock()
	t.usage.UsedBytes += size
	t.mu.Unlock()
}

func (t *Tracker) Usage() Usage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.usage
}
