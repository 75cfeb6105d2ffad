package history

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another process holds the write lock.
var ErrLocked = errors.New("another reelmatch instance is writing history")

// Lock guards history writes across processes. The lock file sits next to
// the database.
type Lock struct {
	fl *flock.Flock
}

// NewLock creates a lock for the database at dbPath.
func NewLock(dbPath string) *Lock {
	return &Lock{fl: flock.New(dbPath + ".lock")}
}

// Acquire takes the lock, failing immediately when it is held elsewhere.
func (l *Lock) Acquire() error {
	ok, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("acquire history lock: %w", err)
	}
	if !ok {
		return ErrLocked
	}
	return nil
}

// Release gives the lock back.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}
