package syncer

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"
)

// SyncLock provides non-blocking in-process lock semantics using atomic
// operations. Overlapping sync passes are rejected rather than queued: a
// second pass started while one runs would recompute the same diff.
type SyncLock struct {
	state atomic.Int32 // 0 = unlocked, 1 = locked
}

// TryAcquire attempts to acquire the lock without blocking.
func (l *SyncLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release releases the lock. Must only be called by the caller that
// successfully acquired it.
func (l *SyncLock) Release() {
	l.state.Store(0)
}

// FileLock guards the standalone sync job against concurrent runs from
// other processes. Reconciliation is idempotent, so this is not needed for
// correctness; it avoids two jobs paying for the same embedding calls.
type FileLock struct {
	flock *flock.Flock
}

// NewFileLock creates a lock file next to the embedding store artifact.
func NewFileLock(storePath string) *FileLock {
	lockPath := filepath.Join(filepath.Dir(storePath), ".sync.lock")
	return &FileLock{flock: flock.New(lockPath)}
}

// TryLock attempts to acquire the lock without blocking. Returns false if
// another process holds it.
func (l *FileLock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.flock.Path()), 0755); err != nil {
		return false, fmt.Errorf("create lock directory: %w", err)
	}
	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire sync lock: %w", err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (l *FileLock) Unlock() error {
	return l.flock.Unlock()
}
