package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	ioutils "github.com/handiism/songripper/internal/io"
)

// ErrLocked is returned when another songripper process holds the lock.
var ErrLocked = errors.New("another songripper process is running")

// Lock is an exclusive, non-blocking file lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// AcquireLock takes the lock at path or fails with ErrLocked.
func AcquireLock(path string) (*Lock, error) {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	l := &Lock{path: path, lock: flock.New(path)}
	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}
	return l, nil
}

// Release unlocks. The lock file is left in place.
func (l *Lock) Release() error {
	return l.lock.Unlock()
}
