package service

import (
	"context"

	"github.com/pkg/errors"
)

// ErrLockHeld is returned when another holder owns the lock.
var ErrLockHeld = errors.New("lock is held")

// Locker provides short-lived mutual exclusion keyed by string.
type Locker interface {
	// Acquire takes the lock for key or returns ErrLockHeld. The returned
	// release func is safe to call more than once.
	Acquire(ctx context.Context, key string) (release func(), err error)
}
