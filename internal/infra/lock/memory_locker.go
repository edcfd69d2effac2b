package lock

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/service"
)

type heldLock struct {
	token     uint64
	expiresAt time.Time
}

type memoryLocker struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	held      map[string]heldLock
	lastToken uint64
}

// NewMemoryLocker creates a process-local Locker. Held locks expire after ttl.
func NewMemoryLocker(ttl time.Duration) service.Locker {
	return newMemoryLocker(ttl, time.Now)
}

func newMemoryLocker(ttl time.Duration, now func() time.Time) *memoryLocker {
	return &memoryLocker{
		ttl:  ttl,
		now:  now,
		held: make(map[string]heldLock),
	}
}

func (l *memoryLocker) Acquire(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if current, ok := l.held[key]; ok && now.Before(current.expiresAt) {
		return nil, service.ErrLockHeld
	}

	// Tokens are never reused, so a holder whose lock expired cannot match a later one.
	l.lastToken++
	token := l.lastToken
	l.held[key] = heldLock{token: token, expiresAt: now.Add(l.ttl)}

	var once sync.Once

	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()

			if current, ok := l.held[key]; ok && current.token == token {
				delete(l.held, key)
			}
		})
	}, nil
}
