package memory

import (
	"context"
	"sync"

	"fittrack/internal/domain"
)

// Locker is a process-local domain.Locker.
type Locker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

// slot is a one-token semaphore. refs counts the holder plus waiters; the
// slot leaves the map when it drops to zero.
type slot struct {
	ch   chan struct{}
	refs int
}

var _ domain.Locker = (*Locker)(nil)

// NewLocker creates a Locker.
func NewLocker() *Locker {
	return &Locker{slots: make(map[string]*slot)}
}

func (l *Locker) acquire(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *Locker) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.slots[key]
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// Lock blocks until key is free or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	s := l.acquire(key)
	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key)
		return nil, ctx.Err()
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.release(key)
		})
	}, nil
}
