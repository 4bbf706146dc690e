package client

import "sync"

// lazyValue provides thread-safe lazy initialization with retry on error.
// The init function runs at most once per attempt window: concurrent callers
// are serialized, a success is cached forever, and a failure leaves the
// value unset so a later call may retry.
type lazyValue[T any] struct {
	mu    sync.RWMutex
	value T
	set   bool
}

// Get returns the cached value, initializing it via initFn if needed.
func (l *lazyValue[T]) Get(initFn func() (T, error)) (T, error) {
	l.mu.RLock()
	if l.set {
		v := l.value
		l.mu.RUnlock()
		return v, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Re-check after acquiring the write lock.
	if l.set {
		return l.value, nil
	}

	v, err := initFn()
	if err != nil {
		var zero T
		return zero, err
	}

	l.value = v
	l.set = true
	return v, nil
}

// Value returns the cached value without triggering initialization.
func (l *lazyValue[T]) Value() (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.value, l.set
}
