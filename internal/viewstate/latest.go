package viewstate

import (
	"context"
	"errors"
	"sync"
)

// Latest applies results by request recency rather than arrival order. Each
// Do call cancels the request it supersedes, and a result older than the last
// applied one is dropped.
type Latest[T any] struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
	cancel  context.CancelFunc
}

// Do runs fetch and hands its outcome to apply unless a newer request has
// already been applied or has superseded this one. It reports whether apply ran.
func (l *Latest[T]) Do(ctx context.Context, fetch func(context.Context) (T, error), apply func(T, error)) bool {
	l.mu.Lock()
	l.issued++
	seq := l.issued
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()
	defer cancel()

	v, err := fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq <= l.applied {
		return false
	}
	if seq < l.issued && errors.Is(err, context.Canceled) {
		return false
	}
	l.applied = seq
	apply(v, err)
	return true
}
