package service

import (
	"context"
	"time"
)

// Delayer decides how long a completed operation waits before its result is
// handed back to the caller.
type Delayer interface {
	Wait(ctx context.Context) error
}

// NoDelay returns immediately.
type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context) error {
	return ctx.Err()
}

// FixedDelay waits for the same duration on every call.
type FixedDelay time.Duration

func (d FixedDelay) Wait(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(d))
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
