package ports

import "context"

// LoginThrottle counts failed login attempts per account key. Implementations
// expire counters on their own; callers never see attempt totals.
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
