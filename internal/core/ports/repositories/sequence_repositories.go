package repositories

import "context"

// SequenceAllocator hands out the next value of a named counter.
// Implementations must increment atomically outside the process so that
// concurrent callers never receive the same value.
type SequenceAllocator interface {
	NextValue(ctx context.Context, sequenceName string) (int64, error)

	// EnsureAtLeast raises the counter to floor when it is lower, so the
	// next value handed out is floor+1 or higher. It never lowers a counter.
	EnsureAtLeast(ctx context.Context, sequenceName string, floor int64) error
}
