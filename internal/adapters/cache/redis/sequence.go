// Package redis keeps voucher sequences in Redis.
package redis

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/voucher_ledger/internal/core/ports/repositories"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "voucher_seq:"

// raiseToFloor sets KEYS[1] to ARGV[1] unless the counter is already at or past it.
var raiseToFloor = goredis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
local floor = tonumber(ARGV[1])
if current < floor then
	redis.call("SET", KEYS[1], ARGV[1])
	return floor
end
return current
`)

// SequenceAllocator hands out numbers with INCR, which Redis executes atomically.
type SequenceAllocator struct {
	client goredis.Cmdable
}

var _ portsrepo.SequenceAllocator = (*SequenceAllocator)(nil)

// NewSequenceAllocator wraps a connected client.
func NewSequenceAllocator(client goredis.Cmdable) *SequenceAllocator {
	return &SequenceAllocator{client: client}
}

// NextValue increments the named counter. A missing key starts at 1.
func (a *SequenceAllocator) NextValue(ctx context.Context, sequenceName string) (int64, error) {
	next, err := a.client.Incr(ctx, keyPrefix+sequenceName).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", sequenceName, err)
	}
	return next, nil
}

// EnsureAtLeast raises the named counter to floor in one atomic script run.
func (a *SequenceAllocator) EnsureAtLeast(ctx context.Context, sequenceName string, floor int64) error {
	if err := raiseToFloor.Run(ctx, a.client, []string{keyPrefix + sequenceName}, floor).Err(); err != nil {
		return fmt.Errorf("failed to raise sequence %s to %d: %w", sequenceName, floor, err)
	}
	return nil
}
