package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dedupTTL       = 24 * time.Hour
	dedupKeyPrefix = "webhook:dedup:"
)

// DedupChecker remembers processed webhook deliveries.
// Key format: webhook:dedup:<delivery_id>
type DedupChecker struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
// Keys expire after ttl, or after a day when ttl is not positive.
func NewDedupChecker(client redis.Cmdable, ttl time.Duration) *DedupChecker {
	if ttl <= 0 {
		ttl = dedupTTL
	}
	return &DedupChecker{client: client, ttl: ttl}
}

// IsDuplicate reports whether this delivery has already been processed.
func (d *DedupChecker) IsDuplicate(ctx context.Context, deliveryID string) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKey(deliveryID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this delivery has been processed.
func (d *DedupChecker) Mark(ctx context.Context, deliveryID string) error {
	if err := d.client.Set(ctx, dedupKey(deliveryID), "1", d.ttl).Err(); err != nil {
		return fmt.Errorf("dedup mark: %w", err)
	}
	return nil
}

func dedupKey(deliveryID string) string {
	return dedupKeyPrefix + deliveryID
}
