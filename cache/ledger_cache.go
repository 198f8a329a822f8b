package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/fyb-funds/fund-service/models"
	"github.com/redis/go-redis/v9"
)

// TTL is short because week addressing is relative to the clock: a cached
// ledger goes stale at the next Sunday rollover regardless of writes.
const ledgerTTL = 60 * time.Second

// LedgerCache caches built weekly audit logs in Redis. A nil *LedgerCache is
// valid and disables caching, so callers never need to branch on whether
// Redis is configured.
type LedgerCache struct {
	client *redis.Client
}

// NewLedgerCache wraps an existing Redis client.
func NewLedgerCache(client *redis.Client) *LedgerCache {
	return &LedgerCache{client: client}
}

// Connect dials Redis and verifies the connection with a ping.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func ledgerKey(weeks int) string {
	return fmt.Sprintf("ledger:weeks:%d", weeks)
}

// Get returns the cached ledger for the given week count, or nil on miss.
// Cache errors are logged and treated as misses.
func (c *LedgerCache) Get(ctx context.Context, weeks int) []models.WeeklyAuditLog {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := c.client.Get(ctx, ledgerKey(weeks)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("Ledger cache read failed", "weeks", weeks, "error", err)
		}
		return nil
	}
	var logs []models.WeeklyAuditLog
	if err := json.Unmarshal(data, &logs); err != nil {
		slog.Warn("Ledger cache payload corrupt, ignoring", "weeks", weeks, "error", err)
		return nil
	}
	return logs
}

// Set stores a built ledger. Failures are logged, never returned; the ledger
// was already computed and the caller should not fail on a cache write.
func (c *LedgerCache) Set(ctx context.Context, weeks int, logs []models.WeeklyAuditLog) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(logs)
	if err != nil {
		slog.Warn("Ledger cache marshal failed", "weeks", weeks, "error", err)
		return
	}
	if err := c.client.Set(ctx, ledgerKey(weeks), data, ledgerTTL).Err(); err != nil {
		slog.Warn("Ledger cache write failed", "weeks", weeks, "error", err)
	}
}

// Invalidate drops all cached ledgers. Called after any write that changes
// what a ledger would contain: payment marks, member mutations, reorders.
func (c *LedgerCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, "ledger:weeks:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Warn("Ledger cache scan failed", "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("Ledger cache invalidation failed", "error", err)
	}
}
