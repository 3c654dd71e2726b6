package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheVersionKey = "ledger:report:version"
	cacheBumpChan   = "ledger.bump"
)

// ReportCache stores assembled reports in Redis under a global version so a
// single bump invalidates everything after postings change the ledger. A
// nil cache (or nil client) degrades to pass-through.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache wraps a Redis client.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

func (c *ReportCache) enabled() bool {
	return c != nil && c.client != nil
}

// version reads the current cache generation, initialising it when missing.
func (c *ReportCache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if err == redis.Nil {
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// Key composes a versioned cache key from the report fingerprint parts.
func (c *ReportCache) Key(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(parts, ":")
	if !c.enabled() {
		return joined, nil
	}
	ver, err := c.version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// Get loads a cached report. The second return reports a hit.
func (c *ReportCache) Get(ctx context.Context, key string) (Report, bool, error) {
	if !c.enabled() {
		return Report{}, false, nil
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return Report{}, false, nil
	}
	if err != nil {
		return Report{}, false, err
	}
	var report Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return Report{}, false, err
	}
	return report, true, nil
}

// Put stores a report under the key with the configured TTL.
func (c *ReportCache) Put(ctx context.Context, key string, report Report) error {
	if !c.enabled() {
		return nil
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Bump invalidates all cached reports by advancing the version and
// publishing the new generation for other nodes.
func (c *ReportCache) Bump(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	ver, err := c.client.Incr(ctx, cacheVersionKey).Result()
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, cacheBumpChan, strconv.FormatInt(ver, 10)).Err()
}
