package ledger

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *ReportCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReportCache(client, time.Minute)
}

func TestReportCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	key, err := cache.Key(ctx, "ledger:report", "general")
	if err != nil {
		t.Fatalf("key: %v", err)
	}

	if _, ok, err := cache.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected a miss, got ok=%v err=%v", ok, err)
	}

	report := Report{Title: "General Ledger", Type: TypeGeneral, Totals: OpenTotals{Debit: 10, Credit: 4, Balance: 6}}
	if err := cache.Put(ctx, key, report); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := cache.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected a hit, got ok=%v err=%v", ok, err)
	}
	if got.Title != report.Title || got.Totals != report.Totals {
		t.Fatalf("unexpected cached report: %+v", got)
	}
}

func TestReportCacheBumpChangesKeys(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	before, err := cache.Key(ctx, "ledger:report", "general")
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	if err := cache.Bump(ctx); err != nil {
		t.Fatalf("bump: %v", err)
	}
	after, err := cache.Key(ctx, "ledger:report", "general")
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	if before == after {
		t.Fatalf("bump must rotate the key, got %q twice", after)
	}
}

func TestReportCacheNilPassThrough(t *testing.T) {
	var cache *ReportCache
	ctx := context.Background()

	key, err := cache.Key(ctx, "ledger:report", "general")
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	if _, ok, err := cache.Get(ctx, key); err != nil || ok {
		t.Fatalf("nil cache must miss silently, got ok=%v err=%v", ok, err)
	}
	if err := cache.Put(ctx, key, Report{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := cache.Bump(ctx); err != nil {
		t.Fatalf("bump: %v", err)
	}
}
