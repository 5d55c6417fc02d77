package quotaRepo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestTodayCountMissingKey(t *testing.T) {
	_, client := newTestClient(t)
	repo := New(client)

	count, found, err := repo.TodayCount(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected a miss for an unprimed counter")
	}
	if count != 0 {
		t.Fatalf("expected count 0, got %d", count)
	}
}

func TestPrimeAndIncrement(t *testing.T) {
	mr, client := newTestClient(t)
	repo := New(client)

	if err := repo.Prime(context.Background(), "alice", 3); err != nil {
		t.Fatalf("prime: %v", err)
	}

	count, found, err := repo.TodayCount(context.Background(), "alice")
	if err != nil || !found {
		t.Fatalf("expected primed counter, got count=%d found=%v err=%v", count, found, err)
	}
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}

	if err := repo.Increment(context.Background(), "alice"); err != nil {
		t.Fatalf("increment: %v", err)
	}

	count, _, err = repo.TodayCount(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected count 4, got %d", count)
	}

	if mr.TTL(countKey("alice")) <= 0 {
		t.Fatal("counter should carry a TTL")
	}
}

func TestTodayCountAfterExpiry(t *testing.T) {
	mr, client := newTestClient(t)
	repo := New(client)

	if err := repo.Prime(context.Background(), "alice", 5); err != nil {
		t.Fatalf("prime: %v", err)
	}

	// Simulate the key expiring at midnight right before the read; the
	// read must report a plain miss, not an error.
	mr.FastForward(25 * time.Hour)

	count, found, err := repo.TodayCount(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found || count != 0 {
		t.Fatalf("expected a miss after expiry, got count=%d found=%v", count, found)
	}
}
