package quotaRepo

import (
	"context"
	"time"

	"github.com/go-redis/redis"
)

// IQuotaRepo tracks how many decisions a user recorded today. The counter
// lives in redis with a TTL that expires at the next local midnight; on a
// miss the caller primes it from the ledger.
type IQuotaRepo interface {
	TodayCount(ctx context.Context, userID string) (count int, found bool, err error)
	Prime(ctx context.Context, userID string, count int) error
	Increment(ctx context.Context, userID string) error
}

type QuotaRepo struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) IQuotaRepo {
	return &QuotaRepo{
		rdb: rdb,
	}
}

// TodayCount reads the counter in a single Get; the key can expire at
// midnight between any two commands, so a miss is detected from the Get
// itself rather than a separate Exists check.
func (q *QuotaRepo) TodayCount(_ context.Context, userID string) (int, bool, error) {
	count, err := q.rdb.Get(countKey(userID)).Int()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

func (q *QuotaRepo) Prime(_ context.Context, userID string, count int) error {
	return q.rdb.Set(countKey(userID), count, ttlUntilMidnight()).Err()
}

func (q *QuotaRepo) Increment(_ context.Context, userID string) error {
	key := countKey(userID)
	if err := q.rdb.Incr(key).Err(); err != nil {
		return err
	}
	return q.rdb.Expire(key, ttlUntilMidnight()).Err()
}

func countKey(userID string) string {
	return "user:" + userID + ":swipes:count"
}

func ttlUntilMidnight() time.Duration {
	now := time.Now()
	startOfTomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return startOfTomorrow.Sub(now)
}
