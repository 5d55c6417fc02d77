package redisClient

import (
	"fmt"

	"github.com/go-redis/redis"
)

// InitializeDB opens the redis connection used for daily swipe quota
// counters.
func InitializeDB(host, port string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port),
	})

	if err := client.Ping().Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return client, nil
}
