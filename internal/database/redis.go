package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pville/moodlog/internal/config"
)

// NewRedis connects to the Redis instance holding session data, verifying
// reachability with a ping before handing the client out.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}
