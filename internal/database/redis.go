package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "krishi-sakhi-backend/internal/core/error"
)

// RedisClients holds one connection for publishing frames and a separate one
// for subscriptions.
type RedisClients struct {
	Publish *redis.Client
	PubSub  *redis.Client
}

func NewRedisClients(ctx context.Context, redisURL string) (*RedisClients, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	publishClient := redis.NewClient(opt)
	if err := publishClient.Ping(ctx).Err(); err != nil {
		publishClient.Close()
		return nil, fmt.Errorf("failed to ping Redis (publish): %w", errx.WrapRedis(err))
	}

	// PubSub client (separate connection)
	pubsubOpt := *opt
	pubsubClient := redis.NewClient(&pubsubOpt)
	if err := pubsubClient.Ping(ctx).Err(); err != nil {
		publishClient.Close()
		pubsubClient.Close()
		return nil, fmt.Errorf("failed to ping Redis (pubsub): %w", errx.WrapRedis(err))
	}

	return &RedisClients{
		Publish: publishClient,
		PubSub:  pubsubClient,
	}, nil
}

func (r *RedisClients) Close() {
	r.Publish.Close()
	r.PubSub.Close()
}
