package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KV exposes a Redis client as the gateway's string-keyed persistence
// medium. Session values carry no TTL: they live until an explicit clear,
// matching the durable-until-logout contract.
type KV struct {
	client *redis.Client
}

func NewKV(client *redis.Client) *KV {
	return &KV{client: client}
}

func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := k.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (k *KV) Set(ctx context.Context, key, value string) error {
	if err := k.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (k *KV) Del(ctx context.Context, keys ...string) error {
	if err := k.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Ping reports backing-store health for the readiness probe.
func (k *KV) Ping(ctx context.Context) error {
	return k.client.Ping(ctx).Err()
}
