package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "aipirat:session:"

// Redis keeps each session as a hash so sessions survive restarts and are shared
// between replicas. A positive ttl is refreshed on every write.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) key(sid string) string {
	return redisKeyPrefix + sid
}

func (r *Redis) Get(ctx context.Context, sid, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.key(sid), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, sid, key, value string) error {
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, r.key(sid), key, value)
	if r.ttl > 0 {
		pipe.Expire(ctx, r.key(sid), r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, sid, key string) error {
	if err := r.client.HDel(ctx, r.key(sid), key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (r *Redis) Destroy(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, r.key(sid)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
