package locks

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

type RedisProjectLocker struct {
	client rueidis.Client
	ttl    time.Duration
}

func NewRedisProjectLocker(client rueidis.Client, ttl time.Duration) *RedisProjectLocker {
	return &RedisProjectLocker{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisProjectLocker) Acquire(ctx context.Context, key string) (bool, error) {
	cmd := r.client.B().Set().Key(key).Value("1").Nx().Px(r.ttl).Build()
	result := r.client.Do(ctx, cmd)

	if err := result.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *RedisProjectLocker) Release(ctx context.Context, key string) error {
	cmd := r.client.B().Del().Key(key).Build()
	return r.client.Do(ctx, cmd).Error()
}
