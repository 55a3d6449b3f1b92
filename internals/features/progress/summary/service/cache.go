package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultCacheKey = "tahfidz:progress:summary"

// Cache menyimpan snapshot ringkasan terakhir (JSON) supaya restart tidak
// mulai dari kosong. ErrCacheMiss jika belum ada.
type Cache interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, raw []byte) error
}

var ErrCacheMiss = errors.New("cache ringkasan kosong")

type RedisCache struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
}

func NewRedisCache(c *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: c, Key: DefaultCacheKey, TTL: ttl}
}

func (r *RedisCache) Load(ctx context.Context) ([]byte, error) {
	raw, err := r.Client.Get(ctx, r.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return raw, err
}

func (r *RedisCache) Save(ctx context.Context, raw []byte) error {
	return r.Client.Set(ctx, r.Key, raw, r.TTL).Err()
}
