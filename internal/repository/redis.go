package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

// URLCacheRepository caches presigned download URLs per object key. It
// caches the file-store URL only; projected asset state is computed on
// every read and is never cached.
type URLCacheRepository interface {
	GetURL(ctx context.Context, key string) (string, error)
	SetURL(ctx context.Context, key, url string, ttl time.Duration) error
}

type urlCacheRepository struct {
	rdb *redis.Client
}

func NewURLCacheRepository(rdb *redis.Client) URLCacheRepository {
	return &urlCacheRepository{rdb: rdb}
}

func (r *urlCacheRepository) GetURL(ctx context.Context, key string) (string, error) {
	url, err := r.rdb.Get(ctx, fmt.Sprintf("files:url:%s", key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return url, nil
}

func (r *urlCacheRepository) SetURL(ctx context.Context, key, url string, ttl time.Duration) error {
	return r.rdb.Set(ctx, fmt.Sprintf("files:url:%s", key), url, ttl).Err()
}
