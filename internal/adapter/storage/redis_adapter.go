package storage

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const stockKeyPrefix = "stock:"

// RedisAdapter stores carts as plain string values and caches stock under
// stock:<product id>. Values never expire.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisAdapter) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisAdapter) GetStock(ctx context.Context, productID int) (int, bool, error) {
	amount, err := r.client.Get(ctx, stockKey(productID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return amount, true, nil
}

func (r *RedisAdapter) SetStock(ctx context.Context, productID int, amount int) error {
	return r.client.Set(ctx, stockKey(productID), amount, 0).Err()
}

// Ping reports whether redis answers.
func (r *RedisAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func stockKey(productID int) string {
	return stockKeyPrefix + strconv.Itoa(productID)
}
