package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
)

const productListKey = "kisanconnect:products:all"

// キャッシュに無い
var ErrMiss = errors.New("cache miss")

// NewRedisClient は接続してPingまで確認する
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisProductStore は商品一覧をJSON1件として保存する
type RedisProductStore struct {
	client *redis.Client
	ttl    time.Duration
}

// DI
func NewRedisProductStore(client *redis.Client, ttl time.Duration) *RedisProductStore {
	return &RedisProductStore{client: client, ttl: ttl}
}

func (s *RedisProductStore) GetProducts(ctx context.Context) ([]model.Product, error) {
	raw, err := s.client.Get(ctx, productListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	var products []model.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decode cached products: %w", err)
	}
	return products, nil
}

func (s *RedisProductStore) SetProducts(ctx context.Context, products []model.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, productListKey, raw, s.ttl).Err()
}

func (s *RedisProductStore) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, productListKey).Err()
}
