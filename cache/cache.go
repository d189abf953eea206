// Package cache holds the optional redis-backed read caches.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aurelia-labs/velora-api/models"
)

// NewRedisFromEnv returns nil when REDIS_ADDR is unset; everything built
// on top of it degrades to direct database reads.
func NewRedisFromEnv() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable at %s, caching disabled: %v", addr, err)
		return nil
	}
	return client
}

// ProductCache caches product detail reads. All methods are nil-safe.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client) *ProductCache {
	if client == nil {
		return nil
	}
	return &ProductCache{client: client, ttl: 5 * time.Minute}
}

func productKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (pc *ProductCache) Get(ctx context.Context, id uint) (*models.Product, bool) {
	if pc == nil {
		return nil, false
	}
	cached, err := pc.client.Get(ctx, productKey(id)).Result()
	if err != nil {
		return nil, false
	}
	var p models.Product
	if err := json.Unmarshal([]byte(cached), &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (pc *ProductCache) Set(ctx context.Context, p *models.Product) {
	if pc == nil || p == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	pc.client.Set(ctx, productKey(p.ID), data, pc.ttl)
}

func (pc *ProductCache) Invalidate(ctx context.Context, id uint) {
	if pc == nil {
		return
	}
	pc.client.Del(ctx, productKey(id))
}
