// Package cache contiene el adaptador Redis para reportes agregados.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/tienda-pos-api/internal/application/analytics"
	"github.com/jhoicas/tienda-pos-api/pkg/config"
)

var _ analytics.ReportCache = (*RedisReportCache)(nil)

// RedisReportCache cachea reportes serializados como JSON.
type RedisReportCache struct {
	client *redis.Client
}

// NewRedisReportCache conecta con Redis y verifica la conexión.
func NewRedisReportCache(cfg config.RedisConfig) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisReportCache{client: client}, nil
}

// Get deserializa el valor cacheado en dest. Devuelve false si no hay entrada.
func (c *RedisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("unmarshal cached report: %w", err)
	}
	return true, nil
}

// Set serializa el valor y lo guarda con el TTL indicado.
func (c *RedisReportCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close cierra la conexión con Redis.
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}
