// Package storage holds the durable key-value store the session is
// persisted to. It stands in for browser local storage: a handful of
// string keys that survive restarts.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/epeers/fundsight/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Keys written by the session store
const (
	KeyToken = "token"
	KeyUser  = "user"
)

var ErrNotFound = errors.New("key not found")

// Storage is a small string key-value store
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Open builds the Storage selected by cfg.StorageDriver
func Open(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return NewMemoryStorage(), nil
	case config.StorageFile, "":
		return NewFileStorage(cfg.StoragePath), nil
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return NewRedisStorage(client, ""), nil
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.PGURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		s := NewPostgresStorage(pool)
		s.ownsPool = true
		if err := s.EnsureSchema(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
