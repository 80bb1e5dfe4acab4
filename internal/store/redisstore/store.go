// Package redisstore provides a Redis-backed preference store, for deployments
// where several API instances share one user's state.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/lectoraapp/lectora/internal/store"
)

const defaultNamespace = "lectora:"

// Store implements store.KV on Redis strings.
type Store struct {
	client    *redis.Client
	namespace string
	logger    *slog.Logger
}

var _ store.KV = (*Store)(nil)

// Open connects to the Redis server at url (redis://host:port/db) and checks it.
func Open(ctx context.Context, url string, logger *slog.Logger) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	s := New(redis.NewClient(opts), logger)
	if err := s.Ping(ctx); err != nil {
		s.client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if logger != nil {
		logger.Info("Redis preference store connected", "addr", opts.Addr, "db", opts.DB)
	}
	return s, nil
}

// New wraps an existing client.
func New(client *redis.Client, logger *slog.Logger) *Store {
	return &Store{client: client, namespace: defaultNamespace, logger: logger}
}

func (s *Store) key(k string) string {
	return s.namespace + k
}

// Get returns the value under key, or store.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

// Set stores value under key with no expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}
