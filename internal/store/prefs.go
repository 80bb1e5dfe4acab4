package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Prefs gives typed JSON access to a KV.
type Prefs struct {
	kv     KV
	logger *slog.Logger
}

// NewPrefs wraps kv. A nil logger discards read warnings.
func NewPrefs(kv KV, logger *slog.Logger) *Prefs {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Prefs{kv: kv, logger: logger}
}

// Load decodes key into a T, returning fallback when the key is missing,
// unreadable, or holds invalid JSON.
func Load[T any](ctx context.Context, p *Prefs, key string, fallback T) T {
	v, ok := Lookup[T](ctx, p, key)
	if !ok {
		return fallback
	}
	return v
}

// Lookup is Load without a fallback; ok is false when nothing usable is stored.
func Lookup[T any](ctx context.Context, p *Prefs, key string) (value T, ok bool) {
	raw, err := p.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.logger.Warn("preference read failed", "key", key, "error", err)
		}
		return value, false
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		p.logger.Warn("preference value corrupt, ignoring", "key", key, "error", err)
		var zero T
		return zero, false
	}
	return value, true
}

// Save encodes v as JSON under key.
func (p *Prefs) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := p.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (p *Prefs) Remove(ctx context.Context, key string) error {
	if err := p.kv.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Ping checks the backend when it supports it.
func (p *Prefs) Ping(ctx context.Context) error {
	if pinger, ok := p.kv.(Pinger); ok {
		return pinger.Ping(ctx)
	}
	_, err := p.kv.Get(ctx, KeyUserPrefs)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
