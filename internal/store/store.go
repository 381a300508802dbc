// Package store provides the opaque key-value store used to track generation runs and
// persist generated headers, with in-memory, PostgreSQL and Redis backends.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a key does not exist or has expired
var ErrNotFound = errors.New("store: key not found")

// UpdateFunc receives the current value (nil and exists=false when absent) and returns the
// value to store. Returning an error aborts the update and leaves the key unchanged.
type UpdateFunc func(current []byte, exists bool) ([]byte, error)

// KV is a key-value store with get, set and read-modify-write semantics
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Update applies fn atomically with respect to other updates of the same key
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names a KV implementation
type Backend string

// Backends
const (
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
)

// Options selects and configures a backend
type Options struct {
	Backend     Backend       `json:"backend" validate:"omitempty,oneof=memory postgres redis"`
	DatabaseURL string        `json:"database_url,omitempty" validate:"required_if=Backend postgres"`
	RedisURL    string        `json:"redis_url,omitempty" validate:"required_if=Backend redis"`
	KeyPrefix   string        `json:"key_prefix,omitempty"`
	TTL         time.Duration `json:"ttl,omitempty" validate:"gte=0"`
}

// Open connects to the configured backend. An empty backend is the in-memory store.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemory(opts.TTL), nil
	case BackendPostgres:
		return NewPostgres(ctx, opts.DatabaseURL, opts.TTL)
	case BackendRedis:
		return NewRedis(ctx, opts.RedisURL, opts.KeyPrefix, opts.TTL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}

// RunKey is the key of a run record
func RunKey(runID string) string {
	return "run:" + runID
}

// HeaderKey is the key of a persisted header
func HeaderKey(jobID string) string {
	return "header:" + jobID
}

func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}
