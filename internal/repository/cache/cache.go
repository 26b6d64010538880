// Package cache provides read-through caching for job-role lookups.
// Two drivers back it: an in-process LRU for single instances and redis for shared deployments.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns ok=false on a miss; err is reserved for driver failures.
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Config selects and sizes the driver.
type Config struct {
	Driver string        `mapstructure:"driver" validate:"oneof=lru redis none"`
	Size   int           `mapstructure:"size" validate:"gte=0"`
	TTL    time.Duration `mapstructure:"ttl"`
	Prefix string        `mapstructure:"prefix"`
}
