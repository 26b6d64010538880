package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rotisserie/eris"
)

const DefaultLRUSize = 1024

// entry is a cached value with its own expiry; golang-lru has no TTL of its own.
type entry struct {
	value    []byte
	expireAt time.Time
}

// LRU is an in-process Cache bounded by entry count.
type LRU struct {
	cache *lru.Cache[string, *entry]
	now   func() time.Time
}

var _ Cache = (*LRU)(nil)

func NewLRU(size int) (*LRU, error) {
	if size <= 0 {
		size = DefaultLRUSize
	}
	c, err := lru.New[string, *entry](size)
	if err != nil {
		return nil, eris.Wrap(err, "creating lru cache")
	}
	return &LRU{cache: c, now: time.Now}, nil
}

func (l *LRU) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok := l.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expireAt.IsZero() && !l.now().Before(e.expireAt) {
		// expired, drop it so it stops taking a slot
		l.cache.Remove(key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (l *LRU) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	e := &entry{value: val}
	if ttl > 0 {
		e.expireAt = l.now().Add(ttl)
	}
	l.cache.Add(key, e)
	return nil
}

func (l *LRU) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		l.cache.Remove(k)
	}
	return nil
}

// Purge drops every entry.
func (l *LRU) Purge() { l.cache.Purge() }

// Len returns the number of entries, expired ones included until they are touched.
func (l *LRU) Len() int { return l.cache.Len() }
