package cache

import (
	"context"
	"reflect"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	memoryDefTTL        = 60 * time.Minute
	memoryCleanUPPeriod = 1 * time.Minute
)

type memory struct {
	c *cache.Cache
}

// NewMemoryCache returns a basic in memory cache
func NewMemoryCache() Cache {
	return &memory{
		c: cache.New(memoryDefTTL, memoryCleanUPPeriod),
	}
}

// Set sets an item in the in memory cache. A ttl of ForEver never expires.
func (m *memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if ttl == ForEver {
		ttl = cache.NoExpiration
	}
	m.c.Set(key, value, ttl)
	return nil
}

// Get retrieves a cache entry and a boolean telling it is found or not
// value must be a pointer to a type the cached value is assignable to.
// Pointers are dereferenced so that a *T entry can be read into a *T target.
func (m *memory) Get(_ context.Context, key string, value any) bool {
	mVal, exists := m.c.Get(key)
	if !exists {
		return false
	}
	target := reflect.ValueOf(value)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return false
	}
	src := reflect.ValueOf(mVal)
	if !src.IsValid() {
		return false
	}
	dst := target.Elem()
	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return true
	}
	if src.Kind() == reflect.Pointer && !src.IsNil() && src.Elem().Type().AssignableTo(dst.Type()) {
		dst.Set(src.Elem())
		return true
	}
	return false
}

// Exists returns true if the key exists in the cache
func (m *memory) Exists(_ context.Context, key string) bool {
	_, found := m.c.Get(key)
	return found
}

// Delete removes and entry from the cache
func (m *memory) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

// Ping never fails, the memory cache lives in process
func (m *memory) Ping(context.Context) error {
	return nil
}
