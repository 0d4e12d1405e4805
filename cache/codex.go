package cache

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/gogpu/rgraph"
)

// ErrNilBuild is returned when Resolve misses and no build function is given.
var ErrNilBuild = errors.New("cache: build func is nil")

// TypeMismatchError means an identity is already cached with another type.
type TypeMismatchError struct {
	Key      string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cache: type mismatch for %q: want=%s got=%s", e.Key, e.Expected, e.Actual)
}

// Codex is an identity-keyed store of shared resources.
//
// Hits take a read-locked fast path. Misses are deduplicated per identity
// with a singleflight group, so construction of different identities runs
// in parallel while concurrent requests for one identity share one build.
type Codex struct {
	mu      sync.RWMutex
	entries map[string]any
	flight  singleflight.Group

	// Statistics (atomic for lock-free reads)
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates an empty codex.
func New() *Codex {
	return &Codex{
		entries: make(map[string]any),
	}
}

// Key builds a resource identity from a kind and construction parameters.
// Parameters are formatted with %v and joined with '#'. A '#' or '%' inside
// a parameter is percent-encoded, so distinct parameter lists never share a
// key:
//
//	Key("sampler", "default")      // "sampler#default"
//	Key("rasterizer", "cull=none") // "rasterizer#cull=none"
//	Key("texture", "a#1", 0)       // "texture#a%231#0"
func Key(kind string, params ...any) string {
	if len(params) == 0 {
		return kind
	}
	var sb strings.Builder
	sb.WriteString(kind)
	for _, p := range params {
		sb.WriteByte('#')
		keyEscaper.WriteString(&sb, fmt.Sprint(p))
	}
	return sb.String()
}

var keyEscaper = strings.NewReplacer("%", "%25", "#", "%23")

// Resolve returns the instance cached under key, or constructs it with build,
// stores it and returns it.
//
// Construction errors are returned wrapped and nothing is stored, so a later
// Resolve with the same key retries construction. An instance cached under
// key with a type other than T yields a *TypeMismatchError.
func Resolve[T any](c *Codex, key string, build func() (T, error)) (T, error) {
	var zero T

	// Fast path: read lock
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return typed[T](key, v)
	}

	if build == nil {
		return zero, fmt.Errorf("cache: resolve %q: %w", key, ErrNilBuild)
	}

	// Slow path: one build per key, re-checked inside the flight
	v, err, _ := c.flight.Do(key, func() (any, error) {
		c.mu.RLock()
		v, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			c.hits.Add(1)
			return v, nil
		}

		out, err := build()
		if err != nil {
			rgraph.Logger().Warn("cache: resolve failed", "key", key, "err", err)
			return nil, fmt.Errorf("cache: build %q: %w", key, err)
		}

		c.mu.Lock()
		c.entries[key] = out
		c.mu.Unlock()
		c.misses.Add(1)
		rgraph.Logger().Debug("cache: resolved", "key", key, "type", fmt.Sprintf("%T", out))
		return out, nil
	})
	if err != nil {
		return zero, err
	}
	return typed[T](key, v)
}

func typed[T any](key string, v any) (T, error) {
	out, ok := v.(T)
	if !ok {
		var zero T
		return zero, &TypeMismatchError{
			Key:      key,
			Expected: reflect.TypeOf((*T)(nil)).Elem().String(),
			Actual:   fmt.Sprintf("%T", v),
		}
	}
	return out, nil
}

// Lookup returns the instance cached under key without constructing it.
func (c *Codex) Lookup(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Len returns the number of cached instances.
func (c *Codex) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the cached identities in sorted order.
func (c *Codex) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	c.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Stats returns the number of cache hits and misses.
// The two values are read independently and may be momentarily inconsistent.
func (c *Codex) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// HitRate returns the hit rate in [0, 1], or 0 when nothing was resolved.
func (c *Codex) HitRate() float64 {
	hits, misses := c.Stats()
	total := hits + misses
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total)
}

// destroyer is implemented by resources that release GPU memory.
type destroyer interface {
	Destroy()
}

// DestroyAll destroys every cached instance that has a Destroy method and
// empties the codex. Call it once at teardown, after the last frame.
func (c *Codex) DestroyAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range c.entries {
		if d, ok := v.(destroyer); ok {
			d.Destroy()
		}
	}
	c.entries = make(map[string]any)
	c.hits.Store(0)
	c.misses.Store(0)
}
