// Package cache provides a typed key/value cache with per-key single-flight population.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Error describes a failed cache operation.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Cache stores JSON-encoded values in a Store.
//
// Concurrent GetOrCreate calls for the same key within one process share a single
// factory invocation. The shared invocation runs with the context of the caller that
// started it.
type Cache struct {
	store Store
	ttl   time.Duration
	group singleflight.Group
}

// New returns a Cache whose entries expire after ttl (0 = never).
func New(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

// TTL returns the default entry lifetime.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get decodes the value stored under key.
func Get[T any](ctx context.Context, c *Cache, key string) (T, bool, error) {
	var out T
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return out, false, &Error{Op: "get", Key: key, Err: err}
	}
	if !ok {
		return out, false, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, &Error{Op: "decode", Key: key, Err: err}
	}
	return out, true, nil
}

// Set stores value under key with the cache's default lifetime.
func Set[T any](ctx context.Context, c *Cache, key string, value T) error {
	return SetFor(ctx, c, key, value, c.ttl)
}

// SetFor stores value under key with an explicit lifetime (0 = never expires).
func SetFor[T any](ctx context.Context, c *Cache, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return &Error{Op: "encode", Key: key, Err: err}
	}
	if err := c.store.Set(ctx, key, raw, ttl); err != nil {
		return &Error{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
func (c *Cache) Remove(ctx context.Context, key string) error {
	if err := c.store.Remove(ctx, key); err != nil {
		return &Error{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// GetOrCreate returns the cached value for key, calling factory on a miss and storing its
// result. Factory errors are returned as-is and nothing is stored.
func GetOrCreate[T any](ctx context.Context, c *Cache, key string, factory func(context.Context) (T, error)) (T, error) {
	v, _, err := Fetch(ctx, c, key, factory)
	return v, err
}

// Fetch is GetOrCreate that also reports whether this call ran factory and stored its result.
// Callers that joined another caller's population, or found the value cached, get false.
func Fetch[T any](ctx context.Context, c *Cache, key string, factory func(context.Context) (T, error)) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	if v, ok, err := Get[T](ctx, c, key); err != nil {
		return zero, false, err
	} else if ok {
		return v, false, nil
	}

	for {
		res, err := flight(ctx, c, key, factory)
		if err != nil && !res.led && isContextErr(err) && ctx.Err() == nil {
			// the flight we joined was cancelled by the caller that started it
			continue
		}
		return res.value, res.created, err
	}
}

type flightResult[T any] struct {
	value   T
	led     bool // this call started the flight
	created bool // this call ran factory and stored the value
}

// flight joins or starts the population of key.
func flight[T any](ctx context.Context, c *Cache, key string, factory func(context.Context) (T, error)) (flightResult[T], error) {
	// written only by the singleflight goroutine, read after its result is received
	var led, created atomic.Bool
	ch := c.group.DoChan(key, func() (interface{}, error) {
		led.Store(true)
		// a flight that finished between our miss and this one already stored the value
		if v, ok, err := Get[T](ctx, c, key); err == nil && ok {
			return v, nil
		}
		v, err := factory(ctx)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := Set(ctx, c, key, v); err != nil {
			return nil, err
		}
		created.Store(true)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return flightResult[T]{}, ctx.Err()
	case res := <-ch:
		out := flightResult[T]{led: led.Load(), created: created.Load()}
		if res.Err != nil {
			return out, res.Err
		}
		v, ok := res.Val.(T)
		if !ok {
			return flightResult[T]{led: out.led}, &Error{Op: "get_or_create", Key: key, Err: fmt.Errorf("unexpected value type %T", res.Val)}
		}
		out.value = v
		return out, nil
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
