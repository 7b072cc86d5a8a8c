package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sternrassler/statecache/pkg/config"
	"github.com/Sternrassler/statecache/pkg/logging"
)

// Facade is the fail-soft client. It runs each operation through a Store,
// logs and counts any failure, and hands the caller a safe default:
// absent for reads, nothing for writes, 0 for Increment, false for
// boolean checks and an empty map for hash snapshots.
//
// A caller cannot tell an absent key from an unreachable store through
// the Facade. Use Ping, or the Store returned by Store(), when that
// difference matters.
type Facade struct {
	store *Store
}

// New wraps an existing client. The caller keeps ownership of client.
func New(client redis.UniversalClient, opts ...Option) *Facade {
	return &Facade{store: NewStore(client, opts...)}
}

// Connect builds a client from cfg and returns a Facade that owns it.
// Only configuration errors are returned; the connection is dialed by the
// first operation.
func Connect(cfg config.Config, opts ...Option) (*Facade, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	redisOpts, err := cfg.RedisOptions()
	if err != nil {
		return nil, err
	}

	valueCodec, err := cfg.ValueCodec()
	if err != nil {
		return nil, fmt.Errorf("value codec: %w", err)
	}

	base := []Option{WithCodec(valueCodec), WithKeyPrefix(cfg.KeyPrefix)}
	s := NewStore(redis.NewClient(redisOpts), append(base, opts...)...)
	s.owned = true

	s.logger.Info().
		Str("endpoint", cfg.Redacted()).
		Str("codec", valueCodec.Name()).
		Str("key_prefix", s.prefix).
		Msg("cache facade configured")

	return &Facade{store: s}, nil
}

// Store exposes the error-visible API over the same connection.
func (f *Facade) Store() *Store { return f.store }

// HealthChecker returns a health checker over the same connection.
func (f *Facade) HealthChecker() *HealthChecker { return NewHealthChecker(f.store) }

// Close releases the connection if the Facade created it.
func (f *Facade) Close() error {
	err := f.store.Close()
	if err == nil && f.store.owned {
		f.store.logger.Info().Msg("cache facade closed")
	}
	return err
}

// Get returns the decoded value under key and true, or nil and false when
// the key is absent or the store failed.
func (f *Facade) Get(ctx context.Context, key string) (any, bool) {
	r := f.store.Get(ctx, key)
	f.absorb(r.Err)
	return r.Get()
}

// GetInto decodes the value under key into dst and reports whether it did.
// dst is left untouched on a miss or failure.
func (f *Facade) GetInto(ctx context.Context, key string, dst any) bool {
	ok, err := f.store.GetInto(ctx, key, dst)
	f.absorb(err)
	return ok
}

// GetAs is Facade.Get decoding into T.
func GetAs[T any](ctx context.Context, f *Facade, key string) (T, bool) {
	r := Lookup[T](ctx, f.store, key)
	f.absorb(r.Err)
	return r.Get()
}

// Set stores value under key, expiring after ttl when ttl is positive.
func (f *Facade) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	f.absorb(f.store.Set(ctx, key, value, ttl))
}

// Delete removes key.
func (f *Facade) Delete(ctx context.Context, key string) {
	f.absorb(f.store.Delete(ctx, key))
}

// Exists reports whether key is present.
func (f *Facade) Exists(ctx context.Context, key string) bool {
	ok, err := f.store.Exists(ctx, key)
	f.absorb(err)
	return ok
}

// Expire sets the expiry of an existing key. It reports false when the key
// is absent, ttl is not positive, or the store failed.
func (f *Facade) Expire(ctx context.Context, key string, ttl time.Duration) bool {
	ok, err := f.store.Expire(ctx, key, ttl)
	f.absorb(err)
	return ok
}

// TTL returns the remaining time to live of key, NoExpiry for persistent
// keys, and false when the key is absent or the store failed.
func (f *Facade) TTL(ctx context.Context, key string) (time.Duration, bool) {
	r := f.store.TTL(ctx, key)
	f.absorb(r.Err)
	return r.Get()
}

// Increment atomically adds amount to the counter at key and returns the
// new value, or 0 on failure.
func (f *Facade) Increment(ctx context.Context, key string, amount int64) int64 {
	n, err := f.store.Increment(ctx, key, amount)
	f.absorb(err)
	return n
}

// Incr is Increment by one.
func (f *Facade) Incr(ctx context.Context, key string) int64 {
	return f.Increment(ctx, key, 1)
}

// GetHash returns one hash field and true, or "" and false.
func (f *Facade) GetHash(ctx context.Context, key, field string) (string, bool) {
	r := f.store.GetHash(ctx, key, field)
	f.absorb(r.Err)
	return r.Get()
}

// SetHash sets one hash field.
func (f *Facade) SetHash(ctx context.Context, key, field, value string) {
	f.absorb(f.store.SetHash(ctx, key, field, value))
}

// GetAllHash returns every field of the hash at key. The map is empty,
// never nil, when the key is absent or the store failed.
func (f *Facade) GetAllHash(ctx context.Context, key string) map[string]string {
	m, err := f.store.GetAllHash(ctx, key)
	if err != nil {
		f.absorb(err)
		return map[string]string{}
	}
	return m
}

// Publish broadcasts message on channel without confirmation.
func (f *Facade) Publish(ctx context.Context, channel, message string) {
	f.absorb(f.store.Publish(ctx, channel, message))
}

// Ping reports whether the store answered a round trip.
func (f *Facade) Ping(ctx context.Context) bool {
	err := f.store.Ping(ctx)
	f.absorb(err)
	return err == nil
}

// absorb records a failure that the caller will only see as a default.
func (f *Facade) absorb(err error) {
	if err == nil {
		return
	}

	event := f.store.logger.Warn().Err(err)
	var ce *Error
	if errors.As(err, &ce) {
		event = event.Str(logging.FieldOp, ce.Op).Str(logging.FieldKind, string(ce.Kind))
		if ce.Key != "" {
			event = event.Str(logging.FieldKey, ce.Key)
		}
	}
	event.Msg("cache operation failed, returning default")
}
