package cache

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/statecache/pkg/codec"
	"github.com/Sternrassler/statecache/pkg/logging"
)

// Operation names used in errors, log fields and metric labels.
const (
	OpGet        = "get"
	OpSet        = "set"
	OpDelete     = "delete"
	OpExists     = "exists"
	OpExpire     = "expire"
	OpTTL        = "ttl"
	OpIncrement  = "increment"
	OpGetHash    = "hget"
	OpSetHash    = "hset"
	OpGetAllHash = "hgetall"
	OpPublish    = "publish"
	OpPing       = "ping"
)

// NoExpiry is the TTL reported for keys that exist without an expiry.
const NoExpiry time.Duration = -1

// Option configures a Store.
type Option func(*Store)

// WithLogger replaces the default component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithCodec replaces the default JSON codec.
func WithCodec(c codec.Codec) Option {
	return func(s *Store) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithKeyPrefix namespaces every key as "prefix:key".
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = Key(prefix) }
}

// Store is the error-visible client. Every operation maps to one Redis
// command and reports failures as *Error.
//
// A Store holds no mutable state after construction and is safe for
// concurrent use; the underlying client pools connections.
type Store struct {
	rdb    redis.UniversalClient
	codec  codec.Codec
	prefix string
	logger zerolog.Logger
	owned  bool
}

// NewStore wraps an existing client. The caller keeps ownership of client.
func NewStore(client redis.UniversalClient, opts ...Option) *Store {
	if client == nil {
		panic("redis client cannot be nil")
	}

	s := &Store{
		rdb:    client,
		codec:  codec.JSON{},
		logger: logging.NewLogger("statecache"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Codec returns the codec used for values.
func (s *Store) Codec() codec.Codec { return s.codec }

// Close releases the client when the Store created it. Safe to call more
// than once.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	if err := s.rdb.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return fmt.Errorf("close redis client: %w", err)
	}
	return nil
}

// Get returns the decoded value stored under key. Values decode into the
// codec's untyped model (map[string]any, []any, float64, string, bool, nil
// for JSON). Use Lookup for a typed read.
func (s *Store) Get(ctx context.Context, key string) Result[any] {
	var v any
	ok, err := s.GetInto(ctx, key, &v)
	switch {
	case err != nil:
		return failed[any](err)
	case !ok:
		return notFound[any]()
	}
	return found(v)
}

// GetInto decodes the value stored under key into dst, which must be a
// non-nil pointer. It reports false with a nil error when the key is absent.
// dst is replaced only after the whole value decoded; a miss or failure
// leaves it as it was.
func (s *Store) GetInto(ctx context.Context, key string, dst any) (bool, error) {
	done := s.begin(OpGet)
	defer done()

	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return false, s.fail(OpGet, key, KindInvalid, fmt.Errorf("destination must be a non-nil pointer, got %T", dst))
	}

	data, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		s.miss(OpGet, key)
		return false, nil
	}
	if err != nil {
		return false, s.fail(OpGet, key, KindTransport, err)
	}

	decoded := reflect.New(target.Elem().Type())
	if err := s.codec.Unmarshal(data, decoded.Interface()); err != nil {
		return false, s.fail(OpGet, key, KindEncoding, err)
	}
	target.Elem().Set(decoded.Elem())

	s.hit(OpGet, key)
	return true, nil
}

// Set encodes value and stores it under key. A positive ttl is written in
// the same SET command, so the key is never visible without its expiry.
// A ttl of zero or less stores the key without expiry, clearing any
// previous one.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	done := s.begin(OpSet)
	defer done()

	data, err := s.codec.Marshal(value)
	if err != nil {
		return s.fail(OpSet, key, KindEncoding, err)
	}

	if ttl < 0 {
		ttl = 0
	}
	if err := s.rdb.Set(ctx, s.key(key), data, ttl).Err(); err != nil {
		return s.fail(OpSet, key, KindTransport, err)
	}

	s.logger.Debug().
		Str(logging.FieldOp, OpSet).
		Str(logging.FieldKey, key).
		Dur(logging.FieldTTL, ttl).
		Int("bytes", len(data)).
		Msg("value stored")
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	done := s.begin(OpDelete)
	defer done()

	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return s.fail(OpDelete, key, KindTransport, err)
	}
	return nil
}

// Exists reports whether key is present. Expired keys are absent.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	done := s.begin(OpExists)
	defer done()

	n, err := s.rdb.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, s.fail(OpExists, key, KindTransport, err)
	}
	return n > 0, nil
}

// Expire sets or replaces the expiry of an existing key and reports
// whether the key existed. ttl must be positive; whole seconds use EXPIRE,
// anything finer uses PEXPIRE.
func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	done := s.begin(OpExpire)
	defer done()

	if ttl <= 0 {
		return false, s.fail(OpExpire, key, KindInvalid, fmt.Errorf("ttl must be positive, got %s", ttl))
	}

	var cmd *redis.BoolCmd
	if ttl%time.Second == 0 {
		cmd = s.rdb.Expire(ctx, s.key(key), ttl)
	} else {
		cmd = s.rdb.PExpire(ctx, s.key(key), ttl)
	}

	ok, err := cmd.Result()
	if err != nil {
		return false, s.fail(OpExpire, key, KindTransport, err)
	}
	return ok, nil
}

// TTL returns the remaining time to live of key. Keys without expiry are
// Found with NoExpiry; absent keys are NotFound.
func (s *Store) TTL(ctx context.Context, key string) Result[time.Duration] {
	done := s.begin(OpTTL)
	defer done()

	d, err := s.rdb.PTTL(ctx, s.key(key)).Result()
	if err != nil {
		return failed[time.Duration](s.fail(OpTTL, key, KindTransport, err))
	}

	switch d {
	case -2:
		s.miss(OpTTL, key)
		return notFound[time.Duration]()
	case -1:
		s.hit(OpTTL, key)
		return found(NoExpiry)
	}
	s.hit(OpTTL, key)
	return found(d)
}

// Lookup is Get decoding into T.
func Lookup[T any](ctx context.Context, s *Store, key string) Result[T] {
	var v T
	ok, err := s.GetInto(ctx, key, &v)
	switch {
	case err != nil:
		return failed[T](err)
	case !ok:
		return notFound[T]()
	}
	return found(v)
}

func (s *Store) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + KeySeparator + key
}

func (s *Store) begin(op string) func() {
	start := time.Now()
	OperationsTotal.WithLabelValues(op).Inc()
	return func() {
		OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

func (s *Store) fail(op, key string, kind Kind, err error) error {
	Failures.WithLabelValues(op, string(kind)).Inc()
	return &Error{Op: op, Key: key, Kind: kind, Err: err}
}

func (s *Store) hit(op, key string) {
	Hits.WithLabelValues(op).Inc()
	s.logger.Debug().Str(logging.FieldOp, op).Str(logging.FieldKey, key).Bool(logging.FieldHit, true).Msg("cache hit")
}

func (s *Store) miss(op, key string) {
	Misses.WithLabelValues(op).Inc()
	s.logger.Debug().Str(logging.FieldOp, op).Str(logging.FieldKey, key).Bool(logging.FieldHit, false).Msg("cache miss")
}
