package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/Sternrassler/statecache/pkg/logging"
)

// GetHash returns one field of the hash at key. A missing key or field is
// NotFound.
func (s *Store) GetHash(ctx context.Context, key, field string) Result[string] {
	done := s.begin(OpGetHash)
	defer done()

	v, err := s.rdb.HGet(ctx, s.key(key), field).Result()
	if errors.Is(err, redis.Nil) {
		s.miss(OpGetHash, key)
		return notFound[string]()
	}
	if err != nil {
		return failed[string](s.fail(OpGetHash, key, KindTransport, err))
	}

	s.hit(OpGetHash, key)
	return found(v)
}

// SetHash sets one field, creating the hash when needed. Other fields are
// left as they are.
func (s *Store) SetHash(ctx context.Context, key, field, value string) error {
	done := s.begin(OpSetHash)
	defer done()

	if err := s.rdb.HSet(ctx, s.key(key), field, value).Err(); err != nil {
		return s.fail(OpSetHash, key, KindTransport, err)
	}

	s.logger.Debug().
		Str(logging.FieldOp, OpSetHash).
		Str(logging.FieldKey, key).
		Str(logging.FieldField, field).
		Msg("hash field stored")
	return nil
}

// GetAllHash returns a snapshot of every field of the hash at key. A
// missing key yields an empty, non-nil map.
func (s *Store) GetAllHash(ctx context.Context, key string) (map[string]string, error) {
	done := s.begin(OpGetAllHash)
	defer done()

	m, err := s.rdb.HGetAll(ctx, s.key(key)).Result()
	if err != nil {
		return nil, s.fail(OpGetAllHash, key, KindTransport, err)
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}
