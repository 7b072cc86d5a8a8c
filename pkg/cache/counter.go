package cache

import "context"

// Increment adds amount (which may be negative) to the integer at key and
// returns the new value. An absent key starts at zero. The addition is a
// single INCRBY, so concurrent callers never lose updates.
func (s *Store) Increment(ctx context.Context, key string, amount int64) (int64, error) {
	done := s.begin(OpIncrement)
	defer done()

	n, err := s.rdb.IncrBy(ctx, s.key(key), amount).Result()
	if err != nil {
		return 0, s.fail(OpIncrement, key, KindTransport, err)
	}
	return n, nil
}
