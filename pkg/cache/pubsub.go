package cache

import (
	"context"

	"github.com/Sternrassler/statecache/pkg/logging"
)

// Publish broadcasts message on channel. Nothing is stored and delivery
// is not confirmed; a channel without subscribers drops the message.
func (s *Store) Publish(ctx context.Context, channel, message string) error {
	done := s.begin(OpPublish)
	defer done()

	receivers, err := s.rdb.Publish(ctx, channel, message).Result()
	if err != nil {
		return s.fail(OpPublish, channel, KindTransport, err)
	}

	s.logger.Debug().
		Str(logging.FieldOp, OpPublish).
		Str(logging.FieldChannel, channel).
		Int64("receivers", receivers).
		Msg("message published")
	return nil
}

// Ping performs one round trip to the store.
func (s *Store) Ping(ctx context.Context) error {
	done := s.begin(OpPing)
	defer done()

	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return s.fail(OpPing, "", KindTransport, err)
	}
	return nil
}

// HealthChecker adapts a Store for health-check collaborators.
type HealthChecker struct {
	store *Store
}

// NewHealthChecker returns a checker that pings s.
func NewHealthChecker(s *Store) *HealthChecker {
	return &HealthChecker{store: s}
}

func (h *HealthChecker) Name() string { return "redis" }

func (h *HealthChecker) Check(ctx context.Context) error { return h.store.Ping(ctx) }
