// Package cache is the single point of access to ephemeral application
// state held in Redis: JSON values with optional expiry, atomic counters,
// hash records and publish notifications.
//
// Two types share one connection:
//
//   - Store reports every outcome. Reads return a Result that is Found,
//     NotFound or a Failure carrying an *Error with a Kind (transport,
//     encoding, invalid). Writes return that error.
//   - Facade wraps a Store with a fail-soft policy: failures are logged and
//     counted, and the caller receives a safe default instead of an error.
//
// # Basic Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return err
//	}
//
//	f, err := cache.Connect(cfg)
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	f.Set(ctx, "session:42", map[string]any{"user": "ana"}, 30*time.Minute)
//
//	if v, ok := f.Get(ctx, "session:42"); ok {
//		// use v
//	}
//
//	views := f.Incr(ctx, "views")
//
// # Typed Reads
//
//	pos, ok := cache.GetAs[Position](ctx, f, "position:acct-7")
//
//	// Strict callers that must tell "absent" from "store down":
//	r := cache.Lookup[Position](ctx, f.Store(), "position:acct-7")
//	switch r.Status {
//	case cache.StatusFound:
//	case cache.StatusNotFound:
//	case cache.StatusFailure:
//		if errors.Is(r.Err, cache.ErrTransport) {
//			// degrade
//		}
//	}
//
// # Expiry
//
// Set writes the value and its expiry in one SET command. Expire changes
// the expiry of an existing key and does nothing for absent keys. Reads
// never observe a key whose expiry has elapsed.
//
// # Concurrency
//
// Facade and Store are safe for concurrent use. Increment is a single
// INCRBY. Sequences such as Get, modify, Set are not atomic.
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - statecache_operations_total{operation}
//   - statecache_hits_total{operation}
//   - statecache_misses_total{operation}
//   - statecache_failures_total{operation,kind}
//   - statecache_operation_duration_seconds{operation}
package cache
