// Package testutil provides in-process Redis servers for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// NewRedis starts a miniredis server and a client connected to it. Both
// are closed when the test ends. Use the returned server to fast-forward
// expiry or inspect raw state.
func NewRedis(tb testing.TB) (*miniredis.Miniredis, *redis.Client) {
	tb.Helper()

	server := miniredis.RunT(tb)
	client := redis.NewClient(&redis.Options{
		Addr:     server.Addr(),
		Protocol: 2,
	})
	tb.Cleanup(func() {
		_ = client.Close()
	})

	return server, client
}

// URL returns a redis:// endpoint for server, database 0.
func URL(server *miniredis.Miniredis) string {
	return "redis://" + server.Addr() + "/0"
}

// UnreachableClient returns a client pointed at an address nothing listens
// on, with short timeouts and retries disabled, so every command fails fast.
func UnreachableClient(tb testing.TB) *redis.Client {
	tb.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:         UnreachableAddr(tb),
		DialTimeout:  200 * time.Millisecond,
		ReadTimeout:  200 * time.Millisecond,
		WriteTimeout: 200 * time.Millisecond,
		MaxRetries:   -1,
		Protocol:     2,
	})
	tb.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

// UnreachableAddr returns a local address that was just released, so
// connecting to it is refused.
func UnreachableAddr(tb testing.TB) string {
	tb.Helper()

	server := miniredis.NewMiniRedis()
	if err := server.Start(); err != nil {
		tb.Fatalf("start miniredis: %v", err)
	}
	addr := server.Addr()
	server.Close()

	return addr
}
