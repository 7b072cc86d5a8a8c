package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sternrassler/statecache/internal/testutil"
)

// run executes cachectl against url and returns what it printed.
func run(t *testing.T, url string, args ...string) (string, error) {
	t.Helper()

	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out

	argv := append([]string{"cachectl", "--env-file", "", "--log-level", "disabled", "--url", url}, args...)
	err := app.Run(context.Background(), argv)
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestCLI_SetGet(t *testing.T) {
	mr, _ := testutil.NewRedis(t)
	url := testutil.URL(mr)

	out, err := run(t, url, "set", "user:1", `{"name":"ada","age":36}`)
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)

	out, err = run(t, url, "get", "user:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"ada","age":36}`, out)

	out, err = run(t, url, "set", "greeting", "hello")
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)

	raw, err := mr.Get("greeting")
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, raw)
}

func TestCLI_GetMissing(t *testing.T) {
	mr, _ := testutil.NewRedis(t)

	out, err := run(t, testutil.URL(mr), "get", "nope")
	require.NoError(t, err)
	assert.Equal(t, "(nil)\n", out)
}

func TestCLI_SetWithTTL(t *testing.T) {
	mr, _ := testutil.NewRedis(t)
	url := testutil.URL(mr)

	_, err := run(t, url, "set", "--ttl", "30", "session", `"abc"`)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, mr.TTL("session"))

	out, err := run(t, url, "ttl", "session")
	require.NoError(t, err)
	assert.Equal(t, "30\n", out)

	mr.FastForward(31 * time.Second)

	out, err = run(t, url, "exists", "session")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestCLI_TTL(t *testing.T) {
	mr, _ := testutil.NewRedis(t)
	url := testutil.URL(mr)

	require.NoError(t, mr.Set("persistent", `1`))

	out, err := run(t, url, "ttl", "persistent")
	require.NoError(t, err)
	assert.Equal(t, "-1\n", out)

	out, err = run(t, url, "ttl", "absent")
	require.NoError(t, err)
	assert.Equal(t, "(nil)\n", out)

	out, err = run(t, url, "expire", "persistent", "60")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
	assert.Equal(t, 60*time.Second, mr.TTL("persistent"))

	out, err = run(t, url, "expire", "absent", "60")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestCLI_DelExists(t *testing.T) {
	mr, _ := testutil.NewRedis(t)
	url := testutil.URL(mr)

	require.NoError(t, mr.Set("k", `"v"`))

	out, err := run(t, url, "exists", "k")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, url, "del", "k")
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)
	assert.False(t, mr.Exists("k"))
}

func TestCLI_Incr(t *testing.T) {
	mr, _ := testutil.NewRedis(t)
	url := testutil.URL(mr)

	out, err := run(t, url, "incr", "hits")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = run(t, url, "incr", "--by", "10", "hits")
	require.NoError(t, err)
	assert.Equal(t, "11\n", out)

	out, err = run(t, url, "incr", "--by=-20", "hits")
	require.NoError(t, err)
	assert.Equal(t, "-9\n", out)
}

func TestCLI_Hash(t *testing.T) {
	mr, _ := testutil.NewRedis(t)
	url := testutil.URL(mr)

	_, err := run(t, url, "hset", "player:7", "zone", "north")
	require.NoError(t, err)
	_, err = run(t, url, "hset", "player:7", "hp", "90")
	require.NoError(t, err)

	out, err := run(t, url, "hget", "player:7", "zone")
	require.NoError(t, err)
	assert.Equal(t, "north\n", out)

	out, err = run(t, url, "hget", "player:7", "mana")
	require.NoError(t, err)
	assert.Equal(t, "(nil)\n", out)

	out, err = run(t, url, "hgetall", "player:7")
	require.NoError(t, err)
	assert.Equal(t, []string{"hp=90", "zone=north"}, lines(out))

	out, err = run(t, url, "hgetall", "nobody")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCLI_PublishPing(t *testing.T) {
	mr, _ := testutil.NewRedis(t)
	url := testutil.URL(mr)

	out, err := run(t, url, "publish", "events", "hello")
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)

	out, err = run(t, url, "ping")
	require.NoError(t, err)
	assert.Equal(t, "PONG\n", out)
}

func TestCLI_Prefix(t *testing.T) {
	mr, _ := testutil.NewRedis(t)
	url := testutil.URL(mr)

	_, err := run(t, url, "--prefix", "app", "set", "k", "1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("app:k"))
	assert.False(t, mr.Exists("k"))
}

func TestCLI_Unreachable(t *testing.T) {
	url := "redis://" + testutil.UnreachableAddr(t) + "/0"

	_, err := run(t, url, "ping")
	assert.ErrorIs(t, err, errUnreachable)

	out, err := run(t, url, "get", "k")
	require.NoError(t, err, "reads stay fail-soft")
	assert.Equal(t, "(nil)\n", out)

	out, err = run(t, url, "incr", "k")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestCLI_ArgumentCount(t *testing.T) {
	mr, _ := testutil.NewRedis(t)

	_, err := run(t, testutil.URL(mr), "hset", "only-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 3 argument(s)")
}

func TestCLI_InvalidConfig(t *testing.T) {
	_, err := run(t, "ftp://nowhere", "ping")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect")
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"hello", "hello"},
		{`"hello"`, "hello"},
		{"", ""},
		{"1 2", "1 2"},
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"1.5", 1.5},
		{"9007199254740993", int64(9007199254740993)},
		{"12345678901234567890", uint64(12345678901234567890)},
		{"123456789012345678901234567890", json.Number("123456789012345678901234567890")},
		{"true", true},
		{"null", nil},
		{`{"a":1,"b":[2,2.5]}`, map[string]any{"a": int64(1), "b": []any{int64(2), 2.5}}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parseValue(tt.raw))
		})
	}
}

func TestCLI_SetLargeInteger(t *testing.T) {
	mr, _ := testutil.NewRedis(t)
	url := testutil.URL(mr)

	for _, n := range []string{"12345678901234567890", "9007199254740993", "123456789012345678901234567890"} {
		_, err := run(t, url, "set", "n", n)
		require.NoError(t, err)

		raw, err := mr.Get("n")
		require.NoError(t, err)
		assert.Equal(t, n, raw)
	}
}
