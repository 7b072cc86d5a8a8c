package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/Sternrassler/statecache/pkg/cache"
)

const nilOutput = "(nil)"

var errUnreachable = errors.New("store unreachable")

func commands(s *session) []*cli.Command {
	return []*cli.Command{
		{
			Name:      "get",
			Usage:     "Print the JSON value stored under a key",
			ArgsUsage: "KEY",
			Action:    s.withArgs(1, s.get),
		},
		{
			Name:      "set",
			Usage:     "Store a value; VALUE is parsed as JSON, falling back to a plain string",
			ArgsUsage: "KEY VALUE",
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:  "ttl",
					Usage: "expire after this many seconds (0 = never)",
				},
			},
			Action: s.withArgs(2, s.set),
		},
		{
			Name:      "del",
			Usage:     "Delete a key",
			ArgsUsage: "KEY",
			Action:    s.withArgs(1, s.del),
		},
		{
			Name:      "exists",
			Usage:     "Report whether a key is present",
			ArgsUsage: "KEY",
			Action:    s.withArgs(1, s.exists),
		},
		{
			Name:      "expire",
			Usage:     "Set the expiry of an existing key",
			ArgsUsage: "KEY SECONDS",
			Action:    s.withArgs(2, s.expire),
		},
		{
			Name:      "ttl",
			Usage:     "Print the remaining seconds to live (-1 = no expiry)",
			ArgsUsage: "KEY",
			Action:    s.withArgs(1, s.ttl),
		},
		{
			Name:      "incr",
			Usage:     "Atomically add to a counter and print the result",
			ArgsUsage: "KEY",
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:  "by",
					Usage: "amount to add, may be negative",
					Value: 1,
				},
			},
			Action: s.withArgs(1, s.incr),
		},
		{
			Name:      "hget",
			Usage:     "Print one hash field",
			ArgsUsage: "KEY FIELD",
			Action:    s.withArgs(2, s.hget),
		},
		{
			Name:      "hset",
			Usage:     "Set one hash field",
			ArgsUsage: "KEY FIELD VALUE",
			Action:    s.withArgs(3, s.hset),
		},
		{
			Name:      "hgetall",
			Usage:     "Print every field of a hash as field=value lines",
			ArgsUsage: "KEY",
			Action:    s.withArgs(1, s.hgetall),
		},
		{
			Name:      "publish",
			Usage:     "Broadcast a message on a channel",
			ArgsUsage: "CHANNEL MESSAGE",
			Action:    s.withArgs(2, s.publish),
		},
		{
			Name:   "ping",
			Usage:  "Check that the store answers; exits non-zero when it does not",
			Action: s.withArgs(0, s.ping),
		},
	}
}

type action func(ctx context.Context, cmd *cli.Command, out io.Writer, args []string) error

func (s *session) withArgs(n int, fn action) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		args := cmd.Args().Slice()
		if len(args) != n {
			return fmt.Errorf("%s: expected %d argument(s) %s, got %d", cmd.Name, n, cmd.ArgsUsage, len(args))
		}
		return fn(ctx, cmd, cmd.Root().Writer, args)
	}
}

func (s *session) get(ctx context.Context, _ *cli.Command, out io.Writer, args []string) error {
	v, ok := s.facade.Get(ctx, args[0])
	if !ok {
		_, err := fmt.Fprintln(out, nilOutput)
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("render value: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func (s *session) set(ctx context.Context, cmd *cli.Command, out io.Writer, args []string) error {
	ttl := time.Duration(cmd.Int64("ttl")) * time.Second
	s.facade.Set(ctx, args[0], parseValue(args[1]), ttl)
	_, err := fmt.Fprintln(out, "OK")
	return err
}

func (s *session) del(ctx context.Context, _ *cli.Command, out io.Writer, args []string) error {
	s.facade.Delete(ctx, args[0])
	_, err := fmt.Fprintln(out, "OK")
	return err
}

func (s *session) exists(ctx context.Context, _ *cli.Command, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, s.facade.Exists(ctx, args[0]))
	return err
}

func (s *session) expire(ctx context.Context, _ *cli.Command, out io.Writer, args []string) error {
	seconds, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("seconds: %w", err)
	}
	_, err = fmt.Fprintln(out, s.facade.Expire(ctx, args[0], time.Duration(seconds)*time.Second))
	return err
}

func (s *session) ttl(ctx context.Context, _ *cli.Command, out io.Writer, args []string) error {
	d, ok := s.facade.TTL(ctx, args[0])
	switch {
	case !ok:
		_, err := fmt.Fprintln(out, nilOutput)
		return err
	case d == cache.NoExpiry:
		_, err := fmt.Fprintln(out, -1)
		return err
	}
	_, err := fmt.Fprintln(out, int64(d.Round(time.Second)/time.Second))
	return err
}

func (s *session) incr(ctx context.Context, cmd *cli.Command, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, s.facade.Increment(ctx, args[0], cmd.Int64("by")))
	return err
}

func (s *session) hget(ctx context.Context, _ *cli.Command, out io.Writer, args []string) error {
	v, ok := s.facade.GetHash(ctx, args[0], args[1])
	if !ok {
		v = nilOutput
	}
	_, err := fmt.Fprintln(out, v)
	return err
}

func (s *session) hset(ctx context.Context, _ *cli.Command, out io.Writer, args []string) error {
	s.facade.SetHash(ctx, args[0], args[1], args[2])
	_, err := fmt.Fprintln(out, "OK")
	return err
}

func (s *session) hgetall(ctx context.Context, _ *cli.Command, out io.Writer, args []string) error {
	fields := s.facade.GetAllHash(ctx, args[0])

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s=%s\n", name, fields[name])
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func (s *session) publish(ctx context.Context, _ *cli.Command, out io.Writer, args []string) error {
	s.facade.Publish(ctx, args[0], args[1])
	_, err := fmt.Fprintln(out, "OK")
	return err
}

func (s *session) ping(ctx context.Context, _ *cli.Command, out io.Writer, _ []string) error {
	if !s.facade.Ping(ctx) {
		return errUnreachable
	}
	_, err := fmt.Fprintln(out, "PONG")
	return err
}

// parseValue treats raw as JSON when it parses and as a plain string
// otherwise, so `cachectl set k hello` and `cachectl set k '"hello"'` agree.
// Integers keep every digit; see exactNumbers.
func parseValue(raw string) any {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return raw
	}
	if _, err := dec.Token(); err != io.EOF {
		return raw
	}
	return exactNumbers(v)
}

// exactNumbers replaces json.Number values with int64 or uint64 when they
// are integers in range, and float64 otherwise. Integers beyond uint64 stay
// json.Number, which the JSON codec writes back verbatim.
func exactNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if n, err := strconv.ParseUint(t.String(), 10, 64); err == nil {
			return n
		}
		if !strings.ContainsAny(t.String(), ".eE") {
			return t
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t
	case map[string]any:
		for k, e := range t {
			t[k] = exactNumbers(e)
		}
	case []any:
		for i, e := range t {
			t[i] = exactNumbers(e)
		}
	}
	return v
}
