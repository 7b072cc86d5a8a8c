// Command cachectl issues statecache operations from the shell.
//
// It reads the same configuration as services embedding the facade (YAML
// file, .env, environment) and follows the same fail-soft policy: when the
// store is down, reads print their default. Only ping reports an outage,
// through a non-zero exit status, which makes it usable as a health probe.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/Sternrassler/statecache/pkg/cache"
	"github.com/Sternrassler/statecache/pkg/config"
	"github.com/Sternrassler/statecache/pkg/logging"
)

// Populated at build time via -ldflags.
var version = "dev"

type flags struct {
	ConfigPath string
	EnvFile    string
	URL        string
	KeyPrefix  string
	Codec      string
	LogLevel   string
	LogPretty  bool
}

// session holds what Before builds for the subcommands.
type session struct {
	flags  flags
	facade *cache.Facade
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cachectl: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	s := &session{}

	app := &cli.Command{
		Name:      "cachectl",
		Usage:     "Inspect and modify ephemeral state in the shared cache",
		UsageText: "cachectl [global options] command [arguments]",
		Version:   version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to a YAML config file",
				Sources:     cli.EnvVars("CACHECTL_CONFIG"),
				Destination: &s.flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "dotenv file loaded before reading the environment",
				Value:       ".env",
				Destination: &s.flags.EnvFile,
			},
			&cli.StringFlag{
				Name:        "url",
				Usage:       "store endpoint, redis://host:port/db (overrides " + config.EnvURL + ")",
				Destination: &s.flags.URL,
			},
			&cli.StringFlag{
				Name:        "prefix",
				Usage:       "key namespace prefix (overrides " + config.EnvKeyPrefix + ")",
				Destination: &s.flags.KeyPrefix,
			},
			&cli.StringFlag{
				Name:        "codec",
				Usage:       "value codec: json, msgpack, cbor (overrides " + config.EnvCodec + ")",
				Destination: &s.flags.Codec,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, disabled)",
				Destination: &s.flags.LogLevel,
			},
			&cli.BoolFlag{
				Name:        "log-pretty",
				Usage:       "human-readable log output",
				Destination: &s.flags.LogPretty,
			},
		},
		Before: s.before,
		After:  s.after,
	}

	app.Commands = commands(s)
	return app
}

func (s *session) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if err := config.LoadDotEnv(s.flags.EnvFile); err != nil {
		return ctx, err
	}

	cfg, err := config.Load(s.flags.ConfigPath)
	if err != nil {
		return ctx, fmt.Errorf("load config: %w", err)
	}

	if cmd.IsSet("url") {
		cfg.URL = s.flags.URL
	}
	if cmd.IsSet("prefix") {
		cfg.KeyPrefix = s.flags.KeyPrefix
	}
	if cmd.IsSet("codec") {
		cfg.Codec = s.flags.Codec
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = s.flags.LogLevel
	}
	if cmd.IsSet("log-pretty") {
		cfg.LogPretty = s.flags.LogPretty
	}

	logging.Setup(cfg.Logging())

	facade, err := cache.Connect(cfg, cache.WithLogger(logging.NewLogger("cachectl")))
	if err != nil {
		return ctx, fmt.Errorf("connect: %w", err)
	}
	s.facade = facade

	return ctx, nil
}

func (s *session) after(ctx context.Context, cmd *cli.Command) error {
	if s.facade == nil {
		return nil
	}
	if err := s.facade.Close(); err != nil {
		log.Warn().Err(err).Msg("close cache facade")
	}
	return nil
}
