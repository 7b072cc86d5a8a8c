// Package config resolves the connection endpoint and transport settings
// for the cache facade.
//
// Sources, lowest precedence first: Default, an optional YAML file,
// variables from .env files, and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"github.com/Sternrassler/statecache/pkg/codec"
	"github.com/Sternrassler/statecache/pkg/logging"
)

// DefaultURL is used when no endpoint is configured.
const DefaultURL = "redis://localhost:6379/0"

// Environment variables read by ApplyEnv.
const (
	EnvURL           = "REDIS_URL"
	EnvKeyPrefix     = "CACHE_KEY_PREFIX"
	EnvCodec         = "CACHE_CODEC"
	EnvMaxValueBytes = "CACHE_MAX_VALUE_BYTES"
	EnvPoolSize      = "REDIS_POOL_SIZE"
	EnvMaxRetries    = "REDIS_MAX_RETRIES"
	EnvDialTimeout   = "REDIS_DIAL_TIMEOUT"
	EnvReadTimeout   = "REDIS_READ_TIMEOUT"
	EnvWriteTimeout  = "REDIS_WRITE_TIMEOUT"
	EnvLogLevel      = "LOG_LEVEL"
	EnvLogPretty     = "LOG_PRETTY"
)

// Config holds everything needed to reach the store.
type Config struct {
	// URL is the endpoint, scheme://[user:pass@]host:port/db.
	URL string `yaml:"url"`

	// KeyPrefix namespaces every key as "prefix:key". Empty disables it.
	KeyPrefix string `yaml:"key_prefix"`

	// Codec selects value serialization: json (default), msgpack or cbor.
	Codec string `yaml:"codec"`

	// MaxValueBytes rejects stored values larger than this on read. 0 disables.
	MaxValueBytes int `yaml:"max_value_bytes"`

	// Transport settings; zero keeps the go-redis default.
	PoolSize     int           `yaml:"pool_size"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	LogLevel  string `yaml:"log_level"`
	LogPretty bool   `yaml:"log_pretty"`
}

// Default returns the configuration used when nothing else is supplied.
func Default() Config {
	return Config{
		URL:          DefaultURL,
		Codec:        codec.NameJSON,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		LogLevel:     string(logging.LevelInfo),
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the process environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// FromEnv is Load without a config file.
func FromEnv() (Config, error) {
	return Load("")
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are skipped and variables that are already
// set are never overwritten.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	integer := func(name string, dst *int) {
		v, ok := lookup(name)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		*dst = n
	}
	duration := func(name string, dst *time.Duration) {
		v, ok := lookup(name)
		if !ok || v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		*dst = d
	}

	str(EnvURL, &c.URL)
	str(EnvKeyPrefix, &c.KeyPrefix)
	str(EnvCodec, &c.Codec)
	integer(EnvMaxValueBytes, &c.MaxValueBytes)
	integer(EnvPoolSize, &c.PoolSize)
	integer(EnvMaxRetries, &c.MaxRetries)
	duration(EnvDialTimeout, &c.DialTimeout)
	duration(EnvReadTimeout, &c.ReadTimeout)
	duration(EnvWriteTimeout, &c.WriteTimeout)
	str(EnvLogLevel, &c.LogLevel)

	if v, ok := lookup(EnvLogPretty); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvLogPretty, err))
		} else {
			c.LogPretty = b
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %w", errors.Join(errs...))
	}
	return nil
}

// Validate reports every problem in the configuration at once.
func (c Config) Validate() error {
	var problems []string

	if _, err := redis.ParseURL(c.Endpoint()); err != nil {
		problems = append(problems, fmt.Sprintf("url: %v", err))
	}
	if _, err := codec.ByName(c.Codec); err != nil {
		problems = append(problems, err.Error())
	}
	if c.MaxValueBytes < 0 {
		problems = append(problems, fmt.Sprintf("max_value_bytes must be >= 0 (got %d)", c.MaxValueBytes))
	}
	if c.PoolSize < 0 {
		problems = append(problems, fmt.Sprintf("pool_size must be >= 0 (got %d)", c.PoolSize))
	}
	if c.MaxRetries < -1 {
		problems = append(problems, fmt.Sprintf("max_retries must be >= -1 (got %d)", c.MaxRetries))
	}
	for _, t := range []struct {
		name string
		d    time.Duration
	}{
		{"dial_timeout", c.DialTimeout},
		{"read_timeout", c.ReadTimeout},
		{"write_timeout", c.WriteTimeout},
	} {
		if t.d < 0 {
			problems = append(problems, fmt.Sprintf("%s must be >= 0 (got %s)", t.name, t.d))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, ", "))
	}
	return nil
}

// Endpoint returns the configured URL, or DefaultURL when it is blank.
func (c Config) Endpoint() string {
	if strings.TrimSpace(c.URL) == "" {
		return DefaultURL
	}
	return c.URL
}

// RedisOptions parses the endpoint and applies the transport settings.
func (c Config) RedisOptions() (*redis.Options, error) {
	opts, err := redis.ParseURL(c.Endpoint())
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	if c.PoolSize > 0 {
		opts.PoolSize = c.PoolSize
	}
	if c.MaxRetries != 0 {
		opts.MaxRetries = c.MaxRetries
	}
	if c.DialTimeout > 0 {
		opts.DialTimeout = c.DialTimeout
	}
	if c.ReadTimeout > 0 {
		opts.ReadTimeout = c.ReadTimeout
	}
	if c.WriteTimeout > 0 {
		opts.WriteTimeout = c.WriteTimeout
	}

	return opts, nil
}

// ValueCodec returns the configured codec, size-limited when
// MaxValueBytes is set.
func (c Config) ValueCodec() (codec.Codec, error) {
	vc, err := codec.ByName(c.Codec)
	if err != nil {
		return nil, err
	}
	return codec.WithLimit(vc, c.MaxValueBytes), nil
}

// Logging returns the logger configuration, writing to os.Stderr.
func (c Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	if c.LogLevel != "" {
		cfg.Level = logging.LogLevel(c.LogLevel)
	}
	cfg.Pretty = c.LogPretty
	return cfg
}

// Redacted returns the endpoint with any password masked, for logging.
func (c Config) Redacted() string {
	opts, err := redis.ParseURL(c.Endpoint())
	if err != nil {
		return "<invalid>"
	}
	scheme := "redis"
	if opts.TLSConfig != nil {
		scheme = "rediss"
	}
	auth := ""
	switch {
	case opts.Username != "" && opts.Password != "":
		auth = opts.Username + ":***@"
	case opts.Password != "":
		auth = ":***@"
	case opts.Username != "":
		auth = opts.Username + "@"
	}
	return fmt.Sprintf("%s://%s%s/%d", scheme, auth, opts.Addr, opts.DB)
}
