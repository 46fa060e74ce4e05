package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/snapnav/internal/config/loader"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "snapnav.toml"

// Config holds every snapnav setting.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Buffer  BufferConfig  `toml:"buffer"`
	Script  ScriptConfig  `toml:"script"`
	Watch   WatchConfig   `toml:"watch"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Buffer: BufferConfig{
			HistoryLimit: 100,
		},
		Script: ScriptConfig{
			Timeout:   Duration(5 * time.Second),
			MaxPoints: 10000,
		},
		Watch: WatchConfig{
			Debounce: Duration(50 * time.Millisecond),
		},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs      loader.FileSystem
	env     *loader.EnvLoader
	require bool
}

// WithFileSystem reads configuration files through fsys.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnv reads overrides from a fixed KEY=value list instead of the
// process environment. A nil list disables environment overrides.
func WithEnv(env []string) Option {
	return func(o *options) {
		o.env = loader.NewEnvLoaderFromList(env)
	}
}

// WithRequiredFile makes a missing configuration file an error.
func WithRequiredFile() Option {
	return func(o *options) {
		o.require = true
	}
}

// Load builds a configuration from defaults, the TOML file at path and the
// environment, then validates it. An empty path or a missing optional file
// leaves the defaults in place.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := Default()
	if path != "" {
		found, err := loader.NewTOMLLoaderWithFS(o.fs).LoadFile(path, cfg)
		if err != nil {
			return nil, err
		}
		if !found && o.require {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
	}

	if err := cfg.ApplyEnv(o.env); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv applies the overrides collected by env. Variables that do not
// name a setting are ignored.
func (c *Config) ApplyEnv(env *loader.EnvLoader) error {
	overrides := env.Load()
	paths := make([]string, 0, len(overrides))
	for path := range overrides {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	for _, path := range paths {
		err := c.Set(path, overrides[path])
		if errors.Is(err, ErrUnknownSetting) {
			continue
		}
		if err != nil {
			return fmt.Errorf("environment: %w", err)
		}
	}
	return nil
}

// Set assigns a setting from its string form.
func (c *Config) Set(path, value string) error {
	setter, ok := setters[path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, path)
	}
	if err := setter(c, value); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Paths returns every settable path in sorted order.
func Paths() []string {
	paths := make([]string, 0, len(setters))
	for path := range setters {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

var setters = map[string]func(*Config, string) error{
	"logging.level":  func(c *Config, v string) error { c.Logging.Level = v; return nil },
	"logging.format": func(c *Config, v string) error { c.Logging.Format = v; return nil },
	"logging.file":   func(c *Config, v string) error { c.Logging.File = v; return nil },
	"logging.source": func(c *Config, v string) error { return setBool(&c.Logging.Source, v) },

	"buffer.line_ending":           func(c *Config, v string) error { c.Buffer.LineEnding = v; return nil },
	"buffer.preserve_line_endings": func(c *Config, v string) error { return setBool(&c.Buffer.PreserveLineEndings, v) },
	"buffer.history_limit":         func(c *Config, v string) error { return setInt(&c.Buffer.HistoryLimit, v) },

	"script.timeout":    func(c *Config, v string) error { return c.Script.Timeout.UnmarshalText([]byte(v)) },
	"script.max_points": func(c *Config, v string) error { return setInt(&c.Script.MaxPoints, v) },

	"watch.debounce": func(c *Config, v string) error { return c.Watch.Debounce.UnmarshalText([]byte(v)) },
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%w: integer %q", ErrInvalid, v)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, v string) error {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "on", "1":
		*dst = true
	case "false", "no", "off", "0", "":
		*dst = false
	default:
		return fmt.Errorf("%w: boolean %q", ErrInvalid, v)
	}
	return nil
}

// Validate checks every setting and joins all problems found.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		invalid("logging.level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		invalid("logging.format %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Buffer.LineEnding) {
	case "", "lf", "unix", "crlf", "windows", "dos", "cr", "mac":
	default:
		invalid("buffer.line_ending %q", c.Buffer.LineEnding)
	}
	if c.Buffer.HistoryLimit < 1 {
		invalid("buffer.history_limit %d must be at least 1", c.Buffer.HistoryLimit)
	}
	if c.Script.Timeout < 0 {
		invalid("script.timeout %s is negative", c.Script.Timeout)
	}
	if c.Script.MaxPoints < 1 {
		invalid("script.max_points %d must be at least 1", c.Script.MaxPoints)
	}
	if c.Watch.Debounce < 0 {
		invalid("watch.debounce %s is negative", c.Watch.Debounce)
	}

	return errors.Join(errs...)
}
