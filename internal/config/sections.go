package config

import (
	"fmt"
	"time"
)

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// Format is "text" or "json".
	Format string `toml:"format"`

	// File receives log output; empty means stderr.
	File string `toml:"file"`

	// Source adds the caller's file and line to each record.
	Source bool `toml:"source"`
}

// BufferConfig controls how files are loaded into buffers.
type BufferConfig struct {
	// LineEnding is lf, crlf or cr. Empty detects it from the file.
	LineEnding string `toml:"line_ending"`

	// PreserveLineEndings keeps mixed line endings instead of normalizing.
	PreserveLineEndings bool `toml:"preserve_line_endings"`

	// HistoryLimit is the number of snapshots kept addressable by version.
	HistoryLimit int `toml:"history_limit"`
}

// ScriptConfig controls the Lua script runner.
type ScriptConfig struct {
	// Timeout bounds a single script run. Zero means no limit.
	Timeout Duration `toml:"timeout"`

	// MaxPoints caps how many points nav.points may return.
	MaxPoints int `toml:"max_points"`
}

// WatchConfig controls the file follower.
type WatchConfig struct {
	// Debounce is how long to wait for a burst of file events to settle.
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration that decodes from strings like "250ms".
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q", ErrInvalid, text)
	}
	*d = Duration(v)
	return nil
}
