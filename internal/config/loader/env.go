package loader

import (
	"os"
	"strings"
)

// EnvPrefix is the prefix of every snapnav environment variable.
const EnvPrefix = "SNAPNAV_"

// EnvLoader collects configuration overrides from environment variables.
type EnvLoader struct {
	prefix  string
	mapping map[string]string // env var -> config path
	environ func() []string
}

// NewEnvLoader creates an environment loader reading the process environment.
func NewEnvLoader() *EnvLoader {
	return &EnvLoader{
		prefix:  EnvPrefix,
		mapping: defaultEnvMapping(),
		environ: os.Environ,
	}
}

// NewEnvLoaderFromList creates a loader over a fixed list of KEY=value
// entries instead of the process environment.
func NewEnvLoaderFromList(env []string) *EnvLoader {
	l := NewEnvLoader()
	l.environ = func() []string { return env }
	return l
}

func defaultEnvMapping() map[string]string {
	return map[string]string{
		"SNAPNAV_LOG_LEVEL":      "logging.level",
		"SNAPNAV_LOG_FORMAT":     "logging.format",
		"SNAPNAV_LOG_FILE":       "logging.file",
		"SNAPNAV_LINE_ENDING":    "buffer.line_ending",
		"SNAPNAV_HISTORY_LIMIT":  "buffer.history_limit",
		"SNAPNAV_SCRIPT_TIMEOUT": "script.timeout",
		"SNAPNAV_WATCH_DEBOUNCE": "watch.debounce",
	}
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load returns the raw value of every prefixed variable, keyed by config
// path. Empty values count as set.
func (l *EnvLoader) Load() map[string]string {
	out := make(map[string]string)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		out[l.PathFor(name)] = value
	}
	return out
}

// PathFor converts an environment variable name to a config path:
// mapped names resolve through the mapping, others split at the first
// underscore, so SNAPNAV_BUFFER_HISTORY_LIMIT becomes buffer.history_limit.
func (l *EnvLoader) PathFor(env string) string {
	if path, ok := l.mapping[env]; ok {
		return path
	}
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok {
		return name
	}
	return section + "." + key
}
