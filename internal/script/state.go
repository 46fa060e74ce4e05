// Package script runs Lua scripts against buffer snapshots.
//
// Scripts see a global "nav" table exposing the navigation primitives with
// 0-based byte offsets:
//
//	local p = nav.next(0)
//	for _, l in ipairs(nav.lines(p, "forward")) do
//	    print(l.number, l.text)
//	end
package script

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/snapnav/internal/engine/buffer"
)

// Default limits for a State.
const (
	DefaultTimeout   = 5 * time.Second
	DefaultMaxPoints = 10000
)

// State is a sandboxed Lua interpreter. gopher-lua states are not
// goroutine-safe; State serializes every call with a mutex.
type State struct {
	L *lua.LState

	mu        sync.Mutex
	out       io.Writer
	timeout   time.Duration
	maxPoints int
	logger    *slog.Logger
	snap      *buffer.Snapshot
	closed    bool
}

// Option configures a State.
type Option func(*State)

// WithOutput sets where print writes. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *State) {
		s.out = w
	}
}

// WithTimeout bounds each Run. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(s *State) {
		s.timeout = d
	}
}

// WithMaxPoints caps the number of points nav.points returns.
func WithMaxPoints(n int) Option {
	return func(s *State) {
		if n > 0 {
			s.maxPoints = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewState creates a Lua state with only the base, table, string and math
// libraries, and with file loading removed.
func NewState(opts ...Option) *State {
	s := &State{
		out:       os.Stdout,
		timeout:   DefaultTimeout,
		maxPoints: DefaultMaxPoints,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(s.print))
	(&navModule{maxPoints: s.maxPoints}).register(L)

	s.L = L
	return s
}

func (s *State) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(s.out, strings.Join(parts, "\t"))
	return 0
}

// Bind exposes snap to scripts as the global nav table, replacing any
// previously bound snapshot.
func (s *State) Bind(snap *buffer.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.snap = snap
	m := &navModule{snap: snap, maxPoints: s.maxPoints}
	m.register(s.L)
	s.logger.Debug("bound snapshot", "buffer", snap.BufferID(), "version", snap.Version())
	return nil
}

// Snapshot returns the bound snapshot, or nil.
func (s *State) Snapshot() *buffer.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Run executes src.
func (s *State) Run(ctx context.Context, src string) error {
	return s.run(ctx, "<script>", strings.NewReader(src))
}

// RunFile executes the Lua file at path.
func (s *State) RunFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return s.run(ctx, path, bytes.NewReader(data))
}

func (s *State) run(ctx context.Context, name string, r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	fn, err := s.L.Load(r, name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScript, err)
	}

	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	start := time.Now()
	err = s.callWithRecovery(fn)
	s.logger.Debug("script finished", "name", name, "elapsed", time.Since(start), "error", err)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s: %w", ErrTimeout, name, ctx.Err())
		}
		return fmt.Errorf("%w: %w", ErrScript, err)
	}
	return nil
}

func (s *State) callWithRecovery(fn *lua.LFunction) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	top := s.L.GetTop()
	defer s.L.SetTop(top)
	s.L.Push(fn)
	return s.L.PCall(0, lua.MultRet, nil)
}

// Global returns a global variable value.
func (s *State) Global(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// Close releases the Lua state.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
