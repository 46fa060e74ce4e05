package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/snapnav/internal/engine/buffer"
)

func newTestState(t *testing.T, text string, opts ...Option) (*State, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s := NewState(append([]Option{WithOutput(&out)}, opts...)...)
	t.Cleanup(func() { s.Close() })

	if text != "" {
		if err := s.Bind(buffer.NewSnapshot(text)); err != nil {
			t.Fatalf("Bind() error = %v", err)
		}
	}
	return s, &out
}

func run(t *testing.T, s *State, src string) {
	t.Helper()
	if err := s.Run(context.Background(), src); err != nil {
		t.Fatalf("Run(%q) error = %v", src, err)
	}
}

func TestRunPrint(t *testing.T) {
	s, out := newTestState(t, "")

	run(t, s, `print("a", 1, true)`)
	if got := out.String(); got != "a\t1\ttrue\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRunSetsGlobals(t *testing.T) {
	s, _ := newTestState(t, "")

	run(t, s, `x = 1 + 1`)
	if v, ok := s.Global("x").(lua.LNumber); !ok || v != 2 {
		t.Errorf("x = %v, want 2", s.Global("x"))
	}
}

func TestSandbox(t *testing.T) {
	s, out := newTestState(t, "")

	run(t, s, `print(type(dofile), type(loadfile), type(require), type(io), type(os), type(string.upper))`)
	if got := out.String(); got != "nil\tnil\tnil\tnil\tnil\tfunction\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRunErrors(t *testing.T) {
	s, _ := newTestState(t, "")

	if err := s.Run(context.Background(), `this is not lua`); !errors.Is(err, ErrScript) {
		t.Errorf("syntax error = %v, want ErrScript", err)
	}
	if err := s.Run(context.Background(), `error("boom")`); !errors.Is(err, ErrScript) || !strings.Contains(err.Error(), "boom") {
		t.Errorf("runtime error = %v, want ErrScript with message", err)
	}
}

func TestRunTimeout(t *testing.T) {
	s, _ := newTestState(t, "", WithTimeout(50*time.Millisecond))

	err := s.Run(context.Background(), `while true do end`)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Run() error = %v, want ErrTimeout", err)
	}

	// The state stays usable after a timeout.
	if err := s.Run(context.Background(), `y = 1`); err != nil {
		t.Errorf("Run after timeout error = %v", err)
	}
}

func TestRunFile(t *testing.T) {
	s, out := newTestState(t, "foo\nbar")
	path := filepath.Join(t.TempDir(), "count.lua")
	if err := os.WriteFile(path, []byte(`print(nav.line_count())`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.RunFile(context.Background(), path); err != nil {
		t.Fatalf("RunFile error = %v", err)
	}
	if out.String() != "2\n" {
		t.Errorf("output = %q", out.String())
	}

	if err := s.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("RunFile(missing) error = %v", err)
	}
}

func TestClosed(t *testing.T) {
	s := NewState(WithOutput(&bytes.Buffer{}))
	if err := s.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close error = %v", err)
	}
	if err := s.Run(context.Background(), `x = 1`); !errors.Is(err, ErrClosed) {
		t.Errorf("Run after Close = %v, want ErrClosed", err)
	}
	if err := s.Bind(buffer.NewSnapshot("x")); !errors.Is(err, ErrClosed) {
		t.Errorf("Bind after Close = %v, want ErrClosed", err)
	}
}
