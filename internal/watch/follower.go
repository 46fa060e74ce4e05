// Package watch keeps a buffer in sync with a file on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/snapnav/internal/engine/buffer"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 50 * time.Millisecond

// Errors returned by the follower.
var (
	// ErrPathNotExist indicates the followed file does not exist.
	ErrPathNotExist = errors.New("path does not exist")

	// ErrNotRegular indicates the followed path is not a regular file.
	ErrNotRegular = errors.New("not a regular file")

	// ErrClosed indicates the follower was closed.
	ErrClosed = errors.New("follower closed")
)

// Follower reloads a buffer whenever its file changes. The file's directory
// is watched rather than the file, so saves that replace the file by rename
// are seen too.
type Follower struct {
	path     string
	buf      *buffer.Buffer
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger

	onSnapshot func(*buffer.Snapshot)
	onError    func(error)

	mu      sync.Mutex
	closed  bool
	reloads atomic.Int64
}

// Option configures a Follower.
type Option func(*Follower)

// WithDebounce sets how long events must stop arriving before a reload.
func WithDebounce(d time.Duration) Option {
	return func(f *Follower) {
		if d > 0 {
			f.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Follower) {
		if l != nil {
			f.logger = l
		}
	}
}

// OnSnapshot registers fn to receive every snapshot published by a reload.
func OnSnapshot(fn func(*buffer.Snapshot)) Option {
	return func(f *Follower) {
		f.onSnapshot = fn
	}
}

// OnError registers fn to receive watch and read errors. Errors do not stop
// the follower.
func OnError(fn func(error)) Option {
	return func(f *Follower) {
		f.onError = fn
	}
}

// NewFollower starts watching path for changes to load into buf. Events
// are not processed until Run is called.
func NewFollower(path string, buf *buffer.Buffer, opts ...Option) (*Follower, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotExist, path)
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	f := &Follower{
		path:     abs,
		buf:      buf,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	f.watcher = w
	return f, nil
}

// Path returns the absolute path of the followed file.
func (f *Follower) Path() string {
	return f.path
}

// Reloads returns how many times the buffer has been reloaded.
func (f *Follower) Reloads() int64 {
	return f.reloads.Load()
}

// Reload reads the file now and publishes its content as a new snapshot.
func (f *Follower) Reload() (*buffer.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reloading %s: %w", f.path, err)
	}

	snap := f.buf.SetText(string(data))
	f.reloads.Add(1)
	f.logger.Debug("reloaded", "path", f.path, "version", snap.Version(), "bytes", snap.Len())

	if f.onSnapshot != nil {
		f.onSnapshot(snap)
	}
	return snap, nil
}

// Run processes file events until ctx is done or the follower is closed.
// Bursts of events are coalesced into one reload after the debounce period.
func (f *Follower) Run(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	f.mu.Unlock()

	timer := time.NewTimer(f.debounce)
	timer.Stop()
	defer timer.Stop()

	f.logger.Info("following", "path", f.path, "debounce", f.debounce)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-f.watcher.Events:
			if !ok {
				return nil
			}
			if !f.relevant(ev) {
				continue
			}
			f.logger.Debug("file event", "op", ev.Op.String(), "path", ev.Name)
			timer.Reset(f.debounce)

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return nil
			}
			f.report(fmt.Errorf("watching %s: %w", f.path, err))

		case <-timer.C:
			if _, err := f.Reload(); err != nil {
				// A rename-based save removes the file briefly; the
				// following create event triggers another reload.
				f.report(err)
			}
		}
	}
}

func (f *Follower) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != f.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}

func (f *Follower) report(err error) {
	f.logger.Warn("follow error", "path", f.path, "error", err)
	if f.onError != nil {
		f.onError(err)
	}
}

// Close stops watching. A running Run returns.
func (f *Follower) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	return f.watcher.Close()
}
