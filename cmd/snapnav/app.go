package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/snapnav/internal/config"
	"github.com/dshills/snapnav/internal/engine/buffer"
	"github.com/dshills/snapnav/internal/engine/nav"
	"github.com/dshills/snapnav/internal/logging"
	"github.com/dshills/snapnav/internal/script"
	"github.com/dshills/snapnav/internal/watch"
)

// app executes a single command against one file.
type app struct {
	opts   *options
	cfg    *config.Config
	logger *logging.Logger
	stdout io.Writer
}

func (a *app) run() error {
	log := a.logger.Component("cli")
	log.Debug("starting", "command", a.opts.command, "file", a.opts.file, "version", version)

	buf, err := a.loadBuffer()
	if err != nil {
		return err
	}

	switch a.opts.command {
	case "follow":
		return a.follow(buf)
	case "run":
		if a.opts.scriptPath == "" {
			return fmt.Errorf("%w: run requires -script", errUsage)
		}
		return a.runScript(context.Background(), buf.Snapshot())
	}

	start, err := a.startPoint(buf.Snapshot())
	if err != nil {
		return err
	}

	switch a.opts.command {
	case "lines":
		return a.lines(start)
	case "spans":
		return a.spans(start)
	case "points":
		return a.points(start)
	case "char":
		return a.char(start)
	case "linespan":
		return a.lineSpan(start)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, a.opts.command)
	}
}

// loadBuffer reads the target file into a buffer configured from the
// [buffer] settings.
func (a *app) loadBuffer() (*buffer.Buffer, error) {
	data, err := os.ReadFile(a.opts.file)
	if err != nil {
		return nil, err
	}
	text := string(data)

	bc := a.cfg.Buffer
	le := buffer.DetectLineEnding(text)
	if bc.LineEnding != "" {
		if le, err = buffer.ParseLineEnding(bc.LineEnding); err != nil {
			return nil, err
		}
	}

	bopts := []buffer.Option{
		buffer.WithLineEnding(le),
		buffer.WithHistoryLimit(bc.HistoryLimit),
	}
	if bc.PreserveLineEndings {
		bopts = append(bopts, buffer.WithPreservedLineEndings())
	}

	buf := buffer.NewBufferFromString(text, bopts...)
	a.logger.Component("buffer").Debug("loaded",
		"file", a.opts.file,
		"bytes", buf.Len(),
		"line_ending", buf.LineEnding().String(),
		"id", buf.ID().String(),
	)
	return buf, nil
}

// startPoint resolves -line/-col or -at against snap.
func (a *app) startPoint(snap *buffer.Snapshot) (buffer.Point, error) {
	off := a.opts.at
	if a.opts.line >= 0 {
		var err error
		off, err = snap.PositionToOffset(buffer.Position{Line: a.opts.line, Column: a.opts.col})
		if err != nil {
			return buffer.Point{}, err
		}
	}
	return snap.PointAt(off)
}

// limited applies -limit to seq.
func limited[T any](opts *options, seq iter.Seq[T]) iter.Seq[T] {
	if opts.limit > 0 {
		return nav.Take(seq, opts.limit)
	}
	return seq
}

func (a *app) lines(start buffer.Point) error {
	for line := range limited(a.opts, nav.GetLines(start, a.opts.dir)) {
		fmt.Fprintf(a.stdout, "%d\t%s\n", line.Number(), line.Text())
	}
	return nil
}

func (a *app) spans(start buffer.Point) error {
	for span := range limited(a.opts, nav.GetSpans(a.opts.dir, start)) {
		fmt.Fprintf(a.stdout, "%d\t%d\t%q\n", span.Start().Offset(), span.End().Offset(), span.Text())
	}
	return nil
}

func (a *app) points(start buffer.Point) error {
	seq := nav.GetPointsOnce(a.opts.dir, start)
	if a.opts.limit > 0 {
		seq = nav.Take(nav.GetPoints(a.opts.dir, start), a.opts.limit)
	}
	for p := range seq {
		fmt.Fprintf(a.stdout, "%d\t%q\n", p.Offset(), nav.GetCharOrDefault(p, 0))
	}
	return nil
}

func (a *app) char(start buffer.Point) error {
	cs := nav.GetCharacterSpan(start)
	gs := nav.GetGraphemeSpan(start)
	fmt.Fprintf(a.stdout, "char\t%d\t%d\t%q\n", cs.Start().Offset(), cs.End().Offset(), cs.Text())
	fmt.Fprintf(a.stdout, "grapheme\t%d\t%d\t%q\n", gs.Start().Offset(), gs.End().Offset(), gs.Text())
	return nil
}

func (a *app) lineSpan(start buffer.Point) error {
	get := nav.GetLineRangeSpan
	if a.opts.includeBreak {
		get = nav.GetLineRangeSpanIncludingLineBreak
	}
	span, err := get(start, a.opts.count)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%d\t%d\t%q\n", span.Start().Offset(), span.End().Offset(), span.Text())
	return nil
}

func (a *app) newScriptState() *script.State {
	sc := a.cfg.Script
	return script.NewState(
		script.WithOutput(a.stdout),
		script.WithTimeout(sc.Timeout.Std()),
		script.WithMaxPoints(sc.MaxPoints),
		script.WithLogger(a.logger.Component("script")),
	)
}

func (a *app) runScript(ctx context.Context, snap *buffer.Snapshot) error {
	st := a.newScriptState()
	defer st.Close()

	if err := st.Bind(snap); err != nil {
		return err
	}
	return st.RunFile(ctx, a.opts.scriptPath)
}

// follow reloads the file on every change until interrupted. Each new
// snapshot is reported and, with -script, handed to the script.
func (a *app) follow(buf *buffer.Buffer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := a.logger.Component("watch")

	var st *script.State
	if a.opts.scriptPath != "" {
		st = a.newScriptState()
		defer st.Close()
	}

	onSnapshot := func(snap *buffer.Snapshot) {
		fmt.Fprintf(a.stdout, "version %d\t%d lines\t%d bytes\n", snap.Version(), snap.LineCount(), snap.Len())
		if st == nil {
			return
		}
		if err := st.Bind(snap); err != nil {
			log.Error("binding snapshot", slog.Any("error", err))
			return
		}
		if err := st.RunFile(ctx, a.opts.scriptPath); err != nil {
			log.Error("script failed", "script", a.opts.scriptPath, slog.Any("error", err))
		}
	}

	f, err := watch.NewFollower(a.opts.file, buf,
		watch.WithDebounce(a.cfg.Watch.Debounce.Std()),
		watch.WithLogger(log),
		watch.OnSnapshot(onSnapshot),
	)
	if err != nil {
		return err
	}
	defer f.Close()

	onSnapshot(buf.Snapshot())

	err = f.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("stopped", "reloads", f.Reloads())
		return nil
	}
	return err
}
