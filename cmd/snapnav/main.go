// Package main is the entry point for the snapnav command.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/snapnav/internal/config"
	"github.com/dshills/snapnav/internal/engine/nav"
	"github.com/dshills/snapnav/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage marks errors caused by bad command line input.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	configPath    string
	at            int
	line          int
	col           int
	dir           nav.SearchPath
	count         int
	limit         int
	includeBreak  bool
	scriptPath    string
	logLevel      string
	command       string
	file          string
	showVersion   bool
	showHelp      bool
	usage         func()
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.showHelp {
		opts.usage()
		return 0
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "snapnav %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}
	if opts.command == "" || opts.file == "" {
		opts.usage()
		return 2
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: loading config: %v\n", err)
		return 1
	}

	var logger *logging.Logger
	if cfg.Logging.File != "" {
		logger, err = logging.New(cfg.Logging)
	} else {
		logger, err = logging.NewWithWriter(cfg.Logging, stderr)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize logging: %v\n", err)
		return 1
	}
	defer logger.Close()

	app := &app{
		opts:   opts,
		cfg:    cfg,
		logger: logger,
		stdout: stdout,
	}
	if err := app.run(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

// loadConfig reads the -config file, or snapnav.toml when present, and
// applies command line overrides.
func loadConfig(opts *options) (*config.Config, error) {
	path := opts.configPath
	var copts []config.Option
	if path != "" {
		copts = append(copts, config.WithRequiredFile())
	} else {
		path = config.DefaultFile
	}

	cfg, err := config.Load(path, copts...)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		if err := cfg.Set("logging.level", opts.logLevel); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("snapnav", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var dir string
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.IntVar(&opts.at, "at", 0, "Byte offset of the starting point")
	fs.IntVar(&opts.line, "line", -1, "Line number of the starting point (0-based, overrides -at)")
	fs.IntVar(&opts.col, "col", 0, "Byte column of the starting point, used with -line")
	fs.StringVar(&dir, "dir", "forward", "Traversal direction (forward, backward)")
	fs.IntVar(&opts.count, "count", 1, "Number of lines for linespan")
	fs.IntVar(&opts.limit, "limit", 0, "Maximum number of results (0 = no limit)")
	fs.BoolVar(&opts.includeBreak, "include-break", false, "Include the final line break in linespan")
	fs.StringVar(&opts.scriptPath, "script", "", "Lua script for run and follow")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&opts.showHelp, "help", false, "Show help message")
	fs.BoolVar(&opts.showHelp, "h", false, "Show help message (shorthand)")

	opts.usage = func() {
		w := fs.Output()
		fmt.Fprintf(w, "snapnav - navigate text snapshots\n\n")
		fmt.Fprintf(w, "Usage: snapnav [options] <command> <file>\n\n")
		fmt.Fprintf(w, "Commands:\n")
		fmt.Fprintf(w, "  lines      Lines from the starting point\n")
		fmt.Fprintf(w, "  spans      Per-line spans from the starting point\n")
		fmt.Fprintf(w, "  points     Character points, wrapping around the buffer\n")
		fmt.Fprintf(w, "  char       Character and grapheme span at the starting point\n")
		fmt.Fprintf(w, "  linespan   Span of -count lines from the starting point\n")
		fmt.Fprintf(w, "  run        Run a Lua script (-script) against the file\n")
		fmt.Fprintf(w, "  follow     Reload the file on change, re-running -script if given\n")
		fmt.Fprintf(w, "\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(w, "\nExamples:\n")
		fmt.Fprintf(w, "  snapnav -line 2 lines notes.txt\n")
		fmt.Fprintf(w, "  snapnav -at 10 -dir backward -limit 5 points notes.txt\n")
		fmt.Fprintf(w, "  snapnav -script words.lua run notes.txt\n")
	}
	fs.Usage = opts.usage

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	path, err := nav.ParseSearchPath(dir)
	if err != nil {
		return nil, err
	}
	opts.dir = path

	if opts.limit < 0 {
		return nil, fmt.Errorf("invalid -limit %d", opts.limit)
	}

	rest := fs.Args()
	if len(rest) > 0 {
		opts.command = strings.ToLower(rest[0])
	}
	if len(rest) > 1 {
		opts.file = rest[1]
	}
	if len(rest) > 2 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(rest[2:], " "))
	}
	return opts, nil
}
