// Package loghome locates the central log home: a shared directory where
// cross-tool telemetry entries are written and local records are kept.
//
// Resolution walks an ordered list of tiers (environment, persisted state,
// marker file, interactive prompt) and stops at the first that succeeds.
package loghome

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
)

const (
	// DefaultEnvVar names the environment variable that pins the log home.
	DefaultEnvVar = "ANTIGRAVITY_LOG_HOME"
	// DefaultMarkerPath is the marker file, relative to a log home.
	DefaultMarkerPath = ".agentic/CENTRAL_LOG_MARKER"
	// DefaultLogsDir is the log entry directory, relative to a log home.
	DefaultLogsDir = ".agentic/logs"
	// DefaultStateFile is the JSON state file holding the persisted home.
	DefaultStateFile = "config.json"
	// DefaultMaxAttempts bounds the interactive prompt loop.
	DefaultMaxAttempts = 5

	// StrategyInteractive is recorded in the state file after a prompt succeeds.
	StrategyInteractive = "interactive_fallback_resolved"
)

// Source records which tier produced a Home.
type Source string

const (
	// SourceEnv is the log home environment variable.
	SourceEnv Source = "env"
	// SourceConfig is the path persisted in the state file.
	SourceConfig Source = "config"
	// SourceMarker is the nearest ancestor holding the marker file.
	SourceMarker Source = "marker"
	// SourceInteractive is a path the user entered at the prompt.
	SourceInteractive Source = "interactive"
	// SourceNone means no tier produced a home.
	SourceNone Source = "none"
)

// Home is a resolved log home.
type Home struct {
	Path   string `json:"path"`
	Source Source `json:"source"`
}

// ErrUnresolvableHome is returned when every tier is exhausted.
var ErrUnresolvableHome = errors.New("central log home could not be resolved")

// Options configures a Resolver. Zero fields take the defaults from
// DefaultOptions.
type Options struct {
	EnvVar     string
	MarkerPath string
	LogsDir    string
	StatePath  string

	Getenv        func(string) string
	Getwd         func() (string, error)
	IsInteractive func() bool
	In            io.Reader
	Out           io.Writer

	MaxAttempts int
	Logger      *slog.Logger
}

// DefaultOptions returns the production options: process environment, real
// working directory, and stdin/stdout prompting when stdin is a terminal.
func DefaultOptions() Options {
	return Options{
		EnvVar:        DefaultEnvVar,
		MarkerPath:    DefaultMarkerPath,
		LogsDir:       DefaultLogsDir,
		StatePath:     DefaultStateFile,
		Getenv:        os.Getenv,
		Getwd:         os.Getwd,
		IsInteractive: stdinIsTerminal,
		In:            os.Stdin,
		Out:           os.Stdout,
		MaxAttempts:   DefaultMaxAttempts,
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.EnvVar == "" {
		o.EnvVar = d.EnvVar
	}
	if o.MarkerPath == "" {
		o.MarkerPath = d.MarkerPath
	}
	if o.LogsDir == "" {
		o.LogsDir = d.LogsDir
	}
	if o.StatePath == "" {
		o.StatePath = d.StatePath
	}
	if o.Getenv == nil {
		o.Getenv = d.Getenv
	}
	if o.Getwd == nil {
		o.Getwd = d.Getwd
	}
	if o.IsInteractive == nil {
		o.IsInteractive = d.IsInteractive
	}
	if o.In == nil {
		o.In = d.In
	}
	if o.Out == nil {
		o.Out = d.Out
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = d.MaxAttempts
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Tier is one resolution strategy. It reports false to let the next tier run.
type Tier interface {
	Name() string
	Resolve(r *Resolver) (Home, bool)
}

// Resolver resolves the log home. It caches nothing; every Resolve call
// re-reads the environment and the filesystem.
type Resolver struct {
	opts  Options
	tiers []Tier
}

// New creates a Resolver with the standard tier order.
func New(opts Options) *Resolver {
	return &Resolver{
		opts:  opts.withDefaults(),
		tiers: []Tier{envTier{}, stateTier{}, markerTier{}, interactiveTier{}},
	}
}

// Options returns the effective options.
func (r *Resolver) Options() Options {
	return r.opts
}

// Tiers returns the tier names in evaluation order.
func (r *Resolver) Tiers() []string {
	names := make([]string, 0, len(r.tiers))
	for _, t := range r.tiers {
		names = append(names, t.Name())
	}
	return names
}

// Resolve runs the tiers in order and returns the first success.
func (r *Resolver) Resolve() (Home, error) {
	for _, t := range r.tiers {
		home, ok := t.Resolve(r)
		if ok {
			r.opts.Logger.Debug("log home resolved", "tier", t.Name(), "path", home.Path)
			return home, nil
		}
		r.opts.Logger.Debug("log home tier skipped", "tier", t.Name())
	}
	return Home{Source: SourceNone}, fmt.Errorf("%w: set %s or run in an interactive terminal", ErrUnresolvableHome, r.opts.EnvVar)
}

// MarkerFile returns the marker path for a home directory.
func (r *Resolver) MarkerFile(home string) string {
	return filepath.Join(home, filepath.FromSlash(r.opts.MarkerPath))
}

// LogsDir returns the log entry directory for a home directory.
func (r *Resolver) LogsDir(home string) string {
	return filepath.Join(home, filepath.FromSlash(r.opts.LogsDir))
}

// EnsureExists creates the logs directory under home and returns it.
func (r *Resolver) EnsureExists(home string) (string, error) {
	dir := r.LogsDir(home)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create logs dir: %w", err)
	}
	return dir, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
