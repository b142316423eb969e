package loghome

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/keeponfirst/localbrain/internal/state"
)

type envTier struct{}

func (envTier) Name() string { return string(SourceEnv) }

func (envTier) Resolve(r *Resolver) (Home, bool) {
	v := strings.TrimSpace(r.opts.Getenv(r.opts.EnvVar))
	if v == "" {
		return Home{}, false
	}
	abs, err := filepath.Abs(expandHome(v))
	if err != nil {
		abs = v
	}
	return Home{Path: abs, Source: SourceEnv}, true
}

// stateTier reads resolved.central_log_home from the state file. Relative
// entries are taken from the working directory. Entries that no longer exist
// on disk are skipped but left in place.
type stateTier struct{}

func (stateTier) Name() string { return string(SourceConfig) }

func (stateTier) Resolve(r *Resolver) (Home, bool) {
	st := state.Load(r.opts.StatePath)
	p, ok := st.String("resolved", "central_log_home")
	if !ok {
		return Home{}, false
	}
	p = expandHome(p)
	if !filepath.IsAbs(p) {
		wd, err := r.opts.Getwd()
		if err != nil {
			return Home{}, false
		}
		p = filepath.Join(wd, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return Home{}, false
	}
	if !exists(abs) {
		r.opts.Logger.Debug("persisted log home missing", "path", abs)
		return Home{}, false
	}
	return Home{Path: abs, Source: SourceConfig}, true
}

type markerTier struct{}

func (markerTier) Name() string { return string(SourceMarker) }

func (markerTier) Resolve(r *Resolver) (Home, bool) {
	wd, err := r.opts.Getwd()
	if err != nil {
		return Home{}, false
	}
	dir, err := filepath.Abs(wd)
	if err != nil {
		return Home{}, false
	}
	for {
		if exists(r.MarkerFile(dir)) {
			return Home{Path: dir, Source: SourceMarker}, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Home{}, false
		}
		dir = parent
	}
}

type promptState int

const (
	awaitingPath promptState = iota
	awaitingConfirm
)

type interactiveTier struct{}

func (interactiveTier) Name() string { return string(SourceInteractive) }

func (interactiveTier) Resolve(r *Resolver) (Home, bool) {
	if !r.opts.IsInteractive() {
		return Home{}, false
	}
	p := &prompter{r: r, in: bufio.NewReader(r.opts.In), out: r.opts.Out}
	path, ok := p.run()
	if !ok {
		return Home{}, false
	}
	r.accept(path)
	return Home{Path: path, Source: SourceInteractive}, true
}

type prompter struct {
	r   *Resolver
	in  *bufio.Reader
	out io.Writer
}

func (p *prompter) readLine(prompt string) (string, bool) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		fmt.Fprintln(p.out)
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (p *prompter) run() (string, bool) {
	fmt.Fprintln(p.out, "Central Log Home not configured.")
	fmt.Fprintf(p.out, "Enter a directory for cross-tool logs (or set %s).\n", p.r.opts.EnvVar)

	st := awaitingPath
	var candidate string
	for attempt := 0; attempt < p.r.opts.MaxAttempts; attempt++ {
		switch st {
		case awaitingPath:
			line, ok := p.readLine("Log Home Path > ")
			if !ok {
				return "", false
			}
			if line == "" {
				continue
			}
			abs, err := filepath.Abs(expandHome(line))
			if err != nil {
				fmt.Fprintf(p.out, "Invalid path: %v\n", err)
				continue
			}
			if isDir(abs) {
				return abs, true
			}
			if exists(abs) {
				fmt.Fprintf(p.out, "Not a directory: %s\n", abs)
				continue
			}
			candidate = abs
			st = awaitingConfirm
		case awaitingConfirm:
			fmt.Fprintf(p.out, "Path does not exist: %s\n", candidate)
			line, ok := p.readLine("Create it? [y/N] ")
			if !ok {
				return "", false
			}
			st = awaitingPath
			if !isYes(line) {
				continue
			}
			if err := os.MkdirAll(candidate, 0o755); err != nil {
				fmt.Fprintf(p.out, "Failed to create directory: %v\n", err)
				continue
			}
			return candidate, true
		}
	}
	fmt.Fprintln(p.out, "Too many attempts; giving up.")
	return "", false
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

// accept persists an interactively chosen home and drops a marker in it.
func (r *Resolver) accept(path string) {
	err := state.Update(r.opts.StatePath, func(s state.State) {
		s.Set(path, "resolved", "central_log_home")
		s.Set(StrategyInteractive, "central_log", "strategy")
		s.Set("json", "central_log", "format")
	})
	if err != nil {
		r.opts.Logger.Warn("could not persist log home", "path", r.opts.StatePath, "error", err)
	}

	marker := r.MarkerFile(path)
	if err := os.MkdirAll(filepath.Dir(marker), 0o755); err == nil {
		if f, err := os.OpenFile(marker, os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			_ = f.Close()
		}
	}
	fmt.Fprintf(r.opts.Out, "✓ Configured Central Log Home: %s\n", path)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}
