package loghome

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/keeponfirst/localbrain/internal/atomicfile"
	"github.com/keeponfirst/localbrain/internal/slugs"
)

const (
	// LogVersion is the entry schema version.
	LogVersion = "1.0"
	// DefaultTool identifies this tool in entry context.
	DefaultTool = "keeponfirst-local-brain-skill"
	// StatusCompleted is used when WriteEntry gets an empty status.
	StatusCompleted = "COMPLETED"

	entryTimeLayout = "20060102T150405"
)

// Entry is one central log file.
type Entry struct {
	Meta    EntryMeta    `json:"meta"`
	Context EntryContext `json:"context"`
	Task    EntryTask    `json:"task"`
	Data    any          `json:"data"`
}

// EntryMeta identifies an entry and the log format version.
type EntryMeta struct {
	Timestamp  string `json:"timestamp"`
	LogVersion string `json:"log_version"`
	EventID    string `json:"event_id"`
}

// EntryContext records where the command ran.
type EntryContext struct {
	WorkspaceCWD string `json:"workspace_cwd"`
	RepoRoot     string `json:"repo_root"`
	Tool         string `json:"tool"`
}

// EntryTask names the intent and its outcome.
type EntryTask struct {
	Intent string `json:"intent"`
	Status string `json:"status"`
}

// Logger writes central log entries into the resolved home.
type Logger struct {
	resolver *Resolver
	Tool     string
	Now      func() time.Time
	NewID    func() string
}

// NewLogger returns a Logger bound to r.
func NewLogger(r *Resolver) *Logger {
	return &Logger{
		resolver: r,
		Tool:     DefaultTool,
		Now:      time.Now,
		NewID:    func() string { return uuid.NewString() },
	}
}

// WriteEntry resolves the home and writes one entry file. It never fails the
// caller: problems are logged and reported as ("", false).
func (l *Logger) WriteEntry(intent string, data any, status string) (string, bool) {
	log := l.resolver.opts.Logger
	path, err := l.writeEntry(intent, data, status)
	if err != nil {
		log.Warn("central log entry not written", "intent", intent, "error", err)
		return "", false
	}
	log.Debug("central log entry written", "path", path)
	return path, true
}

func (l *Logger) writeEntry(intent string, data any, status string) (string, error) {
	home, err := l.resolver.Resolve()
	if err != nil {
		return "", err
	}
	dir, err := l.resolver.EnsureExists(home.Path)
	if err != nil {
		return "", err
	}
	if status == "" {
		status = StatusCompleted
	}
	if data == nil {
		data = map[string]any{}
	}

	now := l.Now()
	cwd, err := l.resolver.opts.Getwd()
	if err != nil {
		cwd, _ = os.Getwd()
	}
	entry := Entry{
		Meta: EntryMeta{
			Timestamp:  now.Format(time.RFC3339),
			LogVersion: LogVersion,
			EventID:    l.NewID(),
		},
		Context: EntryContext{
			WorkspaceCWD: cwd,
			RepoRoot:     home.Path,
			Tool:         l.Tool,
		},
		Task: EntryTask{Intent: intent, Status: status},
		Data: data,
	}

	name := fmt.Sprintf("%s-%s.json", now.Format(entryTimeLayout), slugs.Intent(intent, slugs.MaxLength))
	path := filepath.Join(dir, name)
	if err := atomicfile.WriteJSON(path, entry, 0o644); err != nil {
		return "", fmt.Errorf("write entry: %w", err)
	}
	return path, nil
}
