// Package testutil provides reusable test utilities for brain integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// TestBrain is a temporary install root plus a central log home.
type TestBrain struct {
	// Root holds .env, the JSON state files and config.toml.
	Root string
	// Home is the central log home; records/ and .agentic/logs/ live here.
	Home string

	t     *testing.T
	env   map[string]string
	files map[string]string
}

// NewTestBrain creates a new test brain builder.
// Call Build() to create the directories.
func NewTestBrain(t *testing.T) *TestBrain {
	t.Helper()
	return &TestBrain{
		t:     t,
		env:   make(map[string]string),
		files: make(map[string]string),
	}
}

// WithToken writes NOTION_TOKEN to the install root's .env.
func (b *TestBrain) WithToken(token string) *TestBrain {
	return b.WithEnv("NOTION_TOKEN", token)
}

// WithParent writes NOTION_PARENT to .env.
func (b *TestBrain) WithParent(id string) *TestBrain {
	return b.WithEnv("NOTION_PARENT", id)
}

// WithEnv adds a key to the install root's .env.
func (b *TestBrain) WithEnv(key, value string) *TestBrain {
	b.env[key] = value
	return b
}

// WithFile adds a file relative to the install root.
func (b *TestBrain) WithFile(path, content string) *TestBrain {
	b.files[path] = content
	return b
}

// Build creates the install root, the log home and all configured files.
func (b *TestBrain) Build() *TestBrain {
	b.t.Helper()

	b.Root = b.t.TempDir()
	b.Home = b.t.TempDir()

	if len(b.env) > 0 {
		keys := make([]string, 0, len(b.env))
		for k := range b.env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var sb strings.Builder
		for _, k := range keys {
			sb.WriteString(k + "=" + b.env[k] + "\n")
		}
		b.writeFile(filepath.Join(b.Root, ".env"), sb.String())
	}
	for path, content := range b.files {
		b.writeFile(filepath.Join(b.Root, path), content)
	}
	return b
}

func (b *TestBrain) writeFile(fullPath, content string) {
	b.t.Helper()
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		b.t.Fatalf("failed to create directory for %s: %v", fullPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		b.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file by absolute path, or relative to Home.
func (b *TestBrain) ReadFile(path string) string {
	b.t.Helper()
	if !filepath.IsAbs(path) {
		path = filepath.Join(b.Home, path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		b.t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(content)
}

// Glob lists files relative to Home that match pattern.
func (b *TestBrain) Glob(pattern string) []string {
	b.t.Helper()
	matches, err := filepath.Glob(filepath.Join(b.Home, pattern))
	if err != nil {
		b.t.Fatalf("bad glob %q: %v", pattern, err)
	}
	return matches
}

// LogEntries returns the central log entry files.
func (b *TestBrain) LogEntries() []string {
	b.t.Helper()
	return b.Glob(filepath.Join(".agentic", "logs", "*.json"))
}
