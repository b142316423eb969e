package testutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// binary is the brain executable built once per test process.
var binary struct {
	sync.Mutex
	path string
	err  error
}

// CLIResult is the parsed --json envelope of one brain invocation.
type CLIResult struct {
	OK       bool                   `json:"ok"`
	Data     map[string]interface{} `json:"data,omitempty"`
	Error    *CLIError              `json:"error,omitempty"`
	Warnings []CLIWarning           `json:"warnings,omitempty"`
	Meta     *CLIMeta               `json:"meta,omitempty"`

	RawJSON  string `json:"-"`
	Stderr   string `json:"-"`
	ExitCode int    `json:"-"`
}

// CLIError mirrors the envelope's error object.
type CLIError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Suggestion string                 `json:"suggestion,omitempty"`
}

// CLIWarning mirrors one envelope warning.
type CLIWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CLIMeta mirrors the envelope's meta object.
type CLIMeta struct {
	Count       int   `json:"count,omitempty"`
	QueryTimeMs int64 `json:"query_time_ms,omitempty"`
}

// inheritedConfig is blanked in the child environment so only the test
// brain's .env and config.toml apply.
var inheritedConfig = []string{
	"NOTION_TOKEN", "NOTION_PARENT", "NOTION_MODE", "PRIMARY_LANGUAGE",
	"NOTION_VERSION", "NOTION_BASE_URL", "LOCALBRAIN_ROOT",
}

// BuildCLI compiles ./cmd/brain once and returns the binary path. A binary
// removed by temp cleanup is rebuilt.
func BuildCLI(t *testing.T) string {
	t.Helper()
	binary.Lock()
	defer binary.Unlock()

	if binary.path != "" {
		if _, err := os.Stat(binary.path); err == nil {
			return binary.path
		}
		binary.path, binary.err = "", nil
	}
	if binary.err == nil {
		binary.path, binary.err = build()
	}
	if binary.err != nil {
		t.Fatalf("failed to build brain: %v", binary.err)
	}
	return binary.path
}

func build() (string, error) {
	root, err := moduleRoot()
	if err != nil {
		return "", err
	}
	dir, err := os.MkdirTemp("", "brain-cli-*")
	if err != nil {
		return "", err
	}
	name := "brain"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	out := filepath.Join(dir, name)

	cmd := exec.Command("go", "build", "-o", out, "./cmd/brain")
	cmd.Dir = root
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w\n%s", err, output)
	}
	return out, nil
}

// moduleRoot walks up from the working directory to the go.mod.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found")
		}
		dir = parent
	}
}

// RunCLI runs brain with --json against this brain's install root and log
// home, from inside the log home.
func (b *TestBrain) RunCLI(args ...string) *CLIResult {
	b.t.Helper()
	return b.run("", args...)
}

// RunCLIWithStdin is RunCLI with stdin attached.
func (b *TestBrain) RunCLIWithStdin(stdin string, args ...string) *CLIResult {
	b.t.Helper()
	return b.run(stdin, args...)
}

func (b *TestBrain) run(stdin string, args ...string) *CLIResult {
	b.t.Helper()

	full := append([]string{"--root", b.Root, "--config", filepath.Join(b.Root, "config.toml"), "--json"}, args...)
	cmd := exec.Command(BuildCLI(b.t), full...)
	cmd.Dir = b.Home
	cmd.Env = b.childEnv()
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	res := &CLIResult{RawJSON: string(out), Stderr: stderr.String()}
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	case err != nil:
		res.ExitCode = -1
	}

	if jerr := json.Unmarshal(out, res); jerr != nil {
		res.OK = false
		res.Error = &CLIError{
			Code:    "PARSE_ERROR",
			Message: "brain did not print a JSON envelope: " + jerr.Error(),
			Details: map[string]interface{}{"stdout": string(out), "stderr": res.Stderr},
		}
	}
	return res
}

func (b *TestBrain) childEnv() []string {
	env := os.Environ()
	for _, k := range inheritedConfig {
		env = append(env, k+"=")
	}
	return append(env, "ANTIGRAVITY_LOG_HOME="+b.Home, "HOME="+b.Root)
}
