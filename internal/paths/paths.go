// Package paths centralizes the on-disk layout used by brain:
//   - the install root (holds .env, .local_state.json and config.json)
//   - the brain root (holds records/ and assets/), which is normally the
//     resolved central log home
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// RootEnvVar overrides the install root.
	RootEnvVar = "LOCALBRAIN_ROOT"

	EnvFileName          = ".env"
	LocalStateFileName   = ".local_state.json"
	LogHomeStateFileName = "config.json"
	RecordsDirName       = "records"
	AssetsDirName        = "assets"
	PromptsDirName       = "prompts"
)

// RootLocator finds the install root. Zero fields fall back to the process
// environment, os.Executable and os.Getwd.
type RootLocator struct {
	Getenv     func(string) string
	Executable func() (string, error)
	Getwd      func() (string, error)
}

// InstallRoot returns the install root, in order of preference:
//   - flagValue when non-empty
//   - $LOCALBRAIN_ROOT
//   - the parent of the executable's directory, when it looks like an install
//     (contains .env or config.json)
//   - the working directory
func (l RootLocator) InstallRoot(flagValue string) string {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	executable := l.Executable
	if executable == nil {
		executable = os.Executable
	}
	getwd := l.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}

	if root := strings.TrimSpace(flagValue); root != "" {
		return absOrSelf(root)
	}
	if root := strings.TrimSpace(getenv(RootEnvVar)); root != "" {
		return absOrSelf(root)
	}
	if exe, err := executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		candidate := filepath.Dir(filepath.Dir(exe))
		if looksLikeInstall(candidate) {
			return candidate
		}
	}
	if wd, err := getwd(); err == nil {
		return wd
	}
	return "."
}

// InstallRoot is RootLocator{}.InstallRoot.
func InstallRoot(flagValue string) string {
	return RootLocator{}.InstallRoot(flagValue)
}

func looksLikeInstall(dir string) bool {
	for _, name := range []string{EnvFileName, LogHomeStateFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func absOrSelf(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func EnvFile(root string) string          { return filepath.Join(root, EnvFileName) }
func LocalStateFile(root string) string   { return filepath.Join(root, LocalStateFileName) }
func LogHomeStateFile(root string) string { return filepath.Join(root, LogHomeStateFileName) }
func RecordsDir(brainRoot string) string  { return filepath.Join(brainRoot, RecordsDirName) }
func AssetsDir(brainRoot string) string   { return filepath.Join(brainRoot, AssetsDirName) }

// PromptsDir is where saved prompt assets live.
func PromptsDir(brainRoot string) string {
	return filepath.Join(AssetsDir(brainRoot), PromptsDirName)
}

// IsWithin reports whether target is root or inside it.
func IsWithin(root, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
