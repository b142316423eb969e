package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInstallRootPrecedence(t *testing.T) {
	wd := t.TempDir()
	envRoot := t.TempDir()
	flagRoot := t.TempDir()

	install := t.TempDir()
	if err := os.WriteFile(filepath.Join(install, EnvFileName), []byte("NOTION_TOKEN=x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	exe := filepath.Join(install, "bin", "brain")

	env := map[string]string{}
	l := RootLocator{
		Getenv:     func(k string) string { return env[k] },
		Executable: func() (string, error) { return exe, nil },
		Getwd:      func() (string, error) { return wd, nil },
	}

	if got := l.InstallRoot(flagRoot); got != flagRoot {
		t.Fatalf("flag: InstallRoot = %q, want %q", got, flagRoot)
	}

	env[RootEnvVar] = envRoot
	if got := l.InstallRoot(""); got != envRoot {
		t.Fatalf("env: InstallRoot = %q, want %q", got, envRoot)
	}

	delete(env, RootEnvVar)
	if got := l.InstallRoot(""); got != install {
		t.Fatalf("executable: InstallRoot = %q, want %q", got, install)
	}

	l.Executable = func() (string, error) { return "", errors.New("no executable") }
	if got := l.InstallRoot(""); got != wd {
		t.Fatalf("cwd: InstallRoot = %q, want %q", got, wd)
	}
}

func TestInstallRootSkipsBareExecutableDir(t *testing.T) {
	wd := t.TempDir()
	bare := t.TempDir()
	l := RootLocator{
		Getenv:     func(string) string { return "" },
		Executable: func() (string, error) { return filepath.Join(bare, "bin", "brain"), nil },
		Getwd:      func() (string, error) { return wd, nil },
	}
	if got := l.InstallRoot(""); got != wd {
		t.Fatalf("InstallRoot = %q, want %q", got, wd)
	}
}

func TestLayout(t *testing.T) {
	root := filepath.FromSlash("/srv/brain")
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"env", EnvFile(root), "/srv/brain/.env"},
		{"local state", LocalStateFile(root), "/srv/brain/.local_state.json"},
		{"log home state", LogHomeStateFile(root), "/srv/brain/config.json"},
		{"records", RecordsDir(root), "/srv/brain/records"},
		{"assets", AssetsDir(root), "/srv/brain/assets"},
		{"prompts", PromptsDir(root), "/srv/brain/assets/prompts"},
	}
	for _, tc := range tests {
		if tc.got != filepath.FromSlash(tc.want) {
			t.Fatalf("%s = %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestIsWithin(t *testing.T) {
	tests := []struct {
		root, target string
		want         bool
	}{
		{"/a", "/a", true},
		{"/a", "/a/b/c", true},
		{"/a", "/ab", false},
		{"/a/b", "/a", false},
		{"/a", "/a/..b", true},
	}
	for _, tc := range tests {
		if got := IsWithin(filepath.FromSlash(tc.root), filepath.FromSlash(tc.target)); got != tc.want {
			t.Fatalf("IsWithin(%q, %q) = %v, want %v", tc.root, tc.target, got, tc.want)
		}
	}
}
