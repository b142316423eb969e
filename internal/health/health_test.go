package health

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/keeponfirst/localbrain/internal/notion"
)

type pingFunc func(ctx context.Context, parent notion.Parent) error

func (f pingFunc) Ping(ctx context.Context, parent notion.Parent) error { return f(ctx, parent) }

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func noHome() (string, error) { return "", errors.New("no home") }

func TestEnvFile(t *testing.T) {
	root := t.TempDir()
	c := &Checker{Root: root}

	if res := c.EnvFile(); res.Status != StatusFail || !strings.Contains(res.Message, "not found") {
		t.Fatalf("missing .env: %+v", res)
	}

	write(t, filepath.Join(root, ".env"), "NOTION_MODE=page\n")
	if res := c.EnvFile(); res.Status != StatusFail || !strings.Contains(res.Message, "NOTION_TOKEN") {
		t.Fatalf("missing token: %+v", res)
	}

	write(t, filepath.Join(root, ".env"), "NOTION_TOKEN=secret_0123456789abcdef\n")
	res := c.EnvFile()
	if res.Status != StatusOK {
		t.Fatalf("valid .env: %+v", res)
	}
	if strings.Contains(res.Message, "abcdef") || !strings.Contains(res.Message, "secret_012...") {
		t.Fatalf("token should be redacted: %q", res.Message)
	}
}

func TestNotionAPI(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		checker Checker
		status  Status
		message string
	}{
		{"no config", Checker{ConfigErr: errors.New("NOTION_TOKEN is required")}, StatusFail, "NOTION_TOKEN is required"},
		{"no parent", Checker{Pinger: pingFunc(func(context.Context, notion.Parent) error { return nil })}, StatusWarn, "NOTION_PARENT"},
		{"ok", Checker{
			Parent: notion.PageParent("p"),
			Pinger: pingFunc(func(context.Context, notion.Parent) error { return nil }),
		}, StatusOK, "reachable"},
		{"unauthorized", Checker{
			Parent: notion.PageParent("p"),
			Pinger: pingFunc(func(context.Context, notion.Parent) error { return &notion.APIError{Status: 401} }),
		}, StatusFail, "invalid or expired"},
		{"not found", Checker{
			Parent: notion.PageParent("p"),
			Pinger: pingFunc(func(context.Context, notion.Parent) error { return &notion.APIError{Status: 404} }),
		}, StatusFail, "not found"},
		{"other status", Checker{
			Parent: notion.PageParent("p"),
			Pinger: pingFunc(func(context.Context, notion.Parent) error { return &notion.APIError{Status: 500, Message: "oops"} }),
		}, StatusFail, "500"},
		{"dns", Checker{
			Parent: notion.PageParent("p"),
			Pinger: pingFunc(func(context.Context, notion.Parent) error {
				return &net.DNSError{Err: "no such host", Name: "api.notion.com"}
			}),
		}, StatusFail, "DNS"},
		{"timeout", Checker{
			Parent: notion.PageParent("p"),
			Pinger: pingFunc(func(context.Context, notion.Parent) error { return context.DeadlineExceeded }),
		}, StatusFail, "timed out"},
	}
	for _, tc := range tests {
		res := tc.checker.NotionAPI(ctx)
		if res.Status != tc.status || !strings.Contains(res.Message, tc.message) {
			t.Fatalf("%s: got %+v, want %s containing %q", tc.name, res, tc.status, tc.message)
		}
	}
}

func TestLocalStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	res := (&Checker{RecordsDir: dir}).LocalStorage()
	if res.Status != StatusOK || res.Path != dir {
		t.Fatalf("res = %+v", res)
	}
	if _, err := os.Stat(filepath.Join(dir, ".write_test")); !os.IsNotExist(err) {
		t.Fatal("probe file should be removed")
	}
}

func TestMCPConfig(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "skill")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	home := t.TempDir()
	c := &Checker{Root: root, HomeDir: func() (string, error) { return home, nil }}

	if res := c.MCPConfig(); res.Status != StatusWarn || len(res.Configs) != 0 {
		t.Fatalf("no configs: %+v", res)
	}

	write(t, filepath.Join(parent, ".mcp.json"), `{"mcpServers": {"github": {}}}`)
	res := c.MCPConfig()
	if res.Status != StatusWarn || len(res.Configs) != 1 {
		t.Fatalf("config without notion: %+v", res)
	}

	write(t, filepath.Join(home, ".cursor", "mcp.json"), `{"servers": {"Notion-MCP": {}}}`)
	res = c.MCPConfig()
	if res.Status != StatusOK || len(res.Configs) != 2 {
		t.Fatalf("config with notion: %+v", res)
	}
}

func TestRunCountsStatuses(t *testing.T) {
	root := t.TempDir()
	c := &Checker{
		Root:       root,
		RecordsDir: filepath.Join(root, "records"),
		Pinger:     pingFunc(func(context.Context, notion.Parent) error { return nil }),
		Parent:     notion.PageParent("p"),
		HomeDir:    noHome,
	}
	r := c.Run(context.Background())
	if len(r.Results) != 4 {
		t.Fatalf("results = %d, want 4", len(r.Results))
	}
	// .env missing fails; MCP config is a warning unless an ancestor of the
	// temp dir happens to carry one.
	if r.Fail != 1 || !r.Failed() {
		t.Fatalf("report = %+v", r)
	}
	if r.OK+r.Warn+r.Fail != 4 {
		t.Fatalf("counts do not add up: %+v", r)
	}
}
