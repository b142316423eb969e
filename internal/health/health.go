// Package health runs the diagnostic checks behind "brain health".
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/keeponfirst/localbrain/internal/notion"
	"github.com/keeponfirst/localbrain/internal/paths"
)

type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Result is the outcome of one check.
type Result struct {
	Name      string   `json:"name"`
	Status    Status   `json:"status"`
	Message   string   `json:"message"`
	Hint      string   `json:"hint,omitempty"`
	Path      string   `json:"path,omitempty"`
	Configs   []string `json:"configs,omitempty"`
	LatencyMS int64    `json:"latency_ms,omitempty"`
}

// Report is the outcome of every check.
type Report struct {
	Results []Result `json:"results"`
	OK      int      `json:"ok"`
	Warn    int      `json:"warn"`
	Fail    int      `json:"fail"`
}

// Failed reports whether any check failed.
func (r Report) Failed() bool { return r.Fail > 0 }

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case StatusOK:
		r.OK++
	case StatusWarn:
		r.Warn++
	default:
		r.Fail++
	}
}

// Pinger verifies Notion connectivity.
type Pinger interface {
	Ping(ctx context.Context, parent notion.Parent) error
}

// Checker holds what the checks inspect. Pinger is nil when configuration
// could not be loaded; ConfigErr then explains why.
type Checker struct {
	Root       string
	RecordsDir string
	Pinger     Pinger
	Parent     notion.Parent
	ConfigErr  error
	Timeout    time.Duration

	// HomeDir locates IDE config files; nil means os.UserHomeDir.
	HomeDir func() (string, error)
}

// MCPConfigNames are searched for upward from the install root.
var MCPConfigNames = []string{".mcp.json", "mcp_config.json"}

// Run executes every check in order.
func (c *Checker) Run(ctx context.Context) Report {
	var r Report
	r.add(c.EnvFile())
	r.add(c.NotionAPI(ctx))
	r.add(c.LocalStorage())
	r.add(c.MCPConfig())
	return r
}

// EnvFile checks that .env exists and sets NOTION_TOKEN.
func (c *Checker) EnvFile() Result {
	res := Result{Name: "Environment (.env)"}
	envPath := paths.EnvFile(c.Root)
	vars, err := godotenv.Read(envPath)
	if errors.Is(err, os.ErrNotExist) {
		res.Status = StatusFail
		res.Message = ".env file not found"
		res.Hint = fmt.Sprintf("Copy the example: cp %s.example %s", envPath, envPath)
		return res
	}
	if err != nil {
		res.Status = StatusFail
		res.Message = fmt.Sprintf("could not read .env: %v", err)
		return res
	}
	token := vars["NOTION_TOKEN"]
	if token == "" {
		res.Status = StatusFail
		res.Message = "NOTION_TOKEN is not set"
		res.Hint = "Create an integration at notion.so/my-integrations and copy its token"
		return res
	}
	res.Status = StatusOK
	res.Message = fmt.Sprintf(".env looks good (NOTION_TOKEN: %s...)", redact(token))
	res.Path = envPath
	return res
}

func redact(token string) string {
	if len(token) > 10 {
		return token[:10]
	}
	return token
}

// NotionAPI checks that the configured parent is reachable.
func (c *Checker) NotionAPI(ctx context.Context) Result {
	res := Result{Name: "Notion API"}
	if c.Pinger == nil {
		res.Status = StatusFail
		res.Message = "configuration could not be loaded"
		if c.ConfigErr != nil {
			res.Message = c.ConfigErr.Error()
		}
		res.Hint = "Run 'brain config show' to inspect configuration"
		return res
	}
	if c.Parent.ID == "" {
		res.Status = StatusWarn
		res.Message = "NOTION_PARENT is not set"
		res.Hint = "Run 'brain init <page-url>' to create a root page"
		return res
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := c.Pinger.Ping(ctx, c.Parent)
	latency := time.Since(start)
	if err == nil {
		res.Status = StatusOK
		res.Message = fmt.Sprintf("Notion API reachable (%dms)", latency.Milliseconds())
		res.LatencyMS = latency.Milliseconds()
		return res
	}

	res.Status = StatusFail
	var apiErr *notion.APIError
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &apiErr) && apiErr.Status == 401:
		res.Message = "token is invalid or expired"
		res.Hint = "Check the token at notion.so/my-integrations"
	case errors.As(err, &apiErr) && apiErr.Status == 404:
		res.Message = "parent page not found"
		res.Hint = "Check NOTION_PARENT and that the integration has access to it"
	case errors.As(err, &apiErr):
		res.Message = fmt.Sprintf("unexpected API response: %d", apiErr.Status)
		res.Hint = truncate(apiErr.Message, 100)
	case errors.As(err, &dnsErr):
		res.Message = "DNS resolution failed"
		res.Hint = "Check your network connection (try: ping api.notion.com)"
	case errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err):
		res.Message = "connection timed out"
		res.Hint = "Check your network connection or firewall"
	default:
		res.Message = err.Error()
		res.Hint = "Check your network connection"
	}
	return res
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// LocalStorage checks that the records directory is writable.
func (c *Checker) LocalStorage() Result {
	res := Result{Name: "Local storage", Path: c.RecordsDir}
	if err := os.MkdirAll(c.RecordsDir, 0o755); err != nil {
		res.Status = StatusFail
		res.Message = fmt.Sprintf("cannot create %s: %v", c.RecordsDir, err)
		res.Hint = "Check directory permissions or move the central log home"
		return res
	}
	probe := filepath.Join(c.RecordsDir, ".write_test")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		res.Status = StatusFail
		res.Message = fmt.Sprintf("no write permission: %s", c.RecordsDir)
		res.Hint = "Check directory permissions or move the central log home"
		return res
	}
	_ = os.Remove(probe)
	res.Status = StatusOK
	res.Message = "local storage is writable"
	return res
}

// MCPConfig looks for MCP client configuration that registers a Notion
// server.
func (c *Checker) MCPConfig() Result {
	res := Result{Name: "MCP config"}
	found := c.findMCPConfigs()
	if len(found) == 0 {
		res.Status = StatusWarn
		res.Message = "no MCP config file found"
		res.Hint = "MCP is optional; configure notion-mcp-server to enable agent search"
		return res
	}
	res.Configs = found
	for _, p := range found {
		if hasNotionServer(p) {
			res.Status = StatusOK
			res.Message = "MCP configured (notion server present)"
			return res
		}
	}
	res.Status = StatusWarn
	res.Message = "MCP config found but no notion server is configured"
	res.Hint = "Add notion-mcp-server to enable search and recall from your agent"
	return res
}

func (c *Checker) findMCPConfigs() []string {
	var found []string
	seen := map[string]bool{}
	add := func(p string) {
		if seen[p] {
			return
		}
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			seen[p] = true
			found = append(found, p)
		}
	}

	dir, err := filepath.Abs(c.Root)
	if err == nil {
		for {
			for _, name := range MCPConfigNames {
				add(filepath.Join(dir, name))
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	homeDir := c.HomeDir
	if homeDir == nil {
		homeDir = os.UserHomeDir
	}
	if home, err := homeDir(); err == nil {
		add(filepath.Join(home, ".gemini", "antigravity", "mcp_config.json"))
		add(filepath.Join(home, ".cursor", "mcp.json"))
		add(filepath.Join(home, ".claude", "mcp.json"))
	}
	return found
}

func hasNotionServer(path string) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var cfg struct {
		MCPServers map[string]json.RawMessage `json:"mcpServers"`
		Servers    map[string]json.RawMessage `json:"servers"`
	}
	if json.Unmarshal(raw, &cfg) != nil {
		return false
	}
	servers := cfg.MCPServers
	if servers == nil {
		servers = cfg.Servers
	}
	for name := range servers {
		if strings.Contains(strings.ToLower(name), "notion") {
			return true
		}
	}
	return false
}
