// Package config handles brain configuration.
//
// Values come from three layers, highest precedence first: the process
// environment, the install root's .env file, and the optional global
// config.toml. Runtime settings (brain root, root page) are derived on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Notion modes.
const (
	ModePage     = "page"
	ModeDatabase = "database"
)

const (
	DefaultNotionVersion   = "2022-06-28"
	DefaultNotionBaseURL   = "https://api.notion.com"
	DefaultPrimaryLanguage = "en"
)

// ErrTokenMissing is returned when no Notion token is configured.
var ErrTokenMissing = errors.New("NOTION_TOKEN is required; set it in .env or config.toml")

// Config is the user-facing configuration.
type Config struct {
	NotionToken     string `toml:"notion_token" json:"-"`
	NotionParent    string `toml:"notion_parent" json:"notion_parent,omitempty"`
	NotionMode      string `toml:"notion_mode" json:"notion_mode,omitempty"`
	PrimaryLanguage string `toml:"primary_language" json:"primary_language,omitempty"`
	NotionVersion   string `toml:"notion_version" json:"notion_version,omitempty"`
	NotionBaseURL   string `toml:"notion_base_url" json:"notion_base_url,omitempty"`

	// LogHomeEnv overrides the environment variable consulted for the
	// central log home.
	LogHomeEnv string `toml:"log_home_env" json:"log_home_env,omitempty"`

	UI UIConfig `toml:"ui" json:"ui,omitempty"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent" json:"accent,omitempty"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown code blocks.
	CodeTheme string `toml:"code_theme" json:"code_theme,omitempty"`
}

// envKeys maps environment variables onto Config fields.
var envKeys = []struct {
	name  string
	field func(*Config) *string
}{
	{"NOTION_TOKEN", func(c *Config) *string { return &c.NotionToken }},
	{"NOTION_PARENT", func(c *Config) *string { return &c.NotionParent }},
	{"NOTION_MODE", func(c *Config) *string { return &c.NotionMode }},
	{"PRIMARY_LANGUAGE", func(c *Config) *string { return &c.PrimaryLanguage }},
	{"NOTION_VERSION", func(c *Config) *string { return &c.NotionVersion }},
	{"NOTION_BASE_URL", func(c *Config) *string { return &c.NotionBaseURL }},
}

// EnvKeys returns the environment variable names brain reads.
func EnvKeys() []string {
	out := make([]string, 0, len(envKeys))
	for _, k := range envKeys {
		out = append(out, k.name)
	}
	return out
}

// ApplyEnv overrides fields with non-empty values returned by lookup.
func (c *Config) ApplyEnv(lookup func(string) string) {
	for _, k := range envKeys {
		if v := strings.TrimSpace(lookup(k.name)); v != "" {
			*k.field(c) = v
		}
	}
}

// ApplyDefaults fills unset fields and normalizes case.
func (c *Config) ApplyDefaults() {
	c.NotionMode = strings.ToLower(strings.TrimSpace(c.NotionMode))
	if c.NotionMode == "" {
		c.NotionMode = ModePage
	}
	if c.PrimaryLanguage == "" {
		c.PrimaryLanguage = DefaultPrimaryLanguage
	}
	if c.NotionVersion == "" {
		c.NotionVersion = DefaultNotionVersion
	}
	if c.NotionBaseURL == "" {
		c.NotionBaseURL = DefaultNotionBaseURL
	}
	c.NotionBaseURL = strings.TrimRight(c.NotionBaseURL, "/")
	c.NotionParent = strings.TrimSpace(c.NotionParent)
}

// Validate checks the configuration. A missing token yields ErrTokenMissing.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.NotionToken) == "" {
		return ErrTokenMissing
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.NotionMode, validation.Required, validation.In(ModePage, ModeDatabase)),
		validation.Field(&c.PrimaryLanguage, validation.Required, validation.Length(2, 16)),
		validation.Field(&c.NotionVersion, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&c.NotionBaseURL, validation.Required, validation.By(httpURL)),
	)
}

func httpURL(value any) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return errors.New("must start with http:// or https://")
	}
	return nil
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/localbrain/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "localbrain", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "localbrain", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// CreateDefault creates a commented default config file at path if it
// doesn't exist. An empty path means DefaultPath().
func CreateDefault(path string) (string, bool, error) {
	if path == "" {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# Local Brain configuration
#
# Every key can also be set through the environment (NOTION_TOKEN, ...) or the
# .env file in the install root. Environment values win.

# Notion integration token.
# notion_token = "secret_..."

# Parent page or database id. Leave unset and run "brain init" to create a
# root page instead.
# notion_parent = ""

# page | database
# notion_mode = "page"

# primary_language = "en"
# notion_version = "2022-06-28"

# Optional UI accent color (ANSI 0-255 or #RRGGBB).
# [ui]
# accent = "141"
# code_theme = "monokai"
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return path, true, nil
}
