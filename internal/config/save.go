package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/keeponfirst/localbrain/internal/atomicfile"
)

type persistedConfig struct {
	NotionToken     *string              `toml:"notion_token,omitempty"`
	NotionParent    *string              `toml:"notion_parent,omitempty"`
	NotionMode      *string              `toml:"notion_mode,omitempty"`
	PrimaryLanguage *string              `toml:"primary_language,omitempty"`
	NotionVersion   *string              `toml:"notion_version,omitempty"`
	NotionBaseURL   *string              `toml:"notion_base_url,omitempty"`
	LogHomeEnv      *string              `toml:"log_home_env,omitempty"`
	UI              *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes the config to a specific path atomically. Empty fields are
// omitted so the file stays minimal.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		NotionToken:     nonEmptyPtr(cfg.NotionToken),
		NotionParent:    nonEmptyPtr(cfg.NotionParent),
		NotionMode:      nonEmptyPtr(cfg.NotionMode),
		PrimaryLanguage: nonEmptyPtr(cfg.PrimaryLanguage),
		NotionVersion:   nonEmptyPtr(cfg.NotionVersion),
		NotionBaseURL:   nonEmptyPtr(cfg.NotionBaseURL),
		LogHomeEnv:      nonEmptyPtr(cfg.LogHomeEnv),
	}

	accent := nonEmptyPtr(cfg.UI.Accent)
	codeTheme := nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{
			Accent:    accent,
			CodeTheme: codeTheme,
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
