package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keeponfirst/localbrain/internal/config"
	"github.com/keeponfirst/localbrain/internal/ui"
)

// configField is one config.toml key editable through 'brain config set'.
type configField struct {
	key   string
	flag  string
	usage string
	field func(*config.Config) *string
	check func(string) error
}

var configFields = []configField{
	{"notion_token", "notion-token", "Notion integration token", func(c *config.Config) *string { return &c.NotionToken }, nil},
	{"notion_parent", "notion-parent", "Parent page or database id", func(c *config.Config) *string { return &c.NotionParent }, nil},
	{"notion_mode", "notion-mode", "page or database", func(c *config.Config) *string { return &c.NotionMode }, checkNotionMode},
	{"primary_language", "primary-language", "Primary language code", func(c *config.Config) *string { return &c.PrimaryLanguage }, nil},
	{"notion_version", "notion-version", "Notion-Version header", func(c *config.Config) *string { return &c.NotionVersion }, nil},
	{"notion_base_url", "notion-base-url", "Notion API base URL", func(c *config.Config) *string { return &c.NotionBaseURL }, nil},
	{"log_home_env", "log-home-env", "Environment variable naming the central log home", func(c *config.Config) *string { return &c.LogHomeEnv }, nil},
	{"ui.accent", "ui-accent", "Accent color (ANSI 0-255 or #RRGGBB)", func(c *config.Config) *string { return &c.UI.Accent }, nil},
	{"ui.code_theme", "ui-code-theme", "Markdown code block theme", func(c *config.Config) *string { return &c.UI.CodeTheme }, nil},
}

var (
	configSetValues   = map[string]*string{}
	configUnsetValues = map[string]*bool{}
)

func checkNotionMode(v string) error {
	switch strings.ToLower(v) {
	case config.ModePage, config.ModeDatabase:
		return nil
	}
	return errors.New("notion-mode must be page or database")
}

// loadConfigFile reads config.toml, returning an empty config when the file
// does not exist.
func loadConfigFile(path string) (*config.Config, bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &config.Config{}, false, nil
		}
		return nil, false, err
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func redactToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 10 {
		return strings.Repeat("*", len(token))
	}
	return token[:10] + "..."
}

func configData(s *config.Settings, fileExists bool) map[string]interface{} {
	data := map[string]interface{}{
		"config_path":      s.ConfigPath,
		"config_exists":    fileExists,
		"install_root":     s.Root,
		"env_file":         s.EnvFile,
		"env_file_loaded":  s.EnvFileLoaded,
		"brain_root":       s.BrainRoot,
		"records_dir":      s.RecordsDir(),
		"notion_token":     redactToken(s.NotionToken),
		"notion_parent":    s.NotionParent,
		"notion_mode":      s.NotionMode,
		"primary_language": s.PrimaryLanguage,
		"notion_version":   s.NotionVersion,
		"notion_base_url":  s.NotionBaseURL,
		"auto_init":        s.AutoInit,
		"ui": map[string]interface{}{
			"accent":     s.UI.Accent,
			"code_theme": s.UI.CodeTheme,
		},
	}
	if err := s.Validate(); err != nil {
		data["valid"] = false
		data["validation_error"] = err.Error()
	} else {
		data["valid"] = true
	}
	return data
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	s := getSettings()
	_, exists, err := loadConfigFile(s.ConfigPath)
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}
	data := configData(s, exists)

	if isJSONOutput() {
		outputSuccess(data, nil)
		return nil
	}

	fileNote := ""
	if !exists {
		fileNote = ui.Hint(" (not created; run 'brain config init')")
	}
	envNote := ""
	if !s.EnvFileLoaded {
		envNote = ui.Hint(" (not found)")
	}
	fmt.Printf("config: %s%s\n", s.ConfigPath, fileNote)
	fmt.Printf("env:    %s%s\n", s.EnvFile, envNote)
	fmt.Printf("root:   %s\n", s.Root)
	fmt.Printf("brain:  %s\n", s.BrainRoot)
	fmt.Println()

	table := ui.NewTable(2)
	for _, key := range []string{"notion_token", "notion_parent", "notion_mode", "primary_language", "notion_version", "notion_base_url"} {
		v, _ := data[key].(string)
		table.AddRow(key, orNone(v))
	}
	if s.UI.Accent != "" {
		table.AddRow("ui.accent", s.UI.Accent)
	}
	if s.UI.CodeTheme != "" {
		table.AddRow("ui.code_theme", s.UI.CodeTheme)
	}
	fmt.Print(table.String())

	if s.AutoInit {
		fmt.Println(ui.Hint("notion_parent comes from " + s.LocalStateFile()))
	}
	if msg, ok := data["validation_error"].(string); ok {
		fmt.Println()
		fmt.Println(ui.Warning(msg))
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and edit brain configuration",
	Long: `Shows the effective configuration and where each layer comes from.

Values are read from the environment, then the install root's .env file,
then config.toml. Use the subcommands to edit config.toml.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a commented config.toml if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		createdPath, created, err := config.CreateDefault(getSettings().ConfigPath)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": createdPath,
				"created":     created,
			}, nil)
			return nil
		}

		if created {
			fmt.Println(ui.Checkf("Created config: %s", createdPath))
		} else {
			fmt.Printf("Config already exists: %s\n", createdPath)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set one or more config.toml fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := getSettings().ConfigPath
		cfg, _, err := loadConfigFile(path)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		var changed []string
		for _, f := range configFields {
			if !cmd.Flags().Changed(f.flag) {
				continue
			}
			value := strings.TrimSpace(*configSetValues[f.flag])
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, f.flag+" cannot be empty", "Use 'brain config unset --"+f.flag+"' to clear it")
			}
			if f.check != nil {
				if err := f.check(value); err != nil {
					return handleError(ErrInvalidInput, err, "")
				}
			}
			*f.field(cfg) = value
			changed = append(changed, f.key)
		}
		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument, "no fields provided", "Run 'brain config set --help' to see settable fields")
		}

		return saveConfigChanges(path, cfg, changed)
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Clear one or more config.toml fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := getSettings().ConfigPath
		cfg, exists, err := loadConfigFile(path)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if !exists {
			return handleErrorMsg(ErrFileNotFound, "config file not found: "+path, "Run 'brain config init' first")
		}

		var changed []string
		for _, f := range configFields {
			if *configUnsetValues[f.flag] {
				*f.field(cfg) = ""
				changed = append(changed, f.key)
			}
		}
		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument, "no fields provided", "Run 'brain config unset --help' to see fields")
		}

		return saveConfigChanges(path, cfg, changed)
	},
}

func saveConfigChanges(path string, cfg *config.Config, changed []string) error {
	if err := config.SaveTo(path, cfg); err != nil {
		return handleError(ErrFileWriteError, err, "")
	}
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"config_path": path,
			"changed":     changed,
		}, nil)
		return nil
	}
	fmt.Println(ui.Checkf("Updated config: %s", path))
	fmt.Printf("changed: %s\n", strings.Join(changed, ", "))
	return nil
}

func init() {
	for _, f := range configFields {
		configSetValues[f.flag] = configSetCmd.Flags().String(f.flag, "", f.usage)
		configUnsetValues[f.flag] = configUnsetCmd.Flags().Bool(f.flag, false, "Clear "+f.key)
	}
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}
