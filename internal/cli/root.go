// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/keeponfirst/localbrain/internal/config"
	"github.com/keeponfirst/localbrain/internal/loghome"
	"github.com/keeponfirst/localbrain/internal/paths"
	"github.com/keeponfirst/localbrain/internal/ui"
)

var (
	// Global flags
	rootFlag   string
	configPath string
	verbose    bool

	// Resolved values
	resolvedRoot string
	settings     *config.Settings
	logger       = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// errSilent signals a non-zero exit whose output was already written.
var errSilent = errors.New("")

// skipSettings lists commands that work on files alone.
var skipSettings = map[string]bool{
	"completion": true,
	"help":       true,
	"version":    true,
	"payload":    true,
	"preview":    true,
	"docs":       true,
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "brain",
	Short: "Local Brain - capture decisions, worklogs and ideas",
	Long: `Local Brain captures decisions, worklogs, ideas and backlog items as Notion
pages, mirrors every record as local markdown and JSON, and keeps a central
log of agent activity.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(os.Stderr, verbose)
		slog.SetDefault(logger)

		if skipSettings[cmd.Name()] {
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		resolvedRoot = paths.InstallRoot(rootFlag)
		s, err := loadSettings(resolvedRoot)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Check config.toml and the .env file")
		}
		settings = s
		ui.ConfigureTheme(s.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(s.UI.CodeTheme)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errSilent) {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Install root holding .env and state files (default $"+paths.RootEnvVar+")")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.toml")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log diagnostics to stderr")
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadSettings loads configuration without validating it. Commands that talk
// to Notion validate through notionClient.
func loadSettings(root string) (*config.Settings, error) {
	lh := loghome.Options{Logger: logger}
	if jsonOutput {
		// stdout carries the JSON envelope; never prompt.
		lh.IsInteractive = func() bool { return false }
	}
	return config.Load(config.LoadOptions{
		Root:           root,
		ConfigPath:     configPath,
		LogHome:        lh,
		SkipValidation: true,
		Logger:         logger,
	})
}

// getSettings returns the loaded settings.
func getSettings() *config.Settings {
	return settings
}
