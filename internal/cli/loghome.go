package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/keeponfirst/localbrain/internal/paths"
	"github.com/keeponfirst/localbrain/internal/ui"
)

// logHomeReport is the output of 'brain loghome'.
type logHomeReport struct {
	CWD         string   `json:"cwd"`
	TTY         bool     `json:"tty"`
	EnvVar      string   `json:"env_var"`
	EnvValue    string   `json:"env_value"`
	InstallRoot string   `json:"install_root"`
	StateFile   string   `json:"state_file"`
	Tiers       []string `json:"tiers"`
	Resolved    bool     `json:"resolved"`
	Home        string   `json:"home,omitempty"`
	Source      string   `json:"source,omitempty"`
	Error       string   `json:"error,omitempty"`
	MarkerInCWD bool     `json:"marker_in_cwd"`
	MarkerFile  string   `json:"marker_file,omitempty"`
	LogsDir     string   `json:"logs_dir,omitempty"`
	CWDInHome   bool     `json:"cwd_in_home"`
	RecordsDir  string   `json:"records_dir"`
}

var logHomeCmd = &cobra.Command{
	Use:   "loghome",
	Short: "Show how the central log home is resolved",
	Long: `Explains central log home resolution: the environment variable, the
persisted choice in config.json, the nearest .agentic/CENTRAL_LOG_MARKER above
the working directory, and the interactive prompt, in that order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := getSettings()
		r := s.Resolver()
		opts := r.Options()

		cwd, _ := os.Getwd()
		report := logHomeReport{
			CWD:         cwd,
			TTY:         isatty.IsTerminal(os.Stdin.Fd()),
			EnvVar:      opts.EnvVar,
			EnvValue:    opts.Getenv(opts.EnvVar),
			InstallRoot: s.Root,
			StateFile:   opts.StatePath,
			Tiers:       r.Tiers(),
			RecordsDir:  s.RecordsDir(),
		}
		if cwd != "" {
			_, err := os.Stat(filepath.Join(cwd, filepath.FromSlash(opts.MarkerPath)))
			report.MarkerInCWD = err == nil
		}
		if s.LogHomeErr != nil {
			report.Error = s.LogHomeErr.Error()
		} else {
			report.Resolved = true
			report.Home = s.LogHome.Path
			report.Source = string(s.LogHome.Source)
			report.MarkerFile = r.MarkerFile(s.LogHome.Path)
			report.LogsDir = r.LogsDir(s.LogHome.Path)
			report.CWDInHome = cwd != "" && paths.IsWithin(s.LogHome.Path, cwd)
		}

		if isJSONOutput() {
			outputSuccess(report, nil)
			return nil
		}

		table := ui.NewTable(2)
		table.AddRow("cwd", report.CWD)
		table.AddRow("tty", fmt.Sprintf("%t", report.TTY))
		table.AddRow("env "+report.EnvVar, orNone(report.EnvValue))
		table.AddRow("install root", report.InstallRoot)
		table.AddRow("state file", report.StateFile)
		table.AddRow("marker in cwd", fmt.Sprintf("%t", report.MarkerInCWD))
		fmt.Print(table.String())
		fmt.Println()

		if !report.Resolved {
			fmt.Println(ui.Errorf("Resolution failed: %s", report.Error))
			fmt.Println(ui.Hint(fmt.Sprintf("  records fall back to %s", report.RecordsDir)))
			return nil
		}
		fmt.Println(ui.Checkf("Resolved home: %s %s", ui.FilePath(report.Home), ui.Hint("("+report.Source+")")))
		fmt.Printf("  logs:    %s\n", fileLink(report.LogsDir))
		fmt.Printf("  records: %s\n", fileLink(report.RecordsDir))
		if report.CWDInHome {
			fmt.Println(ui.Hint("  the working directory is inside the log home"))
		}
		return nil
	},
}

func orNone(s string) string {
	if s == "" {
		return ui.Hint("(not set)")
	}
	return s
}

func init() {
	rootCmd.AddCommand(logHomeCmd)
}
