package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keeponfirst/localbrain/internal/loghome"
	"github.com/keeponfirst/localbrain/internal/ui"
)

var (
	logStatus string
	logData   string
)

var logCmd = &cobra.Command{
	Use:   "log <intent>",
	Short: "Write an entry to the central log",
	Long: `Writes one JSON entry under <log home>/.agentic/logs/.

Examples:
  brain log refactor_parser
  brain log deploy --status FAILED --data '{"service":"api"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := getSettings()
		intent := strings.TrimSpace(args[0])
		if intent == "" {
			return handleErrorMsg(ErrMissingArgument, "intent is required", "")
		}

		var data any
		if strings.TrimSpace(logData) != "" {
			if err := json.Unmarshal([]byte(logData), &data); err != nil {
				return handleError(ErrInvalidInput, fmt.Errorf("invalid --data: %w", err), "Pass a JSON object, e.g. --data '{\"key\":\"value\"}'")
			}
		}

		if s.LogHomeErr != nil {
			return handleClassified(s.LogHomeErr, ErrLogHomeUnresolved)
		}
		path, ok := loghome.NewLogger(s.Resolver()).WriteEntry(intent, data, logStatus)
		if !ok {
			return handleErrorMsg(ErrFileWriteError, "failed to write central log entry", "Run with --verbose for details")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"path":   path,
				"intent": intent,
				"home":   s.LogHome.Path,
			}, nil)
			return nil
		}
		fmt.Println(ui.Checkf("Logged %s", ui.Bold.Render(intent)))
		fmt.Printf("  %s\n", fileLink(path))
		return nil
	},
}

func init() {
	logCmd.Flags().StringVar(&logStatus, "status", loghome.StatusCompleted, "Task status")
	logCmd.Flags().StringVar(&logData, "data", "", "Event data as JSON")
	rootCmd.AddCommand(logCmd)
}
