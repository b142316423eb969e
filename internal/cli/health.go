package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/keeponfirst/localbrain/internal/health"
	"github.com/keeponfirst/localbrain/internal/ui"
)

var healthTimeout time.Duration

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check configuration, Notion connectivity and local storage",
	Long: `Runs the setup checks:

  - .env exists and sets NOTION_TOKEN
  - the Notion API accepts the token and can see the parent page
  - the records directory is writable
  - an MCP client config registers a Notion server (optional)

Exits non-zero when any check fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := getSettings()

		checker := &health.Checker{
			Root:       s.Root,
			RecordsDir: s.RecordsDir(),
			Parent:     notionParent(s),
			Timeout:    healthTimeout,
		}
		if client, err := notionClient(s); err != nil {
			checker.ConfigErr = err
		} else {
			checker.Pinger = client
		}

		ctx, cancel := commandContext()
		defer cancel()

		var report health.Report
		_ = withSpinner("Running checks", func() error {
			report = checker.Run(ctx)
			return nil
		})

		if isJSONOutput() {
			if report.Failed() {
				return handleErrorWithDetails(ErrHealthCheckFailed,
					fmt.Errorf("%d of %d checks failed", report.Fail, len(report.Results)),
					"Fix the failing checks and run 'brain health' again", report)
			}
			outputSuccess(report, &Meta{Count: len(report.Results)})
			return nil
		}

		fmt.Println(ui.Header("Local Brain health check"))
		fmt.Println()
		for _, r := range report.Results {
			fmt.Println(ui.Status(string(r.Status), r.Name+": "+r.Message))
			if r.Hint != "" {
				fmt.Println("    " + ui.Hint(r.Hint))
			}
			for _, c := range r.Configs {
				fmt.Println("    " + ui.FilePath(c))
			}
		}
		fmt.Println()
		fmt.Printf("%d ok, %d warnings, %d failed\n", report.OK, report.Warn, report.Fail)

		if report.Failed() {
			return errSilent
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().DurationVar(&healthTimeout, "timeout", 10*time.Second, "Notion API timeout")
	rootCmd.AddCommand(healthCmd)
}
