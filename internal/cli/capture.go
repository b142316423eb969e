package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keeponfirst/localbrain/internal/records"
	"github.com/keeponfirst/localbrain/internal/ui"
)

var (
	captureType   string
	captureTitle  string
	captureBody   string
	captureDate   string
	captureTags   []string
	captureFormat string
	captureDryRun bool
)

var captureCmd = &cobra.Command{
	Use:   "capture [file|-]",
	Short: "Write a decision, worklog, idea or backlog record",
	Long: `Write a record to Notion and mirror it under records/.

The record is read from a JSON or YAML file, from stdin ("-" or piped input),
or built from flags. Flags override fields read from input.

Examples:
  brain capture record.json
  echo '{"type":"idea","title":"Cache warmup","body":"..."}' | brain capture
  brain capture --type decision --title "Use SQLite" --body "Because..." --tag storage`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCapture,
}

func runCapture(cmd *cobra.Command, args []string) error {
	s := getSettings()

	rec, err := readCaptureInput(cmd, args)
	if err != nil {
		return handleError(ErrInvalidInput, err, "Provide a JSON/YAML record file or use --title and --body")
	}

	writer := &records.Writer{
		Parent: notionParent(s),
		Store:  records.NewStore(s.RecordsDir()),
	}
	if !captureDryRun {
		client, err := notionClient(s)
		if err != nil {
			return handleClassified(err, ErrConfigInvalid)
		}
		writer.Publisher = client
		if err := s.EnsureDirs(); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
	}

	ctx, cancel := commandContext()
	defer cancel()

	var res records.Result
	err = withSpinner("Writing "+rec.Type, func() error {
		var werr error
		res, werr = writer.Write(ctx, rec, captureDryRun)
		return werr
	})
	if err != nil {
		if res.NotionPageID != nil {
			// Published but the local mirror failed.
			return handleErrorWithDetails(ErrFileWriteError, err, "The Notion page was created; check permissions on "+s.RecordsDir(), res)
		}
		return handleClassified(err, ErrNotionError)
	}

	data := res.LogData()
	if captureDryRun {
		data["dry_run"] = true
	}
	_, warning := writeCentralLog(s, records.Intent(rec.Type), data, "SUCCESS")

	if isJSONOutput() {
		var warnings []Warning
		if warning != nil {
			warnings = append(warnings, *warning)
		}
		outputSuccessWithWarnings(res, warnings, nil)
		return nil
	}

	if captureDryRun {
		fmt.Println(ui.Info("Dry run: nothing was written"))
		fmt.Println()
		printMarkdown(records.RenderMarkdown(res.Record))
		return nil
	}

	fmt.Println(ui.Checkf("Captured %s %s", records.Icon(rec.Type), ui.Bold.Render(rec.Title)))
	if res.NotionURL != nil {
		fmt.Printf("  notion: %s\n", hyperlink(*res.NotionURL, *res.NotionURL))
	}
	fmt.Printf("  local:  %s\n", fileLink(res.LocalMD))
	if warning != nil {
		fmt.Println(ui.Warning(warning.Message))
	}
	return nil
}

// readCaptureInput builds a record from args, stdin and flags.
func readCaptureInput(cmd *cobra.Command, args []string) (records.Record, error) {
	var (
		rec  records.Record
		err  error
		read bool
	)
	format := records.Format(strings.ToLower(strings.TrimSpace(captureFormat)))
	switch format {
	case records.FormatAuto, records.FormatJSON, records.FormatYAML:
	default:
		return rec, fmt.Errorf("unsupported --format %q (use json or yaml)", captureFormat)
	}

	switch {
	case len(args) == 1 && args[0] != "-":
		f, openErr := os.Open(args[0])
		if openErr != nil {
			return rec, openErr
		}
		defer f.Close()
		if format == records.FormatAuto {
			format = records.FormatFromPath(args[0])
		}
		rec, err = records.ParseInput(f, format)
		read = true
	case len(args) == 1 || !hasRecordFlags(cmd) && stdinHasData():
		rec, err = records.ParseInput(cmd.InOrStdin(), format)
		read = true
	}
	if err != nil {
		return rec, err
	}
	if !read && !hasRecordFlags(cmd) {
		return rec, fmt.Errorf("no record given")
	}

	applyRecordFlags(cmd, &rec)
	rec.Normalize()
	if err := rec.Validate(); err != nil {
		return rec, fmt.Errorf("invalid record: %w", err)
	}
	return rec, nil
}

func hasRecordFlags(cmd *cobra.Command) bool {
	for _, name := range []string{"type", "title", "body", "date", "tag"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func applyRecordFlags(cmd *cobra.Command, rec *records.Record) {
	flags := cmd.Flags()
	if flags.Changed("type") {
		rec.Type = captureType
	}
	if flags.Changed("title") {
		rec.Title = captureTitle
	}
	if flags.Changed("body") {
		rec.Body = captureBody
		if rec.SourceText == "" {
			rec.SourceText = captureBody
		}
	}
	if flags.Changed("date") {
		rec.Date = captureDate
	}
	if flags.Changed("tag") {
		rec.Tags = append(rec.Tags, captureTags...)
	}
}

// stdinHasData reports whether stdin is a pipe or file rather than a terminal.
func stdinHasData() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}

// printMarkdown renders markdown for the terminal, falling back to raw text.
func printMarkdown(content string) {
	width := ui.ContentWidth()
	if rendered, err := ui.RenderMarkdown(content, width); err == nil {
		fmt.Print(rendered)
		return
	}
	_, _ = io.WriteString(os.Stdout, content)
}

func init() {
	captureCmd.Flags().StringVarP(&captureType, "type", "t", "", "Record type (decision, worklog, idea, backlog)")
	captureCmd.Flags().StringVar(&captureTitle, "title", "", "Record title")
	captureCmd.Flags().StringVar(&captureBody, "body", "", "Record body (markdown)")
	captureCmd.Flags().StringVar(&captureDate, "date", "", "Record date (YYYY-MM-DD)")
	captureCmd.Flags().StringSliceVar(&captureTags, "tag", nil, "Tag (repeatable)")
	captureCmd.Flags().StringVar(&captureFormat, "format", "", "Input format: json or yaml (default: from extension or content)")
	captureCmd.Flags().BoolVar(&captureDryRun, "dry-run", false, "Show what would be written without calling Notion")
	rootCmd.AddCommand(captureCmd)
}
