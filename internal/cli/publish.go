package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keeponfirst/localbrain/internal/blocks"
	"github.com/keeponfirst/localbrain/internal/notion"
	"github.com/keeponfirst/localbrain/internal/ui"
)

var (
	publishTitle  string
	publishParent string
)

var publishCmd = &cobra.Command{
	Use:   "publish <file.md>",
	Short: "Publish a markdown document as a Notion page",
	Long: `Publishes a markdown file as a new page under the configured parent.

The first "# " line becomes the page title and is not repeated in the body;
without one the file name is used. Headings, lists, quotes, fenced code and
bare links are converted to Notion blocks.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := getSettings()

		title, content, err := readDocument(args[0])
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		if publishTitle != "" {
			title = publishTitle
		}

		parent := notionParent(s)
		if publishParent != "" {
			id, err := notion.ExtractPageID(publishParent)
			if err != nil {
				return handleError(ErrInvalidInput, err, "Pass a Notion page URL or page id")
			}
			parent = notion.PageParent(id)
		}
		if parent.ID == "" {
			return handleClassified(notion.ErrNotInitialized, "")
		}

		client, err := notionClient(s)
		if err != nil {
			return handleClassified(err, ErrConfigInvalid)
		}

		bs := blocks.Convert(content, blocks.DocumentOptions())

		ctx, cancel := commandContext()
		defer cancel()

		var page notion.Page
		err = withSpinner(fmt.Sprintf("Publishing %d blocks", len(bs)), func() error {
			var perr error
			page, perr = client.CreatePage(ctx, parent, title, bs)
			return perr
		})
		if err != nil && page.ID == "" {
			return handleClassified(err, ErrNotionError)
		}

		data := map[string]interface{}{
			"page_id": page.ID,
			"url":     page.URL,
			"title":   title,
			"blocks":  len(bs),
		}
		var warnings []Warning
		if err != nil {
			// The page exists but some trailing blocks were not appended.
			warnings = append(warnings, Warning{Code: WarnPartialPage, Message: err.Error()})
		}
		if _, w := writeCentralLog(s, "publish_document", map[string]any{
			"source":     args[0],
			"title":      title,
			"notion_url": page.URL,
			"blocks":     len(bs),
		}, "SUCCESS"); w != nil {
			warnings = append(warnings, *w)
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(data, warnings, nil)
			return nil
		}

		fmt.Println(ui.Checkf("Published %s %s", ui.Bold.Render(title), ui.Count(len(bs), "block", "blocks")))
		fmt.Printf("  %s\n", hyperlink(page.URL, page.URL))
		for _, w := range warnings {
			fmt.Println(ui.Warning(w.Message))
		}
		return nil
	},
}

// readDocument reads a markdown file and splits off its title. Without a
// leading "# " line the title is the file name without extension.
func readDocument(path string) (title, content string, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", fmt.Errorf("file not found: %s", path)
		}
		return "", "", err
	}
	text := string(raw)
	if t, rest, ok := blocks.SplitTitle(text); ok {
		return t, rest, nil
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)), text, nil
}

func init() {
	publishCmd.Flags().StringVar(&publishTitle, "title", "", "Page title (default: first heading or file name)")
	publishCmd.Flags().StringVar(&publishParent, "parent", "", "Parent page URL or id (default: configured parent)")
	rootCmd.AddCommand(publishCmd)
}
