package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keeponfirst/localbrain/internal/blocks"
	"github.com/keeponfirst/localbrain/internal/ui"
)

var previewBlocks bool

// previewTextWidth truncates block text in --blocks mode.
const previewTextWidth = 72

var previewCmd = &cobra.Command{
	Use:   "preview <file.md>",
	Short: "Render a markdown file in the terminal",
	Long: `Renders a markdown file in the terminal. With --blocks, shows the blocks
'brain publish' would create instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if previewBlocks {
			title, content, err := readDocument(args[0])
			if err != nil {
				return handleError(ErrFileReadError, err, "")
			}
			bs := blocks.Convert(content, blocks.DocumentOptions())
			if isJSONOutput() {
				rows := make([]map[string]string, 0, len(bs))
				for _, b := range bs {
					rows = append(rows, map[string]string{"type": b.Kind(), "text": blockText(b)})
				}
				outputSuccess(map[string]interface{}{"title": title, "blocks": rows}, &Meta{Count: len(bs)})
				return nil
			}
			fmt.Println(ui.Header(title))
			fmt.Println()
			table := ui.NewTable(2)
			for _, b := range bs {
				table.AddRow(ui.Hint(b.Kind()), truncateText(blockText(b), previewTextWidth))
			}
			fmt.Print(table.String())
			return nil
		}

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": args[0], "content": string(raw)}, nil)
			return nil
		}
		printMarkdown(string(raw))
		return nil
	},
}

// blockText is a one-line summary of a block's content.
func blockText(b blocks.Block) string {
	switch v := b.(type) {
	case blocks.Heading:
		return v.Text
	case blocks.BulletItem:
		return v.Text
	case blocks.NumberedItem:
		return v.Text
	case blocks.Quote:
		return v.Text
	case blocks.Paragraph:
		return v.Text
	case blocks.Callout:
		return v.Icon + " " + v.Text
	case blocks.Bookmark:
		return v.URL
	case blocks.CodeBlock:
		first, _, _ := strings.Cut(v.Content, "\n")
		return "[" + v.Language + "] " + first
	}
	return ""
}

func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	previewCmd.Flags().BoolVar(&previewBlocks, "blocks", false, "Show converted Notion blocks instead of rendered markdown")
	rootCmd.AddCommand(previewCmd)
}
