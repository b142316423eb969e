package cli

import (
	"bufio"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	builtindocs "github.com/keeponfirst/localbrain/docs"
	"github.com/keeponfirst/localbrain/internal/ui"
)

const docsGuideDir = "guide"

var docsFS fs.FS = builtindocs.FS

type docsTopicView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read the bundled guides",
	Long: `Lists the bundled guides, or renders one in the terminal.

Examples:
  brain docs
  brain docs capture`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := listDocsTopics(docsFS)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if len(args) == 0 {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"topics": topics}, &Meta{Count: len(topics)})
				return nil
			}
			table := ui.NewTable(2)
			for _, t := range topics {
				table.AddRow(ui.Bold.Render(t.ID), t.Title)
			}
			fmt.Print(table.String())
			fmt.Println()
			fmt.Println(ui.Hint("Run 'brain docs <topic>' to read one. For command docs, use: brain help <command>"))
			return nil
		}

		id := strings.ToLower(strings.TrimSuffix(args[0], ".md"))
		for _, t := range topics {
			if t.ID != id {
				continue
			}
			content, err := fs.ReadFile(docsFS, t.Path)
			if err != nil {
				return handleError(ErrFileReadError, err, "")
			}
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{
					"id":      t.ID,
					"title":   t.Title,
					"content": string(content),
				}, nil)
				return nil
			}
			printMarkdown(string(content))
			return nil
		}

		ids := make([]string, 0, len(topics))
		for _, t := range topics {
			ids = append(ids, t.ID)
		}
		return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("unknown topic %q", args[0]), "Available topics: "+strings.Join(ids, ", "))
	},
}

// listDocsTopics returns the guides sorted by id. A guide's title is its
// first "# " line.
func listDocsTopics(fsys fs.FS) ([]docsTopicView, error) {
	entries, err := fs.ReadDir(fsys, docsGuideDir)
	if err != nil {
		return nil, err
	}
	var topics []docsTopicView
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		p := path.Join(docsGuideDir, e.Name())
		id := strings.TrimSuffix(e.Name(), ".md")
		topics = append(topics, docsTopicView{ID: id, Title: docsTitle(fsys, p, id), Path: p})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].ID < topics[j].ID })
	return topics, nil
}

func docsTitle(fsys fs.FS, p, fallback string) string {
	f, err := fsys.Open(p)
	if err != nil {
		return fallback
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if title, ok := strings.CutPrefix(sc.Text(), "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return fallback
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
