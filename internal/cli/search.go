package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/keeponfirst/localbrain/internal/notion"
	"github.com/keeponfirst/localbrain/internal/ui"
)

// Search output modes.
const (
	searchModeSearch = "search"
	searchModeTrace  = "trace"
	searchModeRecall = "recall"
)

// recallLimit caps the recent-activity list in recall mode.
const recallLimit = 5

var (
	searchMode  string
	searchLimit int
)

// searchResult is one page hit.
type searchResult struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	LastEdited string `json:"last_edited"`
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search pages in Notion",
	Long: `Search pages visible to the integration, newest first.

Modes:
  search  numbered list of matches (default)
  trace   timeline of matches, oldest first
  recall  short summary of recent activity`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		mode := strings.ToLower(strings.TrimSpace(searchMode))
		switch mode {
		case searchModeSearch, searchModeTrace, searchModeRecall:
		default:
			return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("unknown mode %q", searchMode), "Use --mode search, trace or recall")
		}

		client, err := notionClient(getSettings())
		if err != nil {
			return handleClassified(err, ErrConfigInvalid)
		}

		ctx, cancel := commandContext()
		defer cancel()

		start := time.Now()
		var objects []notion.Object
		err = withSpinner("Searching", func() error {
			var serr error
			objects, serr = client.Search(ctx, notion.SearchOptions{
				Query:    query,
				Filter:   notion.FilterPage,
				PageSize: searchLimit,
			})
			return serr
		})
		if err != nil {
			return handleClassified(err, ErrNotionError)
		}

		results := make([]searchResult, 0, len(objects))
		for _, o := range objects {
			results = append(results, searchResult{
				ID:         o.ID,
				Title:      o.DisplayTitle(),
				URL:        o.URL,
				LastEdited: o.LastEditedTime,
			})
		}
		if mode == searchModeTrace {
			sort.SliceStable(results, func(i, j int) bool {
				return results[i].LastEdited < results[j].LastEdited
			})
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"query":   query,
				"mode":    mode,
				"results": results,
			}, &Meta{Count: len(results), QueryTimeMs: time.Since(start).Milliseconds()})
			return nil
		}

		fmt.Println(ui.Hint(fmt.Sprintf("[%s] %s", strings.ToUpper(mode), query)))
		fmt.Println()
		if len(results) == 0 {
			fmt.Println("No results found.")
			return nil
		}
		printSearchResults(mode, query, results)
		return nil
	},
}

func printSearchResults(mode, query string, results []searchResult) {
	switch mode {
	case searchModeTrace:
		fmt.Println(ui.Header("Timeline for '" + query + "'"))
		fmt.Println()
		for _, r := range results {
			fmt.Printf("%s  %s\n", ui.Hint(shortDate(r.LastEdited)), r.Title)
			fmt.Printf("            %s\n", hyperlink(r.URL, r.URL))
		}
	case searchModeRecall:
		fmt.Println(ui.Header("Summary for '" + query + "'"))
		fmt.Printf("Found %s.\n\n", ui.Count(len(results), "related record", "related records"))
		fmt.Println(ui.Bold.Render("Recent activity"))
		for _, r := range results[:min(recallLimit, len(results))] {
			fmt.Printf("- %s: %s\n", shortDate(r.LastEdited), hyperlink(r.Title, r.URL))
		}
	default:
		fmt.Printf("Found %s\n\n", ui.Count(len(results), "result", "results"))
		for i, r := range results {
			fmt.Printf("%d. %s\n", i+1, r.Title)
			fmt.Printf("   %s | %s\n\n", shortDate(r.LastEdited), hyperlink(r.URL, r.URL))
		}
	}
}

// shortDate formats an API timestamp as YYYY-MM-DD, passing through anything
// it cannot parse.
func shortDate(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02")
}

func init() {
	searchCmd.Flags().StringVar(&searchMode, "mode", searchModeSearch, "Output mode: search, trace or recall")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
