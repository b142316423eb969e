package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keeponfirst/localbrain/internal/notion"
	"github.com/keeponfirst/localbrain/internal/ui"
)

var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List databases the integration can see",
	Long: `Lists databases shared with the integration. Use one of the ids as
NOTION_PARENT together with NOTION_MODE=database.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := notionClient(getSettings())
		if err != nil {
			return handleClassified(err, ErrConfigInvalid)
		}

		ctx, cancel := commandContext()
		defer cancel()

		var dbs []notion.Object
		err = withSpinner("Searching for databases", func() error {
			var serr error
			dbs, serr = client.Search(ctx, notion.SearchOptions{Filter: notion.FilterDatabase})
			return serr
		})
		if err != nil {
			return handleClassified(err, ErrNotionError)
		}

		if isJSONOutput() {
			items := make([]map[string]string, 0, len(dbs))
			for _, db := range dbs {
				items = append(items, map[string]string{
					"id":    db.ID,
					"title": db.DisplayTitle(),
					"url":   db.URL,
				})
			}
			outputSuccess(map[string]interface{}{"databases": items}, &Meta{Count: len(items)})
			return nil
		}

		if len(dbs) == 0 {
			fmt.Println("No databases found.")
			return nil
		}
		table := ui.NewTable(2)
		for _, db := range dbs {
			table.AddRow(ui.Bold.Render(db.DisplayTitle()), ui.Hint(db.ID))
		}
		fmt.Print(table.String())
		fmt.Println()
		fmt.Println(ui.Hint(ui.Count(len(dbs), "database", "databases")))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(databasesCmd)
}
