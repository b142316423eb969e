package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keeponfirst/localbrain/internal/notion"
	"github.com/keeponfirst/localbrain/internal/ui"
)

var initYes bool

var initCmd = &cobra.Command{
	Use:   "init <seed-page-url-or-id>",
	Short: "Create the Local Brain root page in Notion",
	Long: `Creates the "` + notion.RootPageTitle + `" root page under a seed page the
integration can write to, and remembers it in .local_state.json. Records are
created under this page when NOTION_PARENT is not set.

Examples:
  brain init https://www.notion.so/My-Page-0123456789abcdef0123456789abcdef
  brain init 01234567-89ab-cdef-0123-456789abcdef`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := getSettings()

		seedID, err := notion.ExtractPageID(args[0])
		if err != nil {
			return handleError(ErrInvalidInput, err, "Pass a Notion page URL or page id")
		}

		if !s.NeedsInitialization() {
			if isJSONOutput() {
				outputSuccessWithWarnings(map[string]interface{}{
					"initialized":  false,
					"root_page_id": s.NotionParent,
				}, []Warning{{Code: ErrAlreadyInitialized, Message: "already initialized"}}, nil)
				return nil
			}
			fmt.Println(ui.Warningf("Already initialized with root page: %s", s.NotionParent))
			fmt.Println(ui.Hint("  To reinitialize, delete " + s.LocalStateFile() + " first."))
			return nil
		}

		client, err := notionClient(s)
		if err != nil {
			return handleClassified(err, ErrConfigInvalid)
		}

		if !isJSONOutput() {
			fmt.Printf("Seed page: %s\n", seedID)
		}
		if shouldPromptForConfirm() && !initYes {
			if !promptForConfirm("Create " + notion.RootPageTitle + " under this page?") {
				return handleErrorMsg(ErrCanceled, "canceled", "")
			}
		}

		ctx, cancel := commandContext()
		defer cancel()

		var page notion.Page
		err = withSpinner("Creating root page", func() error {
			var cerr error
			page, cerr = client.CreateRootPage(ctx, seedID)
			return cerr
		})
		if err != nil {
			code, suggestion := classifyError(err)
			if code == ErrInternal {
				code = ErrNotionError
			}
			if suggestion == "" {
				suggestion = "Make sure the integration has access to the seed page"
			}
			return handleError(code, err, suggestion)
		}

		if err := s.SaveRootPage(page.ID); err != nil {
			return handleError(ErrFileWriteError, err, "The page was created; set NOTION_PARENT="+page.ID+" instead")
		}
		if err := s.EnsureDirs(); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"initialized":  true,
				"root_page_id": page.ID,
				"url":          page.URL,
				"state_file":   s.LocalStateFile(),
			}, nil)
			return nil
		}

		fmt.Println(ui.Check("Root page created"))
		fmt.Printf("  page: %s\n", page.ID)
		fmt.Printf("  url:  %s\n", hyperlink(page.URL, page.URL))
		fmt.Println()
		fmt.Println("You can now capture records with 'brain capture'.")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(initCmd)
}
