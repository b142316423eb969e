package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keeponfirst/localbrain/internal/atomicfile"
	"github.com/keeponfirst/localbrain/internal/blocks"
	"github.com/keeponfirst/localbrain/internal/notion"
	"github.com/keeponfirst/localbrain/internal/ui"
)

var (
	payloadOut     string
	payloadCompact bool
)

var payloadCmd = &cobra.Command{
	Use:   "payload <file.md>",
	Short: "Print the Notion block payload for a markdown file",
	Long: `Converts a markdown file to Notion API block JSON without calling Notion,
for use by agents that create pages through an MCP server. A leading "# "
title line is skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		encoded := notion.EncodeBlocks(blocks.Convert(string(raw), blocks.PayloadOptions()))

		if payloadOut != "" {
			if err := atomicfile.WriteJSON(payloadOut, encoded, 0o644); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
		}

		if isJSONOutput() {
			data := map[string]interface{}{"blocks": encoded}
			if payloadOut != "" {
				data["out"] = payloadOut
			}
			outputSuccess(data, &Meta{Count: len(encoded)})
			return nil
		}

		if payloadOut != "" {
			fmt.Fprintln(os.Stderr, ui.Checkf("Wrote %s to %s", ui.Count(len(encoded), "block", "blocks"), payloadOut))
			return nil
		}

		var out []byte
		if payloadCompact {
			out, err = json.Marshal(encoded)
			out = append(out, '\n')
		} else {
			out, err = atomicfile.MarshalIndent(encoded)
		}
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

func init() {
	payloadCmd.Flags().StringVarP(&payloadOut, "out", "o", "", "Write the payload to a file instead of stdout")
	payloadCmd.Flags().BoolVar(&payloadCompact, "compact", false, "Print compact JSON")
	rootCmd.AddCommand(payloadCmd)
}
