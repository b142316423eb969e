package records

import (
	"strings"

	"github.com/keeponfirst/localbrain/internal/blocks"
)

// PageBlocks lays out a record as page content: a type callout, optional date
// and tag lines, a divider, then the converted body. A leading "# " line in the
// body duplicates the page title and is dropped.
func PageBlocks(r Record) []blocks.Block {
	out := []blocks.Block{
		blocks.Callout{Text: "Type: " + strings.ToUpper(r.Type), Icon: Icon(r.Type)},
	}
	if r.Date != "" {
		out = append(out, blocks.Paragraph{Text: "📅 " + r.Date})
	}
	if len(r.Tags) > 0 {
		tags := make([]string, len(r.Tags))
		for i, t := range r.Tags {
			tags[i] = "#" + t
		}
		out = append(out, blocks.Paragraph{Text: "🏷️ " + strings.Join(tags, " ")})
	}
	out = append(out, blocks.Divider{})
	body := r.Body
	if _, rest, ok := blocks.SplitTitle(body); ok {
		body = rest
	}
	return append(out, blocks.Convert(body, blocks.BodyOptions())...)
}
