package notion

import (
	"context"
	"fmt"

	"github.com/keeponfirst/localbrain/internal/blocks"
)

// RootPageTitle is the title of the page records are created under.
const RootPageTitle = "🧠 Local Brain"

// RootPageBlocks is the content of a freshly created root page.
func RootPageBlocks() []blocks.Block {
	return []blocks.Block{
		blocks.Callout{
			Text: "This is your Local Brain root page. All records will be created as child pages here.",
			Icon: "🧠",
		},
		blocks.Divider{},
		blocks.Heading{Level: 2, Text: "Record Types"},
		blocks.BulletItem{Text: "⚖️ Decision: important choices and trade-offs"},
		blocks.BulletItem{Text: "📝 Worklog: daily activities and progress"},
		blocks.BulletItem{Text: "💡 Idea: unformed thoughts and inspirations"},
		blocks.BulletItem{Text: "📋 Backlog: future tasks and TODOs"},
	}
}

// CreateRootPage creates the root page under seedPageID.
func (c *Client) CreateRootPage(ctx context.Context, seedPageID string) (Page, error) {
	page, err := c.CreatePage(ctx, PageParent(seedPageID), RootPageTitle, RootPageBlocks())
	if err != nil {
		return Page{}, fmt.Errorf("create root page: %w", err)
	}
	return page, nil
}
