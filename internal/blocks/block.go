// Package blocks converts flat markdown into the typed block sequence accepted
// by structured-document APIs such as Notion.
//
// A document is an ordered []Block. Blocks are plain comparable values: two
// structurally equal blocks are interchangeable.
package blocks

// Block is one renderable unit of a document. The concrete types in this
// package are the only implementations.
type Block interface {
	// Kind returns the stable type name of the block (e.g. "heading_2").
	Kind() string
	isBlock()
}

// Heading is a section heading of level 1, 2 or 3.
type Heading struct {
	Level int
	Text  string
}

// BulletItem is an unordered list item.
type BulletItem struct {
	Text string
}

// NumberedItem is an ordered list item.
type NumberedItem struct {
	Text string
}

// Quote is a block quote line.
type Quote struct {
	Text string
}

// CodeBlock is a fenced code span, or a flattened table row.
type CodeBlock struct {
	Language string
	Content  string
}

// Bookmark is a standalone URL.
type Bookmark struct {
	URL string
}

// Paragraph is plain text; the fallback for anything unrecognized.
type Paragraph struct {
	Text string
}

// Callout is highlighted text with an emoji icon.
type Callout struct {
	Text string
	Icon string
}

// Divider is a horizontal rule.
type Divider struct{}

// Kind implements Block.
func (h Heading) Kind() string {
	switch h.Level {
	case 1:
		return "heading_1"
	case 2:
		return "heading_2"
	default:
		return "heading_3"
	}
}

// Kind implements Block.
func (BulletItem) Kind() string { return "bulleted_list_item" }

// Kind implements Block.
func (NumberedItem) Kind() string { return "numbered_list_item" }

// Kind implements Block.
func (Quote) Kind() string { return "quote" }

// Kind implements Block.
func (CodeBlock) Kind() string { return "code" }

// Kind implements Block.
func (Bookmark) Kind() string { return "bookmark" }

// Kind implements Block.
func (Paragraph) Kind() string { return "paragraph" }

// Kind implements Block.
func (Callout) Kind() string { return "callout" }

// Kind implements Block.
func (Divider) Kind() string { return "divider" }

func (Heading) isBlock()      {}
func (BulletItem) isBlock()   {}
func (NumberedItem) isBlock() {}
func (Quote) isBlock()        {}
func (CodeBlock) isBlock()    {}
func (Bookmark) isBlock()     {}
func (Paragraph) isBlock()    {}
func (Callout) isBlock()      {}
func (Divider) isBlock()      {}
