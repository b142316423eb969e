package notion

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/keeponfirst/localbrain/internal/blocks"
)

func TestEncodeBlockShapes(t *testing.T) {
	tests := []struct {
		block blocks.Block
		key   string
	}{
		{blocks.Heading{Level: 2, Text: "H"}, "heading_2"},
		{blocks.BulletItem{Text: "b"}, "bulleted_list_item"},
		{blocks.NumberedItem{Text: "n"}, "numbered_list_item"},
		{blocks.Quote{Text: "q"}, "quote"},
		{blocks.Paragraph{Text: "p"}, "paragraph"},
		{blocks.Divider{}, "divider"},
	}
	for _, tc := range tests {
		got := EncodeBlock(tc.block)
		if got["object"] != "block" || got["type"] != tc.key {
			t.Fatalf("EncodeBlock(%#v) = %v", tc.block, got)
		}
		if _, ok := got[tc.key]; !ok {
			t.Fatalf("EncodeBlock(%#v) missing %q body", tc.block, tc.key)
		}
	}
}

func TestEncodeCodeLanguage(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"py", "python"},
		{"", "plain text"},
		{"Go", "go"},
		{"dockerfile", "docker"},
		{"brainfuck", "plain text"},
		{"haskell", "haskell"},
	}
	for _, tc := range tests {
		body := EncodeBlock(blocks.CodeBlock{Language: tc.lang, Content: "x"})["code"].(map[string]any)
		if body["language"] != tc.want {
			t.Fatalf("language(%q) = %v, want %q", tc.lang, body["language"], tc.want)
		}
	}
}

func TestEncodeCalloutAndBookmark(t *testing.T) {
	callout := EncodeBlock(blocks.Callout{Text: "Type: IDEA", Icon: "💡"})["callout"].(map[string]any)
	icon := callout["icon"].(map[string]any)
	if icon["emoji"] != "💡" {
		t.Fatalf("icon = %v", icon)
	}
	if _, ok := EncodeBlock(blocks.Callout{Text: "x"})["callout"].(map[string]any)["icon"]; ok {
		t.Fatal("empty icon should be omitted")
	}

	bookmark := EncodeBlock(blocks.Bookmark{URL: "https://go.dev"})["bookmark"].(map[string]any)
	if bookmark["url"] != "https://go.dev" {
		t.Fatalf("bookmark = %v", bookmark)
	}
}

func TestNewRichTextSplitsLongContent(t *testing.T) {
	s := strings.Repeat("語", 4500)
	rt := NewRichText(s)
	if len(rt) != 3 {
		t.Fatalf("items = %d, want 3", len(rt))
	}
	var joined strings.Builder
	for _, r := range rt {
		if n := utf8.RuneCountInString(r.Text.Content); n > MaxRichTextLength {
			t.Fatalf("item has %d runes", n)
		}
		joined.WriteString(r.Content())
	}
	if joined.String() != s {
		t.Fatal("split content does not rejoin to the original")
	}
	if got := NewRichText(""); len(got) != 0 {
		t.Fatalf("empty text = %v, want no items", got)
	}
}

func TestChunk(t *testing.T) {
	bs := EncodeBlocks(paragraphs(201))
	got := chunk(bs, 100)
	if len(got) != 3 || len(got[0]) != 100 || len(got[2]) != 1 {
		t.Fatalf("chunk sizes wrong: %d batches", len(got))
	}
	if chunk(nil, 100) != nil {
		t.Fatal("chunk(nil) should be nil")
	}
}

func TestExtractPageID(t *testing.T) {
	const want = "0123abcd-4567-89ef-0123-456789abcdef"
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{want, want, false},
		{"0123abcd456789ef0123456789abcdef", want, false},
		{"https://www.notion.so/My-Page-0123abcd456789ef0123456789abcdef", want, false},
		{"https://www.notion.so/0123abcd456789ef0123456789abcdef?pvs=4", want, false},
		{"https://www.notion.so/workspace/Page-0123ABCD456789EF0123456789ABCDEF/", want, false},
		{"not-an-id", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		got, err := ExtractPageID(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ExtractPageID(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ExtractPageID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRootPageBlocks(t *testing.T) {
	bs := RootPageBlocks()
	if len(bs) != 7 {
		t.Fatalf("blocks = %d, want 7", len(bs))
	}
	if _, ok := bs[0].(blocks.Callout); !ok {
		t.Fatalf("first block = %T, want Callout", bs[0])
	}
	if h, ok := bs[2].(blocks.Heading); !ok || h.Text != "Record Types" {
		t.Fatalf("third block = %#v", bs[2])
	}
}
