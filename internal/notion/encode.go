package notion

import (
	"github.com/keeponfirst/localbrain/internal/blocks"
)

// MaxRichTextLength is the API limit on a single rich_text item's content.
const MaxRichTextLength = 2000

// supportedLanguages is the code block language set the API accepts.
var supportedLanguages = map[string]bool{
	"abap": true, "arduino": true, "bash": true, "basic": true, "c": true,
	"clojure": true, "coffeescript": true, "c++": true, "c#": true, "css": true,
	"dart": true, "diff": true, "docker": true, "elixir": true, "elm": true,
	"erlang": true, "flow": true, "fortran": true, "f#": true, "gherkin": true,
	"glsl": true, "go": true, "graphql": true, "groovy": true, "haskell": true,
	"html": true, "java": true, "javascript": true, "json": true, "julia": true,
	"kotlin": true, "latex": true, "less": true, "lisp": true, "livescript": true,
	"lua": true, "makefile": true, "markdown": true, "markup": true, "matlab": true,
	"mermaid": true, "nix": true, "objective-c": true, "ocaml": true, "pascal": true,
	"perl": true, "php": true, "plain text": true, "powershell": true, "prolog": true,
	"protobuf": true, "python": true, "r": true, "reason": true, "ruby": true,
	"rust": true, "sass": true, "scala": true, "scheme": true, "scss": true,
	"shell": true, "sql": true, "swift": true, "typescript": true, "vb.net": true,
	"verilog": true, "vhdl": true, "visual basic": true, "webassembly": true,
	"xml": true, "yaml": true,
}

// APILanguage returns lang when the API supports it and "plain text"
// otherwise.
func APILanguage(lang string) string {
	lang = blocks.NormalizeLanguage(lang)
	if supportedLanguages[lang] {
		return lang
	}
	return blocks.PlainText
}

// RichText is one rich_text item.
type RichText struct {
	Type      string `json:"type,omitempty"`
	Text      *Text  `json:"text,omitempty"`
	PlainText string `json:"plain_text,omitempty"`
}

type Text struct {
	Content string `json:"content"`
}

// Content returns the item's text, preferring plain_text from responses.
func (r RichText) Content() string {
	if r.PlainText != "" {
		return r.PlainText
	}
	if r.Text != nil {
		return r.Text.Content
	}
	return ""
}

// NewRichText splits s into items of at most MaxRichTextLength runes.
func NewRichText(s string) []RichText {
	out := []RichText{}
	runes := []rune(s)
	for len(runes) > 0 {
		n := min(len(runes), MaxRichTextLength)
		out = append(out, RichText{Type: "text", Text: &Text{Content: string(runes[:n])}})
		runes = runes[n:]
	}
	return out
}

// BlockJSON is the API form of a block.
type BlockJSON map[string]any

// EncodeBlock converts a block to its API form.
func EncodeBlock(b blocks.Block) BlockJSON {
	var body map[string]any
	switch v := b.(type) {
	case blocks.Heading:
		body = textBody(v.Text)
	case blocks.BulletItem:
		body = textBody(v.Text)
	case blocks.NumberedItem:
		body = textBody(v.Text)
	case blocks.Quote:
		body = textBody(v.Text)
	case blocks.Paragraph:
		body = textBody(v.Text)
	case blocks.CodeBlock:
		body = textBody(v.Content)
		body["language"] = APILanguage(v.Language)
	case blocks.Bookmark:
		body = map[string]any{"url": v.URL}
	case blocks.Callout:
		body = textBody(v.Text)
		if v.Icon != "" {
			body["icon"] = map[string]any{"type": "emoji", "emoji": v.Icon}
		}
	default:
		body = map[string]any{}
	}
	return BlockJSON{
		"object": "block",
		"type":   b.Kind(),
		b.Kind(): body,
	}
}

// EncodeBlocks converts blocks in order.
func EncodeBlocks(bs []blocks.Block) []BlockJSON {
	out := make([]BlockJSON, 0, len(bs))
	for _, b := range bs {
		out = append(out, EncodeBlock(b))
	}
	return out
}

func textBody(s string) map[string]any {
	return map[string]any{"rich_text": NewRichText(s)}
}

// chunk splits bs into slices of at most size elements.
func chunk(bs []BlockJSON, size int) [][]BlockJSON {
	var out [][]BlockJSON
	for len(bs) > size {
		out = append(out, bs[:size])
		bs = bs[size:]
	}
	if len(bs) > 0 {
		out = append(out, bs)
	}
	return out
}
