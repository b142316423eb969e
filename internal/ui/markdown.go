package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// MarkdownMargin is the left margin of rendered records and guides.
const MarkdownMargin = 2

const defaultCodeTheme = "monokai"

// codeThemes are the chroma styles accepted for ui.code_theme.
var codeThemes = map[string]bool{
	"monokai": true, "dracula": true, "github": true, "nord": true,
	"solarized-dark": true, "solarized-light": true, "vim": true, "onedark": true,
}

var markdownCodeTheme = defaultCodeTheme

// ConfigureMarkdownCodeTheme selects the syntax theme for fenced code. Unknown
// names select the default.
func ConfigureMarkdownCodeTheme(theme string) {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if !codeThemes[theme] {
		theme = defaultCodeTheme
	}
	markdownCodeTheme = theme
}

// RenderMarkdown renders a record or guide for the terminal, wrapped at width.
// The result ends with exactly one newline.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(recordStyle()),
		glamour.WithWordWrap(width-MarkdownMargin),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// recordStyle is tuned for captured records: the title line carries the
// record icon, "Original Input" is a quote and bodies are mostly lists.
func recordStyle() ansi.StyleConfig {
	accent := str(AccentColor())
	muted := str("8")

	heading := func(prefix string, underline bool) ansi.StyleBlock {
		return ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: prefix, Underline: flag(underline)}}
	}

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockPrefix: "\n", BlockSuffix: "\n"},
			Margin:         uintp(MarkdownMargin),
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockSuffix: "\n", Color: accent, Bold: flag(true)},
		},
		// Record titles start with an emoji, so H1 has no "# " prefix.
		H1: heading("", true),
		H2: heading("▌ ", false),
		H3: heading("### ", false),
		H4: heading("#### ", false),
		H5: heading("##### ", false),
		H6: heading("###### ", false),
		Paragraph: ansi.StyleBlock{},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: muted, Italic: flag(true)},
			Indent:         uintp(1),
			IndentToken:    str("│ "),
		},
		List: ansi.StyleList{LevelIndent: 2},
		Item: ansi.StylePrimitive{BlockPrefix: "• "},
		Enumeration: ansi.StylePrimitive{BlockPrefix: ". "},
		Task: ansi.StyleTask{Ticked: "☑ ", Unticked: "☐ "},
		Strong: ansi.StylePrimitive{Bold: flag(true)},
		Emph:   ansi.StylePrimitive{Italic: flag(true)},
		Strikethrough: ansi.StylePrimitive{CrossedOut: flag(true)},
		HorizontalRule: ansi.StylePrimitive{Color: muted, Format: "\n────────\n"},
		Link:           ansi.StylePrimitive{Color: muted, Underline: flag(true)},
		LinkText:       ansi.StylePrimitive{Color: accent, Bold: flag(true)},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Prefix: "`", Suffix: "`", Color: accent},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: muted},
				Margin:         uintp(MarkdownMargin),
			},
			Theme: markdownCodeTheme,
		},
		Table: ansi.StyleTable{
			CenterSeparator: str("┼"),
			ColumnSeparator: str("│"),
			RowSeparator:    str("─"),
		},
	}
}

func flag(v bool) *bool    { return &v }
func str(v string) *string { return &v }
func uintp(v uint) *uint   { return &v }
