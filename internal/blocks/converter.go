package blocks

import (
	"strings"
)

// FenceMode controls what happens to a code fence still open at end of input.
type FenceMode int

const (
	// FenceDrop silently discards the content of an unterminated fence.
	FenceDrop FenceMode = iota
	// FenceEmitPartial emits the accumulated content as a CodeBlock.
	FenceEmitPartial
)

// Options configures a Converter.
type Options struct {
	// PreserveBlankLines emits an empty Paragraph for each blank line outside
	// a fence instead of dropping it.
	PreserveBlankLines bool

	// SkipLeadingTitle skips the first line when it starts with "# ".
	SkipLeadingTitle bool

	// HeadingOne recognizes "# " lines as level-1 headings. When false such
	// lines fall through to the remaining rules.
	HeadingOne bool

	// TrimParagraphs stores the trimmed line as paragraph text. By default the
	// raw line is kept, leading whitespace included.
	TrimParagraphs bool

	// Unterminated selects the handling of a fence left open at end of input.
	Unterminated FenceMode
}

// BodyOptions is the configuration for record bodies. The record title is
// carried separately, so "# " lines are not headings here.
func BodyOptions() Options {
	return Options{}
}

// DocumentOptions is the configuration for whole markdown documents whose
// title the caller has already extracted.
func DocumentOptions() Options {
	return Options{HeadingOne: true}
}

// PayloadOptions is the configuration for raw documents that still carry their
// "# " title line.
func PayloadOptions() Options {
	return Options{SkipLeadingTitle: true}
}

// Converter turns markdown text into blocks. It holds no mutable state and is
// safe for concurrent use.
type Converter struct {
	opts Options
}

// NewConverter returns a Converter using opts.
func NewConverter(opts Options) *Converter {
	return &Converter{opts: opts}
}

// Options returns the converter configuration.
func (c *Converter) Options() Options {
	return c.opts
}

// Convert scans text line by line and returns the blocks in document order.
// It never fails: anything unrecognized becomes a Paragraph.
func (c *Converter) Convert(text string) []Block {
	lines := splitLines(text)
	out := make([]Block, 0, len(lines))

	start := 0
	if c.opts.SkipLeadingTitle && len(lines) > 0 && strings.HasPrefix(lines[0], "# ") {
		start = 1
	}

	var (
		inFence  bool
		language string
		body     []string
	)

	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			if inFence {
				out = append(out, CodeBlock{
					Language: NormalizeLanguage(language),
					Content:  strings.Join(body, "\n"),
				})
				inFence = false
				body = nil
				continue
			}
			inFence = true
			language = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			if language == "" {
				language = PlainText
			}
			continue
		}

		if inFence {
			body = append(body, line)
			continue
		}

		if trimmed == "" {
			if c.opts.PreserveBlankLines {
				out = append(out, Paragraph{})
			}
			continue
		}

		out = append(out, c.classify(line, trimmed))
	}

	if inFence && c.opts.Unterminated == FenceEmitPartial {
		out = append(out, CodeBlock{
			Language: NormalizeLanguage(language),
			Content:  strings.Join(body, "\n"),
		})
	}

	return out
}

// classify maps one non-blank line outside a fence to a block.
func (c *Converter) classify(line, trimmed string) Block {
	switch {
	case strings.HasPrefix(line, "### "):
		return Heading{Level: 3, Text: line[4:]}
	case strings.HasPrefix(line, "## "):
		return Heading{Level: 2, Text: line[3:]}
	case c.opts.HeadingOne && strings.HasPrefix(line, "# "):
		return Heading{Level: 1, Text: line[2:]}
	case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
		return BulletItem{Text: trimmed[2:]}
	case isNumbered(line):
		return NumberedItem{Text: line[3:]}
	case strings.HasPrefix(line, "> "):
		return Quote{Text: line[2:]}
	case strings.HasPrefix(trimmed, "|"):
		// Tables are flattened to monospace text, one block per row.
		return CodeBlock{Language: PlainText, Content: line}
	case isURL(trimmed):
		return Bookmark{URL: trimmed}
	case c.opts.TrimParagraphs:
		return Paragraph{Text: trimmed}
	default:
		return Paragraph{Text: line}
	}
}

// Convert converts text with the given options.
func Convert(text string, opts Options) []Block {
	return NewConverter(opts).Convert(text)
}

// SplitTitle extracts a leading "# " title line. ok is false when the first
// line is not a title, in which case rest is text unchanged.
func SplitTitle(text string) (title, rest string, ok bool) {
	first, remainder, found := strings.Cut(text, "\n")
	first = strings.TrimSuffix(first, "\r")
	if !strings.HasPrefix(first, "# ") {
		return "", text, false
	}
	if !found {
		remainder = ""
	}
	return strings.TrimSpace(first[2:]), remainder, true
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func isNumbered(line string) bool {
	if len(line) < 3 || line[0] < '0' || line[0] > '9' {
		return false
	}
	return line[1:3] == ". " || line[1:3] == ") "
}

func isURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	return !strings.ContainsAny(s, " \t")
}
