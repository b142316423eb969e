package blocks

import "strings"

// PlainText is the language tag used for untagged code and flattened tables.
const PlainText = "plain text"

// languageAliases maps common fence tags to the names the document API uses.
var languageAliases = map[string]string{
	"py":         "python",
	"python":     "python",
	"js":         "javascript",
	"javascript": "javascript",
	"ts":         "typescript",
	"typescript": "typescript",
	"md":         "markdown",
	"markdown":   "markdown",
	"sh":         "bash",
	"shell":      "bash",
	"zsh":        "bash",
	"bash":       "bash",
	"json":       "json",
	"html":       "html",
	"css":        "css",
	"sql":        "sql",
	"go":         "go",
	"golang":     "go",
	"java":       "java",
	"c":          "c",
	"cpp":        "c++",
	"c++":        "c++",
	"rs":         "rust",
	"rust":       "rust",
	"rb":         "ruby",
	"ruby":       "ruby",
	"php":        "php",
	"swift":      "swift",
	"kt":         "kotlin",
	"kotlin":     "kotlin",
	"dart":       "dart",
	"yml":        "yaml",
	"yaml":       "yaml",
	"xml":        "xml",
	"dockerfile": "docker",
	"docker":     "docker",
	"text":       PlainText,
	"txt":        PlainText,
	"plaintext":  PlainText,
	PlainText:    PlainText,
}

// NormalizeLanguage maps a fence language tag to its canonical name.
// Empty tags become PlainText; tags outside the alias table pass through
// lowercased and trimmed.
func NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return PlainText
	}
	if canonical, ok := languageAliases[lang]; ok {
		return canonical
	}
	return lang
}
