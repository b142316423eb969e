package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
)

// hyperlinkEnabled caches whether we should emit hyperlinks.
// Hyperlinks are only emitted to TTY terminals, not JSON output or pipes.
var hyperlinkEnabled *bool

// shouldEmitHyperlinks returns true if we should emit OSC 8 hyperlinks.
func shouldEmitHyperlinks() bool {
	if hyperlinkEnabled != nil {
		return *hyperlinkEnabled
	}

	enabled := !jsonOutput && isatty.IsTerminal(os.Stdout.Fd())
	hyperlinkEnabled = &enabled
	return enabled
}

// hyperlink wraps label in an OSC 8 escape pointing at url when the terminal
// supports it.
func hyperlink(label, url string) string {
	if url == "" || !shouldEmitHyperlinks() {
		return label
	}
	return fmt.Sprintf("\x1b]8;;%s\x07%s\x1b]8;;\x07", url, label)
}

// fileURL builds a file:// URL for a local path.
func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "file://" + filepath.ToSlash(path)
}

// fileLink renders path as a clickable link to itself.
func fileLink(path string) string {
	return hyperlink(path, fileURL(path))
}
