package cli

import (
	"strings"
	"testing"
)

func withHyperlinks(t *testing.T, enabled bool) {
	t.Helper()
	prev := hyperlinkEnabled
	t.Cleanup(func() { hyperlinkEnabled = prev })
	hyperlinkEnabled = &enabled
}

func TestHyperlinkDisabledReturnsLabel(t *testing.T) {
	withHyperlinks(t, false)

	if got := hyperlink("page", "https://notion.so/x"); got != "page" {
		t.Errorf("hyperlink() = %q, want %q", got, "page")
	}
}

func TestHyperlinkEnabledWrapsOSC8(t *testing.T) {
	withHyperlinks(t, true)

	got := hyperlink("page", "https://notion.so/x")
	want := "\x1b]8;;https://notion.so/x\x07page\x1b]8;;\x07"
	if got != want {
		t.Errorf("hyperlink() = %q, want %q", got, want)
	}
}

func TestHyperlinkEmptyURL(t *testing.T) {
	withHyperlinks(t, true)

	if got := hyperlink("page", ""); got != "page" {
		t.Errorf("hyperlink() = %q, want %q", got, "page")
	}
}

func TestFileURL(t *testing.T) {
	got := fileURL("/tmp/brain/records/a.md")
	if !strings.HasPrefix(got, "file://") || !strings.HasSuffix(got, "/tmp/brain/records/a.md") {
		t.Errorf("fileURL() = %q", got)
	}
}
