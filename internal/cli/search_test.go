package cli

import (
	"strings"
	"testing"
)

func TestShortDate(t *testing.T) {
	if got := shortDate("2026-03-01T09:30:00.000Z"); got != "2026-03-01" {
		t.Errorf("shortDate() = %q, want %q", got, "2026-03-01")
	}
	if got := shortDate("yesterday"); got != "yesterday" {
		t.Errorf("shortDate() = %q, want passthrough", got)
	}
}

func TestPrintSearchResultsRecallLimitsActivity(t *testing.T) {
	withHyperlinks(t, false)

	var results []searchResult
	for _, title := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		results = append(results, searchResult{Title: "note-" + title, LastEdited: "2026-03-01T00:00:00Z"})
	}

	out := captureStdout(t, func() {
		printSearchResults(searchModeRecall, "cache", results)
	})

	if got := strings.Count(out, "- 2026-03-01: "); got != recallLimit {
		t.Errorf("recall listed %d items, want %d\n%s", got, recallLimit, out)
	}
	if !strings.Contains(out, "7 related records") {
		t.Errorf("recall output missing count:\n%s", out)
	}
}

func TestPrintSearchResultsDefaultNumbersResults(t *testing.T) {
	withHyperlinks(t, false)

	out := captureStdout(t, func() {
		printSearchResults(searchModeSearch, "q", []searchResult{
			{Title: "First", URL: "https://notion.so/1", LastEdited: "2026-01-02T00:00:00Z"},
			{Title: "Second", URL: "https://notion.so/2", LastEdited: "2026-01-01T00:00:00Z"},
		})
	})

	if !strings.Contains(out, "1. First") || !strings.Contains(out, "2. Second") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "2026-01-02 | https://notion.so/1") {
		t.Errorf("missing date and url:\n%s", out)
	}
}
