package atomicfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "state.json")

	if err := WriteFile(path, []byte("hello"), 0); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("content = %q, want %q", got, "hello")
	}
}

func TestWriteFileReplacesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	if err := WriteFile(path, []byte("one"), 0o600); err != nil {
		t.Fatalf("first WriteFile() error = %v", err)
	}
	if err := WriteFile(path, []byte("two"), 0); err != nil {
		t.Fatalf("second WriteFile() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "two" {
		t.Fatalf("content = %q, want %q", got, "two")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteJSONKeepsUnicode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")

	if err := WriteJSON(path, map[string]string{"title": "決策 <one>"}, 0); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	raw, _ := os.ReadFile(path)
	if !strings.HasSuffix(string(raw), "\n") {
		t.Fatalf("expected trailing newline, got %q", raw)
	}

	var got map[string]string
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got["title"] != "決策 <one>" || strings.Contains(string(raw), `\u003c`) {
		t.Fatalf("title = %q", got["title"])
	}
}
