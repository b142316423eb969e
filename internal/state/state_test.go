package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "missing.json"))
	if s == nil || len(s) != 0 {
		t.Fatalf("Load() = %#v, want empty state", s)
	}
}

func TestLoadMalformedFileIsEmpty(t *testing.T) {
	tests := []string{"{not json", "[1, 2]", "null", ""}
	for _, content := range tests {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if s := Load(path); len(s) != 0 {
			t.Fatalf("Load(%q) = %#v, want empty state", content, s)
		}
	}
}

func TestSetAndStringNested(t *testing.T) {
	s := State{"resolved": "not-an-object"}
	s.Set("/tmp/home", "resolved", "central_log_home")

	got, ok := s.String("resolved", "central_log_home")
	if !ok || got != "/tmp/home" {
		t.Fatalf("String() = (%q, %v), want (%q, true)", got, ok, "/tmp/home")
	}
	if _, ok := s.String("resolved", "missing"); ok {
		t.Fatal("String() on a missing key should report ok=false")
	}
	if _, ok := s.String(); ok {
		t.Fatal("String() with no keys should report ok=false")
	}
}

func TestSaveAndReloadPreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	if err := Save(path, State{"root_page_id": "abc"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	err := Update(path, func(s State) {
		s.Set("json", "central_log", "format")
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	s := Load(path)
	if got, _ := s.String("root_page_id"); got != "abc" {
		t.Fatalf("root_page_id = %q, want %q", got, "abc")
	}
	if got, _ := s.String("central_log", "format"); got != "json" {
		t.Fatalf("central_log.format = %q, want %q", got, "json")
	}
}

func TestSaveRequiresPath(t *testing.T) {
	if err := Save("  ", State{}); err == nil {
		t.Fatal("Save() with empty path should fail")
	}
}
