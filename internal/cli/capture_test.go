package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func resetCaptureFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		captureCmd.Flags().VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
		captureCmd.SetIn(nil)
	}
	reset()
	t.Cleanup(reset)
}

func TestReadCaptureInputFromJSONFile(t *testing.T) {
	resetCaptureFlags(t)
	path := filepath.Join(t.TempDir(), "rec.json")
	content := `{"type":"Decision","title":"  Use SQLite ","body":"## Why\n- fast","tags":["#db"," "]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rec, err := readCaptureInput(captureCmd, []string{path})
	if err != nil {
		t.Fatalf("readCaptureInput: %v", err)
	}
	if rec.Type != "decision" || rec.Title != "Use SQLite" {
		t.Errorf("rec = %+v", rec)
	}
	if len(rec.Tags) != 1 || rec.Tags[0] != "db" {
		t.Errorf("Tags = %v, want [db]", rec.Tags)
	}
}

func TestReadCaptureInputFlagsOverrideFile(t *testing.T) {
	resetCaptureFlags(t)
	path := filepath.Join(t.TempDir(), "rec.yaml")
	if err := os.WriteFile(path, []byte("type: idea\ntitle: From file\nbody: text\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := captureCmd.Flags().Set("type", "backlog"); err != nil {
		t.Fatal(err)
	}
	if err := captureCmd.Flags().Set("tag", "later"); err != nil {
		t.Fatal(err)
	}

	rec, err := readCaptureInput(captureCmd, []string{path})
	if err != nil {
		t.Fatalf("readCaptureInput: %v", err)
	}
	if rec.Type != "backlog" {
		t.Errorf("Type = %q, want backlog", rec.Type)
	}
	if rec.Title != "From file" {
		t.Errorf("Title = %q, want %q", rec.Title, "From file")
	}
	if len(rec.Tags) != 1 || rec.Tags[0] != "later" {
		t.Errorf("Tags = %v", rec.Tags)
	}
}

func TestReadCaptureInputFromStdinDash(t *testing.T) {
	resetCaptureFlags(t)
	captureCmd.SetIn(strings.NewReader("type: worklog\ntitle: Friday\nbody: |\n  - fixed tests\n"))

	rec, err := readCaptureInput(captureCmd, []string{"-"})
	if err != nil {
		t.Fatalf("readCaptureInput: %v", err)
	}
	if rec.Type != "worklog" || rec.Title != "Friday" {
		t.Errorf("rec = %+v", rec)
	}
	if strings.TrimSpace(rec.Body) != "- fixed tests" {
		t.Errorf("Body = %q", rec.Body)
	}
}

func TestReadCaptureInputFromFlagsOnly(t *testing.T) {
	resetCaptureFlags(t)
	for name, value := range map[string]string{"title": "Cache warmup", "body": "Warm at boot", "date": "2026-03-01"} {
		if err := captureCmd.Flags().Set(name, value); err != nil {
			t.Fatal(err)
		}
	}

	rec, err := readCaptureInput(captureCmd, nil)
	if err != nil {
		t.Fatalf("readCaptureInput: %v", err)
	}
	if rec.Type != "idea" {
		t.Errorf("Type = %q, want default idea", rec.Type)
	}
	if rec.SourceText != "Warm at boot" {
		t.Errorf("SourceText = %q, want body copy", rec.SourceText)
	}
	if rec.Date != "2026-03-01" {
		t.Errorf("Date = %q", rec.Date)
	}
}

func TestReadCaptureInputErrors(t *testing.T) {
	t.Run("bad format", func(t *testing.T) {
		resetCaptureFlags(t)
		if err := captureCmd.Flags().Set("format", "toml"); err != nil {
			t.Fatal(err)
		}
		if _, err := readCaptureInput(captureCmd, []string{"-"}); err == nil || !strings.Contains(err.Error(), "toml") {
			t.Fatalf("err = %v, want unsupported format", err)
		}
	})
	t.Run("bad date", func(t *testing.T) {
		resetCaptureFlags(t)
		_ = captureCmd.Flags().Set("title", "x")
		_ = captureCmd.Flags().Set("date", "March 1st")
		if _, err := readCaptureInput(captureCmd, nil); err == nil {
			t.Fatal("expected validation error")
		}
	})
}
