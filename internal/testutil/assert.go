package testutil

import (
	"os"
	"strings"
	"testing"
)

// AssertFileExists fails the test if the file does not exist.
func (b *TestBrain) AssertFileExists(path string) {
	b.t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		b.t.Errorf("expected file to exist: %s", path)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (b *TestBrain) AssertFileContains(path, substr string) {
	b.t.Helper()
	content := b.ReadFile(path)
	if !strings.Contains(content, substr) {
		b.t.Errorf("expected file %s to contain %q, got:\n%s", path, substr, content)
	}
}

// AssertLogEntries fails the test unless exactly n central log entries exist.
func (b *TestBrain) AssertLogEntries(n int) []string {
	b.t.Helper()
	entries := b.LogEntries()
	if len(entries) != n {
		b.t.Fatalf("expected %d central log entries, got %d: %v", n, len(entries), entries)
	}
	return entries
}

// MustSucceed fails the test if the CLI command failed.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if !r.OK {
		errMsg := "unknown error"
		if r.Error != nil {
			errMsg = r.Error.Code + ": " + r.Error.Message
		}
		t.Fatalf("expected command to succeed, got error: %s\nRaw output: %s", errMsg, r.RawJSON)
	}
	return r
}

// MustFail fails the test if the CLI command did not fail with the expected code.
func (r *CLIResult) MustFail(t *testing.T, expectedCode string) *CLIResult {
	t.Helper()
	if r.OK {
		t.Fatalf("expected command to fail with code %s, but it succeeded\nRaw output: %s", expectedCode, r.RawJSON)
	}
	if r.Error == nil {
		t.Fatalf("expected error with code %s, but error is nil\nRaw output: %s", expectedCode, r.RawJSON)
	}
	if r.Error.Code != expectedCode {
		t.Fatalf("expected error code %s, got %s: %s\nRaw output: %s", expectedCode, r.Error.Code, r.Error.Message, r.RawJSON)
	}
	if r.ExitCode == 0 {
		t.Errorf("expected non-zero exit code for failed command")
	}
	return r
}

// AssertHasWarning checks that the result contains a warning with the given code.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning with code %s, got warnings: %+v", code, r.Warnings)
}

// AssertNoWarnings checks that the result has no warnings.
func (r *CLIResult) AssertNoWarnings(t *testing.T) {
	t.Helper()
	if len(r.Warnings) > 0 {
		t.Errorf("expected no warnings, got: %+v", r.Warnings)
	}
}

// DataList extracts a list from the Data field.
func (r *CLIResult) DataList(key string) []interface{} {
	if r.Data == nil {
		return nil
	}
	if list, ok := r.Data[key].([]interface{}); ok {
		return list
	}
	return nil
}

// DataString extracts a string from the Data field.
func (r *CLIResult) DataString(key string) string {
	if r.Data == nil {
		return ""
	}
	if s, ok := r.Data[key].(string); ok {
		return s
	}
	return ""
}

// DataBool extracts a bool from the Data field.
func (r *CLIResult) DataBool(key string) bool {
	if r.Data == nil {
		return false
	}
	v, _ := r.Data[key].(bool)
	return v
}
