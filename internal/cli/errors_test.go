package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/keeponfirst/localbrain/internal/config"
	"github.com/keeponfirst/localbrain/internal/loghome"
	"github.com/keeponfirst/localbrain/internal/notion"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"token missing", config.ErrTokenMissing, ErrTokenMissing},
		{"not initialized", fmt.Errorf("publish: %w", notion.ErrNotInitialized), ErrNotInitialized},
		{"log home", fmt.Errorf("%w: set X", loghome.ErrUnresolvableHome), ErrLogHomeUnresolved},
		{"unauthorized", &notion.APIError{Status: 401, Code: "unauthorized"}, ErrNotionUnauthorized},
		{"not found", fmt.Errorf("create page: %w", &notion.APIError{Status: 404}), ErrNotionNotFound},
		{"other api", &notion.APIError{Status: 500}, ErrNotionError},
		{"unknown", errors.New("boom"), ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := classifyError(tt.err)
			if got != tt.want {
				t.Errorf("classifyError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandleClassifiedFallback(t *testing.T) {
	withJSONOutput(t)

	out := captureStdout(t, func() {
		if err := handleClassified(errors.New("disk full"), ErrFileWriteError); !errors.Is(err, errSilent) {
			t.Errorf("handleClassified() = %v, want errSilent", err)
		}
	})

	var resp Response
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("invalid JSON: %v; out=%s", err, out)
	}
	if resp.OK || resp.Error == nil || resp.Error.Code != ErrFileWriteError {
		t.Fatalf("unexpected response: %s", out)
	}
}

func TestHandleErrorTextModeAppendsSuggestion(t *testing.T) {
	prev := jsonOutput
	t.Cleanup(func() { jsonOutput = prev })
	jsonOutput = false

	base := errors.New("parent missing")
	err := handleError(ErrNotInitialized, base, "run brain init")
	if !errors.Is(err, base) {
		t.Fatalf("handleError() should wrap the original error, got %v", err)
	}
	if !strings.Contains(err.Error(), "run brain init") {
		t.Errorf("error %q does not mention suggestion", err.Error())
	}
}
