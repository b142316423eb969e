package cli

import (
	"errors"
	"net/http"

	"github.com/keeponfirst/localbrain/internal/config"
	"github.com/keeponfirst/localbrain/internal/loghome"
	"github.com/keeponfirst/localbrain/internal/notion"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Configuration errors
	ErrConfigInvalid = "CONFIG_INVALID"
	ErrTokenMissing  = "TOKEN_MISSING"

	// Log home errors
	ErrLogHomeUnresolved = "LOG_HOME_UNRESOLVED"

	// Notion errors
	ErrNotionError        = "NOTION_ERROR"
	ErrNotionUnauthorized = "NOTION_UNAUTHORIZED"
	ErrNotionNotFound     = "NOTION_NOT_FOUND"
	ErrNotInitialized     = "NOT_INITIALIZED"
	ErrAlreadyInitialized = "ALREADY_INITIALIZED"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// Health
	ErrHealthCheckFailed = "HEALTH_CHECK_FAILED"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
	ErrCanceled = "CANCELED"
)

// Warning codes for non-fatal issues.
const (
	WarnCentralLogSkipped = "CENTRAL_LOG_SKIPPED"
	WarnPartialPage       = "PARTIAL_PAGE"
)

// classifyError maps well-known errors to an error code and suggestion.
func classifyError(err error) (string, string) {
	var apiErr *notion.APIError
	switch {
	case errors.Is(err, config.ErrTokenMissing):
		return ErrTokenMissing, "Add NOTION_TOKEN to .env or run 'brain config init'"
	case errors.Is(err, notion.ErrNotInitialized):
		return ErrNotInitialized, "Run 'brain init <page-url>' with a page shared with your integration"
	case errors.Is(err, loghome.ErrUnresolvableHome):
		return ErrLogHomeUnresolved, "Set " + loghome.DefaultEnvVar + " or run brain from a terminal to configure it"
	case errors.As(err, &apiErr):
		switch apiErr.Status {
		case http.StatusUnauthorized:
			return ErrNotionUnauthorized, apiErr.Hint()
		case http.StatusNotFound:
			return ErrNotionNotFound, apiErr.Hint()
		}
		return ErrNotionError, apiErr.Hint()
	}
	return ErrInternal, ""
}

// handleClassified reports err under the code classifyError picks, using
// fallback when nothing more specific matches.
func handleClassified(err error, fallback string) error {
	code, suggestion := classifyError(err)
	if code == ErrInternal && fallback != "" {
		code = fallback
	}
	return handleError(code, err, suggestion)
}
