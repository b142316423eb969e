package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// jsonOutput is set by --json.
var jsonOutput bool

// Response is the envelope printed exactly once by every --json invocation.
type Response struct {
	OK       bool       `json:"ok"`
	Data     any        `json:"data,omitempty"`
	Error    *ErrorInfo `json:"error,omitempty"`
	Warnings []Warning  `json:"warnings,omitempty"`
	Meta     *Meta      `json:"meta,omitempty"`
}

// ErrorInfo describes a failure. Code is one of the Err* constants.
type ErrorInfo struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning is a non-fatal problem reported next to a successful result.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta carries result counts and timings.
type Meta struct {
	Count       int   `json:"count,omitempty"`
	QueryTimeMs int64 `json:"query_time_ms,omitempty"`
}

func isJSONOutput() bool {
	return jsonOutput
}

func writeResponse(w io.Writer, resp Response) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func outputSuccess(data any, meta *Meta) {
	outputSuccessWithWarnings(data, nil, meta)
}

func outputSuccessWithWarnings(data any, warnings []Warning, meta *Meta) {
	_ = writeResponse(os.Stdout, Response{OK: true, Data: data, Warnings: warnings, Meta: meta})
}

func outputError(code, message string, details any, suggestion string) {
	_ = writeResponse(os.Stdout, Response{Error: &ErrorInfo{
		Code:       code,
		Message:    message,
		Details:    details,
		Suggestion: suggestion,
	}})
}

// fail reports err under code. In JSON mode it prints the error envelope and
// returns errSilent, so the process still exits 1 without printing twice. In
// text mode the suggestion is appended to the returned error.
func fail(code string, err error, suggestion string, details any) error {
	if jsonOutput {
		outputError(code, err.Error(), details, suggestion)
		return errSilent
	}
	if suggestion != "" {
		return fmt.Errorf("%w\n  %s", err, suggestion)
	}
	return err
}

func handleError(code string, err error, suggestion string) error {
	return fail(code, err, suggestion, nil)
}

func handleErrorMsg(code, message, suggestion string) error {
	return fail(code, errors.New(message), suggestion, nil)
}

// handleErrorWithDetails attaches structured details in JSON mode.
func handleErrorWithDetails(code string, err error, suggestion string, details any) error {
	return fail(code, err, suggestion, details)
}
