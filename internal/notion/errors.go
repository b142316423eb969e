package notion

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotInitialized is returned when a record is written before a parent page
// is known.
var ErrNotInitialized = errors.New("root page not initialized; run 'brain init <page>' or set NOTION_PARENT")

// APIError is a non-2xx response from the Notion API.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("notion: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("notion: %d %s", e.Status, e.Message)
}

// Hint returns a short remediation for common failures, or "".
func (e *APIError) Hint() string {
	switch e.Status {
	case http.StatusUnauthorized:
		return "Check NOTION_TOKEN; the integration token is invalid or revoked"
	case http.StatusForbidden:
		return "Share the page or database with your integration"
	case http.StatusNotFound:
		return "Check NOTION_PARENT and make sure the page is shared with the integration"
	case http.StatusTooManyRequests:
		return "Notion is rate limiting requests; retry shortly"
	}
	return ""
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
