package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// NotionRequest is a request received by NotionServer.
type NotionRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]interface{}
}

// NotionServer is an in-memory fake of the Notion endpoints brain uses.
type NotionServer struct {
	URL string

	mu       sync.Mutex
	requests []NotionRequest
	pages    int
	// SearchResults is returned by POST /v1/search.
	SearchResults []map[string]interface{}
	// FailStatus, when non-zero, is returned for every request.
	FailStatus int
}

// NewNotionServer starts a fake Notion API closed at test cleanup.
func NewNotionServer(t *testing.T) *NotionServer {
	t.Helper()
	n := &NotionServer{}
	srv := httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(srv.Close)
	n.URL = srv.URL
	return n
}

func (n *NotionServer) serve(w http.ResponseWriter, r *http.Request) {
	req := NotionRequest{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
	raw, _ := io.ReadAll(r.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &req.Body)
	}

	n.mu.Lock()
	n.requests = append(n.requests, req)
	fail := n.FailStatus
	n.mu.Unlock()

	if fail != 0 {
		writeJSON(w, fail, map[string]interface{}{
			"object":  "error",
			"status":  fail,
			"code":    "fake_error",
			"message": http.StatusText(fail),
		})
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v1/pages":
		n.mu.Lock()
		n.pages++
		id := fmt.Sprintf("00000000-0000-0000-0000-%012d", n.pages)
		n.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"object": "page",
			"id":     id,
			"url":    "https://www.notion.so/" + strings.ReplaceAll(id, "-", ""),
		})
	case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/v1/blocks/"):
		writeJSON(w, http.StatusOK, map[string]interface{}{"object": "list", "results": []interface{}{}})
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/pages/"):
		writeJSON(w, http.StatusOK, map[string]interface{}{"object": "page", "id": strings.TrimPrefix(r.URL.Path, "/v1/pages/")})
	case r.Method == http.MethodGet && r.URL.Path == "/v1/users/me":
		writeJSON(w, http.StatusOK, map[string]interface{}{"object": "user", "id": "bot", "type": "bot", "name": "brain"})
	case r.Method == http.MethodPost && r.URL.Path == "/v1/search":
		n.mu.Lock()
		results := n.SearchResults
		n.mu.Unlock()
		if results == nil {
			results = []map[string]interface{}{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"object": "list", "results": results, "has_more": false})
	default:
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"object": "error", "status": 404, "code": "object_not_found", "message": "not found"})
	}
}

// Requests returns the requests received so far.
func (n *NotionServer) Requests() []NotionRequest {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]NotionRequest(nil), n.requests...)
}

// RequestsTo returns requests matching method and path prefix.
func (n *NotionServer) RequestsTo(method, pathPrefix string) []NotionRequest {
	var out []NotionRequest
	for _, r := range n.Requests() {
		if r.Method == method && strings.HasPrefix(r.Path, pathPrefix) {
			out = append(out, r)
		}
	}
	return out
}

// SearchPage builds a page object for SearchResults.
func SearchPage(id, title, lastEdited string) map[string]interface{} {
	return map[string]interface{}{
		"object":           "page",
		"id":               id,
		"url":              "https://www.notion.so/" + id,
		"last_edited_time": lastEdited,
		"properties": map[string]interface{}{
			"title": map[string]interface{}{
				"type":  "title",
				"title": []interface{}{map[string]interface{}{"type": "text", "text": map[string]interface{}{"content": title}, "plain_text": title}},
			},
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
