package notion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/keeponfirst/localbrain/internal/blocks"
)

type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   map[string]any
}

type fakeNotion struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  func(w http.ResponseWriter, r recordedRequest)
}

func (f *fakeNotion) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone()}
	raw, _ := io.ReadAll(r.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &rec.Body)
	}
	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()
	f.handler(w, rec)
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r recordedRequest)) (*Client, *fakeNotion) {
	t.Helper()
	fake := &fakeNotion{handler: handler}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	c := NewClient(Options{
		Token:             "secret_test",
		BaseURL:           srv.URL,
		RequestsPerSecond: 1000,
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return c, fake
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func pageCreated(w http.ResponseWriter, r recordedRequest) {
	if r.Method == http.MethodPost && r.Path == "/v1/pages" {
		writeJSON(w, 200, map[string]any{"object": "page", "id": "page-1", "url": "https://notion.so/page-1"})
		return
	}
	writeJSON(w, 200, map[string]any{"object": "list"})
}

func paragraphs(n int) []blocks.Block {
	out := make([]blocks.Block, n)
	for i := range out {
		out[i] = blocks.Paragraph{Text: "p"}
	}
	return out
}

func TestCreatePageInPageMode(t *testing.T) {
	c, fake := newTestClient(t, pageCreated)

	page, err := c.CreatePage(context.Background(), PageParent("parent-1"), "Hello", paragraphs(3))
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	if page.ID != "page-1" || page.URL != "https://notion.so/page-1" {
		t.Fatalf("page = %+v", page)
	}
	if len(fake.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(fake.requests))
	}
	req := fake.requests[0]
	if got := req.Header.Get("Authorization"); got != "Bearer secret_test" {
		t.Fatalf("Authorization = %q", got)
	}
	if got := req.Header.Get("Notion-Version"); got != DefaultVersion {
		t.Fatalf("Notion-Version = %q, want %q", got, DefaultVersion)
	}
	parent := req.Body["parent"].(map[string]any)
	if parent["page_id"] != "parent-1" {
		t.Fatalf("parent = %v", parent)
	}
	props := req.Body["properties"].(map[string]any)
	if _, ok := props["title"]; !ok {
		t.Fatalf("page mode should use the title property: %v", props)
	}
	if n := len(req.Body["children"].([]any)); n != 3 {
		t.Fatalf("children = %d, want 3", n)
	}
}

func TestCreatePageInDatabaseMode(t *testing.T) {
	c, fake := newTestClient(t, pageCreated)

	if _, err := c.CreatePage(context.Background(), DatabaseParent("db-1"), "Row", nil); err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	req := fake.requests[0]
	if parent := req.Body["parent"].(map[string]any); parent["database_id"] != "db-1" {
		t.Fatalf("parent = %v", parent)
	}
	if _, ok := req.Body["properties"].(map[string]any)["Name"]; !ok {
		t.Fatalf("database mode should use the Name property: %v", req.Body["properties"])
	}
	if _, ok := req.Body["children"]; ok {
		t.Fatal("children should be omitted when there are no blocks")
	}
}

func TestCreatePageChunksChildren(t *testing.T) {
	c, fake := newTestClient(t, pageCreated)

	if _, err := c.CreatePage(context.Background(), PageParent("parent-1"), "Long", paragraphs(250)); err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	if len(fake.requests) != 3 {
		t.Fatalf("requests = %d, want 3", len(fake.requests))
	}
	wantSizes := []int{100, 100, 50}
	for i, req := range fake.requests {
		if i > 0 {
			if req.Method != http.MethodPatch || req.Path != "/v1/blocks/page-1/children" {
				t.Fatalf("request %d = %s %s", i, req.Method, req.Path)
			}
		}
		if n := len(req.Body["children"].([]any)); n != wantSizes[i] {
			t.Fatalf("request %d children = %d, want %d", i, n, wantSizes[i])
		}
	}
}

func TestCreatePagePartialAppendFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		if r.Method == http.MethodPatch {
			writeJSON(w, 400, map[string]any{"object": "error", "status": 400, "code": "validation_error", "message": "bad block"})
			return
		}
		pageCreated(w, r)
	})

	page, err := c.CreatePage(context.Background(), PageParent("parent-1"), "Long", paragraphs(150))
	if err == nil {
		t.Fatal("expected append error")
	}
	if page.ID != "page-1" {
		t.Fatalf("partial page should be returned, got %+v", page)
	}
}

func TestCreatePageWithoutParent(t *testing.T) {
	c, fake := newTestClient(t, pageCreated)
	_, err := c.CreatePage(context.Background(), PageParent(""), "x", nil)
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("err = %v, want ErrNotInitialized", err)
	}
	if len(fake.requests) != 0 {
		t.Fatalf("no request should be sent, got %d", len(fake.requests))
	}
}

func TestAPIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		writeJSON(w, 404, map[string]any{"object": "error", "status": 404, "code": "object_not_found", "message": "Could not find page"})
	})

	_, err := c.RetrievePage(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != 404 || apiErr.Code != "object_not_found" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
	if apiErr.Hint() == "" {
		t.Fatal("expected a hint for 404")
	}
	if !IsStatus(err, http.StatusNotFound) {
		t.Fatal("IsStatus(404) = false")
	}
}

func TestRateLimitedRequestIsRetried(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		calls++
		if calls == 1 {
			w.Header().Set(HeaderRetryAfter, "0")
			writeJSON(w, 429, map[string]any{"code": "rate_limited", "message": "slow down"})
			return
		}
		writeJSON(w, 200, map[string]any{"object": "user", "id": "bot-1", "name": "brain"})
	})

	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user.ID != "bot-1" || calls != 2 {
		t.Fatalf("user = %+v calls = %d", user, calls)
	}
}

func TestRateLimitGivesUp(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		calls++
		w.Header().Set(HeaderRetryAfter, "0")
		writeJSON(w, 429, map[string]any{"code": "rate_limited", "message": "slow down"})
	})

	_, err := c.Me(context.Background())
	if !IsStatus(err, http.StatusTooManyRequests) {
		t.Fatalf("err = %v, want 429 APIError", err)
	}
	if calls != MaxRetries+1 {
		t.Fatalf("calls = %d, want %d", calls, MaxRetries+1)
	}
}

func TestSearch(t *testing.T) {
	c, fake := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		writeJSON(w, 200, map[string]any{
			"object": "list",
			"results": []any{
				map[string]any{
					"object": "page", "id": "p1", "url": "u1", "last_edited_time": "2026-01-02T00:00:00.000Z",
					"properties": map[string]any{
						"Name": map[string]any{"type": "title", "title": []any{map[string]any{"plain_text": "First"}}},
					},
				},
				map[string]any{"object": "database", "id": "d1", "title": []any{map[string]any{"plain_text": "Records"}}},
				map[string]any{"object": "page", "id": "p2", "properties": map[string]any{}},
			},
		})
	})

	got, err := c.Search(context.Background(), SearchOptions{Query: "first", Filter: FilterPage, PageSize: 20})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("results = %d, want 2 pages", len(got))
	}
	if got[0].DisplayTitle() != "First" || got[1].DisplayTitle() != "Untitled" {
		t.Fatalf("titles = %q, %q", got[0].DisplayTitle(), got[1].DisplayTitle())
	}

	body := fake.requests[0].Body
	if body["query"] != "first" || body["page_size"] != float64(20) {
		t.Fatalf("search body = %v", body)
	}
	if f := body["filter"].(map[string]any); f["value"] != "page" {
		t.Fatalf("filter = %v", f)
	}
}

func TestPing(t *testing.T) {
	c, fake := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		writeJSON(w, 200, map[string]any{"object": "ok", "id": "x"})
	})
	ctx := context.Background()
	for _, p := range []Parent{{}, DatabaseParent("db"), PageParent("pg")} {
		if err := c.Ping(ctx, p); err != nil {
			t.Fatalf("Ping(%+v): %v", p, err)
		}
	}
	want := []string{"/v1/users/me", "/v1/databases/db", "/v1/pages/pg"}
	for i, req := range fake.requests {
		if req.Path != want[i] {
			t.Fatalf("request %d path = %q, want %q", i, req.Path, want[i])
		}
	}
}

func TestDecodeAPIErrorNonJSON(t *testing.T) {
	err := decodeAPIError(502, []byte("bad gateway\n"))
	if !strings.Contains(err.Error(), "502") || !strings.Contains(err.Error(), "bad gateway") {
		t.Fatalf("err = %v", err)
	}
}
