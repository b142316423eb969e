package notion

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/keeponfirst/localbrain/internal/blocks"
)

// ParentKind selects how a new page is attached.
type ParentKind string

const (
	ParentPage     ParentKind = "page_id"
	ParentDatabase ParentKind = "database_id"
)

// Parent identifies where a page is created.
type Parent struct {
	Kind ParentKind
	ID   string
}

// PageParent and DatabaseParent build parents.
func PageParent(id string) Parent     { return Parent{Kind: ParentPage, ID: id} }
func DatabaseParent(id string) Parent { return Parent{Kind: ParentDatabase, ID: id} }

// titleProperty is "Name" for database rows and "title" for plain pages.
func (p Parent) titleProperty() string {
	if p.Kind == ParentDatabase {
		return "Name"
	}
	return "title"
}

// Property is a page property; only titles are decoded.
type Property struct {
	Type  string     `json:"type"`
	Title []RichText `json:"title,omitempty"`
}

// Object is a page or database as returned by the API.
type Object struct {
	Object         string              `json:"object"`
	ID             string              `json:"id"`
	URL            string              `json:"url"`
	CreatedTime    string              `json:"created_time,omitempty"`
	LastEditedTime string              `json:"last_edited_time,omitempty"`
	Properties     map[string]Property `json:"properties,omitempty"`
	// Title is set on databases.
	Title []RichText `json:"title,omitempty"`
}

// DisplayTitle returns the object's title, or "Untitled".
func (o Object) DisplayTitle() string {
	if t := joinRichText(o.Title); t != "" {
		return t
	}
	for _, p := range o.Properties {
		if p.Type == "title" {
			if t := joinRichText(p.Title); t != "" {
				return t
			}
		}
	}
	return "Untitled"
}

func joinRichText(rt []RichText) string {
	var b strings.Builder
	for _, r := range rt {
		b.WriteString(r.Content())
	}
	return strings.TrimSpace(b.String())
}

// Page is the result of creating a page.
type Page struct {
	ID  string `json:"page_id"`
	URL string `json:"url"`
}

// CreatePage creates a page under parent with the given title and blocks.
// Blocks beyond the per-request limit are appended in follow-up calls; if an
// append fails the page exists with partial content and the error is returned
// alongside it.
func (c *Client) CreatePage(ctx context.Context, parent Parent, title string, content []blocks.Block) (Page, error) {
	if parent.ID == "" {
		return Page{}, ErrNotInitialized
	}
	batches := chunk(EncodeBlocks(content), MaxBlocksPerRequest)

	req := map[string]any{
		"parent": map[string]string{string(parent.Kind): parent.ID},
		"properties": map[string]any{
			parent.titleProperty(): map[string]any{"title": NewRichText(title)},
		},
	}
	if len(batches) > 0 {
		req["children"] = batches[0]
	}

	var created Object
	if err := c.do(ctx, "POST", "/v1/pages", req, &created); err != nil {
		return Page{}, fmt.Errorf("create page: %w", err)
	}
	page := Page{ID: created.ID, URL: created.URL}

	for i := 1; i < len(batches); i++ {
		if err := c.appendEncoded(ctx, page.ID, batches[i]); err != nil {
			return page, fmt.Errorf("append blocks (batch %d of %d): %w", i+1, len(batches), err)
		}
	}
	return page, nil
}

// AppendChildren appends blocks to an existing block or page.
func (c *Client) AppendChildren(ctx context.Context, blockID string, content []blocks.Block) error {
	for _, batch := range chunk(EncodeBlocks(content), MaxBlocksPerRequest) {
		if err := c.appendEncoded(ctx, blockID, batch); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) appendEncoded(ctx context.Context, blockID string, batch []BlockJSON) error {
	path := "/v1/blocks/" + url.PathEscape(blockID) + "/children"
	return c.do(ctx, "PATCH", path, map[string]any{"children": batch}, nil)
}

// RetrievePage fetches a page.
func (c *Client) RetrievePage(ctx context.Context, id string) (Object, error) {
	var out Object
	err := c.do(ctx, "GET", "/v1/pages/"+url.PathEscape(id), nil, &out)
	return out, err
}

// RetrieveDatabase fetches a database.
func (c *Client) RetrieveDatabase(ctx context.Context, id string) (Object, error) {
	var out Object
	err := c.do(ctx, "GET", "/v1/databases/"+url.PathEscape(id), nil, &out)
	return out, err
}

// User is the bot user behind the integration token.
type User struct {
	Object string `json:"object"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

// Me returns the integration's bot user; it is the cheapest token check.
func (c *Client) Me(ctx context.Context) (User, error) {
	var out User
	err := c.do(ctx, "GET", "/v1/users/me", nil, &out)
	return out, err
}

// SearchFilter restricts search results to one object type.
type SearchFilter string

const (
	FilterAll      SearchFilter = ""
	FilterPage     SearchFilter = "page"
	FilterDatabase SearchFilter = "database"
)

// SearchOptions configures Search.
type SearchOptions struct {
	Query    string
	Filter   SearchFilter
	PageSize int
}

type searchResponse struct {
	Results    []Object `json:"results"`
	HasMore    bool     `json:"has_more"`
	NextCursor string   `json:"next_cursor"`
}

// Search runs a single search request sorted by last edit, newest first.
func (c *Client) Search(ctx context.Context, opts SearchOptions) ([]Object, error) {
	req := map[string]any{
		"sort": map[string]string{"direction": "descending", "timestamp": "last_edited_time"},
	}
	if opts.Query != "" {
		req["query"] = opts.Query
	}
	if opts.Filter != FilterAll {
		req["filter"] = map[string]string{"property": "object", "value": string(opts.Filter)}
	}
	if opts.PageSize > 0 {
		req["page_size"] = min(opts.PageSize, 100)
	}

	var resp searchResponse
	if err := c.do(ctx, "POST", "/v1/search", req, &resp); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	out := resp.Results[:0]
	for _, o := range resp.Results {
		if opts.Filter == FilterAll || o.Object == string(opts.Filter) {
			out = append(out, o)
		}
	}
	return out, nil
}

// Ping verifies connectivity. With a parent it retrieves that page or
// database; otherwise it calls Me.
func (c *Client) Ping(ctx context.Context, parent Parent) error {
	var err error
	switch {
	case parent.ID == "":
		_, err = c.Me(ctx)
	case parent.Kind == ParentDatabase:
		_, err = c.RetrieveDatabase(ctx, parent.ID)
	default:
		_, err = c.RetrievePage(ctx, parent.ID)
	}
	return err
}
