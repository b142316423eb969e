package records

import (
	"context"
	"fmt"
	"time"

	"github.com/keeponfirst/localbrain/internal/blocks"
	"github.com/keeponfirst/localbrain/internal/notion"
)

// Publisher creates pages in the document service.
type Publisher interface {
	CreatePage(ctx context.Context, parent notion.Parent, title string, content []blocks.Block) (notion.Page, error)
}

// Result describes a completed (or simulated) write.
type Result struct {
	Success      bool        `json:"success"`
	DryRun       bool        `json:"dry_run"`
	NotionPageID *string     `json:"notion_page_id"`
	NotionURL    *string     `json:"notion_url"`
	LocalMD      string      `json:"local_md,omitempty"`
	LocalJSON    string      `json:"local_json,omitempty"`
	Record       LocalRecord `json:"record"`
}

// Writer publishes records and mirrors them locally. The two writes are
// independent: a failed local save after a successful publish is reported but
// the page is not removed.
type Writer struct {
	Publisher Publisher
	Parent    notion.Parent
	Store     *Store
	Now       func() time.Time
}

// Write publishes rec (unless dryRun) and saves the local mirror (unless
// dryRun).
func (w *Writer) Write(ctx context.Context, rec Record, dryRun bool) (Result, error) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}

	var page notion.Page
	if !dryRun {
		if w.Parent.ID == "" {
			return Result{}, notion.ErrNotInitialized
		}
		var err error
		page, err = w.Publisher.CreatePage(ctx, w.Parent, rec.Title, PageBlocks(rec))
		if err != nil {
			return Result{}, fmt.Errorf("publish record: %w", err)
		}
	}

	lr := NewLocalRecord(rec, now(), page.ID, page.URL)
	res := Result{
		Success:      true,
		DryRun:       dryRun,
		NotionPageID: lr.NotionPageID,
		NotionURL:    lr.NotionURL,
		Record:       lr,
	}
	if dryRun {
		return res, nil
	}

	md, js, err := w.Store.Save(lr)
	if err != nil {
		res.Success = false
		return res, err
	}
	res.LocalMD, res.LocalJSON = md, js
	return res, nil
}

// LogData is the central log payload for a write.
func (r Result) LogData() map[string]any {
	var url any
	if r.NotionURL != nil {
		url = *r.NotionURL
	}
	return map[string]any{
		"record_type": r.Record.Type,
		"title":       r.Record.Title,
		"notion_url":  url,
		"local_path":  r.LocalMD,
		"tags":        r.Record.Tags,
	}
}

// Intent is the central log intent for a record type.
func Intent(recordType string) string {
	return "capture_" + recordType
}
