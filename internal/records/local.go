package records

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/keeponfirst/localbrain/internal/atomicfile"
	"github.com/keeponfirst/localbrain/internal/slugs"
)

const fileTimeLayout = "20060102_150405"

// LocalRecord is the JSON mirror of a captured record.
type LocalRecord struct {
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	CreatedAt    string   `json:"created_at"`
	NotionPageID *string  `json:"notion_page_id"`
	NotionURL    *string  `json:"notion_url"`
	SourceText   string   `json:"source_text"`
	FinalBody    string   `json:"final_body"`
	Tags         []string `json:"tags"`
	Date         *string  `json:"date"`
}

// NewLocalRecord builds the local mirror of r. pageID and url may be empty.
func NewLocalRecord(r Record, createdAt time.Time, pageID, url string) LocalRecord {
	lr := LocalRecord{
		Type:       r.Type,
		Title:      r.Title,
		CreatedAt:  createdAt.Format(time.RFC3339),
		SourceText: r.SourceText,
		FinalBody:  r.Body,
		Tags:       r.Tags,
	}
	if lr.Tags == nil {
		lr.Tags = []string{}
	}
	if pageID != "" {
		lr.NotionPageID = &pageID
	}
	if url != "" {
		lr.NotionURL = &url
	}
	if r.Date != "" {
		d := r.Date
		lr.Date = &d
	}
	return lr
}

// RenderMarkdown renders the human-readable mirror of a record.
func RenderMarkdown(lr LocalRecord) string {
	lines := []string{
		fmt.Sprintf("# %s %s", Icon(lr.Type), lr.Title),
		"",
		"**Type:** " + strings.ToUpper(lr.Type),
		"**Created:** " + lr.CreatedAt,
	}
	if lr.Date != nil {
		lines = append(lines, "**Date:** "+*lr.Date)
	}
	if len(lr.Tags) > 0 {
		lines = append(lines, "**Tags:** "+strings.Join(lr.Tags, ", "))
	}
	if lr.NotionURL != nil {
		short := ""
		if lr.NotionPageID != nil {
			short = *lr.NotionPageID
			if len(short) > 8 {
				short = short[:8]
			}
		}
		lines = append(lines, fmt.Sprintf("**Notion:** [%s...](%s)", short, *lr.NotionURL))
	}
	lines = append(lines,
		"",
		"---",
		"",
		lr.FinalBody,
		"",
		"---",
		"",
		"## Original Input",
		"",
		quote(lr.SourceText),
	)
	return strings.Join(lines, "\n") + "\n"
}

func quote(s string) string {
	if s == "" {
		return ">"
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("> "+l, " ")
	}
	return strings.Join(lines, "\n")
}

// Store writes local record mirrors under a records directory.
type Store struct {
	Dir string
	Now func() time.Time
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir, Now: time.Now}
}

// Paths returns the markdown and JSON paths a record saved at t would use.
func (s *Store) Paths(lr LocalRecord, t time.Time) (mdPath, jsonPath string) {
	base := fmt.Sprintf("%s_%s_%s", t.Format(fileTimeLayout), lr.Type, slugs.Record(lr.Title, slugs.MaxLength))
	dir := filepath.Join(s.Dir, Dir(lr.Type))
	return filepath.Join(dir, base+".md"), filepath.Join(dir, base+".json")
}

// Save writes lr as JSON and markdown and returns both paths.
func (s *Store) Save(lr LocalRecord) (mdPath, jsonPath string, err error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	mdPath, jsonPath = s.Paths(lr, now())

	if err := atomicfile.WriteJSON(jsonPath, lr, 0o644); err != nil {
		return "", "", fmt.Errorf("save record json: %w", err)
	}
	if err := atomicfile.WriteFile(mdPath, []byte(RenderMarkdown(lr)), 0o644); err != nil {
		return "", jsonPath, fmt.Errorf("save record markdown: %w", err)
	}
	return mdPath, jsonPath, nil
}
