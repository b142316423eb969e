// Package records models captured records (decisions, worklogs, ideas,
// backlogs): parsing capture input, laying them out as Notion pages, and
// mirroring them to local JSON and markdown files.
package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Known record types.
const (
	TypeDecision = "decision"
	TypeWorklog  = "worklog"
	TypeIdea     = "idea"
	TypeBacklog  = "backlog"
)

// Types lists the known record types in display order.
var Types = []string{TypeDecision, TypeWorklog, TypeIdea, TypeBacklog}

const (
	DefaultType  = TypeIdea
	DefaultTitle = "Untitled"
	OtherDir     = "other"
	OtherIcon    = "📄"
)

var typeInfo = map[string]struct {
	icon string
	dir  string
}{
	TypeDecision: {"⚖️", "decisions"},
	TypeWorklog:  {"📝", "worklogs"},
	TypeIdea:     {"💡", "ideas"},
	TypeBacklog:  {"📋", "backlogs"},
}

// Icon returns the emoji for a record type.
func Icon(recordType string) string {
	if info, ok := typeInfo[recordType]; ok {
		return info.icon
	}
	return OtherIcon
}

// Dir returns the records subdirectory for a record type.
func Dir(recordType string) string {
	if info, ok := typeInfo[recordType]; ok {
		return info.dir
	}
	return OtherDir
}

// Record is one capture.
type Record struct {
	Type       string   `json:"type" yaml:"type"`
	Title      string   `json:"title" yaml:"title"`
	Body       string   `json:"body" yaml:"body"`
	SourceText string   `json:"source_text" yaml:"source_text"`
	Date       string   `json:"date,omitempty" yaml:"date,omitempty"`
	Tags       []string `json:"tags" yaml:"tags"`
}

var typePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Normalize trims fields, lowercases the type, applies defaults and drops
// blank tags.
func (r *Record) Normalize() {
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Type == "" {
		r.Type = DefaultType
	}
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		r.Title = DefaultTitle
	}
	r.Date = strings.TrimSpace(r.Date)
	tags := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t != "" {
			tags = append(tags, t)
		}
	}
	r.Tags = tags
}

// Validate checks a normalized record.
func (r *Record) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Type, validation.Required, validation.Match(typePattern)),
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, 2000)),
		validation.Field(&r.Date, validation.Date("2006-01-02")),
	)
}

// Format is a capture input encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatAuto
}

// ParseInput reads a record in the given format, normalizes it and validates
// it. FormatAuto treats input starting with '{' as JSON and anything else as
// YAML.
func ParseInput(r io.Reader, format Format) (Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Record{}, fmt.Errorf("read input: %w", err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Record{}, fmt.Errorf("input is empty")
	}
	if format == FormatAuto {
		format = FormatYAML
		if trimmed[0] == '{' {
			format = FormatJSON
		}
	}

	var rec Record
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(trimmed, &rec); err != nil {
			return Record{}, fmt.Errorf("parse JSON input: %w", err)
		}
	case FormatYAML:
		// Block scalars depend on the trailing newline.
		if err := yaml.Unmarshal(raw, &rec); err != nil {
			return Record{}, fmt.Errorf("parse YAML input: %w", err)
		}
	default:
		return Record{}, fmt.Errorf("unsupported input format %q", format)
	}

	rec.Normalize()
	if err := rec.Validate(); err != nil {
		return Record{}, fmt.Errorf("invalid record: %w", err)
	}
	return rec, nil
}
