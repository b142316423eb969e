// Package state reads and writes the small JSON state files kept next to the
// installation: the log home provenance (config.json) and auto-generated
// settings such as the root page id (.local_state.json).
//
// Files are read permissively: a missing or malformed file is an empty
// State. Writes are read-modify-write with no locking; concurrent writers may
// drop each other's keys.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/keeponfirst/localbrain/internal/atomicfile"
)

// State is a JSON object keyed by strings. Nested objects are map[string]any.
type State map[string]any

// Load reads the state file at path. It never fails: a missing, unreadable
// or malformed file yields an empty State.
func Load(path string) State {
	if strings.TrimSpace(path) == "" {
		return State{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil || s == nil {
		return State{}
	}
	return s
}

// Save writes s to path as indented JSON, creating parent directories.
func Save(path string, s State) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("state path is required")
	}
	if s == nil {
		s = State{}
	}
	if err := atomicfile.WriteJSON(path, s, 0o644); err != nil {
		return fmt.Errorf("failed to write state %s: %w", path, err)
	}
	return nil
}

// Lookup follows keys through nested objects and returns the value found.
func (s State) Lookup(keys ...string) (any, bool) {
	if len(keys) == 0 {
		return nil, false
	}
	var cur any = map[string]any(s)
	for _, k := range keys {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[k]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// String returns the string at the nested key path. Non-string and empty
// values report ok=false.
func (s State) String(keys ...string) (string, bool) {
	v, ok := s.Lookup(keys...)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	if !ok || strings.TrimSpace(str) == "" {
		return "", false
	}
	return str, true
}

// Set stores value at the nested key path, replacing any non-object values
// found along the way.
func (s State) Set(value any, keys ...string) {
	if len(keys) == 0 {
		return
	}
	obj := map[string]any(s)
	for _, k := range keys[:len(keys)-1] {
		next, ok := obj[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			obj[k] = next
		}
		obj = next
	}
	obj[keys[len(keys)-1]] = value
}

// Update loads the state at path, applies fn and saves the result.
func Update(path string, fn func(State)) error {
	s := Load(path)
	fn(s)
	return Save(path, s)
}
