// Package content holds the static puzzle content: the clue-code table and
// the question list, plus the paging used to browse questions.
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// CodeEntry is the pre-authored content behind one clue code.
type CodeEntry struct {
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

// Table is the static code lookup table. Loaded once at startup, never
// mutated afterwards.
type Table struct {
	codes map[string]CodeEntry
}

// Normalize canonicalises a raw code attempt: trim surrounding whitespace and
// uppercase. The leading '#' is part of the code and is kept.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// NewTable builds a table from a code → entry map. Keys are normalised so
// lookups are case-insensitive.
func NewTable(codes map[string]CodeEntry) *Table {
	normalized := make(map[string]CodeEntry, len(codes))
	for code, entry := range codes {
		normalized[Normalize(code)] = entry
	}
	return &Table{codes: normalized}
}

// LoadTable reads a JSON code table from path. An empty path yields the
// built-in default table.
func LoadTable(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return NewTable(defaultCodes), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read code table: %w", err)
	}
	var codes map[string]CodeEntry
	if err := json.Unmarshal(data, &codes); err != nil {
		return nil, fmt.Errorf("parse code table: %w", err)
	}
	return NewTable(codes), nil
}

// Resolve looks up a code. The input is normalised first, so
// Resolve(" #ab12 ") and Resolve("#AB12") are the same lookup.
func (t *Table) Resolve(code string) (CodeEntry, bool) {
	entry, ok := t.codes[Normalize(code)]
	return entry, ok
}

// Size returns the number of entries in the table.
func (t *Table) Size() int {
	return len(t.codes)
}

var defaultCodes = map[string]CodeEntry{
	"#04Y8": {Text: "Here is the message for 04Y8", Image: "https://via.placeholder.com/300"},
	"#01EE": {Text: "Message for 01EE"},
}
