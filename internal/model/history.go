package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// History is the ordered list of completion timestamps for a reminder,
// persisted as JSON in a TEXT column.
//
// Rows written by earlier versions of the app may hold the value in several
// shapes: a JSON array, a double-encoded JSON string, or a JSON object keyed
// by index. Scan accepts all of them and falls back to an empty history on
// anything unparseable; a broken column never fails the row.
type History []string

func (h *History) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*h = nil
	case []byte:
		*h = normalizeHistory(v)
	case string:
		*h = normalizeHistory([]byte(v))
	default:
		*h = nil
	}
	return nil
}

func (h History) Value() (driver.Value, error) {
	if h == nil {
		h = History{}
	}
	b, err := json.Marshal([]string(h))
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	return string(b), nil
}

func normalizeHistory(raw []byte) History {
	if len(raw) == 0 {
		return nil
	}

	var entries []string
	if err := json.Unmarshal(raw, &entries); err == nil {
		return entries
	}

	// Double-encoded: the column holds a JSON string whose content is the array.
	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &entries); err == nil {
			return entries
		}
		return nil
	}

	// Object map keyed by index; values in key order.
	var byKey map[string]string
	if err := json.Unmarshal(raw, &byKey); err == nil {
		keys := make([]string, 0, len(byKey))
		for k := range byKey {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			entries = append(entries, byKey[k])
		}
		return entries
	}

	return nil
}
