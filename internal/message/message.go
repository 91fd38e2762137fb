package message

import (
	"encoding/json"
	"fmt"
)

// Record is one chat message exactly as the source serves it. Every field is
// kept as a raw string: timestamps are not guaranteed parseable and ids are
// not guaranteed well formed, so nothing here coerces or validates. Absent
// fields decode to the empty string.
type Record struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

// Page is the wire envelope of the paginated messages endpoint.
type Page struct {
	Total int      `json:"total"`
	Items []Record `json:"items"`
}

func ParsePage(raw []byte) (Page, error) {
	var page Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return Page{}, fmt.Errorf("unmarshal page: %w", err)
	}
	return page, nil
}

// ParseCorpus accepts either a Page object or a bare JSON array of records,
// so locally materialized snapshots work the same as API responses.
func ParseCorpus(raw []byte) ([]Record, error) {
	var items []Record
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	page, err := ParsePage(raw)
	if err != nil {
		return nil, fmt.Errorf("corpus is neither a record array nor a page: %w", err)
	}
	return page.Items, nil
}
