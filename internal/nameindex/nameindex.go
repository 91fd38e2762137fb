// Package nameindex maintains the display-name to user-id lookup used by the
// downstream memory agent. The index keeps the latest name seen per user and
// resolves queries by normalized exact match with a substring fallback.
package nameindex

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"corpus-audit/internal/message"
	"corpus-audit/internal/textnorm"
)

type Index struct {
	Num2ID map[string]string `json:"num2id"`
}

// Build picks the latest user_name seen per user_id (corpus order) and maps
// each normalized name to its id. Records missing either field are skipped.
func Build(msgs []message.Record) Index {
	latest := make(map[string]string)
	for _, m := range msgs {
		if m.UserID != "" && m.UserName != "" {
			latest[m.UserID] = m.UserName
		}
	}

	num2id := make(map[string]string, len(latest))
	for uid, name := range latest {
		num2id[textnorm.NormalizeName(name)] = uid
	}
	return Index{Num2ID: num2id}
}

// Resolve normalizes the query and looks it up, falling back to the first
// substring match over sorted keys so repeated lookups agree.
func (idx Index) Resolve(nameOrID string) (string, bool) {
	q := textnorm.NormalizeName(nameOrID)
	if q == "" {
		return "", false
	}
	if uid, ok := idx.Num2ID[q]; ok {
		return uid, true
	}

	keys := make([]string, 0, len(idx.Num2ID))
	for k := range idx.Num2ID {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(k, q) {
			return idx.Num2ID[k], true
		}
	}
	return "", false
}

func Save(idx Index, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(idx); err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	return nil
}

func Load(path string) (Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Index{}, fmt.Errorf("read index file: %w", err)
	}

	var idx Index
	if err := json.Unmarshal(raw, &idx); err != nil {
		return Index{}, fmt.Errorf("decode index file: %w", err)
	}
	if idx.Num2ID == nil {
		idx.Num2ID = make(map[string]string)
	}
	return idx, nil
}
