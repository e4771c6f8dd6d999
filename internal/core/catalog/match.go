package catalog

import "strings"

// Match returns the first entry whose trimmed batch code equals the trimmed
// input. Comparison is case-sensitive and blank input never matches
func Match(code string, entries []BatchEntry) (BatchEntry, bool) {
	in := strings.TrimSpace(code)
	if in == "" {
		return BatchEntry{}, false
	}
	for _, e := range entries {
		if strings.TrimSpace(e.BatchCode) == in {
			return e, true
		}
	}
	return BatchEntry{}, false
}

// Index answers Match in constant time for a fixed catalog
type Index struct {
	byCode  map[string]int
	entries []BatchEntry
}

// NewIndex keys entries by trimmed batch code, keeping the first occurrence
func NewIndex(entries []BatchEntry) *Index {
	ix := &Index{byCode: make(map[string]int, len(entries)), entries: entries}
	for i, e := range entries {
		k := strings.TrimSpace(e.BatchCode)
		if k == "" {
			continue
		}
		if _, seen := ix.byCode[k]; !seen {
			ix.byCode[k] = i
		}
	}
	return ix
}

// Match behaves like the package level Match over the indexed entries
func (ix *Index) Match(code string) (BatchEntry, bool) {
	if ix == nil {
		return BatchEntry{}, false
	}
	i, ok := ix.byCode[strings.TrimSpace(code)]
	if !ok {
		return BatchEntry{}, false
	}
	return ix.entries[i], true
}

// Len is the number of indexed entries, duplicates included
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// Entries returns the indexed entries in catalog order
func (ix *Index) Entries() []BatchEntry {
	if ix == nil {
		return nil
	}
	return ix.entries
}
