package salesdash

import (
	"fmt"
	"sort"
	"strings"
)

// Selection is a set of allowed category values. A nil Selection allows every
// value; an empty non-nil Selection allows none.
type Selection map[string]struct{}

// NewSelection returns a non-nil selection holding values.
func NewSelection(values ...string) Selection {
	s := make(Selection, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func AllRegions() Selection  { return NewSelection(regions...) }
func AllProducts() Selection { return NewSelection(products...) }

func (s Selection) Contains(v string) bool {
	if s == nil {
		return true
	}
	_, ok := s[v]
	return ok
}

// Values returns the selected values sorted, or nil for a nil selection.
func (s Selection) Values() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ParseSelection parses a comma separated list of values for key. An empty
// string or "all" yields nil. "none" yields an empty selection.
func ParseSelection(key Key, csv string) (Selection, error) {
	if !key.valid() {
		return nil, fmt.Errorf("key %d: %w", int(key), ErrInvalidParameter)
	}
	csv = strings.TrimSpace(csv)
	switch strings.ToLower(csv) {
	case "", "all":
		return nil, nil
	case "none":
		return NewSelection(), nil
	}
	s := NewSelection()
	for _, part := range strings.Split(csv, ",") {
		v, ok := lookup(key, strings.TrimSpace(part))
		if !ok {
			return nil, fmt.Errorf("unknown %s %q: %w", key, part, ErrInvalidParameter)
		}
		s[v] = struct{}{}
	}
	return s, nil
}

func lookup(key Key, v string) (string, bool) {
	for _, known := range key.values() {
		if strings.EqualFold(known, v) {
			return known, true
		}
	}
	return "", false
}

// Filter returns the records whose region is in regions and whose product is
// in products, in their original order. The input is not modified.
func Filter(records []SalesRecord, regions, products Selection) []SalesRecord {
	out := make([]SalesRecord, 0, len(records))
	for _, r := range records {
		if regions.Contains(r.Region) && products.Contains(r.Product) {
			out = append(out, r)
		}
	}
	return out
}

// IsEmptySelection reports whether a filter with these selections can match
// no record at all.
func IsEmptySelection(regions, products Selection) bool {
	return (regions != nil && len(regions) == 0) || (products != nil && len(products) == 0)
}

// Unique returns the distinct values of key in order of first appearance.
func Unique(records []SalesRecord, key Key) ([]string, error) {
	if !key.valid() {
		return nil, fmt.Errorf("key %d: %w", int(key), ErrInvalidParameter)
	}
	seen := make(map[string]bool)
	var out []string
	for i := range records {
		v := key.field(&records[i])
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}
