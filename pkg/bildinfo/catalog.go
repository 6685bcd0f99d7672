package bildinfo

import (
	"strings"
	"unicode"
)

// CatalogEntry is one raw attribute paired with a readable label.
type CatalogEntry struct {
	Key   string
	Label string
	Value string
}

// FormatAttrLabel turns a camel-cased attribute key into a readable label.
// A space goes before each new capitalized word: between a lowercase letter
// and an uppercase one, and between an acronym run and a trailing
// capitalized word ("GPSLatitude" becomes "GPS Latitude").
func FormatAttrLabel(key string) string {
	rs := []rune(key)
	var b strings.Builder
	for i, r := range rs {
		if i > 0 {
			prev := rs[i-1]
			switch {
			case unicode.IsLower(prev) && unicode.IsUpper(r):
				b.WriteRune(' ')
			case unicode.IsUpper(prev) && unicode.IsUpper(r) && i+1 < len(rs) && unicode.IsLower(rs[i+1]):
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Catalog lists every raw attribute with a readable label, sorted ascending
// by raw key. Values are stringified for display without interpretation.
func Catalog(attrs RawAttributes) []CatalogEntry {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	collator.SortStrings(keys)

	out := make([]CatalogEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, CatalogEntry{
			Key:   k,
			Label: FormatAttrLabel(k),
			Value: attrString(attrs[k]),
		})
	}
	return out
}
