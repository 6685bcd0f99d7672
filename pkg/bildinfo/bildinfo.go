// Package bildinfo derives the info-panel model for a selected image:
// normalized camera settings, a readable EXIF catalog, resolved GPS
// coordinates, and an editable color label + tag view kept in sync with an
// external tag store.
package bildinfo

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// RawAttributes is the loosely-typed attribute map extracted from an image.
// Values are strings or numbers, depending on how the extractor decoded
// them. Treated as an immutable snapshot per selection.
type RawAttributes map[string]any

// Image is the raw record for one selected image. The caller owns it; the
// raw Tags slice is the ground truth that every derived view is computed
// from.
type Image struct {
	Path   string
	Width  int64
	Height int64
	Attrs  RawAttributes
	Rating int
	Tags   []string // persisted forms, color:/user: prefixes included
}

// Config holds panel configuration.
type Config struct {
	QuickTags []string // one-click add shortcuts
}

// collator provides the locale-aware ordering used for tag names and
// catalog keys.
var collator = collate.New(language.English)
