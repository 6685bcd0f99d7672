package bildinfo

import (
	"sort"
	"strings"
)

const (
	colorPrefix = "color:"
	userPrefix  = "user:"
)

// TagItem is one display tag.
type TagItem struct {
	Name   string
	IsUser bool
}

// TagView is the derived editable tag state for one image. ColorLabel is
// empty when no color label is set.
type TagView struct {
	ColorLabel string
	Tags       []TagItem
}

// DeriveTags splits a raw tag set into a color label plus a sorted tag
// list. The first color:-prefixed entry (by input order) supplies the
// label; every color:-prefixed entry is excluded from the list, first or
// not. user:-prefixed entries are stripped and marked. The input is never
// modified, so re-deriving from the same raw set always yields the same
// view.
func DeriveTags(raw []string) TagView {
	v := TagView{Tags: []TagItem{}}
	colorFound := false

	for _, t := range raw {
		if c, ok := strings.CutPrefix(t, colorPrefix); ok {
			if !colorFound {
				v.ColorLabel = c
				colorFound = true
			}
			continue
		}
		if u, ok := strings.CutPrefix(t, userPrefix); ok {
			v.Tags = append(v.Tags, TagItem{Name: u, IsUser: true})
			continue
		}
		v.Tags = append(v.Tags, TagItem{Name: t, IsUser: false})
	}

	sortTags(v.Tags)
	return v
}

// rawTag reconstructs the persisted form of a display tag.
func rawTag(t TagItem) string {
	if t.IsUser {
		return userPrefix + t.Name
	}
	return t.Name
}

// normalizeTag prepares user input for persistence.
func normalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func sortTags(ts []TagItem) {
	sort.SliceStable(ts, func(i, j int) bool {
		return collator.CompareString(ts[i].Name, ts[j].Name) < 0
	})
}
