package bildinfo

import (
	"reflect"
	"testing"
)

func TestDeriveTags(t *testing.T) {
	tests := []struct {
		name      string
		raw       []string
		wantColor string
		wantTags  []TagItem
	}{
		{
			name:      "color plus user plus system",
			raw:       []string{"color:red", "user:beach", "flagged"},
			wantColor: "red",
			wantTags: []TagItem{
				{Name: "beach", IsUser: true},
				{Name: "flagged", IsUser: false},
			},
		},
		{
			name:     "empty",
			raw:      []string{},
			wantTags: []TagItem{},
		},
		{
			name:      "first color wins, all excluded",
			raw:       []string{"color:yellow", "color:green", "user:dog"},
			wantColor: "yellow",
			wantTags:  []TagItem{{Name: "dog", IsUser: true}},
		},
		{
			name: "sorted by display name",
			raw:  []string{"user:zebra", "apple", "user:mango"},
			wantTags: []TagItem{
				{Name: "apple", IsUser: false},
				{Name: "mango", IsUser: true},
				{Name: "zebra", IsUser: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveTags(tt.raw)
			if got.ColorLabel != tt.wantColor {
				t.Errorf("ColorLabel = %q, want %q", got.ColorLabel, tt.wantColor)
			}
			if !reflect.DeepEqual(got.Tags, tt.wantTags) {
				t.Errorf("Tags = %+v, want %+v", got.Tags, tt.wantTags)
			}
		})
	}
}

func TestDeriveTagsIdempotent(t *testing.T) {
	raw := []string{"color:blue", "user:hike", "scan", "user:alps"}
	rawCopy := append([]string{}, raw...)

	first := DeriveTags(raw)
	second := DeriveTags(raw)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-derivation differs: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(raw, rawCopy) {
		t.Errorf("DeriveTags modified its input: %v", raw)
	}
}

func TestRawTag(t *testing.T) {
	tests := []struct {
		item TagItem
		want string
	}{
		{TagItem{Name: "beach", IsUser: true}, "user:beach"},
		{TagItem{Name: "flagged", IsUser: false}, "flagged"},
	}

	for _, tt := range tests {
		if got := rawTag(tt.item); got != tt.want {
			t.Errorf("rawTag(%+v) = %q, want %q", tt.item, got, tt.want)
		}
	}
}

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Beach ", "beach"},
		{"BEACH", "beach"},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := normalizeTag(tt.in); got != tt.want {
			t.Errorf("normalizeTag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
