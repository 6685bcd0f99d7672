package bildinfo

import (
	"fmt"
	"strconv"
	"strings"
)

// CameraSetting is one formatted, display-ready camera setting.
type CameraSetting struct {
	Key   string
	Label string
	Value string
}

// settingField describes one recognized camera setting. A nil format means
// the value passes through as-is.
type settingField struct {
	key    string
	label  string
	format func(string) string
}

// settingFields is the display priority order, not alphabetical.
var settingFields = []settingField{
	{key: "Make", label: "Make"},
	{key: "Model", label: "Camera"},
	{key: "LensModel", label: "Lens", format: stripQuotes},
	{key: "FNumber", label: "Aperture"},
	{key: "ExposureTime", label: "Shutter Speed"},
	{key: "ISO", label: "ISO"},
	{key: "FocalLength", label: "Focal Length", format: focalLength},
}

func stripQuotes(v string) string {
	return strings.ReplaceAll(v, `"`, "")
}

// focalLength appends the millimeter unit unless the extractor already
// included it.
func focalLength(v string) string {
	if strings.HasSuffix(v, "mm") {
		return v
	}
	return v + " mm"
}

// attrString renders an attribute value for display.
func attrString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}

// CameraSettings projects the raw attribute map onto the recognized setting
// list. Keys absent from the map, or null, are omitted entirely; output
// order follows settingFields, not the input map.
func CameraSettings(attrs RawAttributes) []CameraSetting {
	out := []CameraSetting{}
	for _, f := range settingFields {
		v, ok := attrs[f.key]
		if !ok || v == nil {
			continue
		}
		s := attrString(v)
		if f.format != nil {
			s = f.format(s)
		}
		out = append(out, CameraSetting{Key: f.key, Label: f.label, Value: s})
	}
	return out
}
