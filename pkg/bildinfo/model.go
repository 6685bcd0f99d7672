package bildinfo

// Attribute keys consulted for GPS resolution. Only the stringified DMS
// form is handled; binary GPS IFDs are the extractor's problem.
const (
	attrGPSLatitude     = "GPSLatitude"
	attrGPSLatitudeRef  = "GPSLatitudeRef"
	attrGPSLongitude    = "GPSLongitude"
	attrGPSLongitudeRef = "GPSLongitudeRef"
	attrGPSAltitude     = "GPSAltitude"
)

// DisplayModel is the read-only half of the panel, recomputed from the raw
// record after every selection or metadata change. It has no identity of
// its own.
type DisplayModel struct {
	Path     string
	Width    int64
	Height   int64
	Rating   int
	Settings []CameraSetting
	Catalog  []CatalogEntry
	GPS      GPSCoordinate
}

// BuildDisplayModel derives everything shown read-only for one image.
func BuildDisplayModel(img *Image) *DisplayModel {
	return &DisplayModel{
		Path:     img.Path,
		Width:    img.Width,
		Height:   img.Height,
		Rating:   img.Rating,
		Settings: CameraSettings(img.Attrs),
		Catalog:  Catalog(img.Attrs),
		GPS:      gpsFromAttrs(img.Attrs),
	}
}

func gpsFromAttrs(attrs RawAttributes) GPSCoordinate {
	g := ResolveGPS(
		attrText(attrs, attrGPSLatitude),
		attrText(attrs, attrGPSLatitudeRef),
		attrText(attrs, attrGPSLongitude),
		attrText(attrs, attrGPSLongitudeRef),
	)

	// Altitude passes through as a number, unvalidated.
	switch a := attrs[attrGPSAltitude].(type) {
	case float64:
		g.Altitude = &a
	case int64:
		f := float64(a)
		g.Altitude = &f
	case int:
		f := float64(a)
		g.Altitude = &f
	}

	return g
}

// attrText returns the attribute's string form, or "" when absent or not a
// string.
func attrText(attrs RawAttributes, key string) string {
	s, _ := attrs[key].(string)
	return s
}
