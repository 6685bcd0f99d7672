package bildinfo

import (
	"math"
	"testing"
)

func TestBuildDisplayModel(t *testing.T) {
	img := &Image{
		Path:   "/photos/a.jpg",
		Width:  6240,
		Height: 4160,
		Rating: 3,
		Attrs: RawAttributes{
			"Make":            "Fujifilm",
			"FNumber":         5.6,
			"GPSLatitude":     "40 deg 26 min 46 sec",
			"GPSLatitudeRef":  "N",
			"GPSLongitude":    "79 deg 58 min 56 sec",
			"GPSLongitudeRef": "W",
			"GPSAltitude":     312.5,
		},
	}

	m := BuildDisplayModel(img)

	if m.Width != 6240 || m.Height != 4160 || m.Rating != 3 {
		t.Errorf("record fields not carried over: %+v", m)
	}

	if len(m.Settings) != 2 {
		t.Fatalf("got %d settings, want 2: %+v", len(m.Settings), m.Settings)
	}
	if m.Settings[0].Label != "Make" || m.Settings[1].Label != "Aperture" {
		t.Errorf("settings out of priority order: %+v", m.Settings)
	}

	if len(m.Catalog) != len(img.Attrs) {
		t.Errorf("catalog has %d entries, want %d", len(m.Catalog), len(img.Attrs))
	}

	if !m.GPS.Resolved() {
		t.Fatalf("GPS unresolved: %+v", m.GPS)
	}
	if math.Abs(*m.GPS.Lat-40.446111) > 1e-6 {
		t.Errorf("lat = %v", *m.GPS.Lat)
	}
	if math.Abs(*m.GPS.Lon+79.982222) > 1e-6 {
		t.Errorf("lon = %v", *m.GPS.Lon)
	}
	if m.GPS.Altitude == nil || *m.GPS.Altitude != 312.5 {
		t.Errorf("altitude = %v, want 312.5", m.GPS.Altitude)
	}
}

func TestBuildDisplayModelNoGPS(t *testing.T) {
	// Partial GPS data is discarded, never half-shown.
	img := &Image{
		Path: "/photos/b.jpg",
		Attrs: RawAttributes{
			"GPSLatitude":    "40 deg 26 min 46 sec",
			"GPSLatitudeRef": "N",
		},
	}

	m := BuildDisplayModel(img)
	if m.GPS.Lat != nil || m.GPS.Lon != nil {
		t.Errorf("partial GPS resolved: %+v", m.GPS)
	}
}
