package bildinfo

import (
	"regexp"
	"strconv"
	"strings"
)

// GPSCoordinate is a resolved position. Lat and Lon are either both set or
// both nil: partial GPS data is discarded rather than half-shown.
type GPSCoordinate struct {
	Lat      *float64
	Lon      *float64
	Altitude *float64
}

// Resolved reports whether the coordinate pair was fully resolved.
func (g GPSCoordinate) Resolved() bool {
	return g.Lat != nil && g.Lon != nil
}

var dmsRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?) deg (\d+(?:\.\d+)?) min (\d+(?:\.\d+)?) sec\s*$`)

// ParseDMS converts a "<deg> deg <min> min <sec> sec" string to decimal
// degrees. ok is false if the text does not match the pattern or a numeric
// component fails to parse.
func ParseDMS(text string) (dec float64, ok bool) {
	m := dmsRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	deg, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	min, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, false
	}
	sec, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, false
	}

	return deg + min/60 + sec/3600, true
}

// ResolveGPS resolves a latitude/longitude pair from DMS text and hemisphere
// references. All four inputs must be non-empty and both parses must
// succeed; anything less yields a fully unresolved coordinate. S negates
// latitude and W negates longitude, case-insensitively; any other reference
// leaves the magnitude positive.
func ResolveGPS(latText, latRef, lonText, lonRef string) GPSCoordinate {
	if latText == "" || latRef == "" || lonText == "" || lonRef == "" {
		return GPSCoordinate{}
	}

	lat, ok := ParseDMS(latText)
	if !ok {
		return GPSCoordinate{}
	}
	lon, ok := ParseDMS(lonText)
	if !ok {
		return GPSCoordinate{}
	}

	if strings.EqualFold(latRef, "S") {
		lat = -lat
	}
	if strings.EqualFold(lonRef, "W") {
		lon = -lon
	}

	return GPSCoordinate{Lat: &lat, Lon: &lon}
}
