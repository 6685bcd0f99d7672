package bildinfo

import (
	"math"
	"testing"
)

func TestParseDMS(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
		ok   bool
	}{
		{
			name: "whole components",
			in:   "40 deg 26 min 46 sec",
			want: 40 + 26.0/60 + 46.0/3600,
			ok:   true,
		},
		{
			name: "decimal seconds",
			in:   "13 deg 24 min 15.33 sec",
			want: 13 + 24.0/60 + 15.33/3600,
			ok:   true,
		},
		{
			name: "empty",
			in:   "",
			ok:   false,
		},
		{
			name: "not a coordinate",
			in:   "not a coordinate",
			ok:   false,
		},
		{
			name: "missing seconds",
			in:   "40 deg 26 min",
			ok:   false,
		},
		{
			name: "trailing junk",
			in:   "40 deg 26 min 46 sec extra",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDMS(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseDMS(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("ParseDMS(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveGPS(t *testing.T) {
	lat := "40 deg 26 min 46 sec"
	lon := "79 deg 58 min 56 sec"

	tests := []struct {
		name    string
		latText string
		latRef  string
		lonText string
		lonRef  string
		wantLat float64
		wantLon float64
		ok      bool
	}{
		{
			name:    "north east",
			latText: lat, latRef: "N", lonText: lon, lonRef: "E",
			wantLat: 40.446111, wantLon: 79.982222, ok: true,
		},
		{
			name:    "south west negates",
			latText: lat, latRef: "S", lonText: lon, lonRef: "W",
			wantLat: -40.446111, wantLon: -79.982222, ok: true,
		},
		{
			name:    "lowercase refs",
			latText: lat, latRef: "s", lonText: lon, lonRef: "w",
			wantLat: -40.446111, wantLon: -79.982222, ok: true,
		},
		{
			name:    "unknown ref stays positive",
			latText: lat, latRef: "X", lonText: lon, lonRef: "E",
			wantLat: 40.446111, wantLon: 79.982222, ok: true,
		},
		{
			name:    "missing lon ref",
			latText: lat, latRef: "N", lonText: lon, lonRef: "",
			ok: false,
		},
		{
			name:    "missing lat text",
			latText: "", latRef: "N", lonText: lon, lonRef: "E",
			ok: false,
		},
		{
			name:    "bad lon discards lat too",
			latText: lat, latRef: "N", lonText: "garbage", lonRef: "E",
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ResolveGPS(tt.latText, tt.latRef, tt.lonText, tt.lonRef)
			if g.Resolved() != tt.ok {
				t.Fatalf("Resolved() = %v, want %v (%+v)", g.Resolved(), tt.ok, g)
			}
			if !tt.ok {
				if g.Lat != nil || g.Lon != nil {
					t.Errorf("expected fully unresolved coordinate, got %+v", g)
				}
				return
			}
			if math.Abs(*g.Lat-tt.wantLat) > 1e-6 {
				t.Errorf("lat = %v, want %v", *g.Lat, tt.wantLat)
			}
			if math.Abs(*g.Lon-tt.wantLon) > 1e-6 {
				t.Errorf("lon = %v, want %v", *g.Lon, tt.wantLon)
			}
		})
	}
}
