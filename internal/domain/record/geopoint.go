package record

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// GeoPoint is a geographic point value. Either coordinate may be unset.
type GeoPoint struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Point builds a GeoPoint with both coordinates set.
func Point(lat, lon float64) GeoPoint {
	return GeoPoint{Latitude: &lat, Longitude: &lon}
}

// IsEmpty reports whether both coordinates are unset.
func (p GeoPoint) IsEmpty() bool { return p.Latitude == nil && p.Longitude == nil }

// IsValid checks that set coordinates are in range: latitude [-90,90], longitude [-180,180].
func (p GeoPoint) IsValid() bool {
	if p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90) {
		return false
	}
	if p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180) {
		return false
	}
	return true
}

// Map returns the JSON-shaped representation stored in record data.
func (p GeoPoint) Map() map[string]any {
	m := map[string]any{"latitude": nil, "longitude": nil}
	if p.Latitude != nil {
		m["latitude"] = *p.Latitude
	}
	if p.Longitude != nil {
		m["longitude"] = *p.Longitude
	}
	return m
}

// ParseGeoPoint reads a point from a GeoPoint, *GeoPoint or decoded JSON map.
// Anything unparseable yields nil coordinates; it never fails.
func ParseGeoPoint(v any) GeoPoint {
	switch p := v.(type) {
	case GeoPoint:
		return p
	case *GeoPoint:
		if p == nil {
			return GeoPoint{}
		}
		return *p
	case map[string]any:
		return GeoPoint{Latitude: ParseCoordinate(p["latitude"]), Longitude: ParseCoordinate(p["longitude"])}
	default:
		return GeoPoint{}
	}
}

// ParseCoordinate converts a raw coordinate to a float, nil when it is not a finite number.
func ParseCoordinate(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case *float64:
		if n == nil {
			return nil
		}
		f = *n
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
