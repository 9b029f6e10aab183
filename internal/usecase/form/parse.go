package form

import (
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
	"github.com/kailas-cloud/recordkit/internal/domain/record"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04", "02.01.2006", "01/02/2006"}

var timeLayouts = []string{"15:04", "15:04:05", "3:04PM", "3:04 PM"}

// Parse converts raw control input into the value stored for the field.
// It never fails: unparseable numbers become nil, dates and times that do
// not match a known layout are kept as typed.
func Parse(f field.Field, raw string) any {
	s := strings.TrimSpace(raw)
	switch f.Kind() {
	case field.Number, field.Integer:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return n
	case field.Boolean:
		switch strings.ToLower(s) {
		case "true", "on", "1", "yes":
			return true
		default:
			return false
		}
	case field.Date:
		return normalize(s, dateLayouts, "2006-01-02")
	case field.Time:
		return normalize(s, timeLayouts, "15:04")
	case field.Reference:
		if s == "" {
			return nil
		}
		return s
	case field.GeoPoint:
		lat, lon, _ := strings.Cut(s, ",")
		return ParsePoint(lat, lon)
	default:
		return raw
	}
}

// ParsePoint parses both coordinate inputs of a geopoint control.
func ParsePoint(lat, lon string) record.GeoPoint {
	return record.GeoPoint{
		Latitude:  record.ParseCoordinate(lat),
		Longitude: record.ParseCoordinate(lon),
	}
}

func normalize(s string, layouts []string, out string) string {
	if s == "" {
		return ""
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(out)
		}
	}
	return s
}
