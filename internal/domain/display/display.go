// Package display turns records into human-readable labels.
package display

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/domain/record"
)

// commonNameFields are checked in order when no template or display field applies.
var commonNameFields = []string{"name", "title", "identifier", "label", "display_name"}

var placeholderRegex = regexp.MustCompile(`\{([^{}]+)\}`)

// UnknownLabel is returned for records without data and identifier.
const UnknownLabel = "Unknown record"

// Resolve returns the label for a record.
//
// Priority: display template, the type's display name field, common name
// fields, the first non-blank string value, then an identifier-derived label.
// dt may be nil and template may be empty.
func Resolve(rec record.Record, dt *datatype.DataType, template string) string {
	data := rec.Data()

	if label, ok := FromTemplate(template, data); ok {
		return label
	}

	if dt != nil && dt.DisplayNameField() != "" {
		if s, ok := nonEmpty(data, dt.DisplayNameField()); ok {
			return s
		}
	}

	for _, name := range commonNameFields {
		if s, ok := nonEmpty(data, name); ok {
			return s
		}
	}

	for _, key := range scanOrder(data, dt) {
		if s, ok := data[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}

	id := rec.ID()
	if id == "" {
		return UnknownLabel
	}
	if len(id) > 6 {
		id = id[:6]
	}
	return "Record " + id
}

// FromTemplate substitutes every {field} placeholder with the record value.
// It reports false when the template has no placeholders or renders blank.
func FromTemplate(template string, data map[string]any) (string, bool) {
	if strings.TrimSpace(template) == "" {
		return "", false
	}

	result := template
	for _, name := range Placeholders(template) {
		result = strings.ReplaceAll(result, "{"+name+"}", Stringify(data[name]))
	}

	if result == template || strings.TrimSpace(result) == "" {
		return "", false
	}
	return result, true
}

// Placeholders returns the distinct placeholder names in order of first occurrence.
func Placeholders(template string) []string {
	matches := placeholderRegex.FindAllStringSubmatch(template, -1)
	names := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		names = append(names, m[1])
	}
	return names
}

// Stringify coerces a field value to text. nil becomes "".
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case record.GeoPoint:
		return stringifyPoint(x)
	case map[string]any:
		if _, ok := x["latitude"]; ok {
			return stringifyPoint(record.ParseGeoPoint(x))
		}
		return fmt.Sprint(x)
	default:
		return fmt.Sprint(x)
	}
}

func stringifyPoint(p record.GeoPoint) string {
	if p.Latitude == nil || p.Longitude == nil {
		return ""
	}
	return Stringify(*p.Latitude) + ", " + Stringify(*p.Longitude)
}

func nonEmpty(data map[string]any, key string) (string, bool) {
	v, ok := data[key]
	if !ok || v == nil {
		return "", false
	}
	s := Stringify(v)
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// scanOrder lists data keys in schema declaration order, then the rest lexically.
func scanOrder(data map[string]any, dt *datatype.DataType) []string {
	keys := make([]string, 0, len(data))
	seen := make(map[string]bool, len(data))
	if dt != nil {
		for _, f := range dt.Fields() {
			if _, ok := data[f.Name()]; ok {
				keys = append(keys, f.Name())
				seen[f.Name()] = true
			}
		}
	}
	rest := make([]string, 0, len(data))
	for k := range data {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
