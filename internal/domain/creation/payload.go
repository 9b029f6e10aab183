package creation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/recordkit/internal/domain"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
	"github.com/kailas-cloud/recordkit/internal/domain/record"
)

// ValidationError reports the single field that stopped a creation submit.
type ValidationError struct {
	Field  string
	Label  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Label + " " + e.Reason
}

func (e *ValidationError) Unwrap() error { return domain.ErrValidation }

// BuildPayload validates submitted values against the type schema and the
// call-site configuration, and returns the data to persist.
//
// Only enabled fields are considered, in schema declaration order. The first
// failing field is reported; later fields are not checked.
func BuildPayload(dt datatype.DataType, cfg Config, values map[string]any) (map[string]any, error) {
	if !dt.HasSchema() {
		return nil, fmt.Errorf("data type %q has no schema: %w", dt.Slug(), domain.ErrConfiguration)
	}

	payload := make(map[string]any, len(dt.Fields()))
	for _, f := range dt.Fields() {
		name := f.Name()
		if !cfg.Enabled(name) {
			continue
		}
		v := values[name]

		if (dt.IsRequired(name) || cfg.ExtraRequired(name)) && IsEmpty(f.Kind(), v) {
			return nil, &ValidationError{Field: name, Label: cfg.Label(f), Reason: "is required"}
		}

		out, reason := transform(f.Kind(), v)
		if reason != "" {
			return nil, &ValidationError{Field: name, Label: cfg.Label(f), Reason: reason}
		}
		payload[name] = out
	}
	return payload, nil
}

// IsEmpty applies the per-kind emptiness rule used for required checks.
// Booleans are never empty; points are empty only when both coordinates are unset.
func IsEmpty(kind field.Kind, v any) bool {
	switch kind {
	case field.Boolean:
		return false
	case field.GeoPoint:
		return record.ParseGeoPoint(v).IsEmpty()
	default:
		return isBlank(v)
	}
}

func transform(kind field.Kind, v any) (any, string) {
	switch kind {
	case field.Number, field.Integer:
		if isBlank(v) {
			return nil, ""
		}
		n, ok := toNumber(v)
		if !ok {
			return nil, "must be a number"
		}
		if kind == field.Integer {
			if n != math.Trunc(n) {
				return nil, "must be a whole number"
			}
			// float64(MaxInt64) rounds up to 2^63.
			if n < math.MinInt64 || n >= math.MaxInt64 {
				return nil, "is out of range"
			}
			return int64(n), ""
		}
		return n, ""
	case field.Boolean:
		b, _ := v.(bool)
		return b, ""
	case field.GeoPoint:
		p := record.ParseGeoPoint(v)
		if !p.IsValid() {
			return nil, "has coordinates out of range"
		}
		return p.Map(), ""
	default:
		return v, ""
	}
}

func isBlank(v any) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(s) == ""
	case *string:
		return s == nil || strings.TrimSpace(*s) == ""
	default:
		return false
	}
}

func toNumber(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		n = f
	case bool:
		if x {
			n = 1
		}
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
