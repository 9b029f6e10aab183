package form

import (
	"github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
	"github.com/kailas-cloud/recordkit/internal/domain/record"
)

// Default returns the initial value of a field. It is deterministic and
// allocates fresh values so reopened forms never share state.
func Default(f field.Field, mode Mode) any {
	switch f.Kind() {
	case field.String, field.Text, field.Date, field.Time:
		return ""
	case field.Number, field.Integer:
		return nil
	case field.Boolean:
		return false
	case field.Enum:
		if mode == ModeCreate && len(f.Options()) > 0 {
			return f.Options()[0]
		}
		return ""
	case field.GeoPoint:
		return record.GeoPoint{}
	case field.Reference:
		return nil
	default:
		return ""
	}
}

// Defaults returns a value for every schema field, keyed by field name.
func Defaults(dt datatype.DataType, mode Mode) map[string]any {
	values := make(map[string]any, len(dt.Fields()))
	for _, f := range dt.Fields() {
		values[f.Name()] = Default(f, mode)
	}
	return values
}
