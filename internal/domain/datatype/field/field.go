package field

import (
	"fmt"
	"strings"
)

// Kind is the primitive kind of a field value.
type Kind string

// Field kind constants.
const (
	// String is single-line text.
	String    Kind = "string"
	Text      Kind = "text"
	Number    Kind = "number"
	Integer   Kind = "integer"
	Boolean   Kind = "boolean"
	Date      Kind = "date"
	Time      Kind = "time"
	Enum      Kind = "enum"
	GeoPoint  Kind = "geopoint"
	Reference Kind = "reference"
	// Any is the untyped fallback for kinds this package does not know.
	Any Kind = "any"
)

// ParseKind maps a stored kind string to a Kind. Unknown values become Any.
func ParseKind(s string) Kind {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case String, Text, Number, Integer, Boolean, Date, Time, Enum, GeoPoint, Reference:
		return k
	case "location", "geo_point", "point":
		return GeoPoint
	case "select", "choice":
		return Enum
	case "float", "decimal":
		return Number
	case "int":
		return Integer
	case "bool":
		return Boolean
	default:
		return Any
	}
}

// IsNumeric reports whether values of this kind are coerced to numbers.
func (k Kind) IsNumeric() bool { return k == Number || k == Integer }

// Format is an optional presentation hint for text fields.
type Format string

// Format hints.
const (
	FormatNone     Format = ""
	FormatEmail    Format = "email"
	FormatURL      Format = "url"
	FormatPhone    Format = "phone"
	FormatLongText Format = "textarea"
)

// ParseFormat normalizes a stored format hint, accepting common aliases.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "email":
		return FormatEmail
	case "url", "uri":
		return FormatURL
	case "phone", "tel":
		return FormatPhone
	case "textarea", "long_text", "multiline":
		return FormatLongText
	default:
		return FormatNone
	}
}

// Creation holds the inline-creation overrides a reference field passes to
// the selector it embeds.
type Creation struct {
	EnabledFields  []string          `json:"enabled_fields,omitempty" yaml:"enabled_fields"`
	RequiredFields []string          `json:"required_fields,omitempty" yaml:"required_fields"`
	Labels         map[string]string `json:"labels,omitempty" yaml:"labels"`
	Placeholders   map[string]string `json:"placeholders,omitempty" yaml:"placeholders"`
	DisplayFormat  string            `json:"display_format,omitempty" yaml:"display_format"`
}

// Attrs are the optional attributes of a field definition.
type Attrs struct {
	Format      Format
	Options     []string
	LinkedType  string
	Creation    *Creation
	Description string
}

// Field is an immutable value object describing one named attribute of a data type.
type Field struct {
	name  string
	kind  Kind
	attrs Attrs
}

// New validates and creates a Field.
// Name must be non-empty and at most 64 chars. Reference fields must name a linked type.
func New(name string, kind Kind, attrs Attrs) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("field name is required")
	}
	if len(name) > 64 {
		return Field{}, fmt.Errorf("field name %q too long (max 64)", name)
	}
	if strings.ContainsAny(name, "{}") {
		return Field{}, fmt.Errorf("field name %q must not contain braces", name)
	}
	if kind == "" {
		kind = Any
	}
	if kind == Reference && attrs.LinkedType == "" {
		return Field{}, fmt.Errorf("reference field %q requires a linked type", name)
	}
	if kind == Enum && len(attrs.Options) == 0 {
		return Field{}, fmt.Errorf("enum field %q requires options", name)
	}
	return Reconstruct(name, kind, attrs), nil
}

// Reconstruct creates a Field without validation (storage hydration).
func Reconstruct(name string, kind Kind, attrs Attrs) Field {
	attrs.Options = append([]string(nil), attrs.Options...)
	return Field{name: name, kind: kind, attrs: attrs}
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// Kind returns the primitive kind.
func (f Field) Kind() Kind { return f.kind }

// Format returns the presentation hint.
func (f Field) Format() Format { return f.attrs.Format }

// Options returns the enum options in declaration order.
func (f Field) Options() []string { return f.attrs.Options }

// LinkedType returns the slug of the referenced data type.
func (f Field) LinkedType() string { return f.attrs.LinkedType }

// Creation returns the nested creation overrides, nil when absent.
func (f Field) Creation() *Creation { return f.attrs.Creation }

// Description returns the label/help text.
func (f Field) Description() string { return f.attrs.Description }

// Attrs returns a copy of the optional attributes.
func (f Field) Attrs() Attrs { return f.attrs }
