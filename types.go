package recordkit

import (
	"github.com/kailas-cloud/recordkit/internal/domain/creation"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
	"github.com/kailas-cloud/recordkit/internal/domain/record"
	"github.com/kailas-cloud/recordkit/internal/seed"
	"github.com/kailas-cloud/recordkit/internal/usecase/form"
	"github.com/kailas-cloud/recordkit/internal/usecase/selector"
)

// Domain types exposed by the SDK.
type (
	DataType       = datatype.DataType
	Field          = field.Field
	Kind           = field.Kind
	FieldCreation  = field.Creation
	Record         = record.Record
	GeoPoint       = record.GeoPoint
	CreationConfig = creation.Config
	Control        = form.Control
	SeedResult     = seed.Result
)

// Selector types.
type (
	Selector       = selector.Selector
	SelectorConfig = selector.Config
	SelectorOption = selector.Setting
	Snapshot       = selector.Snapshot
	Candidate      = selector.Option
	CreationForm   = selector.CreationForm
)

// ClearOption is the candidate id that clears a selection.
const ClearOption = selector.ClearOption

// Field kinds.
const (
	KindString    = field.String
	KindText      = field.Text
	KindNumber    = field.Number
	KindInteger   = field.Integer
	KindBoolean   = field.Boolean
	KindDate      = field.Date
	KindTime      = field.Time
	KindEnum      = field.Enum
	KindGeoPoint  = field.GeoPoint
	KindReference = field.Reference
)

// Observer receives selector events, typically for metrics.
type Observer interface {
	StaleDropped(operation string)
	CreationSubmitted(status string)
}

// WithSelectionChange registers a callback for selection changes. nil means cleared.
func WithSelectionChange(fn func(id *string)) SelectorOption {
	return selector.WithOnSelectionChange(fn)
}

// FieldOption sets optional attributes of a field.
type FieldOption func(*field.Attrs)

// Choices sets the allowed values of an enum field.
func Choices(values ...string) FieldOption {
	return func(a *field.Attrs) { a.Options = values }
}

// LinksTo sets the data type a reference field points at.
func LinksTo(slug string) FieldOption {
	return func(a *field.Attrs) { a.LinkedType = slug }
}

// Described sets the human-readable field label.
func Described(text string) FieldOption {
	return func(a *field.Attrs) { a.Description = text }
}

// Formatted sets the string format hint (email, url, phone, textarea).
func Formatted(format string) FieldOption {
	return func(a *field.Attrs) { a.Format = field.ParseFormat(format) }
}

// NestedCreation sets the creation overrides a reference field passes to its nested selector.
func NestedCreation(c FieldCreation) FieldOption {
	return func(a *field.Attrs) { a.Creation = &c }
}

// TypeOption configures data type creation.
type TypeOption func(*typeConfig)

type typeConfig struct {
	name         string
	fields       []fieldSpec
	required     []string
	displayField string
}

type fieldSpec struct {
	name  string
	kind  Kind
	attrs field.Attrs
}

// Named sets the display name of the type. Defaults to the slug.
func Named(name string) TypeOption {
	return func(c *typeConfig) { c.name = name }
}

// WithField appends a field to the schema, in declaration order.
func WithField(name string, kind Kind, opts ...FieldOption) TypeOption {
	return func(c *typeConfig) {
		fs := fieldSpec{name: name, kind: kind}
		for _, o := range opts {
			o(&fs.attrs)
		}
		c.fields = append(c.fields, fs)
	}
}

// Required marks fields as mandatory on creation.
func Required(names ...string) TypeOption {
	return func(c *typeConfig) { c.required = append(c.required, names...) }
}

// DisplayField names the field used as the record label.
func DisplayField(name string) TypeOption {
	return func(c *typeConfig) { c.displayField = name }
}
