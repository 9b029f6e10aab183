package datatype

import (
	"fmt"
	"regexp"
	"time"

	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
)

var slugRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// DataType is the schema aggregate describing one category of records (immutable value object).
type DataType struct {
	slug         string
	name         string
	fields       []field.Field
	required     []string
	displayField string
	createdAt    int64
	revision     int
}

func validateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("data type slug is required")
	}
	if len(slug) > 64 {
		return fmt.Errorf("data type slug too long (max 64)")
	}
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("data type slug must be alphanumeric with underscores and hyphens")
	}
	return nil
}

func validateFields(fields []field.Field, required []string, displayField string) error {
	if len(fields) > 128 {
		return fmt.Errorf("too many fields (max 128)")
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name()] {
			return fmt.Errorf("duplicate field name: %s", f.Name())
		}
		seen[f.Name()] = true
	}
	for _, r := range required {
		if !seen[r] {
			return fmt.Errorf("required field %q is not declared", r)
		}
	}
	if displayField != "" && !seen[displayField] {
		return fmt.Errorf("display name field %q is not declared", displayField)
	}
	return nil
}

// New validates and creates a DataType.
// Slug: ^[a-zA-Z0-9_-]+$, 1-64 chars. Fields: unique names.
// Required and display fields must name declared fields.
func New(slug, name string, fields []field.Field, required []string, displayField string) (DataType, error) {
	if err := validateSlug(slug); err != nil {
		return DataType{}, err
	}
	if err := validateFields(fields, required, displayField); err != nil {
		return DataType{}, err
	}
	if name == "" {
		name = slug
	}

	return DataType{
		slug:         slug,
		name:         name,
		fields:       fields,
		required:     dedupe(required),
		displayField: displayField,
		createdAt:    time.Now().UnixMilli(),
		revision:     1,
	}, nil
}

// Reconstruct creates a DataType without validation (storage hydration).
func Reconstruct(
	slug, name string, fields []field.Field, required []string,
	displayField string, createdAt int64, revision int,
) DataType {
	return DataType{
		slug:         slug,
		name:         name,
		fields:       fields,
		required:     required,
		displayField: displayField,
		createdAt:    createdAt,
		revision:     revision,
	}
}

// Slug returns the unique type slug.
func (d DataType) Slug() string { return d.slug }

// Name returns the human-readable name.
func (d DataType) Name() string { return d.name }

// Fields returns the field definitions in declaration order.
func (d DataType) Fields() []field.Field { return d.fields }

// Required returns the schema-level required field names.
func (d DataType) Required() []string { return d.required }

// DisplayNameField returns the field preferred for labeling, "" if unset.
func (d DataType) DisplayNameField() string { return d.displayField }

// CreatedAt returns the creation timestamp (unix millis).
func (d DataType) CreatedAt() int64 { return d.createdAt }

// Revision returns the optimistic concurrency version.
func (d DataType) Revision() int { return d.revision }

// HasSchema reports whether the type declares at least one field.
func (d DataType) HasSchema() bool { return len(d.fields) > 0 }

// IsRequired reports whether the schema marks the field as required.
func (d DataType) IsRequired(name string) bool {
	for _, r := range d.required {
		if r == name {
			return true
		}
	}
	return false
}

// FieldByName looks up a field by name.
func (d DataType) FieldByName(name string) (field.Field, bool) {
	for _, f := range d.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return field.Field{}, false
}

func dedupe(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
