package record

import (
	"fmt"
	"time"
)

// Record is a persisted instance of a data type (immutable value object).
type Record struct {
	id        string
	typeSlug  string
	data      map[string]any
	createdAt int64
}

// New validates and creates a Record.
// ID and type slug are required; data is copied.
func New(id, typeSlug string, data map[string]any) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("record ID is required")
	}
	if len(id) > 256 {
		return Record{}, fmt.Errorf("record ID too long (max 256)")
	}
	if typeSlug == "" {
		return Record{}, fmt.Errorf("record type is required")
	}
	return Record{
		id:        id,
		typeSlug:  typeSlug,
		data:      cloneData(data),
		createdAt: time.Now().UnixMilli(),
	}, nil
}

// Reconstruct creates a Record without validation (storage hydration). Data is copied.
func Reconstruct(id, typeSlug string, data map[string]any, createdAt int64) Record {
	return Record{id: id, typeSlug: typeSlug, data: cloneData(data), createdAt: createdAt}
}

// ID returns the opaque record identifier.
func (r Record) ID() string { return r.id }

// TypeSlug returns the slug of the data type the record belongs to.
func (r Record) TypeSlug() string { return r.typeSlug }

// Data returns a copy of the field values. May be nil.
func (r Record) Data() map[string]any { return cloneData(r.data) }

// Value returns a single field value.
func (r Record) Value(name string) (any, bool) {
	v, ok := r.data[name]
	return cloneValue(v), ok
}

// CreatedAt returns the creation timestamp (unix millis).
func (r Record) CreatedAt() int64 { return r.createdAt }

func cloneData(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneData(x)
	case []any:
		c := make([]any, len(x))
		for i, e := range x {
			c[i] = cloneValue(e)
		}
		return c
	default:
		return v
	}
}
