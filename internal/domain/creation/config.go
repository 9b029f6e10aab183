// Package creation holds the per-call-site overrides for inline record
// creation and the validation that turns submitted values into a payload.
package creation

import (
	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
)

// Config is the creation configuration a call site hands to a selector.
// A nil EnabledFields means every schema field is offered.
type Config struct {
	EnabledFields  []string          `json:"enabled_fields,omitempty"`
	RequiredFields []string          `json:"required_fields,omitempty"`
	Labels         map[string]string `json:"labels,omitempty"`
	Placeholders   map[string]string `json:"placeholders,omitempty"`
	DisplayFormat  string            `json:"display_format,omitempty"`
}

// Nested derives the configuration a reference field passes to the selector
// it embeds. Fields without nested attributes get an empty configuration.
func Nested(f field.Field) Config {
	c := f.Creation()
	if c == nil {
		return Config{}
	}
	cfg := Config{
		RequiredFields: append([]string(nil), c.RequiredFields...),
		Labels:         copyMap(c.Labels),
		Placeholders:   copyMap(c.Placeholders),
		DisplayFormat:  c.DisplayFormat,
	}
	if c.EnabledFields != nil {
		cfg.EnabledFields = append([]string{}, c.EnabledFields...)
	}
	return cfg
}

// Enabled reports whether the field is offered for creation.
func (c Config) Enabled(name string) bool {
	if c.EnabledFields == nil {
		return true
	}
	return contains(c.EnabledFields, name)
}

// ExtraRequired reports whether the call site marks the field as required.
func (c Config) ExtraRequired(name string) bool {
	return contains(c.RequiredFields, name)
}

// Label returns the override label, the field description or the field name.
func (c Config) Label(f field.Field) string {
	if l, ok := c.Labels[f.Name()]; ok && l != "" {
		return l
	}
	if f.Description() != "" {
		return f.Description()
	}
	return f.Name()
}

// Placeholder returns the placeholder override for a field, "" if none.
func (c Config) Placeholder(name string) string {
	return c.Placeholders[name]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
