package datatype

import (
	"encoding/json"
	"fmt"
	"strconv"

	domtype "github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
)

// fieldRow is the JSON-serializable representation of a field for HSET.
type fieldRow struct {
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	Format      string          `json:"format,omitempty"`
	Options     []string        `json:"options,omitempty"`
	LinkedType  string          `json:"linked_type,omitempty"`
	Creation    *field.Creation `json:"creation,omitempty"`
	Description string          `json:"description,omitempty"`
}

func typeToHash(dt domtype.DataType) (map[string]string, error) {
	rows := make([]fieldRow, len(dt.Fields()))
	for i, f := range dt.Fields() {
		rows[i] = fieldRow{
			Name:        f.Name(),
			Kind:        string(f.Kind()),
			Format:      string(f.Format()),
			Options:     f.Options(),
			LinkedType:  f.LinkedType(),
			Creation:    f.Creation(),
			Description: f.Description(),
		}
	}
	fieldsJSON, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}
	requiredJSON, err := json.Marshal(dt.Required())
	if err != nil {
		return nil, fmt.Errorf("marshal required: %w", err)
	}
	return map[string]string{
		"slug":          dt.Slug(),
		"name":          dt.Name(),
		"fields_json":   string(fieldsJSON),
		"required_json": string(requiredJSON),
		"display_field": dt.DisplayNameField(),
		"created_at":    strconv.FormatInt(dt.CreatedAt(), 10),
		"revision":      strconv.Itoa(dt.Revision()),
	}, nil
}

// typeFromHash hydrates a DataType from an HGETALL result map.
func typeFromHash(m map[string]string) (domtype.DataType, error) {
	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return domtype.DataType{}, fmt.Errorf("invalid created_at: %w", err)
	}

	var rows []fieldRow
	if s := m["fields_json"]; s != "" {
		if err := json.Unmarshal([]byte(s), &rows); err != nil {
			return domtype.DataType{}, fmt.Errorf("unmarshal fields: %w", err)
		}
	}
	fields := make([]field.Field, len(rows))
	for i, r := range rows {
		fields[i] = field.Reconstruct(r.Name, field.ParseKind(r.Kind), field.Attrs{
			Format:      field.ParseFormat(r.Format),
			Options:     r.Options,
			LinkedType:  r.LinkedType,
			Creation:    r.Creation,
			Description: r.Description,
		})
	}

	var required []string
	if s := m["required_json"]; s != "" && s != "null" {
		if err := json.Unmarshal([]byte(s), &required); err != nil {
			return domtype.DataType{}, fmt.Errorf("unmarshal required: %w", err)
		}
	}

	revision := 1
	if s := m["revision"]; s != "" {
		if parsed, err := strconv.Atoi(s); err == nil {
			revision = parsed
		}
	}

	return domtype.Reconstruct(m["slug"], m["name"], fields, required, m["display_field"], createdAt, revision), nil
}
