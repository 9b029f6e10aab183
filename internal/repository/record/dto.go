package record

import (
	"encoding/json"
	"fmt"
	"strconv"

	domrec "github.com/kailas-cloud/recordkit/internal/domain/record"
)

func recordToHash(rec domrec.Record) (map[string]string, error) {
	data := rec.Data()
	if data == nil {
		data = map[string]any{}
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal data: %w", err)
	}
	return map[string]string{
		"id":         rec.ID(),
		"type":       rec.TypeSlug(),
		"data_json":  string(dataJSON),
		"created_at": strconv.FormatInt(rec.CreatedAt(), 10),
	}, nil
}

// recordFromHash hydrates a Record from an HGETALL result map.
// Numbers in data come back as float64.
func recordFromHash(m map[string]string) (domrec.Record, error) {
	var data map[string]any
	if s := m["data_json"]; s != "" {
		if err := json.Unmarshal([]byte(s), &data); err != nil {
			return domrec.Record{}, fmt.Errorf("unmarshal data: %w", err)
		}
	}

	var createdAt int64
	if s := m["created_at"]; s != "" {
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return domrec.Record{}, fmt.Errorf("invalid created_at: %w", err)
		}
		createdAt = parsed
	}

	return domrec.Reconstruct(m["id"], m["type"], data, createdAt), nil
}
