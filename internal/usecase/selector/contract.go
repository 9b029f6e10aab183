package selector

import (
	"context"

	"github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/domain/record"
)

// TypeReader loads data type metadata by slug.
type TypeReader interface {
	Get(ctx context.Context, slug string) (datatype.DataType, error)
}

// RecordStore lists and persists records.
// ListAll may return records of other types; the selector filters by slug.
type RecordStore interface {
	ListAll(ctx context.Context, typeSlug string) ([]record.Record, error)
	Create(ctx context.Context, typeSlug string, data map[string]any) (record.Record, error)
}

// Observer receives selector events for metrics.
type Observer interface {
	StaleDropped(operation string)
	CreationSubmitted(status string)
}

type noopObserver struct{}

func (noopObserver) StaleDropped(string)      {}
func (noopObserver) CreationSubmitted(string) {}
