package record

import (
	"context"

	domtype "github.com/kailas-cloud/recordkit/internal/domain/datatype"
	domrec "github.com/kailas-cloud/recordkit/internal/domain/record"
)

// Repository defines the storage contract for records.
type Repository interface {
	Create(ctx context.Context, rec domrec.Record) error
	Get(ctx context.Context, typeSlug, id string) (domrec.Record, error)
	ListByType(ctx context.Context, typeSlug string) ([]domrec.Record, error)
}

// TypeReader reads data types for existence checks.
type TypeReader interface {
	Get(ctx context.Context, slug string) (domtype.DataType, error)
}
