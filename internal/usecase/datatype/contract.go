package datatype

import (
	"context"

	domtype "github.com/kailas-cloud/recordkit/internal/domain/datatype"
)

// Repository defines the storage contract for data types.
type Repository interface {
	Create(ctx context.Context, dt domtype.DataType) error
	Get(ctx context.Context, slug string) (domtype.DataType, error)
	List(ctx context.Context) ([]domtype.DataType, error)
}
