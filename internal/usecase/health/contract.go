package health

import (
	"context"

	domtype "github.com/kailas-cloud/recordkit/internal/domain/datatype"
)

// DBPinger checks storage availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// TypeCatalog lists the registered data types.
type TypeCatalog interface {
	List(ctx context.Context) ([]domtype.DataType, error)
}
