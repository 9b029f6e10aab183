package datatype

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/recordkit/internal/domain"
	domtype "github.com/kailas-cloud/recordkit/internal/domain/datatype"
)

// store is the consumer interface for data types (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/datatype.Repository on hashes keyed {prefix}type:{slug}.
type Repo struct {
	store  store
	prefix string
}

// New creates a data type repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// Create stores a data type. Fails with domain.ErrAlreadyExists on a taken slug.
func (r *Repo) Create(ctx context.Context, dt domtype.DataType) error {
	key := r.key(dt.Slug())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}

	hash, err := typeToHash(dt)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, key, hash); err != nil {
		return fmt.Errorf("hset data type %s: %w", dt.Slug(), err)
	}
	return nil
}

// Get retrieves a data type by slug.
func (r *Repo) Get(ctx context.Context, slug string) (domtype.DataType, error) {
	m, err := r.store.HGetAll(ctx, r.key(slug))
	if err != nil {
		return domtype.DataType{}, fmt.Errorf("hgetall data type %s: %w", slug, err)
	}
	if len(m) == 0 {
		return domtype.DataType{}, domain.ErrNotFound
	}
	return typeFromHash(m)
}

// List returns all data types sorted by slug.
func (r *Repo) List(ctx context.Context) ([]domtype.DataType, error) {
	keys, err := r.store.Scan(ctx, r.key("*"))
	if err != nil {
		return nil, fmt.Errorf("scan data types: %w", err)
	}
	if len(keys) == 0 {
		return []domtype.DataType{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi data types: %w", err)
	}

	types := make([]domtype.DataType, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		dt, err := typeFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse data type %s: %w", keys[i], err)
		}
		types = append(types, dt)
	}

	sort.Slice(types, func(i, j int) bool { return types[i].Slug() < types[j].Slug() })
	return types, nil
}

func (r *Repo) key(slug string) string {
	return r.prefix + "type:" + slug
}
