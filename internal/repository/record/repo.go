package record

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/recordkit/internal/db"
	"github.com/kailas-cloud/recordkit/internal/domain"
	domrec "github.com/kailas-cloud/recordkit/internal/domain/record"
)

// store is the consumer interface for records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/record.Repository on hashes keyed {prefix}rec:{type}:{id}.
type Repo struct {
	store  store
	prefix string
}

// New creates a record repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// Create stores a new record. Fails with domain.ErrAlreadyExists on a taken id.
func (r *Repo) Create(ctx context.Context, rec domrec.Record) error {
	key := r.key(rec.TypeSlug(), rec.ID())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}

	hash, err := recordToHash(rec)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, key, hash); err != nil {
		return fmt.Errorf("hset record %s: %w", rec.ID(), err)
	}
	return nil
}

// Import upserts records in one pipelined round-trip.
func (r *Repo) Import(ctx context.Context, recs []domrec.Record) error {
	items := make([]db.HashSetItem, 0, len(recs))
	for _, rec := range recs {
		hash, err := recordToHash(rec)
		if err != nil {
			return fmt.Errorf("record %s: %w", rec.ID(), err)
		}
		items = append(items, db.HashSetItem{Key: r.key(rec.TypeSlug(), rec.ID()), Fields: hash})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset multi records: %w", err)
	}
	return nil
}

// Get retrieves one record.
func (r *Repo) Get(ctx context.Context, typeSlug, id string) (domrec.Record, error) {
	m, err := r.store.HGetAll(ctx, r.key(typeSlug, id))
	if err != nil {
		return domrec.Record{}, fmt.Errorf("hgetall record %s: %w", id, err)
	}
	if len(m) == 0 {
		return domrec.Record{}, domain.ErrNotFound
	}
	return recordFromHash(m)
}

// ListByType returns the records of a type, newest first.
func (r *Repo) ListByType(ctx context.Context, typeSlug string) ([]domrec.Record, error) {
	keys, err := r.store.Scan(ctx, r.key(typeSlug, "*"))
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	if len(keys) == 0 {
		return []domrec.Record{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi records: %w", err)
	}

	recs := make([]domrec.Record, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		rec, err := recordFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse record %s: %w", keys[i], err)
		}
		recs = append(recs, rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt() != recs[j].CreatedAt() {
			return recs[i].CreatedAt() > recs[j].CreatedAt()
		}
		return recs[i].ID() < recs[j].ID()
	})
	return recs, nil
}

func (r *Repo) key(typeSlug, id string) string {
	return r.prefix + "rec:" + typeSlug + ":" + id
}
