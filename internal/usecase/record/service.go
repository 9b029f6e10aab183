package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kailas-cloud/recordkit/internal/domain"
	domrec "github.com/kailas-cloud/recordkit/internal/domain/record"
)

// Service lists and persists records.
type Service struct {
	repo  Repository
	types TypeReader
	newID func() string
}

// New creates a record service. Identifiers are random UUIDs.
func New(repo Repository, types TypeReader) *Service {
	return &Service{repo: repo, types: types, newID: uuid.NewString}
}

// ListAll returns every record of a type, newest first.
func (s *Service) ListAll(ctx context.Context, typeSlug string) ([]domrec.Record, error) {
	recs, err := s.repo.ListByType(ctx, typeSlug)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return recs, nil
}

// Get retrieves one record.
func (s *Service) Get(ctx context.Context, typeSlug, id string) (domrec.Record, error) {
	rec, err := s.repo.Get(ctx, typeSlug, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domrec.Record{}, fmt.Errorf("get record %s/%s: %w", typeSlug, id, domain.ErrRecordNotFound)
		}
		return domrec.Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// Create stores data as a new record of an existing type.
func (s *Service) Create(ctx context.Context, typeSlug string, data map[string]any) (domrec.Record, error) {
	if _, err := s.types.Get(ctx, typeSlug); err != nil {
		return domrec.Record{}, fmt.Errorf("get data type: %w", err)
	}

	rec, err := domrec.New(s.newID(), typeSlug, data)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("validate record: %w", err)
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return domrec.Record{}, fmt.Errorf("create record: %w", err)
	}
	return rec, nil
}
