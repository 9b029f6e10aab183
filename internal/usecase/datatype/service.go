package datatype

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/recordkit/internal/domain"
	domtype "github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
)

// Service handles data type authoring and lookup.
type Service struct {
	repo Repository
}

// New creates a data type service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new data type.
func (s *Service) Create(
	ctx context.Context, slug, name string, fields []field.Field, required []string, displayField string,
) (domtype.DataType, error) {
	dt, err := domtype.New(slug, name, fields, required, displayField)
	if err != nil {
		return domtype.DataType{}, fmt.Errorf("validate data type: %w: %w", domain.ErrInvalidSchema, err)
	}

	if err := s.repo.Create(ctx, dt); err != nil {
		return domtype.DataType{}, fmt.Errorf("create data type: %w", err)
	}

	return dt, nil
}

// Get retrieves a data type by slug.
func (s *Service) Get(ctx context.Context, slug string) (domtype.DataType, error) {
	dt, err := s.repo.Get(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domtype.DataType{}, fmt.Errorf("get data type %q: %w", slug, domain.ErrTypeNotFound)
		}
		return domtype.DataType{}, fmt.Errorf("get data type: %w", err)
	}
	return dt, nil
}

// List returns all data types.
func (s *Service) List(ctx context.Context) ([]domtype.DataType, error) {
	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list data types: %w", err)
	}
	return types, nil
}
