package datatype

import (
	"context"
	"testing"

	domtype "github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
)

const testPrefix = "recordkit:"

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn         func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	existsFn       func(ctx context.Context, key string) (bool, error)
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, testPrefix), ms
}

func testType(t *testing.T) domtype.DataType {
	t.Helper()
	return domtype.Reconstruct(
		"site",
		"Site",
		[]field.Field{
			field.Reconstruct("name", field.String, field.Attrs{Description: "Site name"}),
			field.Reconstruct("kind", field.Enum, field.Attrs{Options: []string{"depot", "yard"}}),
			field.Reconstruct("contact", field.String, field.Attrs{Format: field.FormatEmail}),
			field.Reconstruct("region", field.Reference, field.Attrs{
				LinkedType: "region",
				Creation:   &field.Creation{EnabledFields: []string{"title"}, DisplayFormat: "{title}"},
			}),
		},
		[]string{"name"},
		"name",
		1700000000000,
		2,
	)
}
