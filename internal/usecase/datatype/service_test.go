package datatype

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/recordkit/internal/domain"
	domtype "github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
)

// --- Mocks ---

type mockRepo struct {
	created    domtype.DataType
	getResult  domtype.DataType
	listResult []domtype.DataType
	createErr  error
	getErr     error
	listErr    error
}

func (m *mockRepo) Create(_ context.Context, dt domtype.DataType) error {
	m.created = dt
	return m.createErr
}

func (m *mockRepo) Get(_ context.Context, _ string) (domtype.DataType, error) {
	return m.getResult, m.getErr
}

func (m *mockRepo) List(_ context.Context) ([]domtype.DataType, error) {
	return m.listResult, m.listErr
}

func makeField(t *testing.T, name string, kind field.Kind) field.Field {
	t.Helper()
	f, err := field.New(name, kind, field.Attrs{})
	if err != nil {
		t.Fatalf("field.New: %v", err)
	}
	return f
}

// --- Tests ---

func TestCreate_Success(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	fields := []field.Field{makeField(t, "name", field.String), makeField(t, "floors", field.Integer)}
	dt, err := svc.Create(context.Background(), "site", "Site", fields, []string{"name"}, "name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dt.Slug() != "site" {
		t.Errorf("expected slug 'site', got %q", dt.Slug())
	}
	if repo.created.Slug() != "site" {
		t.Errorf("repo did not receive the data type")
	}
	if !dt.IsRequired("name") {
		t.Error("expected name to be required")
	}
}

func TestCreate_InvalidSchema(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.Create(context.Background(), "site", "", nil, []string{"ghost"}, "")
	if !errors.Is(err, domain.ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestCreate_InvalidSlug(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.Create(context.Background(), "bad slug!", "", nil, nil, "")
	if !errors.Is(err, domain.ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestCreate_AlreadyExists(t *testing.T) {
	svc := New(&mockRepo{createErr: domain.ErrAlreadyExists})

	_, err := svc.Create(context.Background(), "site", "", nil, nil, "")
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGet_NotFoundMapsToTypeNotFound(t *testing.T) {
	svc := New(&mockRepo{getErr: domain.ErrNotFound})

	_, err := svc.Get(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrTypeNotFound) {
		t.Fatalf("expected ErrTypeNotFound, got %v", err)
	}
}

func TestGet_StorageError(t *testing.T) {
	svc := New(&mockRepo{getErr: errors.New("timeout")})

	_, err := svc.Get(context.Background(), "site")
	if err == nil || errors.Is(err, domain.ErrTypeNotFound) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}

func TestList(t *testing.T) {
	dt, err := domtype.New("site", "", nil, nil, "")
	if err != nil {
		t.Fatalf("domtype.New: %v", err)
	}
	svc := New(&mockRepo{listResult: []domtype.DataType{dt}})

	types, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(types) != 1 {
		t.Errorf("expected 1 type, got %d", len(types))
	}
}

func TestList_Error(t *testing.T) {
	svc := New(&mockRepo{listErr: errors.New("boom")})

	if _, err := svc.List(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
