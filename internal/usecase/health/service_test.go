package health

import (
	"context"
	"errors"
	"testing"

	domtype "github.com/kailas-cloud/recordkit/internal/domain/datatype"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockCatalog struct {
	types []domtype.DataType
	err   error
	calls int
}

func (m *mockCatalog) List(_ context.Context) ([]domtype.DataType, error) {
	m.calls++
	return m.types, m.err
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	catalog := &mockCatalog{types: []domtype.DataType{
		domtype.Reconstruct("site", "Site", nil, nil, "", 0, 1),
		domtype.Reconstruct("region", "Region", nil, nil, "", 0, 1),
	}}
	r := New(&mockDBPinger{}, catalog).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["catalog"] != CheckOK {
		t.Errorf("expected catalog %q, got %q", CheckOK, r.Checks["catalog"])
	}
	if r.Types != 2 {
		t.Errorf("expected 2 types, got %d", r.Types)
	}
}

func TestCheck_DBErrorSkipsCatalog(t *testing.T) {
	catalog := &mockCatalog{}
	r := New(&mockDBPinger{err: errors.New("conn refused")}, catalog).Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if catalog.calls != 0 {
		t.Error("catalog must not be read when storage is down")
	}
}

func TestCheck_CatalogError(t *testing.T) {
	r := New(&mockDBPinger{}, &mockCatalog{err: errors.New("corrupt schema")}).Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["catalog"] != CheckError {
		t.Errorf("expected catalog %q, got %q", CheckError, r.Checks["catalog"])
	}
}

func TestCheck_NoCatalog(t *testing.T) {
	r := New(&mockDBPinger{}, nil).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["catalog"]; ok {
		t.Error("catalog check should be absent when catalog is nil")
	}
}
