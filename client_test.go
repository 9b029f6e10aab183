package recordkit

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestNew_DefaultsToMemory(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestCreateStore_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  clientConfig
	}{
		{"unknown driver", clientConfig{driver: "postgres"}},
		{"redis without addrs", clientConfig{driver: driverRedis}},
		{"valkey without addrs", clientConfig{driver: driverValkey}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := createStore(&tt.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := &clientConfig{}
	for _, o := range []Option{
		WithValkey("a:6379", "b:6379"),
		WithPassword("pw"),
		WithKeyPrefix("app:"),
	} {
		o(cfg)
	}
	if cfg.driver != driverValkey || len(cfg.addrs) != 2 {
		t.Errorf("driver/addrs = %s/%v", cfg.driver, cfg.addrs)
	}
	if cfg.password != "pw" || cfg.keyPrefix != "app:" {
		t.Errorf("password/prefix = %s/%s", cfg.password, cfg.keyPrefix)
	}

	WithMemory()(cfg)
	if cfg.driver != driverMemory || cfg.addrs != nil {
		t.Errorf("WithMemory did not reset driver: %s/%v", cfg.driver, cfg.addrs)
	}
}

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(c.Close)

	ctx := context.Background()
	if _, err := c.CreateType(ctx, "site",
		Named("Site"),
		WithField("name", KindString, Described("Site name")),
		WithField("code", KindString),
		Required("name"),
		DisplayField("name"),
	); err != nil {
		t.Fatalf("create site type: %v", err)
	}
	if _, err := c.CreateType(ctx, "incident",
		WithField("title", KindString),
		WithField("severity", KindEnum, Choices("low", "high")),
		WithField("site", KindReference, LinksTo("site"), NestedCreation(FieldCreation{
			EnabledFields: []string{"name"},
		})),
		Required("title"),
	); err != nil {
		t.Fatalf("create incident type: %v", err)
	}
	return c
}

func TestCreateType_Errors(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.CreateType(ctx, "site", WithField("name", KindString))
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("duplicate: got %v, want ErrAlreadyExists", err)
	}

	_, err = c.CreateType(ctx, "broken", WithField("ref", KindReference))
	if !errors.Is(err, ErrInvalidSchema) {
		t.Errorf("reference without link: got %v, want ErrInvalidSchema", err)
	}

	_, err = c.Type(ctx, "ghost")
	if !errors.Is(err, ErrTypeNotFound) {
		t.Errorf("missing type: got %v, want ErrTypeNotFound", err)
	}

	types, err := c.Types(ctx)
	if err != nil {
		t.Fatalf("list types: %v", err)
	}
	if len(types) != 2 || types[0].Slug() != "incident" {
		t.Errorf("unexpected types: %d", len(types))
	}
}

func TestRecords(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	rec, err := c.CreateRecord(ctx, "site", map[string]any{"name": "Harbor"})
	if err != nil {
		t.Fatalf("create record: %v", err)
	}

	got, err := c.Record(ctx, "site", rec.ID())
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if got.Data()["name"] != "Harbor" {
		t.Errorf("name = %v", got.Data()["name"])
	}

	if _, err := c.Record(ctx, "site", "nope"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("missing record: got %v, want ErrRecordNotFound", err)
	}
	if _, err := c.CreateRecord(ctx, "ghost", nil); !errors.Is(err, ErrTypeNotFound) {
		t.Errorf("unknown type: got %v, want ErrTypeNotFound", err)
	}

	recs, err := c.Records(ctx, "site")
	if err != nil || len(recs) != 1 {
		t.Fatalf("list records: %d, %v", len(recs), err)
	}
}

type countingObserver struct {
	mu       sync.Mutex
	statuses []string
}

func (o *countingObserver) StaleDropped(string) {}

func (o *countingObserver) CreationSubmitted(status string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statuses = append(o.statuses, status)
}

func TestSelector_ResolveAndCreate(t *testing.T) {
	obs := &countingObserver{}
	c := newTestClient(t, WithObserver(obs))
	ctx := context.Background()

	if _, err := c.CreateRecord(ctx, "site", map[string]any{"name": "Harbor", "code": "HRB"}); err != nil {
		t.Fatalf("create record: %v", err)
	}

	var selected *string
	sel := c.NewSelector(SelectorConfig{Required: true}, WithSelectionChange(func(id *string) { selected = id }))
	defer sel.Close()

	if err := sel.Configure(ctx, "site"); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if opts := sel.Search("hrb"); len(opts) != 1 || opts[0].Label != "Harbor" {
		t.Fatalf("search by code: %+v", opts)
	}

	if _, err := sel.OpenCreationForm(ctx); err != nil {
		t.Fatalf("open form: %v", err)
	}
	_, err := sel.SubmitCreation(ctx, map[string]any{"name": ""})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "name" {
		t.Fatalf("expected validation error on name, got %v", err)
	}

	rec, err := sel.SubmitCreation(ctx, map[string]any{"name": "Airport", "code": "APT"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if selected == nil || *selected != rec.ID() {
		t.Errorf("selection = %v, want %s", selected, rec.ID())
	}
	if opts := sel.Search(""); len(opts) != 2 || opts[0].ID != rec.ID() {
		t.Errorf("created record should lead the options: %+v", opts)
	}

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if len(obs.statuses) != 2 || obs.statuses[0] != "invalid" || obs.statuses[1] != "ok" {
		t.Errorf("observer statuses = %v", obs.statuses)
	}
}

func TestSelector_NestedReference(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	sel := c.NewSelector(SelectorConfig{})
	defer sel.Close()
	if err := sel.Configure(ctx, "incident"); err != nil {
		t.Fatalf("configure: %v", err)
	}
	frm, err := sel.OpenCreationForm(ctx)
	if err != nil {
		t.Fatalf("open form: %v", err)
	}

	nested, ok := frm.Nested("site")
	if !ok {
		t.Fatal("expected nested selector for site")
	}
	if _, err := nested.OpenCreationForm(ctx); err != nil {
		t.Fatalf("open nested form: %v", err)
	}
	site, err := nested.SubmitCreation(ctx, map[string]any{"name": "Depot"})
	if err != nil {
		t.Fatalf("nested submit: %v", err)
	}
	if frm.Values()["site"] != site.ID() {
		t.Errorf("outer form site = %v, want %s", frm.Values()["site"], site.ID())
	}

	rec, err := sel.SubmitCreation(ctx, nil)
	if err == nil {
		t.Fatalf("expected title to be required, got record %s", rec.ID())
	}

	frm.Set("title", "Flooding")
	frm.Set("severity", "high")
	rec, err = sel.SubmitCreation(ctx, nil)
	if err != nil {
		t.Fatalf("outer submit: %v", err)
	}
	if rec.Data()["site"] != site.ID() {
		t.Errorf("incident site = %v", rec.Data()["site"])
	}
}

func TestSeed(t *testing.T) {
	c, err := New(WithKeyPrefix("seedtest:"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer c.Close()

	res, err := c.Seed(context.Background(), "config/seed.yaml")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if res.TypesCreated == 0 || res.Records == 0 {
		t.Errorf("nothing seeded: %+v", res)
	}

	if _, err := c.Seed(context.Background(), "config/missing.yaml"); err == nil {
		t.Error("expected error for missing seed file")
	}
}
