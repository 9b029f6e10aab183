// Package recordkit is an embeddable engine for schema-driven records:
// data types, records, and selectors that resolve and create records inline.
package recordkit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recordkit/internal/db"
	"github.com/kailas-cloud/recordkit/internal/db/memory"
	dbRedis "github.com/kailas-cloud/recordkit/internal/db/redis"
	"github.com/kailas-cloud/recordkit/internal/domain"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
	typerepo "github.com/kailas-cloud/recordkit/internal/repository/datatype"
	recrepo "github.com/kailas-cloud/recordkit/internal/repository/record"
	"github.com/kailas-cloud/recordkit/internal/seed"
	datatypeuc "github.com/kailas-cloud/recordkit/internal/usecase/datatype"
	recorduc "github.com/kailas-cloud/recordkit/internal/usecase/record"
	"github.com/kailas-cloud/recordkit/internal/usecase/selector"
)

const (
	driverMemory = "memory"
	driverRedis  = "redis"
	driverValkey = "valkey"

	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "recordkit:"
)

// Client is the recordkit SDK entry point.
type Client struct {
	store    db.Store
	types    *datatypeuc.Service
	records  *recorduc.Service
	recRepo  *recrepo.Repo
	logger   *zap.Logger
	observer Observer
}

// New creates a Client. Without a driver option everything lives in memory.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		driver:           driverMemory,
		keyPrefix:        defaultKeyPrefix,
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(context.Background(), cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("recordkit: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverMemory:
		return memory.NewStore(), nil
	case driverRedis, driverValkey:
		if len(cfg.addrs) == 0 {
			return nil, fmt.Errorf("recordkit: %s driver requires at least one address", cfg.driver)
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			ClientName: "recordkit-sdk",
		})
		if err != nil {
			return nil, fmt.Errorf("recordkit: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("recordkit: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	recRepo := recrepo.New(store, cfg.keyPrefix)
	types := datatypeuc.New(typerepo.New(store, cfg.keyPrefix))

	return &Client{
		store:    store,
		types:    types,
		records:  recorduc.New(recRepo, types),
		recRepo:  recRepo,
		logger:   cfg.logger,
		observer: cfg.observer,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// CreateType registers a data type.
func (c *Client) CreateType(ctx context.Context, slug string, opts ...TypeOption) (DataType, error) {
	tc := &typeConfig{name: slug}
	for _, o := range opts {
		o(tc)
	}

	fields := make([]Field, 0, len(tc.fields))
	for _, fs := range tc.fields {
		f, err := field.New(fs.name, fs.kind, fs.attrs)
		if err != nil {
			return DataType{}, fmt.Errorf("field %q: %w: %w", fs.name, domain.ErrInvalidSchema, err)
		}
		fields = append(fields, f)
	}

	dt, err := c.types.Create(ctx, slug, tc.name, fields, tc.required, tc.displayField)
	if err != nil {
		return DataType{}, fmt.Errorf("create type: %w", err)
	}
	return dt, nil
}

// Type returns a data type by slug.
func (c *Client) Type(ctx context.Context, slug string) (DataType, error) {
	dt, err := c.types.Get(ctx, slug)
	if err != nil {
		return DataType{}, fmt.Errorf("get type: %w", err)
	}
	return dt, nil
}

// Types lists every data type ordered by slug.
func (c *Client) Types(ctx context.Context) ([]DataType, error) {
	types, err := c.types.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}
	return types, nil
}

// CreateRecord stores data as a new record without schema validation.
func (c *Client) CreateRecord(ctx context.Context, typeSlug string, data map[string]any) (Record, error) {
	rec, err := c.records.Create(ctx, typeSlug, data)
	if err != nil {
		return Record{}, fmt.Errorf("create record: %w", err)
	}
	return rec, nil
}

// Record returns one record.
func (c *Client) Record(ctx context.Context, typeSlug, id string) (Record, error) {
	rec, err := c.records.Get(ctx, typeSlug, id)
	if err != nil {
		return Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// Records lists the records of a type, newest first.
func (c *Client) Records(ctx context.Context, typeSlug string) ([]Record, error) {
	recs, err := c.records.ListAll(ctx, typeSlug)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return recs, nil
}

// Seed applies a YAML seed file. Existing types are kept; records are upserted by id.
func (c *Client) Seed(ctx context.Context, path string) (SeedResult, error) {
	file, err := seed.Load(path)
	if err != nil {
		return SeedResult{}, err
	}
	res, err := seed.New(c.types, c.recRepo, c.logger).Apply(ctx, file)
	if err != nil {
		return res, fmt.Errorf("seed %s: %w", path, err)
	}
	return res, nil
}

// NewSelector creates a selector bound to this client's storage.
// Call Configure on it before use and Close when done.
func (c *Client) NewSelector(cfg SelectorConfig, opts ...SelectorOption) *Selector {
	base := []SelectorOption{selector.WithLogger(c.logger)}
	if c.observer != nil {
		base = append(base, selector.WithObserver(c.observer))
	}
	return selector.New(c.types, c.records, cfg, append(base, opts...)...)
}
