// Package seed loads data types and records from a YAML file into storage.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/recordkit/internal/domain"
	domtype "github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
	domrec "github.com/kailas-cloud/recordkit/internal/domain/record"
)

// File is the YAML document layout.
type File struct {
	Types   []TypeSpec   `yaml:"types"`
	Records []RecordSpec `yaml:"records"`
}

// TypeSpec declares one data type.
type TypeSpec struct {
	Slug             string      `yaml:"slug"`
	Name             string      `yaml:"name"`
	DisplayNameField string      `yaml:"display_name_field_id"`
	Required         []string    `yaml:"required"`
	Fields           []FieldSpec `yaml:"fields"`
}

// FieldSpec declares one field of a type.
type FieldSpec struct {
	Name        string          `yaml:"name"`
	Kind        string          `yaml:"kind"`
	Format      string          `yaml:"format"`
	Options     []string        `yaml:"options"`
	LinkedType  string          `yaml:"linked_type"`
	Description string          `yaml:"description"`
	Creation    *field.Creation `yaml:"creation"`
}

// RecordSpec declares one record. An empty ID gets a generated one.
type RecordSpec struct {
	ID   string         `yaml:"id"`
	Type string         `yaml:"type"`
	Data map[string]any `yaml:"data"`
}

// TypeService creates and reads data types.
type TypeService interface {
	Create(
		ctx context.Context, slug, name string, fields []field.Field, required []string, displayField string,
	) (domtype.DataType, error)
	Get(ctx context.Context, slug string) (domtype.DataType, error)
}

// RecordImporter upserts records in bulk.
type RecordImporter interface {
	Import(ctx context.Context, recs []domrec.Record) error
}

// Result counts what Apply wrote.
type Result struct {
	TypesCreated int
	TypesSkipped int
	Records      int
}

// Load reads and decodes a seed file.
func Load(path string) (File, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return File{}, fmt.Errorf("open seed %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Decode parses a seed document. Unknown keys are rejected.
func Decode(r io.Reader) (File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("decode seed: %w", err)
	}
	return file, nil
}

// Seeder applies seed files.
type Seeder struct {
	types   TypeService
	records RecordImporter
	logger  *zap.Logger
	newID   func() string
}

// New creates a Seeder. logger can be nil.
func New(types TypeService, records RecordImporter, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{types: types, records: records, logger: logger, newID: uuid.NewString}
}

// Apply creates the declared types and upserts the records.
// Types that already exist are left untouched. Every failing type or record
// is reported; the rest are still written.
func (s *Seeder) Apply(ctx context.Context, file File) (Result, error) {
	var (
		res  Result
		errs []error
	)

	for _, ts := range file.Types {
		created, err := s.applyType(ctx, ts)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("type %q: %w", ts.Slug, err))
		case created:
			res.TypesCreated++
		default:
			res.TypesSkipped++
		}
	}

	recs, err := s.buildRecords(ctx, file.Records)
	if err != nil {
		errs = append(errs, err)
	}
	if len(recs) > 0 {
		if err := s.records.Import(ctx, recs); err != nil {
			errs = append(errs, fmt.Errorf("import records: %w", err))
		} else {
			res.Records = len(recs)
		}
	}

	s.logger.Info("seed applied",
		zap.Int("types_created", res.TypesCreated),
		zap.Int("types_skipped", res.TypesSkipped),
		zap.Int("records", res.Records),
		zap.Int("errors", len(errs)),
	)
	return res, errors.Join(errs...)
}

func (s *Seeder) applyType(ctx context.Context, ts TypeSpec) (bool, error) {
	fields := make([]field.Field, 0, len(ts.Fields))
	for _, fs := range ts.Fields {
		f, err := field.New(fs.Name, field.ParseKind(fs.Kind), field.Attrs{
			Format:      field.ParseFormat(fs.Format),
			Options:     fs.Options,
			LinkedType:  fs.LinkedType,
			Creation:    fs.Creation,
			Description: fs.Description,
		})
		if err != nil {
			return false, fmt.Errorf("%w: %w", domain.ErrInvalidSchema, err)
		}
		fields = append(fields, f)
	}

	name := ts.Name
	if name == "" {
		name = ts.Slug
	}
	_, err := s.types.Create(ctx, ts.Slug, name, fields, ts.Required, ts.DisplayNameField)
	if errors.Is(err, domain.ErrAlreadyExists) {
		s.logger.Debug("seed type exists", zap.String("type", ts.Slug))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// buildRecords validates record specs. Records of unknown types are reported and skipped.
func (s *Seeder) buildRecords(ctx context.Context, specs []RecordSpec) ([]domrec.Record, error) {
	known := make(map[string]error)
	recs := make([]domrec.Record, 0, len(specs))
	var errs []error

	for i, rs := range specs {
		typeErr, checked := known[rs.Type]
		if !checked {
			_, typeErr = s.types.Get(ctx, rs.Type)
			known[rs.Type] = typeErr
		}
		if typeErr != nil {
			errs = append(errs, fmt.Errorf("record #%d: %w", i, typeErr))
			continue
		}

		id := rs.ID
		if id == "" {
			id = s.newID()
		}
		rec, err := domrec.New(id, rs.Type, rs.Data)
		if err != nil {
			errs = append(errs, fmt.Errorf("record #%d: %w", i, err))
			continue
		}
		recs = append(recs, rec)
	}
	return recs, errors.Join(errs...)
}
