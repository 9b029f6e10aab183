// Package selector implements the type-scoped record picker with inline creation.
package selector

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recordkit/internal/domain"
	"github.com/kailas-cloud/recordkit/internal/domain/creation"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/domain/record"
)

// ClearOption is the identifier of the "clear selection" entry.
const ClearOption = "__clear__"

// Config is the call-site configuration of a selector.
type Config struct {
	Placeholder string
	Required    bool
	Disabled    bool
	Creation    creation.Config
}

// Setting customizes a Selector.
type Setting func(*Selector)

// WithLogger sets the logger. Defaults to zap.NewNop.
func WithLogger(l *zap.Logger) Setting {
	return func(s *Selector) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver sets the metrics observer.
func WithObserver(o Observer) Setting {
	return func(s *Selector) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithOnSelectionChange sets the callback invoked with the new selection (nil when cleared).
func WithOnSelectionChange(fn func(id *string)) Setting {
	return func(s *Selector) { s.onChange = fn }
}

// Selector resolves candidates of one data type, filters them by search
// text and creates new records inline. Safe for concurrent use.
type Selector struct {
	types    TypeReader
	records  RecordStore
	cfg      Config
	logger   *zap.Logger
	observer Observer
	onChange func(id *string)

	mu          sync.Mutex
	token       uint64
	closed      bool
	slug        string
	meta        MetaState
	dataType    *datatype.DataType
	metaErr     error
	list        ListState
	listErr     error
	candidates  []record.Record
	search      string
	options     []Option
	selected    *string
	creation    CreationState
	creationErr error
	form        *CreationForm
	// inFlight survives Configure so a stale submit still blocks a new one.
	inFlight bool
}

// New creates an unconfigured Selector.
func New(types TypeReader, records RecordStore, cfg Config, opts ...Setting) *Selector {
	s := &Selector{
		types:    types,
		records:  records,
		cfg:      cfg,
		logger:   zap.NewNop(),
		observer: noopObserver{},
		meta:     MetaIdle,
		list:     ListIdle,
		creation: CreationClosed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configure points the selector at a data type and loads its metadata and
// candidates. A call superseded by a later Configure or Close returns nil
// without touching state.
func (s *Selector) Configure(ctx context.Context, slug string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.token++
	tok := s.token
	s.slug = slug
	s.meta, s.dataType, s.metaErr = MetaLoading, nil, nil
	s.list, s.listErr, s.candidates = ListIdle, nil, nil
	s.options = nil
	s.resetCreationLocked()
	s.mu.Unlock()

	s.logger.Debug("configuring selector", zap.String("type", slug))

	dt, err := s.types.Get(ctx, slug)

	s.mu.Lock()
	if !s.liveLocked(tok) {
		s.mu.Unlock()
		s.dropStale("metadata", slug)
		return nil
	}
	if err != nil {
		s.meta = MetaError
		if errors.Is(err, domain.ErrTypeNotFound) || errors.Is(err, domain.ErrNotFound) {
			s.meta = MetaNotFound
		}
		s.metaErr = err
		s.mu.Unlock()
		return fmt.Errorf("load data type %q: %w", slug, err)
	}
	s.meta = MetaReady
	s.dataType = &dt
	s.list = ListLoading
	s.mu.Unlock()

	recs, err := s.records.ListAll(ctx, slug)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.liveLocked(tok) {
		s.dropStale("candidates", slug)
		return nil
	}
	if err != nil {
		s.list, s.listErr = ListError, err
		s.refilterLocked()
		return fmt.Errorf("list %q records: %w", slug, err)
	}
	s.candidates = scoped(recs, slug)
	s.list = ListReady
	s.refilterLocked()
	return nil
}

// Search filters the candidates by text and returns the resulting options.
func (s *Selector) Search(text string) []Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = text
	s.refilterLocked()
	return cloneOptions(s.options)
}

// Options returns the currently filtered options.
func (s *Selector) Options() []Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOptions(s.options)
}

// Snapshot returns a copy of the selector state.
func (s *Selector) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		TypeSlug:    s.slug,
		Meta:        s.meta,
		List:        s.list,
		Search:      s.search,
		Options:     cloneOptions(s.options),
		Selected:    clonePtr(s.selected),
		Creation:    s.creation,
		Placeholder: s.cfg.Placeholder,
		Required:    s.cfg.Required,
		Disabled:    s.cfg.Disabled,
	}
	if s.dataType != nil {
		dt := *s.dataType
		snap.DataType = &dt
	}
	if s.metaErr != nil {
		snap.MetaError = s.metaErr.Error()
	}
	if s.listErr != nil {
		snap.ListError = s.listErr.Error()
	}
	if s.creationErr != nil {
		snap.CreationError = s.creationErr.Error()
	}
	return snap
}

// Select sets the selection and notifies the change callback.
// ClearOption and "" clear the selection.
func (s *Selector) Select(id string) error {
	s.mu.Lock()
	if s.cfg.Disabled {
		s.mu.Unlock()
		return domain.ErrDisabled
	}
	var selected *string
	if id != ClearOption && id != "" {
		selected = &id
	}
	s.selected = selected
	cb := s.onChange
	s.mu.Unlock()

	if cb != nil {
		cb(clonePtr(selected))
	}
	return nil
}

// OpenCreationForm opens the inline creation form for the configured type.
// Nested selectors of reference fields are configured before it returns.
func (s *Selector) OpenCreationForm(ctx context.Context) (*CreationForm, error) {
	s.mu.Lock()
	if s.cfg.Disabled {
		s.mu.Unlock()
		return nil, domain.ErrDisabled
	}
	if s.meta != MetaReady || s.dataType == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("data type %q is not loaded: %w", s.slug, domain.ErrConfiguration)
	}
	if !s.dataType.HasSchema() {
		s.mu.Unlock()
		return nil, fmt.Errorf("data type %q has no schema: %w", s.slug, domain.ErrConfiguration)
	}
	if s.submittingLocked() {
		s.mu.Unlock()
		return nil, domain.ErrSubmissionInFlight
	}
	if s.form != nil {
		s.form.close()
	}
	frm := newCreationForm(*s.dataType, s.cfg.Creation)
	s.form = frm
	s.creation, s.creationErr = CreationOpen, nil
	s.mu.Unlock()

	s.attachNested(ctx, frm)
	return frm, nil
}

// CancelCreation closes the creation form. Ignored while a submission is in flight.
func (s *Selector) CancelCreation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submittingLocked() {
		return
	}
	s.resetCreationLocked()
}

// SubmitCreation validates values, persists the record, adds it to the
// candidates and selects it. A nil values map submits the open form's values.
func (s *Selector) SubmitCreation(ctx context.Context, values map[string]any) (record.Record, error) {
	s.mu.Lock()
	if s.submittingLocked() {
		s.mu.Unlock()
		return record.Record{}, domain.ErrSubmissionInFlight
	}
	if s.creation == CreationClosed || s.dataType == nil {
		s.mu.Unlock()
		return record.Record{}, fmt.Errorf("creation form is not open: %w", domain.ErrConfiguration)
	}
	if values == nil && s.form != nil {
		values = s.form.Values()
	}

	s.creation = CreationValidating
	payload, err := creation.BuildPayload(*s.dataType, s.cfg.Creation, values)
	if err != nil {
		s.creation, s.creationErr = CreationFailed, err
		s.mu.Unlock()
		s.observer.CreationSubmitted("invalid")
		return record.Record{}, err
	}
	s.creation = CreationSubmitting
	s.inFlight = true
	tok, slug := s.token, s.slug
	s.mu.Unlock()

	rec, err := s.records.Create(ctx, slug, payload)

	s.mu.Lock()
	s.inFlight = false
	if !s.liveLocked(tok) {
		s.mu.Unlock()
		s.dropStale("creation", slug)
		if err != nil {
			return record.Record{}, fmt.Errorf("create %s record: %w", slug, err)
		}
		return rec, nil
	}
	if err != nil {
		s.creation, s.creationErr = CreationFailed, err
		s.mu.Unlock()
		s.logger.Warn("record creation failed", zap.String("type", slug), zap.Error(err))
		s.observer.CreationSubmitted("error")
		return record.Record{}, fmt.Errorf("create %s record: %w", slug, err)
	}

	s.candidates = prepend(s.candidates, rec)
	s.refilterLocked()
	id := rec.ID()
	s.selected = &id
	s.resetCreationLocked()
	cb := s.onChange
	s.mu.Unlock()

	s.logger.Debug("record created", zap.String("type", slug), zap.String("id", id))
	s.observer.CreationSubmitted("ok")
	if cb != nil {
		cb(clonePtr(&id))
	}
	return rec, nil
}

// Close tears the selector down. Responses still in flight are dropped.
func (s *Selector) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.token++
	if s.form != nil {
		s.form.close()
		s.form = nil
	}
}

func (s *Selector) liveLocked(tok uint64) bool {
	return !s.closed && s.token == tok
}

func (s *Selector) submittingLocked() bool {
	return s.inFlight || s.creation == CreationValidating || s.creation == CreationSubmitting
}

func (s *Selector) resetCreationLocked() {
	if s.form != nil {
		s.form.close()
		s.form = nil
	}
	s.creation, s.creationErr = CreationClosed, nil
}

func (s *Selector) refilterLocked() {
	s.options = filter(s.candidates, s.slug, s.dataType, s.cfg.Creation.DisplayFormat, s.search)
}

func (s *Selector) dropStale(op, slug string) {
	s.logger.Debug("dropping stale response", zap.String("op", op), zap.String("type", slug))
	s.observer.StaleDropped(op)
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
