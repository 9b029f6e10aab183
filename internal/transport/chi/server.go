package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recordkit/internal/domain"
	"github.com/kailas-cloud/recordkit/internal/domain/creation"
	domtype "github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
	"github.com/kailas-cloud/recordkit/internal/domain/display"
	domrec "github.com/kailas-cloud/recordkit/internal/domain/record"
	logpkg "github.com/kailas-cloud/recordkit/internal/logger"
	datatypeuc "github.com/kailas-cloud/recordkit/internal/usecase/datatype"
	healthuc "github.com/kailas-cloud/recordkit/internal/usecase/health"
	recorduc "github.com/kailas-cloud/recordkit/internal/usecase/record"
	"github.com/kailas-cloud/recordkit/internal/usecase/selector"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the record resolution API.
type Server struct {
	types         *datatypeuc.Service
	records       *recorduc.Service
	health        *healthuc.Service
	observer      selector.Observer
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. observer may be nil.
func NewServer(
	types *datatypeuc.Service,
	records *recorduc.Service,
	health *healthuc.Service,
	observer selector.Observer,
	logger *zap.Logger,
) *Server {
	s := &Server{
		types:    types,
		records:  records,
		health:   health,
		observer: observer,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrTypeNotFound, http.StatusNotFound, ErrorResponseCodeTypeNotFound),
		sentinelHandler(domain.ErrRecordNotFound, http.StatusNotFound, ErrorResponseCodeRecordNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, ErrorResponseCodeAlreadyExists),
		sentinelHandler(domain.ErrInvalidSchema, http.StatusBadRequest, ErrorResponseCodeInvalidSchema),
		sentinelHandler(domain.ErrConfiguration, http.StatusUnprocessableEntity, ErrorResponseCodeConfiguration),
		sentinelHandler(domain.ErrSubmissionInFlight, http.StatusConflict, ErrorResponseCodeSubmissionInFlight),
	}
	return s
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/types", s.ListTypes)
		r.Post("/types", s.CreateType)
		r.Get("/types/{slug}", s.GetType)
		r.Get("/types/{slug}/options", s.ListOptions)
		r.Post("/types/{slug}/form", s.DescribeForm)
		r.Post("/types/{slug}/create", s.CreateViaSelector)

		r.Get("/records", s.ListRecords)
		r.Post("/records", s.CreateRecord)
	})
}

// ListTypes handles GET /v1/types.
func (s *Server) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.types.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]DataType, len(types))
	for i, dt := range types {
		items[i] = dataTypeToAPI(dt)
	}
	writeJSON(w, http.StatusOK, ListResponse[DataType]{Items: items, Total: len(items)})
}

// CreateType handles POST /v1/types.
func (s *Server) CreateType(w http.ResponseWriter, r *http.Request) {
	var req CreateDataTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	fields, err := fieldsFromAPI(req.Fields)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeInvalidSchema, err.Error())
		return
	}

	dt, err := s.types.Create(r.Context(), req.Slug, req.Name, fields, req.Required, req.DisplayNameField)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dataTypeToAPI(dt))
}

// GetType handles GET /v1/types/{slug}.
func (s *Server) GetType(w http.ResponseWriter, r *http.Request) {
	slug, ok := pathSlug(w, r)
	if !ok {
		return
	}

	dt, err := s.types.Get(r.Context(), slug)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataTypeToAPI(dt))
}

// ListRecords handles GET /v1/records?type=.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	var typeSlug string
	if err := runtime.BindQueryParameter("form", true, true, "type", r.URL.Query(), &typeSlug); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter type")
		return
	}

	dt, err := s.types.Get(r.Context(), typeSlug)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	recs, err := s.records.ListAll(r.Context(), typeSlug)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]Record, len(recs))
	for i, rec := range recs {
		items[i] = recordToAPI(rec, &dt, "")
	}
	writeJSON(w, http.StatusOK, ListResponse[Record]{Items: items, Total: len(items)})
}

// CreateRecord handles POST /v1/records. Data is stored as given.
func (s *Server) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Type == "" {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, "Record type is required")
		return
	}

	rec, err := s.records.Create(r.Context(), req.Type, req.Data)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordToAPI(rec, nil, ""))
}

// ListOptions handles GET /v1/types/{slug}/options?q=&format=.
func (s *Server) ListOptions(w http.ResponseWriter, r *http.Request) {
	slug, ok := pathSlug(w, r)
	if !ok {
		return
	}
	var q, format string
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter q")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter format")
		return
	}

	sel := s.newSelector(r, creation.Config{DisplayFormat: format})
	defer sel.Close()
	// A failed candidate load still yields a searchable, empty option list.
	resp := OptionListResponse{Type: slug, Search: q}
	if err := sel.Configure(r.Context(), slug); err != nil {
		if sel.Snapshot().Meta != selector.MetaReady {
			s.handleDomainError(w, r, err)
			return
		}
		logpkg.FromContext(r.Context()).Warn("candidate list failed", zap.String("type", slug), zap.Error(err))
		resp.ListError = safeDomainMessage(err)
	}

	resp.Items = optionsToAPI(sel.Search(q))
	writeJSON(w, http.StatusOK, resp)
}

// DescribeForm handles POST /v1/types/{slug}/form. The body is an optional creation config.
func (s *Server) DescribeForm(w http.ResponseWriter, r *http.Request) {
	slug, ok := pathSlug(w, r)
	if !ok {
		return
	}
	var cfg creation.Config
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	sel := s.newSelector(r, cfg)
	defer sel.Close()
	if err := sel.Configure(r.Context(), slug); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	frm, err := sel.OpenCreationForm(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := CreationForm{
		Type:     frm.TypeSlug,
		Controls: frm.Controls,
		Values:   frm.Values(),
		Nested:   make(map[string]NestedSelector),
	}
	for _, c := range frm.Controls {
		nested, ok := frm.Nested(c.Name)
		if !ok {
			continue
		}
		snap := nested.Snapshot()
		resp.Nested[c.Name] = NestedSelector{
			Type:     snap.TypeSlug,
			Metadata: string(snap.Meta),
			Options:  optionsToAPI(snap.Options),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateViaSelector handles POST /v1/types/{slug}/create.
func (s *Server) CreateViaSelector(w http.ResponseWriter, r *http.Request) {
	slug, ok := pathSlug(w, r)
	if !ok {
		return
	}
	var req CreateViaSelectorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Values == nil {
		req.Values = map[string]any{}
	}

	sel := s.newSelector(r, req.Creation)
	defer sel.Close()
	if err := sel.Configure(r.Context(), slug); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if _, err := sel.OpenCreationForm(r.Context()); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	rec, err := sel.SubmitCreation(r.Context(), req.Values)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	dt := sel.Snapshot().DataType
	out := recordToAPI(rec, dt, req.Creation.DisplayFormat)
	writeJSON(w, http.StatusCreated, CreatedOption{
		Option: Option{ID: out.ID, Label: out.Label},
		Record: out,
	})
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Types:  report.Types,
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) newSelector(r *http.Request, cfg creation.Config) *selector.Selector {
	opts := []selector.Setting{selector.WithLogger(logpkg.FromContext(r.Context()))}
	if s.observer != nil {
		opts = append(opts, selector.WithObserver(s.observer))
	}
	return selector.New(s.types, s.records, selector.Config{Creation: cfg}, opts...)
}

func pathSlug(w http.ResponseWriter, r *http.Request) (string, bool) {
	var slug string
	err := runtime.BindStyledParameterWithOptions("simple", "slug", chi.URLParam(r, "slug"), &slug,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter slug")
		return "", false
	}
	return slug, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrTypeNotFound,
		domain.ErrRecordNotFound,
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrConfiguration,
		domain.ErrSubmissionInFlight,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	if errors.Is(err, domain.ErrInvalidSchema) {
		// schema errors carry the offending field and are safe to show
		return err.Error()
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler reports the failing field of a creation submit.
func validationHandler(w http.ResponseWriter, err error, _ string) bool {
	var verr *creation.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Code:    ErrorResponseCodeValidationFailed,
		Message: verr.Error(),
		Field:   verr.Field,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContext(r.Context())
	logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func dataTypeToAPI(dt domtype.DataType) DataType {
	fields := make([]FieldDefinition, len(dt.Fields()))
	for i, f := range dt.Fields() {
		fields[i] = FieldDefinition{
			Name:        f.Name(),
			Kind:        string(f.Kind()),
			Format:      string(f.Format()),
			Options:     f.Options(),
			LinkedType:  f.LinkedType(),
			Creation:    f.Creation(),
			Description: f.Description(),
		}
	}
	required := dt.Required()
	if required == nil {
		required = []string{}
	}
	return DataType{
		Slug:             dt.Slug(),
		Name:             dt.Name(),
		Fields:           fields,
		Required:         required,
		DisplayNameField: dt.DisplayNameField(),
		CreatedAt:        dt.CreatedAt(),
		Revision:         dt.Revision(),
	}
}

func fieldsFromAPI(defs []FieldDefinition) ([]field.Field, error) {
	fields := make([]field.Field, 0, len(defs))
	for _, d := range defs {
		f, err := field.New(d.Name, field.ParseKind(d.Kind), field.Attrs{
			Format:      field.ParseFormat(d.Format),
			Options:     d.Options,
			LinkedType:  d.LinkedType,
			Creation:    d.Creation,
			Description: d.Description,
		})
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func recordToAPI(rec domrec.Record, dt *domtype.DataType, template string) Record {
	data := rec.Data()
	if data == nil {
		data = map[string]any{}
	}
	return Record{
		ID:        rec.ID(),
		Type:      rec.TypeSlug(),
		Label:     display.Resolve(rec, dt, template),
		Data:      data,
		CreatedAt: rec.CreatedAt(),
	}
}

func optionsToAPI(opts []selector.Option) []Option {
	out := make([]Option, len(opts))
	for i, o := range opts {
		out[i] = Option{ID: o.ID, Label: o.Label}
	}
	return out
}
