package chi

import (
	"github.com/kailas-cloud/recordkit/internal/domain/creation"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
	"github.com/kailas-cloud/recordkit/internal/usecase/form"
)

// ErrorResponseCode is the machine-readable error code of an API error.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest         ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized       ErrorResponseCode = "unauthorized"
	ErrorResponseCodeValidationFailed   ErrorResponseCode = "validation_failed"
	ErrorResponseCodeInvalidSchema      ErrorResponseCode = "invalid_schema"
	ErrorResponseCodeConfiguration      ErrorResponseCode = "configuration_error"
	ErrorResponseCodeTypeNotFound       ErrorResponseCode = "type_not_found"
	ErrorResponseCodeRecordNotFound     ErrorResponseCode = "record_not_found"
	ErrorResponseCodeNotFound           ErrorResponseCode = "not_found"
	ErrorResponseCodeAlreadyExists      ErrorResponseCode = "already_exists"
	ErrorResponseCodeSubmissionInFlight ErrorResponseCode = "submission_in_flight"
	ErrorResponseCodeInternalError      ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
	Field   string            `json:"field,omitempty"`
}

// FieldDefinition is the wire form of a field.
type FieldDefinition struct {
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	Format      string          `json:"format,omitempty"`
	Options     []string        `json:"options,omitempty"`
	LinkedType  string          `json:"linked_type,omitempty"`
	Creation    *field.Creation `json:"creation,omitempty"`
	Description string          `json:"description,omitempty"`
}

// CreateDataTypeRequest is the body of POST /v1/types.
type CreateDataTypeRequest struct {
	Slug             string            `json:"slug"`
	Name             string            `json:"name"`
	Fields           []FieldDefinition `json:"fields"`
	Required         []string          `json:"required"`
	DisplayNameField string            `json:"display_name_field_id"`
}

// DataType is the wire form of a data type.
type DataType struct {
	Slug             string            `json:"slug"`
	Name             string            `json:"name"`
	Fields           []FieldDefinition `json:"fields"`
	Required         []string          `json:"required"`
	DisplayNameField string            `json:"display_name_field_id,omitempty"`
	CreatedAt        int64             `json:"created_at"`
	Revision         int               `json:"revision"`
}

// CreateRecordRequest is the body of POST /v1/records.
type CreateRecordRequest struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// Record is the wire form of a record with its resolved label.
type Record struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Label     string         `json:"label"`
	Data      map[string]any `json:"data"`
	CreatedAt int64          `json:"created_at"`
}

// Option is one selectable candidate.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// OptionListResponse is the body of GET /v1/types/{slug}/options.
type OptionListResponse struct {
	Type      string   `json:"type"`
	Search    string   `json:"search"`
	Items     []Option `json:"items"`
	ListError string   `json:"list_error,omitempty"`
}

// NestedSelector describes the selector embedded for a reference field.
type NestedSelector struct {
	Type     string   `json:"type"`
	Metadata string   `json:"metadata"`
	Options  []Option `json:"options"`
}

// CreationForm is the body of POST /v1/types/{slug}/form.
type CreationForm struct {
	Type     string                    `json:"type"`
	Controls []form.Control            `json:"controls"`
	Values   map[string]any            `json:"values"`
	Nested   map[string]NestedSelector `json:"nested,omitempty"`
}

// CreateViaSelectorRequest is the body of POST /v1/types/{slug}/create.
type CreateViaSelectorRequest struct {
	Creation creation.Config `json:"creation"`
	Values   map[string]any  `json:"values"`
}

// CreatedOption is the 201 body of POST /v1/types/{slug}/create.
type CreatedOption struct {
	Option
	Record Record `json:"record"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string            `json:"status"`
	Types  int               `json:"types"`
	Checks map[string]string `json:"checks"`
}

// ListResponse wraps a collection.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
