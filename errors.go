package recordkit

import (
	"github.com/kailas-cloud/recordkit/internal/domain"
	"github.com/kailas-cloud/recordkit/internal/domain/creation"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrTypeNotFound       = domain.ErrTypeNotFound
	ErrRecordNotFound     = domain.ErrRecordNotFound
	ErrAlreadyExists      = domain.ErrAlreadyExists
	ErrInvalidSchema      = domain.ErrInvalidSchema
	ErrValidation         = domain.ErrValidation
	ErrConfiguration      = domain.ErrConfiguration
	ErrDisabled           = domain.ErrDisabled
	ErrSubmissionInFlight = domain.ErrSubmissionInFlight
)

// ValidationError names the field that stopped a creation submit. Use errors.As.
type ValidationError = creation.ValidationError
