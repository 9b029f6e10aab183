package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrTypeNotFound signals that no data type matches the requested slug.
	ErrTypeNotFound = errors.New("data type not found")
	// ErrRecordNotFound signals a missing record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidSchema signals an invalid data type definition.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrValidation signals a field that failed creation checks.
	ErrValidation = errors.New("validation failed")
	// ErrConfiguration signals a selector that cannot perform the request with its current setup.
	ErrConfiguration = errors.New("configuration error")
	// ErrDisabled signals an interaction with a disabled selector.
	ErrDisabled = errors.New("selector is disabled")
	// ErrSubmissionInFlight signals a second creation submit while one is pending.
	ErrSubmissionInFlight = errors.New("creation submission already in flight")
)
