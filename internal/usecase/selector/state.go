package selector

import (
	"github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/domain/record"
)

// MetaState is the lifecycle of the data type metadata load.
type MetaState string

// Metadata states.
const (
	MetaIdle     MetaState = "idle"
	MetaLoading  MetaState = "loading"
	MetaReady    MetaState = "ready"
	MetaNotFound MetaState = "not_found"
	MetaError    MetaState = "error"
)

// ListState is the lifecycle of the candidate list load.
type ListState string

// Candidate list states.
const (
	ListIdle    ListState = "idle"
	ListLoading ListState = "loading"
	ListReady   ListState = "ready"
	ListError   ListState = "error"
)

// CreationState is the lifecycle of the inline creation form.
type CreationState string

// Creation states.
const (
	CreationClosed     CreationState = "closed"
	CreationOpen       CreationState = "open"
	CreationValidating CreationState = "validating"
	CreationSubmitting CreationState = "submitting"
	CreationFailed     CreationState = "open_with_error"
)

// Option is a selectable candidate: record identifier, resolved label and the record.
type Option struct {
	ID     string
	Label  string
	Record record.Record
}

// Snapshot is a point-in-time copy of the selector state.
type Snapshot struct {
	TypeSlug      string
	Meta          MetaState
	DataType      *datatype.DataType
	MetaError     string
	List          ListState
	ListError     string
	Search        string
	Options       []Option
	Selected      *string
	Creation      CreationState
	CreationError string

	Placeholder string
	Required    bool
	Disabled    bool
}

// MetaLoading reports whether type metadata is being fetched.
func (s Snapshot) MetaLoading() bool { return s.Meta == MetaLoading }

// ListLoading reports whether candidates are being fetched.
func (s Snapshot) ListLoading() bool { return s.List == ListLoading }

// Submitting reports whether a creation submit is in flight.
func (s Snapshot) Submitting() bool {
	return s.Creation == CreationValidating || s.Creation == CreationSubmitting
}

// ClearOffered reports whether the clear option should be listed.
func (s Snapshot) ClearOffered() bool { return !s.Required && !s.Disabled }
