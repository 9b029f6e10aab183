package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates storage is up but the type catalog cannot be read.
	Degraded Status = "degraded"
	// Unhealthy indicates storage is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Types  int
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	catalog TypeCatalog
}

// New creates a Service. catalog can be nil.
func New(db DBPinger, catalog TypeCatalog) *Service {
	return &Service{db: db, catalog: catalog}
}

// Check pings storage and, when it answers, reads the type catalog.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["database"] = CheckOK

	if s.catalog == nil {
		return Report{Status: Healthy, Checks: checks}
	}

	types, err := s.catalog.List(ctx)
	if err != nil {
		checks["catalog"] = CheckError
		return Report{Status: Degraded, Checks: checks}
	}
	checks["catalog"] = CheckOK

	return Report{Status: Healthy, Types: len(types), Checks: checks}
}
