package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
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
	Checks map[string]CheckResult
}

type namedCheck struct {
	name string
	fn   CheckFunc
}

// Service coordinates health checks.
type Service struct {
	checks []namedCheck
}

// Option adds a component to a Service.
type Option func(*Service)

// WithCheck registers an extra component check.
func WithCheck(name string, fn CheckFunc) Option {
	return func(s *Service) {
		s.checks = append(s.checks, namedCheck{name: name, fn: fn})
	}
}

// New creates a Service checking the database plus any extra components.
func New(db DBPinger, opts ...Option) *Service {
	s := &Service{checks: []namedCheck{{name: "database", fn: db.Ping}}}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Check runs health checks against all components.
// Degraded when some fail, Unhealthy when all fail.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.checks))
	failed := 0
	for _, c := range s.checks {
		if err := c.fn(ctx); err != nil {
			checks[c.name] = CheckError
			failed++
			continue
		}
		checks[c.name] = CheckOK
	}

	status := Healthy
	switch {
	case failed == len(s.checks):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}
	return Report{Status: status, Checks: checks}
}
