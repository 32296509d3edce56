package facetdex

import (
	"context"

	healthuc "github.com/kailas-cloud/facetdex/internal/usecase/health"
)

// HealthStatus is the aggregated state of the client's storage and checks.
type HealthStatus struct {
	Status string            // "ok", "degraded" or "error"
	Checks map[string]string // check name → "ok"/"error"
}

// Healthy reports whether every check passed.
func (h HealthStatus) Healthy() bool { return h.Status == string(healthuc.Healthy) }

// Failing returns the names of failed checks.
func (h HealthStatus) Failing() []string {
	var out []string
	for name, res := range h.Checks {
		if res != string(healthuc.CheckOK) {
			out = append(out, name)
		}
	}
	return out
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Health pings the storage and reports the result.
func (c *Client) Health(ctx context.Context) (h HealthStatus) {
	sp := c.obs.begin("health", "")
	defer func() { sp.with("status", h.Status).end(nil) }()

	report := c.healthSvc.Check(ctx)
	h = HealthStatus{
		Status: string(report.Status),
		Checks: make(map[string]string, len(report.Checks)),
	}
	for name, res := range report.Checks {
		h.Checks[name] = string(res)
	}
	return h
}
