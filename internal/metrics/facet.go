package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	"github.com/kailas-cloud/facetdex/internal/facet"
)

// Facet Prometheus metrics.
var (
	FacetRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "facet_requests_total",
			Help:      "Facets requested by clients",
		},
		[]string{"entity_type", "facet", "outcome"}, // "applied" / "skipped"
	)

	FacetSentinelTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "facet_sentinel_total",
			Help:      "Dropped not-important tokens",
		},
		[]string{"entity_type", "facet"},
	)

	FacetPassThroughTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "facet_pass_through_total",
			Help:      "Tokens matching neither a label nor a key",
		},
		[]string{"entity_type", "facet"},
	)

	FacetGroupExpansionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "facet_group_expansions_total",
			Help:      "Group tokens seen in facets",
		},
		[]string{"entity_type", "outcome"}, // "expanded" / "ignored"
	)

	ListingResultsTotal = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "listing_results",
			Help:      "Matching questionnaires per listing request",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"entity_type"},
	)
)

var registerFacetOnce sync.Once

// RegisterFacetMetrics registers facet metrics on the default registry. Safe to call repeatedly.
func RegisterFacetMetrics() {
	registerFacetOnce.Do(func() {
		prometheus.MustRegister(
			FacetRequestsTotal,
			FacetSentinelTotal,
			FacetPassThroughTotal,
			FacetGroupExpansionsTotal,
			ListingResultsTotal,
		)
	})
}

// FacetObserver feeds facet pipeline reports into Prometheus.
type FacetObserver struct{}

// FacetBuilt records one compiled facet.
func (FacetObserver) FacetBuilt(t entity.Type, name string, r facet.Report) {
	if !r.Requested {
		return
	}
	et := t.String()
	outcome := "skipped"
	if r.Applied {
		outcome = "applied"
	}
	FacetRequestsTotal.WithLabelValues(et, name, outcome).Inc()
	if r.SentinelHits > 0 {
		FacetSentinelTotal.WithLabelValues(et, name).Add(float64(r.SentinelHits))
	}
	if r.PassThrough > 0 {
		FacetPassThroughTotal.WithLabelValues(et, name).Add(float64(r.PassThrough))
	}
	if n := len(r.Expanded); n > 0 {
		FacetGroupExpansionsTotal.WithLabelValues(et, "expanded").Add(float64(n))
	}
	if n := len(r.IgnoredGroups); n > 0 {
		FacetGroupExpansionsTotal.WithLabelValues(et, "ignored").Add(float64(n))
	}
}

// ListServed records the size of a listing result.
func (FacetObserver) ListServed(t entity.Type, total int) {
	ListingResultsTotal.WithLabelValues(t.String()).Observe(float64(total))
}
