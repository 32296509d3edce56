package facetdex

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	results    *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "facetdex",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "SDK operations by name, questionnaire type and status.",
		}, []string{"operation", "entity_type", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "facetdex",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "entity_type"}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "facetdex",
			Subsystem: "sdk",
			Name:      "listing_results",
			Help:      "Questionnaires matched per SDK listing.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		}, []string{"entity_type"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.results); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("facetdex: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("facetdex: register metric: %w", err)
	}
	return nil
}

// observer provides logging and metrics for SDK operations. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

// span is one running SDK operation.
type span struct {
	obs   *observer
	op    string
	typ   EntityType
	start time.Time
	attrs []any
}

// begin starts an operation. typ is empty for client-wide operations.
func (o *observer) begin(op string, typ EntityType) *span {
	return &span{obs: o, op: op, typ: typ, start: time.Now()}
}

// with adds slog attributes to the completion line.
func (s *span) with(attrs ...any) *span {
	s.attrs = append(s.attrs, attrs...)
	return s
}

// matched records the size of a listing.
func (s *span) matched(n int) {
	if s.obs != nil && s.obs.metrics != nil {
		s.obs.metrics.results.WithLabelValues(string(s.typ)).Observe(float64(n))
	}
	s.with("matched", n)
}

// end records the outcome. Call it deferred with the named error result.
func (s *span) end(err error) {
	o := s.obs
	if o == nil {
		return
	}
	dur := time.Since(s.start)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.operations.WithLabelValues(s.op, string(s.typ), status).Inc()
		o.metrics.duration.WithLabelValues(s.op, string(s.typ)).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	attrs := append([]any{"op", s.op, "entity_type", string(s.typ), "duration", dur}, s.attrs...)
	if err != nil {
		o.logger.Warn("operation failed", append(attrs, "error", err)...)
		return
	}
	o.logger.Debug("operation completed", attrs...)
}
