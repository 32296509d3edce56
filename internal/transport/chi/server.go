package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/facetdex/internal/domain"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
	"github.com/kailas-cloud/facetdex/internal/domain/search/query"
	logpkg "github.com/kailas-cloud/facetdex/internal/logger"
	choicesuc "github.com/kailas-cloud/facetdex/internal/usecase/choices"
	healthuc "github.com/kailas-cloud/facetdex/internal/usecase/health"
	listinguc "github.com/kailas-cloud/facetdex/internal/usecase/listing"
	questionnaireuc "github.com/kailas-cloud/facetdex/internal/usecase/questionnaire"
)

// maxBodyBytes caps questionnaire payloads.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the questionnaire directory API.
type Server struct {
	listing        *listinguc.Service
	choices        *choicesuc.Service
	questionnaires *questionnaireuc.Service
	health         *healthuc.Service
	logger         *zap.Logger
	errorHandlers  []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	listing *listinguc.Service,
	choices *choicesuc.Service,
	questionnaires *questionnaireuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		listing:        listing,
		choices:        choices,
		questionnaires: questionnaires,
		health:         health,
		logger:         logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrUnknownEntityType, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrRecordNotFound, http.StatusNotFound, CodeRecordNotFound),
		sentinelHandler(domain.ErrInvalidRecord, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidOrdering, http.StatusBadRequest, CodeBadRequest),
		sentinelHandler(domain.ErrInvalidPagination, http.StatusBadRequest, CodeBadRequest),
		sentinelHandler(domain.ErrForbidden, http.StatusForbidden, CodeForbidden),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1/{type}/questionnaires", func(r chi.Router) {
		r.Use(tagEntityType)
		r.Get("/", s.ListQuestionnaires)
		r.Get("/filter-choices", s.FilterChoices)
		r.Get("/{id}", s.GetQuestionnaire)
		r.Put("/{id}", s.PutQuestionnaire)
		r.Delete("/{id}", s.DeleteQuestionnaire)
	})
}

// tagEntityType adds the raw type segment to the request logger.
func tagEntityType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logpkg.With(r.Context(), zap.String("entity_type", chi.URLParam(r, "type")))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Handler returns a router serving the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

// ListQuestionnaires handles GET /api/v1/{type}/questionnaires.
func (s *Server) ListQuestionnaires(w http.ResponseWriter, r *http.Request) {
	t, err := entity.Parse(chi.URLParam(r, "type"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	values := r.URL.Query()
	var limit, offset *int
	if err := runtime.BindQueryParameter("form", true, false, query.ParamLimit, values, &limit); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid limit")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, query.ParamOffset, values, &offset); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid offset")
		return
	}

	a := AudienceFromContext(r.Context())
	page, err := s.listing.List(r.Context(), t, query.FromValues(values), a, derefInt(limit), derefInt(offset))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results := make([]map[string]any, len(page.Records))
	for i, v := range listinguc.RenderAll(page.Records) {
		results[i] = questionnaireToAPI(v, a)
	}
	writeJSON(w, http.StatusOK, PageResponse{
		Count:    page.Total,
		Next:     nextLink(r.URL, page),
		Previous: previousLink(r.URL, page),
		Results:  results,
	})
}

// FilterChoices handles GET /api/v1/{type}/questionnaires/filter-choices.
func (s *Server) FilterChoices(w http.ResponseWriter, r *http.Request) {
	t, err := entity.Parse(chi.URLParam(r, "type"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	cat, err := s.choices.Describe(r.Context(), t, query.FromValues(r.URL.Query()), AudienceFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// GetQuestionnaire handles GET /api/v1/{type}/questionnaires/{id}.
func (s *Server) GetQuestionnaire(w http.ResponseWriter, r *http.Request) {
	t, err := entity.Parse(chi.URLParam(r, "type"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	a := AudienceFromContext(r.Context())
	rec, err := s.questionnaires.Get(r.Context(), t, chi.URLParam(r, "id"), a)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questionnaireToAPI(listinguc.Render(&rec), a))
}

// PutQuestionnaire handles PUT /api/v1/{type}/questionnaires/{id}.
func (s *Server) PutQuestionnaire(w http.ResponseWriter, r *http.Request) {
	t, err := entity.Parse(chi.URLParam(r, "type"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if AudienceFromContext(r.Context()) != domrec.Staff {
		s.handleDomainError(w, domain.ErrForbidden)
		return
	}

	var body map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	in, err := questionnaireuc.DecodeInput(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	rec, created, err := s.questionnaires.Upsert(r.Context(), t, chi.URLParam(r, "id"), in)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, UpsertResponse{ID: rec.ID(), Created: created})
}

// DeleteQuestionnaire handles DELETE /api/v1/{type}/questionnaires/{id}.
func (s *Server) DeleteQuestionnaire(w http.ResponseWriter, r *http.Request) {
	t, err := entity.Parse(chi.URLParam(r, "type"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if AudienceFromContext(r.Context()) != domrec.Staff {
		s.handleDomainError(w, domain.ErrForbidden)
		return
	}
	if err := s.questionnaires.Delete(r.Context(), t, chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
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
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// nextLink returns the URL of the following page, nil on the last one.
func nextLink(u *url.URL, p listinguc.Page) *string {
	if p.Offset+p.Limit >= p.Total {
		return nil
	}
	return pageLink(u, p.Limit, p.Offset+p.Limit)
}

// previousLink returns the URL of the preceding page, nil on the first one.
// The first page link carries no offset.
func previousLink(u *url.URL, p listinguc.Page) *string {
	if p.Offset <= 0 {
		return nil
	}
	return pageLink(u, p.Limit, max(p.Offset-p.Limit, 0))
}

func pageLink(u *url.URL, limit, offset int) *string {
	q := u.Query()
	q.Set(query.ParamLimit, strconv.Itoa(limit))
	if offset > 0 {
		q.Set(query.ParamOffset, strconv.Itoa(offset))
	} else {
		q.Del(query.ParamOffset)
	}
	link := url.URL{Path: u.Path, RawQuery: q.Encode()}
	s := link.String()
	return &s
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrUnknownEntityType,
		domain.ErrNotFound,
		domain.ErrRecordNotFound,
		domain.ErrInvalidRecord,
		domain.ErrInvalidOrdering,
		domain.ErrInvalidPagination,
		domain.ErrForbidden,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
