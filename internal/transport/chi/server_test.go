package chi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/facetdex/internal/db/memory"
	recordrepo "github.com/kailas-cloud/facetdex/internal/repository/record"
	choicesuc "github.com/kailas-cloud/facetdex/internal/usecase/choices"
	healthuc "github.com/kailas-cloud/facetdex/internal/usecase/health"
	listinguc "github.com/kailas-cloud/facetdex/internal/usecase/listing"
	questionnaireuc "github.com/kailas-cloud/facetdex/internal/usecase/questionnaire"
)

const staffKey = "secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := memory.NewStore()
	repo := recordrepo.New(store)
	listing := listinguc.New(repo, nil, 0)
	srv := NewServer(
		listing,
		choicesuc.New(repo, listing),
		questionnaireuc.New(repo),
		healthuc.New(store),
		zap.NewNop(),
	)

	r := chi.NewRouter()
	r.Use(BearerAuthMiddleware([]string{staffKey}))
	srv.Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, key string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func seed(t *testing.T, h http.Handler, typ, id string, body map[string]any) {
	t.Helper()
	body["is_moderation"] = true
	rr := do(t, h, "PUT", "/api/v1/"+typ+"/questionnaires/"+id, staffKey, body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("seed %s/%s: got %d: %s", typ, id, rr.Code, rr.Body.String())
	}
}

func decodePage(t *testing.T, rr *httptest.ResponseRecorder) PageResponse {
	t.Helper()
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var page PageResponse
	if err := json.NewDecoder(rr.Body).Decode(&page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	return page
}

func resultIDs(p PageResponse) []string {
	out := make([]string, len(p.Results))
	for i, r := range p.Results {
		out[i], _ = r["id"].(string)
	}
	return out
}

func seedDesigners(t *testing.T, h http.Handler) {
	t.Helper()
	seed(t, h, "designer", "d1", map[string]any{
		"full_name": "Анна", "city": "Москва", "work_cities": []any{"Сочи"}, "segments": []any{"HoReCa"},
	})
	seed(t, h, "designer", "d2", map[string]any{
		"full_name": "Борис", "city": "Москва", "work_cities": []any{"Казань"}, "segments": []any{"business"},
	})
	seed(t, h, "designer", "d3", map[string]any{
		"full_name": "Вера", "city": "Казань", "segments": []any{"economy"},
	})
}

func TestListQuestionnaires_Facets(t *testing.T) {
	h := newTestRouter(t)
	seedDesigners(t, h)

	page := decodePage(t, do(t, h, "GET", "/api/v1/designer/questionnaires?city=Москва,Казань&segment=HoReCa,Бизнес", "", nil))
	if page.Count != 1 || resultIDs(page)[0] != "d2" {
		t.Fatalf("expected [d2], got %v", resultIDs(page))
	}

	got := page.Results[0]["segments"].([]any)
	if len(got) != 1 || got[0] != "Бизнес" {
		t.Errorf("expected segments rendered as labels, got %v", got)
	}
	if _, ok := page.Results[0]["is_deleted"]; ok {
		t.Error("public results must not expose is_deleted")
	}
}

func TestListQuestionnaires_PluralAndUnknownParams(t *testing.T) {
	h := newTestRouter(t)
	seedDesigners(t, h)

	page := decodePage(t, do(t, h, "GET", "/api/v1/designers/questionnaires?colour=red&segment=not_important", "", nil))
	if page.Count != 3 {
		t.Errorf("expected all 3 designers, got %d", page.Count)
	}
}

func TestListQuestionnaires_Pagination(t *testing.T) {
	h := newTestRouter(t)
	seedDesigners(t, h)

	page := decodePage(t, do(t, h, "GET", "/api/v1/designer/questionnaires?ordering=full_name&limit=2", "", nil))
	if page.Count != 3 || len(page.Results) != 2 {
		t.Fatalf("expected 2 of 3, got %d of %d", len(page.Results), page.Count)
	}
	if ids := resultIDs(page); ids[0] != "d1" || ids[1] != "d2" {
		t.Errorf("unexpected order: %v", ids)
	}
	if page.Previous != nil {
		t.Errorf("first page has no previous, got %q", *page.Previous)
	}
	if page.Next == nil || !strings.Contains(*page.Next, "offset=2") {
		t.Fatalf("expected next with offset=2, got %v", page.Next)
	}

	page = decodePage(t, do(t, h, "GET", *page.Next, "", nil))
	if ids := resultIDs(page); len(ids) != 1 || ids[0] != "d3" {
		t.Errorf("unexpected second page: %v", ids)
	}
	if page.Next != nil {
		t.Errorf("last page has no next, got %q", *page.Next)
	}
	if page.Previous == nil || strings.Contains(*page.Previous, "offset") {
		t.Errorf("previous of second page should drop offset, got %v", page.Previous)
	}
}

func TestListQuestionnaires_BadRequests(t *testing.T) {
	h := newTestRouter(t)
	seedDesigners(t, h)

	for _, path := range []string{
		"/api/v1/designer/questionnaires?limit=abc",
		"/api/v1/designer/questionnaires?offset=-1",
		"/api/v1/designer/questionnaires?ordering=no_such_field",
	} {
		rr := do(t, h, "GET", path, "", nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, rr.Code)
		}
	}

	rr := do(t, h, "GET", "/api/v1/events/questionnaires", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown type: expected 404, got %d", rr.Code)
	}
}

func TestFilterChoices(t *testing.T) {
	h := newTestRouter(t)
	seedDesigners(t, h)

	rr := do(t, h, "GET", "/api/v1/designer/questionnaires/filter-choices?segment=economy", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string][]map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	cities := body["city"]
	if len(cities) != 1 || cities[0]["value"] != "Казань" {
		t.Errorf("expected cities narrowed to [Казань], got %v", cities)
	}
	if len(body["segment"]) != 6 {
		t.Errorf("expected 6 segments, got %d", len(body["segment"]))
	}
	if len(body["federal_district"]) == 0 {
		t.Error("expected federal districts")
	}
}

func TestQuestionnaire_Lifecycle(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, "PUT", "/api/v1/media/questionnaires/m1", staffKey, map[string]any{"full_name": "Журнал"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: got %d: %s", rr.Code, rr.Body.String())
	}
	if rr = do(t, h, "GET", "/api/v1/media/questionnaires/m1", "", nil); rr.Code != http.StatusNotFound {
		t.Errorf("unmoderated record visible to public: %d", rr.Code)
	}
	if rr = do(t, h, "GET", "/api/v1/media/questionnaires/m1", staffKey, nil); rr.Code != http.StatusOK {
		t.Errorf("staff get: %d", rr.Code)
	}

	rr = do(t, h, "PUT", "/api/v1/media/questionnaires/m1", staffKey, map[string]any{"full_name": "Журнал", "is_moderation": true})
	if rr.Code != http.StatusOK {
		t.Fatalf("update: got %d", rr.Code)
	}
	if rr = do(t, h, "GET", "/api/v1/media/questionnaires/m1", "", nil); rr.Code != http.StatusOK {
		t.Errorf("moderated record hidden from public: %d", rr.Code)
	}

	if rr = do(t, h, "DELETE", "/api/v1/media/questionnaires/m1", staffKey, nil); rr.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d", rr.Code)
	}
	if rr = do(t, h, "GET", "/api/v1/media/questionnaires/m1", "", nil); rr.Code != http.StatusNotFound {
		t.Errorf("deleted record visible to public: %d", rr.Code)
	}
}

func TestQuestionnaire_WritesRequireStaff(t *testing.T) {
	h := newTestRouter(t)

	if rr := do(t, h, "PUT", "/api/v1/media/questionnaires/m1", "", map[string]any{}); rr.Code != http.StatusForbidden {
		t.Errorf("public put: expected 403, got %d", rr.Code)
	}
	if rr := do(t, h, "DELETE", "/api/v1/media/questionnaires/m1", "", nil); rr.Code != http.StatusForbidden {
		t.Errorf("public delete: expected 403, got %d", rr.Code)
	}
	if rr := do(t, h, "DELETE", "/api/v1/media/questionnaires/missing", staffKey, nil); rr.Code != http.StatusNotFound {
		t.Errorf("missing delete: expected 404, got %d", rr.Code)
	}
}

func TestQuestionnaire_InvalidBody(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest("PUT", "/api/v1/media/questionnaires/m1", strings.NewReader("{"))
	req.Header.Set("Authorization", "Bearer "+staffKey)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("malformed JSON: expected 400, got %d", rr.Code)
	}

	rr = do(t, h, "PUT", "/api/v1/media/questionnaires/m1", staffKey, map[string]any{"is_moderation": "yes"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad flag: expected 400, got %d", rr.Code)
	}
	rr = do(t, h, "PUT", "/api/v1/media/questionnaires/bad%20id", staffKey, map[string]any{})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	h := newTestRouter(t)
	rr := do(t, h, "GET", "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Checks["database"] != "ok" {
		t.Errorf("unexpected health: %+v", resp)
	}
}
