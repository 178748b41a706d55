package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fedsearch/internal/backend"
	"github.com/kailas-cloud/fedsearch/internal/cache"
	"github.com/kailas-cloud/fedsearch/internal/domain/schema"
	federateduc "github.com/kailas-cloud/fedsearch/internal/usecase/federated"
	healthuc "github.com/kailas-cloud/fedsearch/internal/usecase/health"
)

// --- Mocks ---

type mockSearcher struct {
	responses map[string]backend.Response
	errs      map[string]error
}

func (m *mockSearcher) Search(_ context.Context, collection string, _ backend.Params) (backend.Response, error) {
	if err := m.errs[collection]; err != nil {
		return backend.Response{}, err
	}
	return m.responses[collection], nil
}

type mockSchemaReader struct{}

func (m *mockSchemaReader) Get(_ context.Context, collection string) (schema.Schema, error) {
	return schema.Schema{
		Name:   collection,
		Fields: []schema.Field{{Name: "title", Type: schema.TypeString, Index: true}},
	}, nil
}

type mockSchemaCache struct {
	cleared bool
}

func (m *mockSchemaCache) Clear()    { m.cleared = true }
func (m *mockSchemaCache) Size() int { return 0 }

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Helpers ---

func score(v float64) *float64 { return &v }

func newTestRouter(search *mockSearcher, store cache.Store, schemas *mockSchemaCache, backendErr error) http.Handler {
	svc := federateduc.NewService(search, &mockSchemaReader{})
	healthSvc := healthuc.New(&mockPinger{err: backendErr}, nil)
	server := NewServer(svc, store, schemas, healthSvc, zap.NewNop())

	r := chirouter.NewRouter()
	server.Routes(r)
	return r
}

func postSearch(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/search/federated", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// --- Tests ---

func TestFederatedSearch_OK(t *testing.T) {
	search := &mockSearcher{
		responses: map[string]backend.Response{
			"products": {
				Hits:  []backend.Hit{{Document: map[string]any{"title": "boots"}, TextMatch: score(0.9)}},
				Found: 1,
			},
			"articles": {
				Hits:  []backend.Hit{{Document: map[string]any{"title": "boot care"}, TextMatch: score(0.5)}},
				Found: 1,
			},
		},
		errs: map[string]error{},
	}
	h := newTestRouter(search, cache.NewMemory(time.Minute, 10), &mockSchemaCache{}, nil)

	rr := postSearch(t, h, `{
		"query": "boots",
		"collections": [
			{"name": "products", "query_by": ["title"], "sort_by": "rating:desc"},
			{"name": "articles", "query_by": ["title"], "sort_by": "rating:desc"}
		],
		"strategy": "relevance"
	}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp searchResponseDTO
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Hits) != 2 {
		t.Errorf("expected 2 hits, got %d", len(resp.Hits))
	}
	if resp.Hits[0].Collection != "products" {
		t.Errorf("expected products first, got %q", resp.Hits[0].Collection)
	}
	if resp.FoundByCollection["products"] != 1 {
		t.Errorf("unexpected found map %v", resp.FoundByCollection)
	}
	if resp.Strategy != "relevance" || resp.Mode != "interleaved" {
		t.Errorf("unexpected strategy/mode %q/%q", resp.Strategy, resp.Mode)
	}
}

func TestFederatedSearch_PartialFailure(t *testing.T) {
	search := &mockSearcher{
		responses: map[string]backend.Response{
			"products": {
				Hits:  []backend.Hit{{Document: map[string]any{}, TextMatch: score(0.9)}},
				Found: 1,
			},
		},
		errs: map[string]error{"articles": errors.New("connection refused")},
	}
	h := newTestRouter(search, cache.NewMemory(time.Minute, 10), &mockSchemaCache{}, nil)

	rr := postSearch(t, h, `{
		"query": "boots",
		"collections": [
			{"name": "products", "query_by": ["title"], "sort_by": "r:desc"},
			{"name": "articles", "query_by": ["title"], "sort_by": "r:desc"}
		]
	}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("partial failure must still return 200, got %d", rr.Code)
	}

	var resp searchResponseDTO
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if _, ok := resp.ErrorsByCollection["articles"]; !ok {
		t.Error("expected articles in errors_by_collection")
	}
	if len(resp.Hits) != 1 {
		t.Errorf("expected 1 hit, got %d", len(resp.Hits))
	}
}

func TestFederatedSearch_BadJSON(t *testing.T) {
	h := newTestRouter(&mockSearcher{}, cache.NewMemory(time.Minute, 10), &mockSchemaCache{}, nil)

	rr := postSearch(t, h, `{"query": `)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatal(err)
	}
	if errResp.Code != codeBadRequest {
		t.Errorf("expected %s, got %s", codeBadRequest, errResp.Code)
	}
}

func TestFederatedSearch_NoCollections(t *testing.T) {
	h := newTestRouter(&mockSearcher{}, cache.NewMemory(time.Minute, 10), &mockSchemaCache{}, nil)

	rr := postSearch(t, h, `{"query": "boots", "collections": []}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatal(err)
	}
	if errResp.Code != codeNoCollections {
		t.Errorf("expected %s, got %s", codeNoCollections, errResp.Code)
	}
}

func TestFederatedSearch_InvalidCollection(t *testing.T) {
	h := newTestRouter(&mockSearcher{}, cache.NewMemory(time.Minute, 10), &mockSchemaCache{}, nil)

	rr := postSearch(t, h, `{
		"query": "boots",
		"collections": [{"name": "products", "weight": -2}]
	}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatal(err)
	}
	if errResp.Code != codeValidationFailed {
		t.Errorf("expected %s, got %s", codeValidationFailed, errResp.Code)
	}
}

func TestClearCache(t *testing.T) {
	store := cache.NewMemory(time.Minute, 10)
	store.Put(context.Background(), "k", backend.Response{Found: 1})
	schemas := &mockSchemaCache{}
	h := newTestRouter(&mockSearcher{}, store, schemas, nil)

	req := httptest.NewRequest("DELETE", "/api/v1/cache", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if st := store.Stats(context.Background()); st.Size != 0 {
		t.Errorf("expected empty cache, size=%d", st.Size)
	}
	if !schemas.cleared {
		t.Error("expected schema cache cleared")
	}
}

func TestCacheStats(t *testing.T) {
	store := cache.NewMemory(2*time.Minute, 50)
	store.Put(context.Background(), "k", backend.Response{Found: 1})
	h := newTestRouter(&mockSearcher{}, store, &mockSchemaCache{}, nil)

	req := httptest.NewRequest("GET", "/api/v1/cache/stats", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var stats cacheStatsDTO
	if err := json.NewDecoder(rr.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.Size != 1 || stats.MaxSize != 50 || stats.TTLSec != 120 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestHealth_OK(t *testing.T) {
	h := newTestRouter(&mockSearcher{}, cache.NewMemory(time.Minute, 10), &mockSchemaCache{}, nil)

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp healthResponseDTO
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" || resp.Checks["backend"] != "ok" {
		t.Errorf("unexpected health %+v", resp)
	}
}

func TestHealth_BackendDown(t *testing.T) {
	h := newTestRouter(&mockSearcher{}, cache.NewMemory(time.Minute, 10), &mockSchemaCache{},
		errors.New("unreachable"))

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}
