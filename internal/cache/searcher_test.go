package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/fedsearch/internal/backend"
	"github.com/kailas-cloud/fedsearch/internal/domain/schema"
)

// --- Mocks ---

type mockSearcher struct {
	searchCalls int
	schemaCalls int
	resp        backend.Response
	err         error
}

func (m *mockSearcher) Search(_ context.Context, _ string, _ backend.Params) (backend.Response, error) {
	m.searchCalls++
	if m.err != nil {
		return backend.Response{}, m.err
	}
	return m.resp, nil
}

func (m *mockSearcher) Schema(_ context.Context, collection string) (schema.Schema, error) {
	m.schemaCalls++
	if m.err != nil {
		return schema.Schema{}, m.err
	}
	return schema.Schema{Name: collection}, nil
}

// --- Tests ---

func TestSearcher_CachesSuccessfulSearch(t *testing.T) {
	inner := &mockSearcher{resp: backend.Response{Found: 7}}
	s := NewSearcher(inner, NewMemory(time.Minute, 10), nil)
	ctx := context.Background()
	params := backend.Params{Query: "boots"}

	for i := 0; i < 3; i++ {
		resp, err := s.Search(ctx, "products", params)
		if err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
		if resp.Found != 7 {
			t.Errorf("search %d: expected Found=7, got %d", i, resp.Found)
		}
	}

	if inner.searchCalls != 1 {
		t.Errorf("expected one backend call, got %d", inner.searchCalls)
	}
}

func TestSearcher_ExpiredEntryRefetches(t *testing.T) {
	inner := &mockSearcher{resp: backend.Response{Found: 1}}
	mem := NewMemory(time.Minute, 10)
	s := NewSearcher(inner, mem, nil)
	ctx := context.Background()
	params := backend.Params{Query: "boots"}

	now := time.Now()
	mem.now = func() time.Time { return now }
	if _, err := s.Search(ctx, "products", params); err != nil {
		t.Fatal(err)
	}

	mem.now = func() time.Time { return now.Add(2 * time.Minute) }
	if _, err := s.Search(ctx, "products", params); err != nil {
		t.Fatal(err)
	}

	if inner.searchCalls != 2 {
		t.Errorf("expected refetch past TTL, got %d backend calls", inner.searchCalls)
	}
}

func TestSearcher_DoesNotCacheFailures(t *testing.T) {
	inner := &mockSearcher{err: errors.New("backend down")}
	s := NewSearcher(inner, NewMemory(time.Minute, 10), nil)
	ctx := context.Background()
	params := backend.Params{Query: "boots"}

	for i := 0; i < 2; i++ {
		if _, err := s.Search(ctx, "products", params); err == nil {
			t.Fatalf("search %d: expected error", i)
		}
	}
	if inner.searchCalls != 2 {
		t.Errorf("failures must not be cached, got %d backend calls", inner.searchCalls)
	}

	// Recovery: the next success is served from the backend and then cached.
	inner.err = nil
	inner.resp = backend.Response{Found: 2}
	if _, err := s.Search(ctx, "products", params); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Search(ctx, "products", params); err != nil {
		t.Fatal(err)
	}
	if inner.searchCalls != 3 {
		t.Errorf("expected one call after recovery, got %d total", inner.searchCalls)
	}
}

func TestSearcher_DistinctParamsDistinctEntries(t *testing.T) {
	inner := &mockSearcher{resp: backend.Response{Found: 1}}
	s := NewSearcher(inner, NewMemory(time.Minute, 10), nil)
	ctx := context.Background()

	if _, err := s.Search(ctx, "products", backend.Params{Query: "boots"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Search(ctx, "products", backend.Params{Query: "boots", FilterBy: "brand:acme"}); err != nil {
		t.Fatal(err)
	}

	if inner.searchCalls != 2 {
		t.Errorf("different params must bypass each other's entries, got %d calls", inner.searchCalls)
	}
}

func TestSearcher_SchemaPassesThrough(t *testing.T) {
	inner := &mockSearcher{}
	s := NewSearcher(inner, NewMemory(time.Minute, 10), nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		sch, err := s.Schema(ctx, "products")
		if err != nil {
			t.Fatal(err)
		}
		if sch.Name != "products" {
			t.Errorf("expected schema name products, got %q", sch.Name)
		}
	}
	if inner.schemaCalls != 2 {
		t.Errorf("schema calls must not be cached here, got %d", inner.schemaCalls)
	}
}
