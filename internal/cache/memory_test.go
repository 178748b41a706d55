package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kailas-cloud/fedsearch/internal/backend"
)

func respWithFound(found int) backend.Response {
	return backend.Response{Found: found}
}

func TestMemory_PutGet(t *testing.T) {
	m := NewMemory(time.Minute, 10)
	ctx := context.Background()

	m.Put(ctx, "k1", respWithFound(3))

	got, ok := m.Get(ctx, "k1")
	if !ok {
		t.Fatal("expected hit for k1")
	}
	if got.Found != 3 {
		t.Errorf("expected Found=3, got %d", got.Found)
	}

	if _, ok := m.Get(ctx, "missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestMemory_StaleEntryIsMiss(t *testing.T) {
	m := NewMemory(time.Minute, 10)
	ctx := context.Background()

	now := time.Now()
	m.now = func() time.Time { return now }
	m.Put(ctx, "k1", respWithFound(1))

	// Within TTL: hit.
	m.now = func() time.Time { return now.Add(59 * time.Second) }
	if _, ok := m.Get(ctx, "k1"); !ok {
		t.Fatal("expected hit within TTL")
	}

	// Past TTL: miss, even though the entry still occupies a slot.
	m.now = func() time.Time { return now.Add(61 * time.Second) }
	if _, ok := m.Get(ctx, "k1"); ok {
		t.Error("expected miss past TTL")
	}
	if st := m.Stats(ctx); st.Size != 1 {
		t.Errorf("stale entry should remain until a write purges it, size=%d", st.Size)
	}
}

func TestMemory_WritePurgesExpired(t *testing.T) {
	m := NewMemory(time.Minute, 10)
	ctx := context.Background()

	now := time.Now()
	m.now = func() time.Time { return now }
	m.Put(ctx, "old", respWithFound(1))

	m.now = func() time.Time { return now.Add(2 * time.Minute) }
	m.Put(ctx, "new", respWithFound(2))

	st := m.Stats(ctx)
	if st.Size != 1 {
		t.Errorf("expected expired entry purged on write, size=%d", st.Size)
	}
	if _, ok := m.Get(ctx, "old"); ok {
		t.Error("expected old entry gone")
	}
	if _, ok := m.Get(ctx, "new"); !ok {
		t.Error("expected new entry present")
	}
}

func TestMemory_EvictsOldestWriteFirst(t *testing.T) {
	m := NewMemory(time.Hour, 3)
	ctx := context.Background()

	now := time.Now()
	for i := 0; i < 3; i++ {
		i := i
		m.now = func() time.Time { return now.Add(time.Duration(i) * time.Second) }
		m.Put(ctx, fmt.Sprintf("k%d", i), respWithFound(i))
	}

	// Reading k0 does not refresh it: eviction ignores access order.
	if _, ok := m.Get(ctx, "k0"); !ok {
		t.Fatal("expected k0 present before eviction")
	}

	m.now = func() time.Time { return now.Add(10 * time.Second) }
	m.Put(ctx, "k3", respWithFound(3))

	if _, ok := m.Get(ctx, "k0"); ok {
		t.Error("expected oldest-written k0 evicted")
	}
	for _, k := range []string{"k1", "k2", "k3"} {
		if _, ok := m.Get(ctx, k); !ok {
			t.Errorf("expected %s present", k)
		}
	}
	if st := m.Stats(ctx); st.Size != 3 {
		t.Errorf("expected size=3, got %d", st.Size)
	}
}

func TestMemory_OverwriteSameKey(t *testing.T) {
	m := NewMemory(time.Minute, 2)
	ctx := context.Background()

	m.Put(ctx, "k", respWithFound(1))
	m.Put(ctx, "k", respWithFound(2))

	got, ok := m.Get(ctx, "k")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Found != 2 {
		t.Errorf("expected latest write to win, Found=%d", got.Found)
	}
	if st := m.Stats(ctx); st.Size != 1 {
		t.Errorf("expected one entry, size=%d", st.Size)
	}
}

func TestMemory_Clear(t *testing.T) {
	m := NewMemory(time.Minute, 10)
	ctx := context.Background()

	m.Put(ctx, "k1", respWithFound(1))
	m.Put(ctx, "k2", respWithFound(2))
	m.Clear(ctx)

	if st := m.Stats(ctx); st.Size != 0 {
		t.Errorf("expected empty cache after clear, size=%d", st.Size)
	}
	if _, ok := m.Get(ctx, "k1"); ok {
		t.Error("expected miss after clear")
	}
}

func TestMemory_Defaults(t *testing.T) {
	m := NewMemory(0, 0)
	st := m.Stats(context.Background())

	if st.TTL != DefaultTTL {
		t.Errorf("expected default TTL %s, got %s", DefaultTTL, st.TTL)
	}
	if st.MaxSize != DefaultMaxSize {
		t.Errorf("expected default max size %d, got %d", DefaultMaxSize, st.MaxSize)
	}
}

func TestKey_CanonicalOrder(t *testing.T) {
	p1 := backend.Params{Query: "shoes", QueryBy: []string{"title", "body"}, PerPage: 10}
	p2 := backend.Params{PerPage: 10, QueryBy: []string{"title", "body"}, Query: "shoes"}

	if Key("products", p1) != Key("products", p2) {
		t.Error("identical params must map to the same key")
	}
}

func TestKey_DistinguishesCollectionAndParams(t *testing.T) {
	p := backend.Params{Query: "shoes"}

	if Key("products", p) == Key("articles", p) {
		t.Error("different collections must map to different keys")
	}

	p2 := backend.Params{Query: "shoes", FilterBy: "in_stock:true"}
	if Key("products", p) == Key("products", p2) {
		t.Error("different params must map to different keys")
	}
}
