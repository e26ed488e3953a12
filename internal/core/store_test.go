package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/stockroom/internal/storage"
)

// flakyKV wraps a Memory store and fails every Put while failPut is set.
type flakyKV struct {
	*storage.Memory
	failPut bool
	puts    int
}

func (f *flakyKV) Put(ctx context.Context, key string, value []byte) error {
	f.puts++
	if f.failPut {
		return errors.New("connection refused")
	}
	return f.Memory.Put(ctx, key, value)
}

// brokenKV fails every read.
type brokenKV struct{ storage.Memory }

func (b *brokenKV) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func newTestStore(t *testing.T, products ...Product) (*Store, *flakyKV) {
	t.Helper()
	kv := &flakyKV{Memory: storage.NewMemory()}
	if products != nil {
		data, err := json.Marshal(products)
		require.NoError(t, err)
		require.NoError(t, kv.Memory.Put(context.Background(), DefaultStorageKey, data))
	}
	s, err := OpenStore(context.Background(), kv, StoreOptions{})
	require.NoError(t, err)
	return s, kv
}

func storedProducts(t *testing.T, kv storage.KV) []Product {
	t.Helper()
	data, err := kv.Get(context.Background(), DefaultStorageKey)
	require.NoError(t, err)
	var out []Product
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestOpenStore_SeedsEmptyStorage(t *testing.T) {
	stubIDs(t)
	kv := storage.NewMemory()

	s, err := OpenStore(context.Background(), kv, StoreOptions{Seed: true})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, s.Snapshot(), storedProducts(t, kv), "seed must be persisted")
}

func TestOpenStore_WithoutSeedStaysEmpty(t *testing.T) {
	s, err := OpenStore(context.Background(), storage.NewMemory(), StoreOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestOpenStore_LoadsAndNormalizes(t *testing.T) {
	kv := storage.NewMemory()
	doc := `[{"id":"1","name":"Milk","stock":-4,"minStock":2,"price":10}]`
	require.NoError(t, kv.Put(context.Background(), "custom", []byte(doc)))

	s, err := OpenStore(context.Background(), kv, StoreOptions{Key: "custom", Seed: true})
	require.NoError(t, err)

	p, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, 1, s.Len(), "non-empty catalog must not be seeded")
}

func TestOpenStore_CorruptDocumentStartsEmpty(t *testing.T) {
	stubIDs(t)
	kv := storage.NewMemory()
	require.NoError(t, kv.Put(context.Background(), DefaultStorageKey, []byte("{not json")))

	s, err := OpenStore(context.Background(), kv, StoreOptions{Seed: true})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
}

func TestOpenStore_ReadErrorFails(t *testing.T) {
	_, err := OpenStore(context.Background(), &brokenKV{}, StoreOptions{Seed: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load catalog")
}

func TestStore_CreatePrependsAndPersists(t *testing.T) {
	stubIDs(t)
	s, kv := newTestStore(t, Product{ID: "old", Name: "Old"})

	p, err := s.Create(context.Background(), ProductInput{Name: "  Yerba 1kg ", Stock: -3, Price: 2500})
	require.NoError(t, err)

	assert.Equal(t, "gen-1", p.ID)
	assert.Equal(t, "Yerba 1kg", p.Name)
	assert.Equal(t, 0, p.Stock)

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "gen-1", snap[0].ID)
	assert.Equal(t, snap, storedProducts(t, kv))
}

func TestStore_LineBreaksSurviveExport(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, ProductInput{Name: "Queso\r\nrallado", Notes: "pedir lunes\nsin falta\r"})
	require.NoError(t, err)
	assert.Equal(t, "Queso rallado", p.Name)
	assert.Equal(t, "pedir lunes sin falta", p.Notes)

	p, err = s.Update(ctx, p.ID, ProductInput{Name: "Queso", Location: "A\n3"})
	require.NoError(t, err)
	assert.Equal(t, "A 3", p.Location)

	var buf bytes.Buffer
	require.NoError(t, s.Export(&buf))
	dst, _ := newTestStore(t)
	res, err := dst.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)
	assert.Equal(t, s.Snapshot(), dst.Snapshot())
}

func TestStore_CreateRequiresName(t *testing.T) {
	s, kv := newTestStore(t)

	_, err := s.Create(context.Background(), ProductInput{Name: "   "})

	assert.True(t, IsValidation(err))
	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, kv.puts)
}

func TestStore_UpdateKeepsIDAndPosition(t *testing.T) {
	s, _ := newTestStore(t,
		Product{ID: "a", Name: "A"},
		Product{ID: "b", Name: "B", Stock: 4},
	)

	p, err := s.Update(context.Background(), "b", ProductInput{Name: "Bread", Stock: 7, MinStock: 2})
	require.NoError(t, err)

	assert.Equal(t, "b", p.ID)
	assert.Equal(t, []string{"a", "b"}, ids(s.Snapshot()))
	got, _ := s.Get("b")
	assert.Equal(t, "Bread", got.Name)
	assert.Equal(t, 7, got.Stock)
}

func TestStore_UnknownIDIsNotFound(t *testing.T) {
	s, kv := newTestStore(t, Product{ID: "a", Name: "A", Stock: 1})
	ctx := context.Background()

	_, err := s.Get("zzz")
	assert.True(t, IsNotFound(err))

	_, err = s.Update(ctx, "zzz", ProductInput{Name: "X"})
	assert.True(t, IsNotFound(err))

	err = s.Delete(ctx, "zzz")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "zzz", nf.ID)

	_, err = s.AdjustStock(ctx, "zzz", DirectionIn, 1)
	assert.True(t, IsNotFound(err))

	assert.Equal(t, 0, kv.puts)
	assert.Equal(t, []string{"a"}, ids(s.Snapshot()))
}

func TestStore_Delete(t *testing.T) {
	s, kv := newTestStore(t, Product{ID: "a", Name: "A"}, Product{ID: "b", Name: "B"})

	require.NoError(t, s.Delete(context.Background(), "a"))

	assert.Equal(t, []string{"b"}, ids(s.Snapshot()))
	assert.Equal(t, []string{"b"}, ids(storedProducts(t, kv)))
}

func TestStore_BulkDelete(t *testing.T) {
	s, _ := newTestStore(t,
		Product{ID: "a", Name: "A"},
		Product{ID: "b", Name: "B"},
		Product{ID: "c", Name: "C"},
	)

	n, err := s.BulkDelete(context.Background(), []string{"a", "c", "gone"})
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"b"}, ids(s.Snapshot()))
}

func TestStore_BulkDeleteNothingMatchedSkipsWrite(t *testing.T) {
	s, kv := newTestStore(t, Product{ID: "a", Name: "A"})

	n, err := s.BulkDelete(context.Background(), []string{"gone"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, kv.puts)
}

func TestStore_EmptySelection(t *testing.T) {
	s, _ := newTestStore(t, Product{ID: "a", Name: "A", Stock: 3})
	ctx := context.Background()

	_, err := s.BulkDelete(ctx, nil)
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, err = s.BulkAdjustStock(ctx, []string{}, DirectionIn, 1)
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.True(t, IsValidation(err))
}

func TestStore_AdjustStockClampsAtZero(t *testing.T) {
	s, _ := newTestStore(t, Product{ID: "a", Name: "A", Stock: 3})
	ctx := context.Background()

	p, err := s.AdjustStock(ctx, "a", DirectionOut, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)

	p, err = s.AdjustStock(ctx, "a", DirectionIn, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Stock)
}

func TestStore_AdjustStockRejectsBadQuantity(t *testing.T) {
	s, kv := newTestStore(t, Product{ID: "a", Name: "A", Stock: 3})

	for _, qty := range []int{0, -2} {
		_, err := s.AdjustStock(context.Background(), "a", DirectionIn, qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity, "qty %d", qty)
	}
	assert.Equal(t, 0, kv.puts)
}

func TestStore_BulkAdjustOnlyTouchesSelection(t *testing.T) {
	s, _ := newTestStore(t,
		Product{ID: "a", Name: "A", Stock: 3},
		Product{ID: "b", Name: "B", Stock: 10},
		Product{ID: "c", Name: "C", Stock: 1},
	)

	n, err := s.BulkAdjustStock(context.Background(), []string{"a", "c"}, DirectionOut, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stocks := map[string]int{}
	for _, p := range s.Snapshot() {
		stocks[p.ID] = p.Stock
	}
	assert.Equal(t, map[string]int{"a": 1, "b": 10, "c": 0}, stocks)
}

func TestStore_FailedWriteLeavesStateUnchanged(t *testing.T) {
	s, kv := newTestStore(t, Product{ID: "a", Name: "A", Stock: 3})
	before := s.Snapshot()
	kv.failPut = true
	ctx := context.Background()

	_, err := s.Create(ctx, ProductInput{Name: "New"})
	require.Error(t, err)
	assert.Equal(t, "STO001", MapError(err).Code)

	_, err = s.AdjustStock(ctx, "a", DirectionOut, 1)
	require.Error(t, err)
	require.Error(t, s.Delete(ctx, "a"))
	_, err = s.Import(ctx, strings.NewReader("name,stock\nA,50\n"))
	require.Error(t, err)

	assert.Equal(t, before, s.Snapshot())

	kv.failPut = false
	assert.Equal(t, before, storedProducts(t, kv))
}

func TestStore_ImportEmptyIsParseError(t *testing.T) {
	s, kv := newTestStore(t, Product{ID: "a", Name: "A"})

	for _, in := range []string{"", "\n\n", "id,name\n"} {
		_, err := s.Import(context.Background(), strings.NewReader(in))
		assert.True(t, IsParse(err), "input %q: %v", in, err)
		assert.Equal(t, "FILE002", MapError(err).Code)
	}
	assert.Equal(t, 0, kv.puts)
	assert.Equal(t, 1, s.Len())
}

func TestStore_ImportMerges(t *testing.T) {
	stubIDs(t)
	s, _ := newTestStore(t, Product{ID: "1", Barcode: "AAA", Name: "Milk", Stock: 5})

	res, err := s.Import(context.Background(), strings.NewReader("barcode,name,stock\nAAA,Milk,9\nBBB,Bread,2\n"))
	require.NoError(t, err)

	assert.Equal(t, ImportResult{Rows: 2, Added: 1, Updated: 1}, res)
	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "1", snap[0].ID)
	assert.Equal(t, 9, snap[0].Stock)
	assert.Equal(t, "gen-1", snap[1].ID)
}

func TestStore_ExportImportRoundTrip(t *testing.T) {
	src, _ := newTestStore(t,
		Product{ID: "1", Barcode: "AAA", Name: `Queso "cremoso", 500g`, Category: "Lácteos",
			Cost: 1200.5, Price: 1800, Stock: 4, MinStock: 2, Notes: "pagar, a 30 días"},
		Product{ID: "2", Name: "Pan", Price: 900, Stock: 0},
	)

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf))

	dst, _ := newTestStore(t)
	res, err := dst.Import(context.Background(), &buf)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Added)
	assert.Equal(t, src.Snapshot(), dst.Snapshot())
}

func TestStore_QueryOptionsStats(t *testing.T) {
	s, _ := newTestStore(t, sampleCatalog()...)

	got := s.Query(Query{Filters: Filters{Status: StatusZero}, Sort: DefaultSort})
	assert.Equal(t, []string{"soap"}, ids(got))

	assert.Contains(t, s.Options().Categories, "Lácteos")
	assert.Equal(t, 4, s.Stats().Products)
	assert.Equal(t, 3, s.Stats().LowStock)
}

func TestStore_ActorInContext(t *testing.T) {
	ctx := ContextWithActor(context.Background(), Actor{IP: "10.0.0.1", UserAgent: "curl"})

	a := ActorFromContext(ctx)
	assert.Equal(t, "10.0.0.1", a.IP)
	assert.Equal(t, []any{"ip", "10.0.0.1", "user_agent", "curl"}, a.logArgs())
	assert.Empty(t, ActorFromContext(context.Background()).logArgs())
}
