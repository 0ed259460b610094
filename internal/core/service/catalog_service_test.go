package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rl1809/cart-store/internal/core/domain"
	"github.com/rl1809/cart-store/internal/port"
)

// Mock DatabaseRepository
type mockDB struct {
	products   map[int]domain.Product
	stock      map[int]int
	err        error
	stockReads int
}

func (m *mockDB) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *mockDB) GetStock(ctx context.Context, productID int) (*domain.Stock, error) {
	m.stockReads++
	if m.err != nil {
		return nil, m.err
	}
	amount, ok := m.stock[productID]
	if !ok {
		return nil, nil
	}
	return &domain.Stock{ID: productID, Amount: amount}, nil
}

func (m *mockDB) ListStock(ctx context.Context) ([]domain.Stock, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Stock, 0, len(m.stock))
	for id, amount := range m.stock {
		out = append(out, domain.Stock{ID: id, Amount: amount})
	}
	return out, nil
}

// Mock CacheRepository
type mockCache struct {
	mu     sync.Mutex
	stock  map[int]int
	getErr error
	setErr error
}

func newMockCache() *mockCache {
	return &mockCache{stock: make(map[int]int)}
}

func (m *mockCache) GetStock(ctx context.Context, productID int) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return 0, false, m.getErr
	}
	amount, ok := m.stock[productID]
	return amount, ok, nil
}

func (m *mockCache) SetStock(ctx context.Context, productID int, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.stock[productID] = amount
	return nil
}

func newMockDB() *mockDB {
	return &mockDB{
		products: map[int]domain.Product{1: {ID: 1, Title: "Tênis", Price: 179.9}},
		stock:    map[int]int{1: 3, 2: 0},
	}
}

func TestCatalogGetProduct(t *testing.T) {
	svc := NewCatalogService(newMockDB(), newMockCache(), nil)

	p, err := svc.GetProduct(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "Tênis" {
		t.Errorf("unexpected product %+v", p)
	}

	_, err = svc.GetProduct(context.Background(), 42)
	if !errors.Is(err, port.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogGetStock_FillsCacheOnMiss(t *testing.T) {
	db := newMockDB()
	cache := newMockCache()
	svc := NewCatalogService(db, cache, nil)
	ctx := context.Background()

	s, err := svc.GetStock(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != (domain.Stock{ID: 1, Amount: 3}) {
		t.Errorf("unexpected stock %+v", s)
	}
	if cache.stock[1] != 3 {
		t.Errorf("expected cache filled with 3, got %v", cache.stock)
	}

	// second read is served by the cache
	if _, err := svc.GetStock(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.stockReads != 1 {
		t.Errorf("expected 1 database read, got %d", db.stockReads)
	}
}

func TestCatalogGetStock_ZeroIsCached(t *testing.T) {
	db := newMockDB()
	cache := newMockCache()
	cache.stock[2] = 0
	svc := NewCatalogService(db, cache, nil)

	s, err := svc.GetStock(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Amount != 0 || db.stockReads != 0 {
		t.Errorf("expected cached zero without db read, got %+v reads=%d", s, db.stockReads)
	}
}

func TestCatalogGetStock_CacheDownFallsBack(t *testing.T) {
	db := newMockDB()
	cache := newMockCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc := NewCatalogService(db, cache, nil)

	s, err := svc.GetStock(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected database fallback, got %v", err)
	}
	if s.Amount != 3 {
		t.Errorf("expected 3, got %d", s.Amount)
	}
}

func TestCatalogGetStock_Unknown(t *testing.T) {
	svc := NewCatalogService(newMockDB(), newMockCache(), nil)

	_, err := svc.GetStock(context.Background(), 99)
	if !errors.Is(err, ErrProductNotFound) || !errors.Is(err, port.ErrNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCatalogGetStock_DatabaseError(t *testing.T) {
	db := newMockDB()
	db.err = errors.New("too many connections")
	svc := NewCatalogService(db, newMockCache(), nil)

	_, err := svc.GetStock(context.Background(), 1)
	if err == nil || errors.Is(err, port.ErrNotFound) {
		t.Errorf("expected a non-not-found error, got %v", err)
	}
}

func TestWarmStock(t *testing.T) {
	cache := newMockCache()
	svc := NewCatalogService(newMockDB(), cache, nil)

	n, err := svc.WarmStock(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows, got %d", n)
	}
	if cache.stock[1] != 3 {
		t.Errorf("expected stock 1 cached, got %v", cache.stock)
	}
	if _, ok := cache.stock[2]; !ok {
		t.Error("expected zero stock cached too")
	}
}

func TestWarmStock_CacheError(t *testing.T) {
	cache := newMockCache()
	cache.setErr = errors.New("readonly replica")
	svc := NewCatalogService(newMockDB(), cache, nil)

	if _, err := svc.WarmStock(context.Background()); err == nil {
		t.Error("expected error")
	}
}
