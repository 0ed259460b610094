package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/cart-store/internal/adapter/storage"
	"github.com/rl1809/cart-store/internal/core/domain"
	"github.com/rl1809/cart-store/internal/core/service"
)

// Mock DatabaseRepository
type fakeCatalogDB struct {
	products map[int]domain.Product
	stock    map[int]int
	err      error
}

func (f *fakeCatalogDB) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeCatalogDB) GetStock(ctx context.Context, productID int) (*domain.Stock, error) {
	if f.err != nil {
		return nil, f.err
	}
	amount, ok := f.stock[productID]
	if !ok {
		return nil, nil
	}
	return &domain.Stock{ID: productID, Amount: amount}, nil
}

func (f *fakeCatalogDB) ListStock(ctx context.Context) ([]domain.Stock, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Stock
	for id, amount := range f.stock {
		out = append(out, domain.Stock{ID: id, Amount: amount})
	}
	return out, nil
}

var errDatabaseDown = errors.New("database down")

// newTestCatalog returns a catalog backed by a fake database and a
// miniredis stock cache.
func newTestCatalog(t *testing.T) (*service.CatalogService, *fakeCatalogDB) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	db := &fakeCatalogDB{
		products: map[int]domain.Product{
			1: {ID: 1, Title: "Tênis de Caminhada Leve Confortável", Price: 179.9, Image: "https://example.com/1.jpg"},
			2: {ID: 2, Title: "Tênis VR Caminhada Confortável", Price: 139.9, Image: "https://example.com/2.jpg"},
		},
		stock: map[int]int{1: 3, 2: 5},
	}
	return service.NewCatalogService(db, storage.NewRedisAdapter(rdb), nil), db
}
