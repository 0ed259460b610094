package client

import (
	"context"
	"errors"
	"testing"

	"github.com/rl1809/cart-store/internal/core/domain"
	"github.com/rl1809/cart-store/internal/core/service"
)

// Mock DatabaseRepository
type fakeDB struct {
	products map[int]domain.Product
	stock    map[int]int
	err      error
}

func (f *fakeDB) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.products[productID]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeDB) GetStock(ctx context.Context, productID int) (*domain.Stock, error) {
	if f.err != nil {
		return nil, f.err
	}
	if amount, ok := f.stock[productID]; ok {
		return &domain.Stock{ID: productID, Amount: amount}, nil
	}
	return nil, nil
}

func (f *fakeDB) ListStock(ctx context.Context) ([]domain.Stock, error) {
	return nil, errors.New("not used")
}

// memoryCache satisfies port.CacheRepository with a miss on every read.
type memoryCache struct{}

func (memoryCache) GetStock(ctx context.Context, productID int) (int, bool, error) {
	return 0, false, nil
}

func (memoryCache) SetStock(ctx context.Context, productID int, amount int) error {
	return nil
}

var sneaker = domain.Product{ID: 1, Title: "Tênis de Caminhada Leve Confortável", Price: 179.9, Image: "https://example.com/1.jpg"}

func newCatalog(t *testing.T) (*service.CatalogService, *fakeDB) {
	t.Helper()
	db := &fakeDB{
		products: map[int]domain.Product{1: sneaker},
		stock:    map[int]int{1: 3},
	}
	return service.NewCatalogService(db, memoryCache{}, nil), db
}
