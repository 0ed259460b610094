package port

import (
	"context"

	"github.com/rl1809/cart-store/internal/core/domain"
)

type DatabaseRepository interface {
	// GetProduct retrieves a product by id, nil when it does not exist
	GetProduct(ctx context.Context, productID int) (*domain.Product, error)

	// GetStock retrieves the stock row of a product, nil when it does not exist
	GetStock(ctx context.Context, productID int) (*domain.Stock, error)

	// ListStock returns every stock row, used to warm the cache
	ListStock(ctx context.Context) ([]domain.Stock, error)
}
