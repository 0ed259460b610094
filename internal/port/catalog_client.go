package port

import (
	"context"
	"errors"

	"github.com/rl1809/cart-store/internal/core/domain"
)

// ErrNotFound is returned by a CatalogClient when the product id is unknown.
var ErrNotFound = errors.New("product not found")

type CatalogClient interface {
	// GetProduct resolves a product id into its catalog record
	GetProduct(ctx context.Context, productID int) (domain.Product, error)

	// GetStock returns the purchasable quantity of a product at query time
	GetStock(ctx context.Context, productID int) (domain.Stock, error)
}
