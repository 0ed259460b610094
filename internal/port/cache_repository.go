package port

import "context"

type CacheRepository interface {
	// GetStock returns the cached stock amount, ok is false on a cache miss
	GetStock(ctx context.Context, productID int) (amount int, ok bool, err error)

	// SetStock overwrites the cached stock amount
	SetStock(ctx context.Context, productID int, amount int) error
}
