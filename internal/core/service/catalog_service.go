package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rl1809/cart-store/internal/core/domain"
	"github.com/rl1809/cart-store/internal/port"
)

// ErrProductNotFound matches port.ErrNotFound so transports can map it
// without knowing about this package.
var ErrProductNotFound = fmt.Errorf("catalog: %w", port.ErrNotFound)

// CatalogService answers the product and stock lookups that carts make.
// Stock reads go through the cache and fall back to the database.
type CatalogService struct {
	db     port.DatabaseRepository
	cache  port.CacheRepository
	logger *zap.Logger
}

func NewCatalogService(db port.DatabaseRepository, cache port.CacheRepository, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (s *CatalogService) GetProduct(ctx context.Context, productID int) (domain.Product, error) {
	p, err := s.db.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	if p == nil {
		return domain.Product{}, ErrProductNotFound
	}
	return *p, nil
}

func (s *CatalogService) GetStock(ctx context.Context, productID int) (domain.Stock, error) {
	amount, ok, err := s.cache.GetStock(ctx, productID)
	if err != nil {
		s.logger.Warn("stock cache read failed, using database",
			zap.Int("product_id", productID), zap.Error(err))
	}
	if err == nil && ok {
		return domain.Stock{ID: productID, Amount: amount}, nil
	}

	stock, err := s.db.GetStock(ctx, productID)
	if err != nil {
		return domain.Stock{}, fmt.Errorf("get stock: %w", err)
	}
	if stock == nil {
		return domain.Stock{}, ErrProductNotFound
	}

	if err := s.cache.SetStock(ctx, productID, stock.Amount); err != nil {
		s.logger.Warn("stock cache write failed",
			zap.Int("product_id", productID), zap.Error(err))
	}
	return *stock, nil
}

// WarmStock copies every stock row into the cache.
func (s *CatalogService) WarmStock(ctx context.Context) (int, error) {
	rows, err := s.db.ListStock(ctx)
	if err != nil {
		return 0, fmt.Errorf("list stock: %w", err)
	}
	for _, row := range rows {
		if err := s.cache.SetStock(ctx, row.ID, row.Amount); err != nil {
			return 0, fmt.Errorf("cache stock %d: %w", row.ID, err)
		}
	}
	return len(rows), nil
}
