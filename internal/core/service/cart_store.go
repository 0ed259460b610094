package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rl1809/cart-store/internal/core/domain"
	"github.com/rl1809/cart-store/internal/port"
)

// CartStorageKey is the storage slot holding the serialized cart.
const CartStorageKey = "@RocketShoes:cart"

var (
	ErrOutOfStock       = errors.New("requested amount is out of stock")
	ErrProductNotInCart = errors.New("product not in cart")
)

// UpdateProductAmount is the input of CartStore.UpdateProductAmount.
type UpdateProductAmount struct {
	ProductID int
	Amount    int
}

// CartStore owns the in-memory cart and mirrors it to a KeyValueStore after
// every successful mutation.
//
// Each operation reads a snapshot when it starts and swaps in a full
// replacement when it finishes. The lock is never held across a catalog
// call, so concurrent operations do not race on memory but the last one to
// finish wins. Callers that need ordering must serialize their calls.
// Storage writes are expected to be local and quick; they run under the lock.
type CartStore struct {
	catalog  port.CatalogClient
	storage  port.KeyValueStore
	notifier port.Notifier
	logger   *zap.Logger
	tracer   trace.Tracer

	mu   sync.RWMutex
	cart []domain.LineItem
}

// NewCartStore loads the persisted cart and returns a ready store. notifier
// may be nil when the caller only consumes returned errors.
func NewCartStore(ctx context.Context, catalog port.CatalogClient, storage port.KeyValueStore, notifier port.Notifier, logger *zap.Logger) *CartStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CartStore{
		catalog:  catalog,
		storage:  storage,
		notifier: notifier,
		logger:   logger,
		tracer:   otel.Tracer("github.com/rl1809/cart-store/cart"),
	}
	s.cart = s.loadCart(ctx)
	return s
}

// loadCart never fails: absent, unreadable or invalid data is an empty cart.
func (s *CartStore) loadCart(ctx context.Context) []domain.LineItem {
	raw, ok, err := s.storage.Get(ctx, CartStorageKey)
	if err != nil {
		s.logger.Warn("failed to read stored cart, starting empty", zap.Error(err))
		return []domain.LineItem{}
	}
	if !ok {
		return []domain.LineItem{}
	}

	items, err := DecodeCart(raw)
	if err != nil {
		s.logger.Warn("discarding invalid stored cart", zap.Error(err))
		return []domain.LineItem{}
	}

	s.logger.Debug("loaded stored cart", zap.Int("items", len(items)))
	return items
}

// Cart returns a copy of the current line items.
func (s *CartStore) Cart() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneCart(s.cart)
}

// commit persists next and then makes it the current cart. The write and
// the swap happen under one lock so storage always mirrors memory. A failed
// write leaves both copies as they were.
func (s *CartStore) commit(ctx context.Context, next []domain.LineItem) error {
	raw, err := EncodeCart(next)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Set(ctx, CartStorageKey, raw); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	s.cart = next
	return nil
}

// AddProduct puts one unit of the product into the cart. A product that is
// not in the cart yet is added with amount 1 without consulting stock; an
// existing line item is incremented only while stock allows it.
func (s *CartStore) AddProduct(ctx context.Context, productID int) (err error) {
	ctx, span := s.startSpan(ctx, "cart.AddProduct", productID)
	defer func() { s.finish(ctx, span, OperationAdd, productID, err) }()

	cart := s.Cart()

	idx := domain.FindLineItem(cart, productID)
	if idx < 0 {
		product, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("get product %d: %w", productID, err)
		}
		if product.ID != productID {
			return fmt.Errorf("get product %d: catalog returned product %d", productID, product.ID)
		}
		// TODO: check stock here as well once the storefront agrees that a
		// first add of a sold-out product should be rejected.
		cart = append(cart, domain.NewLineItem(product, 1))
		return s.commit(ctx, cart)
	}

	stock, err := s.catalog.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("get stock %d: %w", productID, err)
	}

	item := cart[idx]
	if item.Amount+1 > stock.Amount {
		return ErrOutOfStock
	}
	item.Amount++

	// the incremented item goes to the end of the cart
	next := make([]domain.LineItem, 0, len(cart))
	next = append(next, cart[:idx]...)
	next = append(next, cart[idx+1:]...)
	next = append(next, item)

	return s.commit(ctx, next)
}

// RemoveProduct drops the line item for productID. It makes no remote calls.
func (s *CartStore) RemoveProduct(ctx context.Context, productID int) (err error) {
	ctx, span := s.startSpan(ctx, "cart.RemoveProduct", productID)
	defer func() { s.finish(ctx, span, OperationRemove, productID, err) }()

	cart := s.Cart()

	idx := domain.FindLineItem(cart, productID)
	if idx < 0 {
		return ErrProductNotInCart
	}

	next := make([]domain.LineItem, 0, len(cart)-1)
	next = append(next, cart[:idx]...)
	next = append(next, cart[idx+1:]...)

	return s.commit(ctx, next)
}

// UpdateProductAmount sets the amount of a line item to exactly in.Amount
// when stock allows it. Amounts below 1 are ignored. When the product is not
// in the cart the unchanged cart is persisted and nil is returned.
func (s *CartStore) UpdateProductAmount(ctx context.Context, in UpdateProductAmount) (err error) {
	if in.Amount < 1 {
		return nil
	}

	ctx, span := s.startSpan(ctx, "cart.UpdateProductAmount", in.ProductID)
	span.SetAttributes(attribute.Int("cart.amount", in.Amount))
	defer func() { s.finish(ctx, span, OperationUpdate, in.ProductID, err) }()

	cart := s.Cart()

	stock, err := s.catalog.GetStock(ctx, in.ProductID)
	if err != nil {
		return fmt.Errorf("get stock %d: %w", in.ProductID, err)
	}
	if stock.Amount < in.Amount {
		return ErrOutOfStock
	}

	if idx := domain.FindLineItem(cart, in.ProductID); idx >= 0 {
		cart[idx].Amount = in.Amount
	}

	return s.commit(ctx, cart)
}

func (s *CartStore) startSpan(ctx context.Context, name string, productID int) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.Int("cart.product_id", productID)))
}

// finish closes the span, logs the outcome and notifies the user on failure.
func (s *CartStore) finish(ctx context.Context, span trace.Span, op Operation, productID int, err error) {
	defer span.End()

	outcome := Classify(err)
	span.SetAttributes(attribute.String("cart.outcome", outcome.String()))
	if err == nil {
		s.logger.Debug("cart operation applied",
			zap.String("operation", op.String()),
			zap.Int("product_id", productID),
		)
		return
	}

	span.SetStatus(codes.Error, err.Error())
	fields := []zap.Field{
		zap.String("operation", op.String()),
		zap.Int("product_id", productID),
		zap.String("outcome", outcome.String()),
	}
	if outcome == OutcomeTransportError {
		s.logger.Error("cart operation failed", append(fields, zap.Error(err))...)
	} else {
		s.logger.Info("cart operation rejected", fields...)
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, Message(op, err))
	}
}
