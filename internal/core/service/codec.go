package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rl1809/cart-store/internal/core/domain"
)

var ErrInvalidCart = errors.New("invalid stored cart")

// EncodeCart serializes the cart into its stored JSON form.
func EncodeCart(items []domain.LineItem) (string, error) {
	if items == nil {
		items = []domain.LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// DecodeCart parses a stored cart and checks that every line item has a
// positive id, an amount of at least 1 and that no id repeats.
func DecodeCart(raw string) ([]domain.LineItem, error) {
	var items []domain.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCart, err)
	}
	if items == nil {
		// "null"
		return []domain.LineItem{}, nil
	}

	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		if item.ID < 1 {
			return nil, fmt.Errorf("%w: product id %d", ErrInvalidCart, item.ID)
		}
		if item.Amount < 1 {
			return nil, fmt.Errorf("%w: product %d has amount %d", ErrInvalidCart, item.ID, item.Amount)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("%w: product %d appears twice", ErrInvalidCart, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return items, nil
}
