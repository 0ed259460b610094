package domain

// Product is a catalog record. Only ID is meaningful to the cart; the rest
// is carried along so the line item can be rendered without another lookup.
type Product struct {
	ID    int     `json:"id" db:"id"`
	Title string  `json:"title" db:"title"`
	Price float64 `json:"price" db:"price"`
	Image string  `json:"image" db:"image"`
}

// LineItem is one product in the cart together with its purchase quantity.
type LineItem struct {
	Product
	Amount int `json:"amount"`
}

// NewLineItem returns a line item for p with the given amount.
func NewLineItem(p Product, amount int) LineItem {
	return LineItem{Product: p, Amount: amount}
}

// FindLineItem returns the index of the item with the given product id, or -1.
func FindLineItem(items []LineItem, productID int) int {
	for i, item := range items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// CloneCart returns a copy of items that shares no backing array with it.
func CloneCart(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
