package domain

// Stock is the maximum quantity of a product that can be purchased right now.
type Stock struct {
	ID     int `json:"id" db:"product_id"`
	Amount int `json:"amount" db:"amount"`
}
