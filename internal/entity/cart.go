package domain

import "github.com/shopspring/decimal"

type Cart struct {
	ID     string
	UserID string
}

// CartItem carries the catalog name/price snapshot for display only; pricing
// at order time always goes back to the catalog.
type CartItem struct {
	CartID    string          `json:"-"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}
