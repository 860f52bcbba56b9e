package domain

import "github.com/shopspring/decimal"

// Product is owned by the catalog; this service only ever reads it.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	ImageURL     string          `json:"image,omitempty"`
	Price        decimal.Decimal `json:"price"`
	IsBestSeller bool            `json:"isBestSeller,omitempty"`
}
