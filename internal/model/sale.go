package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Quantity  int32           `json:"quantity"`
	// TotalPrice is a snapshot of product price times quantity taken at
	// creation time. It is never recomputed.
	TotalPrice decimal.Decimal `json:"total_price"`
	Date       time.Time       `json:"date"`
}

// SaleDetail is a sale joined with its product and the product's category.
type SaleDetail struct {
	Sale
	Product Product `json:"product"`
}
