package domain

import (
	"time"
)

// Transaction is one completed sale down the chain. Rows are append-only and
// never mutated after creation.
type Transaction struct {
	ID            uint      `json:"id"`
	SellerID      uint      `json:"seller_id"`
	BuyerID       uint      `json:"buyer_id"`
	ProductID     uint      `json:"product_id"`
	Quantity      int       `json:"quantity"`
	PurchasePrice float64   `json:"purchase_price"` // unit price charged to the buyer
	TotalAmount   float64   `json:"total_amount"`
	Profit        float64   `json:"profit"` // credited to the seller of record
	CreatedAt     time.Time `json:"created_at"`
}

func (t *Transaction) IsValid() bool {
	if t.SellerID == t.BuyerID {
		return false
	}
	if t.Quantity <= 0 {
		return false
	}
	return true
}
