package domain

// InventoryRecord tracks how many units of a product a user currently holds.
// Records are created lazily the first time stock reaches a user; quantity
// never drops below zero.
type InventoryRecord struct {
	ID        uint `json:"id"`
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// InventoryItem is a record joined with its product, as served to callers
// browsing their own or their upline's stock.
type InventoryItem struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}
