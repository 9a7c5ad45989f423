package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTransactionRequest struct {
	BuyerID   *uint `json:"buyer_id,omitempty"` // omitted when a Farmer buys for themselves
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (req *CreateTransactionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProductID, validation.Required),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}

type AddStockRequest struct {
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func (req *AddStockRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.ProductID, validation.Required),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}
