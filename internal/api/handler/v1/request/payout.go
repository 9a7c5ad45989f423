package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type RecordPayoutRequest struct {
	UserID uint    `json:"user_id"`
	Amount float64 `json:"amount"`
}

func (req *RecordPayoutRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Amount, validation.Required, validation.Min(0.01)),
	)
}
