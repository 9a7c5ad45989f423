package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"` // defaulted when empty
	UplineID *uint  `json:"upline_id,omitempty"`
}

func (req *CreateUserRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Role, validation.Required,
			validation.In("Admin", "Franchise", "Distributor", "SubDistributor", "Dealer", "Farmer")),
	)
	if err != nil {
		return err
	}

	if req.Password != "" {
		return validatePassword(req.Password)
	}

	return nil
}
