package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateProductRequest struct {
	Name                string  `json:"name"`
	FranchisePrice      float64 `json:"franchise_price"`
	DistributorPrice    float64 `json:"distributor_price"`
	SubDistributorPrice float64 `json:"sub_distributor_price"`
	DealerPrice         float64 `json:"dealer_price"`
	FarmerPrice         float64 `json:"farmer_price"`
}

func (req *CreateProductRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.FranchisePrice, validation.Min(0.0)),
		validation.Field(&req.DistributorPrice, validation.Min(0.0)),
		validation.Field(&req.SubDistributorPrice, validation.Min(0.0)),
		validation.Field(&req.DealerPrice, validation.Min(0.0)),
		validation.Field(&req.FarmerPrice, validation.Min(0.0)),
	)
}

type UpdateProductRequest struct {
	Name                *string  `json:"name,omitempty"`
	FranchisePrice      *float64 `json:"franchise_price,omitempty"`
	DistributorPrice    *float64 `json:"distributor_price,omitempty"`
	SubDistributorPrice *float64 `json:"sub_distributor_price,omitempty"`
	DealerPrice         *float64 `json:"dealer_price,omitempty"`
	FarmerPrice         *float64 `json:"farmer_price,omitempty"`
}

func (req *UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Length(2, 100)),
		validation.Field(&req.FranchisePrice, validation.Min(0.0)),
		validation.Field(&req.DistributorPrice, validation.Min(0.0)),
		validation.Field(&req.SubDistributorPrice, validation.Min(0.0)),
		validation.Field(&req.DealerPrice, validation.Min(0.0)),
		validation.Field(&req.FarmerPrice, validation.Min(0.0)),
	)
}
