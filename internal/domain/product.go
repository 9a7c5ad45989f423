package domain

import "time"

// Product carries one purchase price per tier. A buyer at a given tier always
// pays that tier's price; the seller's margin is the gap to their own tier.
type Product struct {
	ID                  uint      `json:"id"`
	Name                string    `json:"name"`
	FranchisePrice      float64   `json:"franchise_price"`
	DistributorPrice    float64   `json:"distributor_price"`
	SubDistributorPrice float64   `json:"sub_distributor_price"`
	DealerPrice         float64   `json:"dealer_price"`
	FarmerPrice         float64   `json:"farmer_price"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TierPrice returns the purchase price for the given role. The second return
// is false for Admin and for roles outside the buying tiers.
func (p Product) TierPrice(r Role) (float64, bool) {
	switch r {
	case RoleFranchise:
		return p.FranchisePrice, true
	case RoleDistributor:
		return p.DistributorPrice, true
	case RoleSubDistributor:
		return p.SubDistributorPrice, true
	case RoleDealer:
		return p.DealerPrice, true
	case RoleFarmer:
		return p.FarmerPrice, true
	}
	return 0, false
}

// CostPrice is what the seller originally paid per unit. Admin sources stock
// at zero cost; an unrecognised seller tier also costs out at zero.
func (p Product) CostPrice(seller Role) float64 {
	if seller == RoleAdmin {
		return 0
	}
	price, ok := p.TierPrice(seller)
	if !ok {
		return 0
	}
	return price
}
