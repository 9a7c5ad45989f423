package domain

import (
	"strings"
	"time"
)

// Role is the tier a user occupies in the distribution chain. The set is
// closed; anything outside it is rejected at provisioning time.
type Role string

const (
	RoleAdmin          Role = "Admin"
	RoleFranchise      Role = "Franchise"
	RoleDistributor    Role = "Distributor"
	RoleSubDistributor Role = "SubDistributor"
	RoleDealer         Role = "Dealer"
	RoleFarmer         Role = "Farmer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFranchise, RoleDistributor, RoleSubDistributor, RoleDealer, RoleFarmer:
		return true
	}
	return false
}

// CodePrefix is used when generating public user codes, e.g. "DIS3309".
func (r Role) CodePrefix() string {
	s := string(r)
	if len(s) < 3 {
		return strings.ToUpper(s)
	}
	return strings.ToUpper(s[:3])
}

type User struct {
	ID        uint      `json:"id"`
	Code      string    `json:"user_id"` // public code, case-insensitive unique
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Password  string    `json:"-"`
	UplineID  *uint     `json:"upline_id"` // nil only for Admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TreeNode is a user together with everyone below them in the hierarchy.
type TreeNode struct {
	ID       uint        `json:"id"`
	Code     string      `json:"user_id"`
	Name     string      `json:"name"`
	Role     Role        `json:"role"`
	Children []*TreeNode `json:"children"`
}
