package domain

import "time"

// Payout is an amount paid out to a user. Payouts settle against the user's
// aggregate pending balance, not against individual transactions.
type Payout struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// PendingPayout is the computed settlement position of one user.
type PendingPayout struct {
	User           User    `json:"user"`
	TotalEarnings  float64 `json:"total_earnings"`
	TotalPaid      float64 `json:"total_paid"`
	PendingBalance float64 `json:"pending_balance"`
}
