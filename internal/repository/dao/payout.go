package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Payout struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"not null;index"`
	Amount    float64 `gorm:"not null"`
	CreatedAt time.Time
}

type UserPaid struct {
	UserID uint
	Total  float64
}

type PayoutDAO struct {
	db *gorm.DB
}

func NewPayoutDAO(db *gorm.DB) *PayoutDAO {
	return &PayoutDAO{
		db: db,
	}
}

func (d *PayoutDAO) Insert(ctx context.Context, payout Payout) (Payout, error) {
	result := d.db.WithContext(ctx).Create(&payout)
	if result.Error != nil {
		return Payout{}, result.Error
	}

	return payout, nil
}

func (d *PayoutDAO) SumAmountByUser(ctx context.Context, userID uint) (float64, error) {
	var total float64

	result := d.db.WithContext(ctx).Model(&Payout{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}

// PaidTotals aggregates payouts per user across the whole ledger.
func (d *PayoutDAO) PaidTotals(ctx context.Context) ([]UserPaid, error) {
	var totals []UserPaid

	result := d.db.WithContext(ctx).Model(&Payout{}).
		Select("user_id, COALESCE(SUM(amount), 0) AS total").
		Group("user_id").
		Scan(&totals)
	if result.Error != nil {
		return nil, result.Error
	}

	return totals, nil
}
