package repository

import (
	"context"
	"fmt"

	"github.com/agrolink/distribution-api/internal/domain"
	"github.com/agrolink/distribution-api/internal/repository/dao"
)

type PayoutDAO interface {
	Insert(ctx context.Context, payout dao.Payout) (dao.Payout, error)
	SumAmountByUser(ctx context.Context, userID uint) (float64, error)
	PaidTotals(ctx context.Context) ([]dao.UserPaid, error)
}

type PayoutRepository struct {
	dao PayoutDAO
}

func NewPayoutRepository(dao PayoutDAO) *PayoutRepository {
	return &PayoutRepository{
		dao: dao,
	}
}

func (r *PayoutRepository) Create(ctx context.Context, payout domain.Payout) (domain.Payout, error) {
	created, err := r.dao.Insert(ctx, dao.Payout{
		UserID: payout.UserID,
		Amount: payout.Amount,
	})
	if err != nil {
		return domain.Payout{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return domain.Payout{
		ID:        created.ID,
		UserID:    created.UserID,
		Amount:    created.Amount,
		CreatedAt: created.CreatedAt,
	}, nil
}

func (r *PayoutRepository) SumAmountByUser(ctx context.Context, userID uint) (float64, error) {
	total, err := r.dao.SumAmountByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumAmountByUser -> %w", err)
	}

	return total, nil
}

// PaidTotals returns accumulated payout amounts keyed by user id.
func (r *PayoutRepository) PaidTotals(ctx context.Context) (map[uint]float64, error) {
	totals, err := r.dao.PaidTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.PaidTotals -> %w", err)
	}

	result := make(map[uint]float64, len(totals))
	for _, t := range totals {
		result[t.UserID] = t.Total
	}

	return result, nil
}
