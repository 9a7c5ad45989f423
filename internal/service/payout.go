package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/agrolink/distribution-api/internal/domain"
)

type PayoutRepository interface {
	Create(ctx context.Context, payout domain.Payout) (domain.Payout, error)
	SumAmountByUser(ctx context.Context, userID uint) (float64, error)
	PaidTotals(ctx context.Context) (map[uint]float64, error)
}

type PayoutService struct {
	repo            PayoutRepository
	transactionRepo TransactionRepository
	userRepo        UserRepository
}

func NewPayoutService(repo PayoutRepository, transactionRepo TransactionRepository, userRepo UserRepository) *PayoutService {
	return &PayoutService{
		repo:            repo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
	}
}

// TotalEarnings is the sum of profit over all transactions where the user was
// the seller of record.
func (s *PayoutService) TotalEarnings(ctx context.Context, userID uint) (float64, error) {
	total, err := s.transactionRepo.SumProfitBySeller(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("s.transactionRepo.SumProfitBySeller -> %w", err)
	}

	return total, nil
}

func (s *PayoutService) TotalPaid(ctx context.Context, userID uint) (float64, error) {
	total, err := s.repo.SumAmountByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.SumAmountByUser -> %w", err)
	}

	return total, nil
}

func (s *PayoutService) PendingBalance(ctx context.Context, userID uint) (float64, error) {
	earnings, err := s.TotalEarnings(ctx, userID)
	if err != nil {
		return 0, err
	}

	paid, err := s.TotalPaid(ctx, userID)
	if err != nil {
		return 0, err
	}

	return earnings - paid, nil
}

// ListPending computes the settlement position of every user in the eligible
// roles and keeps only those still owed money. Earnings and payouts are each
// aggregated in one query rather than per user.
func (s *PayoutService) ListPending(ctx context.Context, roles []domain.Role) ([]domain.PendingPayout, error) {
	users, err := s.userRepo.FindByRoles(ctx, roles)
	if err != nil {
		return nil, fmt.Errorf("s.userRepo.FindByRoles -> %w", err)
	}

	earnings, err := s.transactionRepo.ProfitTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.transactionRepo.ProfitTotals -> %w", err)
	}

	paid, err := s.repo.PaidTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.PaidTotals -> %w", err)
	}

	pending := make([]domain.PendingPayout, 0, len(users))
	for _, user := range users {
		position := domain.PendingPayout{
			User:           user,
			TotalEarnings:  earnings[user.ID],
			TotalPaid:      paid[user.ID],
			PendingBalance: earnings[user.ID] - paid[user.ID],
		}
		if position.PendingBalance > 0 {
			pending = append(pending, position)
		}
	}

	return pending, nil
}

// RecordPayout appends a payout row for the user. The amount is not checked
// against the pending balance; an overpayment is recorded as given and logged.
func (s *PayoutService) RecordPayout(ctx context.Context, userID uint, amount float64) (domain.Payout, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return domain.Payout{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	pending, err := s.PendingBalance(ctx, userID)
	if err != nil {
		return domain.Payout{}, err
	}
	if amount > pending {
		zap.L().Warn("payout exceeds pending balance",
			zap.Uint("user_id", userID),
			zap.Float64("amount", amount),
			zap.Float64("pending_balance", pending))
	}

	payout, err := s.repo.Create(ctx, domain.Payout{
		UserID: userID,
		Amount: amount,
	})
	if err != nil {
		return domain.Payout{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return payout, nil
}
