package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrolink/distribution-api/internal/domain"
)

func payoutFixture(t *testing.T) (*PayoutService, *fakeUserRepo, *fakeTransactionRepo, *fakePayoutRepo) {
	t.Helper()

	users := newFakeUserRepo(
		domain.User{ID: 1, Code: "ADM1001", Role: domain.RoleAdmin},
		domain.User{ID: 2, Code: "FRA2001", Role: domain.RoleFranchise, UplineID: uintPtr(1)},
		domain.User{ID: 5, Code: "DEA5001", Role: domain.RoleDealer, UplineID: uintPtr(2)},
	)
	transactions := newFakeTransactionRepo(newFakeInventoryRepo())
	transactions.created = []domain.Transaction{
		{ID: 1, SellerID: 5, BuyerID: 6, ProductID: 1, Quantity: 5, Profit: 10},
		{ID: 2, SellerID: 5, BuyerID: 7, ProductID: 1, Quantity: 2, Profit: 4},
		{ID: 3, SellerID: 2, BuyerID: 3, ProductID: 1, Quantity: 10, Profit: 10},
	}
	payouts := &fakePayoutRepo{}

	return NewPayoutService(payouts, transactions, users), users, transactions, payouts
}

func TestPayoutService_PendingBalance(t *testing.T) {
	svc, _, _, payouts := payoutFixture(t)

	pending, err := svc.PendingBalance(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 14.0, pending)

	payouts.payouts = append(payouts.payouts, domain.Payout{ID: 1, UserID: 5, Amount: 9})

	pending, err = svc.PendingBalance(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, pending)
}

func TestPayoutService_ListPending(t *testing.T) {
	svc, _, _, payouts := payoutFixture(t)

	// The franchise is fully settled and must drop out of the list.
	payouts.payouts = append(payouts.payouts, domain.Payout{ID: 1, UserID: 2, Amount: 10})

	pending, err := svc.ListPending(context.Background(), []domain.Role{domain.RoleFranchise, domain.RoleDealer})
	require.NoError(t, err)
	require.Len(t, pending, 1)

	assert.Equal(t, uint(5), pending[0].User.ID)
	assert.Equal(t, 14.0, pending[0].TotalEarnings)
	assert.Equal(t, 0.0, pending[0].TotalPaid)
	assert.Equal(t, 14.0, pending[0].PendingBalance)
}

func TestPayoutService_ListPending_RoleFilter(t *testing.T) {
	svc, _, _, _ := payoutFixture(t)

	pending, err := svc.ListPending(context.Background(), []domain.Role{domain.RoleFranchise})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, uint(2), pending[0].User.ID)
}

func TestPayoutService_RecordPayout(t *testing.T) {
	svc, _, _, payouts := payoutFixture(t)

	payout, err := svc.RecordPayout(context.Background(), 5, 10)
	require.NoError(t, err)
	assert.Equal(t, uint(5), payout.UserID)
	assert.Equal(t, 10.0, payout.Amount)
	require.Len(t, payouts.payouts, 1)

	pending, err := svc.PendingBalance(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 4.0, pending)
}

func TestPayoutService_RecordPayout_OverpaymentAllowed(t *testing.T) {
	svc, _, _, payouts := payoutFixture(t)

	_, err := svc.RecordPayout(context.Background(), 5, 100)
	require.NoError(t, err)
	require.Len(t, payouts.payouts, 1)

	pending, err := svc.PendingBalance(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, -86.0, pending)
}

func TestPayoutService_RecordPayout_UnknownUser(t *testing.T) {
	svc, _, _, _ := payoutFixture(t)

	_, err := svc.RecordPayout(context.Background(), 404, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
