package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrolink/distribution-api/internal/domain"
)

func uintPtr(v uint) *uint {
	return &v
}

// testChain builds Admin(1) -> Franchise(2) -> Distributor(3) ->
// SubDistributor(4) -> Dealer(5) -> Farmer(6) with one product.
func testChain() (*fakeUserRepo, *fakeProductRepo, *fakeInventoryRepo, *fakeTransactionRepo) {
	users := newFakeUserRepo(
		domain.User{ID: 1, Code: "ADM1001", Name: "Head Office", Role: domain.RoleAdmin},
		domain.User{ID: 2, Code: "FRA2001", Name: "Franchise One", Role: domain.RoleFranchise, UplineID: uintPtr(1)},
		domain.User{ID: 3, Code: "DIS3001", Name: "Distributor One", Role: domain.RoleDistributor, UplineID: uintPtr(2)},
		domain.User{ID: 4, Code: "SUB4001", Name: "Sub One", Role: domain.RoleSubDistributor, UplineID: uintPtr(3)},
		domain.User{ID: 5, Code: "DEA5001", Name: "Dealer One", Role: domain.RoleDealer, UplineID: uintPtr(4)},
		domain.User{ID: 6, Code: "FAR6001", Name: "Farmer One", Role: domain.RoleFarmer, UplineID: uintPtr(5)},
	)
	products := newFakeProductRepo(domain.Product{
		ID:                  1,
		Name:                "Organic Fertilizer 50kg",
		FranchisePrice:      5,
		DistributorPrice:    6,
		SubDistributorPrice: 7,
		DealerPrice:         8,
		FarmerPrice:         10,
	})
	inventory := newFakeInventoryRepo()
	transactions := newFakeTransactionRepo(inventory)

	return users, products, inventory, transactions
}

func TestTransactionService_Execute_FarmerBuysFromUpline(t *testing.T) {
	users, products, inventory, transactions := testChain()
	inventory.set(5, 1, 20) // the dealer holds stock

	svc := NewTransactionService(transactions, users, products, inventory)

	farmer, err := users.FindByID(context.Background(), 6)
	require.NoError(t, err)

	got, err := svc.Execute(context.Background(), farmer, nil, 1, 5)
	require.NoError(t, err)

	assert.Equal(t, uint(5), got.SellerID)
	assert.Equal(t, uint(6), got.BuyerID)
	assert.Equal(t, 10.0, got.PurchasePrice)
	assert.Equal(t, 50.0, got.TotalAmount)
	// Margin is farmer price minus dealer price, per unit.
	assert.Equal(t, 10.0, got.Profit)

	assert.Equal(t, 15, inventory.stock[stockKey{5, 1}])
	assert.Equal(t, 5, inventory.stock[stockKey{6, 1}])
}

func TestTransactionService_Execute_FranchiseDebitsAdminStock(t *testing.T) {
	users, products, inventory, transactions := testChain()
	inventory.set(1, 1, 100) // central warehouse

	svc := NewTransactionService(transactions, users, products, inventory)

	franchise, err := users.FindByID(context.Background(), 2)
	require.NoError(t, err)

	got, err := svc.Execute(context.Background(), franchise, uintPtr(3), 1, 10)
	require.NoError(t, err)

	// The franchise stays seller of record but ships from Admin's stock.
	assert.Equal(t, uint(2), got.SellerID)
	assert.Equal(t, uint(3), got.BuyerID)
	assert.Equal(t, 6.0, got.PurchasePrice)
	assert.Equal(t, 10.0, got.Profit)

	assert.Equal(t, 90, inventory.stock[stockKey{1, 1}])
	assert.Equal(t, 10, inventory.stock[stockKey{3, 1}])
	assert.Equal(t, 0, inventory.stock[stockKey{2, 1}])
}

func TestTransactionService_Execute_FranchiseWithoutAdmin(t *testing.T) {
	users := newFakeUserRepo(
		domain.User{ID: 2, Code: "FRA2001", Role: domain.RoleFranchise},
		domain.User{ID: 3, Code: "DIS3001", Role: domain.RoleDistributor, UplineID: uintPtr(2)},
	)
	products := newFakeProductRepo(domain.Product{ID: 1, DistributorPrice: 6})
	inventory := newFakeInventoryRepo()
	svc := NewTransactionService(newFakeTransactionRepo(inventory), users, products, inventory)

	franchise, err := users.FindByID(context.Background(), 2)
	require.NoError(t, err)

	_, err = svc.Execute(context.Background(), franchise, uintPtr(3), 1, 1)
	assert.ErrorIs(t, err, ErrNoAdminAccount)
}

func TestTransactionService_Execute_MissingBuyer(t *testing.T) {
	users, products, inventory, transactions := testChain()
	svc := NewTransactionService(transactions, users, products, inventory)

	dealer, err := users.FindByID(context.Background(), 5)
	require.NoError(t, err)

	_, err = svc.Execute(context.Background(), dealer, nil, 1, 1)
	assert.ErrorIs(t, err, ErrMissingBuyer)
}

func TestTransactionService_Execute_FarmerWithoutUpline(t *testing.T) {
	users, products, inventory, transactions := testChain()
	svc := NewTransactionService(transactions, users, products, inventory)

	orphan := domain.User{ID: 99, Code: "FAR9901", Role: domain.RoleFarmer}

	_, err := svc.Execute(context.Background(), orphan, nil, 1, 1)
	assert.ErrorIs(t, err, ErrNoUpline)
}

func TestTransactionService_Execute_InsufficientStock(t *testing.T) {
	users, products, inventory, transactions := testChain()
	inventory.set(5, 1, 3)

	svc := NewTransactionService(transactions, users, products, inventory)

	farmer, err := users.FindByID(context.Background(), 6)
	require.NoError(t, err)

	_, err = svc.Execute(context.Background(), farmer, nil, 1, 5)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 3, inventory.stock[stockKey{5, 1}])
	assert.Empty(t, transactions.created)
}

func TestTransactionService_Execute_UnknownProduct(t *testing.T) {
	users, products, inventory, transactions := testChain()
	inventory.set(5, 1, 20)

	svc := NewTransactionService(transactions, users, products, inventory)

	farmer, err := users.FindByID(context.Background(), 6)
	require.NoError(t, err)

	_, err = svc.Execute(context.Background(), farmer, nil, 42, 1)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestTransactionService_Execute_UnknownBuyer(t *testing.T) {
	users, products, inventory, transactions := testChain()
	inventory.set(5, 1, 20)

	svc := NewTransactionService(transactions, users, products, inventory)

	dealer, err := users.FindByID(context.Background(), 5)
	require.NoError(t, err)

	_, err = svc.Execute(context.Background(), dealer, uintPtr(404), 1, 1)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestTransactionService_Execute_AdminCannotBuy(t *testing.T) {
	users, products, inventory, transactions := testChain()
	inventory.set(5, 1, 20)

	svc := NewTransactionService(transactions, users, products, inventory)

	dealer, err := users.FindByID(context.Background(), 5)
	require.NoError(t, err)

	_, err = svc.Execute(context.Background(), dealer, uintPtr(1), 1, 1)
	assert.ErrorIs(t, err, ErrInvalidBuyerRole)
}

func TestTransactionService_Execute_LostRaceSurfacesConflict(t *testing.T) {
	users, products, inventory, transactions := testChain()
	inventory.set(5, 1, 20)
	transactions.failWith = ErrStockConflict

	svc := NewTransactionService(transactions, users, products, inventory)

	farmer, err := users.FindByID(context.Background(), 6)
	require.NoError(t, err)

	_, err = svc.Execute(context.Background(), farmer, nil, 1, 5)
	assert.ErrorIs(t, err, ErrStockConflict)
}

func TestTransactionService_Execute_NegativeProfitAllowed(t *testing.T) {
	users := newFakeUserRepo(
		domain.User{ID: 5, Code: "DEA5001", Role: domain.RoleDealer},
		domain.User{ID: 6, Code: "FAR6001", Role: domain.RoleFarmer, UplineID: uintPtr(5)},
	)
	// Mispriced: the farmer tier is cheaper than the dealer tier.
	products := newFakeProductRepo(domain.Product{ID: 1, DealerPrice: 8, FarmerPrice: 7})
	inventory := newFakeInventoryRepo()
	inventory.set(5, 1, 10)

	svc := NewTransactionService(newFakeTransactionRepo(inventory), users, products, inventory)

	farmer, err := users.FindByID(context.Background(), 6)
	require.NoError(t, err)

	got, err := svc.Execute(context.Background(), farmer, nil, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, -2.0, got.Profit)
}

func TestTransactionService_GetTransactions(t *testing.T) {
	users, products, inventory, transactions := testChain()
	inventory.set(5, 1, 20)
	inventory.set(1, 1, 100)

	svc := NewTransactionService(transactions, users, products, inventory)

	farmer, err := users.FindByID(context.Background(), 6)
	require.NoError(t, err)
	franchise, err := users.FindByID(context.Background(), 2)
	require.NoError(t, err)

	_, err = svc.Execute(context.Background(), farmer, nil, 1, 5)
	require.NoError(t, err)
	_, err = svc.Execute(context.Background(), franchise, uintPtr(3), 1, 10)
	require.NoError(t, err)

	got, err := svc.GetTransactions(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(6), got[0].BuyerID)

	got, err = svc.GetTransactions(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}
