package service

import (
	"context"
	"strings"

	"github.com/agrolink/distribution-api/internal/domain"
	"github.com/agrolink/distribution-api/internal/repository"
)

type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Code, user.Code) {
			return domain.User{}, repository.ErrUserCodeExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByCode(_ context.Context, code string) (domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Code, code) {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var users []domain.User
	for _, u := range r.users {
		if u.Role == role {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) FindByRoles(_ context.Context, roles []domain.Role) ([]domain.User, error) {
	var users []domain.User
	for _, u := range r.users {
		for _, role := range roles {
			if u.Role == role {
				users = append(users, u)
				break
			}
		}
	}
	return users, nil
}

func (r *fakeUserRepo) FindAdmin(_ context.Context) (domain.User, error) {
	for _, u := range r.users {
		if u.Role == domain.RoleAdmin {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrAdminNotFound
}

func (r *fakeUserRepo) FindDownline(_ context.Context, uplineID uint) ([]domain.User, error) {
	var users []domain.User
	for _, u := range r.users {
		if u.UplineID != nil && *u.UplineID == uplineID {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

type fakeProductRepo struct {
	products map[uint]domain.Product
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uint]domain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, product domain.Product) (domain.Product, error) {
	product.ID = uint(len(r.products) + 1)
	r.products[product.ID] = product
	return product, nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uint) (domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return domain.Product{}, repository.ErrProductNotFound
	}
	return product, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	return products, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product domain.Product) (domain.Product, error) {
	if _, ok := r.products[product.ID]; !ok {
		return domain.Product{}, repository.ErrProductNotFound
	}
	r.products[product.ID] = product
	return product, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

type stockKey struct {
	UserID    uint
	ProductID uint
}

type fakeInventoryRepo struct {
	stock map[stockKey]int
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{stock: make(map[stockKey]int)}
}

func (r *fakeInventoryRepo) set(userID, productID uint, quantity int) {
	r.stock[stockKey{userID, productID}] = quantity
}

func (r *fakeInventoryRepo) FindQuantity(_ context.Context, userID, productID uint) (int, error) {
	return r.stock[stockKey{userID, productID}], nil
}

func (r *fakeInventoryRepo) FindByUser(_ context.Context, userID uint) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	for key, qty := range r.stock {
		if key.UserID == userID && qty > 0 {
			items = append(items, domain.InventoryItem{
				ProductID: key.ProductID,
				Quantity:  qty,
			})
		}
	}
	return items, nil
}

func (r *fakeInventoryRepo) AddStock(_ context.Context, userID, productID uint, quantity int) (domain.InventoryRecord, error) {
	key := stockKey{userID, productID}
	r.stock[key] += quantity
	return domain.InventoryRecord{
		UserID:    userID,
		ProductID: productID,
		Quantity:  r.stock[key],
	}, nil
}

type fakeTransactionRepo struct {
	inventory *fakeInventoryRepo
	created   []domain.Transaction
	failWith  error
}

func newFakeTransactionRepo(inventory *fakeInventoryRepo) *fakeTransactionRepo {
	return &fakeTransactionRepo{inventory: inventory}
}

func (r *fakeTransactionRepo) CreateWithStockTransfer(_ context.Context, stockHolderID uint, transaction domain.Transaction) (domain.Transaction, error) {
	if r.failWith != nil {
		return domain.Transaction{}, r.failWith
	}

	holder := stockKey{stockHolderID, transaction.ProductID}
	if r.inventory.stock[holder] < transaction.Quantity {
		return domain.Transaction{}, repository.ErrStockConflict
	}
	r.inventory.stock[holder] -= transaction.Quantity
	r.inventory.stock[stockKey{transaction.BuyerID, transaction.ProductID}] += transaction.Quantity

	transaction.ID = uint(len(r.created) + 1)
	r.created = append(r.created, transaction)
	return transaction, nil
}

func (r *fakeTransactionRepo) FindByParticipant(_ context.Context, userID uint) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for _, t := range r.created {
		if t.SellerID == userID || t.BuyerID == userID {
			transactions = append(transactions, t)
		}
	}
	return transactions, nil
}

func (r *fakeTransactionRepo) SumProfitBySeller(_ context.Context, sellerID uint) (float64, error) {
	var total float64
	for _, t := range r.created {
		if t.SellerID == sellerID {
			total += t.Profit
		}
	}
	return total, nil
}

func (r *fakeTransactionRepo) ProfitTotals(_ context.Context) (map[uint]float64, error) {
	totals := make(map[uint]float64)
	for _, t := range r.created {
		totals[t.SellerID] += t.Profit
	}
	return totals, nil
}

type fakePayoutRepo struct {
	payouts []domain.Payout
}

func (r *fakePayoutRepo) Create(_ context.Context, payout domain.Payout) (domain.Payout, error) {
	payout.ID = uint(len(r.payouts) + 1)
	r.payouts = append(r.payouts, payout)
	return payout, nil
}

func (r *fakePayoutRepo) SumAmountByUser(_ context.Context, userID uint) (float64, error) {
	var total float64
	for _, p := range r.payouts {
		if p.UserID == userID {
			total += p.Amount
		}
	}
	return total, nil
}

func (r *fakePayoutRepo) PaidTotals(_ context.Context) (map[uint]float64, error) {
	totals := make(map[uint]float64)
	for _, p := range r.payouts {
		totals[p.UserID] += p.Amount
	}
	return totals, nil
}
