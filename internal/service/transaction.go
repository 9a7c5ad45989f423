package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agrolink/distribution-api/internal/domain"
	"github.com/agrolink/distribution-api/internal/repository"
)

var (
	ErrMissingBuyer       = errors.New("buyer is required")
	ErrNoUpline           = errors.New("user has no assigned upline")
	ErrNoAdminAccount     = repository.ErrAdminNotFound
	ErrInvalidReference   = errors.New("seller, buyer or product not found")
	ErrInvalidBuyerRole   = errors.New("role cannot purchase products")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInsufficientStock  = repository.ErrInsufficientStock
	ErrStockConflict      = repository.ErrStockConflict
)

type TransactionRepository interface {
	CreateWithStockTransfer(ctx context.Context, stockHolderID uint, transaction domain.Transaction) (domain.Transaction, error)
	FindByParticipant(ctx context.Context, userID uint) ([]domain.Transaction, error)
	SumProfitBySeller(ctx context.Context, sellerID uint) (float64, error)
	ProfitTotals(ctx context.Context) (map[uint]float64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id uint) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id uint) error
}

type InventoryRepository interface {
	FindQuantity(ctx context.Context, userID, productID uint) (int, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.InventoryItem, error)
	AddStock(ctx context.Context, userID, productID uint, quantity int) (domain.InventoryRecord, error)
}

type TransactionService struct {
	repo          TransactionRepository
	userRepo      UserRepository
	productRepo   ProductRepository
	inventoryRepo InventoryRepository
}

func NewTransactionService(repo TransactionRepository, userRepo UserRepository, productRepo ProductRepository, inventoryRepo InventoryRepository) *TransactionService {
	return &TransactionService{
		repo:          repo,
		userRepo:      userRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// parties identifies the three accounts involved in a sale before any stock
// moves. The stock holder is whose inventory is debited; it can differ from
// the seller of record.
type parties struct {
	SellerID      uint
	BuyerID       uint
	StockHolderID uint
}

// resolveParties applies the role policy of the acting user:
//
//   - A Farmer always buys from their assigned upline; they never pick a
//     seller themselves.
//   - A Franchise is kept as seller of record for profit attribution, but the
//     physical stock is warehoused centrally and debited from the Admin
//     account.
//   - Every other seller ships from their own inventory.
func (s *TransactionService) resolveParties(ctx context.Context, actingUser domain.User, buyerID *uint) (parties, error) {
	if actingUser.Role == domain.RoleFarmer {
		if actingUser.UplineID == nil {
			return parties{}, ErrNoUpline
		}
		return parties{
			SellerID:      *actingUser.UplineID,
			BuyerID:       actingUser.ID,
			StockHolderID: *actingUser.UplineID,
		}, nil
	}

	if buyerID == nil {
		return parties{}, ErrMissingBuyer
	}

	p := parties{
		SellerID:      actingUser.ID,
		BuyerID:       *buyerID,
		StockHolderID: actingUser.ID,
	}

	if actingUser.Role == domain.RoleFranchise {
		admin, err := s.userRepo.FindAdmin(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrAdminNotFound) {
				return parties{}, ErrNoAdminAccount
			}
			return parties{}, fmt.Errorf("s.userRepo.FindAdmin -> %w", err)
		}
		p.StockHolderID = admin.ID
	}

	return p, nil
}

// Execute runs one sale end to end: resolve the parties, load and validate
// everything read-only, price the sale by the buyer's and seller's tiers, and
// commit the stock movement plus ledger row atomically. Validation runs
// outside any lock; only the final commit serialises on the stock holder's
// inventory row.
func (s *TransactionService) Execute(ctx context.Context, actingUser domain.User, buyerID *uint, productID uint, quantity int) (domain.Transaction, error) {
	p, err := s.resolveParties(ctx, actingUser, buyerID)
	if err != nil {
		return domain.Transaction{}, err
	}

	var (
		seller  domain.User
		buyer   domain.User
		product domain.Product
		held    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		seller, err = s.userRepo.FindByID(gctx, p.SellerID)
		return err
	})
	g.Go(func() error {
		var err error
		buyer, err = s.userRepo.FindByID(gctx, p.BuyerID)
		return err
	})
	g.Go(func() error {
		var err error
		product, err = s.productRepo.FindByID(gctx, productID)
		return err
	})
	g.Go(func() error {
		var err error
		held, err = s.inventoryRepo.FindQuantity(gctx, p.StockHolderID, productID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrProductNotFound) {
			return domain.Transaction{}, ErrInvalidReference
		}
		return domain.Transaction{}, fmt.Errorf("transaction load phase -> %w", err)
	}

	if held < quantity {
		return domain.Transaction{}, ErrInsufficientStock
	}

	purchasePrice, ok := product.TierPrice(buyer.Role)
	if !ok {
		return domain.Transaction{}, ErrInvalidBuyerRole
	}
	costPrice := product.CostPrice(seller.Role)

	transaction := domain.Transaction{
		SellerID:      p.SellerID,
		BuyerID:       p.BuyerID,
		ProductID:     productID,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		TotalAmount:   purchasePrice * float64(quantity),
		Profit:        (purchasePrice - costPrice) * float64(quantity),
	}

	if !transaction.IsValid() {
		return domain.Transaction{}, ErrInvalidTransaction
	}

	if transaction.Profit < 0 {
		// Mispriced tiers are allowed through as a loss-making sale.
		zap.L().Warn("negative profit on sale",
			zap.Uint("seller_id", p.SellerID),
			zap.Uint("product_id", productID),
			zap.Float64("profit", transaction.Profit))
	}

	created, err := s.repo.CreateWithStockTransfer(ctx, p.StockHolderID, transaction)
	if err != nil {
		if errors.Is(err, repository.ErrStockConflict) {
			return domain.Transaction{}, ErrStockConflict
		}
		return domain.Transaction{}, fmt.Errorf("s.repo.CreateWithStockTransfer -> %w", err)
	}

	return created, nil
}

func (s *TransactionService) GetTransactions(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	transactions, err := s.repo.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByParticipant -> %w", err)
	}

	return transactions, nil
}
