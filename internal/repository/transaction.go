package repository

import (
	"context"
	"fmt"

	"github.com/agrolink/distribution-api/internal/domain"
	"github.com/agrolink/distribution-api/internal/repository/dao"
)

var ErrStockConflict = dao.ErrStockConflict

type TransactionDAO interface {
	InsertWithStockTransfer(ctx context.Context, stockHolderID uint, transaction dao.Transaction) (dao.Transaction, error)
	FindByParticipant(ctx context.Context, userID uint) ([]dao.Transaction, error)
	SumProfitBySeller(ctx context.Context, sellerID uint) (float64, error)
	ProfitTotals(ctx context.Context) ([]dao.SellerProfit, error)
}

type TransactionRepository struct {
	dao TransactionDAO
}

func NewTransactionRepository(dao TransactionDAO) *TransactionRepository {
	return &TransactionRepository{
		dao: dao,
	}
}

func transactionDaoToDomain(t dao.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:            t.ID,
		SellerID:      t.SellerID,
		BuyerID:       t.BuyerID,
		ProductID:     t.ProductID,
		Quantity:      t.Quantity,
		PurchasePrice: t.PurchasePrice,
		TotalAmount:   t.TotalAmount,
		Profit:        t.Profit,
		CreatedAt:     t.CreatedAt,
	}
}

// CreateWithStockTransfer persists the sale and moves stock from the holder
// to the buyer as one atomic unit.
func (r *TransactionRepository) CreateWithStockTransfer(ctx context.Context, stockHolderID uint, transaction domain.Transaction) (domain.Transaction, error) {
	created, err := r.dao.InsertWithStockTransfer(ctx, stockHolderID, dao.Transaction{
		SellerID:      transaction.SellerID,
		BuyerID:       transaction.BuyerID,
		ProductID:     transaction.ProductID,
		Quantity:      transaction.Quantity,
		PurchasePrice: transaction.PurchasePrice,
		TotalAmount:   transaction.TotalAmount,
		Profit:        transaction.Profit,
	})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("r.dao.InsertWithStockTransfer -> %w", err)
	}

	return transactionDaoToDomain(created), nil
}

func (r *TransactionRepository) FindByParticipant(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	found, err := r.dao.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByParticipant -> %w", err)
	}

	transactions := make([]domain.Transaction, len(found))
	for i, t := range found {
		transactions[i] = transactionDaoToDomain(t)
	}

	return transactions, nil
}

func (r *TransactionRepository) SumProfitBySeller(ctx context.Context, sellerID uint) (float64, error) {
	total, err := r.dao.SumProfitBySeller(ctx, sellerID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumProfitBySeller -> %w", err)
	}

	return total, nil
}

// ProfitTotals returns accumulated profit keyed by seller id.
func (r *TransactionRepository) ProfitTotals(ctx context.Context) (map[uint]float64, error) {
	totals, err := r.dao.ProfitTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ProfitTotals -> %w", err)
	}

	result := make(map[uint]float64, len(totals))
	for _, t := range totals {
		result[t.SellerID] = t.Total
	}

	return result, nil
}
