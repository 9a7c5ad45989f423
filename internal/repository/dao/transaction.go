package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStockConflict reports a lost race on the stock holder's record: the
// conditional decrement matched no row even though a pre-check saw enough
// stock. Nothing is persisted when it is returned.
var ErrStockConflict = errors.New("stock transfer conflict")

type Transaction struct {
	ID            uint    `gorm:"primaryKey"`
	SellerID      uint    `gorm:"not null;index"`
	BuyerID       uint    `gorm:"not null;index"`
	ProductID     uint    `gorm:"not null"`
	Quantity      int     `gorm:"not null"`
	PurchasePrice float64 `gorm:"not null"`
	TotalAmount   float64 `gorm:"not null"`
	Profit        float64 `gorm:"not null"`
	CreatedAt     time.Time
}

type SellerProfit struct {
	SellerID uint
	Total    float64
}

type TransactionDAO struct {
	db *gorm.DB
}

func NewTransactionDAO(db *gorm.DB) *TransactionDAO {
	return &TransactionDAO{
		db: db,
	}
}

func onInventoryConflictAdd() clause.OnConflict {
	return clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("inventory_records.quantity + excluded.quantity"),
		}),
	}
}

// InsertWithStockTransfer commits one sale as a single unit: the stock
// holder's record is conditionally decremented, the buyer's record is created
// or incremented, and the transaction row is inserted. The decrement only
// matches a row that still has enough stock, so concurrent sales against the
// same holder/product pair serialise on the row lock and the loser rolls back
// with ErrStockConflict.
func (d *TransactionDAO) InsertWithStockTransfer(ctx context.Context, stockHolderID uint, transaction Transaction) (Transaction, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&InventoryRecord{}).
			Where("user_id = ? AND product_id = ? AND quantity >= ?",
				stockHolderID, transaction.ProductID, transaction.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", transaction.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStockConflict
		}

		credit := InventoryRecord{
			UserID:    transaction.BuyerID,
			ProductID: transaction.ProductID,
			Quantity:  transaction.Quantity,
		}
		if err := tx.Clauses(onInventoryConflictAdd()).Create(&credit).Error; err != nil {
			return err
		}

		return tx.Create(&transaction).Error
	})
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}

// FindByParticipant lists transactions where the user appears as seller or
// buyer, newest first.
func (d *TransactionDAO) FindByParticipant(ctx context.Context, userID uint) ([]Transaction, error) {
	var transactions []Transaction

	result := d.db.WithContext(ctx).
		Where("seller_id = ? OR buyer_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&transactions)
	if result.Error != nil {
		return nil, result.Error
	}

	return transactions, nil
}

func (d *TransactionDAO) SumProfitBySeller(ctx context.Context, sellerID uint) (float64, error) {
	var total float64

	result := d.db.WithContext(ctx).Model(&Transaction{}).
		Where("seller_id = ?", sellerID).
		Select("COALESCE(SUM(profit), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}

// ProfitTotals aggregates profit per seller across the whole ledger, used by
// the pending-payout report to avoid one query per user.
func (d *TransactionDAO) ProfitTotals(ctx context.Context) ([]SellerProfit, error) {
	var totals []SellerProfit

	result := d.db.WithContext(ctx).Model(&Transaction{}).
		Select("seller_id, COALESCE(SUM(profit), 0) AS total").
		Group("seller_id").
		Scan(&totals)
	if result.Error != nil {
		return nil, result.Error
	}

	return totals, nil
}
