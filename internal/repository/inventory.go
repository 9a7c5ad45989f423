package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/agrolink/distribution-api/internal/domain"
	"github.com/agrolink/distribution-api/internal/repository/dao"
)

var ErrInsufficientStock = dao.ErrInsufficientStock

type InventoryDAO interface {
	FindByUserAndProduct(ctx context.Context, userID, productID uint) (dao.InventoryRecord, error)
	FindByUser(ctx context.Context, userID uint) ([]dao.InventoryRecord, error)
	Upsert(ctx context.Context, userID, productID uint, quantity int) (dao.InventoryRecord, error)
}

type InventoryRepository struct {
	dao InventoryDAO
}

func NewInventoryRepository(dao InventoryDAO) *InventoryRepository {
	return &InventoryRepository{
		dao: dao,
	}
}

// FindQuantity reports how much of a product a user holds. A missing record
// is zero stock, not an error.
func (r *InventoryRepository) FindQuantity(ctx context.Context, userID, productID uint) (int, error) {
	record, err := r.dao.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, fmt.Errorf("r.dao.FindByUserAndProduct -> %w", err)
	}

	return record.Quantity, nil
}

func (r *InventoryRepository) FindByUser(ctx context.Context, userID uint) ([]domain.InventoryItem, error) {
	records, err := r.dao.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUser -> %w", err)
	}

	items := make([]domain.InventoryItem, len(records))
	for i, record := range records {
		items[i] = domain.InventoryItem{
			ProductID: record.ProductID,
			Quantity:  record.Quantity,
			Product:   productDaoToDomain(record.Product),
		}
	}

	return items, nil
}

func (r *InventoryRepository) AddStock(ctx context.Context, userID, productID uint, quantity int) (domain.InventoryRecord, error) {
	record, err := r.dao.Upsert(ctx, userID, productID, quantity)
	if err != nil {
		return domain.InventoryRecord{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return domain.InventoryRecord{
		ID:        record.ID,
		UserID:    record.UserID,
		ProductID: record.ProductID,
		Quantity:  record.Quantity,
	}, nil
}
