package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrInsufficientStock = errors.New("insufficient stock")

type InventoryRecord struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"not null;uniqueIndex:idx_inventory_user_product"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_inventory_user_product"`
	Product   Product `gorm:"foreignKey:ProductID"`
	Quantity  int     `gorm:"not null;default:0"`
}

type InventoryDAO struct {
	db *gorm.DB
}

func NewInventoryDAO(db *gorm.DB) *InventoryDAO {
	return &InventoryDAO{
		db: db,
	}
}

// FindByUserAndProduct returns the holder's record for one product.
// A missing record reads as zero stock, reported via ErrInsufficientStock's
// caller-side handling of gorm.ErrRecordNotFound.
func (d *InventoryDAO) FindByUserAndProduct(ctx context.Context, userID, productID uint) (InventoryRecord, error) {
	var record InventoryRecord

	result := d.db.WithContext(ctx).
		First(&record, "user_id = ? AND product_id = ?", userID, productID)
	if result.Error != nil {
		return InventoryRecord{}, result.Error
	}

	return record, nil
}

// FindByUser lists a user's in-stock records with products attached,
// ordered by product name.
func (d *InventoryDAO) FindByUser(ctx context.Context, userID uint) ([]InventoryRecord, error) {
	var records []InventoryRecord

	result := d.db.WithContext(ctx).
		Preload("Product").
		Joins("JOIN products ON products.id = inventory_records.product_id").
		Where("inventory_records.user_id = ? AND inventory_records.quantity > 0", userID).
		Order("products.name ASC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

// Upsert seeds or tops up a user's stock outside the sale path (initial
// provisioning by Admin).
func (d *InventoryDAO) Upsert(ctx context.Context, userID, productID uint, quantity int) (InventoryRecord, error) {
	record := InventoryRecord{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}

	err := d.db.WithContext(ctx).
		Clauses(onInventoryConflictAdd()).
		Create(&record).Error
	if err != nil {
		return InventoryRecord{}, err
	}

	return d.FindByUserAndProduct(ctx, userID, productID)
}
