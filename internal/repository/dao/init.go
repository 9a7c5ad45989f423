package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Product{},
		&InventoryRecord{},
		&Transaction{},
		&Payout{},
	)
	if err != nil {
		return err
	}

	// Public user codes compare case-insensitively, so uniqueness has to hold
	// on the lowercased value as well.
	return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_users_code_lower ON users (LOWER(code))").Error
}
