package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/TheWaulicus/wolves-den-inventory/models"
)

// Connect opens the Postgres backend and runs migrations.
func Connect(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.GearType{},
		&models.GearItem{},
		&models.Borrower{},
		&models.Transaction{},
		&models.TransactionArchive{},
	); err != nil {
		return err
	}

	// At most one open transaction per gear item.
	if err := conn.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_open_per_item
	  ON %s (gear_item_id)
	  WHERE status IN ('active', 'overdue');
	`, models.TransactionTable, models.TransactionTable)).Error; err != nil {
		return err
	}

	// Open-loan lookups by borrower.
	if err := conn.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open_by_borrower
	  ON %s (borrower_id, checkout_date DESC)
	  WHERE status IN ('active', 'overdue');
	`, models.TransactionTable, models.TransactionTable)).Error; err != nil {
		return err
	}

	return nil
}
