package database

import (
	"fmt"
	"log"

	"distrisync/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens the embedded SQLite store at the given path (or DSN) and
// migrates the schema. The store is the offline source of truth, so unlike a
// server database it is never dropped and recreated here.
func Initialize(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate local database: %w", err)
	}

	log.Println("Local database opened and migrated successfully")
	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Client{},
		&models.Order{},
		&models.Product{},
		&models.PriceList{},
		&models.PriceListItem{},
		&models.Draft{},
		&models.Meta{},
	)
}
