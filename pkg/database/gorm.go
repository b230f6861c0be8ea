package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"vpp-configurator/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func getLogger(verbose bool) logger.Interface {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true, // document bodies stay out of the SQL log
			Colorful:                  true,
		},
	)
}

func configureConnectionPool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

// NewGormDBFromDSN opens the Postgres document store. verbose logs every statement.
func NewGormDBFromDSN(dsn string, verbose bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: getLogger(verbose),
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the catalog_documents table and its indexes
func Migrate(db *gorm.DB) error {
	// gen_random_uuid() backs the primary key default
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to enable pgcrypto: %v. Continuing...", err)
	}

	if err := db.AutoMigrate(&model.CatalogDocument{}); err != nil {
		return fmt.Errorf("automigrate catalog documents: %w", err)
	}

	// GIN index so DataHasKey / DataFieldEquals specifications stay cheap
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_catalog_documents_data ON catalog_documents USING GIN (data);`).Error; err != nil {
		return fmt.Errorf("create data index: %w", err)
	}
	return nil
}
