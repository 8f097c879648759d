package database

import (
	"fmt"
	"log"

	"requisition/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDSN builds the DSN of a named, shared in-memory SQLite database.
// The data lives only as long as the process keeps a connection open.
func MemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}

// NewConnection opens the in-memory database using GORM
func NewConnection(dsn string, debug bool) (*gorm.DB, error) {
	logMode := logger.Silent
	if debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	// A single connection keeps the in-memory database alive and serialises access.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.Requisition{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return db, nil
}
