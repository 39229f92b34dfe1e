package testutil

import (
	"driveschool_backend/internal/model"
	"driveschool_backend/pkg/database"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory database with the full schema and
// reference seed data. Each call gets its own database, so tests stay
// independent.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", model.GenerateUUID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Keep the shared in-memory database alive for the whole test. A
	// single connection also serialises writers, which shared-cache
	// sqlite needs when tests submit from multiple goroutines.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxIdleTime(0)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CategoryID looks up a seeded category by code.
func CategoryID(t *testing.T, db *gorm.DB, code string) uint {
	t.Helper()

	var category model.TheoryCategory
	if err := db.Where("code = ?", code).First(&category).Error; err != nil {
		t.Fatalf("seeded category %q missing: %v", code, err)
	}
	return category.ID
}
