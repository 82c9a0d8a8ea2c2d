// Package testutil builds throwaway databases for package tests.
package testutil

import (
	"testing"

	"art-showcase/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite::memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// UseDB points the package-level database.DB at a fresh test database for the
// duration of t.
func UseDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := NewDB(t)
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func init() {
	gin.SetMode(gin.TestMode)
}
