// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"cabinet/internal/config"
	"cabinet/internal/db"
)

// Open returns a migrated sqlite database in a temporary directory that is
// closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	return OpenWith(t, config.DatabaseConfig{})
}

// OpenWith is Open with pool settings taken from cfg. The URL is always
// replaced with a fresh temporary file.
func OpenWith(t testing.TB, cfg config.DatabaseConfig) *gorm.DB {
	t.Helper()
	cfg.URL = filepath.Join(t.TempDir(), "cabinet.db")
	database, err := db.Initialize(cfg)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})
	if err := db.AutoMigrate(database); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return database
}
