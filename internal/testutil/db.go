// Package testutil provides shared helpers for database-backed tests.
// Tests run against an in-memory sqlite database so they need no external
// services.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sitecraft/estimate-api/internal/database"
)

// SetupTestDB opens a fresh in-memory database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory database")

	require.NoError(t, database.AutoMigrate(db), "failed to migrate schema")

	return db
}
