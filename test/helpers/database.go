package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/takeoff-go/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory database that is closed when the test ends
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() {
		database.Close(db)
	})

	return db
}

// NewSeededRepositories returns repositories over a fresh database holding StandardCatalog
func NewSeededRepositories(t testing.TB) *TestRepositories {
	t.Helper()

	repos := NewTestRepositories(NewTestDB(t))
	require.NoError(t, repos.CatalogRepo.UpsertEntries(context.Background(), StandardCatalog()))
	return repos
}
