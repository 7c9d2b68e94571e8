package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/takeoff-go/internal/adapters/persistence"
	"github.com/andrescamacho/takeoff-go/internal/domain/concrete"
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
	"github.com/andrescamacho/takeoff-go/test/helpers"
)

func TestQuoteRepository_SaveAndFindRoundTrips(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormQuoteRepository(db)
	ctx := context.Background()

	state := quote.State{
		ID:    "q-1",
		Title: "Garage slab",
		Concrete: []concrete.Row{
			{ID: "c1", Name: "Slab", ElementType: concrete.TypeSlab, Length: "5", Width: "4", Height: "0.15"},
		},
		Settings: quote.DefaultSettings(),
	}
	result := quote.Recompute(state, pricing.NewCatalog(helpers.StandardCatalog()...))
	record := &quote.Record{ID: state.ID, Title: state.Title, State: state, Result: result}

	// Act
	require.NoError(t, repo.Save(ctx, record))
	found, err := repo.FindByID(ctx, "q-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Garage slab", found.Title)
	assert.Equal(t, state.Concrete, found.State.Concrete)
	assert.InDelta(t, result.Summary.TotalAmount, found.Result.Summary.TotalAmount, 1e-9)
	assert.Len(t, found.Result.Concrete.Rows, 1)
	assert.Equal(t, len(result.BOQ.Sections), len(found.Result.BOQ.Sections))
	assert.False(t, found.CreatedAt.IsZero())
}

func TestQuoteRepository_SaveKeepsCreatedAt(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormQuoteRepository(db)
	ctx := context.Background()

	record := &quote.Record{ID: "q-2", Title: "First"}
	require.NoError(t, repo.Save(ctx, record))
	created := record.CreatedAt

	record.Title = "Renamed"
	require.NoError(t, repo.Save(ctx, record))

	found, err := repo.FindByID(ctx, "q-2")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", found.Title)
	assert.True(t, found.CreatedAt.Equal(created))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestQuoteRepository_NotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormQuoteRepository(db)

	_, err := repo.FindByID(context.Background(), "missing")
	var notFound *shared.QuoteNotFoundError
	assert.ErrorAs(t, err, &notFound)

	assert.Error(t, repo.Delete(context.Background(), "missing"))
}
