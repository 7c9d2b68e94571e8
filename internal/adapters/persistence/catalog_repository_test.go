package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/takeoff-go/internal/adapters/persistence"
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
	"github.com/andrescamacho/takeoff-go/test/helpers"
)

func TestCatalogRepository_UpsertAndList(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCatalogRepository(db)
	ctx := context.Background()

	// Act
	err := repo.UpsertEntries(ctx, helpers.StandardCatalog())
	require.NoError(t, err)
	entries, err := repo.ListEntries(ctx, "")

	// Assert
	require.NoError(t, err)
	assert.Len(t, entries, len(helpers.StandardCatalog()))

	rebar, err := repo.ListEntries(ctx, pricing.CategoryRebar)
	require.NoError(t, err)
	require.Len(t, rebar, 1)
	assert.Equal(t, 120.0, rebar[0].PriceFor("Y12"))
	assert.Equal(t, 110.0, rebar[0].PriceFor("Y25"))
}

func TestCatalogRepository_UpsertReplacesPriceAndVariants(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCatalogRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.UpsertEntries(ctx, []pricing.Entry{
		{Name: "Cable", Unit: "m", Price: 100, Category: pricing.CategoryCable, Variants: map[string]float64{"1.5 mm²": 90, "2.5 mm²": 130}},
	}))

	// Act
	err := repo.UpsertEntries(ctx, []pricing.Entry{
		{Name: "Cable", Unit: "m", Price: 105, Category: pricing.CategoryCable, Variants: map[string]float64{"2.5 mm²": 135}},
	})

	// Assert
	require.NoError(t, err)
	entries, err := repo.ListEntries(ctx, pricing.CategoryCable)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 105.0, entries[0].Price)
	assert.Equal(t, map[string]float64{"2.5 mm²": 135}, entries[0].Variants)
}

func TestRegionRepository_SaveAndFind(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormRegionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &pricing.Region{Code: "MSA", Name: "Mombasa", Multiplier: 1.1}))
	region, err := repo.FindByCode(ctx, "MSA")

	require.NoError(t, err)
	assert.Equal(t, 1.1, region.Multiplier)

	_, err = repo.FindByCode(ctx, "XXX")
	var notFound *shared.RegionNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestOverrideRepository_SaveReplacesSameKey(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormOverrideRepository(db)
	ctx := context.Background()

	// Act
	require.NoError(t, repo.SaveOverride(ctx, "user-1", pricing.Override{Category: pricing.CategoryCement, Name: "Cement", Price: 800}))
	require.NoError(t, repo.SaveOverride(ctx, "user-1", pricing.Override{Category: pricing.CategoryCement, Name: "Cement", Price: 820}))
	require.NoError(t, repo.SaveOverride(ctx, "user-2", pricing.Override{Category: pricing.CategoryCement, Name: "Cement", Price: 700}))

	// Assert
	overrides, err := repo.ListOverrides(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, 820.0, overrides[0].Price)
}
