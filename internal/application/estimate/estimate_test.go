package estimate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/takeoff-go/internal/adapters/planextract"
	"github.com/andrescamacho/takeoff-go/internal/application/estimate"
	"github.com/andrescamacho/takeoff-go/internal/application/mediator"
	"github.com/andrescamacho/takeoff-go/internal/domain/concrete"
	"github.com/andrescamacho/takeoff-go/internal/domain/masonry"
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
	"github.com/andrescamacho/takeoff-go/test/helpers"
)

func setup(t *testing.T, extractor estimate.PlanExtractor) (mediator.Mediator, *helpers.TestRepositories) {
	t.Helper()
	repos := helpers.NewSeededRepositories(t)

	m := mediator.NewMediator()
	require.NoError(t, estimate.RegisterHandlers(m, estimate.Dependencies{
		CatalogRepo:  repos.CatalogRepo,
		RegionRepo:   repos.RegionRepo,
		OverrideRepo: repos.OverrideRepo,
		QuoteRepo:    repos.QuoteRepo,
		Extractor:    extractor,
	}))
	return m, repos
}

func slabState() quote.State {
	return quote.State{
		Title: "Ground slab",
		Concrete: []concrete.Row{
			{Name: "Slab", ElementType: concrete.TypeSlab, Length: "5", Width: "4", Height: "0.15", Mix: "1:2:4"},
		},
		Settings: quote.DefaultSettings(),
	}
}

func recompute(t *testing.T, m mediator.Mediator, q *estimate.RecomputeQuoteQuery) quote.Result {
	t.Helper()
	resp, err := m.Send(context.Background(), q)
	require.NoError(t, err)
	return resp.(*estimate.RecomputeQuoteResponse).Result
}

func TestRecomputeQuote_PricesFromCatalog(t *testing.T) {
	// Arrange
	m, _ := setup(t, nil)

	// Act
	r := recompute(t, m, &estimate.RecomputeQuoteQuery{State: slabState()})

	// Assert
	require.Len(t, r.Concrete.Rows, 1)
	row := r.Concrete.Rows[0]
	assert.InDelta(t, row.GrossCementBags*750, row.CementCost, 1e-6)
	assert.InDelta(t, row.GrossWaterM3*150, row.WaterCost, 1e-6)
	assert.Greater(t, r.Summary.TotalAmount, 0.0)
	assert.NotContains(t, r.UnresolvedPrices, concrete.CementLookup)
}

func TestRecomputeQuote_AppliesRegionMultiplier(t *testing.T) {
	// Arrange
	m, repos := setup(t, nil)
	require.NoError(t, repos.RegionRepo.Save(context.Background(), &pricing.Region{Code: "MSA", Name: "Mombasa", Multiplier: 1.2}))

	// Act
	r := recompute(t, m, &estimate.RecomputeQuoteQuery{State: slabState(), Region: "MSA"})

	// Assert
	row := r.Concrete.Rows[0]
	assert.InDelta(t, row.GrossCementBags*750*1.2, row.CementCost, 1e-6)
}

func TestRecomputeQuote_UnknownRegionFallsBackToBasePrices(t *testing.T) {
	m, _ := setup(t, nil)

	r := recompute(t, m, &estimate.RecomputeQuoteQuery{State: slabState(), Region: "ATLANTIS"})

	row := r.Concrete.Rows[0]
	assert.InDelta(t, row.GrossCementBags*750, row.CementCost, 1e-6)
}

func TestRecomputeQuote_UserOverrideWinsOverCatalog(t *testing.T) {
	// Arrange
	m, _ := setup(t, nil)
	_, err := m.Send(context.Background(), &estimate.SetPriceOverrideCommand{
		Override: pricing.Override{Category: pricing.CategoryCement, Name: "Cement", Price: 900},
	})
	require.NoError(t, err)

	// Act
	r := recompute(t, m, &estimate.RecomputeQuoteQuery{State: slabState()})

	// Assert
	row := r.Concrete.Rows[0]
	assert.InDelta(t, row.GrossCementBags*900, row.CementCost, 1e-6)
}

func TestRecomputeQuote_RejectsUnknownFinancialMode(t *testing.T) {
	m, _ := setup(t, nil)
	state := slabState()
	state.Settings.Financial.Overhead.Mode = "lump"

	_, err := m.Send(context.Background(), &estimate.RecomputeQuoteQuery{State: state})

	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "overhead", verr.Field)
}

func TestRecomputeQuote_RejectsExtraItemWithoutDescription(t *testing.T) {
	m, _ := setup(t, nil)
	state := slabState()
	state.ExtraItems = []quote.ExtraItem{{Quantity: 1, Rate: 100}}

	_, err := m.Send(context.Background(), &estimate.RecomputeQuoteQuery{State: state})

	var verr *shared.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSaveQuote_AssignsIDsAndPersists(t *testing.T) {
	// Arrange
	m, repos := setup(t, nil)
	state := slabState()

	// Act
	resp, err := m.Send(context.Background(), &estimate.SaveQuoteCommand{State: state})

	// Assert
	require.NoError(t, err)
	record := resp.(*estimate.SaveQuoteResponse).Record
	assert.NotEmpty(t, record.ID)
	assert.NotEmpty(t, record.State.Concrete[0].ID)
	assert.Empty(t, state.Concrete[0].ID, "caller's rows are left untouched")

	stored, err := repos.QuoteRepo.FindByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Result.Summary.TotalAmount, stored.Result.Summary.TotalAmount)
}

func TestQuoteStore_ListAndDelete(t *testing.T) {
	// Arrange
	m, _ := setup(t, nil)
	ctx := context.Background()
	resp, err := m.Send(ctx, &estimate.SaveQuoteCommand{State: slabState()})
	require.NoError(t, err)
	id := resp.(*estimate.SaveQuoteResponse).Record.ID

	// Act
	listed, err := m.Send(ctx, &estimate.ListQuotesQuery{})
	require.NoError(t, err)
	_, delErr := m.Send(ctx, &estimate.DeleteQuoteCommand{ID: id})
	_, getErr := m.Send(ctx, &estimate.GetQuoteQuery{ID: id})

	// Assert
	assert.Len(t, listed.(*estimate.QuoteListResponse).Records, 1)
	assert.NoError(t, delErr)
	var notFound *shared.QuoteNotFoundError
	assert.True(t, errors.As(getErr, &notFound))
}

func TestImportMaterials_ValidatesEntries(t *testing.T) {
	m, _ := setup(t, nil)

	_, err := m.Send(context.Background(), &estimate.ImportMaterialsCommand{
		Entries: []pricing.Entry{{Name: "Granite", Category: "stone-ish", Price: 10}},
	})

	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)
}

func TestImportMaterials_ThenList(t *testing.T) {
	m, _ := setup(t, nil)
	ctx := context.Background()

	_, err := m.Send(ctx, &estimate.ImportMaterialsCommand{
		Entries: []pricing.Entry{{Name: "Cement", Unit: "bag", Category: pricing.CategoryCement, Price: 800}},
	})
	require.NoError(t, err)
	resp, err := m.Send(ctx, &estimate.ListMaterialsQuery{Category: pricing.CategoryCement})

	require.NoError(t, err)
	entries := resp.(*estimate.ListMaterialsResponse).Entries
	require.Len(t, entries, 1)
	assert.Equal(t, 800.0, entries[0].Price)
}

func TestImportPlan_ConvertsRoomsAndSlabs(t *testing.T) {
	// Arrange
	extractor := helpers.NewMockPlanExtractor(&planextract.Plan{
		Rooms: []planextract.Room{
			{Name: "Bedroom", Length: 4, Width: 3.5, Openings: []planextract.Opening{
				{Type: "door", Width: 0.9, Height: 2.1, Count: 1},
				{Type: "Window", Width: 1.2, Height: 1.2},
			}},
			{Name: "Void", Length: 0, Width: 2},
		},
		FloorThickness: 0.2,
	})
	m, _ := setup(t, extractor)

	// Act
	resp, err := m.Send(context.Background(), &estimate.ImportPlanCommand{FileName: "plan.pdf", Content: []byte("%PDF")})

	// Assert
	require.NoError(t, err)
	plan := resp.(*estimate.ImportPlanResponse)
	require.Len(t, plan.Rooms, 1)
	room := plan.Rooms[0]
	assert.Equal(t, "Bedroom", room.Name)
	assert.Equal(t, "3", room.Height)
	require.Len(t, room.Openings, 2)
	assert.Equal(t, masonry.OpeningWindow, room.Openings[1].Type)
	assert.Equal(t, "1", room.Openings[1].Count)

	require.Len(t, plan.Slabs, 1)
	assert.Equal(t, concrete.TypeSlab, plan.Slabs[0].ElementType)
	assert.Equal(t, "0.2", plan.Slabs[0].Height)
	assert.Equal(t, "1:2:4", plan.Slabs[0].Mix)
	assert.Equal(t, []string{"plan.pdf"}, extractor.GetExtractCalls())
}

func TestImportPlan_PropagatesExtractionFailure(t *testing.T) {
	extractor := helpers.NewMockPlanExtractor(nil)
	extractor.SetError(planextract.ErrCircuitOpen)
	m, _ := setup(t, extractor)

	_, err := m.Send(context.Background(), &estimate.ImportPlanCommand{FileName: "plan.png", Content: []byte{1}})

	assert.ErrorIs(t, err, planextract.ErrCircuitOpen)
}

func TestImportPlan_NotRegisteredWithoutExtractor(t *testing.T) {
	m, _ := setup(t, nil)

	_, err := m.Send(context.Background(), &estimate.ImportPlanCommand{FileName: "plan.png", Content: []byte{1}})

	assert.Error(t, err)
}
