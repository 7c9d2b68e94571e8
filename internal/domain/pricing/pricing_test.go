package pricing_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
)

func catalogEntries() []pricing.Entry {
	return []pricing.Entry{
		{Name: "Cement", Unit: "bag", Price: 750, Category: pricing.CategoryCement},
		{Name: "Twin & Earth", Unit: "m", Price: 100, Category: pricing.CategoryCable,
			Variants: map[string]float64{"1.5 mm²": 90, "2.5 mm²": 120}},
		{Name: "Socket", Unit: "pcs", Price: 300, Category: pricing.CategoryOutlet,
			Variants: map[string]float64{"13 A": 350}},
		{Name: "LED Panel", Unit: "pcs", Price: 1000, Category: pricing.CategoryLighting,
			Variants: map[string]float64{"18W - Dimmable": 1800}},
	}
}

func TestVariantKey_Templates(t *testing.T) {
	assert.Equal(t, "2.5 mm²", pricing.VariantKey(pricing.CategoryCable, pricing.Attributes{Size: "2.5"}))
	assert.Equal(t, "13 A", pricing.VariantKey(pricing.CategoryOutlet, pricing.Attributes{Rating: "13"}))
	assert.Equal(t, "32 A", pricing.VariantKey(pricing.CategoryDistribution, pricing.Attributes{Rating: "32"}))
	assert.Equal(t, "18W - Dimmable", pricing.VariantKey(pricing.CategoryLighting,
		pricing.Attributes{Wattage: "18", ControlType: "dimmable"}))
	assert.Equal(t, "20 mm", pricing.VariantKey(pricing.CategoryPipe, pricing.Attributes{Size: "20"}))
	assert.Equal(t, "premium", pricing.VariantKey(pricing.CategoryFixture, pricing.Attributes{Quality: "premium"}))
	assert.Equal(t, "", pricing.VariantKey(pricing.CategoryCement, pricing.Attributes{}))
}

func TestResolver_CatalogVariantAndBase(t *testing.T) {
	r := pricing.NewCatalog(catalogEntries()...)

	cable := pricing.NewLookup(pricing.CategoryCable, "twin & earth")
	assert.Equal(t, 120.0, r.Price(cable.With(pricing.Attributes{Size: "2.5"})))
	assert.Equal(t, 100.0, r.Price(cable.With(pricing.Attributes{Size: "6"})))
	assert.Equal(t, 100.0, r.Price(cable))
	assert.Equal(t, 1800.0, r.Price(pricing.NewLookup(pricing.CategoryLighting, "LED  Panel").
		With(pricing.Attributes{Wattage: "18", ControlType: "Dimmable"})))
}

func TestResolver_OrderOverrideThenRegionalCatalogThenDefault(t *testing.T) {
	r := pricing.NewResolver(
		pricing.NewOverrideStrategy([]pricing.Override{
			{Category: pricing.CategoryOutlet, Name: "Socket", Variant: "13 A", Price: 400},
		}),
		pricing.NewCatalogStrategy(catalogEntries(), 1.1),
		pricing.NewDefaultStrategy(pricing.FallbackPrices()),
	)

	socket := pricing.NewLookup(pricing.CategoryOutlet, "Socket")
	res, ok := r.Resolve(socket.With(pricing.Attributes{Rating: "13"}))
	require.True(t, ok)
	assert.Equal(t, 400.0, res.Price)
	assert.Equal(t, "override", res.Strategy)

	res, ok = r.Resolve(pricing.NewLookup(pricing.CategoryCement, "cement"))
	require.True(t, ok)
	assert.InDelta(t, 825.0, res.Price, 1e-9)
	assert.Equal(t, "catalog", res.Strategy)

	res, ok = r.Resolve(pricing.NewLookup(pricing.CategoryWater, "Water"))
	require.True(t, ok)
	assert.Equal(t, 150.0, res.Price)
	assert.Equal(t, "default", res.Strategy)
}

func TestResolver_UnresolvedIsZero(t *testing.T) {
	r := pricing.NewCatalog(catalogEntries()...)

	assert.Equal(t, 0.0, r.Price(pricing.NewLookup(pricing.CategoryTimber, "Unobtainium")))
	_, ok := r.Resolve(pricing.NewLookup(pricing.CategoryTimber, "Unobtainium"))
	assert.False(t, ok)
}

func TestCatalogStrategy_NonPositiveMultiplierIsOne(t *testing.T) {
	s := pricing.NewCatalogStrategy(catalogEntries(), 0)

	price, ok := s.Resolve(pricing.NewLookup(pricing.CategoryCement, "Cement"))

	require.True(t, ok)
	assert.Equal(t, 750.0, price)
}

func TestTracker_RecordsDistinctMisses(t *testing.T) {
	tracker := pricing.Track(pricing.NewCatalog(catalogEntries()...))
	missing := pricing.NewLookup(pricing.CategoryPaint, "Gloss")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Price(missing)
			tracker.Price(pricing.NewLookup(pricing.CategoryCement, "Cement"))
		}()
	}
	wg.Wait()

	misses := tracker.Unresolved()
	require.Len(t, misses, 1)
	assert.Equal(t, "paint/Gloss", misses[0].String())

	tracker.Reset()
	assert.Empty(t, tracker.Unresolved())
}

func TestTracker_ZeroPricedOverrideIsNotAMiss(t *testing.T) {
	tracker := pricing.Track(pricing.NewResolver(pricing.NewOverrideStrategy([]pricing.Override{
		{Category: pricing.CategoryWater, Name: "Water", Price: 0},
	})))

	assert.Zero(t, tracker.Price(pricing.NewLookup(pricing.CategoryWater, "water")))
	assert.Empty(t, tracker.Unresolved())
}

func TestParseCategory(t *testing.T) {
	c, err := pricing.ParseCategory(" Roof-Covering ")
	require.NoError(t, err)
	assert.Equal(t, pricing.CategoryRoofCovering, c)

	_, err = pricing.ParseCategory("spaceship")
	assert.Error(t, err)
}
