package electrical_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/takeoff-go/internal/domain/electrical"
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

func electricalPrices() *pricing.Resolver {
	return pricing.NewCatalog(
		pricing.Entry{Name: "Twin & Earth", Unit: "m", Price: 80, Category: pricing.CategoryCable,
			Variants: map[string]float64{"2.5 mm²": 120, "1.5 mm²": 90}},
		pricing.Entry{Name: "Socket Outlet", Unit: "pc", Price: 450, Category: pricing.CategoryOutlet,
			Variants: map[string]float64{"13 A": 500}},
		pricing.Entry{Name: "LED Panel", Unit: "pc", Price: 1500, Category: pricing.CategoryLighting,
			Variants: map[string]float64{"18W - Switched": 1800}},
		pricing.Entry{Name: "Consumer Unit", Unit: "pc", Price: 9000, Category: pricing.CategoryDistribution},
	)
}

func kitchen() electrical.System {
	return electrical.System{
		ID: "e1", Name: "Kitchen", SystemType: electrical.SystemPower,
		Cables:       []electrical.CableRun{{Type: "Twin & Earth", Size: "2.5", Length: "25", Runs: "2"}},
		Outlets:      []electrical.Outlet{{Type: "Socket Outlet", Rating: "13", Count: "6"}},
		Lighting:     []electrical.Light{{Type: "LED Panel", Wattage: "18", ControlType: "switched", Count: "4"}},
		Distribution: []electrical.Board{{Type: "Consumer Unit", Rating: "100", Count: "1"}},
	}
}

func TestCalculate_PricesEachCategoryByVariant(t *testing.T) {
	// Arrange
	s := electrical.Settings{Wastage: shared.NewWastagePolicy(0)}

	// Act
	r := electrical.Calculate(kitchen(), electricalPrices(), s)

	// Assert
	require.Len(t, r.Lines, 4)
	assert.Equal(t, "2.5 mm²", r.Lines[0].Variant)
	assert.Equal(t, 50*120.0, r.Breakdown.Cables)
	assert.Equal(t, 6*500.0, r.Breakdown.Outlets)
	assert.Equal(t, "18W - Switched", r.Lines[2].Variant)
	assert.Equal(t, 4*1800.0, r.Breakdown.Lighting)
	assert.Equal(t, 9000.0, r.Breakdown.Distribution)
	assert.Equal(t, 6000+3000+7200+9000.0, r.TotalCost)
	assert.Equal(t, 50.0, r.CableLength)
	assert.Equal(t, 10.0, r.Points)
}

func TestCalculate_WastageIsCeiled(t *testing.T) {
	r := electrical.Calculate(kitchen(), electricalPrices(), electrical.DefaultSettings())

	assert.Equal(t, 55.0, r.Lines[0].GrossQuantity)
	assert.Equal(t, 7.0, r.Lines[1].GrossQuantity) // ceil(6.3)
	assert.Equal(t, 5.0, r.Lines[2].GrossQuantity) // ceil(4.2)
	for _, l := range r.Lines {
		assert.GreaterOrEqual(t, l.GrossQuantity, l.NetQuantity)
	}
}

func TestCalculate_UnknownItemCostsZero(t *testing.T) {
	sys := electrical.System{Outlets: []electrical.Outlet{{Type: "Floor Box", Rating: "32", Count: "2"}}}

	r := electrical.Calculate(sys, electricalPrices(), electrical.DefaultSettings())

	require.Len(t, r.Lines, 1)
	assert.Equal(t, 0.0, r.TotalCost)
	assert.Equal(t, 3.0, r.Lines[0].GrossQuantity)
}

func TestCalculateAll_FoldsBreakdown(t *testing.T) {
	p := electrical.CalculateAll([]electrical.System{kitchen(), kitchen()}, electricalPrices(), electrical.DefaultSettings())

	require.Len(t, p.Systems, 2)
	assert.Equal(t, p.Systems[0].Breakdown.Add(p.Systems[1].Breakdown), p.Breakdown)
	assert.Equal(t, p.Breakdown.Total, p.TotalCost)
	assert.Equal(t, 100.0, p.CableLength)
}
