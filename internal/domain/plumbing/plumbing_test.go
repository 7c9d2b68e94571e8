package plumbing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/takeoff-go/internal/domain/plumbing"
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

func plumbingPrices() *pricing.Resolver {
	return pricing.NewCatalog(
		pricing.Entry{Name: "PPR Pipe", Unit: "m", Price: 200, Category: pricing.CategoryPipe,
			Variants: map[string]float64{"20 mm": 180, "25 mm": 240}},
		pricing.Entry{Name: "WC", Unit: "pc", Price: 15000, Category: pricing.CategoryFixture,
			Variants: map[string]float64{"Premium": 28000}},
		pricing.Entry{Name: "Elbow", Unit: "pc", Price: 60, Category: pricing.CategoryFitting,
			Variants: map[string]float64{"20 mm": 50}},
		pricing.Entry{Name: "Assorted Fittings", Unit: "pc", Price: 70, Category: pricing.CategoryFitting},
	)
}

func TestCalculate_PipesFixturesFittings(t *testing.T) {
	// Arrange
	sys := plumbing.System{
		ID: "p1", SystemType: plumbing.SystemWaterSupply,
		Pipes:    []plumbing.PipeRun{{Material: "PPR Pipe", Size: "20", Length: "30"}},
		Fixtures: []plumbing.Fixture{{Type: "WC", Quality: "premium", Count: "2"}},
		Fittings: []plumbing.Fitting{{Type: "Elbow", Size: "20", Count: "12"}},
	}
	s := plumbing.Settings{Wastage: shared.NewWastagePolicy(0)}

	// Act
	r := plumbing.Calculate(sys, plumbingPrices(), s)

	// Assert
	require.Len(t, r.Lines, 3)
	assert.Equal(t, 30*180.0, r.Breakdown.Pipes)
	assert.Equal(t, 2*28000.0, r.Breakdown.Fixtures)
	assert.Equal(t, 12*50.0, r.Breakdown.Fittings)
	assert.Equal(t, r.Breakdown.Pipes+r.Breakdown.Fixtures+r.Breakdown.Fittings, r.TotalCost)
}

func TestCalculate_PipeWastageCeiled(t *testing.T) {
	sys := plumbing.System{Pipes: []plumbing.PipeRun{{Size: "25", Length: "12.5", Runs: "2"}}}

	r := plumbing.Calculate(sys, plumbingPrices(), plumbing.DefaultSettings())

	assert.Equal(t, 25.0, r.Lines[0].NetQuantity)
	assert.Equal(t, 28.0, r.Lines[0].GrossQuantity) // ceil(27.5)
	assert.Equal(t, 28*240.0, r.TotalCost)
}

func TestCalculate_FittingAllowanceOnlyWithoutExplicitFittings(t *testing.T) {
	s := plumbing.Settings{Wastage: shared.NewWastagePolicy(0), FittingsPerMetre: 0.5}
	sys := plumbing.System{Pipes: []plumbing.PipeRun{{Size: "20", Length: "10"}}}

	r := plumbing.Calculate(sys, plumbingPrices(), s)

	require.Len(t, r.Lines, 2)
	assert.Equal(t, 5.0, r.Lines[1].GrossQuantity)
	assert.Equal(t, 5*70.0, r.Breakdown.Fittings)

	sys.Fittings = []plumbing.Fitting{{Type: "Elbow", Size: "20", Count: "1"}}
	r = plumbing.Calculate(sys, plumbingPrices(), s)
	assert.Len(t, r.Lines, 2)
	assert.Equal(t, 50.0, r.Breakdown.Fittings)
}

func TestCalculateAll_Totals(t *testing.T) {
	systems := []plumbing.System{
		{Pipes: []plumbing.PipeRun{{Size: "20", Length: "10"}}},
		{Fixtures: []plumbing.Fixture{{Type: "Bidet", Count: "1"}}},
	}

	p := plumbing.CalculateAll(systems, plumbingPrices(), plumbing.DefaultSettings())

	assert.Equal(t, 10.0, p.PipeLength)
	assert.Equal(t, 0.0, p.Breakdown.Fixtures, "unpriced fixture costs nothing")
	assert.Equal(t, p.Breakdown.Total, p.TotalCost)
}
