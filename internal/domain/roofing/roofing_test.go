package roofing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/roofing"
)

func roofPrices() *pricing.Resolver {
	return pricing.NewCatalog(
		pricing.Entry{Name: "Structural Timber", Unit: "m", Price: 150, Category: pricing.CategoryTimber,
			Variants: map[string]float64{"50x100": 180}},
		pricing.Entry{Name: "Iron Sheet", Unit: "m²", Price: 900, Category: pricing.CategoryRoofCovering},
		pricing.Entry{Name: "Ridge Cap", Unit: "m", Price: 400, Category: pricing.CategoryRoofAccessory},
		pricing.Entry{Name: "Roof Insulation", Unit: "m²", Price: 350, Category: pricing.CategoryInsulation},
	)
}

func gable() roofing.Structure {
	return roofing.Structure{
		ID: "roof-1", RoofType: roofing.RoofGable, Length: "10", Span: "8", Pitch: "30", Overhang: "0.5",
		RafterSpacing: "0.6", PurlinSpacing: "0.9", TimberSize: "50x100",
	}
}

func TestMeasure_Gable(t *testing.T) {
	// Act
	g := roofing.Measure(gable())

	// Assert
	rafter := 4.5 / math.Cos(30*math.Pi/180)
	assert.InDelta(t, 11, g.PlanLength, 1e-9)
	assert.InDelta(t, 9, g.PlanWidth, 1e-9)
	assert.InDelta(t, rafter, g.RafterLength, 1e-9)
	assert.InDelta(t, 2*rafter*11, g.RoofArea, 1e-9)
	assert.Equal(t, 40.0, g.Rafters)
	assert.InDelta(t, 7*2*11, g.PurlinTimber, 1e-9)
	assert.InDelta(t, 11, g.RidgeLength, 1e-9)
	assert.InDelta(t, 20, g.WallPlate, 1e-9)
}

func TestMeasure_FlatIgnoresPitch(t *testing.T) {
	g := roofing.Measure(roofing.Structure{RoofType: roofing.RoofFlat, Length: "6", Span: "4", Pitch: "20"})

	assert.InDelta(t, 24, g.RoofArea, 1e-9)
	assert.InDelta(t, 4, g.RafterLength, 1e-9)
	assert.Equal(t, 11.0, g.Rafters)
	assert.Equal(t, 0.0, g.RidgeLength)
}

func TestMeasure_Hip(t *testing.T) {
	g := roofing.Measure(roofing.Structure{RoofType: roofing.RoofHip, Length: "12", Span: "8", Pitch: "30"})

	assert.InDelta(t, 96/math.Cos(30*math.Pi/180), g.RoofArea, 1e-9)
	assert.InDelta(t, 4, g.RidgeLength, 1e-9)
	assert.Greater(t, g.HipLength, 0.0)
}

func TestMeasure_MalformedIsZero(t *testing.T) {
	g := roofing.Measure(roofing.Structure{Length: "x", Span: "8"})

	assert.Equal(t, roofing.Geometry{}, g)
}

func TestCalculate_PricesCoveringTimberAccessoriesInsulation(t *testing.T) {
	// Arrange
	roof := gable()
	roof.IncludesInsulation = true

	// Act
	r := roofing.Calculate(roof, roofPrices(), roofing.DefaultSettings())

	// Assert
	area := 2 * (4.5 / math.Cos(30*math.Pi/180)) * 11
	var covering pricing.Line
	for _, l := range r.Lines {
		if l.Category == pricing.CategoryRoofCovering {
			covering = l
		}
	}
	require.NotZero(t, covering.NetQuantity)
	assert.InDelta(t, area, covering.NetQuantity, 1e-9)
	assert.Equal(t, math.Ceil(area*1.1), covering.GrossQuantity)
	assert.Equal(t, covering.GrossQuantity*900, r.Breakdown.Covering)
	assert.Equal(t, 104*350.0, r.Breakdown.Insulation)
	assert.Greater(t, r.Breakdown.Timber, 0.0)
	assert.Equal(t, 12*400.0, r.Breakdown.Accessories, "only the ridge cap is priced")
	assert.InDelta(t, r.Breakdown.Timber+r.Breakdown.Covering+r.Breakdown.Accessories+r.Breakdown.Insulation, r.TotalCost, 1e-9)
}

func TestCalculateAll_FoldsBreakdown(t *testing.T) {
	p := roofing.CalculateAll([]roofing.Structure{gable(), gable()}, roofPrices(), roofing.DefaultSettings())

	require.Len(t, p.Roofs, 2)
	assert.InDelta(t, 2*p.Roofs[0].TotalCost, p.TotalCost, 1e-6)
	assert.InDelta(t, 2*p.Roofs[0].Geometry.RoofArea, p.RoofArea, 1e-9)
}

func TestParseRoofType(t *testing.T) {
	rt, err := roofing.ParseRoofType("Lean_To")
	require.NoError(t, err)
	assert.Equal(t, roofing.RoofLeanTo, rt)

	_, err = roofing.ParseRoofType("dome")
	assert.Error(t, err)
}
