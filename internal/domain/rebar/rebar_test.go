package rebar_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/rebar"
)

func rebarPrices() *pricing.Resolver {
	return pricing.NewCatalog(
		pricing.Entry{Name: "Rebar", Unit: "kg", Price: 100, Category: pricing.CategoryRebar,
			Variants: map[string]float64{"Y12": 120, "Y8": 130}},
		pricing.Entry{Name: "BRC Mesh", Unit: "sheet", Price: 5000, Category: pricing.CategoryMesh,
			Variants: map[string]float64{"A142": 4500}},
		pricing.Entry{Name: "Binding Wire", Unit: "kg", Price: 250, Category: pricing.CategoryBindingWire},
	)
}

func findLine(t *testing.T, r rebar.CalcResult, role string) rebar.BarLine {
	t.Helper()
	for _, l := range r.Bars {
		if l.Role == role {
			return l
		}
	}
	require.Failf(t, "bar line not found", "role %s", role)
	return rebar.BarLine{}
}

func TestBarSizeTable(t *testing.T) {
	assert.Equal(t, 0.888, rebar.Y12.WeightPerMeter())
	assert.Equal(t, 3.854, rebar.Y25.WeightPerMeter())
	assert.InDelta(t, 113.097, rebar.Y12.Area(), 0.001)
	assert.Equal(t, 0.0, rebar.Weight(10, rebar.BarSize("Y32")))
	assert.InDelta(t, 8.88, rebar.Weight(10, rebar.Y12), 1e-9)

	size, err := rebar.ParseBarSize("12mm")
	require.NoError(t, err)
	assert.Equal(t, rebar.Y12, size)
	_, err = rebar.ParseBarSize("Y32")
	assert.Error(t, err)
}

func TestDevelopmentAndLapLength_Defaults(t *testing.T) {
	assert.InDelta(t, 0.48, rebar.DevelopmentLength(math.NaN(), rebar.Y12), 1e-9)
	assert.InDelta(t, 0.48, rebar.DevelopmentLength(40, rebar.Y12), 1e-9)
	assert.InDelta(t, 0.8, rebar.LapLength(0, rebar.Y16), 1e-9)
	assert.InDelta(t, 0.64, rebar.LapLength(40, rebar.Y16), 1e-9)
}

func TestOptimizedBarCount(t *testing.T) {
	assert.Equal(t, rebar.BarCount{}, rebar.OptimizedBarCount(0, 12, 0.6))
	assert.Equal(t, rebar.BarCount{BarsNeeded: 1, TotalLength: 12}, rebar.OptimizedBarCount(10, 12, 0.6))
	assert.Equal(t, rebar.BarCount{BarsNeeded: 3, TotalLength: 36}, rebar.OptimizedBarCount(30, 12, 0.6))
	// lap swallowing the whole bar falls back to the plain length
	assert.Equal(t, 3.0, rebar.OptimizedBarCount(30, 12, 12).BarsNeeded)
}

func TestOptimizeCutting_GreedyLeastWaste(t *testing.T) {
	// Act
	patterns := rebar.OptimizeCutting([]float64{3, 5, 2, 4, 3}, []float64{12, 6}, true)

	// Assert
	require.Len(t, patterns, 2)
	assert.Equal(t, 12.0, patterns[0].StandardLength)
	assert.Equal(t, []float64{5, 4, 3}, patterns[0].Cuts)
	assert.InDelta(t, 0, patterns[0].Waste, 1e-9)
	assert.InDelta(t, 100, patterns[0].Efficiency, 1e-9)
	assert.Equal(t, 6.0, patterns[1].StandardLength)
	assert.Equal(t, []float64{3, 2}, patterns[1].Cuts)
	assert.InDelta(t, 1, patterns[1].Waste, 1e-9)
}

func TestOptimizeCutting_SinglePiecePerBar(t *testing.T) {
	patterns := rebar.OptimizeCutting([]float64{2, 2, 2}, []float64{12, 6}, false)

	require.Len(t, patterns, 3)
	for _, p := range patterns {
		assert.Equal(t, 6.0, p.StandardLength)
		assert.Len(t, p.Cuts, 1)
	}
}

func TestOptimizeCutting_StopsWhenLargestPieceFitsNoStock(t *testing.T) {
	assert.Empty(t, rebar.OptimizeCutting([]float64{13, 2}, []float64{12}, true))
	assert.Empty(t, rebar.OptimizeCutting([]float64{2}, nil, true))
}

func TestOptimizeWaste_ClampsOptimizedPercent(t *testing.T) {
	exact := rebar.OptimizeWaste([]float64{6, 6}, []float64{12})
	assert.InDelta(t, 0, exact.ActualPercent, 1e-9)
	assert.Equal(t, 2.0, exact.OptimizedPercent)

	poor := rebar.OptimizeWaste([]float64{7}, []float64{12})
	assert.InDelta(t, 41.667, poor.ActualPercent, 0.001)
	assert.Equal(t, 15.0, poor.OptimizedPercent)
	assert.Equal(t, 1.0, poor.BarsUsed)
}

func TestCalculate_SlabScenario(t *testing.T) {
	// Arrange
	s := rebar.DefaultSettings()
	s.WastagePercent = 0
	e := rebar.Element{
		ID: "s1", Type: rebar.TypeSlab, Length: "5", Width: "4", Depth: "0.15",
		Quantity: 1, MainBarSize: "Y12", MainSpacing: "200",
	}

	// Act
	r := rebar.Calculate(e, rebarPrices(), s)

	// Assert
	main := findLine(t, r, rebar.RoleMain)
	assert.Equal(t, 21.0, main.Count)
	assert.InDelta(t, 5.96, main.Length, 1e-9)
	assert.InDelta(t, 21*5.96*0.888, main.NetWeight, 1e-9)

	dist := findLine(t, r, rebar.RoleDistribution)
	assert.Equal(t, 21.0, dist.Count) // ceil(5/0.25)+1
	assert.InDelta(t, 4.96, dist.Length, 1e-9)

	assert.Equal(t, 21.0, r.NetBars)
	assert.InDelta(t, r.NetWeight, r.GrossWeight, 1e-9)
	assert.InDelta(t, r.GrossWeight*120, r.RebarCost, 1e-6)
	assert.InDelta(t, r.NetWeight*0.01*250, r.BindingWireCost, 1e-6)
	assert.InDelta(t, r.RebarCost+r.BindingWireCost, r.TotalCost, 1e-6)
	assert.InDelta(t, r.TotalCost/r.GrossWeight, r.UnitRate, 1e-9)
	assert.True(t, r.Compliance.IsValid)
	assert.Equal(t, 100.0, r.Compliance.Score)
}

func TestCalculate_WastageGrossesWeightAndCountsBars(t *testing.T) {
	s := rebar.DefaultSettings()
	s.WastagePercent = 10
	e := rebar.Element{Type: rebar.TypeSlab, Length: "5", Width: "4", Depth: "0.15", MainSpacing: "200"}

	r := rebar.Calculate(e, rebarPrices(), s)

	assert.InDelta(t, r.NetWeight*1.1, r.GrossWeight, 1e-9)
	assert.Equal(t, math.Ceil(r.NetBars*1.1), r.GrossBars)
}

func TestCalculate_LargeScheduleCountsPerLine(t *testing.T) {
	// Arrange
	s := rebar.DefaultSettings()
	s.WastagePercent = 0
	e := rebar.Element{
		Type: rebar.TypeSlab, Length: "5", Width: "4", Depth: "0.15",
		Quantity: 100, MainBarSize: "Y12", MainSpacing: "200",
	}

	// Act
	r := rebar.Calculate(e, rebarPrices(), s)

	// Assert
	main := findLine(t, r, rebar.RoleMain)
	dist := findLine(t, r, rebar.RoleDistribution)
	require.Equal(t, 2100.0, main.Count)
	require.Equal(t, 2100.0, dist.Count)

	mainBars := math.Ceil(main.Count / math.Floor(12/main.Length))
	distBars := math.Ceil(dist.Count / math.Floor(12/dist.Length))
	assert.Equal(t, mainBars+distBars, r.NetBars)
	assert.Equal(t, r.NetBars, r.Waste.BarsUsed)
	assert.Empty(t, r.Waste.Patterns)

	stock := r.NetBars * 12
	assert.InDelta(t, stock, r.Waste.StockLength, 1e-6)
	assert.InDelta(t, stock-main.TotalLength-dist.TotalLength, r.Waste.OffcutLength, 1e-6)
	assert.InDelta(t, r.Waste.OffcutLength/stock*100, r.Waste.ActualPercent, 1e-9)
	assert.False(t, math.IsNaN(r.Waste.OptimizedPercent))
	assert.GreaterOrEqual(t, r.Waste.OptimizedPercent, 2.0)
	assert.LessOrEqual(t, r.Waste.OptimizedPercent, 15.0)
}

func TestCalculate_HugeQuantityStaysProportional(t *testing.T) {
	s := rebar.DefaultSettings()
	s.WastagePercent = 0
	e := rebar.Element{
		Type: rebar.TypeSlab, Length: "5", Width: "4", Depth: "0.15",
		Quantity: 2_000_000, MainBarSize: "Y12", MainSpacing: "200",
	}

	r := rebar.Calculate(e, rebarPrices(), s)

	// 21 main and 21 distribution bars per slab, two pieces to a 12 m bar
	assert.Equal(t, 2_000_000*21.0, r.NetBars)
	assert.False(t, math.IsInf(r.Waste.ActualPercent, 0))
	assert.Empty(t, r.Waste.Patterns)
}

func TestCalculate_BeamBarsFromSteelArea(t *testing.T) {
	// Arrange
	s := rebar.DefaultSettings()
	e := rebar.Element{
		Type: rebar.TypeBeam, Length: "6", Width: "0.3", Depth: "0.5", Quantity: 2,
		MainBarSize: "Y16", StirrupBarSize: "Y8", StirrupSpacing: "200",
	}

	// Act
	r := rebar.Calculate(e, rebarPrices(), s)

	// Assert: 0.015*300*500 = 2250 mm² over 201 mm² bars
	long := findLine(t, r, rebar.RoleLongitudinal)
	assert.Equal(t, 24.0, long.Count)
	assert.InDelta(t, 6+2*0.64, long.Length, 1e-9)

	links := findLine(t, r, rebar.RoleStirrup)
	assert.Equal(t, 62.0, links.Count) // (ceil(5.92/0.2)+1) * 2
	assert.InDelta(t, 1.392, links.Length, 1e-9)
}

func TestCalculate_ColumnMinimumBars(t *testing.T) {
	s := rebar.DefaultSettings()
	e := rebar.Element{
		Type: rebar.TypeColumn, Length: "0.3", Width: "0.3", Depth: "3",
		MainBarSize: "Y16", SteelRatio: "0.001",
	}

	r := rebar.Calculate(e, rebarPrices(), s)

	long := findLine(t, r, rebar.RoleLongitudinal)
	assert.Equal(t, 4.0, long.Count)
	assert.InDelta(t, 3+2*0.64, long.Length, 1e-9)
	assert.True(t, r.Compliance.IsValid)
}

func TestCalculate_RetainingWallHasTwoFaces(t *testing.T) {
	s := rebar.DefaultSettings()
	e := rebar.Element{
		Type: rebar.TypeRetainingWall, Length: "10", Width: "0.25", Depth: "2",
		MainBarSize: "Y12", MainSpacing: "200", DistributionBarSize: "Y10", DistributionSpacing: "250",
	}

	r := rebar.Calculate(e, rebarPrices(), s)

	assert.Equal(t, 2*51.0, findLine(t, r, rebar.RoleVertical).Count)
	assert.Equal(t, 2*9.0, findLine(t, r, rebar.RoleHorizontal).Count)
	require.Len(t, r.Sizes, 2)
	assert.Equal(t, rebar.Y10, r.Sizes[0].Size)
}

func TestCalculate_LongRunsAreSpliced(t *testing.T) {
	// Arrange: 30 m long bars exceed the 12 m stock
	s := rebar.DefaultSettings()
	s.WastagePercent = 0
	e := rebar.Element{Type: rebar.TypeStripFooting, Length: "30", Width: "0.6", Depth: "0.3",
		MainBarSize: "Y12", MainSpacing: "300", DistributionSpacing: "200"}

	// Act
	r := rebar.Calculate(e, rebarPrices(), s)

	// Assert: 4 longitudinal runs of 30.96 m at 12-0.6 effective -> 3 bars each
	dist := findLine(t, r, rebar.RoleDistribution)
	assert.Equal(t, 4.0, dist.Count)
	assert.InDelta(t, 30.96, dist.Length, 1e-9)
	assert.GreaterOrEqual(t, r.NetBars, 12.0)
}

func TestCalculate_MeshMode(t *testing.T) {
	// Arrange
	s := rebar.DefaultSettings()
	s.MeshWastagePercent = 5
	e := rebar.Element{Type: rebar.TypeSlab, Length: "10", Width: "5", Depth: "0.15",
		Mode: rebar.ModeMesh, MeshType: "a142"}

	// Act
	r := rebar.Calculate(e, rebarPrices(), s)

	// Assert: ceil(10/4.5) * ceil(5/2.1)
	assert.Equal(t, rebar.ModeMesh, r.Mode)
	assert.Equal(t, "A142", r.MeshType)
	assert.Equal(t, 9.0, r.NetSheets)
	assert.Equal(t, 10.0, r.GrossSheets)
	assert.InDelta(t, 9*4.8*2.4*2.22, r.NetWeight, 1e-9)
	assert.InDelta(t, 10*4500, r.MeshCost, 1e-9)
	assert.Empty(t, r.Bars)
}

func TestCalculate_MeshOnBeamFallsBackToBars(t *testing.T) {
	e := rebar.Element{Type: rebar.TypeBeam, Length: "4", Width: "0.23", Depth: "0.45", Mode: rebar.ModeMesh}

	r := rebar.Calculate(e, rebarPrices(), rebar.DefaultSettings())

	assert.Equal(t, rebar.ModeIndividual, r.Mode)
	assert.NotEmpty(t, r.Bars)
}

func TestCalculate_MalformedInputIsZeroNotNaN(t *testing.T) {
	e := rebar.Element{Type: rebar.TypeSlab, Length: "abc", Width: "", Depth: "NaN", MainSpacing: "-5"}

	r := rebar.Calculate(e, rebarPrices(), rebar.DefaultSettings())

	assert.Equal(t, 0.0, r.NetWeight)
	assert.Equal(t, 0.0, r.TotalCost)
	assert.Equal(t, 0.0, r.UnitRate)
	assert.False(t, math.IsNaN(r.Waste.ActualPercent))
}

func TestCalculate_MissingPriceCostsZero(t *testing.T) {
	e := rebar.Element{Type: rebar.TypeSlab, Length: "5", Width: "4", Depth: "0.15"}

	r := rebar.Calculate(e, pricing.NewCatalog(), rebar.DefaultSettings())

	assert.Greater(t, r.NetWeight, 0.0)
	assert.Equal(t, 0.0, r.TotalCost)
}

func TestValidateCompliance_WarningsAndErrors(t *testing.T) {
	// Arrange: spacing too wide (warning) and cover too thin (error)
	s := rebar.DefaultSettings()
	e := rebar.Element{Type: rebar.TypeSlab, Length: "5", Width: "4", Depth: "0.15",
		MainBarSize: "Y12", MainSpacing: "350", Cover: "0.015"}

	// Act
	c := rebar.ValidateCompliance(e, s)
	r := rebar.Calculate(e, rebarPrices(), s)

	// Assert
	assert.False(t, c.IsValid)
	assert.Len(t, c.Errors, 1)
	assert.Len(t, c.Warnings, 1)
	assert.Equal(t, 75.0, c.Score)
	assert.Greater(t, r.NetWeight, 0.0, "quantities are returned for non-compliant designs")
}

func TestValidateCompliance_RatioBelowMinimum(t *testing.T) {
	e := rebar.Element{Type: rebar.TypeSlab, Length: "5", Width: "4", Depth: "0.3",
		MainBarSize: "Y8", MainSpacing: "300", DistributionSpacing: "300"}

	c := rebar.ValidateCompliance(e, rebar.DefaultSettings())

	assert.False(t, c.IsValid)
	assert.InDelta(t, 0.00056, c.Ratio, 0.00001)
	assert.Equal(t, 80.0, c.Score)
}

func TestValidateCompliance_ScoreNeverNegative(t *testing.T) {
	s := rebar.DefaultSettings()
	s.RatioLimits[rebar.TypeSlab] = rebar.RatioLimit{Min: 0.5, Max: 0.6}
	s.Covers[rebar.TypeSlab] = 0.5
	s.MaxSpacingMM = 10
	s.MinSpacingMM = 5
	e := rebar.Element{Type: rebar.TypeSlab, Length: "5", Width: "4", Depth: "0.15", Cover: "0.02"}

	c := rebar.ValidateCompliance(e, s)

	assert.GreaterOrEqual(t, c.Score, 0.0)
	assert.LessOrEqual(t, c.Score, 100.0)
}

func TestCalculateProject_SumsElements(t *testing.T) {
	// Arrange
	s := rebar.DefaultSettings()
	elements := []rebar.Element{
		{ID: "a", Type: rebar.TypeSlab, Length: "5", Width: "4", Depth: "0.15", MainSpacing: "200"},
		{ID: "b", Type: rebar.TypeColumn, Length: "0.3", Width: "0.3", Depth: "3", MainBarSize: "Y16"},
	}

	// Act
	p := rebar.CalculateProject(elements, rebarPrices(), s)

	// Assert
	require.Len(t, p.Elements, 2)
	assert.InDelta(t, p.Elements[0].TotalCost+p.Elements[1].TotalCost, p.TotalCost, 1e-6)
	assert.InDelta(t, p.Elements[0].GrossWeight+p.Elements[1].GrossWeight, p.TotalGrossWeight, 1e-6)
	assert.True(t, p.AllCompliant)
	assert.NotEmpty(t, p.Sizes)
}
