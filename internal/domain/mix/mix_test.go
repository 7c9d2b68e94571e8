package mix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/takeoff-go/internal/domain/mix"
)

func TestParseConcreteRatio_Valid(t *testing.T) {
	r := mix.ParseConcreteRatio("1:1.5:3")

	assert.Equal(t, mix.Ratio{Cement: 1, Sand: 1.5, Stone: 3}, r)
	assert.Equal(t, 5.5, r.TotalParts())
	assert.Equal(t, "1:1.5:3", r.String())
}

func TestParseConcreteRatio_MalformedFallsBack(t *testing.T) {
	for _, input := range []string{"", "1:2:x", "0:0:0", "1:2", "1:2:4:8", "-1:2:4", "NaN:2:4", "1:Inf:4", ":::"} {
		t.Run(input, func(t *testing.T) {
			r := mix.ParseConcreteRatio(input)

			assert.Equal(t, mix.DefaultConcreteRatio, r)
			assert.False(t, math.IsNaN(r.Cement) || math.IsNaN(r.Sand) || math.IsNaN(r.Stone))
		})
	}
}

func TestParseMortarRatio(t *testing.T) {
	assert.Equal(t, mix.Ratio{Cement: 1, Sand: 6}, mix.ParseMortarRatio(" 1 : 6 "))
	assert.Equal(t, mix.DefaultMortarRatio, mix.ParseMortarRatio("1:2:4"))
	assert.Equal(t, mix.DefaultMortarRatio, mix.ParseMortarRatio("0:4"))
	assert.Equal(t, mix.DefaultMortarRatio, mix.ParseMortarRatio("abc"))
	assert.Equal(t, "1:4", mix.DefaultMortarRatio.String())
}

func TestConcreteMaterials_SlabScenario(t *testing.T) {
	// 5 x 4 x 0.15 slab at 1:2:4
	m := mix.ConcreteMaterials(3.0, mix.ParseConcreteRatio("1:2:4"))

	assert.InDelta(t, 3.0/7, m.CementVolume, 1e-9)
	assert.InDelta(t, 6.0/7, m.SandVolume, 1e-9)
	assert.InDelta(t, 12.0/7, m.StoneVolume, 1e-9)
	assert.InDelta(t, 12.2449, m.CementBags, 1e-4)
	assert.InDelta(t, 3.0/7*1440, m.CementMass, 1e-9)
	assert.InDelta(t, 6.0/7*1600, m.SandMass, 1e-9)
	assert.InDelta(t, 12.0/7*1500, m.StoneMass, 1e-9)
}

func TestMortarMaterials_OneToFour(t *testing.T) {
	m := mix.MortarMaterials(1.0, mix.ParseMortarRatio("1:4"))

	assert.InDelta(t, 0.2, m.CementVolume, 1e-9)
	assert.InDelta(t, 0.8, m.SandVolume, 1e-9)
	assert.Zero(t, m.StoneVolume)
	assert.InDelta(t, 5.714, m.CementBags, 1e-3)
}

func TestConcreteMaterials_InvalidVolume(t *testing.T) {
	assert.Equal(t, mix.Materials{}, mix.ConcreteMaterials(-2, mix.DefaultConcreteRatio))
	assert.Equal(t, mix.Materials{}, mix.ConcreteMaterials(math.NaN(), mix.DefaultConcreteRatio))
}

func TestWaterRequirement(t *testing.T) {
	s := mix.DefaultWaterSettings()
	in := mix.WaterInput{CementMass: 1000, SandMass: 2000, StoneMass: 4000, SurfaceArea: 10, Volume: 2}

	w := mix.WaterRequirement(in, s)

	// 2000*(4-1)/100 + 4000*(1-0.5)/100 = 60 + 20
	assert.InDelta(t, 500, w.Hydration, 1e-9)
	assert.InDelta(t, 80, w.AggregateAdjustment, 1e-9)
	assert.InDelta(t, 420, w.Mixing, 1e-9)
	assert.InDelta(t, 350, w.Curing, 1e-9)
	assert.InDelta(t, 20, w.Other, 1e-9)
	assert.InDelta(t, 790, w.Total, 1e-9)
	assert.InDelta(t, 0.79, w.TotalM3, 1e-9)
}

func TestWaterRequirement_MixingNeverNegative(t *testing.T) {
	s := mix.DefaultWaterSettings()
	s.SandMoisture = 20

	w := mix.WaterRequirement(mix.WaterInput{CementMass: 10, SandMass: 5000}, s)

	assert.Zero(t, w.Mixing)
	assert.GreaterOrEqual(t, w.Total, 0.0)
}

func TestBlockGrid_RoomScenario(t *testing.T) {
	// 4 x 3 room, 2.4 high: perimeter 14
	g := mix.BlockGrid(14, 2.4, mix.StandardBlock, 0.01)

	assert.Equal(t, 35.0, g.PerCourse)
	assert.Equal(t, 12.0, g.Courses)
	assert.Equal(t, 420.0, g.Blocks)
}

func TestBlockGrid_ZeroDimensions(t *testing.T) {
	assert.Equal(t, mix.Grid{}, mix.BlockGrid(0, 2.4, mix.StandardBlock, 0.01))
	assert.Equal(t, mix.Grid{}, mix.BlockGrid(10, -1, mix.StandardBlock, 0.01))
}

func TestMortarPerBlock(t *testing.T) {
	v := mix.MortarPerBlock(mix.StandardBlock, 0.01)

	assert.InDelta(t, 0.2*0.01*0.61, v, 1e-12)
	assert.Equal(t, 9.0, mix.BlocksInArea(0.8, mix.StandardBlock, 0.01))
}
