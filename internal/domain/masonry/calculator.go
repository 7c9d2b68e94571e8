package masonry

import (
	"math"

	"github.com/andrescamacho/takeoff-go/internal/domain/mix"
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

var (
	CementLookup = pricing.NewLookup(pricing.CategoryCement, "Cement")
	SandLookup   = pricing.NewLookup(pricing.CategorySand, "Sand")
	WaterLookup  = pricing.NewLookup(pricing.CategoryWater, "Water")
)

// BlockLookup prices one walling block by name
func BlockLookup(name string) pricing.Lookup {
	return pricing.NewLookup(pricing.CategoryBlocks, name)
}

// Result is the priced masonry take-off for one room
type Result struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Perimeter    float64  `json:"perimeter"`
	WallArea     float64  `json:"wallArea"`
	OpeningsArea float64  `json:"openingsArea"`
	NetArea      float64  `json:"netArea"`
	SharedArea   float64  `json:"sharedArea"`
	Grid         mix.Grid `json:"grid"`

	Connectivity bool    `json:"connectivity"`
	Efficiency   float64 `json:"efficiency"`

	NetBlocks   float64 `json:"netBlocks"`
	GrossBlocks float64 `json:"grossBlocks"`

	MortarVolume  float64       `json:"mortarVolume"`
	Mortar        mix.Materials `json:"mortar"`
	PlasterArea   float64       `json:"plasterArea"`
	PlasterVolume float64       `json:"plasterVolume"`
	Plaster       mix.Materials `json:"plaster"`

	NetCementBags   float64   `json:"netCementBags"`
	GrossCementBags float64   `json:"grossCementBags"`
	NetSand         float64   `json:"netSand"`
	GrossSand       float64   `json:"grossSand"`
	Water           mix.Water `json:"water"`
	GrossWaterM3    float64   `json:"grossWaterM3"`

	Doors        float64 `json:"doors"`
	Windows      float64 `json:"windows"`
	OpeningsCost float64 `json:"openingsCost"`

	Professional Professional `json:"professional"`

	BlocksCost float64 `json:"blocksCost"`
	CementCost float64 `json:"cementCost"`
	SandCost   float64 `json:"sandCost"`
	WaterCost  float64 `json:"waterCost"`
	TotalCost  float64 `json:"totalCost"`
	RatePerM2  float64 `json:"ratePerM2"`
}

// face is a run of wall laid as one grid
type face struct {
	length   float64
	height   float64
	weight   float64
	shared   bool
	openings []Opening
}

// faces returns the room's wall runs: one per listed wall, or the whole
// perimeter when no walls are listed
func faces(room Room) ([]face, bool) {
	l, w, h := nonNeg(room.Length), nonNeg(room.Width), nonNeg(room.Height)
	if len(room.Walls) == 0 {
		return []face{{length: 2 * (l + w), height: h, weight: 1, openings: room.Openings}}, false
	}

	out := make([]face, 0, len(room.Walls))
	for _, wall := range room.Walls {
		out = append(out, face{
			length:   nonNeg(wall.Length),
			height:   shared.PositiveOr(nonNeg(wall.Height), h),
			weight:   wall.weight(),
			shared:   wall.IsShared(),
			openings: wall.Openings,
		})
	}
	return out, true
}

// Calculate computes one room's blockwork, mortar, plaster, openings and
// professional elements.
//
// Business Rules:
//   - perimeter method: blocks = ceil(P/(l+j)) * ceil(H/(h+j)) minus whole blocks
//     displaced by openings
//   - per-wall method (walls listed): an internal wall with ConnectedTo counts at
//     half weight, and any such wall scales blocks, mortar and openings cost by 0.95
//   - mortar = net blocks * joint volume per block; plaster = net area * sides * thickness
//   - professional elements are independent toggles, each additively costed
func Calculate(room Room, prices pricing.Source, s Settings) Result {
	block, blockName := s.blockFor(room.BlockType)
	runs, perWall := faces(room)

	res := Result{ID: room.ID, Name: room.Name, Connectivity: perWall, Efficiency: 1}
	var acc takeoff
	for _, f := range runs {
		acc.add(f, block, s)
		if f.shared {
			res.Efficiency = SharedWallEfficiency
		}
	}
	if !perWall {
		res.Grid = mix.BlockGrid(runs[0].length, runs[0].height, block, s.Joint)
	}

	res.Perimeter = acc.wallLength
	res.WallArea = acc.grossArea
	res.OpeningsArea = acc.openingsArea
	res.NetArea = shared.NonNegative(acc.grossArea - acc.openingsArea)
	res.SharedArea = acc.sharedArea
	res.Doors = acc.doors
	res.Windows = acc.windows

	res.NetBlocks = acc.blocks * res.Efficiency
	res.MortarVolume = res.NetBlocks * mix.MortarPerBlock(block, s.Joint)
	res.Mortar = mix.MortarMaterials(res.MortarVolume, mix.ParseMortarRatio(s.MortarRatio))

	res.PlasterArea = res.NetArea * float64(s.PlasterSides)
	res.PlasterVolume = res.PlasterArea * shared.NonNegative(s.PlasterThickness)
	res.Plaster = mix.MortarMaterials(res.PlasterVolume, mix.ParseMortarRatio(s.PlasterRatio))

	binder := res.Mortar.Add(res.Plaster)
	w := s.Wastage
	res.GrossBlocks = w.Count(shared.MaterialBlocks, res.NetBlocks)
	res.NetCementBags = binder.CementBags
	res.GrossCementBags = w.Count(shared.MaterialCement, binder.CementBags)
	res.NetSand = binder.SandVolume
	res.GrossSand = w.Continuous(shared.MaterialSand, binder.SandVolume)
	res.Water = mix.WaterRequirement(mix.WaterInput{
		CementMass: binder.CementMass,
		SandMass:   binder.SandMass,
		Volume:     binder.Volume,
	}, s.Water)
	res.GrossWaterM3 = w.Continuous(shared.MaterialWater, res.Water.TotalM3)

	res.BlocksCost = res.GrossBlocks * prices.Price(BlockLookup(blockName))
	res.CementCost = res.GrossCementBags * prices.Price(CementLookup)
	res.SandCost = res.GrossSand * prices.Price(SandLookup)
	if !s.ClientProvidesWater {
		res.WaterCost = res.GrossWaterM3 * prices.Price(WaterLookup)
	}
	for _, o := range acc.priced {
		res.OpeningsCost += o.units * prices.Price(o.opening.Lookup())
	}
	res.OpeningsCost *= res.Efficiency

	res.Professional = professional(acc, res, block, prices, s)

	res.TotalCost = res.BlocksCost + res.CementCost + res.SandCost + res.WaterCost +
		res.OpeningsCost + res.Professional.Total
	res.RatePerM2 = shared.SafeDivide(res.TotalCost, res.NetArea)
	return res
}

type pricedOpening struct {
	opening Opening
	units   float64
}

// takeoff accumulates weighted quantities over a room's faces
type takeoff struct {
	wallLength    float64
	grossArea     float64
	openingsArea  float64
	sharedArea    float64
	blocks        float64
	doors         float64
	windows       float64
	lintelLength  float64
	bedJoint      float64
	verticalBars  float64
	movementJoint float64
	priced        []pricedOpening
}

func (t *takeoff) add(f face, block mix.Block, s Settings) {
	grid := mix.BlockGrid(f.length, f.height, block, s.Joint)
	var openArea float64
	for _, o := range f.openings {
		openArea += o.Area()
		units := o.count() * f.weight
		if o.Type == OpeningWindow {
			t.windows += units
		} else {
			t.doors += units
		}
		t.lintelLength += (o.width() + 2*shared.NonNegative(s.LintelBearing)) * units
		t.priced = append(t.priced, pricedOpening{opening: o, units: units})
	}
	displaced := mix.BlocksInArea(openArea, block, s.Joint)

	area := f.length * f.height
	t.wallLength += f.length * f.weight
	t.grossArea += area * f.weight
	t.openingsArea += math.Min(openArea, area) * f.weight
	t.blocks += shared.NonNegative(grid.Blocks-displaced) * f.weight
	if f.shared {
		t.sharedArea += area * f.weight
	}

	if s.BedJointInterval > 0 {
		t.bedJoint += f.length * math.Floor(grid.Courses/float64(s.BedJointInterval)) * f.weight
	}
	if s.VerticalBarSpacing > 0 && f.length > 0 {
		t.verticalBars += (shared.CeilCount(f.length/s.VerticalBarSpacing) + 1) * f.height * f.weight
	}
	if s.MovementJointSpacing > 0 {
		t.movementJoint += math.Floor(f.length/s.MovementJointSpacing) * f.height * f.weight
	}
}
