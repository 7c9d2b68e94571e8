package concrete

import (
	"github.com/andrescamacho/takeoff-go/internal/domain/mix"
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// Lookups for every priced concrete item
var (
	CementLookup    = pricing.NewLookup(pricing.CategoryCement, "Cement")
	SandLookup      = pricing.NewLookup(pricing.CategorySand, "Sand")
	BallastLookup   = pricing.NewLookup(pricing.CategoryBallast, "Ballast")
	WaterLookup     = pricing.NewLookup(pricing.CategoryWater, "Water")
	FormworkLookup  = pricing.NewLookup(pricing.CategoryFormwork, "Formwork")
	HardcoreLookup  = pricing.NewLookup(pricing.CategoryAggregate, "Hardcore")
	DPCLookup       = pricing.NewLookup(pricing.CategoryDPC, "DPC")
	PolytheneLookup = pricing.NewLookup(pricing.CategoryWaterproofing, "Polythene Sheet")
	MembraneLookup  = pricing.NewLookup(pricing.CategoryWaterproofing, "Waterproof Membrane")
)

// BlockLookup prices a foundation walling block by name
func BlockLookup(name string) pricing.Lookup {
	return pricing.NewLookup(pricing.CategoryBlocks, name)
}

// WallResult is the blockwork built off a foundation
type WallResult struct {
	Length       float64       `json:"length"`
	Height       float64       `json:"height"`
	Area         float64       `json:"area"`
	NetBlocks    float64       `json:"netBlocks"`
	GrossBlocks  float64       `json:"grossBlocks"`
	MortarVolume float64       `json:"mortarVolume"`
	Mortar       mix.Materials `json:"mortar"`
	BlocksCost   float64       `json:"blocksCost"`
}

// WaterproofingResult holds net and gross protection areas
type WaterproofingResult struct {
	DPCArea            float64 `json:"dpcArea"`
	GrossDPCArea       float64 `json:"grossDpcArea"`
	PolytheneArea      float64 `json:"polytheneArea"`
	GrossPolytheneArea float64 `json:"grossPolytheneArea"`
	MembraneArea       float64 `json:"membraneArea"`
	GrossMembraneArea  float64 `json:"grossMembraneArea"`
	Cost               float64 `json:"cost"`
}

// Result is the priced take-off for one concrete row
type Result struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ElementType ElementType `json:"elementType"`
	Number      float64     `json:"number"`
	Mix         string      `json:"mix"`

	MainVolume   float64 `json:"mainVolume"`
	SurfaceArea  float64 `json:"surfaceArea"`
	FormworkArea float64 `json:"formworkArea"`

	Concrete mix.Materials `json:"concrete"`
	Blinding mix.Materials `json:"blinding"`

	AggregateVolume      float64 `json:"aggregateVolume"`
	GrossAggregateVolume float64 `json:"grossAggregateVolume"`

	FoundationWall *WallResult          `json:"foundationWall,omitempty"`
	Waterproofing  *WaterproofingResult `json:"waterproofing,omitempty"`

	NetCementBags   float64   `json:"netCementBags"`
	GrossCementBags float64   `json:"grossCementBags"`
	NetSand         float64   `json:"netSand"`
	GrossSand       float64   `json:"grossSand"`
	NetStone        float64   `json:"netStone"`
	GrossStone      float64   `json:"grossStone"`
	GrossFormwork   float64   `json:"grossFormwork"`
	Water           mix.Water `json:"water"`
	GrossWaterM3    float64   `json:"grossWaterM3"`

	CementCost        float64 `json:"cementCost"`
	SandCost          float64 `json:"sandCost"`
	StoneCost         float64 `json:"stoneCost"`
	WaterCost         float64 `json:"waterCost"`
	FormworkCost      float64 `json:"formworkCost"`
	AggregateCost     float64 `json:"aggregateCost"`
	BlocksCost        float64 `json:"blocksCost"`
	WaterproofingCost float64 `json:"waterproofingCost"`
	TotalCost         float64 `json:"totalCost"`
	UnitRate          float64 `json:"unitRate"`
}

// Calculate computes one row's concrete, beds, walling and protection layers.
//
// Business Rules:
//   - geometry is per unit and multiplied by the row number
//   - cement, sand and stone from the main pour, blinding and walling mortar are
//     pooled before wastage; cement is grossed as a count of bags
//   - water is costed only when the client does not provide it
//   - unit rate = total cost / main volume, 0 when the volume is 0
func Calculate(row Row, prices pricing.Source, s Settings) Result {
	number := rowNumber(row.Number)
	geo := measure(row, s)
	ratio := mix.ParseConcreteRatio(firstNonEmpty(row.Mix, s.DefaultMix))

	res := Result{
		ID:           row.ID,
		Name:         row.Name,
		ElementType:  row.ElementType,
		Number:       number,
		Mix:          ratio.String(),
		MainVolume:   geo.volume * number,
		SurfaceArea:  geo.surface * number,
		FormworkArea: geo.formwork * number,
	}
	res.Concrete = mix.ConcreteMaterials(res.MainVolume, ratio)

	footprint := geo.footprint * number
	if row.ElementType.takesBeds() {
		applyBeds(&res, row, footprint, s)
	}
	if row.FoundationWall != nil {
		res.FoundationWall = foundationWall(*row.FoundationWall, row.ElementType, geo, number, s)
	}

	pooled := res.Concrete.Add(res.Blinding)
	if res.FoundationWall != nil {
		pooled = pooled.Add(res.FoundationWall.Mortar)
	}
	w := s.Wastage
	res.NetCementBags = pooled.CementBags
	res.NetSand = pooled.SandVolume
	res.NetStone = pooled.StoneVolume
	res.GrossCementBags = w.Count(shared.MaterialCement, res.NetCementBags)
	res.GrossSand = w.Continuous(shared.MaterialSand, res.NetSand)
	res.GrossStone = w.Continuous(shared.MaterialStone, res.NetStone)
	res.GrossFormwork = w.Continuous(shared.MaterialFormwork, res.FormworkArea)

	res.Water = mix.WaterRequirement(mix.WaterInput{
		CementMass:  pooled.CementMass,
		SandMass:    pooled.SandMass,
		StoneMass:   pooled.StoneMass,
		SurfaceArea: res.SurfaceArea,
		Volume:      pooled.Volume,
	}, s.Water)
	res.GrossWaterM3 = w.Continuous(shared.MaterialWater, res.Water.TotalM3)

	if row.Waterproofing != nil {
		res.Waterproofing = waterproofing(*row.Waterproofing, row.ElementType, geo, number, prices, s)
	}

	price(&res, prices, s)
	return res
}

func price(res *Result, prices pricing.Source, s Settings) {
	res.CementCost = res.GrossCementBags * prices.Price(CementLookup)
	res.SandCost = res.GrossSand * prices.Price(SandLookup)
	res.StoneCost = res.GrossStone * prices.Price(BallastLookup)
	res.FormworkCost = res.GrossFormwork * prices.Price(FormworkLookup)
	if !s.ClientProvidesWater {
		res.WaterCost = res.GrossWaterM3 * prices.Price(WaterLookup)
	}
	res.AggregateCost = res.GrossAggregateVolume * prices.Price(HardcoreLookup)
	if res.FoundationWall != nil {
		res.FoundationWall.BlocksCost = res.FoundationWall.GrossBlocks * prices.Price(BlockLookup(firstNonEmpty(s.FoundationBlockName, "Standard Block")))
		res.BlocksCost = res.FoundationWall.BlocksCost
	}
	if res.Waterproofing != nil {
		res.WaterproofingCost = res.Waterproofing.Cost
	}

	res.TotalCost = res.CementCost + res.SandCost + res.StoneCost + res.WaterCost +
		res.FormworkCost + res.AggregateCost + res.BlocksCost + res.WaterproofingCost
	res.UnitRate = shared.SafeDivide(res.TotalCost, res.MainVolume)
}

func applyBeds(res *Result, row Row, footprint float64, s Settings) {
	if row.ConcreteBed != nil {
		thickness := shared.PositiveOr(dimension(row.ConcreteBed.Thickness), s.BedThickness)
		ratio := mix.ParseConcreteRatio(firstNonEmpty(row.ConcreteBed.Mix, s.BlindingMix))
		res.Blinding = mix.ConcreteMaterials(footprint*thickness, ratio)
	}
	if row.AggregateBed != nil {
		thickness := shared.PositiveOr(dimension(row.AggregateBed.Thickness), s.AggregateBedThickness)
		res.AggregateVolume = footprint * thickness
		res.GrossAggregateVolume = s.Wastage.Continuous(shared.MaterialAggregate, res.AggregateVolume)
	}
}

// foundationWall lays blocks along the wall line up to the given height
func foundationWall(fw FoundationWall, t ElementType, geo shape, number float64, s Settings) *WallResult {
	length := dimension(fw.Length)
	if length == 0 {
		length = geo.perimeter
		if t == TypeStripFooting || t == TypeGroundBeam {
			length = geo.perimeter / 2
		}
	}
	height := dimension(fw.Height)
	block := s.FoundationBlock
	if block.Length <= 0 || block.Height <= 0 {
		block = mix.StandardBlock
	}

	grid := mix.BlockGrid(length, height, block, s.Joint)
	blocks := grid.Blocks * number
	mortar := blocks * mix.MortarPerBlock(block, s.Joint)

	return &WallResult{
		Length:       length,
		Height:       height,
		Area:         length * height * number,
		NetBlocks:    blocks,
		GrossBlocks:  s.Wastage.Count(shared.MaterialBlocks, blocks),
		MortarVolume: mortar,
		Mortar:       mix.MortarMaterials(mortar, mix.ParseMortarRatio(s.MortarRatio)),
	}
}

func waterproofing(wp Waterproofing, t ElementType, geo shape, number float64, prices pricing.Source, s Settings) *WaterproofingResult {
	out := &WaterproofingResult{}
	w := s.Wastage
	if wp.IncludesDPC {
		width := shared.PositiveOr(dimension(wp.DPCWidth), s.DPCWidth)
		out.DPCArea = geo.perimeter * width * number
		out.GrossDPCArea = w.Continuous(shared.MaterialWaterproofing, out.DPCArea)
		out.Cost += out.GrossDPCArea * prices.Price(DPCLookup)
	}
	if wp.IncludesPolythene {
		out.PolytheneArea = geo.footprint * number
		out.GrossPolytheneArea = w.Continuous(shared.MaterialWaterproofing, out.PolytheneArea)
		out.Cost += out.GrossPolytheneArea * prices.Price(PolytheneLookup)
	}
	if wp.IncludesMembrane {
		area := geo.footprint
		if t.isTank() {
			area = geo.wetArea
		}
		out.MembraneArea = area * number
		out.GrossMembraneArea = w.Continuous(shared.MaterialWaterproofing, out.MembraneArea)
		out.Cost += out.GrossMembraneArea * prices.Price(MembraneLookup)
	}
	return out
}

// rowNumber parses the repetition count; blank or non-positive means one
func rowNumber(s string) float64 {
	n := shared.SafeParseIntOr(s, 1)
	if n <= 0 {
		return 1
	}
	return float64(n)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
