package masonry

import (
	"github.com/andrescamacho/takeoff-go/internal/domain/mix"
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

var (
	LintelLookup        = pricing.NewLookup(pricing.CategoryLintel, "Precast Lintel")
	BedJointLookup      = pricing.NewLookup(pricing.CategoryReinforcement, "Bed Joint Reinforcement")
	VerticalBarLookup   = pricing.NewLookup(pricing.CategoryReinforcement, "Vertical Reinforcement")
	DPCLookup           = pricing.NewLookup(pricing.CategoryDPC, "DPC")
	MovementJointLookup = pricing.NewLookup(pricing.CategorySealant, "Movement Joint Sealant")
	ScaffoldingLookup   = pricing.NewLookup(pricing.CategoryScaffolding, "Scaffolding")
	WasteRemovalLookup  = pricing.NewLookup(pricing.CategoryServices, "Waste Removal")
)

// Professional holds the optional workmanship items; a disabled item stays zero
type Professional struct {
	LintelLength        float64 `json:"lintelLength"`
	LintelCost          float64 `json:"lintelCost"`
	BedJointLength      float64 `json:"bedJointLength"`
	BedJointCost        float64 `json:"bedJointCost"`
	VerticalBarLength   float64 `json:"verticalBarLength"`
	VerticalBarCost     float64 `json:"verticalBarCost"`
	DPCArea             float64 `json:"dpcArea"`
	DPCCost             float64 `json:"dpcCost"`
	MovementJointLength float64 `json:"movementJointLength"`
	MovementJointCost   float64 `json:"movementJointCost"`
	ScaffoldingArea     float64 `json:"scaffoldingArea"`
	ScaffoldingCost     float64 `json:"scaffoldingCost"`
	WasteVolume         float64 `json:"wasteVolume"`
	WasteRemovalCost    float64 `json:"wasteRemovalCost"`
	Total               float64 `json:"total"`
}

func professional(acc takeoff, res Result, block mix.Block, prices pricing.Source, s Settings) Professional {
	var p Professional
	w := s.Wastage

	if s.IncludesLintels {
		p.LintelLength = acc.lintelLength
		p.LintelCost = p.LintelLength * prices.Price(LintelLookup)
	}
	if s.IncludesBedJointReinforcement {
		p.BedJointLength = w.Continuous(shared.MaterialRebar, acc.bedJoint)
		p.BedJointCost = p.BedJointLength * prices.Price(BedJointLookup)
	}
	if s.IncludesVerticalReinforcement {
		p.VerticalBarLength = w.Continuous(shared.MaterialRebar, acc.verticalBars)
		p.VerticalBarCost = p.VerticalBarLength * prices.Price(VerticalBarLookup)
	}
	if s.IncludesDPC {
		p.DPCArea = w.Continuous(shared.MaterialWaterproofing, acc.wallLength*block.Thickness)
		p.DPCCost = p.DPCArea * prices.Price(DPCLookup)
	}
	if s.IncludesMovementJoints {
		p.MovementJointLength = acc.movementJoint
		p.MovementJointCost = p.MovementJointLength * prices.Price(MovementJointLookup)
	}
	if s.IncludesScaffolding && wallHeight(res) > s.ScaffoldingMinimumHeight {
		p.ScaffoldingArea = res.WallArea
		p.ScaffoldingCost = p.ScaffoldingArea * prices.Price(ScaffoldingLookup)
	}
	if s.IncludesWasteRemoval {
		p.WasteVolume = res.NetArea * block.Thickness * shared.NonNegative(s.WasteRemovalPercent) / 100
		p.WasteRemovalCost = p.WasteVolume * prices.Price(WasteRemovalLookup)
	}

	p.Total = p.LintelCost + p.BedJointCost + p.VerticalBarCost + p.DPCCost +
		p.MovementJointCost + p.ScaffoldingCost + p.WasteRemovalCost
	return p
}

// wallHeight is the mean wall height, area over length
func wallHeight(res Result) float64 {
	return shared.SafeDivide(res.WallArea, res.Perimeter)
}
