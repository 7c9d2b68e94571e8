package masonry

import (
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// Totals is the project-wide masonry summary
type Totals struct {
	WallArea     float64 `json:"wallArea"`
	NetArea      float64 `json:"netArea"`
	SharedArea   float64 `json:"sharedArea"`
	Blocks       float64 `json:"blocks"`
	CementBags   float64 `json:"cementBags"`
	Sand         float64 `json:"sand"`
	WaterM3      float64 `json:"waterM3"`
	Doors        float64 `json:"doors"`
	Windows      float64 `json:"windows"`
	OpeningsCost float64 `json:"openingsCost"`
	Professional float64 `json:"professional"`
	TotalCost    float64 `json:"totalCost"`
	RatePerM2    float64 `json:"ratePerM2"`
}

// Add folds one room result into the totals
func (t Totals) Add(r Result) Totals {
	t.WallArea += r.WallArea
	t.NetArea += r.NetArea
	t.SharedArea += r.SharedArea
	t.Blocks += r.GrossBlocks
	t.CementBags += r.GrossCementBags
	t.Sand += r.GrossSand
	t.WaterM3 += r.GrossWaterM3
	t.Doors += r.Doors
	t.Windows += r.Windows
	t.OpeningsCost += r.OpeningsCost
	t.Professional += r.Professional.Total
	t.TotalCost += r.TotalCost
	t.RatePerM2 = shared.SafeDivide(t.TotalCost, t.NetArea)
	return t
}

// Project is every room's result, totals, and any connectivity issues
type Project struct {
	Rooms  []Result            `json:"rooms"`
	Totals Totals              `json:"totals"`
	Issues []ConnectivityIssue `json:"issues,omitempty"`
}

// CalculateAll runs Calculate for every room and checks wall links
func CalculateAll(rooms []Room, prices pricing.Source, s Settings) Project {
	p := Project{Rooms: make([]Result, 0, len(rooms)), Issues: CheckConnectivity(rooms)}
	for _, room := range rooms {
		r := Calculate(room, prices, s)
		p.Rooms = append(p.Rooms, r)
		p.Totals = p.Totals.Add(r)
	}
	return p
}
