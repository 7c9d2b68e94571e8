package concrete

import (
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// Totals is the project-wide concrete summary
type Totals struct {
	Volume        float64 `json:"volume"`
	FormworkArea  float64 `json:"formworkArea"`
	CementBags    float64 `json:"cementBags"`
	Sand          float64 `json:"sand"`
	Stone         float64 `json:"stone"`
	WaterM3       float64 `json:"waterM3"`
	Aggregate     float64 `json:"aggregate"`
	Blocks        float64 `json:"blocks"`
	MaterialsCost float64 `json:"materialsCost"`
	TotalCost     float64 `json:"totalCost"`
	UnitRate      float64 `json:"unitRate"`
}

// Add folds one row result into the totals
func (t Totals) Add(r Result) Totals {
	t.Volume += r.MainVolume
	t.FormworkArea += r.GrossFormwork
	t.CementBags += r.GrossCementBags
	t.Sand += r.GrossSand
	t.Stone += r.GrossStone
	t.WaterM3 += r.GrossWaterM3
	t.Aggregate += r.GrossAggregateVolume
	if r.FoundationWall != nil {
		t.Blocks += r.FoundationWall.GrossBlocks
	}
	t.MaterialsCost += r.TotalCost - r.FormworkCost
	t.TotalCost += r.TotalCost
	t.UnitRate = shared.SafeDivide(t.TotalCost, t.Volume)
	return t
}

// Project is every row's result plus totals
type Project struct {
	Rows   []Result `json:"rows"`
	Totals Totals   `json:"totals"`
}

// CalculateAll runs Calculate for every row
func CalculateAll(rows []Row, prices pricing.Source, s Settings) Project {
	p := Project{Rows: make([]Result, 0, len(rows))}
	for _, row := range rows {
		r := Calculate(row, prices, s)
		p.Rows = append(p.Rows, r)
		p.Totals = p.Totals.Add(r)
	}
	return p
}
