package rebar

import (
	"sort"

	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
)

// ProjectResult sums the rebar take-off of every element
type ProjectResult struct {
	Elements         []CalcResult `json:"elements"`
	Sizes            []SizeTotal  `json:"sizes,omitempty"`
	TotalNetWeight   float64      `json:"totalNetWeight"`
	TotalGrossWeight float64      `json:"totalGrossWeight"`
	TotalBars        float64      `json:"totalBars"`
	TotalSheets      float64      `json:"totalSheets"`
	BindingWire      float64      `json:"bindingWire"`
	TotalCost        float64      `json:"totalCost"`
	AllCompliant     bool         `json:"allCompliant"`
	AverageScore     float64      `json:"averageScore"`
}

// CalculateProject runs Calculate for every element and folds the results
func CalculateProject(elements []Element, prices pricing.Source, s Settings) ProjectResult {
	p := ProjectResult{Elements: make([]CalcResult, 0, len(elements)), AllCompliant: true}
	bySize := make(map[BarSize]SizeTotal)
	var scores float64

	for _, e := range elements {
		r := Calculate(e, prices, s)
		p.Elements = append(p.Elements, r)
		p.TotalNetWeight += r.NetWeight
		p.TotalGrossWeight += r.GrossWeight
		p.TotalBars += r.GrossBars
		p.TotalSheets += r.GrossSheets
		p.BindingWire += r.GrossBindingWire
		p.TotalCost += r.TotalCost
		p.AllCompliant = p.AllCompliant && r.Compliance.IsValid
		scores += r.Compliance.Score

		for _, st := range r.Sizes {
			acc := bySize[st.Size]
			acc.Size = st.Size
			acc.TotalLength += st.TotalLength
			acc.NetWeight += st.NetWeight
			acc.GrossWeight += st.GrossWeight
			acc.NetBars += st.NetBars
			acc.GrossBars += st.GrossBars
			acc.UnitPrice = st.UnitPrice
			acc.Cost += st.Cost
			bySize[st.Size] = acc
		}
	}

	for _, st := range bySize {
		p.Sizes = append(p.Sizes, st)
	}
	sort.Slice(p.Sizes, func(i, j int) bool { return p.Sizes[i].Size.Diameter() < p.Sizes[j].Size.Diameter() })
	if len(elements) > 0 {
		p.AverageScore = scores / float64(len(elements))
	}
	return p
}
