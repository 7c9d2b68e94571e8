package roofing

import (
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// Structure is one roof input. Length and Span are the building's plan
// dimensions, Pitch is in degrees, spacings are centre to centre in metres.
type Structure struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	RoofType           RoofType `json:"roofType"`
	Length             string   `json:"length"`
	Span               string   `json:"span"`
	Pitch              string   `json:"pitch"`
	Overhang           string   `json:"overhang"`
	RafterSpacing      string   `json:"rafterSpacing"`
	PurlinSpacing      string   `json:"purlinSpacing"`
	TimberSize         string   `json:"timberSize"`
	CoveringType       string   `json:"coveringType"`
	CoveringQuality    string   `json:"coveringQuality"`
	IncludesInsulation bool     `json:"includesInsulation"`
	InsulationType     string   `json:"insulationType"`
	IncludesGutters    bool     `json:"includesGutters"`
	Number             string   `json:"number"`
}

// Settings holds roofing wastage and fixing allowances
type Settings struct {
	Wastage     shared.WastagePolicy `json:"wastage"`
	NailsPerM2  float64              `json:"nailsPerM2" validate:"gte=0"` // kg of fixings per m² of covering
	DefaultType string               `json:"defaultType"`
}

// DefaultSettings allows 10% on covering and timber, 5% elsewhere
func DefaultSettings() Settings {
	return Settings{
		Wastage: shared.NewWastagePolicy(5).
			With(shared.MaterialCovering, 10).
			With(shared.MaterialTimber, 10),
		NailsPerM2:  0.1,
		DefaultType: "Iron Sheet",
	}
}

// Breakdown is the cost by category
type Breakdown struct {
	Timber      float64 `json:"timber"`
	Covering    float64 `json:"covering"`
	Accessories float64 `json:"accessories"`
	Insulation  float64 `json:"insulation"`
	Total       float64 `json:"total"`
}

// Add sums two breakdowns
func (b Breakdown) Add(o Breakdown) Breakdown {
	return Breakdown{
		Timber:      b.Timber + o.Timber,
		Covering:    b.Covering + o.Covering,
		Accessories: b.Accessories + o.Accessories,
		Insulation:  b.Insulation + o.Insulation,
		Total:       b.Total + o.Total,
	}
}

// Result is the priced take-off for one roof
type Result struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	RoofType  RoofType       `json:"roofType"`
	Number    float64        `json:"number"`
	Geometry  Geometry       `json:"geometry"`
	Lines     []pricing.Line `json:"lines"`
	Breakdown Breakdown      `json:"breakdown"`
	TotalCost float64        `json:"totalCost"`
}

// Calculate measures and prices one roof
func Calculate(r Structure, prices pricing.Source, s Settings) Result {
	if r.RoofType == "" {
		r.RoofType = RoofGable
	}
	number := shared.PositiveOr(shared.SafeParseFloat(r.Number), 1)
	g := Measure(r)
	res := Result{ID: r.ID, Name: r.Name, RoofType: r.RoofType, Number: number, Geometry: g}
	w := s.Wastage

	add := func(bucket *float64, line pricing.Line) {
		*bucket += line.Cost
		res.Lines = append(res.Lines, line)
	}

	timber := pricing.NewLookup(pricing.CategoryTimber, "Structural Timber").With(pricing.Attributes{Size: r.TimberSize})
	timberPct := w.For(shared.MaterialTimber)
	add(&res.Breakdown.Timber, relabel(pricing.CountLine(prices, timber, "m", g.RafterTimber*number, timberPct), "Rafters"))
	add(&res.Breakdown.Timber, relabel(pricing.CountLine(prices, timber, "m", g.PurlinTimber*number, timberPct), "Purlins"))
	add(&res.Breakdown.Timber, relabel(pricing.CountLine(prices, timber, "m", g.WallPlate*number, timberPct), "Wall plate"))

	coveringName := r.CoveringType
	if coveringName == "" {
		coveringName = s.DefaultType
	}
	covering := pricing.NewLookup(pricing.CategoryRoofCovering, coveringName).With(pricing.Attributes{Quality: r.CoveringQuality})
	add(&res.Breakdown.Covering, pricing.CountLine(prices, covering, "m²", g.RoofArea*number, w.For(shared.MaterialCovering)))

	accPct := w.For(shared.MaterialAccessory)
	if ridge := (g.RidgeLength + g.HipLength) * number; ridge > 0 {
		add(&res.Breakdown.Accessories, pricing.CountLine(prices, pricing.NewLookup(pricing.CategoryRoofAccessory, "Ridge Cap"), "m", ridge, accPct))
	}
	add(&res.Breakdown.Accessories, pricing.CountLine(prices, pricing.NewLookup(pricing.CategoryRoofAccessory, "Fascia Board"), "m", (g.EavesLength+g.VergeLength)*number, accPct))
	add(&res.Breakdown.Accessories, pricing.CountLine(prices, pricing.NewLookup(pricing.CategoryRoofAccessory, "Roofing Nails"), "kg", g.RoofArea*number*shared.NonNegative(s.NailsPerM2), accPct))
	if r.IncludesGutters {
		add(&res.Breakdown.Accessories, pricing.CountLine(prices, pricing.NewLookup(pricing.CategoryRoofAccessory, "Gutter"), "m", g.EavesLength*number, accPct))
	}

	if r.IncludesInsulation {
		name := r.InsulationType
		if name == "" {
			name = "Roof Insulation"
		}
		// laid on the ceiling, measured on plan
		plan := g.PlanLength * g.PlanWidth * number
		add(&res.Breakdown.Insulation, pricing.CountLine(prices, pricing.NewLookup(pricing.CategoryInsulation, name), "m²", plan, w.For(shared.MaterialInsulation)))
	}

	res.Breakdown.Total = res.Breakdown.Timber + res.Breakdown.Covering + res.Breakdown.Accessories + res.Breakdown.Insulation
	res.TotalCost = res.Breakdown.Total
	return res
}

func relabel(l pricing.Line, description string) pricing.Line {
	l.Description = description
	return l
}

// Project is every roof's result with the folded breakdown
type Project struct {
	Roofs     []Result  `json:"roofs"`
	Breakdown Breakdown `json:"breakdown"`
	RoofArea  float64   `json:"roofArea"`
	TotalCost float64   `json:"totalCost"`
}

// CalculateAll prices every roof
func CalculateAll(roofs []Structure, prices pricing.Source, s Settings) Project {
	p := Project{Roofs: make([]Result, 0, len(roofs))}
	for _, r := range roofs {
		res := Calculate(r, prices, s)
		p.Roofs = append(p.Roofs, res)
		p.Breakdown = p.Breakdown.Add(res.Breakdown)
		p.RoofArea += res.Geometry.RoofArea * res.Number
	}
	p.TotalCost = p.Breakdown.Total
	return p
}
