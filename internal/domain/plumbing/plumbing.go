package plumbing

import (
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// SystemType is the service a plumbing system carries
type SystemType string

const (
	SystemWaterSupply SystemType = "water-supply"
	SystemHotWater    SystemType = "hot-water"
	SystemDrainage    SystemType = "drainage"
	SystemRainwater   SystemType = "rainwater"
	SystemSewer       SystemType = "sewer"
)

// PipeRun is a length of one pipe material and size
type PipeRun struct {
	Material string `json:"material"`
	Size     string `json:"size"` // mm
	Length   string `json:"length"`
	Runs     string `json:"runs"`
}

// Fixture is a sanitary appliance
type Fixture struct {
	Type    string `json:"type"`
	Quality string `json:"quality"`
	Count   string `json:"count"`
}

// Fitting is an elbow, tee, valve or similar
type Fitting struct {
	Type  string `json:"type"`
	Size  string `json:"size"` // mm
	Count string `json:"count"`
}

// System is one plumbing installation input
type System struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	SystemType SystemType `json:"systemType"`
	Pipes      []PipeRun  `json:"pipes,omitempty"`
	Fixtures   []Fixture  `json:"fixtures,omitempty"`
	Fittings   []Fitting  `json:"fittings,omitempty"`
}

// Settings holds plumbing wastage and the fitting allowance
type Settings struct {
	Wastage shared.WastagePolicy `json:"wastage"`
	// FittingsPerMetre adds generic fittings in proportion to pipe length when
	// a run lists none of its own; 0 disables it
	FittingsPerMetre float64 `json:"fittingsPerMetre" validate:"gte=0"`
}

// DefaultSettings allows 10% on pipe and 5% elsewhere
func DefaultSettings() Settings {
	return Settings{Wastage: shared.NewWastagePolicy(5).With(shared.MaterialPipe, 10)}
}

// Breakdown is the cost by category
type Breakdown struct {
	Pipes    float64 `json:"pipes"`
	Fixtures float64 `json:"fixtures"`
	Fittings float64 `json:"fittings"`
	Total    float64 `json:"total"`
}

// Add sums two breakdowns
func (b Breakdown) Add(o Breakdown) Breakdown {
	return Breakdown{
		Pipes:    b.Pipes + o.Pipes,
		Fixtures: b.Fixtures + o.Fixtures,
		Fittings: b.Fittings + o.Fittings,
		Total:    b.Total + o.Total,
	}
}

// Result is the priced take-off for one system
type Result struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	SystemType SystemType     `json:"systemType"`
	Lines      []pricing.Line `json:"lines"`
	PipeLength float64        `json:"pipeLength"`
	Breakdown  Breakdown      `json:"breakdown"`
	TotalCost  float64        `json:"totalCost"`
}

// Calculate prices one system. Pipes and fittings are keyed by size ("20 mm"),
// fixtures by quality; gross quantities are ceil(net * (1+w%)).
func Calculate(sys System, prices pricing.Source, s Settings) Result {
	res := Result{ID: sys.ID, Name: sys.Name, SystemType: sys.SystemType}
	w := s.Wastage

	for _, p := range sys.Pipes {
		net := num(p.Length) * count(p.Runs)
		res.PipeLength += net
		l := pricing.NewLookup(pricing.CategoryPipe, nameOr(p.Material, "PPR Pipe")).With(pricing.Attributes{Size: p.Size})
		line := pricing.CountLine(prices, l, "m", net, w.For(shared.MaterialPipe))
		res.Breakdown.Pipes += line.Cost
		res.Lines = append(res.Lines, line)

		if len(sys.Fittings) == 0 && s.FittingsPerMetre > 0 {
			fl := pricing.NewLookup(pricing.CategoryFitting, "Assorted Fittings").With(pricing.Attributes{Size: p.Size})
			fitting := pricing.CountLine(prices, fl, "pc", net*s.FittingsPerMetre, w.For(shared.MaterialFitting))
			res.Breakdown.Fittings += fitting.Cost
			res.Lines = append(res.Lines, fitting)
		}
	}
	for _, f := range sys.Fixtures {
		l := pricing.NewLookup(pricing.CategoryFixture, nameOr(f.Type, "Fixture")).With(pricing.Attributes{Quality: f.Quality})
		line := pricing.CountLine(prices, l, "pc", count(f.Count), w.For(shared.MaterialFixture))
		res.Breakdown.Fixtures += line.Cost
		res.Lines = append(res.Lines, line)
	}
	for _, f := range sys.Fittings {
		l := pricing.NewLookup(pricing.CategoryFitting, nameOr(f.Type, "Fitting")).With(pricing.Attributes{Size: f.Size})
		line := pricing.CountLine(prices, l, "pc", count(f.Count), w.For(shared.MaterialFitting))
		res.Breakdown.Fittings += line.Cost
		res.Lines = append(res.Lines, line)
	}

	res.Breakdown.Total = res.Breakdown.Pipes + res.Breakdown.Fixtures + res.Breakdown.Fittings
	res.TotalCost = res.Breakdown.Total
	return res
}

// Project is every system's result with the folded breakdown
type Project struct {
	Systems    []Result  `json:"systems"`
	Breakdown  Breakdown `json:"breakdown"`
	PipeLength float64   `json:"pipeLength"`
	TotalCost  float64   `json:"totalCost"`
}

// CalculateAll prices every system
func CalculateAll(systems []System, prices pricing.Source, s Settings) Project {
	p := Project{Systems: make([]Result, 0, len(systems))}
	for _, sys := range systems {
		r := Calculate(sys, prices, s)
		p.Systems = append(p.Systems, r)
		p.Breakdown = p.Breakdown.Add(r.Breakdown)
		p.PipeLength += r.PipeLength
	}
	p.TotalCost = p.Breakdown.Total
	return p
}

func num(s string) float64 {
	return shared.NonNegative(shared.SafeParseFloat(s))
}

func count(s string) float64 {
	return shared.NonNegative(shared.SafeParseFloatOr(s, 1))
}

func nameOr(name, def string) string {
	if name == "" {
		return def
	}
	return name
}
