package electrical

import (
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// SystemType groups the circuits of one installation
type SystemType string

const (
	SystemLighting SystemType = "lighting"
	SystemPower    SystemType = "power"
	SystemData     SystemType = "data"
	SystemSecurity SystemType = "security"
	SystemSolar    SystemType = "solar"
)

// CableRun is a length of one cable type and size, repeated Runs times
type CableRun struct {
	Type   string `json:"type"`
	Size   string `json:"size"` // mm²
	Length string `json:"length"`
	Runs   string `json:"runs"`
}

// Outlet is a socket, switch or other wiring accessory
type Outlet struct {
	Type   string `json:"type"`
	Rating string `json:"rating"` // A
	Count  string `json:"count"`
}

// Light is a luminaire with its control
type Light struct {
	Type        string `json:"type"`
	Wattage     string `json:"wattage"`
	ControlType string `json:"controlType"`
	Count       string `json:"count"`
}

// Board is a consumer unit, distribution board or protective device
type Board struct {
	Type   string `json:"type"`
	Rating string `json:"rating"` // A
	Count  string `json:"count"`
}

// System is one electrical installation input
type System struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	SystemType   SystemType `json:"systemType"`
	Cables       []CableRun `json:"cables,omitempty"`
	Outlets      []Outlet   `json:"outlets,omitempty"`
	Lighting     []Light    `json:"lighting,omitempty"`
	Distribution []Board    `json:"distribution,omitempty"`
}

// Settings holds electrical wastage; cable is the only material that is cut
type Settings struct {
	Wastage shared.WastagePolicy `json:"wastage"`
}

// DefaultSettings allows 10% on cable and 5% on fittings
func DefaultSettings() Settings {
	return Settings{Wastage: shared.NewWastagePolicy(5).With(shared.MaterialCable, 10)}
}

// Breakdown is the cost by category
type Breakdown struct {
	Cables       float64 `json:"cables"`
	Outlets      float64 `json:"outlets"`
	Lighting     float64 `json:"lighting"`
	Distribution float64 `json:"distribution"`
	Total        float64 `json:"total"`
}

// Add sums two breakdowns
func (b Breakdown) Add(o Breakdown) Breakdown {
	return Breakdown{
		Cables:       b.Cables + o.Cables,
		Outlets:      b.Outlets + o.Outlets,
		Lighting:     b.Lighting + o.Lighting,
		Distribution: b.Distribution + o.Distribution,
		Total:        b.Total + o.Total,
	}
}

// Result is the priced take-off for one system
type Result struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	SystemType  SystemType     `json:"systemType"`
	Lines       []pricing.Line `json:"lines"`
	CableLength float64        `json:"cableLength"`
	Points      float64        `json:"points"`
	Breakdown   Breakdown      `json:"breakdown"`
	TotalCost   float64        `json:"totalCost"`
}

// Calculate prices one system.
//
// Business Rules:
//   - cable net length = length * runs; every gross quantity is ceil(net * (1+w%))
//   - cable keyed by size ("2.5 mm²"), outlets and boards by rating ("13 A"),
//     lights by wattage and control ("18W - Switched")
func Calculate(sys System, prices pricing.Source, s Settings) Result {
	res := Result{ID: sys.ID, Name: sys.Name, SystemType: sys.SystemType}
	w := s.Wastage

	for _, c := range sys.Cables {
		net := num(c.Length) * count(c.Runs)
		res.CableLength += net
		l := pricing.NewLookup(pricing.CategoryCable, nameOr(c.Type, "Cable")).With(pricing.Attributes{Size: c.Size})
		line := pricing.CountLine(prices, l, "m", net, w.For(shared.MaterialCable))
		res.Breakdown.Cables += line.Cost
		res.Lines = append(res.Lines, line)
	}
	for _, o := range sys.Outlets {
		net := count(o.Count)
		res.Points += net
		l := pricing.NewLookup(pricing.CategoryOutlet, nameOr(o.Type, "Socket Outlet")).With(pricing.Attributes{Rating: o.Rating})
		line := pricing.CountLine(prices, l, "pc", net, w.For(shared.MaterialOutlet))
		res.Breakdown.Outlets += line.Cost
		res.Lines = append(res.Lines, line)
	}
	for _, lt := range sys.Lighting {
		net := count(lt.Count)
		res.Points += net
		l := pricing.NewLookup(pricing.CategoryLighting, nameOr(lt.Type, "Light Fitting")).
			With(pricing.Attributes{Wattage: lt.Wattage, ControlType: lt.ControlType})
		line := pricing.CountLine(prices, l, "pc", net, w.For(shared.MaterialLighting))
		res.Breakdown.Lighting += line.Cost
		res.Lines = append(res.Lines, line)
	}
	for _, b := range sys.Distribution {
		l := pricing.NewLookup(pricing.CategoryDistribution, nameOr(b.Type, "Consumer Unit")).With(pricing.Attributes{Rating: b.Rating})
		line := pricing.CountLine(prices, l, "pc", count(b.Count), w.For(shared.MaterialDistribution))
		res.Breakdown.Distribution += line.Cost
		res.Lines = append(res.Lines, line)
	}

	res.Breakdown.Total = res.Breakdown.Cables + res.Breakdown.Outlets + res.Breakdown.Lighting + res.Breakdown.Distribution
	res.TotalCost = res.Breakdown.Total
	return res
}

// Project is every system's result with the folded breakdown
type Project struct {
	Systems     []Result  `json:"systems"`
	Breakdown   Breakdown `json:"breakdown"`
	CableLength float64   `json:"cableLength"`
	Points      float64   `json:"points"`
	TotalCost   float64   `json:"totalCost"`
}

// CalculateAll prices every system
func CalculateAll(systems []System, prices pricing.Source, s Settings) Project {
	p := Project{Systems: make([]Result, 0, len(systems))}
	for _, sys := range systems {
		r := Calculate(sys, prices, s)
		p.Systems = append(p.Systems, r)
		p.Breakdown = p.Breakdown.Add(r.Breakdown)
		p.CableLength += r.CableLength
		p.Points += r.Points
	}
	p.TotalCost = p.Breakdown.Total
	return p
}

func num(s string) float64 {
	return shared.NonNegative(shared.SafeParseFloat(s))
}

// count parses a quantity; blank means one
func count(s string) float64 {
	return shared.NonNegative(shared.SafeParseFloatOr(s, 1))
}

func nameOr(name, def string) string {
	if name == "" {
		return def
	}
	return name
}
