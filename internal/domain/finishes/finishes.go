package finishes

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// Category is the finish trade
type Category string

const (
	CategoryFlooring   Category = "flooring"
	CategoryWallFinish Category = "wall-finish"
	CategoryCeiling    Category = "ceiling"
	CategoryPainting   Category = "painting"
	CategoryJoinery    Category = "joinery"
	CategoryGlazing    Category = "glazing"
)

// ParseCategory normalizes and validates a finish category
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	switch c {
	case CategoryFlooring, CategoryWallFinish, CategoryCeiling, CategoryPainting, CategoryJoinery, CategoryGlazing:
		return c, nil
	}
	return "", fmt.Errorf("invalid finish category: %s", s)
}

// priceCategory maps a finish trade onto the catalog
func (c Category) priceCategory() pricing.Category {
	switch c {
	case CategoryFlooring:
		return pricing.CategoryFlooring
	case CategoryWallFinish:
		return pricing.CategoryWallFinish
	case CategoryCeiling:
		return pricing.CategoryCeiling
	case CategoryPainting:
		return pricing.CategoryPaint
	case CategoryJoinery:
		return pricing.CategoryJoinery
	case CategoryGlazing:
		return pricing.CategoryGlazing
	}
	return pricing.CategoryWallFinish
}

// Element is one finish item. Quantity overrides the Length x Width area;
// joinery is counted in pieces.
type Element struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Type     string   `json:"type"`
	Quality  string   `json:"quality"`
	Length   string   `json:"length"`
	Width    string   `json:"width"`
	Quantity string   `json:"quantity"`
	Coats    string   `json:"coats,omitempty"`
}

// Settings holds finishes wastage per category and paint coverage
type Settings struct {
	Wastage       shared.WastagePolicy `json:"wastage"`
	PaintCoverage float64              `json:"paintCoverage" validate:"gte=0"` // m² per litre per coat
	DefaultCoats  int                  `json:"defaultCoats" validate:"gte=0"`
}

// DefaultSettings allows 10% on tiles and boards, 5% elsewhere, none on joinery
func DefaultSettings() Settings {
	return Settings{
		Wastage: shared.NewWastagePolicy(5).
			With(material(CategoryFlooring), 10).
			With(material(CategoryWallFinish), 10).
			With(material(CategoryJoinery), 0),
		PaintCoverage: 10,
		DefaultCoats:  2,
	}
}

func material(c Category) shared.Material {
	return shared.Material(c)
}

// Breakdown is the cost by category
type Breakdown struct {
	Flooring     float64 `json:"flooring"`
	WallFinishes float64 `json:"wallFinishes"`
	Ceiling      float64 `json:"ceiling"`
	Painting     float64 `json:"painting"`
	Joinery      float64 `json:"joinery"`
	Glazing      float64 `json:"glazing"`
	Total        float64 `json:"total"`
}

// Add sums two breakdowns
func (b Breakdown) Add(o Breakdown) Breakdown {
	return Breakdown{
		Flooring:     b.Flooring + o.Flooring,
		WallFinishes: b.WallFinishes + o.WallFinishes,
		Ceiling:      b.Ceiling + o.Ceiling,
		Painting:     b.Painting + o.Painting,
		Joinery:      b.Joinery + o.Joinery,
		Glazing:      b.Glazing + o.Glazing,
		Total:        b.Total + o.Total,
	}
}

func (b *Breakdown) add(c Category, cost float64) {
	switch c {
	case CategoryFlooring:
		b.Flooring += cost
	case CategoryCeiling:
		b.Ceiling += cost
	case CategoryPainting:
		b.Painting += cost
	case CategoryJoinery:
		b.Joinery += cost
	case CategoryGlazing:
		b.Glazing += cost
	default:
		b.WallFinishes += cost
	}
	b.Total += cost
}

// Result is one priced finish element
type Result struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category Category     `json:"category"`
	Area     float64      `json:"area"`
	Line     pricing.Line `json:"line"`
}

// Calculate prices one finish element. Paint is bought in litres:
// area * coats / coverage; everything else in its own unit.
func Calculate(e Element, prices pricing.Source, s Settings) Result {
	area := shared.NonNegative(shared.SafeParseFloat(e.Length)) * shared.NonNegative(shared.SafeParseFloat(e.Width))
	if q := shared.SafeParseFloat(e.Quantity); q > 0 {
		area = q
	}

	net, unit := area, "m²"
	switch e.Category {
	case CategoryPainting:
		coats := float64(shared.SafeParseIntOr(e.Coats, s.DefaultCoats))
		if coats <= 0 {
			coats = 1
		}
		net = shared.SafeDivide(area*coats, shared.PositiveOr(s.PaintCoverage, 10))
		unit = "L"
	case CategoryJoinery:
		unit = "pc"
	}

	name := e.Type
	if name == "" {
		name = string(e.Category)
	}
	l := pricing.NewLookup(e.Category.priceCategory(), name).With(pricing.Attributes{Quality: e.Quality})
	line := pricing.CountLine(prices, l, unit, net, s.Wastage.For(material(e.Category)))
	return Result{ID: e.ID, Name: e.Name, Category: e.Category, Area: area, Line: line}
}

// Project is every element's result with the folded breakdown
type Project struct {
	Elements  []Result  `json:"elements"`
	Breakdown Breakdown `json:"breakdown"`
	TotalCost float64   `json:"totalCost"`
}

// CalculateAll prices every element
func CalculateAll(elements []Element, prices pricing.Source, s Settings) Project {
	p := Project{Elements: make([]Result, 0, len(elements))}
	for _, e := range elements {
		r := Calculate(e, prices, s)
		p.Elements = append(p.Elements, r)
		p.Breakdown.add(r.Category, r.Line.Cost)
	}
	p.TotalCost = p.Breakdown.Total
	return p
}
