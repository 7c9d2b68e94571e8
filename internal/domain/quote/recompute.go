package quote

import (
	"github.com/andrescamacho/takeoff-go/internal/domain/concrete"
	"github.com/andrescamacho/takeoff-go/internal/domain/electrical"
	"github.com/andrescamacho/takeoff-go/internal/domain/finishes"
	"github.com/andrescamacho/takeoff-go/internal/domain/masonry"
	"github.com/andrescamacho/takeoff-go/internal/domain/plumbing"
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/rebar"
	"github.com/andrescamacho/takeoff-go/internal/domain/roofing"
)

// Settings groups the quantity-surveying settings of every domain
type Settings struct {
	Concrete   concrete.Settings   `json:"concrete" yaml:"concrete"`
	Masonry    masonry.Settings    `json:"masonry" yaml:"masonry"`
	Rebar      rebar.Settings      `json:"rebar" yaml:"rebar"`
	Electrical electrical.Settings `json:"electrical" yaml:"electrical"`
	Plumbing   plumbing.Settings   `json:"plumbing" yaml:"plumbing"`
	Roofing    roofing.Settings    `json:"roofing" yaml:"roofing"`
	Finishes   finishes.Settings   `json:"finishes" yaml:"finishes"`
	Financial  FinancialSettings   `json:"financial" yaml:"financial"`
}

// DefaultSettings returns every domain's defaults
func DefaultSettings() Settings {
	return Settings{
		Concrete:   concrete.DefaultSettings(),
		Masonry:    masonry.DefaultSettings(),
		Rebar:      rebar.DefaultSettings(),
		Electrical: electrical.DefaultSettings(),
		Plumbing:   plumbing.DefaultSettings(),
		Roofing:    roofing.DefaultSettings(),
		Finishes:   finishes.DefaultSettings(),
		Financial:  DefaultFinancialSettings(),
	}
}

// State is everything a quote is computed from
type State struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	Region     string              `json:"region,omitempty"`
	Concrete   []concrete.Row      `json:"concrete,omitempty"`
	Masonry    []masonry.Room      `json:"masonry,omitempty"`
	Rebar      []rebar.Element     `json:"rebar,omitempty"`
	Electrical []electrical.System `json:"electrical,omitempty"`
	Plumbing   []plumbing.System   `json:"plumbing,omitempty"`
	Roofing    []roofing.Structure `json:"roofing,omitempty"`
	Finishes   []finishes.Element  `json:"finishes,omitempty"`
	ExtraItems []ExtraItem         `json:"extra_items,omitempty"`
	Overrides  []pricing.Override  `json:"price_overrides,omitempty"`
	Settings   Settings            `json:"settings"`
}

// Calculations holds the result of every domain calculator, under the keys
// the quote record stores them with
type Calculations struct {
	Concrete   concrete.Project    `json:"concrete_materials"`
	Masonry    masonry.Project     `json:"masonry_materials"`
	Rebar      rebar.ProjectResult `json:"rebar_calculations"`
	Electrical electrical.Project  `json:"electrical_calculations"`
	Plumbing   plumbing.Project    `json:"plumbing_calculations"`
	Roofing    roofing.Project     `json:"roofing_calculations"`
	Finishes   finishes.Project    `json:"finishes_calculations"`
}

// Result is a fully recomputed quote
type Result struct {
	Calculations
	BOQ              BOQ              `json:"boq"`
	Totals           Totals           `json:"totals"`
	Summary          Summary          `json:"summary"`
	UnresolvedPrices []pricing.Lookup `json:"unresolved_prices"`
}

// Recompute runs every calculator over the state from scratch, then builds
// the bill and applies the financial model.
//
// Business Rules:
//   - nothing is cached; the same state and prices always give the same result
//   - the state is never modified
//   - quote-level price overrides win over prices
//   - a lookup no source can price costs 0 and is listed in UnresolvedPrices
func Recompute(state State, prices pricing.Source) Result {
	var src pricing.Source = prices
	if len(state.Overrides) > 0 {
		src = withOverrides(state.Overrides, prices)
	}
	tracker := pricing.Track(src)
	s := state.Settings

	c := Calculations{
		Concrete:   concrete.CalculateAll(state.Concrete, tracker, s.Concrete),
		Masonry:    masonry.CalculateAll(state.Masonry, tracker, s.Masonry),
		Rebar:      rebar.CalculateProject(state.Rebar, tracker, s.Rebar),
		Electrical: electrical.CalculateAll(state.Electrical, tracker, s.Electrical),
		Plumbing:   plumbing.CalculateAll(state.Plumbing, tracker, s.Plumbing),
		Roofing:    roofing.CalculateAll(state.Roofing, tracker, s.Roofing),
		Finishes:   finishes.CalculateAll(state.Finishes, tracker, s.Finishes),
	}

	boq := BuildBOQ(c, state.ExtraItems)
	return Result{
		Calculations:     c,
		BOQ:              boq,
		Totals:           TotalsOf(c, state.ExtraItems),
		Summary:          CalculateSummary(boq, s.Financial),
		UnresolvedPrices: tracker.Unresolved(),
	}
}

// layered puts quote overrides in front of another source
type layered struct {
	overrides *pricing.OverrideStrategy
	next      pricing.Source
}

func withOverrides(overrides []pricing.Override, next pricing.Source) *layered {
	return &layered{overrides: pricing.NewOverrideStrategy(overrides), next: next}
}

func (l *layered) Price(lookup pricing.Lookup) float64 {
	res, _ := l.Resolve(lookup)
	return res.Price
}

func (l *layered) Resolve(lookup pricing.Lookup) (pricing.Resolution, bool) {
	if p, ok := l.overrides.Resolve(lookup); ok {
		return pricing.Resolution{Price: p, Strategy: l.overrides.Name()}, true
	}
	if r, ok := l.next.(interface {
		Resolve(pricing.Lookup) (pricing.Resolution, bool)
	}); ok {
		return r.Resolve(lookup)
	}
	if l.next == nil {
		return pricing.Resolution{}, false
	}
	p := l.next.Price(lookup)
	return pricing.Resolution{Price: p, Strategy: "source"}, p != 0
}
