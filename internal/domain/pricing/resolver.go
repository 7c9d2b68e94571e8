package pricing

import (
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// Source resolves a lookup to a unit price. Unresolved lookups return 0.
type Source interface {
	Price(l Lookup) float64
}

// Strategy is one step of the price resolution chain
type Strategy interface {
	Name() string
	Resolve(l Lookup) (float64, bool)
}

// Resolution records which strategy priced a lookup
type Resolution struct {
	Price    float64 `json:"price"`
	Strategy string  `json:"strategy"`
}

// Resolver walks an ordered list of strategies and returns the first hit.
// Typical order: user override, catalog × regional multiplier, hardcoded default.
type Resolver struct {
	strategies []Strategy
}

// NewResolver creates a resolver; nil strategies are skipped
func NewResolver(strategies ...Strategy) *Resolver {
	r := &Resolver{}
	for _, s := range strategies {
		if s != nil {
			r.strategies = append(r.strategies, s)
		}
	}
	return r
}

// NewCatalog is a resolver over a single catalog at multiplier 1
func NewCatalog(entries ...Entry) *Resolver {
	return NewResolver(NewCatalogStrategy(entries, 1))
}

// Resolve returns the price and the strategy that produced it
func (r *Resolver) Resolve(l Lookup) (Resolution, bool) {
	for _, s := range r.strategies {
		if price, ok := s.Resolve(l); ok {
			return Resolution{Price: price, Strategy: s.Name()}, true
		}
	}
	return Resolution{}, false
}

// Price returns the resolved unit price, or 0 when no strategy knows the item
func (r *Resolver) Price(l Lookup) float64 {
	res, ok := r.Resolve(l)
	if !ok {
		return 0
	}
	return res.Price
}

// Override is a user-entered price that wins over the catalog
type Override struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
	Variant  string   `json:"variant,omitempty"`
	Price    float64  `json:"price"`
}

// OverrideStrategy resolves user overrides, most specific key first
type OverrideStrategy struct {
	prices map[string]float64
}

// NewOverrideStrategy indexes overrides by category, name and variant
func NewOverrideStrategy(overrides []Override) *OverrideStrategy {
	prices := make(map[string]float64, len(overrides))
	for _, o := range overrides {
		if !shared.IsFinite(o.Price) || o.Price < 0 {
			continue
		}
		prices[entryKey(o.Category, o.Name, o.Variant)] = o.Price
	}
	return &OverrideStrategy{prices: prices}
}

func (s *OverrideStrategy) Name() string { return "override" }

func (s *OverrideStrategy) Resolve(l Lookup) (float64, bool) {
	if variant := l.Variant(); variant != "" {
		if p, ok := s.prices[entryKey(l.Category, l.Name, variant)]; ok {
			return p, true
		}
	}
	p, ok := s.prices[entryKey(l.Category, l.Name, "")]
	return p, ok
}

// CatalogStrategy prices from base catalog entries scaled by a regional multiplier
type CatalogStrategy struct {
	entries    map[string]Entry
	multiplier float64
}

// NewCatalogStrategy indexes entries by category and name.
// A non-positive multiplier is treated as 1.
func NewCatalogStrategy(entries []Entry, regionalMultiplier float64) *CatalogStrategy {
	indexed := make(map[string]Entry, len(entries))
	for _, e := range entries {
		indexed[entryKey(e.Category, e.Name, "")] = e
	}
	return &CatalogStrategy{
		entries:    indexed,
		multiplier: shared.PositiveOr(regionalMultiplier, 1),
	}
}

func (s *CatalogStrategy) Name() string { return "catalog" }

func (s *CatalogStrategy) Resolve(l Lookup) (float64, bool) {
	e, ok := s.entries[entryKey(l.Category, l.Name, "")]
	if !ok {
		return 0, false
	}
	price := e.PriceFor(l.Variant())
	if !shared.IsFinite(price) || price < 0 {
		return 0, false
	}
	return price * s.multiplier, true
}

// DefaultStrategy is the last-resort hardcoded price table
type DefaultStrategy struct {
	catalog *CatalogStrategy
}

// NewDefaultStrategy creates a fallback over the given table
func NewDefaultStrategy(table []Entry) *DefaultStrategy {
	return &DefaultStrategy{catalog: NewCatalogStrategy(table, 1)}
}

func (s *DefaultStrategy) Name() string { return "default" }

func (s *DefaultStrategy) Resolve(l Lookup) (float64, bool) {
	return s.catalog.Resolve(l)
}

// FallbackPrices is the built-in table used when neither overrides nor the
// catalog know an item. It only covers commodity site items.
func FallbackPrices() []Entry {
	return []Entry{
		{Name: "Water", Unit: "m³", Price: 150, Category: CategoryWater},
		{Name: "Binding Wire", Unit: "kg", Price: 250, Category: CategoryBindingWire},
		{Name: "Polythene Sheet", Unit: "m²", Price: 80, Category: CategoryWaterproofing},
		{Name: "Waste Removal", Unit: "m³", Price: 1200, Category: CategoryServices},
		{Name: "Scaffolding", Unit: "m²", Price: 150, Category: CategoryScaffolding},
	}
}
