package pricing

import "context"

// Region scales catalog prices for a geographic market
type Region struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

// CatalogRepository defines persistence operations for the material catalog
type CatalogRepository interface {
	// ListEntries returns every catalog entry, optionally limited to one category
	ListEntries(ctx context.Context, category Category) ([]Entry, error)

	// UpsertEntries inserts or replaces entries keyed by category and name
	UpsertEntries(ctx context.Context, entries []Entry) error
}

// RegionRepository looks up regional price multipliers
type RegionRepository interface {
	FindByCode(ctx context.Context, code string) (*Region, error)
	Save(ctx context.Context, region *Region) error
}

// OverrideRepository stores user price overrides per scope (user or quote)
type OverrideRepository interface {
	ListOverrides(ctx context.Context, scope string) ([]Override, error)
	SaveOverride(ctx context.Context, scope string, override Override) error
}
