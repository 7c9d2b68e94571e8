package estimate

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/takeoff-go/internal/application/logging"
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// UserScope is the override scope shared by every quote
const UserScope = "user"

// PriceSourceBuilder assembles the resolution chain from stored prices:
// user overrides, then the catalog scaled by the region multiplier, then
// the built-in fallback table.
type PriceSourceBuilder struct {
	catalogRepo   pricing.CatalogRepository
	regionRepo    pricing.RegionRepository
	overrideRepo  pricing.OverrideRepository
	defaultRegion string
	multiplier    float64
}

// NewPriceSourceBuilder creates a builder. defaultRegion is used when a request
// names none; multiplier applies when no region is known at all.
func NewPriceSourceBuilder(
	catalogRepo pricing.CatalogRepository,
	regionRepo pricing.RegionRepository,
	overrideRepo pricing.OverrideRepository,
	defaultRegion string,
	multiplier float64,
) *PriceSourceBuilder {
	return &PriceSourceBuilder{
		catalogRepo:   catalogRepo,
		regionRepo:    regionRepo,
		overrideRepo:  overrideRepo,
		defaultRegion: defaultRegion,
		multiplier:    shared.PositiveOr(multiplier, 1),
	}
}

// Build loads the catalog, region and overrides and returns the resolver
func (b *PriceSourceBuilder) Build(ctx context.Context, region string) (*pricing.Resolver, error) {
	logger := logging.LoggerFromContext(ctx)

	entries, err := b.catalogRepo.ListEntries(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	multiplier, err := b.regionMultiplier(ctx, region)
	if err != nil {
		return nil, err
	}

	var overrides []pricing.Override
	if b.overrideRepo != nil {
		overrides, err = b.overrideRepo.ListOverrides(ctx, UserScope)
		if err != nil {
			return nil, fmt.Errorf("failed to load price overrides: %w", err)
		}
	}

	logger.Log(logging.LevelDebug, "Price source built", map[string]interface{}{
		"catalog_entries": len(entries),
		"overrides":       len(overrides),
		"multiplier":      multiplier,
	})

	return pricing.NewResolver(
		pricing.NewOverrideStrategy(overrides),
		pricing.NewCatalogStrategy(entries, multiplier),
		pricing.NewDefaultStrategy(pricing.FallbackPrices()),
	), nil
}

func (b *PriceSourceBuilder) regionMultiplier(ctx context.Context, code string) (float64, error) {
	if code == "" {
		code = b.defaultRegion
	}
	if code == "" || b.regionRepo == nil {
		return b.multiplier, nil
	}

	region, err := b.regionRepo.FindByCode(ctx, code)
	if err != nil {
		var notFound *shared.RegionNotFoundError
		if errors.As(err, &notFound) {
			logging.LoggerFromContext(ctx).Log(logging.LevelWarn, "Unknown region, using default multiplier", map[string]interface{}{
				"region":     code,
				"multiplier": b.multiplier,
			})
			return b.multiplier, nil
		}
		return 0, fmt.Errorf("failed to load region: %w", err)
	}
	return shared.PositiveOr(region.Multiplier, 1), nil
}
