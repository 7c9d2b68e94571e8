package estimate

import (
	"fmt"

	"github.com/andrescamacho/takeoff-go/internal/application/mediator"
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
)

// Dependencies are the ports the estimate handlers need.
// Extractor may be nil when plan extraction is not configured.
type Dependencies struct {
	CatalogRepo   pricing.CatalogRepository
	RegionRepo    pricing.RegionRepository
	OverrideRepo  pricing.OverrideRepository
	QuoteRepo     quote.Repository
	Extractor     PlanExtractor
	DefaultRegion string
	Multiplier    float64
}

// RegisterHandlers wires every estimate request to its handler
func RegisterHandlers(m mediator.Mediator, deps Dependencies) error {
	prices := NewPriceSourceBuilder(deps.CatalogRepo, deps.RegionRepo, deps.OverrideRepo, deps.DefaultRegion, deps.Multiplier)
	store := NewQuoteStoreHandler(deps.QuoteRepo)
	catalog := NewCatalogHandler(deps.CatalogRepo, deps.RegionRepo, deps.OverrideRepo)

	registrations := []error{
		mediator.RegisterHandler[*RecomputeQuoteQuery](m, NewRecomputeQuoteHandler(prices)),
		mediator.RegisterHandler[*SaveQuoteCommand](m, NewSaveQuoteHandler(deps.QuoteRepo, prices)),
		mediator.RegisterHandler[*GetQuoteQuery](m, store),
		mediator.RegisterHandler[*ListQuotesQuery](m, store),
		mediator.RegisterHandler[*DeleteQuoteCommand](m, store),
		mediator.RegisterHandler[*ImportMaterialsCommand](m, catalog),
		mediator.RegisterHandler[*ListMaterialsQuery](m, catalog),
		mediator.RegisterHandler[*SetPriceOverrideCommand](m, catalog),
		mediator.RegisterHandler[*SaveRegionCommand](m, catalog),
	}
	if deps.Extractor != nil {
		registrations = append(registrations, mediator.RegisterHandler[*ImportPlanCommand](m, NewImportPlanHandler(deps.Extractor)))
	}

	for _, err := range registrations {
		if err != nil {
			return fmt.Errorf("failed to register estimate handlers: %w", err)
		}
	}
	return nil
}
