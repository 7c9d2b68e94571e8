package estimate

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrescamacho/takeoff-go/internal/application/logging"
	"github.com/andrescamacho/takeoff-go/internal/application/mediator"
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// ImportMaterialsCommand upserts catalog entries
type ImportMaterialsCommand struct {
	Entries []pricing.Entry
}

// ImportMaterialsResponse reports how many entries were stored
type ImportMaterialsResponse struct {
	Imported int
}

// ListMaterialsQuery lists catalog entries; an empty category lists all
type ListMaterialsQuery struct {
	Category pricing.Category
}

// ListMaterialsResponse carries catalog entries
type ListMaterialsResponse struct {
	Entries []pricing.Entry
}

// SetPriceOverrideCommand stores a user price that wins over the catalog
type SetPriceOverrideCommand struct {
	Override pricing.Override
}

// SetPriceOverrideResponse echoes the stored override
type SetPriceOverrideResponse struct {
	Override pricing.Override
}

// SaveRegionCommand stores a regional price multiplier
type SaveRegionCommand struct {
	Region pricing.Region
}

// SaveRegionResponse echoes the stored region
type SaveRegionResponse struct {
	Region pricing.Region
}

// CatalogHandler serves the material catalog requests
type CatalogHandler struct {
	catalogRepo  pricing.CatalogRepository
	regionRepo   pricing.RegionRepository
	overrideRepo pricing.OverrideRepository
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(
	catalogRepo pricing.CatalogRepository,
	regionRepo pricing.RegionRepository,
	overrideRepo pricing.OverrideRepository,
) *CatalogHandler {
	return &CatalogHandler{
		catalogRepo:  catalogRepo,
		regionRepo:   regionRepo,
		overrideRepo: overrideRepo,
	}
}

// Handle dispatches on the request type
func (h *CatalogHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch req := request.(type) {
	case *ImportMaterialsCommand:
		return h.importMaterials(ctx, req)
	case *ListMaterialsQuery:
		entries, err := h.catalogRepo.ListEntries(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		return &ListMaterialsResponse{Entries: entries}, nil
	case *SetPriceOverrideCommand:
		return h.setOverride(ctx, req)
	case *SaveRegionCommand:
		return h.saveRegion(ctx, req)
	default:
		return nil, fmt.Errorf("invalid request type: %T", request)
	}
}

func (h *CatalogHandler) importMaterials(ctx context.Context, cmd *ImportMaterialsCommand) (mediator.Response, error) {
	for i, e := range cmd.Entries {
		if err := checkEntry(e); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	if err := h.catalogRepo.UpsertEntries(ctx, cmd.Entries); err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "Materials imported", map[string]interface{}{
		"count": len(cmd.Entries),
	})
	return &ImportMaterialsResponse{Imported: len(cmd.Entries)}, nil
}

func checkEntry(e pricing.Entry) error {
	if strings.TrimSpace(e.Name) == "" {
		return shared.NewValidationError("name", "is required")
	}
	if !e.Category.IsValid() {
		return shared.NewValidationError("category", fmt.Sprintf("unknown category %q", e.Category))
	}
	if !shared.IsFinite(e.Price) || e.Price < 0 {
		return shared.NewValidationError("price", "must be a non-negative number")
	}
	for variant, p := range e.Variants {
		if !shared.IsFinite(p) || p < 0 {
			return shared.NewValidationError("variants."+variant, "must be a non-negative number")
		}
	}
	return nil
}

func (h *CatalogHandler) setOverride(ctx context.Context, cmd *SetPriceOverrideCommand) (mediator.Response, error) {
	o := cmd.Override
	if strings.TrimSpace(o.Name) == "" {
		return nil, shared.NewValidationError("name", "is required")
	}
	if !o.Category.IsValid() {
		return nil, shared.NewValidationError("category", fmt.Sprintf("unknown category %q", o.Category))
	}
	if !shared.IsFinite(o.Price) || o.Price < 0 {
		return nil, shared.NewValidationError("price", "must be a non-negative number")
	}
	if err := h.overrideRepo.SaveOverride(ctx, UserScope, o); err != nil {
		return nil, err
	}
	return &SetPriceOverrideResponse{Override: o}, nil
}

func (h *CatalogHandler) saveRegion(ctx context.Context, cmd *SaveRegionCommand) (mediator.Response, error) {
	r := cmd.Region
	if strings.TrimSpace(r.Code) == "" {
		return nil, shared.NewValidationError("code", "is required")
	}
	if !shared.IsFinite(r.Multiplier) || r.Multiplier <= 0 {
		return nil, shared.NewValidationError("multiplier", "must be positive")
	}
	if err := h.regionRepo.Save(ctx, &r); err != nil {
		return nil, err
	}
	return &SaveRegionResponse{Region: r}, nil
}
