package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// GormRegionRepository implements pricing.RegionRepository using GORM
type GormRegionRepository struct {
	db *gorm.DB
}

// NewGormRegionRepository creates a new GORM region repository
func NewGormRegionRepository(db *gorm.DB) *GormRegionRepository {
	return &GormRegionRepository{db: db}
}

// FindByCode retrieves a region by its code
func (r *GormRegionRepository) FindByCode(ctx context.Context, code string) (*pricing.Region, error) {
	var model RegionModel
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewRegionNotFoundError(code)
		}
		return nil, fmt.Errorf("failed to find region: %w", result.Error)
	}

	return &pricing.Region{Code: model.Code, Name: model.Name, Multiplier: model.Multiplier}, nil
}

// Save creates or updates a region
func (r *GormRegionRepository) Save(ctx context.Context, region *pricing.Region) error {
	model := RegionModel{Code: region.Code, Name: region.Name, Multiplier: region.Multiplier}
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save region: %w", err)
	}
	return nil
}
