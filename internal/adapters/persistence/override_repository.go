package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
)

// GormOverrideRepository implements pricing.OverrideRepository using GORM
type GormOverrideRepository struct {
	db *gorm.DB
}

// NewGormOverrideRepository creates a new GORM override repository
func NewGormOverrideRepository(db *gorm.DB) *GormOverrideRepository {
	return &GormOverrideRepository{db: db}
}

// ListOverrides returns every override saved under scope
func (r *GormOverrideRepository) ListOverrides(ctx context.Context, scope string) ([]pricing.Override, error) {
	var models []PriceOverrideModel
	result := r.db.WithContext(ctx).Where("scope = ?", scope).Order("category, name, variant").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list price overrides: %w", result.Error)
	}

	overrides := make([]pricing.Override, 0, len(models))
	for _, m := range models {
		overrides = append(overrides, pricing.Override{
			Category: pricing.Category(m.Category),
			Name:     m.Name,
			Variant:  m.Variant,
			Price:    m.Price,
		})
	}
	return overrides, nil
}

// SaveOverride creates or replaces one override
func (r *GormOverrideRepository) SaveOverride(ctx context.Context, scope string, override pricing.Override) error {
	model := PriceOverrideModel{
		Scope:     scope,
		Category:  string(override.Category),
		Name:      override.Name,
		Variant:   override.Variant,
		Price:     override.Price,
		UpdatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "category"}, {Name: "name"}, {Name: "variant"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
	}).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save price override: %w", err)
	}
	return nil
}
