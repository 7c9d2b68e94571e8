package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
)

// GormCatalogRepository implements pricing.CatalogRepository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// ListEntries returns catalog entries with their variant prices. An empty
// category lists the whole catalog.
func (r *GormCatalogRepository) ListEntries(ctx context.Context, category pricing.Category) ([]pricing.Entry, error) {
	var models []MaterialModel
	query := r.db.WithContext(ctx).Preload("Variants").Order("category, name")
	if category != "" {
		query = query.Where("category = ?", string(category))
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	entries := make([]pricing.Entry, 0, len(models))
	for i := range models {
		entries = append(entries, r.modelToEntry(&models[i]))
	}
	return entries, nil
}

// UpsertEntries inserts or replaces entries keyed by category and name.
// Variant prices of an upserted entry are replaced as a whole.
func (r *GormCatalogRepository) UpsertEntries(ctx context.Context, entries []pricing.Entry) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			model := MaterialModel{
				Category:  string(e.Category),
				Name:      e.Name,
				Unit:      e.Unit,
				Price:     e.Price,
				UpdatedAt: now,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "category"}, {Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"unit", "price", "updated_at"}),
			}).Create(&model).Error; err != nil {
				return fmt.Errorf("failed to upsert material %s/%s: %w", e.Category, e.Name, err)
			}

			var stored MaterialModel
			if err := tx.Where("category = ? AND name = ?", model.Category, model.Name).First(&stored).Error; err != nil {
				return fmt.Errorf("failed to reload material %s/%s: %w", e.Category, e.Name, err)
			}

			if err := tx.Where("material_id = ?", stored.ID).Delete(&MaterialVariantModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear variants for %s: %w", e.Name, err)
			}
			for variant, price := range e.Variants {
				v := MaterialVariantModel{MaterialID: stored.ID, Variant: variant, Price: price}
				if err := tx.Create(&v).Error; err != nil {
					return fmt.Errorf("failed to save variant %s of %s: %w", variant, e.Name, err)
				}
			}
		}
		return nil
	})
}

func (r *GormCatalogRepository) modelToEntry(model *MaterialModel) pricing.Entry {
	e := pricing.Entry{
		Name:     model.Name,
		Unit:     model.Unit,
		Price:    model.Price,
		Category: pricing.Category(model.Category),
	}
	if len(model.Variants) > 0 {
		e.Variants = make(map[string]float64, len(model.Variants))
		for _, v := range model.Variants {
			e.Variants[v.Variant] = v.Price
		}
	}
	return e
}
