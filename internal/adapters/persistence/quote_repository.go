package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// GormQuoteRepository implements quote.Repository using GORM
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GORM quote repository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// Save creates or replaces a quote record
func (r *GormQuoteRepository) Save(ctx context.Context, record *quote.Record) error {
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	model, err := r.recordToModel(record)
	if err != nil {
		return fmt.Errorf("failed to convert quote to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save quote: %w", err)
	}
	return nil
}

// FindByID retrieves a quote by ID
func (r *GormQuoteRepository) FindByID(ctx context.Context, id string) (*quote.Record, error) {
	var model QuoteModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewQuoteNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to find quote: %w", result.Error)
	}

	return r.modelToRecord(&model)
}

// List returns every quote, most recently updated first
func (r *GormQuoteRepository) List(ctx context.Context) ([]*quote.Record, error) {
	var models []QuoteModel
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	records := make([]*quote.Record, 0, len(models))
	for i := range models {
		rec, err := r.modelToRecord(&models[i])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Delete removes a quote
func (r *GormQuoteRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&QuoteModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete quote: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewQuoteNotFoundError(id)
	}
	return nil
}

func (r *GormQuoteRepository) recordToModel(rec *quote.Record) (*QuoteModel, error) {
	model := &QuoteModel{
		ID:          rec.ID,
		Title:       rec.Title,
		Region:      rec.State.Region,
		TotalAmount: rec.Result.Summary.TotalAmount,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}

	columns := []struct {
		dst *string
		src interface{}
	}{
		{&model.State, rec.State},
		{&model.ConcreteMaterials, rec.Result.Concrete},
		{&model.MasonryMaterials, rec.Result.Masonry},
		{&model.RebarCalculations, rec.Result.Rebar},
		{&model.ElectricalCalculations, rec.Result.Electrical},
		{&model.PlumbingCalculations, rec.Result.Plumbing},
		{&model.RoofingCalculations, rec.Result.Roofing},
		{&model.FinishesCalculations, rec.Result.Finishes},
		{&model.BOQ, rec.Result.BOQ},
		{&model.Totals, rec.Result.Totals},
		{&model.Summary, rec.Result.Summary},
		{&model.UnresolvedPrices, rec.Result.UnresolvedPrices},
	}
	for _, c := range columns {
		data, err := json.Marshal(c.src)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal quote column: %w", err)
		}
		*c.dst = string(data)
	}
	return model, nil
}

func (r *GormQuoteRepository) modelToRecord(model *QuoteModel) (*quote.Record, error) {
	rec := &quote.Record{
		ID:        model.ID,
		Title:     model.Title,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	columns := []struct {
		name string
		src  string
		dst  interface{}
	}{
		{"state", model.State, &rec.State},
		{"concrete_materials", model.ConcreteMaterials, &rec.Result.Concrete},
		{"masonry_materials", model.MasonryMaterials, &rec.Result.Masonry},
		{"rebar_calculations", model.RebarCalculations, &rec.Result.Rebar},
		{"electrical_calculations", model.ElectricalCalculations, &rec.Result.Electrical},
		{"plumbing_calculations", model.PlumbingCalculations, &rec.Result.Plumbing},
		{"roofing_calculations", model.RoofingCalculations, &rec.Result.Roofing},
		{"finishes_calculations", model.FinishesCalculations, &rec.Result.Finishes},
		{"boq", model.BOQ, &rec.Result.BOQ},
		{"totals", model.Totals, &rec.Result.Totals},
		{"summary", model.Summary, &rec.Result.Summary},
		{"unresolved_prices", model.UnresolvedPrices, &rec.Result.UnresolvedPrices},
	}
	for _, c := range columns {
		if c.src == "" {
			continue
		}
		if err := json.Unmarshal([]byte(c.src), c.dst); err != nil {
			return nil, fmt.Errorf("failed to parse quote %s column %s: %w", model.ID, c.name, err)
		}
	}
	return rec, nil
}
