package persistence

import (
	"time"
)

// MaterialModel represents the materials table: one base price per category and name
type MaterialModel struct {
	ID        int                    `gorm:"column:id;primaryKey;autoIncrement"`
	Category  string                 `gorm:"column:category;not null;uniqueIndex:idx_material_category_name"`
	Name      string                 `gorm:"column:name;not null;uniqueIndex:idx_material_category_name"`
	Unit      string                 `gorm:"column:unit"`
	Price     float64                `gorm:"column:price;not null;default:0"`
	Variants  []MaterialVariantModel `gorm:"foreignKey:MaterialID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UpdatedAt time.Time              `gorm:"column:updated_at"`
}

func (MaterialModel) TableName() string {
	return "materials"
}

// MaterialVariantModel represents the material_variants table (size, rating or quality prices)
type MaterialVariantModel struct {
	ID         int     `gorm:"column:id;primaryKey;autoIncrement"`
	MaterialID int     `gorm:"column:material_id;not null;uniqueIndex:idx_variant_material_key"`
	Variant    string  `gorm:"column:variant;not null;uniqueIndex:idx_variant_material_key"`
	Price      float64 `gorm:"column:price;not null"`
}

func (MaterialVariantModel) TableName() string {
	return "material_variants"
}

// RegionModel represents the regions table
type RegionModel struct {
	Code       string  `gorm:"column:code;primaryKey"`
	Name       string  `gorm:"column:name"`
	Multiplier float64 `gorm:"column:multiplier;not null;default:1"`
}

func (RegionModel) TableName() string {
	return "regions"
}

// PriceOverrideModel represents the price_overrides table. Scope is a user or quote identifier.
type PriceOverrideModel struct {
	Scope     string    `gorm:"column:scope;primaryKey"`
	Category  string    `gorm:"column:category;primaryKey"`
	Name      string    `gorm:"column:name;primaryKey"`
	Variant   string    `gorm:"column:variant;primaryKey"`
	Price     float64   `gorm:"column:price;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PriceOverrideModel) TableName() string {
	return "price_overrides"
}

// QuoteModel represents the quotes table. Calculation results are stored as
// JSON text under one column per domain.
type QuoteModel struct {
	ID                     string    `gorm:"column:id;primaryKey"`
	Title                  string    `gorm:"column:title"`
	Region                 string    `gorm:"column:region"`
	State                  string    `gorm:"column:state;type:text"`
	ConcreteMaterials      string    `gorm:"column:concrete_materials;type:text"`
	MasonryMaterials       string    `gorm:"column:masonry_materials;type:text"`
	RebarCalculations      string    `gorm:"column:rebar_calculations;type:text"`
	ElectricalCalculations string    `gorm:"column:electrical_calculations;type:text"`
	PlumbingCalculations   string    `gorm:"column:plumbing_calculations;type:text"`
	RoofingCalculations    string    `gorm:"column:roofing_calculations;type:text"`
	FinishesCalculations   string    `gorm:"column:finishes_calculations;type:text"`
	BOQ                    string    `gorm:"column:boq;type:text"`
	Totals                 string    `gorm:"column:totals;type:text"`
	Summary                string    `gorm:"column:summary;type:text"`
	UnresolvedPrices       string    `gorm:"column:unresolved_prices;type:text"`
	TotalAmount            float64   `gorm:"column:total_amount;not null;default:0"`
	CreatedAt              time.Time `gorm:"column:created_at;not null"`
	UpdatedAt              time.Time `gorm:"column:updated_at;not null"`
}

func (QuoteModel) TableName() string {
	return "quotes"
}
