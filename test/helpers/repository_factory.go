package helpers

import (
	"gorm.io/gorm"

	"github.com/andrescamacho/takeoff-go/internal/adapters/persistence"
)

// TestRepositories holds real repository instances over one test database
type TestRepositories struct {
	DB           *gorm.DB
	CatalogRepo  *persistence.GormCatalogRepository
	RegionRepo   *persistence.GormRegionRepository
	OverrideRepo *persistence.GormOverrideRepository
	QuoteRepo    *persistence.GormQuoteRepository
}

// NewTestRepositories wires every repository to db
func NewTestRepositories(db *gorm.DB) *TestRepositories {
	return &TestRepositories{
		DB:           db,
		CatalogRepo:  persistence.NewGormCatalogRepository(db),
		RegionRepo:   persistence.NewGormRegionRepository(db),
		OverrideRepo: persistence.NewGormOverrideRepository(db),
		QuoteRepo:    persistence.NewGormQuoteRepository(db),
	}
}
