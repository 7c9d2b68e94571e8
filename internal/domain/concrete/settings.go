package concrete

import (
	"github.com/andrescamacho/takeoff-go/internal/domain/mix"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// Settings holds the concrete QS settings
type Settings struct {
	DefaultMix          string               `json:"defaultMix"`
	BlindingMix         string               `json:"blindingMix"`
	MortarRatio         string               `json:"mortarRatio"`
	Wastage             shared.WastagePolicy `json:"wastage"`
	Water               mix.WaterSettings    `json:"water"`
	ClientProvidesWater bool                 `json:"clientProvidesWater"`

	FoundationBlock     mix.Block `json:"foundationBlock"`
	FoundationBlockName string    `json:"foundationBlockName"`
	Joint               float64   `json:"joint" validate:"gte=0"`

	TankWallThickness     float64 `json:"tankWallThickness" validate:"gte=0"`
	TankBaseThickness     float64 `json:"tankBaseThickness" validate:"gte=0"`
	TankCoverThickness    float64 `json:"tankCoverThickness" validate:"gte=0"`
	BedThickness          float64 `json:"bedThickness" validate:"gte=0"`
	AggregateBedThickness float64 `json:"aggregateBedThickness" validate:"gte=0"`
	DPCWidth              float64 `json:"dpcWidth" validate:"gte=0"`
}

// DefaultSettings returns typical site defaults with 5% wastage
func DefaultSettings() Settings {
	return Settings{
		DefaultMix:  "1:2:4",
		BlindingMix: "1:3:6",
		MortarRatio: "1:4",
		Wastage: shared.NewWastagePolicy(5).
			With(shared.MaterialFormwork, 10).
			With(shared.MaterialWater, 0),
		Water:                 mix.DefaultWaterSettings(),
		FoundationBlock:       mix.StandardBlock,
		FoundationBlockName:   "Standard Block",
		Joint:                 0.01,
		TankWallThickness:     0.2,
		TankBaseThickness:     0.2,
		TankCoverThickness:    0.15,
		BedThickness:          0.05,
		AggregateBedThickness: 0.15,
		DPCWidth:              0.225,
	}
}
