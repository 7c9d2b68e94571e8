package masonry

import (
	"github.com/andrescamacho/takeoff-go/internal/domain/mix"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// SharedWallEfficiency scales blocks, mortar and openings cost when a room
// has at least one shared wall
const SharedWallEfficiency = 0.95

// Settings holds the masonry QS settings; read-only to the calculator
type Settings struct {
	Block      mix.Block            `json:"block"`
	BlockName  string               `json:"blockName"`
	BlockTypes map[string]mix.Block `json:"blockTypes,omitempty"`
	Joint      float64              `json:"joint" validate:"gte=0"`

	MortarRatio      string  `json:"mortarRatio"`
	PlasterRatio     string  `json:"plasterRatio"`
	PlasterThickness float64 `json:"plasterThickness" validate:"gte=0"`
	PlasterSides     int     `json:"plasterSides" validate:"gte=0,lte=2"`

	Wastage             shared.WastagePolicy `json:"wastage"`
	Water               mix.WaterSettings    `json:"water"`
	ClientProvidesWater bool                 `json:"clientProvidesWater"`

	IncludesLintels               bool `json:"includesLintels"`
	IncludesBedJointReinforcement bool `json:"includesBedJointReinforcement"`
	IncludesVerticalReinforcement bool `json:"includesVerticalReinforcement"`
	IncludesDPC                   bool `json:"includesDpc"`
	IncludesMovementJoints        bool `json:"includesMovementJoints"`
	IncludesScaffolding           bool `json:"includesScaffolding"`
	IncludesWasteRemoval          bool `json:"includesWasteRemoval"`

	LintelBearing            float64 `json:"lintelBearing" validate:"gte=0"`
	BedJointInterval         int     `json:"bedJointInterval" validate:"gte=0"`
	VerticalBarSpacing       float64 `json:"verticalBarSpacing" validate:"gte=0"`
	MovementJointSpacing     float64 `json:"movementJointSpacing" validate:"gte=0"`
	WasteRemovalPercent      float64 `json:"wasteRemovalPercent" validate:"gte=0,lte=100"`
	ScaffoldingMinimumHeight float64 `json:"scaffoldingMinimumHeight" validate:"gte=0"`
}

// DefaultSettings returns 400x200x200 blockwork in 1:4 mortar, plastered both sides
func DefaultSettings() Settings {
	return Settings{
		Block:     mix.StandardBlock,
		BlockName: "Standard Block",
		BlockTypes: map[string]mix.Block{
			"Standard Block":  mix.StandardBlock,
			"Partition Block": {Length: 0.4, Height: 0.2, Thickness: 0.1},
		},
		Joint:            0.01,
		MortarRatio:      "1:4",
		PlasterRatio:     "1:4",
		PlasterThickness: 0.015,
		PlasterSides:     2,
		Wastage: shared.NewWastagePolicy(5).
			With(shared.MaterialWater, 0),
		Water:                    mix.DefaultWaterSettings(),
		LintelBearing:            0.15,
		BedJointInterval:         3,
		VerticalBarSpacing:       1.2,
		MovementJointSpacing:     6,
		WasteRemovalPercent:      5,
		ScaffoldingMinimumHeight: 0,
	}
}

// blockFor resolves a room's block type to dimensions and a price name
func (s Settings) blockFor(blockType string) (mix.Block, string) {
	if blockType != "" {
		if b, ok := s.BlockTypes[blockType]; ok && b.Length > 0 && b.Height > 0 {
			return b, blockType
		}
	}
	name := s.BlockName
	if name == "" {
		name = "Standard Block"
	}
	if s.Block.Length <= 0 || s.Block.Height <= 0 {
		return mix.StandardBlock, name
	}
	return s.Block, name
}
