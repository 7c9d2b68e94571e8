package mix

import "github.com/andrescamacho/takeoff-go/internal/domain/shared"

// WaterSettings holds the constants of the water-requirement model.
// Moisture and absorption are percentages by mass.
type WaterSettings struct {
	WaterCementRatio    float64 `json:"waterCementRatio" validate:"gte=0,lte=2"`
	SandMoisture        float64 `json:"sandMoisture" validate:"gte=0,lte=100"`
	SandAbsorption      float64 `json:"sandAbsorption" validate:"gte=0,lte=100"`
	StoneMoisture       float64 `json:"stoneMoisture" validate:"gte=0,lte=100"`
	StoneAbsorption     float64 `json:"stoneAbsorption" validate:"gte=0,lte=100"`
	CuringRate          float64 `json:"curingRate" validate:"gte=0"` // litres per m² per day
	CuringDays          float64 `json:"curingDays" validate:"gte=0"`
	OtherAllowancePerM3 float64 `json:"otherAllowancePerM3" validate:"gte=0"` // litres per m³
}

// DefaultWaterSettings returns typical site values
func DefaultWaterSettings() WaterSettings {
	return WaterSettings{
		WaterCementRatio:    0.5,
		SandMoisture:        4,
		SandAbsorption:      1,
		StoneMoisture:       1,
		StoneAbsorption:     0.5,
		CuringRate:          5,
		CuringDays:          7,
		OtherAllowancePerM3: 10,
	}
}

// WaterInput carries the quantities the water model depends on
type WaterInput struct {
	CementMass  float64
	SandMass    float64
	StoneMass   float64
	SurfaceArea float64
	Volume      float64
}

// Water is the water requirement in litres
type Water struct {
	Hydration           float64 `json:"hydration"`
	AggregateAdjustment float64 `json:"aggregateAdjustment"`
	Mixing              float64 `json:"mixing"`
	Curing              float64 `json:"curing"`
	Other               float64 `json:"other"`
	Total               float64 `json:"total"`
	TotalM3             float64 `json:"totalM3"`
}

// WaterRequirement computes mixing, curing and site water.
//
// Business Rules:
//   - hydration = cement_mass * water_cement_ratio
//   - aggregate_adjustment = Σ aggregate_mass * (moisture - absorption) / 100
//   - mixing = max(0, hydration - aggregate_adjustment)
//   - curing = surface_area * curing_rate * curing_days
//   - other = volume * allowance_per_m3
func WaterRequirement(in WaterInput, s WaterSettings) Water {
	hydration := shared.NonNegative(in.CementMass) * shared.NonNegative(s.WaterCementRatio)
	adjustment := shared.NonNegative(in.SandMass)*(s.SandMoisture-s.SandAbsorption)/100 +
		shared.NonNegative(in.StoneMass)*(s.StoneMoisture-s.StoneAbsorption)/100
	if !shared.IsFinite(adjustment) {
		adjustment = 0
	}

	mixing := hydration - adjustment
	if mixing < 0 {
		mixing = 0
	}
	curing := shared.NonNegative(in.SurfaceArea) * shared.NonNegative(s.CuringRate) * shared.NonNegative(s.CuringDays)
	other := shared.NonNegative(in.Volume) * shared.NonNegative(s.OtherAllowancePerM3)
	total := mixing + curing + other

	return Water{
		Hydration:           hydration,
		AggregateAdjustment: adjustment,
		Mixing:              mixing,
		Curing:              curing,
		Other:               other,
		Total:               total,
		TotalM3:             total / 1000,
	}
}
