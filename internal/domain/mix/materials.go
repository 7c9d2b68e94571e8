package mix

import "github.com/andrescamacho/takeoff-go/internal/domain/shared"

const (
	// CementBagVolume is the loose volume of one 50 kg bag of cement (m³)
	CementBagVolume = 0.035
	// CementBagMass is the mass of one bag (kg)
	CementBagMass = 50.0

	CementDensity = 1440.0 // kg/m³
	SandDensity   = 1600.0 // kg/m³
	StoneDensity  = 1500.0 // kg/m³
)

// Materials is the proportional split of a wet volume into its constituents.
// Quantities are net: no wastage applied.
type Materials struct {
	Volume       float64 `json:"volume"`
	CementVolume float64 `json:"cementVolume"`
	SandVolume   float64 `json:"sandVolume"`
	StoneVolume  float64 `json:"stoneVolume"`
	CementBags   float64 `json:"cementBags"`
	CementMass   float64 `json:"cementMass"`
	SandMass     float64 `json:"sandMass"`
	StoneMass    float64 `json:"stoneMass"`
}

// ConcreteMaterials splits volumeM3 of concrete by the mix parts.
//
// Business Rules:
//   - part_volume = volume * part / total_parts
//   - cement_bags = cement_volume / 0.035
//   - masses use fixed densities (cement 1440, sand 1600, stone 1500 kg/m³)
func ConcreteMaterials(volumeM3 float64, r Ratio) Materials {
	volume := shared.NonNegative(volumeM3)
	total := r.TotalParts()
	if volume == 0 || total <= 0 {
		return Materials{}
	}

	cement := volume * r.Cement / total
	sand := volume * r.Sand / total
	stone := volume * r.Stone / total

	return Materials{
		Volume:       volume,
		CementVolume: cement,
		SandVolume:   sand,
		StoneVolume:  stone,
		CementBags:   cement / CementBagVolume,
		CementMass:   cement * CementDensity,
		SandMass:     sand * SandDensity,
		StoneMass:    stone * StoneDensity,
	}
}

// MortarMaterials splits a mortar or plaster volume. Any stone part is ignored.
func MortarMaterials(volumeM3 float64, r Ratio) Materials {
	r.Stone = 0
	return ConcreteMaterials(volumeM3, r)
}

// Add sums two material splits
func (m Materials) Add(o Materials) Materials {
	return Materials{
		Volume:       m.Volume + o.Volume,
		CementVolume: m.CementVolume + o.CementVolume,
		SandVolume:   m.SandVolume + o.SandVolume,
		StoneVolume:  m.StoneVolume + o.StoneVolume,
		CementBags:   m.CementBags + o.CementBags,
		CementMass:   m.CementMass + o.CementMass,
		SandMass:     m.SandMass + o.SandMass,
		StoneMass:    m.StoneMass + o.StoneMass,
	}
}
