package rebar

import (
	"fmt"
	"math"
	"strings"

	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// BarSize is a standard deformed bar designation
type BarSize string

const (
	Y8  BarSize = "Y8"
	Y10 BarSize = "Y10"
	Y12 BarSize = "Y12"
	Y16 BarSize = "Y16"
	Y20 BarSize = "Y20"
	Y25 BarSize = "Y25"
)

const (
	// DefaultDevelopmentFactor is the development length in bar diameters
	DefaultDevelopmentFactor = 40.0
	// DefaultLapFactor is the lap length in bar diameters
	DefaultLapFactor = 50.0
)

type barSpec struct {
	diameterMM     float64
	weightPerMeter float64
}

var barTable = map[BarSize]barSpec{
	Y8:  {diameterMM: 8, weightPerMeter: 0.395},
	Y10: {diameterMM: 10, weightPerMeter: 0.617},
	Y12: {diameterMM: 12, weightPerMeter: 0.888},
	Y16: {diameterMM: 16, weightPerMeter: 1.579},
	Y20: {diameterMM: 20, weightPerMeter: 2.466},
	Y25: {diameterMM: 25, weightPerMeter: 3.854},
}

// AllBarSizes returns the sizes in ascending diameter order
func AllBarSizes() []BarSize {
	return []BarSize{Y8, Y10, Y12, Y16, Y20, Y25}
}

// ParseBarSize accepts "Y12", "y12", "12" or "12mm"
func ParseBarSize(s string) (BarSize, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.TrimSuffix(v, "MM")
	if !strings.HasPrefix(v, "Y") {
		v = "Y" + v
	}
	size := BarSize(v)
	if !size.IsValid() {
		return "", fmt.Errorf("invalid bar size: %s", s)
	}
	return size, nil
}

// ParseBarSizeOr parses s, falling back to def on malformed input
func ParseBarSizeOr(s string, def BarSize) BarSize {
	size, err := ParseBarSize(s)
	if err != nil {
		return def
	}
	return size
}

// IsValid checks the size is in the standard table
func (b BarSize) IsValid() bool {
	_, ok := barTable[b]
	return ok
}

func (b BarSize) String() string {
	return string(b)
}

// Diameter returns the nominal diameter in millimetres (0 if unknown)
func (b BarSize) Diameter() float64 {
	return barTable[b].diameterMM
}

// WeightPerMeter returns kg/m (0 if unknown)
func (b BarSize) WeightPerMeter() float64 {
	return barTable[b].weightPerMeter
}

// Area returns the cross-sectional area in mm²
func (b BarSize) Area() float64 {
	d := b.Diameter()
	return math.Pi * d * d / 4
}

// Weight returns the mass in kg of lengthM metres of bar
func Weight(lengthM float64, size BarSize) float64 {
	return shared.NonNegative(lengthM) * size.WeightPerMeter()
}

// DevelopmentLength returns factor × diameter in metres; a non-finite or
// non-positive factor uses 40
func DevelopmentLength(factor float64, size BarSize) float64 {
	return shared.PositiveOr(factor, DefaultDevelopmentFactor) * size.Diameter() / 1000
}

// LapLength returns factor × diameter in metres; default factor 50
func LapLength(factor float64, size BarSize) float64 {
	return shared.PositiveOr(factor, DefaultLapFactor) * size.Diameter() / 1000
}
