package roofing

import (
	"fmt"
	"math"
	"strings"

	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// RoofType is the roof form
type RoofType string

const (
	RoofGable  RoofType = "gable"
	RoofHip    RoofType = "hip"
	RoofLeanTo RoofType = "lean-to"
	RoofFlat   RoofType = "flat"
)

// ParseRoofType normalizes and validates a roof type
func ParseRoofType(s string) (RoofType, error) {
	t := RoofType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	switch t {
	case RoofGable, RoofHip, RoofLeanTo, RoofFlat:
		return t, nil
	}
	return "", fmt.Errorf("invalid roof type: %s", s)
}

// Geometry is the measured roof; lengths in metres, areas in m²
type Geometry struct {
	PlanLength   float64 `json:"planLength"`
	PlanWidth    float64 `json:"planWidth"`
	RafterLength float64 `json:"rafterLength"`
	RoofArea     float64 `json:"roofArea"`
	Rafters      float64 `json:"rafters"`
	RafterTimber float64 `json:"rafterTimber"`
	PurlinTimber float64 `json:"purlinTimber"`
	WallPlate    float64 `json:"wallPlate"`
	RidgeLength  float64 `json:"ridgeLength"`
	HipLength    float64 `json:"hipLength"`
	EavesLength  float64 `json:"eavesLength"`
	VergeLength  float64 `json:"vergeLength"`
}

// Measure derives roof geometry from building size, pitch, overhang and spacings.
//
// Business Rules:
//   - plan = building + 2*overhang in both directions
//   - rafter length = horizontal run / cos(pitch); the run is half the plan width
//     for gable and hip roofs and the full width for lean-to and flat roofs
//   - rafters per slope = ceil(plan length / rafter spacing) + 1
//   - purlin rows per slope = ceil(rafter length / purlin spacing) + 1
func Measure(r Structure) Geometry {
	length := num(r.Length)
	span := num(r.Span)
	overhang := num(r.Overhang)
	pitch := num(r.Pitch)
	if pitch >= 75 {
		pitch = 75
	}
	if r.RoofType == RoofFlat {
		pitch = 0
	}
	rafterSpacing := shared.PositiveOr(num(r.RafterSpacing), 0.6)
	purlinSpacing := shared.PositiveOr(num(r.PurlinSpacing), 0.9)

	g := Geometry{PlanLength: length + 2*overhang, PlanWidth: span + 2*overhang}
	if length == 0 || span == 0 {
		return Geometry{}
	}
	cos := math.Cos(pitch * math.Pi / 180)

	slopes := 2.0
	run := g.PlanWidth / 2
	if r.RoofType == RoofLeanTo || r.RoofType == RoofFlat {
		slopes = 1
		run = g.PlanWidth
	}
	g.RafterLength = run / cos

	perSlope := shared.CeilCount(g.PlanLength/rafterSpacing) + 1
	purlinRows := shared.CeilCount(g.RafterLength/purlinSpacing) + 1
	g.WallPlate = 2 * length

	switch r.RoofType {
	case RoofHip:
		g.RoofArea = g.PlanLength * g.PlanWidth / cos
		g.RidgeLength = math.Max(0, g.PlanLength-g.PlanWidth)
		g.HipLength = 4 * math.Hypot(g.RafterLength, run)
		g.EavesLength = 2 * (g.PlanLength + g.PlanWidth)
		g.Rafters = perSlope * slopes
		g.RafterTimber = g.Rafters*g.RafterLength + g.HipLength
		g.PurlinTimber = shared.SafeDivide(g.RoofArea, purlinSpacing)
		g.WallPlate = 2 * (length + span)
	case RoofLeanTo, RoofFlat:
		g.RoofArea = g.PlanLength * g.RafterLength
		g.EavesLength = g.PlanLength
		g.VergeLength = 2 * g.RafterLength
		g.Rafters = perSlope
		g.RafterTimber = g.Rafters * g.RafterLength
		g.PurlinTimber = purlinRows * g.PlanLength
	default:
		g.RoofArea = slopes * g.RafterLength * g.PlanLength
		g.RidgeLength = g.PlanLength
		g.EavesLength = 2 * g.PlanLength
		g.VergeLength = 4 * g.RafterLength
		g.Rafters = perSlope * slopes
		g.RafterTimber = g.Rafters * g.RafterLength
		g.PurlinTimber = purlinRows * slopes * g.PlanLength
	}
	return g
}

func num(s string) float64 {
	return shared.NonNegative(shared.SafeParseFloat(s))
}
