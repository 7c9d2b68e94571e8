package concrete

import (
	"fmt"
	"strings"
)

// ElementType is the closed set of concrete element kinds
type ElementType string

const (
	TypeSlab           ElementType = "slab"
	TypeBeam           ElementType = "beam"
	TypeColumn         ElementType = "column"
	TypeCircularColumn ElementType = "circular-column"
	TypeFoundation     ElementType = "foundation"
	TypeStripFooting   ElementType = "strip-footing"
	TypeRaft           ElementType = "raft"
	TypeGroundBeam     ElementType = "ground-beam"
	TypeRingBeam       ElementType = "ring-beam"
	TypeLintel         ElementType = "lintel"
	TypeWall           ElementType = "wall"
	TypeStaircase      ElementType = "staircase"
	TypeRamp           ElementType = "ramp"
	TypePile           ElementType = "pile"
	TypePileCap        ElementType = "pile-cap"
	TypeSepticTank     ElementType = "septic-tank"
	TypeWaterTank      ElementType = "water-tank"
	TypeManhole        ElementType = "manhole"
	TypeSoakPit        ElementType = "soak-pit"
	TypePaving         ElementType = "paving"
)

// AllElementTypes lists every supported type
func AllElementTypes() []ElementType {
	return []ElementType{
		TypeSlab, TypeBeam, TypeColumn, TypeCircularColumn, TypeFoundation,
		TypeStripFooting, TypeRaft, TypeGroundBeam, TypeRingBeam, TypeLintel,
		TypeWall, TypeStaircase, TypeRamp, TypePile, TypePileCap,
		TypeSepticTank, TypeWaterTank, TypeManhole, TypeSoakPit, TypePaving,
	}
}

// IsValid checks membership in the closed set
func (t ElementType) IsValid() bool {
	for _, v := range AllElementTypes() {
		if v == t {
			return true
		}
	}
	return false
}

func (t ElementType) String() string {
	return string(t)
}

// ParseElementType normalizes case and underscores
func ParseElementType(s string) (ElementType, error) {
	t := ElementType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid concrete element type: %s", s)
	}
	return t, nil
}

// takesBeds reports whether blinding and hardcore can be laid under the element
func (t ElementType) takesBeds() bool {
	switch t {
	case TypeFoundation, TypeStripFooting, TypeRaft, TypePileCap, TypeGroundBeam,
		TypeSepticTank, TypeWaterTank, TypeManhole, TypeSlab, TypePaving, TypeRamp:
		return true
	}
	return false
}

// isTank reports whether the element is a walled chamber
func (t ElementType) isTank() bool {
	return t == TypeSepticTank || t == TypeWaterTank || t == TypeManhole
}

// Row is one concrete take-off line. Dimensions are metre strings.
// Height is the thickness for slabs and beds, the depth for beams and tanks
// and the height for columns and walls.
type Row struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ElementType ElementType `json:"elementType"`
	Length      string      `json:"length"`
	Width       string      `json:"width"`
	Height      string      `json:"height"`
	Diameter    string      `json:"diameter,omitempty"`
	Number      string      `json:"number"`
	Mix         string      `json:"mix"`

	IsSteppedFoundation bool   `json:"isSteppedFoundation,omitempty"`
	FoundationSteps     []Step `json:"foundationSteps,omitempty"`

	TankDetails      *TankDetails      `json:"tankDetails,omitempty"`
	StaircaseDetails *StaircaseDetails `json:"staircaseDetails,omitempty"`
	ConcreteBed      *Bed              `json:"concreteBed,omitempty"`
	AggregateBed     *Bed              `json:"aggregateBed,omitempty"`
	FoundationWall   *FoundationWall   `json:"foundationWall,omitempty"`
	Waterproofing    *Waterproofing    `json:"waterproofing,omitempty"`
}

// Step is one tier of a stepped foundation; blank plan sizes inherit the row's
type Step struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Depth  string `json:"depth"`
}

// TankDetails describes a walled chamber; sizes are internal
type TankDetails struct {
	WallThickness  string `json:"wallThickness"`
	BaseThickness  string `json:"baseThickness"`
	CoverThickness string `json:"coverThickness"`
	HasCover       bool   `json:"hasCover"`
}

// StaircaseDetails describes a straight flight
type StaircaseDetails struct {
	Steps          string `json:"steps"`
	Rise           string `json:"rise"`
	Tread          string `json:"tread"`
	Width          string `json:"width"`
	WaistThickness string `json:"waistThickness"`
}

// Bed is a blinding or hardcore layer under the element footprint
type Bed struct {
	Thickness string `json:"thickness"`
	Mix       string `json:"mix,omitempty"`
}

// FoundationWall is blockwork built off the foundation up to ground level
type FoundationWall struct {
	Length string `json:"length,omitempty"`
	Height string `json:"height"`
}

// Waterproofing toggles the area-based protection layers
type Waterproofing struct {
	IncludesDPC       bool   `json:"includesDpc"`
	DPCWidth          string `json:"dpcWidth,omitempty"`
	IncludesPolythene bool   `json:"includesPolythene"`
	IncludesMembrane  bool   `json:"includesMembrane"`
}
