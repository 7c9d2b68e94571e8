package rebar

import (
	"fmt"
	"strings"
)

// ElementType is the structural member being reinforced
type ElementType string

const (
	TypeSlab          ElementType = "slab"
	TypeBeam          ElementType = "beam"
	TypeColumn        ElementType = "column"
	TypeFoundation    ElementType = "foundation"
	TypeStripFooting  ElementType = "strip-footing"
	TypeRetainingWall ElementType = "retaining-wall"
	TypeTank          ElementType = "tank"
)

// AllElementTypes returns every supported element type
func AllElementTypes() []ElementType {
	return []ElementType{TypeSlab, TypeBeam, TypeColumn, TypeFoundation, TypeStripFooting, TypeRetainingWall, TypeTank}
}

// IsValid checks if the element type is supported
func (t ElementType) IsValid() bool {
	switch t {
	case TypeSlab, TypeBeam, TypeColumn, TypeFoundation, TypeStripFooting, TypeRetainingWall, TypeTank:
		return true
	}
	return false
}

func (t ElementType) String() string {
	return string(t)
}

// ParseElementType parses an element type, accepting underscores for hyphens
func ParseElementType(s string) (ElementType, error) {
	t := ElementType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid rebar element type: %s", s)
	}
	return t, nil
}

// Mode selects loose bars or welded fabric
type Mode string

const (
	ModeIndividual Mode = "individual-bars"
	ModeMesh       Mode = "mesh"
)

// Element is one rebar input row. Dimensions are metre strings, spacings are
// millimetre strings. For columns Length × Width is the cross-section and Depth
// the height; for retaining walls Width is the stem thickness and Depth the height;
// for tanks Depth is the wall height.
type Element struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Type                ElementType `json:"type"`
	Length              string      `json:"length"`
	Width               string      `json:"width"`
	Depth               string      `json:"depth"`
	Quantity            int         `json:"quantity"`
	Mode                Mode        `json:"mode"`
	MainBarSize         string      `json:"mainBarSize"`
	DistributionBarSize string      `json:"distributionBarSize"`
	MainSpacing         string      `json:"mainSpacing"`
	DistributionSpacing string      `json:"distributionSpacing"`
	StirrupBarSize      string      `json:"stirrupBarSize"`
	StirrupSpacing      string      `json:"stirrupSpacing"`
	SteelRatio          string      `json:"steelRatio"`
	Cover               string      `json:"cover"`
	MeshType            string      `json:"meshType"`
	WallThickness       string      `json:"wallThickness"`
}

// usesMesh reports whether the element is a plate member computed as fabric
func (e Element) usesMesh() bool {
	if e.Mode != ModeMesh {
		return false
	}
	switch e.Type {
	case TypeSlab, TypeFoundation, TypeStripFooting, TypeTank:
		return true
	}
	return false
}
