package masonry

import (
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// OpeningType distinguishes doors from windows
type OpeningType string

const (
	OpeningDoor   OpeningType = "door"
	OpeningWindow OpeningType = "window"
)

// WallType marks a wall as facing outside or dividing two rooms
type WallType string

const (
	WallExternal WallType = "external"
	WallInternal WallType = "internal"
)

// Opening is a door or window set in a wall. Dimensions are metre strings.
type Opening struct {
	Type    OpeningType `json:"type"`
	Name    string      `json:"name,omitempty"`
	Quality string      `json:"quality,omitempty"`
	Width   string      `json:"width"`
	Height  string      `json:"height"`
	Count   string      `json:"count"`
}

func (o Opening) width() float64  { return nonNeg(o.Width) }
func (o Opening) height() float64 { return nonNeg(o.Height) }

func (o Opening) count() float64 {
	n := shared.SafeParseIntOr(o.Count, 1)
	if n < 0 {
		return 0
	}
	return float64(n)
}

// Area is the total opening area across the count
func (o Opening) Area() float64 {
	return o.width() * o.height() * o.count()
}

// Lookup prices one opening leaf or frame
func (o Opening) Lookup() pricing.Lookup {
	category, name := pricing.CategoryDoors, "Door"
	if o.Type == OpeningWindow {
		category, name = pricing.CategoryWindows, "Window"
	}
	if o.Name != "" {
		name = o.Name
	}
	return pricing.NewLookup(category, name).With(pricing.Attributes{Quality: o.Quality})
}

// Wall is one side of a room in the connectivity-aware layout
type Wall struct {
	ID          string    `json:"id"`
	Side        string    `json:"side"`
	Type        WallType  `json:"type"`
	Length      string    `json:"length"`
	Height      string    `json:"height,omitempty"`
	Openings    []Opening `json:"openings,omitempty"`
	ConnectedTo string    `json:"connectedTo,omitempty"`
}

// IsShared reports an internal wall that another room also claims
func (w Wall) IsShared() bool {
	return w.Type == WallInternal && w.ConnectedTo != ""
}

// weight is the share of the wall this room pays for
func (w Wall) weight() float64 {
	if w.IsShared() {
		return 0.5
	}
	return 1
}

// Room is a masonry input. Walls switch the calculation to per-wall mode.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Length    string    `json:"length"`
	Width     string    `json:"width"`
	Height    string    `json:"height"`
	BlockType string    `json:"blockType,omitempty"`
	Openings  []Opening `json:"openings,omitempty"`
	Walls     []Wall    `json:"walls,omitempty"`
}

func nonNeg(s string) float64 {
	return shared.NonNegative(shared.SafeParseFloat(s))
}
