package rebar

import (
	"strings"

	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// meshWeights is fabric mass in kg/m² by BRC designation
var meshWeights = map[string]float64{
	"A142": 2.22,
	"A193": 3.02,
	"A252": 3.95,
	"A393": 6.16,
}

// DefaultMeshType is used when the row names none or an unknown one
const DefaultMeshType = "A142"

// MeshWeight returns kg/m² for a designation, 0 when unknown
func MeshWeight(meshType string) float64 {
	return meshWeights[strings.ToUpper(strings.TrimSpace(meshType))]
}

// MeshSheets counts sheets covering length × width with lapped edges:
// ceil(L/(sheetL-lap)) * ceil(W/(sheetW-lap))
func MeshSheets(length, width float64, s Settings) float64 {
	effL := shared.PositiveOr(s.MeshSheetLength, 4.8) - shared.NonNegative(s.MeshLap)
	effW := shared.PositiveOr(s.MeshSheetWidth, 2.4) - shared.NonNegative(s.MeshLap)
	if length <= 0 || width <= 0 || effL <= 0 || effW <= 0 {
		return 0
	}
	return shared.CeilCount(length/effL) * shared.CeilCount(width/effW)
}

func applyMesh(r *CalcResult, e Element, g geometry, prices pricing.Source, s Settings) {
	meshType := strings.ToUpper(strings.TrimSpace(e.MeshType))
	if _, ok := meshWeights[meshType]; !ok {
		meshType = DefaultMeshType
	}
	r.MeshType = meshType

	length, width := g.length, g.width
	var extra float64
	if e.Type == TypeTank {
		t := tankWallThickness(e, s)
		length, width = g.length+2*t, g.width+2*t
		// both wall faces, unrolled
		extra = 2 * MeshSheets(2*(g.length+g.width), g.depth, s)
	}

	sheetArea := shared.PositiveOr(s.MeshSheetLength, 4.8) * shared.PositiveOr(s.MeshSheetWidth, 2.4)
	r.NetSheets = (MeshSheets(length, width, s) + extra) * g.quantity
	r.GrossSheets = shared.GrossCount(r.NetSheets, s.MeshWastagePercent)
	r.MeshArea = r.NetSheets * sheetArea
	r.NetWeight = r.MeshArea * meshWeights[meshType]
	r.GrossWeight = shared.GrossContinuous(r.NetWeight, s.MeshWastagePercent)
	r.MeshCost = r.GrossSheets * prices.Price(MeshLookup(meshType))

	applyBindingWire(r, r.NetWeight, prices, s)
}

// MeshLookup is the price lookup for one fabric sheet
func MeshLookup(meshType string) pricing.Lookup {
	return pricing.NewLookup(pricing.CategoryMesh, "BRC Mesh").With(pricing.Attributes{Size: meshType})
}
