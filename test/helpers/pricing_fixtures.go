package helpers

import (
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
)

// StandardCatalog is a small priced catalog covering the worked examples
func StandardCatalog() []pricing.Entry {
	return []pricing.Entry{
		{Name: "Cement", Unit: "bag", Price: 750, Category: pricing.CategoryCement},
		{Name: "Sand", Unit: "m³", Price: 1500, Category: pricing.CategorySand},
		{Name: "Ballast", Unit: "m³", Price: 2000, Category: pricing.CategoryBallast},
		{Name: "Water", Unit: "m³", Price: 150, Category: pricing.CategoryWater},
		{Name: "Formwork", Unit: "m²", Price: 450, Category: pricing.CategoryFormwork},
		{Name: "Standard Block", Unit: "pc", Price: 65, Category: pricing.CategoryBlocks},
		{Name: "Rebar", Unit: "kg", Price: 110, Category: pricing.CategoryRebar,
			Variants: map[string]float64{"Y10": 115, "Y12": 120, "Y16": 118}},
		{Name: "BRC Mesh", Unit: "sheet", Price: 4500, Category: pricing.CategoryMesh,
			Variants: map[string]float64{"A142": 4500, "A193": 6200}},
		{Name: "Twin & Earth", Unit: "m", Price: 120, Category: pricing.CategoryCable,
			Variants: map[string]float64{"1.5 mm²": 95, "2.5 mm²": 140}},
		{Name: "Door", Unit: "pc", Price: 12000, Category: pricing.CategoryDoors,
			Variants: map[string]float64{"standard": 12000}},
		{Name: "Window", Unit: "pc", Price: 8000, Category: pricing.CategoryWindows,
			Variants: map[string]float64{"standard": 8000}},
	}
}
