package pricing

import "fmt"

// Category is the closed set of material catalog categories
type Category string

const (
	CategoryCement        Category = "cement"
	CategorySand          Category = "sand"
	CategoryBallast       Category = "ballast"
	CategoryWater         Category = "water"
	CategoryFormwork      Category = "formwork"
	CategoryBlocks        Category = "blocks"
	CategoryWaterproofing Category = "waterproofing"
	CategoryAggregate     Category = "aggregate"
	CategoryRebar         Category = "rebar"
	CategoryMesh          Category = "mesh"
	CategoryBindingWire   Category = "binding-wire"
	CategoryLintel        Category = "lintel"
	CategoryReinforcement Category = "reinforcement"
	CategoryDPC           Category = "dpc"
	CategorySealant       Category = "sealant"
	CategoryScaffolding   Category = "scaffolding"
	CategoryServices      Category = "services"
	CategoryDoors         Category = "doors"
	CategoryWindows       Category = "windows"
	CategoryCable         Category = "cable"
	CategoryOutlet        Category = "outlet"
	CategoryLighting      Category = "lighting"
	CategoryDistribution  Category = "distribution"
	CategoryPipe          Category = "pipe"
	CategoryFixture       Category = "fixture"
	CategoryFitting       Category = "fitting"
	CategoryTimber        Category = "timber"
	CategoryRoofCovering  Category = "roof-covering"
	CategoryRoofAccessory Category = "roof-accessory"
	CategoryInsulation    Category = "insulation"
	CategoryFlooring      Category = "flooring"
	CategoryWallFinish    Category = "wall-finish"
	CategoryCeiling       Category = "ceiling"
	CategoryPaint         Category = "paint"
	CategoryJoinery       Category = "joinery"
	CategoryGlazing       Category = "glazing"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryCement, CategorySand, CategoryBallast, CategoryWater, CategoryFormwork,
		CategoryBlocks, CategoryWaterproofing, CategoryAggregate, CategoryRebar, CategoryMesh,
		CategoryBindingWire, CategoryLintel, CategoryReinforcement, CategoryDPC, CategorySealant,
		CategoryScaffolding, CategoryServices, CategoryDoors, CategoryWindows, CategoryCable,
		CategoryOutlet, CategoryLighting, CategoryDistribution, CategoryPipe, CategoryFixture,
		CategoryFitting, CategoryTimber, CategoryRoofCovering, CategoryRoofAccessory, CategoryInsulation,
		CategoryFlooring, CategoryWallFinish, CategoryCeiling, CategoryPaint, CategoryJoinery,
		CategoryGlazing,
	}
}

var validCategories = func() map[Category]struct{} {
	m := make(map[Category]struct{})
	for _, c := range AllCategories() {
		m[c] = struct{}{}
	}
	return m
}()

// String returns the string representation of the Category
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is one of the known categories
func (c Category) IsValid() bool {
	_, ok := validCategories[c]
	return ok
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(normalize(s))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
