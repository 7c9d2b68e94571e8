package rebar

// RatioLimit bounds the reinforcement ratio As/Ac for an element type
type RatioLimit struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gtefield=Min"`
}

// Settings holds rebar QS settings; read-only to the calculator
type Settings struct {
	WastagePercent      float64   `json:"wastagePercent" validate:"gte=0,lte=100"`
	StandardBarLength   float64   `json:"standardBarLength" validate:"gte=0"`
	StockLengths        []float64 `json:"stockLengths"`
	DevelopmentFactor   float64   `json:"developmentFactor" validate:"gte=0"`
	LapFactor           float64   `json:"lapFactor" validate:"gte=0"`
	HookFactor          float64   `json:"hookFactor" validate:"gte=0"`
	BendDeductionFactor float64   `json:"bendDeductionFactor" validate:"gte=0"`
	MinBarsBeam         int       `json:"minBarsBeam" validate:"gte=0"`
	MinBarsColumn       int       `json:"minBarsColumn" validate:"gte=0"`
	MinBarsPerDirection int       `json:"minBarsPerDirection" validate:"gte=0"`

	DefaultSteelRatio map[ElementType]float64    `json:"defaultSteelRatio"`
	Covers            map[ElementType]float64    `json:"covers"`
	RatioLimits       map[ElementType]RatioLimit `json:"ratioLimits"`
	MinSpacingMM      float64                    `json:"minSpacingMm" validate:"gte=0"`
	MaxSpacingMM      float64                    `json:"maxSpacingMm" validate:"gte=0"`

	DefaultMainSpacingMM         float64 `json:"defaultMainSpacingMm" validate:"gte=0"`
	DefaultDistributionSpacingMM float64 `json:"defaultDistributionSpacingMm" validate:"gte=0"`
	DefaultStirrupSpacingMM      float64 `json:"defaultStirrupSpacingMm" validate:"gte=0"`
	DefaultTankWallThickness     float64 `json:"defaultTankWallThickness" validate:"gte=0"`

	MeshLap            float64 `json:"meshLap" validate:"gte=0"`
	MeshSheetLength    float64 `json:"meshSheetLength" validate:"gte=0"`
	MeshSheetWidth     float64 `json:"meshSheetWidth" validate:"gte=0"`
	MeshWastagePercent float64 `json:"meshWastagePercent" validate:"gte=0,lte=100"`
	BindingWirePercent float64 `json:"bindingWirePercent" validate:"gte=0,lte=100"`
}

// DefaultSettings returns BS 8110 flavoured defaults
func DefaultSettings() Settings {
	return Settings{
		WastagePercent:      5,
		StandardBarLength:   12,
		StockLengths:        []float64{12},
		DevelopmentFactor:   DefaultDevelopmentFactor,
		LapFactor:           DefaultLapFactor,
		HookFactor:          10,
		BendDeductionFactor: 2,
		MinBarsBeam:         2,
		MinBarsColumn:       4,
		MinBarsPerDirection: 2,
		DefaultSteelRatio: map[ElementType]float64{
			TypeBeam:   0.015,
			TypeColumn: 0.02,
		},
		Covers: map[ElementType]float64{
			TypeSlab:          0.025,
			TypeBeam:          0.04,
			TypeColumn:        0.04,
			TypeFoundation:    0.05,
			TypeStripFooting:  0.05,
			TypeRetainingWall: 0.05,
			TypeTank:          0.04,
		},
		RatioLimits: map[ElementType]RatioLimit{
			TypeSlab:          {Min: 0.0013, Max: 0.04},
			TypeBeam:          {Min: 0.0013, Max: 0.04},
			TypeColumn:        {Min: 0.004, Max: 0.06},
			TypeFoundation:    {Min: 0.0013, Max: 0.04},
			TypeStripFooting:  {Min: 0.0013, Max: 0.04},
			TypeRetainingWall: {Min: 0.002, Max: 0.04},
			TypeTank:          {Min: 0.0035, Max: 0.04},
		},
		MinSpacingMM:                 75,
		MaxSpacingMM:                 300,
		DefaultMainSpacingMM:         200,
		DefaultDistributionSpacingMM: 250,
		DefaultStirrupSpacingMM:      200,
		DefaultTankWallThickness:     0.2,
		MeshLap:                      0.3,
		MeshSheetLength:              4.8,
		MeshSheetWidth:               2.4,
		MeshWastagePercent:           5,
		BindingWirePercent:           1,
	}
}

// cover returns the element's minimum cover in metres
func (s Settings) cover(t ElementType) float64 {
	if c, ok := s.Covers[t]; ok && c > 0 {
		return c
	}
	return 0.025
}

func (s Settings) stockLengths() []float64 {
	if len(s.StockLengths) > 0 {
		return s.StockLengths
	}
	if s.StandardBarLength > 0 {
		return []float64{s.StandardBarLength}
	}
	return []float64{12}
}
