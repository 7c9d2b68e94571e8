package shared

// Material identifies a material dimension that carries its own wastage allowance
type Material string

const (
	MaterialCement        Material = "cement"
	MaterialSand          Material = "sand"
	MaterialStone         Material = "stone"
	MaterialWater         Material = "water"
	MaterialFormwork      Material = "formwork"
	MaterialBlocks        Material = "blocks"
	MaterialMortar        Material = "mortar"
	MaterialPlaster       Material = "plaster"
	MaterialRebar         Material = "rebar"
	MaterialMesh          Material = "mesh"
	MaterialWaterproofing Material = "waterproofing"
	MaterialAggregate     Material = "aggregate"
	MaterialCable         Material = "cable"
	MaterialOutlet        Material = "outlet"
	MaterialLighting      Material = "lighting"
	MaterialDistribution  Material = "distribution"
	MaterialPipe          Material = "pipe"
	MaterialFixture       Material = "fixture"
	MaterialFitting       Material = "fitting"
	MaterialTimber        Material = "timber"
	MaterialCovering      Material = "covering"
	MaterialAccessory     Material = "accessory"
	MaterialInsulation    Material = "insulation"
	MaterialFinish        Material = "finish"
)

// WastagePolicy converts net quantities into gross (procurable) quantities.
//
// Percentages come from settings; a material without an explicit entry
// falls back to Default. Percentages are clamped to [0, 100].
type WastagePolicy struct {
	Default    float64              `json:"default" yaml:"default"`
	ByMaterial map[Material]float64 `json:"by_material,omitempty" yaml:"by_material"`
}

// NewWastagePolicy creates a policy with a default percentage
func NewWastagePolicy(defaultPercent float64) WastagePolicy {
	return WastagePolicy{Default: defaultPercent, ByMaterial: map[Material]float64{}}
}

// With returns a copy of the policy with the percentage for m set
func (p WastagePolicy) With(m Material, percent float64) WastagePolicy {
	next := make(map[Material]float64, len(p.ByMaterial)+1)
	for k, v := range p.ByMaterial {
		next[k] = v
	}
	next[m] = percent
	return WastagePolicy{Default: p.Default, ByMaterial: next}
}

// For returns the clamped wastage percentage for a material
func (p WastagePolicy) For(m Material) float64 {
	if v, ok := p.ByMaterial[m]; ok {
		return clampPercent(v)
	}
	return clampPercent(p.Default)
}

// Continuous applies the material's wastage to a volume, area or weight
func (p WastagePolicy) Continuous(m Material, net float64) float64 {
	return GrossContinuous(net, p.For(m))
}

// Count applies the material's wastage to a discrete quantity (bags, blocks, bars, sheets)
func (p WastagePolicy) Count(m Material, net float64) float64 {
	return GrossCount(net, p.For(m))
}

// GrossContinuous returns net * (1 + pct/100) for continuous quantities
func GrossContinuous(net, pct float64) float64 {
	net = NonNegative(net)
	return net * (1 + clampPercent(pct)/100)
}

// GrossCount returns ceil(net * (1 + pct/100)) for count-like quantities
func GrossCount(net, pct float64) float64 {
	return CeilCount(GrossContinuous(net, pct))
}

func clampPercent(pct float64) float64 {
	if !IsFinite(pct) || pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
