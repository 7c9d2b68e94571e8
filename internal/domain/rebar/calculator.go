package rebar

import (
	"math"
	"sort"

	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// Bar roles reported on each BarLine
const (
	RoleMain         = "main"
	RoleDistribution = "distribution"
	RoleLongitudinal = "longitudinal"
	RoleStirrup      = "stirrup"
	RoleVertical     = "vertical"
	RoleHorizontal   = "horizontal"
	RoleBaseMain     = "base-main"
	RoleBaseDist     = "base-distribution"
)

// maxPackedPieces bounds the cutting optimizer input per bar size; larger
// schedules are counted per line
const maxPackedPieces = 2000

// BarLine is one group of identical bars
type BarLine struct {
	Role        string  `json:"role"`
	Size        BarSize `json:"size"`
	Count       float64 `json:"count"`
	Length      float64 `json:"length"`
	TotalLength float64 `json:"totalLength"`
	NetWeight   float64 `json:"netWeight"`
}

// SizeTotal is the net/gross take-off and cost for one bar size
type SizeTotal struct {
	Size        BarSize `json:"size"`
	TotalLength float64 `json:"totalLength"`
	NetWeight   float64 `json:"netWeight"`
	GrossWeight float64 `json:"grossWeight"`
	NetBars     float64 `json:"netBars"`
	GrossBars   float64 `json:"grossBars"`
	UnitPrice   float64 `json:"unitPrice"`
	Cost        float64 `json:"cost"`
}

// CalcResult is the priced rebar take-off for one element row
type CalcResult struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Type ElementType `json:"type"`
	Mode Mode        `json:"mode"`

	Bars        []BarLine   `json:"bars,omitempty"`
	Sizes       []SizeTotal `json:"sizes,omitempty"`
	TotalLength float64     `json:"totalLength"`
	NetWeight   float64     `json:"netWeight"`
	GrossWeight float64     `json:"grossWeight"`
	NetBars     float64     `json:"netBars"`
	GrossBars   float64     `json:"grossBars"`

	MeshType    string  `json:"meshType,omitempty"`
	NetSheets   float64 `json:"netSheets"`
	GrossSheets float64 `json:"grossSheets"`
	MeshArea    float64 `json:"meshArea"`

	BindingWire      float64 `json:"bindingWire"`
	GrossBindingWire float64 `json:"grossBindingWire"`

	RebarCost       float64 `json:"rebarCost"`
	MeshCost        float64 `json:"meshCost"`
	BindingWireCost float64 `json:"bindingWireCost"`
	TotalCost       float64 `json:"totalCost"`
	UnitRate        float64 `json:"unitRate"`

	Compliance Compliance  `json:"compliance"`
	Waste      WasteReport `json:"waste"`
}

// geometry is an element's parsed dimensions
type geometry struct {
	length, width, depth float64
	quantity             float64
	cover                float64
}

func parseGeometry(e Element, s Settings) geometry {
	g := geometry{
		length:   shared.NonNegative(shared.SafeParseFloat(e.Length)),
		width:    shared.NonNegative(shared.SafeParseFloat(e.Width)),
		depth:    shared.NonNegative(shared.SafeParseFloat(e.Depth)),
		quantity: 1,
		cover:    shared.PositiveOr(shared.SafeParseFloat(e.Cover), s.cover(e.Type)),
	}
	if e.Quantity > 0 {
		g.quantity = float64(e.Quantity)
	}
	return g
}

// Calculate computes the net and gross rebar take-off for one element.
//
// Business Rules:
//   - bar count from spacing is ceil(span/spacing)+1, floored at a minimum
//   - bar length adds one development length at each end
//   - beams and columns take max(min bars, ceil(ratio*b*h / bar area)) longitudinal bars
//   - stirrup cutting length is the confined perimeter plus hooks minus bend deductions
//   - weights are continuous (gross = net * (1+w%)); stock bars and sheets are counts (ceil)
//   - compliance findings never suppress quantities
func Calculate(e Element, prices pricing.Source, s Settings) CalcResult {
	g := parseGeometry(e, s)
	result := CalcResult{ID: e.ID, Name: e.Name, Type: e.Type, Mode: ModeIndividual}

	if e.usesMesh() {
		result.Mode = ModeMesh
		applyMesh(&result, e, g, prices, s)
	} else {
		result.Bars = barSchedule(e, g, s)
		applyBars(&result, prices, s)
	}

	result.Compliance = ValidateCompliance(e, s)
	result.TotalCost = result.RebarCost + result.MeshCost + result.BindingWireCost
	result.UnitRate = shared.SafeDivide(result.TotalCost, result.GrossWeight)
	return result
}

// barSchedule lists the bars for individual-bar mode
func barSchedule(e Element, g geometry, s Settings) []BarLine {
	main := ParseBarSizeOr(e.MainBarSize, Y12)
	dist := ParseBarSizeOr(e.DistributionBarSize, main)
	mainSpacing := spacingM(e.MainSpacing, s.DefaultMainSpacingMM)
	distSpacing := spacingM(e.DistributionSpacing, s.DefaultDistributionSpacingMM)
	devMain := DevelopmentLength(s.DevelopmentFactor, main)
	devDist := DevelopmentLength(s.DevelopmentFactor, dist)
	minDir := float64(s.MinBarsPerDirection)

	var lines []BarLine
	add := func(role string, size BarSize, count, length float64) {
		if count <= 0 || length <= 0 {
			return
		}
		count *= g.quantity
		total := count * length
		lines = append(lines, BarLine{
			Role:        role,
			Size:        size,
			Count:       count,
			Length:      length,
			TotalLength: total,
			NetWeight:   Weight(total, size),
		})
	}

	switch e.Type {
	case TypeBeam:
		b, h := g.width, g.depth
		n := longitudinalBars(e, b, h, main, s.MinBarsBeam, s)
		add(RoleLongitudinal, main, n, g.length+2*devMain)
		addLinks(add, e, b, h, g.length, g.cover, s)
	case TypeColumn:
		b, h := g.length, g.width
		n := longitudinalBars(e, b, h, main, s.MinBarsColumn, s)
		add(RoleLongitudinal, main, n, g.depth+2*devMain)
		addLinks(add, e, b, h, g.depth, g.cover, s)
	case TypeStripFooting:
		add(RoleMain, main, barsAlong(g.length, mainSpacing, minDir), g.width+2*devMain)
		add(RoleDistribution, dist, barsAlong(g.width, distSpacing, minDir), g.length+2*devDist)
	case TypeRetainingWall:
		add(RoleVertical, main, 2*barsAlong(g.length, mainSpacing, minDir), g.depth+2*devMain)
		add(RoleHorizontal, dist, 2*barsAlong(g.depth, distSpacing, minDir), g.length+2*devDist)
	case TypeTank:
		t := tankWallThickness(e, s)
		baseL, baseW := g.length+2*t, g.width+2*t
		add(RoleBaseMain, main, barsAlong(baseW, mainSpacing, minDir), baseL+2*devMain)
		add(RoleBaseDist, dist, barsAlong(baseL, distSpacing, minDir), baseW+2*devDist)
		perimeter := 2 * (g.length + g.width)
		add(RoleVertical, main, 2*barsAlong(perimeter, mainSpacing, minDir), g.depth+2*devMain)
		add(RoleHorizontal, dist, 2*barsAlong(g.depth, distSpacing, minDir), perimeter+2*devDist)
	default:
		// slab, foundation pad, and mesh requested on a member that cannot take fabric.
		// Main bars are counted across the width and run the length.
		add(RoleMain, main, barsAlong(g.width, mainSpacing, minDir), g.length+2*devMain)
		add(RoleDistribution, dist, barsAlong(g.length, distSpacing, minDir), g.width+2*devDist)
	}
	return lines
}

// addLinks adds stirrups (beams) or ties (columns) along the clear span
func addLinks(add func(string, BarSize, float64, float64), e Element, b, h, span, cover float64, s Settings) {
	size := ParseBarSizeOr(e.StirrupBarSize, Y8)
	spacing := spacingM(e.StirrupSpacing, s.DefaultStirrupSpacingMM)
	clear := span - 2*cover
	length := StirrupLength(b, h, cover, size, s)
	if clear <= 0 || length <= 0 {
		return
	}
	add(RoleStirrup, size, shared.CeilCount(clear/spacing)+1, length)
}

// StirrupLength is the cutting length of one closed link:
// 2*((b-2c)+(h-2c)) + 2*hook*d - 3*bend*d, 0 when the core vanishes
func StirrupLength(b, h, cover float64, size BarSize, s Settings) float64 {
	coreB := b - 2*cover
	coreH := h - 2*cover
	if coreB <= 0 || coreH <= 0 {
		return 0
	}
	d := size.Diameter() / 1000
	length := 2*(coreB+coreH) + 2*s.HookFactor*d - 3*s.BendDeductionFactor*d
	return shared.NonNegative(length)
}

// longitudinalBars derives the bar count from the required steel area
func longitudinalBars(e Element, b, h float64, size BarSize, minBars int, s Settings) float64 {
	if b <= 0 || h <= 0 {
		return 0
	}
	ratio := steelRatio(e, s)
	required := ratio * (b * 1000) * (h * 1000)
	n := shared.CeilCount(shared.SafeDivide(required, size.Area()))
	return math.Max(float64(minBars), n)
}

func steelRatio(e Element, s Settings) float64 {
	def := s.DefaultSteelRatio[e.Type]
	if def <= 0 {
		def = 0.015
	}
	return shared.PositiveOr(shared.SafeParseFloat(e.SteelRatio), def)
}

func tankWallThickness(e Element, s Settings) float64 {
	return shared.PositiveOr(shared.SafeParseFloat(e.WallThickness), shared.PositiveOr(s.DefaultTankWallThickness, 0.2))
}

// barsAlong counts bars at spacing over span: max(min, ceil(span/spacing)+1)
func barsAlong(span, spacing, min float64) float64 {
	if span <= 0 || spacing <= 0 {
		return 0
	}
	return math.Max(min, shared.CeilCount(span/spacing)+1)
}

// spacingM parses a millimetre spacing and returns metres
func spacingM(mm string, defMM float64) float64 {
	return shared.PositiveOr(shared.SafeParseFloat(mm), shared.PositiveOr(defMM, 200)) / 1000
}

// applyBars totals the schedule per size, counts stock bars and prices it
func applyBars(r *CalcResult, prices pricing.Source, s Settings) {
	bySize := make(map[BarSize]*SizeTotal)
	pieces := make(map[BarSize][]BarLine)
	for _, line := range r.Bars {
		t, ok := bySize[line.Size]
		if !ok {
			t = &SizeTotal{Size: line.Size}
			bySize[line.Size] = t
		}
		t.TotalLength += line.TotalLength
		t.NetWeight += line.NetWeight
		pieces[line.Size] = append(pieces[line.Size], line)
	}

	sizes := make([]BarSize, 0, len(bySize))
	for size := range bySize {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i].Diameter() < sizes[j].Diameter() })

	stock := s.stockLengths()
	standard := stock[len(stock)-1]
	for _, size := range sizes {
		t := bySize[size]
		bars, waste := stockBars(pieces[size], size, stock, standard, s)
		t.NetBars = bars
		t.GrossBars = shared.GrossCount(bars, s.WastagePercent)
		t.GrossWeight = shared.GrossContinuous(t.NetWeight, s.WastagePercent)
		t.UnitPrice = prices.Price(RebarLookup(size))
		t.Cost = t.GrossWeight * t.UnitPrice

		r.Sizes = append(r.Sizes, *t)
		r.TotalLength += t.TotalLength
		r.NetWeight += t.NetWeight
		r.GrossWeight += t.GrossWeight
		r.NetBars += t.NetBars
		r.GrossBars += t.GrossBars
		r.RebarCost += t.Cost
		r.Waste = mergeWaste(r.Waste, waste)
	}
	r.Waste = finishWaste(r.Waste)

	applyBindingWire(r, r.NetWeight, prices, s)
}

// stockBars counts stock bars for one size. Runs longer than the stock are
// spliced with laps; shorter pieces go through the cutting optimizer.
func stockBars(lines []BarLine, size BarSize, stock []float64, standard float64, s Settings) (float64, WasteReport) {
	var bars, pieces float64
	lap := LapLength(s.LapFactor, size)
	for _, line := range lines {
		if line.Length > standard {
			bars += OptimizedBarCount(line.Length, standard, lap).BarsNeeded * line.Count
			continue
		}
		pieces += shortPieces(line)
	}

	if pieces == 0 {
		return bars, WasteReport{}
	}
	if pieces > maxPackedPieces {
		report := countPerLine(lines, standard)
		return bars + report.BarsUsed, report
	}

	short := make([]float64, 0, int(pieces))
	for _, line := range lines {
		if line.Length > standard {
			continue
		}
		for i := 0; i < int(shortPieces(line)); i++ {
			short = append(short, line.Length)
		}
	}
	report := OptimizeWaste(short, stock)
	return bars + report.BarsUsed, report
}

// shortPieces is the whole number of pieces a line contributes to the optimizer
func shortPieces(line BarLine) float64 {
	if line.Length <= 0 || !shared.IsFinite(line.Count) || line.Count <= 0 {
		return 0
	}
	return math.Floor(line.Count)
}

// countPerLine packs identical pieces line by line without mixing offcuts
func countPerLine(lines []BarLine, standard float64) WasteReport {
	var report WasteReport
	for _, line := range lines {
		if line.Length > standard || line.Length <= 0 || !shared.IsFinite(line.Count) || line.Count <= 0 {
			continue
		}
		perBar := math.Floor(standard/line.Length + 1e-9)
		bars := shared.CeilCount(line.Count / perBar)
		report.BarsUsed += bars
		report.StockLength += bars * standard
		report.OffcutLength += bars*standard - line.TotalLength
	}
	return report
}

func mergeWaste(a, b WasteReport) WasteReport {
	a.BarsUsed += b.BarsUsed
	a.StockLength += b.StockLength
	a.OffcutLength += b.OffcutLength
	a.Patterns = append(a.Patterns, b.Patterns...)
	return a
}

func finishWaste(w WasteReport) WasteReport {
	w.ActualPercent = shared.SafeDivide(w.OffcutLength, w.StockLength) * 100
	w.OptimizedPercent = math.Min(maxOptimizedWastePercent, math.Max(minOptimizedWastePercent, w.ActualPercent))
	return w
}

func applyBindingWire(r *CalcResult, steelWeight float64, prices pricing.Source, s Settings) {
	r.BindingWire = steelWeight * shared.NonNegative(s.BindingWirePercent) / 100
	r.GrossBindingWire = shared.GrossContinuous(r.BindingWire, s.WastagePercent)
	r.BindingWireCost = r.GrossBindingWire * prices.Price(BindingWireLookup())
}

// RebarLookup is the price lookup for loose bars of a size, priced per kg
func RebarLookup(size BarSize) pricing.Lookup {
	return pricing.NewLookup(pricing.CategoryRebar, "Rebar").With(pricing.Attributes{Size: size.String()})
}

// BindingWireLookup is the price lookup for tying wire, priced per kg
func BindingWireLookup() pricing.Lookup {
	return pricing.NewLookup(pricing.CategoryBindingWire, "Binding Wire")
}
