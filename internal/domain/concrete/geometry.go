package concrete

import (
	"math"

	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// shape is the geometry of one unit of an element, before the row multiplier
type shape struct {
	volume    float64
	surface   float64 // exposed area that is cured
	formwork  float64
	footprint float64 // plan area that sits on the beds
	perimeter float64 // plan perimeter, for DPC and foundation walling
	wetArea   float64 // faces a tank membrane covers
}

type dims struct {
	l, w, h, d float64
}

func parseDims(r Row) dims {
	return dims{
		l: dimension(r.Length),
		w: dimension(r.Width),
		h: dimension(r.Height),
		d: dimension(r.Diameter),
	}
}

func dimension(s string) float64 {
	return shared.NonNegative(shared.SafeParseFloat(s))
}

// diameter falls back to the length when no diameter is given
func (d dims) diameter() float64 {
	if d.d > 0 {
		return d.d
	}
	return d.l
}

// measure computes the single-unit geometry for the row's element type
func measure(r Row, s Settings) shape {
	d := parseDims(r)
	box := d.l * d.w * d.h
	plan := d.l * d.w
	perim := 2 * (d.l + d.w)

	switch r.ElementType {
	case TypeSlab:
		return shape{volume: box, surface: plan, formwork: plan + perim*d.h, footprint: plan, perimeter: perim}
	case TypeRaft, TypePaving, TypeRamp:
		return shape{volume: box, surface: plan, formwork: perim * d.h, footprint: plan, perimeter: perim}
	case TypeBeam, TypeRingBeam, TypeLintel:
		return shape{volume: box, surface: plan, formwork: d.l * (d.w + 2*d.h), perimeter: 2 * d.l}
	case TypeGroundBeam, TypeStripFooting:
		return shape{volume: box, surface: plan, formwork: 2 * d.l * d.h, footprint: plan, perimeter: 2 * d.l}
	case TypeColumn:
		return shape{volume: box, surface: perim * d.h, formwork: perim * d.h, footprint: plan, perimeter: perim}
	case TypeCircularColumn:
		dia := d.diameter()
		area := circleArea(dia)
		return shape{volume: area * d.h, surface: math.Pi * dia * d.h, formwork: math.Pi * dia * d.h, footprint: area, perimeter: math.Pi * dia}
	case TypePile:
		dia := d.diameter()
		area := circleArea(dia)
		return shape{volume: area * d.h, surface: area, footprint: area}
	case TypeFoundation, TypePileCap:
		if r.IsSteppedFoundation && len(r.FoundationSteps) > 0 {
			return steppedFoundation(r.FoundationSteps, d)
		}
		return shape{volume: box, surface: plan, formwork: perim * d.h, footprint: plan, perimeter: perim}
	case TypeWall:
		return shape{volume: box, surface: 2 * d.l * d.h, formwork: 2 * d.l * d.h, footprint: plan, perimeter: 2 * d.l}
	case TypeStaircase:
		if r.StaircaseDetails != nil {
			return staircase(*r.StaircaseDetails, d)
		}
		return shape{volume: box, surface: plan, formwork: plan}
	case TypeSepticTank, TypeWaterTank, TypeManhole:
		return tank(r.TankDetails, d, s)
	case TypeSoakPit:
		return soakPit(r.TankDetails, d, s)
	}
	return shape{volume: box, surface: plan, footprint: plan, perimeter: perim}
}

func circleArea(diameter float64) float64 {
	r := diameter / 2
	return math.Pi * r * r
}

// steppedFoundation sums discrete tiers; the bottom tier sets the footprint
func steppedFoundation(steps []Step, d dims) shape {
	var out shape
	for i, st := range steps {
		l := shared.PositiveOr(dimension(st.Length), d.l)
		w := shared.PositiveOr(dimension(st.Width), d.w)
		depth := dimension(st.Depth)
		out.volume += l * w * depth
		out.formwork += 2 * (l + w) * depth
		if i == 0 {
			out.footprint = l * w
			out.surface = l * w
			out.perimeter = 2 * (l + w)
		}
	}
	return out
}

// staircase is a waist slab on the going plus the triangular steps
func staircase(sd StaircaseDetails, d dims) shape {
	steps := float64(shared.SafeParseInt(sd.Steps))
	if steps < 0 {
		steps = 0
	}
	rise := dimension(sd.Rise)
	tread := dimension(sd.Tread)
	width := shared.PositiveOr(dimension(sd.Width), d.w)
	waist := shared.PositiveOr(dimension(sd.WaistThickness), 0.15)

	incline := steps * math.Hypot(rise, tread)
	return shape{
		volume:   waist*incline*width + steps*(rise*tread/2)*width,
		surface:  steps * tread * width,
		formwork: incline*width + steps*rise*width,
	}
}

type tankSizes struct {
	wall, base, cover float64
}

func tankThicknesses(td *TankDetails, s Settings) tankSizes {
	sizes := tankSizes{
		wall: shared.PositiveOr(s.TankWallThickness, 0.2),
		base: shared.PositiveOr(s.TankBaseThickness, 0.2),
	}
	if td == nil {
		return sizes
	}
	sizes.wall = shared.PositiveOr(dimension(td.WallThickness), sizes.wall)
	sizes.base = shared.PositiveOr(dimension(td.BaseThickness), sizes.base)
	if td.HasCover {
		sizes.cover = shared.PositiveOr(dimension(td.CoverThickness), shared.PositiveOr(s.TankCoverThickness, 0.15))
	}
	return sizes
}

// tank is a rectangular chamber: base, four walls and an optional cover slab.
// Length, width and height are internal.
func tank(td *TankDetails, d dims, s Settings) shape {
	t := tankThicknesses(td, s)
	outerL, outerW := d.l+2*t.wall, d.w+2*t.wall
	outerPlan := outerL * outerW

	walls := (2*(d.l+d.w) + 4*t.wall) * t.wall * d.h
	base := outerPlan * t.base
	cover := outerPlan * t.cover

	internalWalls := 2 * (d.l + d.w) * d.h
	externalWalls := 2 * (outerL + outerW) * d.h
	formwork := internalWalls + externalWalls
	if t.cover > 0 {
		formwork += d.l*d.w + 2*(outerL+outerW)*t.cover
	}

	return shape{
		volume:    walls + base + cover,
		surface:   internalWalls + externalWalls + outerPlan,
		formwork:  formwork,
		footprint: outerPlan,
		perimeter: 2 * (outerL + outerW),
		wetArea:   internalWalls + d.l*d.w,
	}
}

// soakPit is a circular lining ring; the base is left open to drain
func soakPit(td *TankDetails, d dims, s Settings) shape {
	t := tankThicknesses(td, s)
	inner := d.diameter()
	outer := inner + 2*t.wall
	ring := (circleArea(outer) - circleArea(inner)) * d.h
	cover := 0.0
	if t.cover > 0 {
		cover = circleArea(outer) * t.cover
	}
	return shape{
		volume:    ring + cover,
		surface:   math.Pi * (inner + outer) * d.h,
		formwork:  math.Pi * inner * d.h,
		footprint: circleArea(outer),
		perimeter: math.Pi * outer,
	}
}
