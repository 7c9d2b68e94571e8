package rebar

import (
	"fmt"
	"math"

	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

const (
	errorPenalty   = 20.0
	warningPenalty = 5.0
)

// Compliance is the outcome of the code checks for one element.
// Errors make the design invalid; warnings only lower the score.
type Compliance struct {
	IsValid  bool     `json:"isValid"`
	Score    float64  `json:"score"`
	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Ratio    float64  `json:"ratio"`
}

func (c *Compliance) warn(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func (c *Compliance) fail(format string, args ...any) {
	c.Errors = append(c.Errors, fmt.Sprintf(format, args...))
}

// ValidateCompliance checks reinforcement ratio, bar spacing and cover.
//
// Business Rules:
//   - provided ratio outside the element type's [min, max] is an error
//   - any spacing outside the global [min, max] mm is a warning
//   - a cover below the element type's minimum is an error
//   - score = 100 - 20*errors - 5*warnings, clamped to [0, 100]
func ValidateCompliance(e Element, s Settings) Compliance {
	var c Compliance
	g := parseGeometry(e, s)

	if !e.usesMesh() {
		c.Ratio = providedRatio(e, g, s)
		if limit, ok := s.RatioLimits[e.Type]; ok && c.Ratio > 0 {
			if c.Ratio < limit.Min {
				c.fail("reinforcement ratio %.4f below minimum %.4f for %s", c.Ratio, limit.Min, e.Type)
			}
			if limit.Max > 0 && c.Ratio > limit.Max {
				c.fail("reinforcement ratio %.4f above maximum %.4f for %s", c.Ratio, limit.Max, e.Type)
			}
		}

		for _, sp := range checkedSpacings(e, s) {
			if s.MinSpacingMM > 0 && sp.mm < s.MinSpacingMM {
				c.warn("%s spacing %.0f mm below minimum %.0f mm", sp.name, sp.mm, s.MinSpacingMM)
			}
			if s.MaxSpacingMM > 0 && sp.mm > s.MaxSpacingMM {
				c.warn("%s spacing %.0f mm above maximum %.0f mm", sp.name, sp.mm, s.MaxSpacingMM)
			}
		}
	}

	if minCover := s.cover(e.Type); g.cover < minCover-1e-9 {
		c.fail("cover %.0f mm below minimum %.0f mm for %s", g.cover*1000, minCover*1000, e.Type)
	}

	c.IsValid = len(c.Errors) == 0
	score := 100 - errorPenalty*float64(len(c.Errors)) - warningPenalty*float64(len(c.Warnings))
	c.Score = math.Max(0, math.Min(100, score))
	return c
}

// providedRatio is As/Ac of the main steel, 0 when the section is undefined
func providedRatio(e Element, g geometry, s Settings) float64 {
	main := ParseBarSizeOr(e.MainBarSize, Y12)
	spacingMM := spacingM(e.MainSpacing, s.DefaultMainSpacingMM) * 1000

	switch e.Type {
	case TypeBeam:
		n := longitudinalBars(e, g.width, g.depth, main, s.MinBarsBeam, s)
		return shared.SafeDivide(n*main.Area(), g.width*1000*g.depth*1000)
	case TypeColumn:
		n := longitudinalBars(e, g.length, g.width, main, s.MinBarsColumn, s)
		return shared.SafeDivide(n*main.Area(), g.length*1000*g.width*1000)
	case TypeRetainingWall:
		return shared.SafeDivide(2*main.Area(), spacingMM*g.width*1000)
	case TypeTank:
		return shared.SafeDivide(2*main.Area(), spacingMM*tankWallThickness(e, s)*1000)
	default:
		return shared.SafeDivide(main.Area(), spacingMM*g.depth*1000)
	}
}

type namedSpacing struct {
	name string
	mm   float64
}

func checkedSpacings(e Element, s Settings) []namedSpacing {
	switch e.Type {
	case TypeBeam, TypeColumn:
		return []namedSpacing{{"stirrup", spacingM(e.StirrupSpacing, s.DefaultStirrupSpacingMM) * 1000}}
	default:
		return []namedSpacing{
			{"main", spacingM(e.MainSpacing, s.DefaultMainSpacingMM) * 1000},
			{"distribution", spacingM(e.DistributionSpacing, s.DefaultDistributionSpacingMM) * 1000},
		}
	}
}
