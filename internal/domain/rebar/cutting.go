package rebar

import (
	"math"
	"sort"

	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// BarCount is the number of stock bars needed for one continuous run
type BarCount struct {
	BarsNeeded  float64 `json:"barsNeeded"`
	TotalLength float64 `json:"totalLength"`
}

// OptimizedBarCount counts stock bars for a run spliced end-to-end.
// Each splice consumes one lap length from the usable length of a bar.
func OptimizedBarCount(requiredLength, standardLength, lapLength float64) BarCount {
	required := shared.NonNegative(requiredLength)
	standard := shared.NonNegative(standardLength)
	if required == 0 || standard == 0 {
		return BarCount{}
	}
	if required <= standard {
		return BarCount{BarsNeeded: 1, TotalLength: standard}
	}

	effective := standard - shared.NonNegative(lapLength)
	if effective <= 0 {
		effective = standard
	}
	bars := shared.CeilCount(required / effective)
	return BarCount{BarsNeeded: bars, TotalLength: bars * standard}
}

// CuttingPattern is one stock bar and the pieces cut from it
type CuttingPattern struct {
	StandardLength float64   `json:"standardLength"`
	Cuts           []float64 `json:"cuts"`
	Waste          float64   `json:"waste"`
	Efficiency     float64   `json:"efficiency"`
}

// OptimizeCutting packs required piece lengths into stock bars.
//
// Greedy first-fit-decreasing: each round tries every stock length, fills one
// bar from the remaining pieces (largest first) and keeps the candidate with the
// least offcut, ties going to the shorter stock. The result is deterministic but
// not globally optimal. Packing stops once the largest remaining piece fits no
// stock length.
func OptimizeCutting(requiredLengths []float64, availableStandardLengths []float64, allowMultiple bool) []CuttingPattern {
	remaining := make([]float64, 0, len(requiredLengths))
	for _, l := range requiredLengths {
		if shared.IsFinite(l) && l > 0 {
			remaining = append(remaining, l)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(remaining)))

	stock := make([]float64, 0, len(availableStandardLengths))
	for _, s := range availableStandardLengths {
		if shared.IsFinite(s) && s > 0 {
			stock = append(stock, s)
		}
	}
	sort.Float64s(stock)

	var patterns []CuttingPattern
	for len(remaining) > 0 {
		if len(stock) == 0 || remaining[0] > stock[len(stock)-1]+1e-9 {
			break
		}
		best := -1
		var bestUsed []int
		bestWaste := math.Inf(1)
		bestStock := 0.0

		for _, length := range stock {
			used := fillBar(remaining, length, allowMultiple)
			if len(used) == 0 {
				continue
			}
			waste := length - sumAt(remaining, used)
			if waste < bestWaste-1e-9 {
				best, bestUsed, bestWaste, bestStock = len(patterns), used, waste, length
			}
		}
		if best < 0 {
			break
		}

		cuts := make([]float64, len(bestUsed))
		for i, idx := range bestUsed {
			cuts[i] = remaining[idx]
		}
		patterns = append(patterns, CuttingPattern{
			StandardLength: bestStock,
			Cuts:           cuts,
			Waste:          bestWaste,
			Efficiency:     (bestStock - bestWaste) / bestStock * 100,
		})
		remaining = removeAt(remaining, bestUsed)
	}
	return patterns
}

// fillBar returns the indexes of pieces that first-fit into one bar
func fillBar(pieces []float64, length float64, allowMultiple bool) []int {
	var used []int
	left := length
	for i, p := range pieces {
		if p <= left+1e-9 {
			used = append(used, i)
			left -= p
			if !allowMultiple {
				break
			}
		}
	}
	return used
}

func sumAt(values []float64, idx []int) float64 {
	total := 0.0
	for _, i := range idx {
		total += values[i]
	}
	return total
}

func removeAt(values []float64, idx []int) []float64 {
	drop := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		drop[i] = struct{}{}
	}
	out := values[:0:0]
	for i, v := range values {
		if _, ok := drop[i]; !ok {
			out = append(out, v)
		}
	}
	return out
}

const (
	minOptimizedWastePercent = 2.0
	maxOptimizedWastePercent = 15.0
)

// WasteReport summarises cutting waste for a set of pieces
type WasteReport struct {
	ActualPercent    float64          `json:"actualPercent"`
	OptimizedPercent float64          `json:"optimizedPercent"`
	BarsUsed         float64          `json:"barsUsed"`
	StockLength      float64          `json:"stockLength"`
	OffcutLength     float64          `json:"offcutLength"`
	Patterns         []CuttingPattern `json:"patterns,omitempty"`
}

// OptimizeWaste packs pieces and reports the real offcut percentage.
// The optimized figure used for ordering is clamped to [2%, 15%].
func OptimizeWaste(pieces []float64, standardLengths []float64) WasteReport {
	patterns := OptimizeCutting(pieces, standardLengths, true)

	report := WasteReport{Patterns: patterns, BarsUsed: float64(len(patterns))}
	for _, p := range patterns {
		report.StockLength += p.StandardLength
		report.OffcutLength += p.Waste
	}
	report.ActualPercent = shared.SafeDivide(report.OffcutLength, report.StockLength) * 100
	report.OptimizedPercent = math.Min(maxOptimizedWastePercent, math.Max(minOptimizedWastePercent, report.ActualPercent))
	return report
}
