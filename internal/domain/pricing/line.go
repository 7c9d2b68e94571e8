package pricing

import "github.com/andrescamacho/takeoff-go/internal/domain/shared"

// Line is one priced take-off quantity
type Line struct {
	Description   string   `json:"description"`
	Category      Category `json:"category"`
	Variant       string   `json:"variant,omitempty"`
	Unit          string   `json:"unit"`
	NetQuantity   float64  `json:"netQuantity"`
	GrossQuantity float64  `json:"grossQuantity"`
	UnitPrice     float64  `json:"unitPrice"`
	Cost          float64  `json:"cost"`
}

// CountLine prices a count-like quantity: gross = ceil(net * (1 + pct/100))
func CountLine(src Source, l Lookup, unit string, net, wastagePercent float64) Line {
	gross := shared.GrossCount(net, wastagePercent)
	return newLine(src, l, unit, shared.NonNegative(net), gross)
}

// ContinuousLine prices a continuous quantity: gross = net * (1 + pct/100)
func ContinuousLine(src Source, l Lookup, unit string, net, wastagePercent float64) Line {
	gross := shared.GrossContinuous(net, wastagePercent)
	return newLine(src, l, unit, shared.NonNegative(net), gross)
}

func newLine(src Source, l Lookup, unit string, net, gross float64) Line {
	price := src.Price(l)
	return Line{
		Description:   l.Name,
		Category:      l.Category,
		Variant:       l.Variant(),
		Unit:          unit,
		NetQuantity:   net,
		GrossQuantity: gross,
		UnitPrice:     price,
		Cost:          gross * price,
	}
}

// SumCost totals the cost of lines
func SumCost(lines []Line) float64 {
	total := 0.0
	for _, l := range lines {
		total += l.Cost
	}
	return total
}
