package mix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// Ratio is a volumetric cement:sand:stone proportion.
// Mortar ratios carry Stone == 0.
type Ratio struct {
	Cement float64 `json:"cement"`
	Sand   float64 `json:"sand"`
	Stone  float64 `json:"stone"`
}

var (
	// DefaultConcreteRatio is used when a concrete mix string is malformed
	DefaultConcreteRatio = Ratio{Cement: 1, Sand: 2, Stone: 4}

	// DefaultMortarRatio is used when a mortar mix string is malformed
	DefaultMortarRatio = Ratio{Cement: 1, Sand: 4}
)

// ParseConcreteRatio parses a "C:S:A" string.
// Anything other than three finite positive parts yields DefaultConcreteRatio.
func ParseConcreteRatio(ratio string) Ratio {
	parts, ok := parseParts(ratio, 3)
	if !ok {
		return DefaultConcreteRatio
	}
	return Ratio{Cement: parts[0], Sand: parts[1], Stone: parts[2]}
}

// ParseMortarRatio parses a "C:S" string, falling back to DefaultMortarRatio
func ParseMortarRatio(ratio string) Ratio {
	parts, ok := parseParts(ratio, 2)
	if !ok {
		return DefaultMortarRatio
	}
	return Ratio{Cement: parts[0], Sand: parts[1]}
}

func parseParts(ratio string, want int) ([]float64, bool) {
	fields := strings.Split(strings.TrimSpace(ratio), ":")
	if len(fields) != want {
		return nil, false
	}
	parts := make([]float64, want)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || !shared.IsFinite(v) || v <= 0 {
			return nil, false
		}
		parts[i] = v
	}
	return parts, true
}

// TotalParts returns the sum of all parts
func (r Ratio) TotalParts() float64 {
	return r.Cement + r.Sand + r.Stone
}

// IsMortar reports whether the ratio has no coarse aggregate
func (r Ratio) IsMortar() bool {
	return r.Stone == 0
}

func (r Ratio) String() string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	if r.IsMortar() {
		return fmt.Sprintf("%s:%s", format(r.Cement), format(r.Sand))
	}
	return fmt.Sprintf("%s:%s:%s", format(r.Cement), format(r.Sand), format(r.Stone))
}
