package pricing

import (
	"fmt"
	"strings"
)

// Attributes are the variant dimensions a price can depend on
type Attributes struct {
	Size        string `json:"size,omitempty"`
	Rating      string `json:"rating,omitempty"`
	Wattage     string `json:"wattage,omitempty"`
	Quality     string `json:"quality,omitempty"`
	ControlType string `json:"controlType,omitempty"`
}

// IsZero reports whether no attribute is set
func (a Attributes) IsZero() bool {
	return a == Attributes{}
}

// VariantKey renders the catalog variant key for a category.
//
// Keys follow the catalog's conventions:
//   - cable:                "2.5 mm²"
//   - outlet, distribution: "13 A"
//   - lighting:             "18W - Switched"
//   - pipe, fitting:        "20 mm"
//   - anything else:        quality, else size, else rating
func VariantKey(c Category, a Attributes) string {
	size := strings.TrimSpace(a.Size)
	rating := strings.TrimSpace(a.Rating)
	wattage := strings.TrimSpace(a.Wattage)

	switch c {
	case CategoryCable:
		if size != "" {
			return fmt.Sprintf("%s mm²", size)
		}
	case CategoryOutlet, CategoryDistribution:
		if rating != "" {
			return fmt.Sprintf("%s A", rating)
		}
	case CategoryLighting:
		if wattage != "" {
			control := strings.TrimSpace(a.ControlType)
			if control == "" {
				return fmt.Sprintf("%sW", wattage)
			}
			return fmt.Sprintf("%sW - %s", wattage, titleCase(control))
		}
	case CategoryPipe, CategoryFitting:
		if size != "" {
			return fmt.Sprintf("%s mm", size)
		}
	}

	switch {
	case strings.TrimSpace(a.Quality) != "":
		return strings.TrimSpace(a.Quality)
	case size != "":
		return size
	case rating != "":
		return rating
	}
	return ""
}

// Lookup identifies a priced item: category, name or type, and variant attributes
type Lookup struct {
	Category   Category   `json:"category"`
	Name       string     `json:"name"`
	Attributes Attributes `json:"attributes,omitempty"`
}

// NewLookup creates a lookup without variant attributes
func NewLookup(c Category, name string) Lookup {
	return Lookup{Category: c, Name: name}
}

// With returns the lookup with the given attributes
func (l Lookup) With(a Attributes) Lookup {
	l.Attributes = a
	return l
}

// Variant returns the rendered variant key for the lookup
func (l Lookup) Variant() string {
	return VariantKey(l.Category, l.Attributes)
}

// Key is a stable identity for diagnostics and map keys
func (l Lookup) Key() string {
	return entryKey(l.Category, l.Name, l.Variant())
}

func (l Lookup) String() string {
	if v := l.Variant(); v != "" {
		return fmt.Sprintf("%s/%s (%s)", l.Category, l.Name, v)
	}
	return fmt.Sprintf("%s/%s", l.Category, l.Name)
}

// Entry is a priced catalog row
type Entry struct {
	Name     string             `json:"name"`
	Unit     string             `json:"unit"`
	Price    float64            `json:"price"`
	Category Category           `json:"category"`
	Variants map[string]float64 `json:"variants,omitempty"`
}

// PriceFor returns the variant price when the variant is listed, else the base price
func (e Entry) PriceFor(variant string) float64 {
	if variant != "" {
		for k, v := range e.Variants {
			if normalize(k) == normalize(variant) {
				return v
			}
		}
	}
	return e.Price
}

func entryKey(c Category, name, variant string) string {
	key := normalize(string(c)) + "|" + normalize(name)
	if variant != "" {
		key += "|" + normalize(variant)
	}
	return key
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
