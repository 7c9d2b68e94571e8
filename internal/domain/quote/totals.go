package quote

// Totals is the project-wide cost per domain.
// Add is associative and commutative, and the zero value is its identity.
type Totals struct {
	Concrete   float64 `json:"concrete"`
	Masonry    float64 `json:"masonry"`
	Rebar      float64 `json:"rebar"`
	Electrical float64 `json:"electrical"`
	Plumbing   float64 `json:"plumbing"`
	Roofing    float64 `json:"roofing"`
	Finishes   float64 `json:"finishes"`
	Extras     float64 `json:"extras"`
	Total      float64 `json:"total"`
}

// Add sums two totals field by field
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Concrete:   t.Concrete + o.Concrete,
		Masonry:    t.Masonry + o.Masonry,
		Rebar:      t.Rebar + o.Rebar,
		Electrical: t.Electrical + o.Electrical,
		Plumbing:   t.Plumbing + o.Plumbing,
		Roofing:    t.Roofing + o.Roofing,
		Finishes:   t.Finishes + o.Finishes,
		Extras:     t.Extras + o.Extras,
		Total:      t.Total + o.Total,
	}
}

// TotalsOf reads the per-domain totals off a set of calculations
func TotalsOf(c Calculations, extras []ExtraItem) Totals {
	t := Totals{
		Concrete:   c.Concrete.Totals.TotalCost,
		Masonry:    c.Masonry.Totals.TotalCost,
		Rebar:      c.Rebar.TotalCost,
		Electrical: c.Electrical.TotalCost,
		Plumbing:   c.Plumbing.TotalCost,
		Roofing:    c.Roofing.TotalCost,
		Finishes:   c.Finishes.TotalCost,
	}
	for _, e := range extras {
		if e.Quantity > 0 && e.Rate > 0 {
			t.Extras += e.Quantity * e.Rate
		}
	}
	t.Total = t.Concrete + t.Masonry + t.Rebar + t.Electrical + t.Plumbing + t.Roofing + t.Finishes + t.Extras
	return t
}
