package quote

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
	"github.com/andrescamacho/takeoff-go/internal/domain/rebar"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// Section titles in bill order
const (
	SectionConcrete   = "Concrete Works"
	SectionMasonry    = "Masonry Works"
	SectionRebar      = "Reinforcement"
	SectionElectrical = "Electrical Installation"
	SectionPlumbing   = "Plumbing Installation"
	SectionRoofing    = "Roofing"
	SectionFinishes   = "Finishes"
	SectionExtras     = "Additional Items"
)

// BOQItem is one row of the bill of quantities. Header rows carry only a
// description and never count towards the materials cost.
type BOQItem struct {
	ItemNo      string  `json:"item_no"`
	Description string  `json:"description"`
	Unit        string  `json:"unit,omitempty"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
	IsHeader    bool    `json:"is_header"`
}

// ExtraItem is a manually entered bill line
type ExtraItem struct {
	Description string  `json:"description" yaml:"description" validate:"required"`
	Unit        string  `json:"unit" yaml:"unit"`
	Quantity    float64 `json:"quantity" yaml:"quantity" validate:"gte=0"`
	Rate        float64 `json:"rate" yaml:"rate" validate:"gte=0"`
}

// Section is a titled run of items
type Section struct {
	Title string    `json:"title"`
	Items []BOQItem `json:"items"`
	Total float64   `json:"total"`
}

// BOQ is the bill of quantities
type BOQ struct {
	Sections []Section `json:"sections"`
}

// Items flattens the bill into rows, one header row per section
func (b BOQ) Items() []BOQItem {
	var out []BOQItem
	for i, sec := range b.Sections {
		out = append(out, BOQItem{ItemNo: fmt.Sprintf("%d", i+1), Description: sec.Title, IsHeader: true})
		out = append(out, sec.Items...)
	}
	return out
}

// MaterialsCost sums every non-header amount
func (b BOQ) MaterialsCost() float64 {
	total := 0.0
	for _, it := range b.Items() {
		if !it.IsHeader {
			total += it.Amount
		}
	}
	return total
}

// Section returns the section with the given title
func (b BOQ) Section(title string) (Section, bool) {
	for _, s := range b.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return Section{}, false
}

// BuildBOQ lays every calculation out as bill items. Element-based domains
// (concrete, masonry, rebar) bill one item per element at its all-in rate;
// line-based domains bill each priced line. Empty sections are omitted.
func BuildBOQ(c Calculations, extras []ExtraItem) BOQ {
	var b sectionBuilder

	b.open(SectionConcrete)
	for _, r := range c.Concrete.Rows {
		b.item(describe(r.Name, string(r.ElementType), r.Mix), "m³", r.MainVolume, r.TotalCost)
	}

	b.open(SectionMasonry)
	for _, r := range c.Masonry.Rooms {
		b.item(describe(r.Name, "Walling", ""), "m²", r.NetArea, r.TotalCost)
	}

	b.open(SectionRebar)
	for _, r := range c.Rebar.Elements {
		if r.Mode == rebar.ModeMesh && r.MeshType != "" {
			b.item(describe(r.Name, string(r.Type), r.MeshType), "sheets", r.GrossSheets, r.TotalCost)
			continue
		}
		b.item(describe(r.Name, string(r.Type), ""), "kg", r.GrossWeight, r.TotalCost)
	}

	b.open(SectionElectrical)
	for _, r := range c.Electrical.Systems {
		b.lines(r.Name, r.Lines)
	}

	b.open(SectionPlumbing)
	for _, r := range c.Plumbing.Systems {
		b.lines(r.Name, r.Lines)
	}

	b.open(SectionRoofing)
	for _, r := range c.Roofing.Roofs {
		b.lines(r.Name, r.Lines)
	}

	b.open(SectionFinishes)
	for _, r := range c.Finishes.Elements {
		b.lines(r.Name, []pricing.Line{r.Line})
	}

	b.open(SectionExtras)
	for _, e := range extras {
		qty := shared.NonNegative(e.Quantity)
		rate := shared.NonNegative(e.Rate)
		b.items = append(b.items, b.numbered(BOQItem{Description: e.Description, Unit: e.Unit, Quantity: qty, Rate: rate, Amount: qty * rate}))
	}

	b.close()
	return BOQ{Sections: b.sections}
}

type sectionBuilder struct {
	sections []Section
	title    string
	items    []BOQItem
}

func (b *sectionBuilder) open(title string) {
	b.close()
	b.title = title
}

func (b *sectionBuilder) close() {
	if b.title != "" && len(b.items) > 0 {
		sec := Section{Title: b.title, Items: b.items}
		for _, it := range b.items {
			sec.Total += it.Amount
		}
		b.sections = append(b.sections, sec)
	}
	b.title, b.items = "", nil
}

func (b *sectionBuilder) numbered(it BOQItem) BOQItem {
	it.ItemNo = fmt.Sprintf("%d.%d", len(b.sections)+1, len(b.items)+1)
	return it
}

// item bills a quantity at the rate implied by its amount
func (b *sectionBuilder) item(description, unit string, qty, amount float64) {
	if qty <= 0 && amount <= 0 {
		return
	}
	b.items = append(b.items, b.numbered(BOQItem{
		Description: description,
		Unit:        unit,
		Quantity:    qty,
		Rate:        shared.SafeDivide(amount, qty),
		Amount:      amount,
	}))
}

func (b *sectionBuilder) lines(owner string, lines []pricing.Line) {
	for _, l := range lines {
		if l.GrossQuantity <= 0 && l.Cost <= 0 {
			continue
		}
		desc := l.Description
		if l.Variant != "" {
			desc += " (" + l.Variant + ")"
		}
		if owner != "" {
			desc = owner + ": " + desc
		}
		b.items = append(b.items, b.numbered(BOQItem{
			Description: desc,
			Unit:        l.Unit,
			Quantity:    l.GrossQuantity,
			Rate:        l.UnitPrice,
			Amount:      l.Cost,
		}))
	}
}

func describe(name, kind, detail string) string {
	parts := make([]string, 0, 2)
	if name != "" {
		parts = append(parts, name)
	}
	if kind != "" && !strings.EqualFold(kind, name) {
		parts = append(parts, kind)
	}
	desc := strings.Join(parts, " - ")
	if detail != "" {
		desc += " (" + detail + ")"
	}
	return desc
}
