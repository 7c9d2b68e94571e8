package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.00", formatMoney(0))
	assert.Equal(t, "999.50", formatMoney(999.5))
	assert.Equal(t, "128,500.00", formatMoney(128500))
	assert.Equal(t, "1,234,567.89", formatMoney(1234567.891))
	assert.Equal(t, "-1,000.00", formatMoney(-1000))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "3", formatQuantity(3))
	assert.Equal(t, "0.15", formatQuantity(0.15))
	assert.Equal(t, "12.346", formatQuantity(12.3456))
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgresql://takeoff:xxxxx@db:5432/takeoff", maskPassword("postgresql://takeoff:secret@db:5432/takeoff"))
	assert.Equal(t, "postgresql://db:5432/takeoff", maskPassword("postgresql://db:5432/takeoff"))
}

func TestPrintBOQ_ShowsSectionsAndItems(t *testing.T) {
	boq := quote.BOQ{Sections: []quote.Section{{
		Title: quote.SectionConcrete,
		Items: []quote.BOQItem{{ItemNo: "1.1", Description: "Slab", Unit: "m³", Quantity: 3, Rate: 15000, Amount: 45000}},
	}}}
	var buf bytes.Buffer

	printBOQ(&buf, boq)

	out := buf.String()
	assert.Contains(t, out, "CONCRETE WORKS")
	assert.Contains(t, out, "45,000.00")
}

func TestPrintSummary_ShowsTotal(t *testing.T) {
	var buf bytes.Buffer

	printSummary(&buf, quote.Summary{TotalAmount: 128500})

	assert.Contains(t, buf.String(), "TOTAL:")
	assert.Contains(t, buf.String(), "128,500.00")
}
