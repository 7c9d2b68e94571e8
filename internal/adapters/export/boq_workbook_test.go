package export_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/andrescamacho/takeoff-go/internal/adapters/export"
	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
)

func sampleResult() quote.Result {
	boq := quote.BOQ{Sections: []quote.Section{
		{Title: quote.SectionConcrete, Total: 45000, Items: []quote.BOQItem{
			{ItemNo: "1.1", Description: "Ground slab - slab (1:2:4)", Unit: "m³", Quantity: 3, Rate: 15000, Amount: 45000},
		}},
		{Title: quote.SectionExtras, Total: 5000, Items: []quote.BOQItem{
			{ItemNo: "2.1", Description: "=HYPERLINK(\"x\")", Unit: "item", Quantity: 1, Rate: 5000, Amount: 5000},
		}},
	}}
	fin := quote.DefaultFinancialSettings()
	fin.Labour = quote.Percent(10)
	return quote.Result{BOQ: boq, Summary: quote.CalculateSummary(boq, fin)}
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWorkbook_WritesBillAndSummary(t *testing.T) {
	// Arrange
	wb := export.Workbook{Title: "Bungalow", Result: sampleResult()}

	// Act
	data, err := wb.Bytes()

	// Assert
	require.NoError(t, err)
	f := open(t, data)
	assert.Equal(t, []string{"BOQ", "Summary"}, f.GetSheetList())

	title, _ := f.GetCellValue("BOQ", "A1")
	assert.Equal(t, "Bungalow", title)
	header, _ := f.GetCellValue("BOQ", "B3")
	assert.Equal(t, "Description", header)

	section, _ := f.GetCellValue("BOQ", "B4")
	assert.Equal(t, quote.SectionConcrete, section)
	item, _ := f.GetCellValue("BOQ", "A5")
	assert.Equal(t, "1.1", item)
	amount, _ := f.GetCellValue("BOQ", "F5", excelize.Options{RawCellValue: true})
	assert.Equal(t, "45000", amount)

	total, _ := f.GetCellValue("Summary", "B10", excelize.Options{RawCellValue: true})
	assert.Equal(t, "55000", total)
}

func TestWorkbook_EscapesFormulaText(t *testing.T) {
	data, err := export.Workbook{Result: sampleResult()}.Bytes()
	require.NoError(t, err)

	f := open(t, data)
	desc, _ := f.GetCellValue("BOQ", "B7")
	formula, _ := f.GetCellFormula("BOQ", "B7")

	assert.Equal(t, "'=HYPERLINK(\"x\")", desc)
	assert.Empty(t, formula)
}

func TestWorkbook_EmptyQuote(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	err := export.Workbook{}.Save(path)

	require.NoError(t, err)
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	title, _ := f.GetCellValue("BOQ", "A1")
	assert.Equal(t, "Bill of Quantities", title)
}
