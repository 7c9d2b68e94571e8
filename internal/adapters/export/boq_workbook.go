package export

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
)

const (
	boqSheet     = "BOQ"
	summarySheet = "Summary"
	firstItemRow = 4
	moneyFormat  = 4 // #,##0.00
)

var boqColumns = []struct {
	name   string
	header string
	width  float64
}{
	{"A", "Item", 8},
	{"B", "Description", 52},
	{"C", "Unit", 10},
	{"D", "Quantity", 14},
	{"E", "Rate", 14},
	{"F", "Amount", 18},
}

// Workbook renders a recomputed quote as a bill-of-quantities spreadsheet
type Workbook struct {
	Title  string
	Result quote.Result
}

type styles struct {
	title, header, section, item, money, sectionMoney, label int
}

// WriteTo writes the xlsx file to w
func (wb Workbook) WriteTo(w io.Writer) (int64, error) {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return 0, err
	}
	if err := f.SetSheetName(f.GetSheetName(0), boqSheet); err != nil {
		return 0, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := wb.writeBOQ(f, st); err != nil {
		return 0, err
	}
	if err := wb.writeSummary(f, st); err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return 0, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.WriteTo(w)
}

// Bytes returns the xlsx file contents
func (wb Workbook) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := wb.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the xlsx file to path
func (wb Workbook) Save(path string) error {
	data, err := wb.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (wb Workbook) writeBOQ(f *excelize.File, st styles) error {
	title := wb.Title
	if title == "" {
		title = "Bill of Quantities"
	}
	last := boqColumns[len(boqColumns)-1].name

	for _, c := range boqColumns {
		if err := f.SetColWidth(boqSheet, c.name, c.name, c.width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
		cell := fmt.Sprintf("%s%d", c.name, firstItemRow-1)
		if err := f.SetCellValue(boqSheet, cell, c.header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := f.MergeCell(boqSheet, "A1", last+"1"); err != nil {
		return fmt.Errorf("failed to merge title: %w", err)
	}
	f.SetCellValue(boqSheet, "A1", sanitizeCell(title))
	f.SetCellStyle(boqSheet, "A1", last+"1", st.title)
	f.SetCellStyle(boqSheet, fmt.Sprintf("A%d", firstItemRow-1), fmt.Sprintf("%s%d", last, firstItemRow-1), st.header)

	row := firstItemRow
	for _, it := range wb.Result.BOQ.Items() {
		r := fmt.Sprint(row)
		f.SetCellValue(boqSheet, "A"+r, it.ItemNo)
		f.SetCellValue(boqSheet, "B"+r, sanitizeCell(it.Description))
		if it.IsHeader {
			f.SetCellStyle(boqSheet, "A"+r, last+r, st.section)
			row++
			continue
		}
		f.SetCellValue(boqSheet, "C"+r, sanitizeCell(it.Unit))
		f.SetCellValue(boqSheet, "D"+r, it.Quantity)
		f.SetCellValue(boqSheet, "E"+r, it.Rate)
		f.SetCellValue(boqSheet, "F"+r, it.Amount)
		f.SetCellStyle(boqSheet, "A"+r, "C"+r, st.item)
		f.SetCellStyle(boqSheet, "D"+r, last+r, st.money)
		row++
	}

	// section subtotals
	row++
	for _, sec := range wb.Result.BOQ.Sections {
		r := fmt.Sprint(row)
		f.SetCellValue(boqSheet, "B"+r, sanitizeCell(sec.Title))
		f.SetCellValue(boqSheet, "F"+r, sec.Total)
		f.SetCellStyle(boqSheet, "B"+r, "B"+r, st.label)
		f.SetCellStyle(boqSheet, "F"+r, "F"+r, st.sectionMoney)
		row++
	}
	r := fmt.Sprint(row)
	f.SetCellValue(boqSheet, "B"+r, "Total materials")
	f.SetCellValue(boqSheet, "F"+r, wb.Result.BOQ.MaterialsCost())
	f.SetCellStyle(boqSheet, "B"+r, "B"+r, st.label)
	f.SetCellStyle(boqSheet, "F"+r, "F"+r, st.sectionMoney)
	return nil
}

func (wb Workbook) writeSummary(f *excelize.File, st styles) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	f.SetColWidth(summarySheet, "A", "A", 28)
	f.SetColWidth(summarySheet, "B", "B", 18)

	s := wb.Result.Summary
	rows := []struct {
		label string
		value float64
	}{
		{"Materials", s.MaterialsCost},
		{"Labour", s.LabourCost},
		{"Permit", s.PermitCost},
		{"Preliminaries", s.PreliminariesTotal},
		{"Subcontractors", s.SubcontractorTotal},
		{"Subtotal", s.Subtotal},
		{"Overhead", s.OverheadAmount},
		{"Contingency", s.ContingencyAmount},
		{"Profit", s.ProfitAmount},
		{"Total", s.TotalAmount},
	}
	for i, line := range rows {
		r := fmt.Sprint(i + 1)
		f.SetCellValue(summarySheet, "A"+r, line.label)
		f.SetCellValue(summarySheet, "B"+r, line.value)
		f.SetCellStyle(summarySheet, "B"+r, "B"+r, st.money)
	}
	last := fmt.Sprint(len(rows))
	f.SetCellStyle(summarySheet, "A"+last, "A"+last, st.label)
	f.SetCellStyle(summarySheet, "B"+last, "B"+last, st.sectionMoney)
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}},
		{&st.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Border:    thinBorders(),
		}},
		{&st.section, &excelize.Style{
			Font:   &excelize.Font{Bold: true},
			Fill:   excelize.Fill{Type: "pattern", Color: []string{"#E7E6E6"}, Pattern: 1},
			Border: thinBorders(),
		}},
		{&st.item, &excelize.Style{Border: thinBorders()}},
		{&st.money, &excelize.Style{NumFmt: moneyFormat, Border: thinBorders()}},
		{&st.sectionMoney, &excelize.Style{NumFmt: moneyFormat, Font: &excelize.Font{Bold: true}}},
		{&st.label, &excelize.Style{Font: &excelize.Font{Bold: true}, Alignment: &excelize.Alignment{Horizontal: "right"}}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return st, fmt.Errorf("failed to create style: %w", err)
		}
		*d.dst = id
	}
	return st, nil
}

// sanitizeCell stops text cells being read as formulas
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
