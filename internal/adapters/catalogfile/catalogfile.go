// Package catalogfile reads material price lists from CSV or Excel sheets.
//
// The first row is a header naming at least the category, name and price
// columns; unit and variant are optional. Rows sharing a category and name are
// merged into one entry: a row without a variant sets the base price, a row
// with one adds a variant price.
package catalogfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
)

// RowError is a field-level problem on one sheet row (1-based, header is row 1)
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Message)
}

// Result holds the parsed entries and the rows that were rejected
type Result struct {
	Entries []pricing.Entry
	Errors  []RowError
}

var headerAliases = map[string]string{
	"category":   "category",
	"type":       "category",
	"name":       "name",
	"material":   "name",
	"item":       "name",
	"unit":       "unit",
	"uom":        "unit",
	"price":      "price",
	"rate":       "price",
	"unit price": "price",
	"variant":    "variant",
	"size":       "variant",
	"grade":      "variant",
}

// Parse reads a price list, choosing the format by file extension
func Parse(fileName string, r io.Reader) (*Result, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx":
		rows, err = readExcel(r)
	default:
		return nil, fmt.Errorf("unsupported price list format %q (want .csv or .xlsx)", filepath.Ext(fileName))
	}
	if err != nil {
		return nil, err
	}
	return parseRows(rows)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

func readExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return rows, nil
}

func parseRows(rows [][]string) (*Result, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("price list must contain a header row and at least one data row")
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		if key, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := cols[key]; !dup {
				cols[key] = i
			}
		}
	}
	for _, required := range []string{"category", "name", "price"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("price list has no %q column", required)
		}
	}

	res := &Result{}
	index := make(map[string]int)
	for n, row := range rows[1:] {
		rowNo := n + 2
		get := func(key string) string {
			i, ok := cols[key]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		if isBlank(row) {
			continue
		}

		category, err := pricing.ParseCategory(get("category"))
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNo, Field: "category", Message: err.Error()})
			continue
		}
		name := get("name")
		if name == "" {
			res.Errors = append(res.Errors, RowError{Row: rowNo, Field: "name", Message: "is required"})
			continue
		}
		price, err := parsePrice(get("price"))
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNo, Field: "price", Message: err.Error()})
			continue
		}

		key := string(category) + "/" + strings.ToLower(name)
		i, seen := index[key]
		if !seen {
			i = len(res.Entries)
			index[key] = i
			res.Entries = append(res.Entries, pricing.Entry{Name: name, Category: category})
		}
		e := &res.Entries[i]
		if unit := get("unit"); unit != "" && e.Unit == "" {
			e.Unit = unit
		}
		if variant := get("variant"); variant != "" {
			if e.Variants == nil {
				e.Variants = make(map[string]float64)
			}
			e.Variants[variant] = price
			if e.Price == 0 {
				e.Price = price
			}
			continue
		}
		e.Price = price
	}
	return res, nil
}

// parsePrice accepts thousands separators and a leading currency code or symbol
func parsePrice(s string) (float64, error) {
	start := strings.IndexAny(s, "0123456789")
	if start < 0 {
		return 0, fmt.Errorf("is required")
	}
	if start > 0 && s[start-1] == '-' {
		return 0, fmt.Errorf("must not be negative")
	}
	cleaned := strings.NewReplacer(",", "", " ", "", "_", "").Replace(s[start:])
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
