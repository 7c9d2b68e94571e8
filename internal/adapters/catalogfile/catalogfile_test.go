package catalogfile_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/andrescamacho/takeoff-go/internal/adapters/catalogfile"
	"github.com/andrescamacho/takeoff-go/internal/domain/pricing"
)

func TestParse_CSVMergesVariants(t *testing.T) {
	// Arrange
	csv := `Category,Material,UOM,Price,Size
cement,Cement,bag,"KES 750",
rebar,Rebar,kg,110,
rebar,Rebar,kg,120,Y12
rebar,Rebar,kg,"1,180.50",Y32
`

	// Act
	res, err := catalogfile.Parse("prices.csv", strings.NewReader(csv))

	// Assert
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, pricing.Entry{Name: "Cement", Unit: "bag", Price: 750, Category: pricing.CategoryCement}, res.Entries[0])

	rebar := res.Entries[1]
	assert.Equal(t, 110.0, rebar.Price)
	assert.Equal(t, map[string]float64{"Y12": 120, "Y32": 1180.5}, rebar.Variants)
}

func TestParse_CollectsRowErrors(t *testing.T) {
	csv := `category,name,price
cement,Cement,750
marble,Statue,100
sand,,1500
sand,River Sand,-5
sand,Pit Sand,n/a

ballast,Ballast,2000
`

	res, err := catalogfile.Parse("prices.csv", strings.NewReader(csv))

	require.NoError(t, err)
	assert.Len(t, res.Entries, 2)
	require.Len(t, res.Errors, 4)
	assert.Equal(t, catalogfile.RowError{Row: 3, Field: "category", Message: res.Errors[0].Message}, res.Errors[0])
	assert.Equal(t, "name", res.Errors[1].Field)
	assert.Equal(t, 5, res.Errors[2].Row)
	assert.Equal(t, "price", res.Errors[3].Field)
}

func TestParse_RequiresHeaderColumns(t *testing.T) {
	_, err := catalogfile.Parse("prices.csv", strings.NewReader("name,price\nCement,750\n"))

	assert.ErrorContains(t, err, `"category"`)
}

func TestParse_RejectsUnknownFormat(t *testing.T) {
	_, err := catalogfile.Parse("prices.ods", strings.NewReader(""))

	assert.Error(t, err)
}

func TestParse_Excel(t *testing.T) {
	// Arrange
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Category", "Name", "Unit", "Rate"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"sand", "Sand", "m³", 1500}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	// Act
	res, err := catalogfile.Parse("prices.xlsx", &buf)

	// Assert
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, 1500.0, res.Entries[0].Price)
	assert.Equal(t, "m³", res.Entries[0].Unit)
}
