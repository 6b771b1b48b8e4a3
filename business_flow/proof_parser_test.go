package businessflow

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridWorkbook and gridSheet are in-memory grids for parser tests.
type gridWorkbook struct {
	order  []string
	sheets map[string]*gridSheet
}

func newGridWorkbook() *gridWorkbook {
	return &gridWorkbook{sheets: map[string]*gridSheet{}}
}

func (wb *gridWorkbook) add(name string, rows [][]string) *gridWorkbook {
	wb.order = append(wb.order, name)
	wb.sheets[name] = &gridSheet{rows: rows}
	return wb
}

func (wb *gridWorkbook) SheetNames() []string { return wb.order }

func (wb *gridWorkbook) Sheet(name string) Sheet {
	sheet, ok := wb.sheets[name]
	if !ok {
		return nil
	}
	return sheet
}

type gridSheet struct {
	rows [][]string
}

func (s *gridSheet) Cell(row, col int) string {
	if row < 1 || col < 1 || row > len(s.rows) {
		return ""
	}
	cells := s.rows[row-1]
	if col > len(cells) {
		return ""
	}
	return cells[col-1]
}

func (s *gridSheet) Rows() int { return len(s.rows) }

func (s *gridSheet) Cols() int {
	max := 0
	for _, row := range s.rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// summaryRows builds a typical Sumar layout: labels in column B, counts in
// column D, amounts in column E.
func summaryRows() [][]string {
	return [][]string{
		{"", "Vyúčtování leden 2026"},
		{"", "Cena FIX", "", "", "450 000"},
		{"", "Plachta", "", "120", "384 000"},
		{"", "Kamion", "", "10", "66 000"},
		{"", "Cena za km", "", "", "120 500,50"},
		{"", "Linehaul", "", "", "175 000"},
		{"", "Přejezd CZTC1", "", "14", "175 000"},
		{"", "Pronájem depa", "", "1", "45 000"},
		{"", "Bonus", "", "", "25 000"},
		{"", "Celková částka", "", "", "815 500,50"},
	}
}

func TestParseProofWorkbook_MissingSummarySheet(t *testing.T) {
	wb := newGridWorkbook().add("Data", [][]string{{"x"}})

	_, err := ParseProofWorkbook(wb)
	require.Error(t, err)
	assert.True(t, IsMissingSheet(err))

	var msErr *MissingSheetError
	require.ErrorAs(t, err, &msErr)
	assert.Equal(t, "Sumar", msErr.SheetName)
}

func TestParseProofWorkbook_SummaryTotals(t *testing.T) {
	wb := newGridWorkbook().add("Sumar", summaryRows())

	data, err := ParseProofWorkbook(wb)
	require.NoError(t, err)

	assert.True(t, data.FixAmount.Equal(decimal.NewFromInt(450000)))
	assert.True(t, data.KmAmount.Equal(decimal.RequireFromString("120500.5")))
	assert.True(t, data.LinehaulAmount.Equal(decimal.NewFromInt(175000)))
	assert.True(t, data.BonusAmount.Equal(decimal.NewFromInt(25000)))
	assert.True(t, data.TotalAmount.Equal(decimal.RequireFromString("815500.5")))
	// No "Cena DEPO" row, so the depot total is the sum of the line items.
	assert.True(t, data.DepoAmount.Equal(decimal.NewFromInt(45000)))
}

func TestParseProofWorkbook_DetailRows(t *testing.T) {
	wb := newGridWorkbook().add("Sumar", summaryRows())

	data, err := ParseProofWorkbook(wb)
	require.NoError(t, err)

	require.Len(t, data.RouteDetails, 2)
	assert.Equal(t, "canvas", data.RouteDetails[0].RouteType)
	assert.Equal(t, 120, data.RouteDetails[0].Count)
	assert.True(t, data.RouteDetails[0].Amount.Equal(decimal.NewFromInt(384000)))
	assert.Equal(t, "truck", data.RouteDetails[1].RouteType)

	require.Len(t, data.LinehaulDetails, 1)
	assert.Equal(t, "Přejezd CZTC1", data.LinehaulDetails[0].Label)
	require.NotNil(t, data.LinehaulDetails[0].FromCode)
	assert.Equal(t, "CZTC1", *data.LinehaulDetails[0].FromCode)
	assert.Equal(t, 14, data.LinehaulDetails[0].Count)

	require.Len(t, data.DepoDetails, 1)
	assert.Equal(t, "Pronájem depa", data.DepoDetails[0].Label)
}

func TestParseProofWorkbook_FallbackGrandTotalLabel(t *testing.T) {
	rows := [][]string{
		{"", "Cena FIX", "", "", "450 000"},
		{"", "Celkem", "", "", "471 000"},
	}
	wb := newGridWorkbook().add("Sumar", rows)

	data, err := ParseProofWorkbook(wb)
	require.NoError(t, err)
	assert.True(t, data.TotalAmount.Equal(decimal.NewFromInt(471000)))
}

func TestParseProofWorkbook_MissingDailySheetIsNotAnError(t *testing.T) {
	wb := newGridWorkbook().add("Sumar", summaryRows())

	data, err := ParseProofWorkbook(wb)
	require.NoError(t, err)
	assert.Empty(t, data.DailyDetails)
}

// dailyRows builds the two stacked tables: a route-count table under the
// "Počet tras" header and a kilometer table under "Kilometry", dates every
// fourth column from column C, one four-row depot band each, the sheet's
// own "Celkem" rows closing the bands.
func dailyRows() [][]string {
	return [][]string{
		{"", "Počet tras", "1.1.2026", "", "", "", "2.1.2026"},
		{"", "Vratimov", "3", "", "", "", "4"},
		{"", "", "1", "", "", "", "0"},
		{"", "", "2", "", "", "", "1"},
		{"", "", "0", "", "", "", "2"},
		{"", "Celkem", "999", "", "", "", "999"},
		{"", ""},
		{"", "Kilometry", "1.1.2026", "", "", "", "2.1.2026"},
		{"", "Vratimov", "120,5", "", "", "", "130"},
		{"", "", "10", "", "", "", "0"},
		{"", "", "0", "", "", "", "20"},
		{"", "", "9,5", "", "", "", "0"},
		{"", "Celkem", "999", "", "", "", "999"},
	}
}

func TestParseProofWorkbook_DailyBreakdown(t *testing.T) {
	wb := newGridWorkbook().
		add("Sumar", summaryRows()).
		add("Podklady", dailyRows())

	data, err := ParseProofWorkbook(wb)
	require.NoError(t, err)

	require.Len(t, data.DailyDetails, 4)

	day1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	depot1 := data.DailyDetails[0]
	require.NotNil(t, depot1.DepotCode)
	assert.Equal(t, "VRATIMOV", *depot1.DepotCode)
	assert.Equal(t, day1, depot1.Date)
	assert.True(t, depot1.RouteCount.Equal(decimal.NewFromInt(6)))
	assert.True(t, depot1.Kilometers.Equal(decimal.NewFromInt(140)))

	// Grand totals are computed from the depot bands, never read from the
	// sheet's own Celkem row.
	total1 := data.DailyDetails[1]
	assert.Nil(t, total1.DepotCode)
	assert.Equal(t, day1, total1.Date)
	assert.True(t, total1.RouteCount.Equal(decimal.NewFromInt(6)))
	assert.True(t, total1.Kilometers.Equal(decimal.NewFromInt(140)))

	depot2 := data.DailyDetails[2]
	require.NotNil(t, depot2.DepotCode)
	assert.Equal(t, day2, depot2.Date)
	assert.True(t, depot2.RouteCount.Equal(decimal.NewFromInt(7)))
	assert.True(t, depot2.Kilometers.Equal(decimal.NewFromInt(150)))

	total2 := data.DailyDetails[3]
	assert.Nil(t, total2.DepotCode)
	assert.True(t, total2.RouteCount.Equal(decimal.NewFromInt(7)))
	assert.True(t, total2.Kilometers.Equal(decimal.NewFromInt(150)))
}

func TestParseProofWorkbook_UnparseableDailyCellsReadAsZero(t *testing.T) {
	rows := dailyRows()
	rows[2][2] = "n/a"
	wb := newGridWorkbook().
		add("Sumar", summaryRows()).
		add("Podklady", rows)

	data, err := ParseProofWorkbook(wb)
	require.NoError(t, err)

	require.Len(t, data.DailyDetails, 4)
	assert.True(t, data.DailyDetails[0].RouteCount.Equal(decimal.NewFromInt(5)))
}
