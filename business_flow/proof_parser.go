package businessflow

import (
	"sort"
	"strings"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/JakubKrejcir/alza-cost-control/utils"
	"github.com/shopspring/decimal"
)

// Summary sheet layout: labels sit in column B, counts in column D and
// amounts in column E.
const (
	summarySheetName = "Sumar"

	summaryLabelCol  = 2
	summaryCountCol  = 4
	summaryAmountCol = 5
)

// Accepted names of the optional daily-breakdown sheet.
var dailySheetNames = []string{"Podkladové data", "Podkladova data", "Podklady"}

// Daily sheet layout: marker labels sit in column B, date headers run every
// fourth column starting at column C, each depot occupies a band of four
// rows (two route directions times two service tiers). When the marker rows
// cannot be found the default header rows are used as a best effort.
const (
	dailyLabelCol        = 2
	dailyDateStartCol    = 3
	dailyDateStride      = 4
	dailyScanLimit       = 150
	defaultCountsHeader  = 2
	defaultKmHeader      = 40
	dailyDepotBandHeight = 4
)

// ProofData is the structured result of parsing one proof workbook.
type ProofData struct {
	TotalAmount    decimal.Decimal
	FixAmount      decimal.Decimal
	KmAmount       decimal.Decimal
	LinehaulAmount decimal.Decimal
	DepoAmount     decimal.Decimal
	BonusAmount    decimal.Decimal

	RouteDetails    []models.ProofRouteDetail
	LinehaulDetails []models.ProofLinehaulDetail
	DepoDetails     []models.ProofDepoDetail
	DailyDetails    []models.ProofDailyDetail
}

// ParseProofWorkbook extracts totals, line items and the optional daily
// breakdown from a carrier's monthly proof workbook. The "Sumar" sheet is
// required; the daily sheet is optional and its absence yields an empty
// daily series. Individual unparseable cells read as zero and never abort
// the parse.
func ParseProofWorkbook(wb Workbook) (*ProofData, error) {
	summary := wb.Sheet(summarySheetName)
	if summary == nil {
		return nil, &MissingSheetError{SheetName: summarySheetName}
	}

	data := &ProofData{}
	parseSummarySheet(summary, data)

	for _, name := range dailySheetNames {
		if daily := wb.Sheet(name); daily != nil {
			data.DailyDetails = parseDailySheet(daily)
			break
		}
	}

	return data, nil
}

// Category totals, each located by label substring in the label column.
var summaryTotalLabels = []struct {
	labels []string
	assign func(*ProofData, decimal.Decimal)
}{
	{[]string{"Cena FIX"}, func(d *ProofData, v decimal.Decimal) { d.FixAmount = v }},
	{[]string{"Cena za km", "Cena KM"}, func(d *ProofData, v decimal.Decimal) { d.KmAmount = v }},
	{[]string{"Linehaul", "Přejezdy"}, func(d *ProofData, v decimal.Decimal) { d.LinehaulAmount = v }},
	{[]string{"Cena DEPO"}, func(d *ProofData, v decimal.Decimal) { d.DepoAmount = v }},
	{[]string{"Bonus"}, func(d *ProofData, v decimal.Decimal) { d.BonusAmount = v }},
}

var routeDetailLabels = []struct {
	label     string
	routeType string
}{
	{"Plachta", string(models.VehicleTypeCanvas)},
	{"Sólo", string(models.VehicleTypeSolo)},
	{"Solo", string(models.VehicleTypeSolo)},
	{"Kamion", string(models.VehicleTypeTruck)},
}

var linehaulDetailLabels = []struct {
	label    string
	fromCode *string
}{
	{"Přejezd CZTC1", utils.ToPtr(models.LocationCodeCZTC1)},
	{"Přejezd CZLC4", utils.ToPtr(models.LocationCodeCZLC4)},
	{"Přejezdy ostatní", nil},
}

var depoDetailLabels = []string{"Pronájem depa", "Provoz depa"}

func parseSummarySheet(sheet Sheet, data *ProofData) {
	for _, total := range summaryTotalLabels {
		if row, ok := findLabelRow(sheet, total.labels...); ok {
			total.assign(data, cellAmount(sheet, row, summaryAmountCol))
		}
	}

	if row, ok := findLabelRow(sheet, "Celková částka"); ok {
		data.TotalAmount = cellAmount(sheet, row, summaryAmountCol)
	} else if row, ok := findLabelRow(sheet, "Celkem"); ok {
		data.TotalAmount = cellAmount(sheet, row, summaryAmountCol)
	}

	for _, detail := range routeDetailLabels {
		row, ok := findLabelRow(sheet, detail.label)
		if !ok {
			continue
		}
		count := cellCount(sheet, row, summaryCountCol)
		amt := cellAmount(sheet, row, summaryAmountCol)
		if count == 0 && amt.IsZero() {
			continue
		}
		if hasRouteDetail(data, detail.routeType) {
			continue
		}
		data.RouteDetails = append(data.RouteDetails, models.ProofRouteDetail{
			RouteType: detail.routeType,
			Count:     count,
			Amount:    amt,
		})
	}

	for _, detail := range linehaulDetailLabels {
		row, ok := findLabelRow(sheet, detail.label)
		if !ok {
			continue
		}
		count := cellCount(sheet, row, summaryCountCol)
		amt := cellAmount(sheet, row, summaryAmountCol)
		if count == 0 && amt.IsZero() {
			continue
		}
		data.LinehaulDetails = append(data.LinehaulDetails, models.ProofLinehaulDetail{
			Label:    strings.TrimSpace(sheet.Cell(row, summaryLabelCol)),
			FromCode: detail.fromCode,
			Count:    count,
			Amount:   amt,
		})
	}

	for _, label := range depoDetailLabels {
		row, ok := findLabelRow(sheet, label)
		if !ok {
			continue
		}
		count := cellCount(sheet, row, summaryCountCol)
		amt := cellAmount(sheet, row, summaryAmountCol)
		if count == 0 && amt.IsZero() {
			continue
		}
		data.DepoDetails = append(data.DepoDetails, models.ProofDepoDetail{
			Label:  strings.TrimSpace(sheet.Cell(row, summaryLabelCol)),
			Count:  count,
			Amount: amt,
		})
	}

	// Some workbooks carry no "Cena DEPO" total row, only the line items.
	if data.DepoAmount.IsZero() {
		for _, d := range data.DepoDetails {
			data.DepoAmount = data.DepoAmount.Add(d.Amount)
		}
	}
}

func hasRouteDetail(data *ProofData, routeType string) bool {
	for _, d := range data.RouteDetails {
		if d.RouteType == routeType {
			return true
		}
	}
	return false
}

// findLabelRow scans the label column top to bottom for the first row whose
// cell contains any of the labels, case-insensitively.
func findLabelRow(sheet Sheet, labels ...string) (int, bool) {
	rows := sheet.Rows()
	for row := 1; row <= rows; row++ {
		cell := strings.ToLower(sheet.Cell(row, summaryLabelCol))
		if cell == "" {
			continue
		}
		for _, label := range labels {
			if strings.Contains(cell, strings.ToLower(label)) {
				return row, true
			}
		}
	}
	return 0, false
}

func cellAmount(sheet Sheet, row, col int) decimal.Decimal {
	v, ok := parseCellNumber(sheet.Cell(row, col))
	if !ok {
		return decimal.Zero
	}
	return v
}

func cellCount(sheet Sheet, row, col int) int {
	v, ok := parseCellNumber(sheet.Cell(row, col))
	if !ok {
		return 0
	}
	return int(v.IntPart())
}

// dailyBand is one depot's four-row band within a daily table.
type dailyBand struct {
	depotCode string
	startRow  int
}

// dailyTable is one of the two stacked tables of the daily sheet: a header
// row carrying dates and the depot bands beneath it.
type dailyTable struct {
	dates map[int]time.Time
	bands []dailyBand
}

// parseDailySheet reads the optional daily-breakdown sheet: a route-count
// table and a kilometer table stacked vertically, each keyed by the same
// dates and depot bands. Grand totals are computed as the sum across depot
// bands; the sheet's own total rows are ignored.
func parseDailySheet(sheet Sheet) []models.ProofDailyDetail {
	countsHeader, kmHeader := locateDailyHeaders(sheet)

	countsTable := parseDailyTable(sheet, countsHeader, kmHeader)
	kmTable := parseDailyTable(sheet, kmHeader, 0)

	type dayKey struct {
		date  time.Time
		depot string
	}
	merged := map[dayKey]*models.ProofDailyDetail{}

	accumulate := func(table dailyTable, assign func(*models.ProofDailyDetail, decimal.Decimal)) {
		for col, date := range table.dates {
			for _, band := range table.bands {
				var sum decimal.Decimal
				for offset := 0; offset < dailyDepotBandHeight; offset++ {
					sum = sum.Add(cellAmount(sheet, band.startRow+offset, col))
				}
				key := dayKey{date: date, depot: band.depotCode}
				row, ok := merged[key]
				if !ok {
					row = &models.ProofDailyDetail{Date: date, DepotCode: utils.ToPtr(band.depotCode)}
					merged[key] = row
				}
				assign(row, sum)
			}
		}
	}

	accumulate(countsTable, func(d *models.ProofDailyDetail, v decimal.Decimal) { d.RouteCount = d.RouteCount.Add(v) })
	accumulate(kmTable, func(d *models.ProofDailyDetail, v decimal.Decimal) { d.Kilometers = d.Kilometers.Add(v) })

	totals := map[time.Time]*models.ProofDailyDetail{}
	details := make([]models.ProofDailyDetail, 0, len(merged))
	for _, row := range merged {
		details = append(details, *row)
		total, ok := totals[row.Date]
		if !ok {
			total = &models.ProofDailyDetail{Date: row.Date}
			totals[row.Date] = total
		}
		total.RouteCount = total.RouteCount.Add(row.RouteCount)
		total.Kilometers = total.Kilometers.Add(row.Kilometers)
	}
	for _, total := range totals {
		details = append(details, *total)
	}

	sort.Slice(details, func(i, j int) bool {
		if !details[i].Date.Equal(details[j].Date) {
			return details[i].Date.Before(details[j].Date)
		}
		// Grand-total rows (nil depot) sort after the per-depot rows of
		// their date.
		di, dj := details[i].DepotCode, details[j].DepotCode
		if (di == nil) != (dj == nil) {
			return dj == nil
		}
		if di == nil {
			return false
		}
		return *di < *dj
	})
	return details
}

// locateDailyHeaders finds the header rows of the two stacked tables by
// their marker labels, falling back to fixed default rows when a marker is
// absent.
func locateDailyHeaders(sheet Sheet) (countsHeader, kmHeader int) {
	countsHeader = 0
	kmHeader = 0

	limit := sheet.Rows()
	if limit > dailyScanLimit {
		limit = dailyScanLimit
	}
	for row := 1; row <= limit; row++ {
		cell := strings.ToLower(sheet.Cell(row, dailyLabelCol))
		if cell == "" {
			continue
		}
		if countsHeader == 0 && strings.Contains(cell, "počet tras") {
			countsHeader = row
			continue
		}
		if kmHeader == 0 && strings.Contains(cell, "kilometry") {
			kmHeader = row
		}
	}

	if countsHeader == 0 {
		countsHeader = defaultCountsHeader
	}
	if kmHeader == 0 {
		kmHeader = defaultKmHeader
	}
	return countsHeader, kmHeader
}

// parseDailyTable reads one table: dates from the header row at the fixed
// column stride, then depot bands below until the "Celkem" marker, the next
// table, or the scan limit. Unparseable date cells skip their column.
func parseDailyTable(sheet Sheet, headerRow, stopRow int) dailyTable {
	table := dailyTable{dates: map[int]time.Time{}}

	cols := sheet.Cols()
	for col := dailyDateStartCol; col <= cols; col += dailyDateStride {
		if date, ok := parseDailyDate(sheet.Cell(headerRow, col)); ok {
			table.dates[col] = date
		}
	}

	limit := sheet.Rows()
	if limit > dailyScanLimit {
		limit = dailyScanLimit
	}
	if stopRow > 0 && stopRow <= limit {
		limit = stopRow - 1
	}

	row := headerRow + 1
	for row <= limit {
		label := strings.TrimSpace(sheet.Cell(row, dailyLabelCol))
		if label == "" {
			row++
			continue
		}
		if strings.EqualFold(label, "Celkem") || strings.Contains(strings.ToLower(label), "celkem") {
			break
		}
		table.bands = append(table.bands, dailyBand{
			depotCode: ClassifyDepot(label).Code,
			startRow:  row,
		})
		row += dailyDepotBandHeight
	}

	return table
}

var dailyDateLayouts = []string{
	"2.1.2006",
	"02.01.2006",
	"2.1.06",
	"2006-01-02",
	"01-02-06",
}

func parseDailyDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dailyDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
