// Package services provides external service integrations and technical concerns like spreadsheets, documents and tokens
package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is a read-only view of an uploaded spreadsheet.
type Workbook interface {
	// SheetNames returns the sheet names in workbook order.
	SheetNames() []string
	// Sheet returns the named sheet, or nil when it does not exist.
	Sheet(name string) Sheet
}

// Sheet exposes one sheet as a 1-based cell grid. Out-of-range coordinates
// read as empty strings, matching how spreadsheet libraries treat cells
// that were never written.
type Sheet interface {
	// Cell returns the trimmed display value at 1-based (row, col).
	Cell(row, col int) string
	// Rows returns the number of rows with any content.
	Rows() int
	// Cols returns the widest row's column count.
	Cols() int
}

// OpenWorkbook parses xlsx bytes into an in-memory grid. The whole workbook
// is materialized up front so parsers never touch the file again.
func OpenWorkbook(content []byte) (Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	wb := &excelWorkbook{sheets: map[string]*excelSheet{}}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}

		sheet := &excelSheet{rows: rows}
		for _, row := range rows {
			if len(row) > sheet.cols {
				sheet.cols = len(row)
			}
		}

		wb.order = append(wb.order, name)
		wb.sheets[name] = sheet
	}
	return wb, nil
}

type excelWorkbook struct {
	order  []string
	sheets map[string]*excelSheet
}

func (wb *excelWorkbook) SheetNames() []string {
	return wb.order
}

func (wb *excelWorkbook) Sheet(name string) Sheet {
	sheet, ok := wb.sheets[name]
	if !ok {
		return nil
	}
	return sheet
}

type excelSheet struct {
	rows [][]string
	cols int
}

func (s *excelSheet) Cell(row, col int) string {
	if row < 1 || col < 1 || row > len(s.rows) {
		return ""
	}
	cells := s.rows[row-1]
	if col > len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col-1])
}

func (s *excelSheet) Rows() int {
	return len(s.rows)
}

func (s *excelSheet) Cols() int {
	return s.cols
}
