package businessflow

import (
	"strings"

	"github.com/JakubKrejcir/alza-cost-control/app/services"
	"github.com/shopspring/decimal"
)

// Workbook and Sheet are the grid capabilities the parsers consume. The
// excelize-backed implementation lives in the services package; tests feed
// in-memory grids.
type (
	Workbook = services.Workbook
	Sheet    = services.Sheet
)

// parseCellNumber parses a numeric cell as the workbook reader renders it.
// Numeric cells come out with a dot decimal separator and at most comma or
// space grouping ("1520.5", "1,520.50"); text cells typed by hand may carry
// a Czech comma decimal ("120 500,50"). A dot always wins as the decimal
// separator. Without one, a comma is the decimal separator unless exactly
// three digits follow it, which reads as grouping.
func parseCellNumber(raw string) (decimal.Decimal, bool) {
	s := strings.NewReplacer(" ", "", " ", "").Replace(strings.TrimSpace(raw))
	if s == "" {
		return decimal.Zero, false
	}

	if strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", "")
	} else if idx := strings.LastIndex(s, ","); idx >= 0 {
		tail := s[idx+1:]
		if len(tail) == 3 && allDigits(tail) {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s[:idx], ",", "") + "." + tail
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
