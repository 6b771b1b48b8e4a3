package businessflow

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCellNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"plain integer", "1520", "1520", true},
		{"dot decimal from numeric cell", "1520.5", "1520.5", true},
		{"grouped dot decimal", "1,520.50", "1520.5", true},
		{"comma grouping without decimal", "1,520", "1520", true},
		{"multiple comma groups", "1,520,300", "1520300", true},
		{"space grouping", "120 500", "120500", true},
		{"non-breaking space grouping", "120 500", "120500", true},
		{"czech comma decimal text", "120 500,50", "120500.5", true},
		{"short comma decimal", "12,5", "12.5", true},
		{"blank", "", "0", false},
		{"label text", "Celkem", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseCellNumber(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
					"parsed %s, want %s", got, tt.want)
			}
		})
	}
}

// Numeric cells render with a dot decimal separator; the summary parser
// must not read them through the Czech prose rules where a dot groups
// thousands.
func TestParseProofWorkbook_DotDecimalCells(t *testing.T) {
	rows := [][]string{
		{"", "Cena FIX", "", "", "450000"},
		{"", "Plachta", "", "120", "384000.25"},
		{"", "Cena za km", "", "", "1520.5"},
		{"", "Celková částka", "", "", "451520.5"},
	}
	wb := newGridWorkbook().add("Sumar", rows)

	data, err := ParseProofWorkbook(wb)
	require.NoError(t, err)

	assert.True(t, data.KmAmount.Equal(decimal.RequireFromString("1520.5")),
		"km amount was %s", data.KmAmount)
	assert.True(t, data.TotalAmount.Equal(decimal.RequireFromString("451520.5")))
	require.Len(t, data.RouteDetails, 1)
	assert.True(t, data.RouteDetails[0].Amount.Equal(decimal.RequireFromString("384000.25")))
}
