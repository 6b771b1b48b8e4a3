package businessflow

import (
	"testing"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleContract = `Smlouva o přepravě zboží

Fixní cena za trasu plachta 3 200 Kč
Fixní cena za trasu kamion 999 Kč
Fixní sazba plachta 3 200 Kč
Cena za km 28,50 Kč
Cena za km 150,0 Kč
Pronájem depa měsíčně 45 000 Kč
CZTC1 - Vratimov kamion 12 500 Kč
CZTC1 - Vratimov traktor 12 500 Kč
98 % a více 25 000 Kč
97,51 % - 97,99 % 15 000 Kč
`

func TestExtractRates_FixRates(t *testing.T) {
	bundle := ExtractRates(sampleContract)

	// 999 is below the plausibility floor and the duplicate plachta match
	// folds into one entry.
	require.Len(t, bundle.FixRates, 1)
	assert.Equal(t, string(models.VehicleTypeCanvas), bundle.FixRates[0].RouteType)
	assert.True(t, bundle.FixRates[0].Rate.Equal(decimal.NewFromInt(3200)))
}

func TestExtractRates_KmRates(t *testing.T) {
	bundle := ExtractRates(sampleContract)

	// 150 km rate is outside [1, 100] and gets dropped.
	require.Len(t, bundle.KmRates, 1)
	assert.True(t, bundle.KmRates[0].Rate.Equal(decimal.RequireFromString("28.5")))
}

func TestExtractRates_DepoRates(t *testing.T) {
	bundle := ExtractRates(sampleContract)

	require.Len(t, bundle.DepoRates, 1)
	assert.Equal(t, "rent", bundle.DepoRates[0].Kind)
	assert.True(t, bundle.DepoRates[0].Rate.Equal(decimal.NewFromInt(45000)))
}

func TestExtractRates_LinehaulRates(t *testing.T) {
	bundle := ExtractRates(sampleContract)

	// The kamion line is captured once even though both the prose pattern
	// and the line scan match it; the traktor line has an unknown vehicle
	// keyword and is skipped.
	require.Len(t, bundle.LinehaulRates, 1)
	row := bundle.LinehaulRates[0]
	assert.Equal(t, models.LocationCodeCZTC1, row.FromCode)
	assert.Equal(t, "VRATIMOV", row.ToCode)
	assert.Equal(t, models.VehicleTypeTruck, row.VehicleType)
	assert.True(t, row.Rate.Equal(decimal.NewFromInt(12500)))
}

func TestExtractRates_BonusLadder(t *testing.T) {
	bundle := ExtractRates(sampleContract)

	require.Len(t, bundle.BonusRates, 2)

	top := bundle.BonusRates[0]
	assert.True(t, top.MinPercent.Equal(decimal.NewFromInt(98)))
	assert.Nil(t, top.MaxPercent)
	assert.True(t, top.Amount.Equal(decimal.NewFromInt(25000)))

	second := bundle.BonusRates[1]
	assert.True(t, second.MinPercent.Equal(decimal.RequireFromString("97.51")))
	require.NotNil(t, second.MaxPercent)
	assert.True(t, second.MaxPercent.Equal(decimal.RequireFromString("97.99")))
	assert.True(t, second.Amount.Equal(decimal.NewFromInt(15000)))
}

func TestExtractRates_EmptyText(t *testing.T) {
	bundle := ExtractRates("")
	assert.True(t, bundle.Empty())
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"3 200", "3200", true},
		{"12 500", "12500", true},
		{"28,50", "28.5", true},
		{"12.500,50", "12500.5", true},
		{"", "0", false},
		{"abc", "0", false},
	}

	for _, tt := range tests {
		got, ok := parseAmount(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "input %q got %s", tt.input, got)
		}
	}
}
