package businessflow

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDepot_KeywordRules(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantName     string
		wantCode     string
		wantType     models.DepotType
		wantOperator models.OperatorType
		wantLocation *string
	}{
		{
			name:         "drivecool maps to vratimov",
			input:        "Depo Drivecool",
			wantName:     "Depo Vratimov",
			wantCode:     "VRATIMOV",
			wantType:     models.DepotTypeDistribution,
			wantOperator: models.OperatorTypeCarrier,
		},
		{
			name:         "bare sorting center code",
			input:        "CZTC1",
			wantName:     "Třídírna Úžice",
			wantCode:     "CZTC1",
			wantType:     models.DepotTypeWarehouse,
			wantOperator: models.OperatorTypeAlza,
			wantLocation: strPtr(models.LocationCodeCZTC1),
		},
		{
			name:         "uzice spelled with diacritics",
			input:        "překladiště Úžice",
			wantName:     "Třídírna Úžice",
			wantCode:     "CZTC1",
			wantType:     models.DepotTypeWarehouse,
			wantOperator: models.OperatorTypeAlza,
			wantLocation: strPtr(models.LocationCodeCZTC1),
		},
		{
			name:         "chrastany ascii spelling",
			input:        "sklad CHRASTANY",
			wantName:     "Expediční sklad Chrášťany",
			wantCode:     "CZLC4",
			wantType:     models.DepotTypeWarehouse,
			wantOperator: models.OperatorTypeAlza,
			wantLocation: strPtr(models.LocationCodeCZLC4),
		},
		{
			name:         "novy bydzov with diacritics",
			input:        "Depo Nový Bydžov",
			wantName:     "Depo Nový Bydžov",
			wantCode:     "BYDZOV",
			wantType:     models.DepotTypeDistribution,
			wantOperator: models.OperatorTypeCarrier,
		},
		{
			name:         "hosin",
			input:        "HOSIN",
			wantName:     "Depo Hosín",
			wantCode:     "HOSIN",
			wantType:     models.DepotTypeDistribution,
			wantOperator: models.OperatorTypeCarrier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDepot(tt.input)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantType, got.DepotType)
			assert.Equal(t, tt.wantOperator, got.OperatorType)
			if tt.wantLocation == nil {
				assert.Nil(t, got.LocationCode)
			} else {
				require.NotNil(t, got.LocationCode)
				assert.Equal(t, *tt.wantLocation, *got.LocationCode)
			}
		})
	}
}

func TestClassifyDepot_Fallback(t *testing.T) {
	got := ClassifyDepot("Depo Žatec")
	assert.Equal(t, "ZATEC", got.Code)
	assert.Equal(t, "Depo Žatec", got.Name)
	assert.Equal(t, models.DepotTypeDistribution, got.DepotType)
	assert.Equal(t, models.OperatorTypeCarrier, got.OperatorType)
	assert.Nil(t, got.LocationCode)
}

func TestClassifyDepot_FallbackWithoutPrefix(t *testing.T) {
	got := ClassifyDepot("Řevničov u silnice")
	assert.Equal(t, "REVNICOV", got.Code)
	assert.Equal(t, "Depo Řevničov u silnice", got.Name)
}

func TestClassifyDepot_FallbackTruncatesCode(t *testing.T) {
	got := ClassifyDepot("Depo " + strings.Repeat("x", 30))
	assert.Len(t, got.Code, 20)
}

func TestClassifyDepot_FallbackTruncatesOnRunes(t *testing.T) {
	// Polish ł is outside the Czech transliteration table and stays
	// multi-byte, so a byte cut could land mid-rune.
	got := ClassifyDepot("Depo " + strings.Repeat("ł", 30))
	assert.True(t, utf8.ValidString(got.Code))
	assert.Equal(t, 20, utf8.RuneCountInString(got.Code))
	assert.Equal(t, strings.Repeat("Ł", 20), got.Code)
}

func TestClassifyDepot_Idempotent(t *testing.T) {
	first := ClassifyDepot("Depo Kolín západ")
	second := ClassifyDepot("Depo Kolín západ")
	assert.Equal(t, first, second)
	assert.Equal(t, "KOLIN", first.Code)
}

func strPtr(s string) *string { return &s }
