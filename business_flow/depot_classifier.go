package businessflow

import (
	"strings"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/JakubKrejcir/alza-cost-control/utils"
)

// DepotDescriptor is the canonical identity the classifier derives from one
// free-text start-location string.
type DepotDescriptor struct {
	Name         string
	Code         string
	DepotType    models.DepotType
	OperatorType models.OperatorType
	LocationCode *string
}

// depotRule is one entry of the keyword cascade: if any keyword occurs in
// the uppercased input, the rule's descriptor wins. Rules are evaluated in
// order, first match wins, so new depot kinds are additive.
type depotRule struct {
	keywords   []string
	descriptor DepotDescriptor
}

// Keywords are matched against the uppercased input, so each rule lists the
// diacritic and plain-ASCII spellings seen in real plans.
var depotRules = []depotRule{
	{
		keywords: []string{"CHRÁŠŤAN", "CHRASTANY", "CZLC4"},
		descriptor: DepotDescriptor{
			Name:         "Expediční sklad Chrášťany",
			Code:         models.LocationCodeCZLC4,
			DepotType:    models.DepotTypeWarehouse,
			OperatorType: models.OperatorTypeAlza,
			LocationCode: utils.ToPtr(models.LocationCodeCZLC4),
		},
	},
	{
		keywords: []string{"CZTC1", "ÚŽICE", "UZICE", "TŘÍDÍRNA", "TRIDIRNA"},
		descriptor: DepotDescriptor{
			Name:         "Třídírna Úžice",
			Code:         models.LocationCodeCZTC1,
			DepotType:    models.DepotTypeWarehouse,
			OperatorType: models.OperatorTypeAlza,
			LocationCode: utils.ToPtr(models.LocationCodeCZTC1),
		},
	},
	{
		keywords: []string{"DRIVECOOL", "VRATIMOV"},
		descriptor: DepotDescriptor{
			Name:         "Depo Vratimov",
			Code:         "VRATIMOV",
			DepotType:    models.DepotTypeDistribution,
			OperatorType: models.OperatorTypeCarrier,
		},
	},
	{
		keywords: []string{"GEM"},
		descriptor: DepotDescriptor{
			Name:         "Depo GEM",
			Code:         "GEM",
			DepotType:    models.DepotTypeDistribution,
			OperatorType: models.OperatorTypeCarrier,
		},
	},
	{
		keywords: []string{"NOVÝ BYDŽOV", "NOVY BYDZOV", "BYDŽOV", "BYDZOV"},
		descriptor: DepotDescriptor{
			Name:         "Depo Nový Bydžov",
			Code:         "BYDZOV",
			DepotType:    models.DepotTypeDistribution,
			OperatorType: models.OperatorTypeCarrier,
		},
	},
	{
		keywords: []string{"HOSÍN", "HOSIN"},
		descriptor: DepotDescriptor{
			Name:         "Depo Hosín",
			Code:         "HOSIN",
			DepotType:    models.DepotTypeDistribution,
			OperatorType: models.OperatorTypeCarrier,
		},
	},
}

// ClassifyDepot maps a free-text start-location string to a canonical depot
// descriptor. Pure function: the keyword cascade first, then the fallback
// for unrecognized locations. The fallback is deterministic and idempotent
// for the same input.
func ClassifyDepot(startLocation string) DepotDescriptor {
	upper := strings.ToUpper(strings.TrimSpace(startLocation))

	for _, rule := range depotRules {
		for _, kw := range rule.keywords {
			if strings.Contains(upper, kw) {
				return rule.descriptor
			}
		}
	}

	return fallbackDescriptor(strings.TrimSpace(startLocation))
}

// fallbackDescriptor synthesizes a descriptor for an unrecognized location:
// a leading "Depo " token is dropped, the first remaining word becomes the
// code (uppercased, diacritics transliterated, capped at 20 chars) and the
// name is "Depo " plus the remainder.
func fallbackDescriptor(location string) DepotDescriptor {
	remainder := location
	if len(remainder) >= 5 && strings.EqualFold(remainder[:5], "Depo ") {
		remainder = strings.TrimSpace(remainder[5:])
	}
	if remainder == "" {
		remainder = location
	}

	first := remainder
	if idx := strings.IndexAny(first, " \t"); idx >= 0 {
		first = first[:idx]
	}

	code := strings.ToUpper(stripDiacritics(strings.ToLower(first)))
	// Truncate on runes, not bytes: letters outside the Czech diacritics
	// table pass through stripDiacritics multi-byte.
	if runes := []rune(code); len(runes) > utils.DepotCodeMaxLen {
		code = string(runes[:utils.DepotCodeMaxLen])
	}

	return DepotDescriptor{
		Name:         "Depo " + remainder,
		Code:         code,
		DepotType:    models.DepotTypeDistribution,
		OperatorType: models.OperatorTypeCarrier,
	}
}
