package businessflow

import (
	"regexp"
	"strings"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/JakubKrejcir/alza-cost-control/utils"
	"github.com/shopspring/decimal"
)

// RateBundle holds every priced line item extracted from one contract text.
type RateBundle struct {
	FixRates      []models.FixRate
	KmRates       []models.KmRate
	DepoRates     []models.DepoRate
	LinehaulRates []models.LinehaulRate
	BonusRates    []models.BonusRate
}

// Empty reports whether no rate of any category was extracted.
func (b *RateBundle) Empty() bool {
	return len(b.FixRates) == 0 && len(b.KmRates) == 0 && len(b.DepoRates) == 0 &&
		len(b.LinehaulRates) == 0 && len(b.BonusRates) == 0
}

// Plausibility ranges per rate category, in CZK. Matches outside the range
// are dropped as likely mis-parses.
var (
	fixRateMin      = decimal.NewFromInt(1000)
	fixRateMax      = decimal.NewFromInt(50000)
	kmRateMin       = decimal.NewFromInt(1)
	kmRateMax       = decimal.NewFromInt(100)
	linehaulRateMin = decimal.NewFromInt(1000)
	linehaulRateMax = decimal.NewFromInt(100000)
	depoRateMin     = decimal.NewFromInt(5000)
	depoRateMax     = decimal.NewFromInt(200000)
	bonusAmountMin  = decimal.NewFromInt(500)
	bonusAmountMax  = decimal.NewFromInt(100000)
)

// amount matches a CZK figure with optional thousands spacing and either
// decimal separator, e.g. "12 500", "12.500,50", "3200,00".
const amount = `(\d[\d \x{00A0}.]*(?:,\d+)?)`

// Fixed per-dispatch rates. The vehicle word keys the route type.
var fixRatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)fix(?:ní)?\s*(?:cena|sazba|platba)?\s*(?:za\s+)?(?:trasu\s+)?(plachta|s[oó]lo|kamion)[^\d\n]{0,40}?` + amount + `\s*(?:Kč|CZK)`),
	regexp.MustCompile(`(?i)(plachta|s[oó]lo|kamion)[^\d\n]{0,30}?fix(?:ní)?[^\d\n]{0,30}?` + amount + `\s*(?:Kč|CZK)`),
	// Vehicle-less wording: the amount must follow "trasu" directly so the
	// vehicle variants above stay the only match for their lines.
	regexp.MustCompile(`(?i)fixní\s+(?:cena|sazba)\s+za\s+(?:jednu\s+)?(trasu)\s*:?\s*` + amount + `\s*(?:Kč|CZK)`),
}

var kmRatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:cena|sazba)\s+za\s+(?:1\s*)?km[^\d\n]{0,30}?` + amount + `\s*(?:Kč|CZK)`),
	regexp.MustCompile(`(?i)kilometr(?:ová\s+sazba)?[^\d\n]{0,30}?` + amount + `\s*(?:Kč|CZK)`),
	regexp.MustCompile(`(?i)` + amount + `\s*(?:Kč|CZK)\s*(?:/|za)\s*km`),
}

// Depot holding rates: rent and operating flat fees per month.
var depoRatePatterns = []struct {
	kind string
	re   *regexp.Regexp
}{
	{"rent", regexp.MustCompile(`(?i)(?:pro)?náj(?:em|mu)\s+dep[ao][^\d\n]{0,50}?` + amount + `\s*(?:Kč|CZK)`)},
	{"operation", regexp.MustCompile(`(?i)(?:provoz|paušál)\s+dep[ao][^\d\n]{0,50}?` + amount + `\s*(?:Kč|CZK)`)},
	{"rent", regexp.MustCompile(`(?i)dep[ao][^\d\n]{0,30}?měsíční[^\d\n]{0,30}?` + amount + `\s*(?:Kč|CZK)`)},
}

var linehaulProsePattern = regexp.MustCompile(`(?i)(CZTC1|CZLC4)\s*[-–>]+\s*([\p{L}0-9]+)[^\d\n]{0,40}?(plachta|s[oó]lo|kamion)[^\d\n]{0,30}?` + amount + `\s*(?:Kč|CZK)`)

// Quality-bonus ladder. Bands are fixed; only the amount is captured.
// Quality below 96 percent pays nothing and has no band.
var bonusBands = []struct {
	min string
	max string
	re  *regexp.Regexp
}{
	{"98.00", "", regexp.MustCompile(`(?i)98(?:[.,]0{1,2})?\s*%\s*(?:a\s+více|a\s+výše)?[^\d\n%]{0,40}?` + amount + `\s*(?:Kč|CZK)`)},
	{"97.51", "97.99", regexp.MustCompile(`(?i)97[.,]51\s*%?\s*(?:až|[-–])\s*97[.,]99\s*%[^\d\n]{0,40}?` + amount + `\s*(?:Kč|CZK)`)},
	{"97.00", "97.50", regexp.MustCompile(`(?i)97(?:[.,]0{1,2})?\s*%?\s*(?:až|[-–])\s*97[.,]50?\s*%[^\d\n]{0,40}?` + amount + `\s*(?:Kč|CZK)`)},
	{"96.00", "96.99", regexp.MustCompile(`(?i)96(?:[.,]0{1,2})?\s*%?\s*(?:až|[-–])\s*96[.,]99\s*%[^\d\n]{0,40}?` + amount + `\s*(?:Kč|CZK)`)},
}

// sortingCenterTokens lists the spellings under which a sorting center
// appears as a linehaul origin, in match priority order.
var sortingCenterTokens = []struct {
	token string
	code  string
}{
	{"CZTC1", models.LocationCodeCZTC1},
	{"ÚŽICE", models.LocationCodeCZTC1},
	{"UZICE", models.LocationCodeCZTC1},
	{"CZLC4", models.LocationCodeCZLC4},
	{"CHRÁŠŤANY", models.LocationCodeCZLC4},
	{"CHRASTANY", models.LocationCodeCZLC4},
}

func isSortingCenterToken(word string) bool {
	for _, sc := range sortingCenterTokens {
		if word == sc.token {
			return true
		}
	}
	return false
}

// ExtractRates scans free-form contract text for priced line items. Pure
// function: every pattern of every category is tried and all matches are
// collected, values outside the category's plausibility range are dropped,
// and duplicates captured by overlapping patterns are folded by semantic key.
func ExtractRates(text string) RateBundle {
	var bundle RateBundle
	seen := map[string]bool{}

	for _, re := range fixRatePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			rate, ok := parseAmount(m[2])
			if !ok || !inRange(rate, fixRateMin, fixRateMax) {
				continue
			}
			routeType := normalizeRouteType(m[1])
			key := "fix|" + routeType + "|" + rate.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			bundle.FixRates = append(bundle.FixRates, models.FixRate{RouteType: routeType, Rate: rate})
		}
	}

	for _, re := range kmRatePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			rate, ok := parseAmount(m[1])
			if !ok || !inRange(rate, kmRateMin, kmRateMax) {
				continue
			}
			key := "km|" + rate.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			bundle.KmRates = append(bundle.KmRates, models.KmRate{Rate: rate})
		}
	}

	for _, pat := range depoRatePatterns {
		for _, m := range pat.re.FindAllStringSubmatch(text, -1) {
			rate, ok := parseAmount(m[1])
			if !ok || !inRange(rate, depoRateMin, depoRateMax) {
				continue
			}
			key := "depo|" + pat.kind + "|" + rate.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			bundle.DepoRates = append(bundle.DepoRates, models.DepoRate{Kind: pat.kind, Rate: rate})
		}
	}

	for _, m := range linehaulProsePattern.FindAllStringSubmatch(text, -1) {
		appendLinehaul(&bundle, seen, strings.ToUpper(m[1]), m[2], m[3], m[4])
	}
	extractLinehaulTable(text, &bundle, seen)

	for _, band := range bonusBands {
		for _, m := range band.re.FindAllStringSubmatch(text, -1) {
			bonus, ok := parseAmount(m[1])
			if !ok || !inRange(bonus, bonusAmountMin, bonusAmountMax) {
				continue
			}
			key := "bonus|" + band.min + "|" + band.max + "|" + bonus.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			row := models.BonusRate{MinPercent: decimal.RequireFromString(band.min), Amount: bonus}
			if band.max != "" {
				row.MaxPercent = utils.ToPtr(decimal.RequireFromString(band.max))
			}
			bundle.BonusRates = append(bundle.BonusRates, row)
		}
	}

	return bundle
}

var trailingAmountPattern = regexp.MustCompile(amount + `\s*(?:Kč|CZK)?\s*$`)

// extractLinehaulTable line-scans the tabular sorting-center layout: an
// origin label, a vehicle keyword, and a trailing numeric price on one line.
// Lines with an unrecognized vehicle keyword are skipped.
func extractLinehaulTable(text string, bundle *RateBundle, seen map[string]bool) {
	for _, line := range strings.Split(text, "\n") {
		upper := strings.ToUpper(line)

		fromCode := ""
		for _, sc := range sortingCenterTokens {
			if strings.Contains(upper, sc.token) {
				fromCode = sc.code
				break
			}
		}
		if fromCode == "" {
			continue
		}

		vehicle := ""
		for _, kw := range []string{"PLACHTA", "SÓLO", "SOLO", "KAMION"} {
			if strings.Contains(upper, kw) {
				vehicle = kw
				break
			}
		}
		if vehicle == "" {
			continue
		}

		m := trailingAmountPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}

		appendLinehaul(bundle, seen, fromCode, destinationToken(upper, vehicle), vehicle, m[1])
	}
}

// destinationToken picks the first word of the line that is neither a
// sorting-center label, the vehicle keyword, nor numeric or punctuation.
func destinationToken(upperLine, vehicle string) string {
	for _, word := range strings.FieldsFunc(upperLine, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '-' || r == '–' || r == '>' || r == ','
	}) {
		if isSortingCenterToken(word) || word == vehicle || word == "KČ" || word == "CZK" {
			continue
		}
		if strings.IndexFunc(word, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0 {
			continue
		}
		if len(word) < 2 {
			continue
		}
		return word
	}
	return ""
}

func appendLinehaul(bundle *RateBundle, seen map[string]bool, fromCode, toRaw, vehicleKeyword, rawAmount string) {
	vehicle := vehicleKeywordType(vehicleKeyword)
	if !vehicle.Valid() {
		return
	}
	rate, ok := parseAmount(rawAmount)
	if !ok || !inRange(rate, linehaulRateMin, linehaulRateMax) {
		return
	}

	toCode := strings.ToUpper(stripDiacritics(strings.ToLower(strings.TrimSpace(toRaw))))
	if len(toCode) > utils.DepotCodeMaxLen {
		toCode = toCode[:utils.DepotCodeMaxLen]
	}

	key := "linehaul|" + fromCode + "|" + toCode + "|" + string(vehicle) + "|" + rate.String()
	if seen[key] {
		return
	}
	seen[key] = true
	bundle.LinehaulRates = append(bundle.LinehaulRates, models.LinehaulRate{
		FromCode:    fromCode,
		ToCode:      toCode,
		VehicleType: vehicle,
		Rate:        rate,
	})
}

func vehicleKeywordType(keyword string) models.VehicleType {
	switch strings.ToLower(keyword) {
	case "plachta":
		return models.VehicleTypeCanvas
	case "sólo", "solo":
		return models.VehicleTypeSolo
	case "kamion":
		return models.VehicleTypeTruck
	default:
		return ""
	}
}

func normalizeRouteType(keyword string) string {
	if v := vehicleKeywordType(keyword); v.Valid() {
		return string(v)
	}
	return "standard"
}

// parseAmount parses a Czech-formatted figure from contract prose:
// thousands separated by spaces, non-breaking spaces or dots, decimal part
// after a comma. Spreadsheet cells go through parseCellNumber instead,
// where a dot is the decimal separator.
func parseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.NewReplacer(" ", "", " ", "", ".", "").Replace(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func inRange(d, min, max decimal.Decimal) bool {
	return d.GreaterThanOrEqual(min) && d.LessThanOrEqual(max)
}
