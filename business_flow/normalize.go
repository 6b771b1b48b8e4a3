package businessflow

import (
	"strings"
)

// legalSuffixes are the legal-entity designators stripped before comparing
// organization names. Longer forms come first so "spol. s r.o." is removed
// before "s r.o." would match inside it.
var legalSuffixes = []string{
	"spol. s r.o.",
	"spol. s r. o.",
	"s.r.o.",
	"s. r. o.",
	"sro",
	"a.s.",
	"a. s.",
	"k.s.",
	"v.o.s.",
	"gmbh",
	"ltd.",
	"ltd",
	"se",
}

// czechDiacritics maps the 15 accented Czech letters to their ASCII base
// forms. Used by name canonicalization and depot code generation.
var czechDiacritics = map[rune]rune{
	'á': 'a', 'č': 'c', 'ď': 'd', 'é': 'e', 'ě': 'e',
	'í': 'i', 'ň': 'n', 'ó': 'o', 'ř': 'r', 'š': 's',
	'ť': 't', 'ú': 'u', 'ů': 'u', 'ý': 'y', 'ž': 'z',
}

// stripDiacritics transliterates Czech accented letters to ASCII. Input is
// expected lowercase; other runes pass through unchanged.
func stripDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if base, ok := czechDiacritics[r]; ok {
			b.WriteRune(base)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CanonicalName reduces an organization name to a stable key for fuzzy
// equality: legal-entity suffixes dropped, diacritics folded, every
// non-alphanumeric character removed, lowercased.
//
// "Alza Expedice s.r.o." and "ALZA EXPEDICE" canonicalize identically.
func CanonicalName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = stripDiacritics(s)

	s = strings.TrimRight(s, " ,")
	for _, suffix := range legalSuffixes {
		// Require a separator before the suffix so "se" never eats the tail
		// of a real word.
		if strings.HasSuffix(s, " "+suffix) || strings.HasSuffix(s, ","+suffix) {
			s = strings.TrimSpace(strings.TrimRight(s[:len(s)-len(suffix)], " ,"))
			break
		}
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SameOrganization reports whether two organization names refer to the same
// entity under canonical comparison. Empty canonical forms never match.
func SameOrganization(a, b string) bool {
	ca := CanonicalName(a)
	cb := CanonicalName(b)
	return ca != "" && ca == cb
}
