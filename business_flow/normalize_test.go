package businessflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "Drivecool", "drivecool"},
		{"sro suffix", "Drivecool s.r.o.", "drivecool"},
		{"spaced sro suffix", "DRIVECOOL, s. r. o.", "drivecool"},
		{"spol suffix", "Alza Expedice spol. s r.o.", "alzaexpedice"},
		{"as suffix with dotted name", "Alza.cz a.s.", "alzacz"},
		{"diacritics folded", "Třídírna Úžice", "tridirnauzice"},
		{"se suffix", "Holding SE", "holding"},
		{"se inside a word survives", "Mise", "mise"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalName(tt.input))
		})
	}
}

func TestSameOrganization(t *testing.T) {
	assert.True(t, SameOrganization("Drivecool s.r.o.", "DRIVECOOL"))
	assert.True(t, SameOrganization("Alza.cz a.s.", "ALZA.CZ"))
	assert.False(t, SameOrganization("Drivecool s.r.o.", "GEM Logistics s.r.o."))
	assert.False(t, SameOrganization("", ""))
}
