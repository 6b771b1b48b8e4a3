package businessflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveRegion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trailing variant letter dropped", "Moravskoslezsko A", "Moravskoslezsko"},
		{"lowercase variant letter dropped", "Moravskoslezsko b", "Moravskoslezsko"},
		{"no trailing letter", "Sklad Praha", "Sklad Praha"},
		{"variant after number", "Praha 3 B", "Praha 3"},
		{"trailing number is not a variant", "Praha 3", "Praha 3"},
		{"accented variant letter", "Brno Č", "Brno"},
		{"single word", "Moravskoslezsko", "Moravskoslezsko"},
		{"trailing two letter token kept", "Usti AB", "Usti AB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveRegion(tt.input))
		})
	}
}
