package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil stays nil", input: nil, expected: nil},
		{name: "empty stays empty", input: []string{}, expected: []string{}},
		{
			name:     "repeated service types keep first position",
			input:    []string{"AUDIT", "TAX_RETURN", "AUDIT", "TRAINING", "TAX_RETURN"},
			expected: []string{"AUDIT", "TAX_RETURN", "TRAINING"},
		},
		{
			name:     "padding is trimmed before comparing",
			input:    []string{" AUDIT", "AUDIT  ", "\tBOOKKEEPING"},
			expected: []string{"AUDIT", "BOOKKEEPING"},
		},
		{
			name:     "blank entries are dropped",
			input:    []string{"", "   ", "AUDIT"},
			expected: []string{"AUDIT"},
		},
		{
			name:     "case differences are kept",
			input:    []string{"AUDIT", "audit"},
			expected: []string{"AUDIT", "audit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
