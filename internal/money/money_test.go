package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbol(t *testing.T) {
	tests := []struct {
		code   string
		symbol string
	}{
		{"USD", "$"},
		{"CAD", "$"},
		{"GBP", "£"},
		{"EUR", "€"},
		{"SEK", "kr"},
		{"PLY", "P"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := Symbol(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.symbol, got)
		})
	}

	_, err := Symbol("JPY")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{0.5, "$0.50"},
		{10, "$10.00"},
		{1234.5, "$1,234.50"},
		{1000000, "$1,000,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format("$", tt.amount))
	}
}

func TestCodes(t *testing.T) {
	assert.Equal(t, []string{"CAD", "EUR", "GBP", "PLY", "SEK", "USD"}, Codes())
}
