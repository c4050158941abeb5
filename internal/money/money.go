// Package money holds the supported currencies and renders amounts the way
// PokerStars hand histories print them.
package money

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dustin/go-humanize"
)

var symbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"GBP": "£",
	"EUR": "€",
	"SEK": "kr",
	"PLY": "P",
}

// Symbol returns the display symbol for a currency code.
func Symbol(code string) (string, error) {
	s, ok := symbols[code]
	if !ok {
		return "", fmt.Errorf("unsupported currency %q (want one of %v)", code, Codes())
	}
	return s, nil
}

// Codes lists the supported currency codes in sorted order.
func Codes() []string {
	return slices.Sorted(maps.Keys(symbols))
}

// Amount renders an amount with thousands separators and two decimals.
func Amount(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// Format prefixes a rendered amount with a currency symbol ("$1,234.50").
func Format(symbol string, v float64) string {
	return symbol + Amount(v)
}
