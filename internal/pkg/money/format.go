package money

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stored currency codes are lowercase ISO; symbols follow the shop's
// fr-FR display convention (trailing symbol). Codes without a known symbol
// fall back to the uppercased code.
var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"CHF": "CHF",
}

var frenchPrinter = message.NewPrinter(language.French)

// FormatMinor renders an amount of minor units for display, with French
// digit grouping and two decimals: 1659900 in "eur" becomes "16 599,00 €".
// The amount itself stays an integer everywhere else in the system.
func FormatMinor(amount int64, currencyCode string) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	units := amount / 100
	cents := amount % 100

	code := strings.ToUpper(currencyCode)
	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code
	}

	formatted := fmt.Sprintf("%s,%02d %s", frenchPrinter.Sprintf("%d", units), cents, symbol)
	if negative {
		return "-" + formatted
	}
	return formatted
}
