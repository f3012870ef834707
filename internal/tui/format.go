package tui

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups thousands the way US English readers expect.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.AmericanEnglish)

const centsPerUnit = 100

// displayCurrency is the only currency the cafe prices in.
//
//nolint:gochecknoglobals // currency.Unit values are comparable constants in practice.
var displayCurrency = currency.USD

// currencySymbols maps supported currencies to their narrow symbol.
//
//nolint:gochecknoglobals // Read-only lookup table.
var currencySymbols = map[currency.Unit]string{
	currency.USD: "$",
	currency.EUR: "€",
	currency.GBP: "£",
}

// FormatPrice renders integer cents as a USD amount, e.g. 123450 -> "$1,234.50".
func FormatPrice(cents int64) string {
	return FormatAmount(cents, displayCurrency)
}

// FormatAmount renders minor units of unit with grouping and two fraction digits.
// Currencies without a known symbol fall back to their ISO code.
func FormatAmount(minor int64, unit currency.Unit) string {
	sign := ""
	magnitude := uint64(minor)
	if minor < 0 {
		sign = "-"
		magnitude = -magnitude
	}

	symbol, ok := currencySymbols[unit]
	if !ok {
		symbol = unit.String() + " "
	}

	return sign + symbol + printer.Sprintf("%d", magnitude/centsPerUnit) + fmt.Sprintf(".%02d", magnitude%centsPerUnit)
}
