// Package format converts typed asset values into display strings.
package format

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used whenever a locale string cannot be parsed.
const DefaultLocale = "en-US"

// trailingSymbol lists languages that place the currency after the amount.
var trailingSymbol = map[string]bool{
	"de": true, "fr": true, "es": true, "it": true, "pl": true, "sv": true,
	"fi": true, "cs": true, "da": true, "nb": true, "ru": true, "pt": true,
}

// ParseLocale returns the language tag for locale, falling back to en-US.
func ParseLocale(locale string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil || tag == language.Und {
		return language.AmericanEnglish
	}
	return tag
}

// ValidCurrency reports whether code is a known ISO 4217 currency.
func ValidCurrency(code string) bool {
	_, err := currency.ParseISO(strings.TrimSpace(code))
	return err == nil
}

// Currency formats amount with two fraction digits in the locale's number
// style, prefixed or suffixed with the locale's currency symbol.
func Currency(amount float64, locale, code string) string {
	tag := ParseLocale(locale)
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		unit = currency.USD
	}

	rounded := math.Round(amount*100) / 100
	printer := message.NewPrinter(tag)
	digits := printer.Sprintf("%v", number.Decimal(math.Abs(rounded), number.MinFractionDigits(2), number.MaxFractionDigits(2)))

	sign := ""
	if rounded < 0 {
		sign = "-"
	}

	symbol := currencySymbol(printer, unit)
	base, _ := tag.Base()
	if trailingSymbol[base.String()] {
		return sign + digits + " " + symbol
	}
	if r, _ := utf8.DecodeLastRuneInString(symbol); unicode.IsLetter(r) {
		symbol += " "
	}
	return sign + symbol + digits
}

// currencySymbol returns the locale's symbol for unit, trying the narrow form
// when the standard one is just the ISO code.
func currencySymbol(printer *message.Printer, unit currency.Unit) string {
	symbol := printer.Sprint(currency.Symbol(unit))
	if symbol == unit.String() {
		symbol = printer.Sprint(currency.NarrowSymbol(unit))
	}
	return strings.TrimSpace(symbol)
}
