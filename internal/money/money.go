// Package money renders product and cart amounts for display. Prices arrive
// from the backend as plain numbers; every surface shows them with the
// configured currency symbol, grouping separators, and exactly two decimals.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formats amounts with a fixed symbol and locale.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter creates a formatter. An unknown locale falls back to English
// grouping rules rather than failing.
func NewFormatter(symbol, locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{symbol: symbol, printer: message.NewPrinter(tag)}
}

// Format renders the amount as symbol-prefixed text with two fraction digits.
func (f *Formatter) Format(amount float64) string {
	return f.printer.Sprintf("%s%v", f.symbol,
		number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
