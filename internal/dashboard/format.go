package dashboard

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholders shown in place of missing values.
const (
	NotAvailable = "N/A"
	MissingIndex = "-"
)

// maxFractionDigits is the precision of localized decimal values.
const maxFractionDigits = 2

// Formatter renders numbers for a locale.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a Formatter for tag.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// NewFormatterForLocale parses a BCP 47 locale, falling back to English.
func NewFormatterForLocale(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return NewFormatter(tag)
}

// Decimal formats v with grouping and at most two fraction digits,
// e.g. 12345.678 -> "12,345.68", 100.5 -> "100.5".
func (f *Formatter) Decimal(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(maxFractionDigits)))
}

// Integer formats n with grouping, e.g. 18248 -> "18,248".
func (f *Formatter) Integer(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// Currency prefixes Decimal with a dollar sign.
func (f *Formatter) Currency(v float64) string {
	return "$" + f.Decimal(v)
}

// NullableDecimal formats v, or returns NotAvailable for nil.
func (f *Formatter) NullableDecimal(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return f.Decimal(*v)
}

// Fixed2 formats v with exactly two decimals and no grouping.
func Fixed2(v *float64) string {
	if v == nil {
		return MissingIndex
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
