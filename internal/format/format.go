// Package format renders the dashboard's money, percentage and count
// figures with locale-aware grouping, and provides the collator used for
// name ordering.
package format

import (
	"math"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ParseTag parses a BCP 47 locale, falling back to English on failure or
// empty input.
func ParseTag(locale string) language.Tag {
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}

// NewCollator returns the case-insensitive collator used for locale-aware
// builder and project name ordering.
func NewCollator(tag language.Tag) *collate.Collator {
	return collate.New(tag, collate.IgnoreCase)
}

// Printer formats dashboard figures for one locale.
type Printer struct {
	p *message.Printer
}

// NewPrinter creates a Printer for the given locale tag.
func NewPrinter(tag language.Tag) *Printer {
	return &Printer{p: message.NewPrinter(tag)}
}

// Currency renders an exact dollar amount with grouping and two decimals.
func (f *Printer) Currency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + f.p.Sprintf("$%v", number.Decimal(v,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// CompactCurrency renders a dollar amount in dashboard-card style:
// $1.2K, $3.4M, $5.6B.
func (f *Printer) CompactCurrency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	abs := math.Abs(v)
	var scaled float64
	var suffix string
	switch {
	case abs >= 1e9:
		scaled, suffix = v/1e9, "B"
	case abs >= 1e6:
		scaled, suffix = v/1e6, "M"
	case abs >= 1e3:
		scaled, suffix = v/1e3, "K"
	default:
		return sign + f.p.Sprintf("$%v", number.Decimal(v, number.MaxFractionDigits(2)))
	}
	return sign + f.p.Sprintf("$%v%s", number.Decimal(scaled,
		number.MinFractionDigits(1), number.MaxFractionDigits(1)), suffix)
}

// Percent renders a growth fraction as a signed percentage: 0.123 -> "+12.3%".
func (f *Printer) Percent(v float64) string {
	sign := ""
	if v > 0 {
		sign = "+"
	}
	return sign + f.p.Sprintf("%v", number.Percent(v,
		number.MinFractionDigits(1), number.MaxFractionDigits(1)))
}

// Count renders an integer with grouping.
func (f *Printer) Count(n int) string {
	return f.p.Sprintf("%v", number.Decimal(n))
}
