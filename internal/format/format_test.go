package format

import (
	"testing"

	"golang.org/x/text/language"
)

func TestParseTag(t *testing.T) {
	if got := ParseTag(""); got != language.English {
		t.Errorf("empty locale: got %v", got)
	}
	if got := ParseTag("not-a-locale!!"); got != language.English {
		t.Errorf("bad locale: got %v", got)
	}
	if got := ParseTag("de"); got != language.German {
		t.Errorf("de: got %v", got)
	}
}

func TestCurrency(t *testing.T) {
	p := NewPrinter(language.English)
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{1234567.891, "$1,234,567.89"},
		{-42.5, "-$42.50"},
	}
	for _, tc := range cases {
		if got := p.Currency(tc.in); got != tc.want {
			t.Errorf("Currency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCompactCurrency(t *testing.T) {
	p := NewPrinter(language.English)
	cases := []struct {
		in   float64
		want string
	}{
		{950, "$950"},
		{1_234, "$1.2K"},
		{1_234_567, "$1.2M"},
		{5_600_000_000, "$5.6B"},
		{-2_500_000, "-$2.5M"},
	}
	for _, tc := range cases {
		if got := p.CompactCurrency(tc.in); got != tc.want {
			t.Errorf("CompactCurrency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPercent(t *testing.T) {
	p := NewPrinter(language.English)
	if got := p.Percent(0.123); got != "+12.3%" {
		t.Errorf("Percent(0.123) = %q", got)
	}
	if got := p.Percent(-0.05); got != "-5.0%" {
		t.Errorf("Percent(-0.05) = %q", got)
	}
	if got := p.Percent(0); got != "0.0%" {
		t.Errorf("Percent(0) = %q", got)
	}
}

func TestCount(t *testing.T) {
	p := NewPrinter(language.English)
	if got := p.Count(1234567); got != "1,234,567" {
		t.Errorf("Count = %q", got)
	}
}

func TestCollatorOrdersCaseInsensitively(t *testing.T) {
	c := NewCollator(language.English)
	if c.CompareString("apple", "Banana") >= 0 {
		t.Error("expected apple < Banana under case-insensitive collation")
	}
	if c.CompareString("Zeta", "alpha") <= 0 {
		t.Error("expected Zeta > alpha")
	}
}
