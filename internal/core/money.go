// Package core provides money parsing and handling utilities.
//
// Amounts are kept as integer cents so that sums are exact; decimal strings
// from the form are parsed with shopspring/decimal and rounded to two places.
package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

const (
	// maxAmountLen bounds the raw field before any parsing.
	maxAmountLen = 32
	// maxIntDigits is the number of integer digits int64 cents can hold
	// once two decimals are shifted in.
	maxIntDigits = 17
	// minExponent keeps rounding from rescaling huge negative exponents.
	minExponent = -maxAmountLen
)

// ParseAmount converts the amount field of the form into Money.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and rounds
// half away from zero on the third decimal place. An empty string is the
// widget default and parses as zero. Signed values are returned as-is: the
// non-positive check belongs to the intake, not the parser.
//
// Examples:
//
//	ParseAmount("12.34")  -> {1234}, nil
//	ParseAmount("12,345") -> {1235}, nil
//	ParseAmount("")       -> {0}, nil
//	ParseAmount("-5")     -> {-500}, nil
//	ParseAmount("abc")    -> {}, ErrMalformedAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, nil
	}
	if len(s) > maxAmountLen {
		return Money{}, fmt.Errorf("%w: too long", ErrMalformedAmount)
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	// Exponent checks run before Round, which materializes 10^exp.
	if exp := int(d.Exponent()); exp < minExponent || d.NumDigits()+exp > maxIntDigits {
		return Money{}, fmt.Errorf("%w: %q out of range", ErrMalformedAmount, s)
	}
	cents := d.Round(2).Shift(2)
	if cents.Abs().GreaterThan(maxCents) {
		return Money{}, fmt.Errorf("%w: %q out of range", ErrMalformedAmount, s)
	}
	return Money{Cents: cents.IntPart()}, nil
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// FormatCurrency renders cents the way the balance metric shows them,
// e.g. "$1,234.56" or "$-50.00".
func FormatCurrency(cents int64) string {
	return "$" + formatGrouped(cents)
}

// FormatDelta renders cents with two decimals and no grouping, e.g. "-50.00".
func FormatDelta(cents int64) string {
	return Money{Cents: cents}.Decimal().StringFixed(2)
}

// FormatAmount renders a table cell amount, e.g. "1000.00".
func FormatAmount(m Money) string {
	return FormatDelta(m.Cents)
}

func formatGrouped(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + humanize.Comma(cents/100) + fmt.Sprintf(".%02d", cents%100)
}
