package models

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Placeholder is rendered wherever a numeric field failed coercion.
// Construction never rejects malformed input, so formatting fails soft.
const Placeholder = "—"

// FormatUSD renders a value as a USD currency string with comma grouping
// and exactly two decimals, e.g. "$6,456.52".
func FormatUSD(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	return "$" + groupThousands(fixed(v))
}

// groupThousands inserts comma separators into the integer part of a
// fixed-point decimal string. The sign and fractional part pass through.
func groupThousands(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}

// FormatLargeUSD abbreviates a large USD value with a K/M/B/T suffix at two
// decimals, e.g. 1_500_000_000 → "$1.50B". Values under 1000 render as plain
// two-decimal dollars.
func FormatLargeUSD(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}

	abs := math.Abs(v)
	switch {
	case abs >= 1e12:
		return "$" + fixed(v/1e12) + "T"
	case abs >= 1e9:
		return "$" + fixed(v/1e9) + "B"
	case abs >= 1e6:
		return "$" + fixed(v/1e6) + "M"
	case abs >= 1e3:
		return "$" + fixed(v/1e3) + "K"
	default:
		return "$" + fixed(v)
	}
}

// FormatPercent renders a percentage-point value with two decimals and an
// explicit sign for positive values, e.g. "+3.21%" / "-3.21%" / "0.00%".
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	s := fixed(v) + "%"
	if v > 0 {
		return "+" + s
	}
	return s
}

// FormatSupply renders a coin supply with comma grouping and no decimals,
// e.g. "19,000,000".
func FormatSupply(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	return humanize.CommafWithDigits(math.Round(v), 0)
}

// fixed renders v with exactly two decimal places. decimal avoids the
// float-printing artifacts of Sprintf at this scale.
func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
