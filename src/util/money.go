package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundAmount normalizes a monetary value to two decimal places. Model output
// and form input both arrive as floats; rounding through decimal avoids the
// usual float-cents drift.
func RoundAmount(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// FormatAmount renders a value as a grouped dollar string, e.g. 1234.5 →
// "1,234.50".
func FormatAmount(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
