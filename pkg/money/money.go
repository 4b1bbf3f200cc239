// Package money converts between display-formatted price strings and numeric
// amounts. Prices cross the storage boundary as strings like "฿1,990"; all
// arithmetic happens on Money values.
package money

import (
	"strconv"
	"strings"
)

// Symbol is the currency prefix used by the canonical display format.
const Symbol = "฿"

// Money is a numeric amount that marshals to and from the canonical
// display string.
type Money float64

// Parse extracts the numeric amount from a display string. Every rune that is
// not a digit or a decimal point is stripped before parsing. An empty or
// otherwise unparseable remainder yields 0; Parse never fails.
func Parse(display string) float64 {
	var b strings.Builder
	for _, r := range display {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// Format renders an amount as the canonical display string: currency symbol,
// thousands-grouped integer part, fractional part kept up to two places and
// omitted when zero.
func Format(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	// Round to two places to avoid float noise in the fractional part.
	cents := int64(amount*100 + 0.5)
	intPart := cents / 100
	frac := cents % 100

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(Symbol)
	b.WriteString(group(intPart))
	if frac != 0 {
		b.WriteByte('.')
		if frac%10 == 0 {
			b.WriteString(strconv.FormatInt(frac/10, 10))
		} else {
			if frac < 10 {
				b.WriteByte('0')
			}
			b.WriteString(strconv.FormatInt(frac, 10))
		}
	}
	return b.String()
}

// group inserts thousands separators into a non-negative integer.
func group(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// New wraps a float amount.
func New(amount float64) Money {
	return Money(amount)
}

// FromString parses a display string into a Money value.
func FromString(display string) Money {
	return Money(Parse(display))
}

// Float returns the raw numeric amount.
func (m Money) Float() float64 {
	return float64(m)
}

// String renders the canonical display string.
func (m Money) String() string {
	return Format(float64(m))
}

// MarshalJSON encodes the amount as its display string, keeping the persisted
// representation identical to what the storefront renders.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON accepts either a display string or a bare number. Malformed
// input degrades to 0 rather than failing the surrounding record.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	*m = Money(Parse(s))
	return nil
}
