// Package core provides the ledger domain types and their validation.
//
// Money keeps amounts as integer cents so sums are exact; parsing and
// rendering go through shopspring/decimal.
package core

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in cents. Negative values only appear as the result
// of arithmetic (a budget variance), never as stored amounts.
type Money struct {
	Cents int64
}

// maxCents keeps cents*100 conversions and sums well inside int64.
const maxCents = (1<<63 - 1) / 1000

// decimalComma is the only accepted use of a comma: as the decimal separator.
var decimalComma = regexp.MustCompile(`^\d+,\d{1,2}$`)

// ParseAmount converts user input to Money with half-up rounding to cents.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted. A
// comma must be the only separator and be followed by one or two digits, so
// thousands groupings such as "1,000" are rejected rather than misread.
// Zero is allowed; negative values, signs and non-numbers are not.
//
//	ParseAmount("250")   -> 25000
//	ParseAmount("12,5")  -> 1250
//	ParseAmount("1,000") -> ErrInvalidAmount
func ParseAmount(raw string) (Money, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Money{}, fmt.Errorf("%w: it must be a non-negative number", ErrInvalidAmount)
	}
	if strings.Contains(s, ",") {
		if !decimalComma.MatchString(s) {
			return Money{}, fmt.Errorf("%w %q: it must be a non-negative number", ErrInvalidAmount, raw)
		}
		s = strings.Replace(s, ",", ".", 1)
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, fmt.Errorf("%w %q: it must be a non-negative number", ErrInvalidAmount, raw)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w %q: it must be a non-negative number", ErrInvalidAmount, raw)
	}
	return fromDecimal(d)
}

// MustParseAmount is ParseAmount for literals; it panics on bad input.
func MustParseAmount(raw string) Money {
	m, err := ParseAmount(raw)
	if err != nil {
		panic(err)
	}
	return m
}

func fromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, fmt.Errorf("%w: it must be a non-negative number", ErrInvalidAmount)
	}
	cents := d.Round(2).Shift(2)
	if cents.GreaterThan(decimal.NewFromInt(maxCents)) {
		return Money{}, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	return Money{Cents: cents.IntPart()}, nil
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return fmt.Errorf("%w: it must be a non-negative number", ErrInvalidAmount)
	}
	return nil
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

func (m Money) IsNegative() bool { return m.Cents < 0 }

func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String renders the amount with exactly two decimals, e.g. "250.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON writes the amount as a plain JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts numbers and numeric strings; older ledger files
// stored amounts exactly as typed on the command line.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = Money{}
		return nil
	}
	s := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return fmt.Errorf("%w %s", ErrInvalidAmount, data)
	}
	m.Cents = d.Round(2).Shift(2).IntPart()
	return nil
}
