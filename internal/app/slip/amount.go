package slip

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a decoded monetary value counted in cents.
type Amount struct {
	cents int64
}

// NewAmount returns an Amount of the given number of cents.
func NewAmount(cents int64) Amount {
	return Amount{cents: cents}
}

// Cents returns the amount in minor units.
func (a Amount) Cents() int64 {
	return a.cents
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.cents == 0
}

// Decimal returns the exact amount with two fractional digits.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(a.cents, -2)
}

// String returns the amount with a dot separator and two fractional digits, e.g. 1234.56.
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// Display returns the amount formatted as Brazilian currency, e.g. R$ 1.234,56 or -R$ 0,05.
func (a Amount) Display() string {
	abs := uint64(a.cents)
	if a.cents < 0 {
		abs = -abs
	}
	integer := groupThousands(strconv.FormatUint(abs/100, 10))
	cents := abs % 100

	var sb strings.Builder
	if a.cents < 0 {
		sb.WriteByte('-')
	}
	sb.WriteString("R$ ")
	sb.WriteString(integer)
	sb.WriteByte(',')
	if cents < 10 {
		sb.WriteByte('0')
	}
	sb.WriteString(strconv.FormatUint(cents, 10))

	return sb.String()
}

// groupThousands inserts a dot every three digits counting from the right.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := len(digits) % 3
	if head == 0 {
		head = 3
	}

	var sb strings.Builder
	sb.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		sb.WriteByte('.')
		sb.WriteString(digits[i : i+3])
	}

	return sb.String()
}
