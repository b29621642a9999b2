// Package slip extracts the amount encoded in a payment slip (boleto) code.
//
// Codes come from a barcode scanner or a text field and may carry spaces,
// dots or dashes between digits. Every function in the package is pure and
// safe for concurrent use.
package slip

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	barcodeLength     = 44
	typeableLength    = 47
	centsFieldLength  = 10
	centsDigits       = 2
	longRun           = "000000"
	longRunIntDigits  = 2
	shortRun          = "00000"
	shortRunIntDigits = 3
)

// Decoder decodes slip codes with a fixed policy.
type Decoder struct {
	policy Policy
}

// NewDecoder creates a Decoder that uses the given policy.
func NewDecoder(policy Policy) Decoder {
	return Decoder{policy: policy}
}

// Decode extracts the amount from code.
func (d Decoder) Decode(code string) (Amount, error) {
	switch d.policy {
	case FixedLength:
		return DecodeFixedLength(code)
	case ZeroRun:
		return DecodeZeroRun(code)
	default:
		return Amount{}, fmt.Errorf("%w: %s", ErrUnknownPolicy, d.policy)
	}
}

// Digits removes every character of code that is not a decimal digit.
func Digits(code string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, code)
}

// DecodeFixedLength reads the last 10 digits of a 44 or 47 digit code as cents.
// A zero amount is rejected.
func DecodeFixedLength(code string) (Amount, error) {
	digits := Digits(code)
	if len(digits) != barcodeLength && len(digits) != typeableLength {
		return Amount{}, fmt.Errorf("%w: %d digits, want %d or %d", ErrInvalidLength, len(digits), barcodeLength, typeableLength)
	}

	cents, err := strconv.ParseUint(digits[len(digits)-centsFieldLength:], 10, 64)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}
	if cents == 0 {
		return Amount{}, fmt.Errorf("%w: zero", ErrInvalidAmount)
	}

	return Amount{cents: int64(cents)}, nil
}

// DecodeZeroRun locates the first run of six zeros and reads 2 integer digits
// and 2 cent digits after it. Without such a run it falls back to the first run
// of five zeros followed by 3 integer digits and 2 cent digits.
func DecodeZeroRun(code string) (Amount, error) {
	digits := Digits(code)

	if idx := strings.Index(digits, longRun); idx != -1 {
		return readFields(digits, idx+len(longRun), longRunIntDigits)
	}

	if idx := strings.Index(digits, shortRun); idx != -1 {
		return readFields(digits, idx+len(shortRun), shortRunIntDigits)
	}

	return Amount{}, ErrPatternNotFound
}

// readFields parses intDigits integer digits and two cent digits starting at start.
func readFields(digits string, start, intDigits int) (Amount, error) {
	end := start + intDigits + centsDigits
	if len(digits) < end {
		return Amount{}, fmt.Errorf("%w: %d digits after marker, want %d", ErrInvalidLength, len(digits)-start, intDigits+centsDigits)
	}

	integer, err := parseField(digits[start : start+intDigits])
	if err != nil {
		return Amount{}, err
	}

	cents, err := parseField(digits[start+intDigits : end])
	if err != nil {
		return Amount{}, err
	}

	return Amount{cents: integer*100 + cents}, nil
}

func parseField(field string) (int64, error) {
	if field == "" {
		return 0, fmt.Errorf("%w: empty field", ErrInvalidAmount)
	}

	v, err := strconv.ParseUint(field, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}

	return int64(v), nil
}
