package slip

import "errors"

var (
	ErrInvalidLength   = errors.New("invalid length")
	ErrPatternNotFound = errors.New("pattern not found")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownPolicy   = errors.New("unknown policy")
)
