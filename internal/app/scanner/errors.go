package scanner

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidTag     = errors.New("invalid tag")
	ErrInvalidGoal    = errors.New("invalid goal")
	ErrCodeTooShort   = errors.New("code too short")
)
