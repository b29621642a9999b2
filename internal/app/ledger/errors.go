package ledger

import "errors"

var (
	ErrEmptyTag      = errors.New("empty tag")
	ErrDuplicateTag  = errors.New("tag already exists")
	ErrUnknownTag    = errors.New("unknown tag")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid kind")
	ErrEmptyGoal     = errors.New("empty goal name")
	ErrInvalidTarget = errors.New("invalid target")
	ErrUnknownGoal   = errors.New("unknown goal")
)
