package scanner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ormanli/slipscan/internal/app/ledger"
	"github.com/ormanli/slipscan/internal/app/slip"
)

// Service defines a contract for decoding payment slips and keeping the ledger they are filed in.
type Service interface {
	Decode(code string) (slip.Amount, error)
	Scan(day time.Time, tag string, code string) (ledger.Entry, error)
	Record(entry ledger.Entry) (ledger.Entry, error)
	Day(day time.Time) ([]ledger.Entry, error)
	History() ([]ledger.Entry, error)
	Summary(year int, month time.Month) (ledger.Summary, error)
	TotalsByTag(period ledger.Period) ([]ledger.TagTotal, error)
	Balance() (decimal.Decimal, error)
	Tags() ([]ledger.Tag, error)
	AddTag(name string) (ledger.Tag, error)
	RenameTag(from string, to string) error
	DeleteTag(name string) error
	Goals() ([]ledger.Goal, error)
	AddGoal(name string, description string, target decimal.Decimal) (ledger.Goal, error)
	UpdateGoal(goal ledger.Goal) (ledger.Goal, error)
	DeleteGoal(id uuid.UUID) error
	// Subscribe streams ledger snapshots until ctx is done.
	Subscribe(ctx context.Context) <-chan ledger.Snapshot
}
