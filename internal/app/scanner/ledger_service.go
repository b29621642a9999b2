package scanner

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ormanli/slipscan/internal/app/ledger"
	"github.com/ormanli/slipscan/internal/app/slip"
)

// Decoder extracts the amount from a slip code.
type Decoder interface {
	Decode(code string) (slip.Amount, error)
}

// LedgerService decodes slip codes and files the amounts in a ledger.
type LedgerService struct {
	decoder Decoder
	store   *ledger.Store
}

func NewLedgerService(decoder Decoder, store *ledger.Store) *LedgerService {
	return &LedgerService{decoder: decoder, store: store}
}

func (l *LedgerService) Decode(code string) (slip.Amount, error) {
	amount, err := l.decoder.Decode(code)
	if err != nil {
		slog.Debug("Slip rejected", "code", code, "error", err)
		return slip.Amount{}, err
	}

	slog.Debug("Slip decoded", "code", code, "amount", amount)

	return amount, nil
}

// Scan decodes code and records the amount as an expense on day.
func (l *LedgerService) Scan(day time.Time, tag string, code string) (ledger.Entry, error) {
	amount, err := l.Decode(code)
	if err != nil {
		return ledger.Entry{}, err
	}

	return l.Record(ledger.Entry{
		Tag:          tag,
		Amount:       amount.Decimal(),
		Kind:         ledger.Expense,
		RegisteredAt: day,
	})
}

func (l *LedgerService) Record(entry ledger.Entry) (ledger.Entry, error) {
	recorded, err := l.store.Record(entry)
	if err != nil {
		return ledger.Entry{}, err
	}

	slog.Debug("Entry recorded", "id", recorded.ID, "day", recorded.DayKey(), "tag", recorded.Tag, "kind", recorded.Kind, "amount", recorded.Amount)

	return recorded, nil
}

func (l *LedgerService) Day(day time.Time) ([]ledger.Entry, error) {
	return l.store.Day(day), nil
}

func (l *LedgerService) History() ([]ledger.Entry, error) {
	return l.store.History(), nil
}

func (l *LedgerService) TotalsByTag(period ledger.Period) ([]ledger.TagTotal, error) {
	return l.store.TotalsByTag(period), nil
}

func (l *LedgerService) Balance() (decimal.Decimal, error) {
	return l.store.Balance(), nil
}

func (l *LedgerService) Tags() ([]ledger.Tag, error) {
	return l.store.Tags(), nil
}

func (l *LedgerService) Summary(year int, month time.Month) (ledger.Summary, error) {
	return l.store.Summary(year, month), nil
}

func (l *LedgerService) AddTag(name string) (ledger.Tag, error) {
	return l.store.AddTag(name)
}

func (l *LedgerService) RenameTag(from string, to string) error {
	return l.store.RenameTag(from, to)
}

func (l *LedgerService) DeleteTag(name string) error {
	return l.store.DeleteTag(name)
}

func (l *LedgerService) Goals() ([]ledger.Goal, error) {
	return l.store.Goals(), nil
}

func (l *LedgerService) AddGoal(name string, description string, target decimal.Decimal) (ledger.Goal, error) {
	goal, err := l.store.AddGoal(name, description, target)
	if err != nil {
		return ledger.Goal{}, err
	}

	slog.Debug("Goal created", "id", goal.ID, "name", goal.Name, "target", goal.Target)

	return goal, nil
}

func (l *LedgerService) UpdateGoal(goal ledger.Goal) (ledger.Goal, error) {
	return l.store.UpdateGoal(goal)
}

func (l *LedgerService) DeleteGoal(id uuid.UUID) error {
	return l.store.DeleteGoal(id)
}

func (l *LedgerService) Subscribe(ctx context.Context) <-chan ledger.Snapshot {
	return l.store.Subscribe(ctx)
}
