package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ormanli/slipscan/internal/app/ledger"
	"github.com/ormanli/slipscan/internal/app/slip"
)

// ValidationService rejects malformed input before it reaches the wrapped Service.
type ValidationService struct {
	service Service
	cfg     Config
}

func NewValidationService(cfg Config, service Service) *ValidationService {
	return &ValidationService{service: service, cfg: cfg}
}

func (v *ValidationService) Decode(code string) (slip.Amount, error) {
	if err := v.validateCode(code); err != nil {
		return slip.Amount{}, err
	}

	return v.service.Decode(code)
}

func (v *ValidationService) Scan(day time.Time, tag string, code string) (ledger.Entry, error) {
	if err := v.validateCode(code); err != nil {
		return ledger.Entry{}, err
	}
	if err := validateTag(tag); err != nil {
		return ledger.Entry{}, err
	}

	return v.service.Scan(day, tag, code)
}

func (v *ValidationService) Record(entry ledger.Entry) (ledger.Entry, error) {
	if !entry.Amount.IsPositive() {
		return ledger.Entry{}, ErrInvalidAmount
	}
	if err := validateTag(entry.Tag); err != nil {
		return ledger.Entry{}, err
	}

	return v.service.Record(entry)
}

func (v *ValidationService) Summary(year int, month time.Month) (ledger.Summary, error) {
	if month < time.January || month > time.December {
		return ledger.Summary{}, ErrInvalidDate
	}

	return v.service.Summary(year, month)
}

func (v *ValidationService) AddTag(name string) (ledger.Tag, error) {
	if err := validateTag(name); err != nil {
		return ledger.Tag{}, err
	}

	return v.service.AddTag(name)
}

func (v *ValidationService) RenameTag(from string, to string) error {
	if err := validateTag(from); err != nil {
		return err
	}
	if err := validateTag(to); err != nil {
		return err
	}

	return v.service.RenameTag(from, to)
}

func (v *ValidationService) DeleteTag(name string) error {
	if err := validateTag(name); err != nil {
		return err
	}

	return v.service.DeleteTag(name)
}

func (v *ValidationService) Day(day time.Time) ([]ledger.Entry, error) {
	return v.service.Day(day)
}

func (v *ValidationService) History() ([]ledger.Entry, error) {
	return v.service.History()
}

func (v *ValidationService) TotalsByTag(period ledger.Period) ([]ledger.TagTotal, error) {
	if period.Month < 0 || period.Month > time.December {
		return nil, ErrInvalidDate
	}

	return v.service.TotalsByTag(period)
}

func (v *ValidationService) Balance() (decimal.Decimal, error) {
	return v.service.Balance()
}

func (v *ValidationService) Tags() ([]ledger.Tag, error) {
	return v.service.Tags()
}

func (v *ValidationService) Goals() ([]ledger.Goal, error) {
	return v.service.Goals()
}

func (v *ValidationService) AddGoal(name string, description string, target decimal.Decimal) (ledger.Goal, error) {
	if err := validateGoal(name, target); err != nil {
		return ledger.Goal{}, err
	}

	return v.service.AddGoal(name, description, target)
}

func (v *ValidationService) UpdateGoal(goal ledger.Goal) (ledger.Goal, error) {
	if goal.ID == uuid.Nil {
		return ledger.Goal{}, ErrInvalidGoal
	}
	if err := validateGoal(goal.Name, goal.Target); err != nil {
		return ledger.Goal{}, err
	}

	return v.service.UpdateGoal(goal)
}

func (v *ValidationService) DeleteGoal(id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidGoal
	}

	return v.service.DeleteGoal(id)
}

func (v *ValidationService) Subscribe(ctx context.Context) <-chan ledger.Snapshot {
	return v.service.Subscribe(ctx)
}

// validateCode rejects reads too short to be a slip code, which scanners produce for stray barcodes.
// The raw length counts, separators included.
func (v *ValidationService) validateCode(code string) error {
	if len(code) < v.cfg.MinCodeLength {
		return fmt.Errorf("%w: %d characters", ErrCodeTooShort, len(code))
	}

	return nil
}

func validateTag(tag string) error {
	if strings.TrimSpace(tag) == "" {
		return ErrInvalidTag
	}

	return nil
}

func validateGoal(name string, target decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidGoal
	}
	if !target.IsPositive() {
		return ErrInvalidAmount
	}

	return nil
}
