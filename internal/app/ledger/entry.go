package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// Kind tells income and expense entries apart.
type Kind int

const (
	Expense Kind = iota
	Income
)

func (k Kind) String() string {
	switch k {
	case Expense:
		return "expense"
	case Income:
		return "income"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind returns the kind named by s, ignoring case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense":
		return Expense, nil
	case "income":
		return Income, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Tag is a user-defined category entries are filed under.
type Tag struct {
	ID   int
	Name string
}

// Entry is a single income or expense on a calendar day.
type Entry struct {
	ID     uuid.UUID
	Tag    string
	Amount decimal.Decimal
	Kind   Kind
	// RegisteredAt is the calendar day the entry belongs to, at midnight UTC.
	RegisteredAt time.Time
	// CreatedAt is when the entry was recorded.
	CreatedAt time.Time

	seq uint64
}

// DayKey returns the yyyy-mm-dd key of the entry day.
func (e Entry) DayKey() string {
	return e.RegisteredAt.Format(dayLayout)
}

// Summary holds the totals of one month.
type Summary struct {
	Month   time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
	// Balance is the profit accumulated over every month in the ledger.
	Balance decimal.Decimal
}

// Profit returns income minus expense for the month.
func (s Summary) Profit() decimal.Decimal {
	return s.Income.Sub(s.Expense)
}

// Period selects the months aggregated by TotalsByTag. The zero Period covers the whole ledger.
type Period struct {
	Year  int
	Month time.Month
}

// MonthPeriod returns the Period of a single month.
func MonthPeriod(year int, month time.Month) Period {
	return Period{Year: year, Month: month}
}

// IsOverall reports whether p covers every month.
func (p Period) IsOverall() bool {
	return p.Month == 0
}

func (p Period) String() string {
	if p.IsOverall() {
		return "overall"
	}

	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).Format(monthLayout)
}

func (p Period) contains(dayKey string) bool {
	return p.IsOverall() || strings.HasPrefix(dayKey, p.String()+"-")
}

// TagTotal holds the income and expense filed under one tag.
type TagTotal struct {
	Tag     string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Snapshot is a copy of the ledger state at one point in time.
type Snapshot struct {
	Tags    []Tag
	Days    map[string][]Entry
	Goals   []Goal
	Balance decimal.Decimal
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
