package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Goal is a savings target measured against the ledger balance.
type Goal struct {
	ID          uuid.UUID
	Name        string
	Description string
	Target      decimal.Decimal
}

// Progress returns the share of the target covered by balance, in percent between 0 and 100.
// A goal without a positive target has no progress.
func (g Goal) Progress(balance decimal.Decimal) decimal.Decimal {
	if !g.Target.IsPositive() || !balance.IsPositive() {
		return decimal.Zero
	}

	return decimal.Min(balance.Mul(hundred).Div(g.Target), hundred)
}
