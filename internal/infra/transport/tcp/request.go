package tcp

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ormanli/slipscan/internal/app/ledger"
	"github.com/ormanli/slipscan/internal/app/scanner"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// request is one of the request types below.
type request interface {
	isRequest()
}

// decodeRequest asks for the amount of a scanned slip code.
type decodeRequest struct {
	code string
}

// scanRequest files a scanned slip code as an expense on a day.
type scanRequest struct {
	day  time.Time
	tag  string
	code string
}

// entryRequest files a manually entered amount.
type entryRequest struct {
	kind   ledger.Kind
	day    time.Time
	tag    string
	amount decimal.Decimal
}

// balanceRequest asks for the totals of a month.
type balanceRequest struct {
	year  int
	month time.Month
}

// dayRequest lists the entries of a day.
type dayRequest struct {
	day time.Time
}

// historyRequest lists every entry, newest first.
type historyRequest struct{}

// totalsRequest asks for per-tag totals of a month or of the whole ledger.
type totalsRequest struct {
	period ledger.Period
}

// watchRequest streams the balance after every ledger change.
type watchRequest struct{}

type tagOp int

const (
	tagAdd tagOp = iota
	tagRename
	tagDelete
	tagList
)

// tagRequest manages the tag list.
type tagRequest struct {
	op   tagOp
	name string
	to   string
}

type goalOp int

const (
	goalAdd goalOp = iota
	goalUpdate
	goalDelete
	goalList
)

// goalRequest manages savings goals.
type goalRequest struct {
	op          goalOp
	id          uuid.UUID
	name        string
	description string
	target      decimal.Decimal
}

func (decodeRequest) isRequest()  {}
func (scanRequest) isRequest()    {}
func (entryRequest) isRequest()   {}
func (balanceRequest) isRequest() {}
func (dayRequest) isRequest()     {}
func (historyRequest) isRequest() {}
func (totalsRequest) isRequest()  {}
func (watchRequest) isRequest()   {}
func (tagRequest) isRequest()     {}
func (goalRequest) isRequest()    {}

// parseRequest parses a pipe separated request line.
func parseRequest(s string) (request, error) {
	parts := strings.Split(s, "|")

	switch parts[0] {
	case "DECODE":
		if len(parts) != 2 {
			return nil, scanner.ErrInvalidRequest
		}
		return decodeRequest{code: parts[1]}, nil
	case "SCAN":
		if len(parts) != 4 {
			return nil, scanner.ErrInvalidRequest
		}
		day, err := parseDay(parts[1])
		if err != nil {
			return nil, err
		}
		return scanRequest{day: day, tag: parts[2], code: parts[3]}, nil
	case "ENTRY":
		return parseEntryRequest(parts)
	case "BALANCE":
		if len(parts) != 2 {
			return nil, scanner.ErrInvalidRequest
		}
		month, err := time.Parse(monthLayout, parts[1])
		if err != nil {
			return nil, scanner.ErrInvalidDate
		}
		return balanceRequest{year: month.Year(), month: month.Month()}, nil
	case "DAY":
		if len(parts) != 2 {
			return nil, scanner.ErrInvalidRequest
		}
		day, err := parseDay(parts[1])
		if err != nil {
			return nil, err
		}
		return dayRequest{day: day}, nil
	case "HISTORY":
		if len(parts) != 1 {
			return nil, scanner.ErrInvalidRequest
		}
		return historyRequest{}, nil
	case "TOTALS":
		return parseTotalsRequest(parts)
	case "WATCH":
		if len(parts) != 1 {
			return nil, scanner.ErrInvalidRequest
		}
		return watchRequest{}, nil
	case "TAG":
		return parseTagRequest(parts)
	case "GOAL":
		return parseGoalRequest(parts)
	default:
		return nil, scanner.ErrInvalidRequest
	}
}

func parseEntryRequest(parts []string) (request, error) {
	if len(parts) != 5 {
		return nil, scanner.ErrInvalidRequest
	}

	kind, err := ledger.ParseKind(parts[1])
	if err != nil {
		return nil, scanner.ErrInvalidRequest
	}

	day, err := parseDay(parts[2])
	if err != nil {
		return nil, err
	}

	amount, err := parseAmount(parts[4])
	if err != nil {
		return nil, err
	}

	return entryRequest{kind: kind, day: day, tag: parts[3], amount: amount}, nil
}

// parseTotalsRequest accepts TOTALS|yyyy-mm and TOTALS|ALL.
func parseTotalsRequest(parts []string) (request, error) {
	if len(parts) != 2 {
		return nil, scanner.ErrInvalidRequest
	}
	if parts[1] == "ALL" {
		return totalsRequest{}, nil
	}

	month, err := time.Parse(monthLayout, parts[1])
	if err != nil {
		return nil, scanner.ErrInvalidDate
	}

	return totalsRequest{period: ledger.MonthPeriod(month.Year(), month.Month())}, nil
}

func parseTagRequest(parts []string) (request, error) {
	if len(parts) == 2 && parts[1] == "LIST" {
		return tagRequest{op: tagList}, nil
	}
	if len(parts) < 3 {
		return nil, scanner.ErrInvalidRequest
	}

	switch {
	case parts[1] == "ADD" && len(parts) == 3:
		return tagRequest{op: tagAdd, name: parts[2]}, nil
	case parts[1] == "RENAME" && len(parts) == 4:
		return tagRequest{op: tagRename, name: parts[2], to: parts[3]}, nil
	case parts[1] == "DELETE" && len(parts) == 3:
		return tagRequest{op: tagDelete, name: parts[2]}, nil
	default:
		return nil, scanner.ErrInvalidRequest
	}
}

// parseGoalRequest accepts
//
//	GOAL|ADD|<name>|<target>[|<description>]
//	GOAL|UPDATE|<id>|<name>|<target>[|<description>]
//	GOAL|DELETE|<id>
//	GOAL|LIST
func parseGoalRequest(parts []string) (request, error) {
	if len(parts) < 2 {
		return nil, scanner.ErrInvalidRequest
	}

	switch parts[1] {
	case "ADD":
		if len(parts) != 4 && len(parts) != 5 {
			return nil, scanner.ErrInvalidRequest
		}
		return goalFields(goalRequest{op: goalAdd}, parts[2:])
	case "UPDATE":
		if len(parts) != 5 && len(parts) != 6 {
			return nil, scanner.ErrInvalidRequest
		}
		id, err := uuid.Parse(parts[2])
		if err != nil {
			return nil, scanner.ErrInvalidGoal
		}
		return goalFields(goalRequest{op: goalUpdate, id: id}, parts[3:])
	case "DELETE":
		if len(parts) != 3 {
			return nil, scanner.ErrInvalidRequest
		}
		id, err := uuid.Parse(parts[2])
		if err != nil {
			return nil, scanner.ErrInvalidGoal
		}
		return goalRequest{op: goalDelete, id: id}, nil
	case "LIST":
		if len(parts) != 2 {
			return nil, scanner.ErrInvalidRequest
		}
		return goalRequest{op: goalList}, nil
	default:
		return nil, scanner.ErrInvalidRequest
	}
}

// goalFields fills name, target and the optional description from fields.
func goalFields(r goalRequest, fields []string) (request, error) {
	target, err := parseAmount(fields[1])
	if err != nil {
		return nil, err
	}

	r.name = fields[0]
	r.target = target
	if len(fields) == 3 {
		r.description = fields[2]
	}

	return r, nil
}

func parseDay(s string) (time.Time, error) {
	day, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, scanner.ErrInvalidDate
	}

	return day, nil
}

// parseAmount accepts a dot or a comma as decimal separator and at most two fractional digits.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
	if err != nil {
		return decimal.Decimal{}, scanner.ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return decimal.Decimal{}, scanner.ErrInvalidAmount
	}

	return amount, nil
}
