package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ormanli/slipscan/internal/app/ledger"
	"github.com/ormanli/slipscan/internal/app/scanner"
	"github.com/ormanli/slipscan/internal/app/slip"
)

// Service defines the interface for processing requests.
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
	Subscribe(ctx context.Context) <-chan ledger.Snapshot
}

// Transport manages TCP connections and handles incoming requests.
type Transport struct {
	service          Service
	cfg              scanner.Config
	listener         net.Listener
	stopHandlingChan chan struct{}
	wg               sync.WaitGroup
	clock            clock.Clock
}

// NewTransport creates a new Transport instance.
func NewTransport(cfg scanner.Config, service Service, clock clock.Clock) *Transport {
	return &Transport{
		cfg:              cfg,
		service:          service,
		stopHandlingChan: make(chan struct{}),
		wg:               sync.WaitGroup{},
		clock:            clock,
	}
}

// Start initializes the TCP server and starts accepting connections.
// It will block until context is cancelled and grace period is finished.
func (t *Transport) Start(ctx context.Context) error {
	var err error
	t.listener, err = net.Listen("tcp", fmt.Sprintf("%s:%d", t.cfg.ServerHost, t.cfg.ServerPort))
	if err != nil {
		return err
	}

	defer slog.Info("Server stopped")

	slog.Info("Server started", "port", t.cfg.ServerPort, "policy", t.cfg.DecoderPolicy)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		for {
			conn, err := t.listener.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return
				}
				slog.Error("Failed to accept connection", "error", err)
				continue
			}

			t.wg.Add(1)
			go t.handleConnection(conn)
		}
	}()

	t.waitForGracefulShutdown(ctx)

	return nil
}

// waitForGracefulShutdown waits for a graceful shutdown signal, sleeps until shutdown timeout and then closes the channel to stop handling connections.
func (t *Transport) waitForGracefulShutdown(ctx context.Context) {
	<-ctx.Done()

	slog.Info("Server graceful shutdown started")

	err := t.listener.Close()
	if err != nil {
		slog.Error("Error closing listener", "error", err)
	}

	t.clock.Sleep(t.cfg.ServerGracefulShutdownTimeout)

	close(t.stopHandlingChan)

	t.wg.Wait()
}

var defaultCancelledResponse = response{
	status: Rejected,
	reason: "Cancelled",
}

// handleConnection manages the lifecycle of a single TCP connection, reading requests and sending responses.
func (t *Transport) handleConnection(conn net.Conn) {
	defer t.wg.Done()

	defer conn.Close() //nolint:errcheck

	slog.Debug("Handling connection", "remote", conn.RemoteAddr())

	done := make(chan struct{})
	defer close(done)

	// Unblock the pending read of an idle connection once handling stops.
	go func() {
		select {
		case <-t.stopHandlingChan:
			_ = conn.SetReadDeadline(time.Now())
		case <-done:
		}
	}()

	lines := bufio.NewScanner(conn)
	for lines.Scan() {
		line := lines.Text()

		r, err := parseRequest(line)
		if _, ok := r.(watchRequest); ok {
			t.watch(conn, lines)
			return
		}

		responseChan := make(chan response, 1)

		go func() {
			select {
			case <-t.stopHandlingChan:
				return
			case responseChan <- t.respond(r, err):
			}
		}()

		select {
		case <-t.stopHandlingChan:
			writeResponse(conn, line, defaultCancelledResponse)
			return
		case response := <-responseChan:
			writeResponse(conn, line, response)
		}
	}

	if err := lines.Err(); err != nil && !errors.Is(err, os.ErrDeadlineExceeded) {
		slog.Error("Error reading from connection", "error", err)
	}
}

// watch writes the balance of every ledger snapshot until the client hangs up or handling stops.
func (t *Transport) watch(conn net.Conn, lines *bufio.Scanner) {
	ctx, cncl := context.WithCancel(context.Background())
	defer cncl()

	// Lines sent after WATCH are ignored.
	go func() {
		defer cncl()
		for lines.Scan() {
		}
	}()

	for snapshot := range t.service.Subscribe(ctx) {
		writeResponse(conn, "WATCH", accepted("balance %s", snapshot.Balance.StringFixed(2)))
	}
}

func (t *Transport) respond(r request, err error) response {
	if err != nil {
		return rejected(err)
	}

	return t.handleRequest(r)
}

// handleRequest processes an incoming request and returns a corresponding response.
func (t *Transport) handleRequest(r request) response {
	switch r := r.(type) {
	case decodeRequest:
		amount, err := t.service.Decode(r.code)
		if err != nil {
			return rejected(err)
		}
		return accepted("%s", amount)
	case scanRequest:
		entry, err := t.service.Scan(r.day, r.tag, r.code)
		if err != nil {
			return rejected(err)
		}
		return recordedResponse(entry)
	case entryRequest:
		entry, err := t.service.Record(ledger.Entry{
			Tag:          r.tag,
			Amount:       r.amount,
			Kind:         r.kind,
			RegisteredAt: r.day,
		})
		if err != nil {
			return rejected(err)
		}
		return recordedResponse(entry)
	case balanceRequest:
		summary, err := t.service.Summary(r.year, r.month)
		if err != nil {
			return rejected(err)
		}
		return accepted("income %s expense %s profit %s balance %s",
			summary.Income.StringFixed(2),
			summary.Expense.StringFixed(2),
			summary.Profit().StringFixed(2),
			summary.Balance.StringFixed(2))
	case dayRequest:
		entries, err := t.service.Day(r.day)
		if err != nil {
			return rejected(err)
		}
		return listed("entries", entries, func(e ledger.Entry) string {
			return fmt.Sprintf("%s %s %s", e.Kind, e.Tag, e.Amount.StringFixed(2))
		})
	case historyRequest:
		entries, err := t.service.History()
		if err != nil {
			return rejected(err)
		}
		return listed("history", entries, func(e ledger.Entry) string {
			return fmt.Sprintf("%s %s %s %s", e.DayKey(), e.Kind, e.Tag, e.Amount.StringFixed(2))
		})
	case totalsRequest:
		totals, err := t.service.TotalsByTag(r.period)
		if err != nil {
			return rejected(err)
		}
		return listed("totals "+r.period.String(), totals, func(tt ledger.TagTotal) string {
			return fmt.Sprintf("%s income %s expense %s", tt.Tag, tt.Income.StringFixed(2), tt.Expense.StringFixed(2))
		})
	case tagRequest:
		return t.handleTagRequest(r)
	case goalRequest:
		return t.handleGoalRequest(r)
	default:
		return rejected(scanner.ErrInvalidRequest)
	}
}

func (t *Transport) handleTagRequest(r tagRequest) response {
	switch r.op {
	case tagAdd:
		tag, err := t.service.AddTag(r.name)
		if err != nil {
			return rejected(err)
		}
		return accepted("tag %s created", tag.Name)
	case tagRename:
		if err := t.service.RenameTag(r.name, r.to); err != nil {
			return rejected(err)
		}
		return accepted("tag %s renamed to %s", r.name, r.to)
	case tagDelete:
		if err := t.service.DeleteTag(r.name); err != nil {
			return rejected(err)
		}
		return accepted("tag %s deleted", r.name)
	case tagList:
		tags, err := t.service.Tags()
		if err != nil {
			return rejected(err)
		}
		return listed("tags", tags, func(tag ledger.Tag) string {
			return tag.Name
		})
	default:
		return rejected(scanner.ErrInvalidRequest)
	}
}

func (t *Transport) handleGoalRequest(r goalRequest) response {
	switch r.op {
	case goalAdd:
		goal, err := t.service.AddGoal(r.name, r.description, r.target)
		if err != nil {
			return rejected(err)
		}
		return accepted("goal %s created with id %s", goal.Name, goal.ID)
	case goalUpdate:
		goal, err := t.service.UpdateGoal(ledger.Goal{
			ID:          r.id,
			Name:        r.name,
			Description: r.description,
			Target:      r.target,
		})
		if err != nil {
			return rejected(err)
		}
		return accepted("goal %s updated", goal.Name)
	case goalDelete:
		if err := t.service.DeleteGoal(r.id); err != nil {
			return rejected(err)
		}
		return accepted("goal %s deleted", r.id)
	case goalList:
		balance, err := t.service.Balance()
		if err != nil {
			return rejected(err)
		}
		goals, err := t.service.Goals()
		if err != nil {
			return rejected(err)
		}
		return listed("goals", goals, func(g ledger.Goal) string {
			return fmt.Sprintf("%s %s target %s progress %s%%", g.ID, g.Name, g.Target.StringFixed(2), g.Progress(balance).StringFixed(1))
		})
	default:
		return rejected(scanner.ErrInvalidRequest)
	}
}

// listed joins the formatted items after label, or reports none.
func listed[T any](label string, items []T, format func(T) string) response {
	if len(items) == 0 {
		return accepted("%s: none", label)
	}

	formatted := make([]string, 0, len(items))
	for _, item := range items {
		formatted = append(formatted, format(item))
	}

	return accepted("%s: %s", label, strings.Join(formatted, ", "))
}

func recordedResponse(entry ledger.Entry) response {
	return accepted("%s %s recorded", entry.Kind, entry.Amount.StringFixed(2))
}

// writeResponse sends a response back to the client over the provided connection.
func writeResponse(conn net.Conn, request string, r response) {
	_, err := fmt.Fprintf(conn, "%s\n", r)
	if err != nil {
		slog.Error("Failed to write response", "error", err, "request", request, "response", r)
		return
	}
	slog.Debug("Handling request", "request", request, "response", r)
}
