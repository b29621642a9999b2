// Package ledger keeps the tagged income and expense entries of a user's calendar.
package ledger

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is an in-memory ledger safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	clock       clock.Clock
	tags        []Tag
	days        map[string][]Entry
	goals       []Goal
	subscribers map[int]chan Snapshot
	nextSubID   int
	nextSeq     uint64
}

// NewStore creates an empty Store. CreatedAt timestamps are taken from clock.
func NewStore(clock clock.Clock) *Store {
	return &Store{
		clock:       clock,
		days:        make(map[string][]Entry),
		subscribers: make(map[int]chan Snapshot),
	}
}

// AddTag creates a tag. Names are unique ignoring case.
func (s *Store) AddTag(name string) (Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tag{}, ErrEmptyTag
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findTag(name); ok {
		return Tag{}, fmt.Errorf("%w: %s", ErrDuplicateTag, name)
	}

	id := 1
	for _, t := range s.tags {
		if t.ID >= id {
			id = t.ID + 1
		}
	}

	tag := Tag{ID: id, Name: name}
	s.tags = append(s.tags, tag)
	s.publish()

	return tag, nil
}

// RenameTag renames a tag along with every entry filed under it.
func (s *Store) RenameTag(from, to string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return ErrEmptyTag
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.findTag(from)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTag, from)
	}
	if other, ok := s.findTag(to); ok && other != idx {
		return fmt.Errorf("%w: %s", ErrDuplicateTag, to)
	}

	old := s.tags[idx].Name
	s.tags[idx].Name = to

	for _, entries := range s.days {
		for i := range entries {
			if entries[i].Tag == old {
				entries[i].Tag = to
			}
		}
	}
	s.publish()

	return nil
}

// DeleteTag removes a tag and every entry filed under it.
func (s *Store) DeleteTag(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.findTag(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTag, name)
	}

	old := s.tags[idx].Name
	s.tags = append(s.tags[:idx], s.tags[idx+1:]...)

	for key, entries := range s.days {
		kept := entries[:0]
		for _, e := range entries {
			if e.Tag != old {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(s.days, key)
			continue
		}
		s.days[key] = kept
	}
	s.publish()

	return nil
}

// Tags returns the tags in creation order.
func (s *Store) Tags() []Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Tag(nil), s.tags...)
}

// Record adds an entry to the day of its RegisteredAt and returns it with ID and CreatedAt set.
func (s *Store) Record(entry Entry) (Entry, error) {
	if !entry.Amount.IsPositive() {
		return Entry{}, fmt.Errorf("%w: %s", ErrInvalidAmount, entry.Amount)
	}
	if entry.Kind != Income && entry.Kind != Expense {
		return Entry{}, fmt.Errorf("%w: %s", ErrInvalidKind, entry.Kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.findTag(entry.Tag)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownTag, entry.Tag)
	}

	entry.ID = uuid.New()
	entry.Tag = s.tags[idx].Name
	entry.RegisteredAt = Day(entry.RegisteredAt)
	entry.CreatedAt = s.clock.Now()
	s.nextSeq++
	entry.seq = s.nextSeq

	key := entry.DayKey()
	s.days[key] = append(s.days[key], entry)
	s.publish()

	return entry, nil
}

// Day returns the entries of the calendar day of t in recording order.
func (s *Store) Day(t time.Time) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Entry(nil), s.days[Day(t).Format(dayLayout)]...)
}

// Summary returns the totals of the given month and the overall balance.
func (s *Store) Summary(year int, month time.Month) Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	period := MonthPeriod(year, month)

	summary := Summary{
		Month:   time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		Income:  decimal.Zero,
		Expense: decimal.Zero,
		Balance: s.balance(),
	}

	for key, entries := range s.days {
		if !period.contains(key) {
			continue
		}
		for _, e := range entries {
			switch e.Kind {
			case Income:
				summary.Income = summary.Income.Add(e.Amount)
			case Expense:
				summary.Expense = summary.Expense.Add(e.Amount)
			}
		}
	}

	return summary
}

// Balance returns the income minus the expense of every entry in the ledger.
func (s *Store) Balance() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.balance()
}

// TotalsByTag sums the entries of period per tag, in tag creation order.
// Tags without entries in period are left out.
func (s *Store) TotalsByTag(period Period) []TagTotal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]*TagTotal)
	for key, entries := range s.days {
		if !period.contains(key) {
			continue
		}
		for _, e := range entries {
			total, ok := totals[e.Tag]
			if !ok {
				total = &TagTotal{Tag: e.Tag, Income: decimal.Zero, Expense: decimal.Zero}
				totals[e.Tag] = total
			}
			switch e.Kind {
			case Income:
				total.Income = total.Income.Add(e.Amount)
			case Expense:
				total.Expense = total.Expense.Add(e.Amount)
			}
		}
	}

	result := make([]TagTotal, 0, len(totals))
	for _, tag := range s.tags {
		if total, ok := totals[tag.Name]; ok {
			result = append(result, *total)
		}
	}

	return result
}

// History returns every entry, most recently recorded first.
func (s *Store) History() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var history []Entry
	for _, entries := range s.days {
		history = append(history, entries...)
	}

	slices.SortFunc(history, func(a, b Entry) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})

	return history
}

// AddGoal creates a savings goal.
func (s *Store) AddGoal(name, description string, target decimal.Decimal) (Goal, error) {
	goal, err := newGoal(uuid.New(), name, description, target)
	if err != nil {
		return Goal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.goals = append(s.goals, goal)
	s.publish()

	return goal, nil
}

// UpdateGoal replaces the goal with the ID of goal.
func (s *Store) UpdateGoal(goal Goal) (Goal, error) {
	goal, err := newGoal(goal.ID, goal.Name, goal.Description, goal.Target)
	if err != nil {
		return Goal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findGoal(goal.ID)
	if idx < 0 {
		return Goal{}, fmt.Errorf("%w: %s", ErrUnknownGoal, goal.ID)
	}

	s.goals[idx] = goal
	s.publish()

	return goal, nil
}

// DeleteGoal removes a goal.
func (s *Store) DeleteGoal(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findGoal(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownGoal, id)
	}

	s.goals = slices.Delete(s.goals, idx, idx+1)
	s.publish()

	return nil
}

// Goals returns the goals in creation order.
func (s *Store) Goals() []Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.goals)
}

// Subscribe returns a channel receiving the current snapshot and then the latest
// snapshot after every change. A subscriber that falls behind only sees the most
// recent snapshot. The channel is closed once ctx is done.
func (s *Store) Subscribe(ctx context.Context) <-chan Snapshot {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	ch <- s.snapshot()
	s.mu.Unlock()

	go func() {
		<-ctx.Done()

		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.subscribers, id)
		close(ch)
	}()

	return ch
}

// publish must be called with the write lock held.
func (s *Store) publish() {
	if len(s.subscribers) == 0 {
		return
	}

	snap := s.snapshot()
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (s *Store) snapshot() Snapshot {
	days := make(map[string][]Entry, len(s.days))
	for key, entries := range s.days {
		days[key] = append([]Entry(nil), entries...)
	}

	return Snapshot{
		Tags:    append([]Tag(nil), s.tags...),
		Days:    days,
		Goals:   slices.Clone(s.goals),
		Balance: s.balance(),
	}
}

func (s *Store) balance() decimal.Decimal {
	balance := decimal.Zero
	for _, entries := range s.days {
		for _, e := range entries {
			switch e.Kind {
			case Income:
				balance = balance.Add(e.Amount)
			case Expense:
				balance = balance.Sub(e.Amount)
			}
		}
	}

	return balance
}

func (s *Store) findTag(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, t := range s.tags {
		if strings.EqualFold(t.Name, name) {
			return i, true
		}
	}

	return -1, false
}

func (s *Store) findGoal(id uuid.UUID) int {
	return slices.IndexFunc(s.goals, func(g Goal) bool {
		return g.ID == id
	})
}

func newGoal(id uuid.UUID, name, description string, target decimal.Decimal) (Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Goal{}, ErrEmptyGoal
	}
	if !target.IsPositive() {
		return Goal{}, fmt.Errorf("%w: %s", ErrInvalidTarget, target)
	}

	return Goal{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(description),
		Target:      target,
	}, nil
}
