// Package store holds the in-session work order collection. The store is
// owned by the manager that mutates it and is always constructor-injected,
// never a package-level singleton, so tests can run independent stores.
package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sciops/workorder-gin/internal/model"
)

// NumberingConflictError reports two records sharing a sequence ID or
// ticket number. This is a data-integrity fault of the loaded data set; it
// is reported, never merged over.
type NumberingConflictError struct {
	Field string // "sequence_id" or "ticket_number"
	Value string
}

func (e *NumberingConflictError) Error() string {
	return fmt.Sprintf("numbering conflict: duplicate %s %s", e.Field, e.Value)
}

// Store is the in-memory work order collection for the current session.
// The mutex keeps a misbehaving concurrent caller fail-safe; the intended
// access model is single-writer (UI-driven, one mutation at a time).
type Store struct {
	mu       sync.RWMutex
	bySeq    map[int]*model.WorkOrder
	byTicket map[string]int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		bySeq:    make(map[int]*model.WorkOrder),
		byTicket: make(map[string]int),
	}
}

// Load replaces the store contents with orders, checking numbering
// integrity. On conflict the store is left empty and the fault reported.
func (s *Store) Load(orders []*model.WorkOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bySeq := make(map[int]*model.WorkOrder, len(orders))
	byTicket := make(map[string]int, len(orders))
	for _, o := range orders {
		if _, ok := bySeq[o.SequenceID]; ok {
			s.bySeq = make(map[int]*model.WorkOrder)
			s.byTicket = make(map[string]int)
			return &NumberingConflictError{Field: "sequence_id", Value: fmt.Sprintf("%d", o.SequenceID)}
		}
		if _, ok := byTicket[o.TicketNumber]; ok {
			s.bySeq = make(map[int]*model.WorkOrder)
			s.byTicket = make(map[string]int)
			return &NumberingConflictError{Field: "ticket_number", Value: o.TicketNumber}
		}
		bySeq[o.SequenceID] = o.Clone()
		byTicket[o.TicketNumber] = o.SequenceID
	}
	s.bySeq = bySeq
	s.byTicket = byTicket
	return nil
}

// NextTicketNumber scans the collection for the highest sequence ID and
// derives the next ticket number: PREFIX-YYYY-NNNNN. Must be called once
// per create, before the insert; see the package comment for the
// single-writer assumption this relies on.
func (s *Store) NextTicketNumber(prefix string, now time.Time) (int, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	highest := 0
	for seq := range s.bySeq {
		if seq > highest {
			highest = seq
		}
	}
	next := highest + 1
	return next, FormatTicketNumber(prefix, now.Year(), next)
}

// FormatTicketNumber renders the human-readable ticket identifier.
func FormatTicketNumber(prefix string, year, sequence int) string {
	return fmt.Sprintf("%s-%d-%05d", prefix, year, sequence)
}

// Insert adds a new order, rejecting numbering conflicts.
func (s *Store) Insert(o *model.WorkOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bySeq[o.SequenceID]; ok {
		return &NumberingConflictError{Field: "sequence_id", Value: fmt.Sprintf("%d", o.SequenceID)}
	}
	if _, ok := s.byTicket[o.TicketNumber]; ok {
		return &NumberingConflictError{Field: "ticket_number", Value: o.TicketNumber}
	}
	s.bySeq[o.SequenceID] = o.Clone()
	s.byTicket[o.TicketNumber] = o.SequenceID
	return nil
}

// Replace swaps the stored order for an existing ticket number.
func (s *Store) Replace(o *model.WorkOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.byTicket[o.TicketNumber]
	if !ok {
		return fmt.Errorf("work order %s not found", o.TicketNumber)
	}
	if seq != o.SequenceID {
		return &NumberingConflictError{Field: "sequence_id", Value: fmt.Sprintf("%d", o.SequenceID)}
	}
	s.bySeq[seq] = o.Clone()
	return nil
}

// Remove drops the order with the given ticket number, if present. Used to
// roll back an insert the persistence collaborator refused.
func (s *Store) Remove(ticket string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq, ok := s.byTicket[ticket]; ok {
		delete(s.bySeq, seq)
		delete(s.byTicket, ticket)
	}
}

// Get returns a copy of the order with the given ticket number.
func (s *Store) Get(ticket string) (*model.WorkOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq, ok := s.byTicket[ticket]
	if !ok {
		return nil, false
	}
	return s.bySeq[seq].Clone(), true
}

// Len returns the number of stored orders.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bySeq)
}

// StatusScope selects the open/closed halves of the status set.
type StatusScope string

const (
	ScopeAny    StatusScope = ""
	ScopeOpen   StatusScope = "open"
	ScopeClosed StatusScope = "closed"
)

// Filter is the listing predicate. Zero fields match everything; set
// fields are combined with AND.
type Filter struct {
	Kind      *model.Kind
	Status    *model.Status
	Scope     StatusScope
	Requester string // substring match on requested_by
	Query     string // free-text match on ticket number, description, variant identity
}

// List returns a fresh slice of matching orders, most recently requested
// first (sequence descending on ties). Each call rebuilds the view from
// the current store snapshot; the store is never mutated.
func (s *Store) List(f Filter) []*model.WorkOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.WorkOrder
	for _, o := range s.bySeq {
		if matches(o, f) {
			out = append(out, o.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].RequestedAt.After(out[j].RequestedAt)
		}
		return out[i].SequenceID > out[j].SequenceID
	})
	return out
}

func matches(o *model.WorkOrder, f Filter) bool {
	if f.Kind != nil && o.Kind() != *f.Kind {
		return false
	}
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	switch f.Scope {
	case ScopeOpen:
		if !o.Status.IsOpen() {
			return false
		}
	case ScopeClosed:
		if !o.Status.IsClosed() {
			return false
		}
	}
	if f.Requester != "" && !containsFold(o.RequestedBy, f.Requester) {
		return false
	}
	if f.Query != "" {
		if !containsFold(o.TicketNumber, f.Query) &&
			!containsFold(o.Description, f.Query) &&
			!containsFold(o.Payload.Identity(), f.Query) {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
